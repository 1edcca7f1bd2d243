package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/devnullvoid/pixgrid/pkg/mockunsplash"
)

func main() {
	var port int
	var key string
	var seed int64
	var size int

	flag.IntVar(&port, "port", 8081, "Port to listen on")
	flag.StringVar(&key, "key", mockunsplash.DefaultAccessKey, "Access key accepted as client_id")
	flag.Int64Var(&seed, "seed", 1, "Seed for the generated photo pool")
	flag.IntVar(&size, "size", 60, "Number of photos in the pool")
	flag.Parse()

	server, err := newServer(fmt.Sprintf(":%d", port), mockunsplash.NewState(key, size, seed))
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	log.Printf("Starting mock Unsplash server on :%d (%d photos, key %q)", port, size, key)
	log.Fatal(server.ListenAndServe())
}

// newServer builds the HTTP server for state with request logging.
func newServer(addr string, state *mockunsplash.State) (*http.Server, error) {
	router, err := mockunsplash.NewRouter(state)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:         addr,
		Handler:      logRequests(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}, nil
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Printf("%s %s", req.Method, req.URL.Path)
		next.ServeHTTP(w, req)
	})
}
