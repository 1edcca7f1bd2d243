package mockunsplash

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gorilla/mux"

	"github.com/devnullvoid/pixgrid/pkg/api"
)

//go:embed openapi.yaml
var specYAML []byte

// Spec loads and validates the embedded OpenAPI document.
func Spec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi spec: %w", err)
	}

	return doc, nil
}

// NewRouter builds the HTTP handler for state. Requests to documented
// operations are validated against the embedded OpenAPI document first.
func NewRouter(state *State) (http.Handler, error) {
	doc, err := Spec()
	if err != nil {
		return nil, err
	}

	oapiRouter, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("create openapi router: %w", err)
	}

	r := mux.NewRouter()
	r.Use(validationMiddleware(oapiRouter))
	r.HandleFunc(api.RandomPhotosPath, HandleRandomPhotos(state)).Methods(http.MethodGet)
	r.HandleFunc("/images/{id}.png", HandleImage(state)).Methods(http.MethodGet)

	return r, nil
}

// validationMiddleware rejects requests whose parameters do not satisfy the
// OpenAPI document. Paths the document does not describe pass through.
func validationMiddleware(router routers.Router) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				next.ServeHTTP(w, req)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				writeErrors(w, http.StatusBadRequest, err.Error())
				return
			}

			next.ServeHTTP(w, req)
		})
	}
}

// HandleRandomPhotos answers GET /photos/random.
func HandleRandomPhotos(state *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if f := state.takeFailure(); f != nil {
			writeErrors(w, f.status, f.message)
			return
		}

		if r.URL.Query().Get("client_id") != state.AccessKey() {
			writeErrors(w, http.StatusUnauthorized, "OAuth error: The access token is invalid")
			return
		}

		rawCount := r.URL.Query().Get("count")
		if rawCount == "" {
			// Without count the provider answers with a single object.
			photos := state.Sample(1)
			writeJSON(w, http.StatusOK, withURLs(r, photos[0]))
			return
		}

		count, err := strconv.Atoi(rawCount)
		if err != nil || count < 1 || count > api.MaxCount {
			writeErrors(w, http.StatusBadRequest, "count must be between 1 and 30")
			return
		}

		photos := state.Sample(count)
		out := make([]api.Image, 0, len(photos))
		for _, p := range photos {
			out = append(out, withURLs(r, p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// HandleImage serves a flat-colored PNG with the photo's aspect ratio.
func HandleImage(state *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		photo, ok := state.Photo(mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}

		width := 400
		height := width * photo.Height / photo.Width
		if height < 1 {
			height = 1
		}

		img := image.NewRGBA(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			shade := uint8(255 * y / height)
			for x := 0; x < width; x++ {
				img.Set(x, y, color.RGBA{
					R: photo.Color[0] / 2,
					G: photo.Color[1]/2 + shade/4,
					B: photo.Color[2] / 2,
					A: 255,
				})
			}
		}

		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, img); err != nil {
			log.Printf("mockunsplash: failed to encode image %s: %v", photo.ID, err)
		}
	}
}

// withURLs copies the photo and points its renditions at the serving host.
func withURLs(r *http.Request, p *MockPhoto) api.Image {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	img := p.Image
	link := fmt.Sprintf("%s://%s/images/%s.png", scheme, r.Host, p.ID)
	img.URLs = api.URLs{Small: link, Thumb: link, Regular: link}

	return img
}

func writeErrors(w http.ResponseWriter, status int, messages ...string) {
	writeJSON(w, status, map[string][]string{"errors": messages})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("mockunsplash: failed to encode response: %v", err)
	}
}
