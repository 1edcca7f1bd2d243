package main

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devnullvoid/pixgrid/pkg/mockunsplash"
)

func TestNewServer(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	state := mockunsplash.NewState("", 4, 3)
	server, err := newServer(":0", state)
	require.NoError(t, err)
	assert.Equal(t, ":0", server.Addr)

	ts := httptest.NewServer(server.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/photos/random?count=2&client_id=" + state.AccessKey())
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), "GET /photos/random")
}
