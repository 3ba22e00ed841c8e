package plaxis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serverHostPort(t *testing.T, srv *httptest.Server) (string, int) {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return u.Hostname(), port
}

func TestHTTPClientExec(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/commands", r.URL.Path)
		assert.Equal(t, "Bearer hunter2", r.Header.Get("Authorization"))

		var req commandRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "polygon", req.Command)
		require.Len(t, req.Args, 8)

		json.NewEncoder(w).Encode(commandResponse{Result: "Polygon_1"})
	}))
	defer srv.Close()

	host, port := serverHostPort(t, srv)
	c := NewHTTPClient(host, port, "hunter2")
	out, err := c.Exec(context.Background(), "polygon", 0, 100, 0, 90, 10, 90, 10, 100)
	require.NoError(t, err)
	assert.Equal(t, "Polygon_1", out)
}

func TestHTTPClientCommandError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(commandResponse{Error: "unknown command"})
	}))
	defer srv.Close()

	host, port := serverHostPort(t, srv)
	c := NewHTTPClient(host, port, "")
	_, err := c.Exec(context.Background(), "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestHTTPClientServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	host, port := serverHostPort(t, srv)
	c := NewHTTPClient(host, port, "")
	_, err := c.Exec(context.Background(), "anything")
	assert.Error(t, err)
}
