package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"sixteen/internal/config"
	"sixteen/internal/game"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

// newScriptedServer returns a server whose dice produce faces in order.
func newScriptedServer(t *testing.T, faces ...int) *Server {
	t.Helper()
	next := 0
	roller := game.RollerFunc(func() int {
		if next >= len(faces) {
			t.Errorf("dice exhausted after %d rolls", len(faces))
			return 1
		}
		face := faces[next]
		next++
		return face
	})
	srv := newWithRoller(nil, config.Default(), roller)
	t.Cleanup(srv.Close)
	return srv
}
