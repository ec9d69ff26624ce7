package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/config"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{ServerHost: "localhost", ServerPort: "8080"}

	srv := New(cfg, http.NotFoundHandler())
	require.NotNil(t, srv)
	assert.Equal(t, "localhost:8080", srv.Addr())
	assert.Equal(t, 10*time.Second, srv.shutdownTimeout)
}

func TestServeAndShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(&config.Config{ServerHost: "127.0.0.1", ServerPort: "0", ShutdownTimeout: time.Second}, router)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(l) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/health", l.Addr()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Shutdown(context.Background()))
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
