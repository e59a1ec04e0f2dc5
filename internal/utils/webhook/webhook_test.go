package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

func TestClient_Ping(t *testing.T) {
	var hits int32
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	c := New(logger.NewNop(), time.Second)

	require.NoError(t, c.Ping(context.Background(), ok.URL))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	assert.NoError(t, c.Ping(context.Background(), ""))
	assert.EqualError(t, c.Ping(context.Background(), down.URL), "uptime webhook answered 502 Bad Gateway")
}

func TestClient_Heartbeat(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := New(logger.NewNop(), time.Second)

	failing := c.Heartbeat("backlog", srv.URL, func(context.Context) error { return errors.New("boom") })
	assert.Error(t, failing(context.Background()))
	assert.Zero(t, atomic.LoadInt32(&hits))

	succeeding := c.Heartbeat("backlog", srv.URL, func(context.Context) error { return nil })
	assert.NoError(t, succeeding(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	unreachable := c.Heartbeat("backlog", "http://127.0.0.1:1", func(context.Context) error { return nil })
	assert.NoError(t, unreachable(context.Background()))
}
