package net

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + MirrorPath
}

func next(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot received")
		return ""
	}
}

func TestHubMirrorsSnapshots(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	hub.Publish([]byte(`{"version":1}`))

	got := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- Follow(context.Background(), wsURL(srv), func(b []byte) { got <- string(b) })
	}()

	assert.Equal(t, `{"version":1}`, next(t, got))
	assert.Equal(t, 1, hub.Len())

	hub.Publish([]byte(`{"version":1,"width":5}`))
	assert.Equal(t, `{"version":1,"width":5}`, next(t, got))

	hub.Close()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("viewer did not stop after close")
	}
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestFollowStopsOnCancel(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan string, 1)
	done := make(chan error, 1)
	hub.Publish([]byte("a"))
	go func() { done <- Follow(ctx, wsURL(srv), func(b []byte) { got <- string(b) }) }()
	next(t, got)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("viewer did not stop after cancel")
	}
}

func TestFollowBadAddress(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	err := Follow(context.Background(), wsURL(srv), func([]byte) {})
	assert.ErrorContains(t, err, "connecting to")
}

func TestSnapshotEndpoint(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/sketch.json")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	hub.Publish([]byte(`{"version":1}`))
	resp, err = http.Get(srv.URL + "/sketch.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestLinks(t *testing.T) {
	link := Link("192.168.1.20", 8888)
	assert.Equal(t, "sketchboard://192.168.1.20:8888", link)
	assert.True(t, IsLink(link))

	u, err := ParseLink(link + "/")
	require.NoError(t, err)
	assert.Equal(t, "ws://192.168.1.20:8888/ws", u)

	_, err = ParseLink("http://x:1")
	assert.Error(t, err)
	_, err = ParseLink("sketchboard://host")
	assert.Error(t, err)
	_, err = ParseLink("sketchboard://host:99999")
	assert.Error(t, err)
}

func TestOutgoingIP(t *testing.T) {
	assert.NotEmpty(t, OutgoingIP())
}
