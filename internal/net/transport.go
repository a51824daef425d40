package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Hub serves a read-only live view of a board. Every published snapshot is
// pushed to the connected viewers; a viewer that falls behind only gets the
// newest one. New viewers receive the latest snapshot on connect.
type Hub struct {
	upgrader websocket.Upgrader

	mu     sync.Mutex
	peers  map[*peer]struct{}
	latest []byte
	closed bool
}

type peer struct {
	conn *websocket.Conn
	addr string
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 << 10,
			// Viewers come from anywhere on the LAN.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[*peer]struct{}),
	}
}

// Publish replaces the latest snapshot and sends it to every viewer.
func (h *Hub) Publish(snapshot []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = snapshot
	for p := range h.peers {
		p.offer(snapshot)
	}
}

// Latest returns the last published snapshot, or nil.
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Len returns the number of connected viewers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

// Handler serves viewer connections on MirrorPath and the latest snapshot
// as a plain document on /sketch.json.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(MirrorPath, h)
	mux.HandleFunc("/sketch.json", func(w http.ResponseWriter, r *http.Request) {
		b := h.Latest()
		if b == nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(b)
	})
	return mux
}

// ServeHTTP upgrades the request and streams snapshots until either side
// goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[MIRROR] upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	p := &peer{conn: conn, addr: r.RemoteAddr, send: make(chan []byte, 1)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.peers[p] = struct{}{}
	if h.latest != nil {
		p.send <- h.latest
	}
	h.mu.Unlock()
	log.Printf("[MIRROR] viewer connected from %s", p.addr)

	go p.writeLoop()
	p.readLoop()
	h.remove(p)
	log.Printf("[MIRROR] viewer %s disconnected", p.addr)
}

// ListenAndServe serves the hub on addr until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Handler(), ReadHeaderTimeout: writeWait}
	stop := context.AfterFunc(ctx, func() {
		h.Close()
		srv.Close()
	})
	defer stop()
	log.Printf("[MIRROR] listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mirror server: %w", err)
	}
	return nil
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for p := range h.peers {
		delete(h.peers, p)
		close(p.send)
	}
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[p]; ok {
		delete(h.peers, p)
		close(p.send)
	}
}

// offer queues b, dropping a snapshot the writer has not picked up yet.
// Called with the hub lock held.
func (p *peer) offer(b []byte) {
	for {
		select {
		case p.send <- b:
			return
		default:
		}
		select {
		case <-p.send:
		default:
		}
	}
}

func (p *peer) writeLoop() {
	defer p.conn.Close()
	for b := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Printf("[MIRROR] error sending to %s: %v", p.addr, err)
			return
		}
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	p.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// readLoop discards anything viewers send and returns once the connection
// is gone.
func (p *peer) readLoop() {
	p.conn.SetReadLimit(512)
	for {
		if _, _, err := p.conn.NextReader(); err != nil {
			return
		}
	}
}
