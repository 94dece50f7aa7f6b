// Package net mirrors a pad's journal to watchers on the local network
// over websockets and advertises the mirror with mDNS.
package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"Sketchpad/internal/state"
)

// MirrorPath is the HTTP path watchers connect to.
const MirrorPath = "/mirror"

const (
	writeWait  = 5 * time.Second
	sendBuffer = 64
)

type peer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans journal changes out to every connected watcher. Watchers only
// receive; anything they send is discarded.
type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	peers map[*peer]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// Watchers are not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[*peer]struct{}),
	}
}

// Peers returns the number of connected watchers.
func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Broadcast queues c for every watcher. A watcher whose queue is full is
// dropped rather than stalling the caller, which is usually the UI.
func (h *Hub) Broadcast(c state.Change) {
	data, err := json.Marshal(c)
	if err != nil {
		log.Printf("[MIRROR] cannot encode %s change: %v", c.Kind, err)
		return
	}

	var slow []*peer
	h.mu.RLock()
	for p := range h.peers {
		select {
		case p.send <- data:
		default:
			slow = append(slow, p)
		}
	}
	h.mu.RUnlock()

	for _, p := range slow {
		log.Printf("[MIRROR] dropping slow watcher %s", p.conn.RemoteAddr())
		h.remove(p)
	}
}

func (h *Hub) add(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p] = struct{}{}
	log.Printf("[MIRROR] watcher connected from %s", p.conn.RemoteAddr())
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[p]; !ok {
		return
	}
	delete(h.peers, p)
	close(p.send)
	log.Printf("[MIRROR] watcher %s removed", p.conn.RemoteAddr())
}

// ServeHTTP upgrades the request and keeps the watcher until it hangs up.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[MIRROR] upgrade failed: %v", err)
		return
	}
	p := &peer{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(p)

	go h.write(p)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(p)
}

func (h *Hub) write(p *peer) {
	defer p.conn.Close()
	for msg := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("[MIRROR] write to %s failed: %v", p.conn.RemoteAddr(), err)
			h.remove(p)
			return
		}
	}
}

// Close disconnects every watcher.
func (h *Hub) Close() {
	h.mu.RLock()
	peers := make([]*peer, 0, len(h.peers))
	for p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.RUnlock()
	for _, p := range peers {
		h.remove(p)
	}
}

// ListenAndServe serves the hub on port until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle(MirrorPath, h)
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	go func() {
		<-ctx.Done()
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[MIRROR] listening on port %d", port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Watch connects to a mirror at url and calls fn for every change until
// ctx is done or the connection drops.
func Watch(ctx context.Context, url string, fn func(state.Change)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		var c state.Change
		if err := conn.ReadJSON(&c); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fn(c)
	}
}
