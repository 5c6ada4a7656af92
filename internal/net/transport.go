// Package net shares a live board with viewers on the local network.
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

	"WormBoard/internal/state"
)

const writeTimeout = 2 * time.Second

// Snapshot is the message sent to viewers after every change.
type Snapshot struct {
	Seq    uint64               `json:"seq"`
	Points []state.OrderedPoint `json:"points"`
}

// Hub is used by the HOST to push snapshots to every connected viewer.
// Viewers are read-only; anything they send is discarded.
type Hub struct {
	upgrader websocket.Upgrader
	peers    map[*peer]bool
	latest   []byte
	seq      uint64
	mu       sync.Mutex
}

// peer is one viewer. Snapshots are written by its own goroutine; send holds
// at most the newest one not yet written.
type peer struct {
	conn *websocket.Conn
	send chan []byte
}

func newPeer(conn *websocket.Conn) *peer {
	return &peer{conn: conn, send: make(chan []byte, 1)}
}

// offer queues data, replacing a snapshot the viewer has not received yet.
// It never blocks. The caller must hold the hub lock.
func (p *peer) offer(data []byte) {
	for {
		select {
		case p.send <- data:
			return
		default:
		}
		select {
		case <-p.send:
		default:
		}
	}
}

func (p *peer) addr() string { return p.conn.RemoteAddr().String() }

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// Viewers on the LAN connect from a native client, not a page.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[*peer]bool),
	}
}

// ServeHTTP upgrades the request and keeps the viewer until it disconnects.
// The newest snapshot is sent straight away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SHARE] Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	p := newPeer(conn)

	h.mu.Lock()
	if h.latest != nil {
		p.offer(h.latest)
	}
	h.peers[p] = true
	h.mu.Unlock()
	log.Printf("[SHARE] Viewer connected: %s", p.addr())

	go h.writeLoop(p)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(p)
	log.Printf("[SHARE] Viewer disconnected: %s", p.addr())
}

func (h *Hub) writeLoop(p *peer) {
	for data := range p.send {
		if err := write(p.conn, data); err != nil {
			log.Printf("[SHARE] Error sending to %s: %v", p.addr(), err)
			h.remove(p)
			return
		}
	}
}

func write(conn *websocket.Conn, data []byte) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(p)
}

// drop forgets p and closes its connection. The caller must hold the lock.
func (h *Hub) drop(p *peer) {
	if !h.peers[p] {
		return
	}
	delete(h.peers, p)
	close(p.send)
	p.conn.Close()
}

// Broadcast queues points for every viewer and keeps them for viewers that
// connect later. It does not wait for the network: a viewer that falls
// behind skips straight to the newest snapshot.
func (h *Hub) Broadcast(points []state.OrderedPoint) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	data, err := json.Marshal(Snapshot{Seq: h.seq, Points: points})
	if err != nil {
		return fmt.Errorf("could not encode snapshot: %w", err)
	}
	h.latest = data

	for p := range h.peers {
		p.offer(data)
	}
	return nil
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for p := range h.peers {
		p.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeTimeout))
		h.drop(p)
	}
}

// Serve runs the share endpoint on port until ctx is cancelled.
func Serve(ctx context.Context, port int, hub *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	go func() {
		<-ctx.Done()
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[SHARE] Listening on port %d", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("share server on port %d: %w", port, err)
	}
	return nil
}

// Viewer is the CLIENT side: it follows a shared board.
type Viewer struct {
	conn *websocket.Conn
	done chan struct{}
}

// Dial connects to a share endpoint, such as the URL returned by ParseLink.
func Dial(url string) (*Viewer, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", url, err)
	}
	return &Viewer{conn: conn, done: make(chan struct{})}, nil
}

// OnSnapshot starts delivering snapshots to f from a background goroutine.
// Call it once.
func (v *Viewer) OnSnapshot(f func(Snapshot)) {
	go func() {
		defer close(v.done)
		for {
			var snap Snapshot
			if err := v.conn.ReadJSON(&snap); err != nil {
				var closeErr *websocket.CloseError
				if !errors.As(err, &closeErr) {
					log.Printf("[VIEWER] Stopped reading: %v", err)
				}
				return
			}
			f(snap)
		}
	}()
}

// Done is closed once the connection stops delivering snapshots.
func (v *Viewer) Done() <-chan struct{} { return v.done }

// Close cleanly closes the connection.
func (v *Viewer) Close() error {
	err := v.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if cerr := v.conn.Close(); err == nil {
		err = cerr
	}
	return err
}
