// Package observe streams per-frame team counts to read-only websocket
// spectators.
package observe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/olivierh59500/rps-swarm/internal/sim"
)

// Report is the JSON frame sent to every client.
type Report struct {
	Frame      uint64 `json:"frame"`
	Rock       int    `json:"rock"`
	Paper      int    `json:"paper"`
	Scissor    int    `json:"scissor"`
	Population int    `json:"population"`
}

const (
	queueSize    = 64
	writeTimeout = time.Second
)

// Hub fans reports out to connected clients. Observe never blocks the frame
// loop: reports are dropped while the queue is full.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	reports  chan Report
	logger   *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		reports: make(chan Report, queueSize),
		logger:  logger,
	}
}

// Observe queues the counts of one frame.
func (h *Hub) Observe(frame uint64, counts sim.Counts) {
	r := Report{
		Frame:      frame,
		Rock:       counts.Rock,
		Paper:      counts.Paper,
		Scissor:    counts.Scissor,
		Population: counts.Total(),
	}
	select {
	case h.reports <- r:
	default:
	}
}

// Run broadcasts queued reports until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case r := <-h.reports:
			h.broadcast(r)
		}
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

func (h *Hub) broadcast(r Report) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(r); err != nil {
			h.logger.Warn("dropping observer", "remote", conn.RemoteAddr(), "err", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away. Anything the client sends is ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	h.add(conn)
	defer h.remove(conn)
	h.logger.Info("observer connected", "remote", conn.RemoteAddr())

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.logger.Info("observer disconnected", "remote", conn.RemoteAddr(), "err", err)
			return
		}
	}
}

// Serve runs the hub and an HTTP server exposing it on /ws until ctx is
// done.
func Serve(ctx context.Context, addr string, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	srv := &http.Server{Addr: addr, Handler: mux}

	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	h.logger.Info("observer feed listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
