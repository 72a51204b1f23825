package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"

	"github.com/joshuapare/elfmap/elf"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// reloadEvent is broadcast to event subscribers when a watched file
// re-parses successfully.
type reloadEvent struct {
	Event string `json:"event"`
	File  string `json:"file"`
}

// hub tracks the live event subscribers.
type hub struct {
	log *slog.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func newHub(log *slog.Logger) *hub {
	return &hub{log: log, conns: make(map[*websocket.Conn]bool)}
}

func (h *hub) add(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = true
}

func (h *hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

// broadcast sends v to every subscriber, dropping connections that fail.
func (h *hub) broadcast(v any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteJSON(v); err != nil {
			h.log.Warn("drop event subscriber", "err", err)
			c.Close()
			delete(h.conns, c)
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		c.Close()
		delete(h.conns, c)
	}
}

// handleEvents upgrades the connection and holds it until the client goes
// away. Clients only listen; inbound messages are discarded.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "err", err)
		return
	}
	s.hub.add(conn)
	defer func() {
		s.hub.remove(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// watch re-parses files under the root as they change and notifies event
// subscribers of every file that still parses cleanly.
func (s *Server) watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("server: start watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.root); err != nil {
		return fmt.Errorf("server: watch %s: %w", s.root, err)
	}
	s.log.Info("watching", "root", s.root)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			s.reload(ev.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watcher error", "err", err)
		}
	}
}

func (s *Server) reload(path string) {
	start := time.Now()
	f, err := elf.Open(path)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		s.metrics.observeParse(errorKind(err), elapsed)
		s.log.Debug("changed file does not parse", "file", path, "err", err)
		return
	}
	s.metrics.observeParse("ok", elapsed)

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		rel = f.Name
	}
	s.log.Info("reload", "file", rel)
	s.hub.broadcast(reloadEvent{Event: "reload", File: rel})
}
