package session

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/unimap/globe/internal/catalog"
)

// Manager upgrades HTTP requests into scene sessions and tracks the live
// set for shutdown.
type Manager struct {
	upgrader ws.Upgrader
	backend  catalog.Backend
	recorder Recorder
	cfg      Config
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	nextID   atomic.Uint64
}

// NewManager builds a manager serving sessions against the given catalog.
func NewManager(backend catalog.Backend, recorder Recorder, cfg Config, logger *slog.Logger) *Manager {
	return &Manager{
		upgrader: ws.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		backend:  backend,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Handle is the echo handler for the scene WebSocket endpoint. It blocks
// for the lifetime of the session.
func (m *Manager) Handle(c echo.Context) error {
	conn, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade failed: %w", err)
	}

	id := fmt.Sprintf("s%06d", m.nextID.Add(1))

	s, err := New(id, conn, m.backend, m.recorder, m.cfg, m.logger)
	if err != nil {
		m.logger.Error("Session setup failed", "session", id, "error", err)
		_ = conn.Close()
		return nil
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Info("Session started", "session", id, "remote", conn.RemoteAddr())
	s.Run()
	m.logger.Info("Session ended", "session", id)

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	return nil
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close shuts down every live session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
