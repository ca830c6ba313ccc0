// Package session runs one globe scene per connected viewer. The viewer
// streams input events over WebSocket; the session feeds them through a
// dispatcher into a globe.Controller driving a RemoteEngine, so every
// scene mutation travels back to the viewer as an envelope.
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"

	"github.com/unimap/globe/internal/catalog"
	"github.com/unimap/globe/internal/channel"
	"github.com/unimap/globe/internal/dispatcher"
	"github.com/unimap/globe/internal/globe"
	"github.com/unimap/globe/pkg/core"
	"github.com/unimap/globe/pkg/streaming"
)

const (
	sendChSize = 1024
	writeWait  = 10 * time.Second
)

// DefaultEntityLimit caps how many universities a session displays when
// the viewer does not ask for a specific count.
const DefaultEntityLimit = 50

// Config holds per-session scene parameters.
type Config struct {
	// Home is the camera pose a fresh session starts from and the pose
	// recorded as the scene's initial view.
	Home core.CameraPose

	Focus       globe.FocusConfig
	EntityLimit int
}

// DefaultConfig returns the stock scene parameters: a whole-globe home
// view and the standard focus transition timings.
func DefaultConfig() Config {
	return Config{
		Home: core.CameraPose{
			Altitude:    20_000_000,
			Orientation: core.Orientation{Pitch: -90},
		},
		Focus:       globe.DefaultFocusConfig(),
		EntityLimit: DefaultEntityLimit,
	}
}

// Session owns one viewer's connection and scene state. All inbound events
// are dispatched synchronously from the read loop, so the controller sees
// a single goroutine.
type Session struct {
	ID string

	conn   *ws.Conn
	engine *RemoteEngine
	ctrl   *globe.Controller
	disp   *dispatcher.Dispatcher

	catalog  catalog.Backend
	recorder Recorder
	cfg      Config
	logger   *slog.Logger

	out       channel.Channel[[]byte]
	done      chan struct{}
	closeOnce sync.Once

	// resetPending is set while a reset flight is in the air; the viewer's
	// flight-done event converts it into a reset_done notification.
	resetPending bool
}

// New builds a session over an upgraded WebSocket connection and loads the
// default entity set from the catalog.
func New(id string, conn *ws.Conn, backend catalog.Backend, recorder Recorder, cfg Config, logger *slog.Logger) (*Session, error) {
	if cfg.EntityLimit <= 0 {
		cfg.EntityLimit = DefaultEntityLimit
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}

	s := &Session{
		ID:       id,
		conn:     conn,
		catalog:  backend,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger.With("session", id),
		out:      channel.New[[]byte](sendChSize),
		done:     make(chan struct{}),
	}

	s.engine = NewRemoteEngine(s.sendEnvelope, cfg.Home)
	s.ctrl = globe.NewController(s.engine, cfg.Focus, globe.Callbacks{
		OnEntityHover:  s.onHover,
		OnEntitySelect: s.onSelect,
	})

	disp, err := dispatcher.New(s.logger)
	if err != nil {
		return nil, fmt.Errorf("creating dispatcher: %w", err)
	}
	s.disp = disp
	s.registerHandlers()

	if err := s.loadEntities("", cfg.EntityLimit); err != nil {
		return nil, err
	}

	return s, nil
}

// Run services the connection until the viewer disconnects. It blocks.
func (s *Session) Run() {
	go s.writeLoop()
	s.readLoop()
	s.Close()
}

// Close shuts the session down. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.WriteMessage(
			ws.CloseMessage,
			ws.FormatCloseMessage(ws.CloseNormalClosure, ""),
		)
		_ = s.conn.Close()
	})
}

// Controller exposes the scene controller, mainly for tests.
func (s *Session) Controller() *globe.Controller {
	return s.ctrl
}

func (s *Session) registerHandlers() {
	s.disp.Register(streaming.TypePointerMove, s.handlePointerMove)
	s.disp.Register(streaming.TypePointerClick, s.handlePointerClick)
	s.disp.Register(streaming.TypeCameraTick, s.handleCameraTick)
	s.disp.Register(streaming.TypeFocusSet, s.handleFocusSet, dispatcher.Logged())
	s.disp.Register(streaming.TypeFocusReset, s.handleFocusReset, dispatcher.Logged())
	s.disp.Register(streaming.TypeFlightDone, s.handleFlightDone)
	s.disp.Register(streaming.TypeEntitiesSet, s.handleEntitiesSet, dispatcher.Logged())
}

func (s *Session) handlePointerMove(e dispatcher.Event) (any, error) {
	var p streaming.PointerPayload
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		return nil, fmt.Errorf("decoding pointer payload: %w", err)
	}
	s.ctrl.PointerMove(p.Point)
	return nil, nil
}

func (s *Session) handlePointerClick(e dispatcher.Event) (any, error) {
	var p streaming.PointerPayload
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		return nil, fmt.Errorf("decoding pointer payload: %w", err)
	}
	s.ctrl.PointerClick(p.Point)
	return nil, nil
}

func (s *Session) handleCameraTick(e dispatcher.Event) (any, error) {
	var tick streaming.CameraTickPayload
	if err := json.Unmarshal(e.Payload, &tick); err != nil {
		return nil, fmt.Errorf("decoding camera tick: %w", err)
	}
	s.engine.UpdateFrame(tick)
	s.ctrl.CameraTick()
	s.recorder.RecordAltitude(s.ID, tick.Altitude)
	return nil, nil
}

func (s *Session) handleFocusSet(e dispatcher.Event) (any, error) {
	var p streaming.FocusSetPayload
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		return nil, fmt.Errorf("decoding focus request: %w", err)
	}
	s.ctrl.Focus(core.FocusRequest{Target: p.Target, Level: p.Level})
	s.recorder.RecordFocus(s.ID, p.Level)
	return nil, nil
}

func (s *Session) handleFocusReset(e dispatcher.Event) (any, error) {
	if s.ctrl.Reset() {
		s.resetPending = true
	}
	return nil, nil
}

func (s *Session) handleFlightDone(e dispatcher.Event) (any, error) {
	if s.resetPending {
		s.resetPending = false
		s.sendEnvelope(streaming.TypeResetDone, nil)
	}
	return nil, nil
}

func (s *Session) handleEntitiesSet(e dispatcher.Event) (any, error) {
	var p streaming.EntitiesSetPayload
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		return nil, fmt.Errorf("decoding entities request: %w", err)
	}
	limit := p.Limit
	if limit <= 0 || limit > s.cfg.EntityLimit {
		limit = s.cfg.EntityLimit
	}
	if err := s.loadEntities(p.Discipline, limit); err != nil {
		return nil, err
	}
	s.sendAck(streaming.TypeEntitiesSet)
	return nil, nil
}

func (s *Session) loadEntities(discipline string, limit int) error {
	unis, err := s.catalog.TopByDiscipline(discipline, limit)
	if err != nil {
		return fmt.Errorf("loading universities: %w", err)
	}
	s.ctrl.SetEntities(unis)
	return nil
}

func (s *Session) onHover(id string, hovering bool) {
	s.ctrl.SetHovered(id, hovering)
	s.sendEnvelope(streaming.TypeHover, streaming.HoverPayload{ID: id, Hovering: hovering})
	if hovering {
		s.recorder.RecordHover(s.ID, id)
	}
}

func (s *Session) onSelect(entity core.University) {
	s.sendEnvelope(streaming.TypeSelect, streaming.SelectPayload{University: entity})
	s.recorder.RecordSelect(s.ID, entity.ID)
}

// readLoop decodes inbound envelopes and dispatches them. It returns when
// the connection errors or closes.
func (s *Session) readLoop() {
	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
			default:
				if !ws.IsCloseError(err, ws.CloseNormalClosure, ws.CloseGoingAway) {
					s.logger.Warn("WebSocket read error", "error", err)
				}
			}
			return
		}

		var env streaming.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			s.logger.Debug("Undecodable message", "raw", string(message))
			continue
		}

		if _, err := s.disp.Dispatch(dispatcher.Event{
			Command:   env.Type,
			SessionID: s.ID,
			Payload:   env.Payload,
			Timestamp: time.Now(),
		}); err != nil {
			s.logger.Debug("Event rejected", "type", env.Type, "error", err)
		}
	}
}

// writeLoop drains the outbound channel and writes messages to the WebSocket.
func (s *Session) writeLoop() {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.out.Receive():
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.logger.Warn("WebSocket SetWriteDeadline error", "error", err)
				s.Close()
				return
			}
			if err := s.conn.WriteMessage(ws.TextMessage, data); err != nil {
				s.logger.Warn("WebSocket write error", "error", err)
				s.Close()
				return
			}
		}
	}
}

// sendEnvelope marshals the payload into an Envelope and pushes it to the
// write loop (fire-and-forget).
func (s *Session) sendEnvelope(msgType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("Marshal payload failed", "type", msgType, "error", err)
		return
	}
	data, err := json.Marshal(streaming.Envelope{Type: msgType, Payload: raw})
	if err != nil {
		s.logger.Error("Marshal envelope failed", "type", msgType, "error", err)
		return
	}
	s.send(data)
}

func (s *Session) sendAck(forType string) {
	data, err := json.Marshal(streaming.AckMessage{Type: "ack", For: forType})
	if err != nil {
		return
	}
	s.send(data)
}

// send pushes data to the write loop. Non-blocking; drops if channel full.
func (s *Session) send(data []byte) {
	if !s.out.TrySend(data) {
		s.logger.Warn("Send channel full, dropping message")
	}
}
