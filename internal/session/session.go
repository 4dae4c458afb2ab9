// Package session binds a DPI controller to one live window: it turns window
// system notifications into controller events and publishes a status
// snapshot for other goroutines.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/dpiwatch/internal/dpi"
	"github.com/1broseidon/dpiwatch/internal/platform"
	"github.com/1broseidon/dpiwatch/internal/uitree"
)

// Backend is the window system a session runs against.
type Backend interface {
	platform.Backend
	WatchWindow(windowID platform.WindowID, onConfigure func()) error
	WatchScreenChanges(onChange func()) error
	PrimaryButtonDown() (bool, error)
}

// Options configures a Session.
type Options struct {
	Method dpi.ResizeMethod
	// BaselineDPI is the DPI the window was laid out at.
	BaselineDPI float64
	// FontSize is the root font of the window's visual tree.
	FontSize float64
	Logger   *slog.Logger
	// SettleInterval is how often the pointer is polled during a drag.
	SettleInterval time.Duration
}

// Status is a snapshot of a running session.
type Status struct {
	WindowID          uint32
	Title             string
	OldDPI            float64
	NewDPI            float64
	Factor            float64
	ResizeMethod      string
	Phase             string
	BeingMoved        bool
	PendingAdjustment bool
	Adjustments       int
	Uptime            time.Duration
}

// Session drives one controller. Event callbacks and the settle loop are
// serialized by mu, so the controller only ever sees one caller at a time.
type Session struct {
	backend        Backend
	window         *Window
	title          string
	logger         *slog.Logger
	settleInterval time.Duration
	started        time.Time

	mu       sync.Mutex
	ctrl     *dpi.Controller
	dragging bool
	lastDPI  float64
}

// New creates a session for a window. The window's visual tree starts as a
// single root node covering the client area.
func New(backend Backend, windowID platform.WindowID, opts Options) (*Session, error) {
	info, err := backend.WindowInfo(windowID)
	if err != nil {
		return nil, fmt.Errorf("failed to read window 0x%x: %w", uint32(windowID), err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	baseline := opts.BaselineDPI
	if baseline <= 0 {
		baseline = dpi.DesignDPI
	}
	settle := opts.SettleInterval
	if settle <= 0 {
		settle = 100 * time.Millisecond
	}

	root := uitree.New(info.Title, platform.RectFromXYWH(0, 0, info.Client.Width, info.Client.Height))
	if opts.FontSize > 0 {
		root.SetFontSize(opts.FontSize)
	}

	s := &Session{
		backend:        backend,
		window:         NewWindow(backend, windowID, root, baseline),
		title:          info.Title,
		logger:         logger,
		settleInterval: settle,
	}
	s.ctrl = dpi.NewController(s.window, backend, clientToolkit{backend: backend, id: windowID}, dpi.Options{
		Method: opts.Method,
		Logger: logger,
		OnFactorChanged: func(factor float64) {
			logger.Info("scale factor changed", "factor", factor, "font_size", root.FontSize())
		},
	})
	return s, nil
}

// Start loads the controller and subscribes to window and screen events.
func (s *Session) Start() error {
	s.mu.Lock()
	s.started = time.Now()
	s.ctrl.HandleLoad()
	s.lastDPI = s.ctrl.State().Scale.New
	s.mu.Unlock()

	if err := s.backend.WatchWindow(s.window.ID(), s.onConfigure); err != nil {
		return err
	}
	if err := s.backend.WatchScreenChanges(s.onScreenChange); err != nil {
		return err
	}
	s.logger.Info("watching window", "title", s.title, "dpi", s.lastDPI)
	return nil
}

// Run polls for the end of a drag until ctx is cancelled. Window managers
// grab the pointer while dragging, so the button release never reaches us
// as an event.
func (s *Session) Run(ctx context.Context) {
	ticker := time.NewTicker(s.settleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.settle()
		}
	}
}

// Window returns the adapted window.
func (s *Session) Window() *Window { return s.window }

// Status returns a snapshot safe to read from any goroutine.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.ctrl.State()
	status := Status{
		WindowID:          uint32(s.window.ID()),
		Title:             s.title,
		OldDPI:            st.Scale.Old,
		NewDPI:            st.Scale.New,
		Factor:            st.Factor,
		ResizeMethod:      st.Method.String(),
		Phase:             st.Movement.Phase().String(),
		BeingMoved:        st.Movement.BeingMoved,
		PendingAdjustment: st.Movement.PendingAdjustment,
		Adjustments:       st.Adjustments,
	}
	if !s.started.IsZero() {
		status.Uptime = time.Since(s.started)
	}
	return status
}

func (s *Session) onConfigure() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dragging {
		down, err := s.backend.PrimaryButtonDown()
		if err != nil {
			s.logger.Debug("pointer query failed", "error", err)
		}
		if down {
			s.dragging = true
			s.ctrl.HandleMoveBegin()
		}
	}

	s.checkDPI()
	s.ctrl.HandleMove()
}

func (s *Session) onScreenChange() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkDPI()
}

func (s *Session) settle() {
	defer func() {
		if err := recover(); err != nil {
			s.logger.Error("settle panic recovered", "error", err)
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dragging {
		return
	}
	down, err := s.backend.PrimaryButtonDown()
	if err != nil || down {
		return
	}
	s.dragging = false
	s.ctrl.HandleMoveEnd()
	s.ctrl.HandleMove()
}

// checkDPI raises a DPI-changed notification when the monitor under the
// window runs at a different DPI than last seen, or while the controller has
// not yet applied it. Caller holds mu.
func (s *Session) checkDPI() {
	handle, ok := s.backend.MonitorFromWindow(s.window.ID())
	if !ok {
		return
	}
	current, err := s.backend.MonitorDPI(handle)
	if err != nil {
		s.logger.Debug("monitor DPI query failed", "monitor", uint32(handle), "error", err)
		return
	}
	if current == s.lastDPI && current == s.ctrl.State().Scale.Old {
		return
	}
	s.lastDPI = current

	bounds, err := s.window.Bounds()
	if err != nil {
		s.logger.Debug("failed to read window bounds", "error", err)
	}
	s.ctrl.HandleDPIChanged(current, bounds)
}
