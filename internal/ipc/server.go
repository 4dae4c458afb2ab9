package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/1broseidon/dpiwatch/internal/platform"
	"github.com/1broseidon/dpiwatch/internal/runtimepath"
	"github.com/1broseidon/dpiwatch/internal/session"
)

// StatusSource reports the state of the watched window.
type StatusSource interface {
	Status() session.Status
}

// DisplayLister lists the connected monitors.
type DisplayLister interface {
	Displays() ([]platform.Display, error)
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	status       StatusSource
	displays     DisplayLister
	logger       *slog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server on the default socket path.
func NewServer(status StatusSource, displays DisplayLister, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, status, displays, logger), nil
}

// NewServerAt creates a new IPC server listening on socketPath.
func NewServerAt(socketPath string, status StatusSource, displays DisplayLister, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		status:     status,
		displays:   displays,
		logger:     logger,
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	var resp *Response
	req, err := ParseRequest(data)
	if err != nil {
		resp = NewErrorResponse(fmt.Sprintf("Invalid request: %v", err))
	} else {
		resp = s.handleCommand(req)
	}

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Warn("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleGetStatus returns the watched window's adaptation state
func (s *Server) handleGetStatus() *Response {
	st := s.status.Status()
	resp, err := NewOKResponse(StatusData{
		WindowID:          st.WindowID,
		Title:             st.Title,
		OldDPI:            st.OldDPI,
		NewDPI:            st.NewDPI,
		Factor:            st.Factor,
		ResizeMethod:      st.ResizeMethod,
		Phase:             st.Phase,
		BeingMoved:        st.BeingMoved,
		PendingAdjustment: st.PendingAdjustment,
		Adjustments:       st.Adjustments,
		UptimeSeconds:     int64(st.Uptime.Seconds()),
	})
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// handleGetMonitors returns all monitors with their effective DPI
func (s *Server) handleGetMonitors() *Response {
	displays, err := s.displays.Displays()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get monitors: %v", err))
	}

	resp, err := NewOKResponse(MonitorsData{Monitors: MonitorInfos(displays)})
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// MonitorInfos converts displays to their wire form.
func MonitorInfos(displays []platform.Display) []MonitorInfo {
	out := make([]MonitorInfo, 0, len(displays))
	for _, d := range displays {
		out = append(out, MonitorInfo{
			Handle: uint32(d.Handle),
			Name:   d.Name,
			X:      d.Bounds.Left,
			Y:      d.Bounds.Top,
			Width:  d.Bounds.Width(),
			Height: d.Bounds.Height(),
			DPI:    d.DPI,
		})
	}
	return out
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
