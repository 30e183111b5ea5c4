package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/zonesnap/internal/runtimepath"
)

// Controller is the daemon surface the IPC server drives. Implementations
// funnel mutations onto the daemon's owner thread; the server only cares
// about the results.
type Controller interface {
	Status() StatusData
	Monitors() (MonitorsData, error)
	Layouts() LayoutsData
	ApplyLayout(name string) error
	Placements() PlacementsData
	SnapWindow(windowID uint32, zoneNumber int) error
	UnsnapWindow(windowID uint32) error
	QuickSnap() error
	Reload() error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	controller   Controller
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(controller Controller) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		controller: controller,
		startTime:  time.Now(),
	}, nil
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
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// Uptime returns the time since the server was created.
func (s *Server) Uptime() time.Duration {
	return time.Since(s.startTime)
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
			log.Printf("IPC accept error: %v", err)
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
		log.Printf("IPC read error: %v", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandListLayouts:
		return s.handleListLayouts()
	case CommandApplyLayout:
		return s.handleApplyLayout(req.Payload)
	case CommandGetPlacements:
		return s.handleGetPlacements()
	case CommandSnapWindow:
		return s.handleSnapWindow(req.Payload)
	case CommandUnsnapWindow:
		return s.handleUnsnapWindow(req.Payload)
	case CommandQuickSnap:
		return s.handleQuickSnap()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	if err := s.controller.Reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleGetStatus() *Response {
	status := s.controller.Status()
	status.UptimeSeconds = int64(s.Uptime().Seconds())
	status.DaemonRunning = true

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleGetMonitors() *Response {
	data, err := s.controller.Monitors()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get monitors: %v", err))
	}

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleListLayouts() *Response {
	resp, _ := NewOKResponse(s.controller.Layouts())
	return resp
}

func (s *Server) handleApplyLayout(payload json.RawMessage) *Response {
	var req ApplyLayoutPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid apply payload: %v", err))
	}
	if req.LayoutName == "" {
		return NewErrorResponse("layout_name is required")
	}

	if err := s.controller.ApplyLayout(req.LayoutName); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to apply layout: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleGetPlacements() *Response {
	resp, _ := NewOKResponse(s.controller.Placements())
	return resp
}

func (s *Server) handleSnapWindow(payload json.RawMessage) *Response {
	var req SnapWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid snap payload: %v", err))
	}
	if req.ZoneNumber <= 0 {
		return NewErrorResponse("zone_number is required")
	}

	if err := s.controller.SnapWindow(req.WindowID, req.ZoneNumber); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to snap window: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleUnsnapWindow(payload json.RawMessage) *Response {
	var req UnsnapWindowPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid unsnap payload: %v", err))
		}
	}

	if err := s.controller.UnsnapWindow(req.WindowID); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to unsnap window: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleQuickSnap() *Response {
	if err := s.controller.QuickSnap(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to open quick snap: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
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
