package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload        CommandType = "RELOAD"
	CommandGetStatus     CommandType = "GET_STATUS"
	CommandGetMonitors   CommandType = "GET_MONITORS"
	CommandListLayouts   CommandType = "LIST_LAYOUTS"
	CommandApplyLayout   CommandType = "APPLY_LAYOUT"
	CommandGetPlacements CommandType = "GET_PLACEMENTS"
	CommandSnapWindow    CommandType = "SNAP_WINDOW"
	CommandUnsnapWindow  CommandType = "UNSNAP_WINDOW"
	CommandQuickSnap     CommandType = "QUICK_SNAP"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	ActiveLayout   string `json:"active_layout"`
	PlacementCount int    `json:"placement_count"`
	CurrentDesktop int    `json:"current_desktop"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	DaemonRunning  bool   `json:"daemon_running"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// LayoutsData represents the data returned by LIST_LAYOUTS
type LayoutsData struct {
	Layouts       []string `json:"layouts"`
	DefaultLayout string   `json:"default_layout"`
	ActiveLayout  string   `json:"active_layout"`
}

// PlacementInfo is one window's placement as returned by GET_PLACEMENTS
type PlacementInfo struct {
	WindowID   uint32 `json:"window_id"`
	ZoneNumber int    `json:"zone_number"`
	Layout     string `json:"layout"`
	Screen     int    `json:"screen"`
	Desktop    int    `json:"desktop"`
	Title      string `json:"title,omitempty"`
}

// PlacementsData represents the data returned by GET_PLACEMENTS
type PlacementsData struct {
	Placements []PlacementInfo `json:"placements"`
}

// ApplyLayoutPayload represents the payload for APPLY_LAYOUT
type ApplyLayoutPayload struct {
	LayoutName string `json:"layout_name"`
}

// SnapWindowPayload represents the payload for SNAP_WINDOW
type SnapWindowPayload struct {
	WindowID   uint32 `json:"window_id"` // 0 means the active window
	ZoneNumber int    `json:"zone_number"`
}

// UnsnapWindowPayload represents the payload for UNSNAP_WINDOW
type UnsnapWindowPayload struct {
	WindowID uint32 `json:"window_id"` // 0 means the active window
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
