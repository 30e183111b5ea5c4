package mcp

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	ActiveLayout   string `json:"active_layout"`
	PlacementCount int    `json:"placement_count"`
	CurrentDesktop int    `json:"current_desktop"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
}

// ListLayoutsInput is the input for the list_layouts tool.
type ListLayoutsInput struct{}

// ListLayoutsOutput is the output for the list_layouts tool.
type ListLayoutsOutput struct {
	Layouts       []string `json:"layouts"`
	DefaultLayout string   `json:"default_layout"`
	ActiveLayout  string   `json:"active_layout"`
}

// ApplyLayoutInput is the input for the apply_layout tool.
type ApplyLayoutInput struct {
	LayoutName string `json:"layout_name" jsonschema:"required,Name of the layout to activate"`
}

// ApplyLayoutOutput is the output for the apply_layout tool.
type ApplyLayoutOutput struct {
	ActiveLayout string `json:"active_layout"`
}

// GetPlacementsInput is the input for the get_placements tool.
type GetPlacementsInput struct{}

// Placement describes one placed window.
type Placement struct {
	WindowID   uint32 `json:"window_id"`
	ZoneNumber int    `json:"zone_number"`
	Layout     string `json:"layout"`
	Screen     int    `json:"screen"`
	Desktop    int    `json:"desktop"`
}

// GetPlacementsOutput is the output for the get_placements tool.
type GetPlacementsOutput struct {
	Placements []Placement `json:"placements"`
}

// SnapWindowInput is the input for the snap_window tool.
type SnapWindowInput struct {
	WindowID   uint32 `json:"window_id,omitempty" jsonschema:"Window ID to snap (0 or omitted: the focused window)"`
	ZoneNumber int    `json:"zone_number" jsonschema:"required,Zone number of the active layout to snap into"`
}

// SnapWindowOutput is the output for the snap_window tool.
type SnapWindowOutput struct {
	Snapped bool `json:"snapped"`
}

// UnsnapWindowInput is the input for the unsnap_window tool.
type UnsnapWindowInput struct {
	WindowID uint32 `json:"window_id,omitempty" jsonschema:"Window ID to release (0 or omitted: the focused window)"`
}

// UnsnapWindowOutput is the output for the unsnap_window tool.
type UnsnapWindowOutput struct {
	Released bool `json:"released"`
}

// QuickSnapInput is the input for the quick_snap tool.
type QuickSnapInput struct{}

// QuickSnapOutput is the output for the quick_snap tool.
type QuickSnapOutput struct {
	Opened bool `json:"opened"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// Monitor describes one connected display.
type Monitor struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []Monitor `json:"monitors"`
}
