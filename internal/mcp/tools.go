package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.daemon.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}

	return nil, GetStatusOutput{
		ActiveLayout:   status.ActiveLayout,
		PlacementCount: status.PlacementCount,
		CurrentDesktop: status.CurrentDesktop,
		UptimeSeconds:  status.UptimeSeconds,
	}, nil
}

func (s *Server) handleListLayouts(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListLayoutsInput) (*mcpsdk.CallToolResult, ListLayoutsOutput, error) {
	layouts, err := s.daemon.ListLayouts()
	if err != nil {
		return nil, ListLayoutsOutput{}, err
	}

	return nil, ListLayoutsOutput{
		Layouts:       layouts.Layouts,
		DefaultLayout: layouts.DefaultLayout,
		ActiveLayout:  layouts.ActiveLayout,
	}, nil
}

func (s *Server) handleApplyLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args ApplyLayoutInput) (*mcpsdk.CallToolResult, ApplyLayoutOutput, error) {
	if args.LayoutName == "" {
		return nil, ApplyLayoutOutput{}, fmt.Errorf("layout_name is required")
	}

	if err := s.daemon.ApplyLayout(args.LayoutName); err != nil {
		return nil, ApplyLayoutOutput{}, err
	}

	return nil, ApplyLayoutOutput{ActiveLayout: args.LayoutName}, nil
}

func (s *Server) handleGetPlacements(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetPlacementsInput) (*mcpsdk.CallToolResult, GetPlacementsOutput, error) {
	data, err := s.daemon.GetPlacements()
	if err != nil {
		return nil, GetPlacementsOutput{}, err
	}

	out := GetPlacementsOutput{Placements: make([]Placement, len(data.Placements))}
	for i, p := range data.Placements {
		out.Placements[i] = Placement{
			WindowID:   p.WindowID,
			ZoneNumber: p.ZoneNumber,
			Layout:     p.Layout,
			Screen:     p.Screen,
			Desktop:    p.Desktop,
		}
	}
	return nil, out, nil
}

func (s *Server) handleSnapWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args SnapWindowInput) (*mcpsdk.CallToolResult, SnapWindowOutput, error) {
	if args.ZoneNumber < 1 {
		return nil, SnapWindowOutput{}, fmt.Errorf("zone_number must be at least 1")
	}

	if err := s.daemon.SnapWindow(args.WindowID, args.ZoneNumber); err != nil {
		return nil, SnapWindowOutput{}, err
	}
	return nil, SnapWindowOutput{Snapped: true}, nil
}

func (s *Server) handleUnsnapWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args UnsnapWindowInput) (*mcpsdk.CallToolResult, UnsnapWindowOutput, error) {
	if err := s.daemon.UnsnapWindow(args.WindowID); err != nil {
		return nil, UnsnapWindowOutput{}, err
	}
	return nil, UnsnapWindowOutput{Released: true}, nil
}

func (s *Server) handleQuickSnap(_ context.Context, _ *mcpsdk.CallToolRequest, _ QuickSnapInput) (*mcpsdk.CallToolResult, QuickSnapOutput, error) {
	if err := s.daemon.QuickSnap(); err != nil {
		return nil, QuickSnapOutput{}, err
	}
	return nil, QuickSnapOutput{Opened: true}, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	data, err := s.daemon.GetMonitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}

	out := ListMonitorsOutput{Monitors: make([]Monitor, len(data.Monitors))}
	for i, m := range data.Monitors {
		out.Monitors[i] = Monitor{
			ID:     m.ID,
			Name:   m.Name,
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		}
	}
	return nil, out, nil
}
