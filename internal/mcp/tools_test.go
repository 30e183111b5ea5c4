package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/1broseidon/zonesnap/internal/ipc"
)

type fakeDaemon struct {
	applied   []string
	snapped   [][2]uint32
	unsnapped []uint32
	quickOpen int
	err       error
}

func (f *fakeDaemon) GetStatus() (*ipc.StatusData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.StatusData{ActiveLayout: "halves", PlacementCount: 3, CurrentDesktop: 1, UptimeSeconds: 42}, nil
}

func (f *fakeDaemon) GetMonitors() (*ipc.MonitorsData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.MonitorsData{Monitors: []ipc.MonitorInfo{{ID: 0, Name: "DP-1", Width: 2560, Height: 1440}}}, nil
}

func (f *fakeDaemon) ListLayouts() (*ipc.LayoutsData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.LayoutsData{Layouts: []string{"grid", "halves"}, DefaultLayout: "halves", ActiveLayout: "grid"}, nil
}

func (f *fakeDaemon) ApplyLayout(name string) error {
	if f.err != nil {
		return f.err
	}
	f.applied = append(f.applied, name)
	return nil
}

func (f *fakeDaemon) GetPlacements() (*ipc.PlacementsData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.PlacementsData{Placements: []ipc.PlacementInfo{
		{WindowID: 42, ZoneNumber: 2, Layout: "grid", Screen: 0, Desktop: 1},
	}}, nil
}

func (f *fakeDaemon) SnapWindow(windowID uint32, zoneNumber int) error {
	if f.err != nil {
		return f.err
	}
	f.snapped = append(f.snapped, [2]uint32{windowID, uint32(zoneNumber)})
	return nil
}

func (f *fakeDaemon) UnsnapWindow(windowID uint32) error {
	if f.err != nil {
		return f.err
	}
	f.unsnapped = append(f.unsnapped, windowID)
	return nil
}

func (f *fakeDaemon) QuickSnap() error {
	if f.err != nil {
		return f.err
	}
	f.quickOpen++
	return nil
}

func newTestServer(daemon Daemon) *Server {
	return NewServerWithDaemon(daemon)
}

func TestGetStatusTool(t *testing.T) {
	s := newTestServer(&fakeDaemon{})

	_, out, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{})
	if err != nil {
		t.Fatalf("get_status: %v", err)
	}
	if out.ActiveLayout != "halves" || out.PlacementCount != 3 {
		t.Errorf("unexpected status output: %+v", out)
	}
}

func TestListLayoutsTool(t *testing.T) {
	s := newTestServer(&fakeDaemon{})

	_, out, err := s.handleListLayouts(context.Background(), nil, ListLayoutsInput{})
	if err != nil {
		t.Fatalf("list_layouts: %v", err)
	}
	if len(out.Layouts) != 2 || out.ActiveLayout != "grid" || out.DefaultLayout != "halves" {
		t.Errorf("unexpected layouts output: %+v", out)
	}
}

func TestApplyLayoutTool(t *testing.T) {
	daemon := &fakeDaemon{}
	s := newTestServer(daemon)

	_, out, err := s.handleApplyLayout(context.Background(), nil, ApplyLayoutInput{LayoutName: "grid"})
	if err != nil {
		t.Fatalf("apply_layout: %v", err)
	}
	if out.ActiveLayout != "grid" {
		t.Errorf("expected grid, got %q", out.ActiveLayout)
	}
	if len(daemon.applied) != 1 || daemon.applied[0] != "grid" {
		t.Errorf("unexpected applies: %v", daemon.applied)
	}
}

func TestApplyLayoutRequiresName(t *testing.T) {
	daemon := &fakeDaemon{}
	s := newTestServer(daemon)

	if _, _, err := s.handleApplyLayout(context.Background(), nil, ApplyLayoutInput{}); err == nil {
		t.Fatal("expected error for missing layout name")
	}
	if len(daemon.applied) != 0 {
		t.Errorf("invalid apply should not reach the daemon, got %v", daemon.applied)
	}
}

func TestSnapWindowTool(t *testing.T) {
	daemon := &fakeDaemon{}
	s := newTestServer(daemon)

	_, out, err := s.handleSnapWindow(context.Background(), nil, SnapWindowInput{WindowID: 42, ZoneNumber: 3})
	if err != nil {
		t.Fatalf("snap_window: %v", err)
	}
	if !out.Snapped {
		t.Error("expected snapped=true")
	}
	if len(daemon.snapped) != 1 || daemon.snapped[0] != [2]uint32{42, 3} {
		t.Errorf("unexpected snaps: %v", daemon.snapped)
	}
}

func TestSnapWindowRejectsBadZone(t *testing.T) {
	s := newTestServer(&fakeDaemon{})
	if _, _, err := s.handleSnapWindow(context.Background(), nil, SnapWindowInput{ZoneNumber: 0}); err == nil {
		t.Fatal("expected error for zone_number 0")
	}
}

func TestUnsnapAndQuickSnapTools(t *testing.T) {
	daemon := &fakeDaemon{}
	s := newTestServer(daemon)

	if _, _, err := s.handleUnsnapWindow(context.Background(), nil, UnsnapWindowInput{WindowID: 42}); err != nil {
		t.Fatalf("unsnap_window: %v", err)
	}
	if _, _, err := s.handleQuickSnap(context.Background(), nil, QuickSnapInput{}); err != nil {
		t.Fatalf("quick_snap: %v", err)
	}
	if len(daemon.unsnapped) != 1 || daemon.quickOpen != 1 {
		t.Errorf("unexpected daemon calls: unsnapped=%v quick=%d", daemon.unsnapped, daemon.quickOpen)
	}
}

func TestDaemonErrorsPropagate(t *testing.T) {
	daemon := &fakeDaemon{err: errors.New("daemon down")}
	s := newTestServer(daemon)

	if _, _, err := s.handleGetPlacements(context.Background(), nil, GetPlacementsInput{}); err == nil {
		t.Fatal("expected error from daemon")
	}
	if _, _, err := s.handleListMonitors(context.Background(), nil, ListMonitorsInput{}); err == nil {
		t.Fatal("expected error from daemon")
	}
}
