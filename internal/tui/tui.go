// Package tui is the interactive layout browser. It renders the configured
// layouts with an ASCII zone preview and talks to the daemon over IPC to
// apply layouts and inspect placements.
package tui

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/1broseidon/zonesnap/internal/config"
	"github.com/1broseidon/zonesnap/internal/ipc"
	"golang.org/x/term"
)

// TUI represents the terminal user interface state.
type TUI struct {
	configPath string
	cfg        *config.Config
	client     *ipc.Client

	// UI state
	layouts         []string // sorted layout names
	selectedIndex   int
	activeLayout    string
	placements      []ipc.PlacementInfo
	showPlacements  bool
	daemonReachable bool
	lastError       string
	statusNote      string
	fatalErr        error

	// Terminal state
	oldState *term.State
	width    int
	height   int
}

// New creates a new TUI instance. An empty configPath uses the default.
func New(configPath string) *TUI {
	return &TUI{
		configPath: configPath,
		client:     ipc.NewClient(),
	}
}

// Run starts the TUI main loop.
func (t *TUI) Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	// Enter raw mode
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t.oldState = oldState
	defer t.restore()

	t.updateSize()

	// Non-fatal; show error inline so the user can press 'e' to fix.
	_ = t.loadConfig()
	t.refreshDaemon()

	t.render()

	buf := make([]byte, 32)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return err
		}

		if t.handleInput(buf[:n]) {
			break
		}

		t.render()
	}

	if t.fatalErr != nil {
		return t.fatalErr
	}
	return nil
}

func (t *TUI) restore() {
	if t.oldState != nil {
		term.Restore(int(os.Stdin.Fd()), t.oldState)
	}
	// Clear screen and show cursor on exit
	fmt.Print("\x1b[0m")   // reset
	fmt.Print("\x1b[?25h") // show cursor
	fmt.Print("\x1b[2J")   // clear screen
	fmt.Print("\x1b[H")    // home cursor
}

func (t *TUI) updateSize() {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		t.width = 80
		t.height = 24
		return
	}
	t.width = w
	t.height = h
}

func (t *TUI) loadConfig() error {
	prevSelected := t.selectedLayoutName()

	var cfg *config.Config
	var err error

	if t.configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFromPath(t.configPath)
	}

	if err != nil {
		t.lastError = err.Error()
		// Keep old config if we have one
		if t.cfg != nil {
			return nil
		}
		return err
	}

	t.cfg = cfg
	t.lastError = ""

	t.layouts = make([]string, 0, len(cfg.Layouts))
	for name := range cfg.Layouts {
		t.layouts = append(t.layouts, name)
	}
	sort.Strings(t.layouts)

	if len(t.layouts) == 0 {
		t.selectedIndex = 0
		return nil
	}

	// Preserve current selection if it still exists; otherwise fall back to
	// the default layout.
	if prevSelected != "" {
		for i, name := range t.layouts {
			if name == prevSelected {
				t.selectedIndex = i
				return nil
			}
		}
	}

	for i, name := range t.layouts {
		if name == cfg.DefaultLayout {
			t.selectedIndex = i
			return nil
		}
	}
	t.selectedIndex = 0

	return nil
}

// refreshDaemon pulls the active layout and placements over IPC. A missing
// daemon is not an error; the TUI still works as a config browser.
func (t *TUI) refreshDaemon() {
	layouts, err := t.client.ListLayouts()
	if err != nil {
		t.daemonReachable = false
		t.activeLayout = ""
		t.placements = nil
		return
	}
	t.daemonReachable = true
	t.activeLayout = layouts.ActiveLayout

	placements, err := t.client.GetPlacements()
	if err != nil {
		t.placements = nil
		return
	}
	t.placements = placements.Placements
	sort.Slice(t.placements, func(i, j int) bool {
		return t.placements[i].ZoneNumber < t.placements[j].ZoneNumber
	})
}

func (t *TUI) handleInput(input []byte) bool {
	if len(input) == 0 {
		return false
	}

	for len(input) > 0 {
		// Check for escape sequences
		if len(input) >= 3 && input[0] == 0x1b && input[1] == '[' {
			switch input[2] {
			case 'A': // Up arrow
				t.moveSelection(-1)
			case 'B': // Down arrow
				t.moveSelection(1)
			}
			input = input[3:]
			continue
		}

		// Single character commands
		switch input[0] {
		case 'q', 0x1b: // q or Escape
			return true
		case 0x03: // Ctrl+C
			return true
		case 'j': // vim down
			t.moveSelection(1)
		case 'k': // vim up
			t.moveSelection(-1)
		case '\r', 'a': // apply selected layout
			t.applySelected()
		case 'p': // toggle placements panel
			t.showPlacements = !t.showPlacements
			t.refreshDaemon()
		case 'e': // edit
			if err := t.editConfig(); err != nil {
				t.fatalErr = err
				return true
			}
		case 'r': // reload
			_ = t.loadConfig()
			if t.daemonReachable {
				if err := t.client.Reload(); err != nil {
					t.lastError = err.Error()
				}
			}
			t.refreshDaemon()
		}

		input = input[1:]
	}

	return false
}

func (t *TUI) moveSelection(delta int) {
	if len(t.layouts) == 0 {
		return
	}
	t.selectedIndex += delta
	if t.selectedIndex < 0 {
		t.selectedIndex = len(t.layouts) - 1
	} else if t.selectedIndex >= len(t.layouts) {
		t.selectedIndex = 0
	}
}

func (t *TUI) applySelected() {
	name := t.selectedLayoutName()
	if name == "" {
		return
	}
	if err := t.client.ApplyLayout(name); err != nil {
		t.lastError = err.Error()
		t.daemonReachable = false
		return
	}
	t.lastError = ""
	t.statusNote = fmt.Sprintf("applied layout %q", name)
	t.refreshDaemon()
}

func (t *TUI) editConfig() (err error) {
	// Restore terminal state before launching editor
	t.restore()

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}

	configPath := t.configPath
	if configPath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			t.lastError = err.Error()
			return t.reenterRawMode()
		}
		configPath = path
	}

	editorParts := strings.Fields(editor)
	if len(editorParts) == 0 {
		editorParts = []string{"vi"}
	}

	cmd := exec.Command(editorParts[0], append(editorParts[1:], configPath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		t.lastError = fmt.Sprintf("editor failed: %v", err)
	}

	if err := t.reenterRawMode(); err != nil {
		return err
	}

	// Reload config after editing
	_ = t.loadConfig()
	t.updateSize()

	return nil
}

func (t *TUI) reenterRawMode() error {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to re-enter raw mode: %w", err)
	}
	t.oldState = oldState
	return nil
}

func (t *TUI) selectedLayout() *config.LayoutSpec {
	if t.cfg == nil || len(t.layouts) == 0 {
		return nil
	}
	name := t.layouts[t.selectedIndex]
	layout, ok := t.cfg.Layouts[name]
	if !ok {
		return nil
	}
	return &layout
}

func (t *TUI) selectedLayoutName() string {
	if len(t.layouts) == 0 {
		return ""
	}
	return t.layouts[t.selectedIndex]
}
