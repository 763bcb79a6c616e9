package viz

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/skillwall/internal/config"
	"github.com/san-kum/skillwall/internal/show"
	"github.com/san-kum/skillwall/internal/sim"
	"github.com/san-kum/skillwall/internal/survey"
)

type dotFields struct{}

func (dotFields) Field(i int) show.PointField {
	return show.PointField{{X: 640, Y: 360}}
}

type stubLoader struct {
	initial, refresh int
}

func (l *stubLoader) Initial(context.Context) survey.Update {
	l.initial++
	return survey.Update{
		Buckets: show.Buckets{"Fabrication": {Teach: 2, Learn: 2}},
		Rows:    4,
		Status:  "Loaded 4 responses",
	}
}

func (l *stubLoader) Refresh(context.Context) survey.Update {
	l.refresh++
	return survey.Update{Status: survey.StatusRefreshFailed}
}

func newTestModel(t *testing.T, loader Loader) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Morph.TextPoints = 10
	s, err := sim.New(cfg, dotFields{}, nil)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return NewModel(context.Background(), s, loader, time.Minute)
}

func TestModelTickAdvancesSession(t *testing.T) {
	m := newTestModel(t, nil)
	start := time.Now()

	next, cmd := m.Update(TickMsg(start))
	if cmd == nil {
		t.Fatal("expected another tick to be scheduled")
	}
	next, _ = next.Update(TickMsg(start.Add(50 * time.Millisecond)))

	snap := next.(Model).session.Snapshot()
	want := frameInterval + 50*time.Millisecond
	if snap.Clock != want {
		t.Errorf("expected clock %v, got %v", want, snap.Clock)
	}
}

func TestModelCapsLongFrames(t *testing.T) {
	m := newTestModel(t, nil)
	start := time.Now()
	next, _ := m.Update(TickMsg(start))
	next, _ = next.Update(TickMsg(start.Add(time.Hour)))

	if got := next.(Model).session.Snapshot().Clock; got != frameInterval+maxFrame {
		t.Errorf("expected capped clock, got %v", got)
	}
}

func TestModelAppliesLoads(t *testing.T) {
	loader := &stubLoader{}
	m := newTestModel(t, loader)

	msg := m.load(true)()
	next, cmd := m.Update(msg)
	if loader.initial != 1 {
		t.Errorf("expected one initial load, got %d", loader.initial)
	}
	if cmd == nil {
		t.Error("expected a refresh to be scheduled")
	}
	if got := next.(Model).session.Status(); got != "Loaded 4 responses" {
		t.Errorf("unexpected status %q", got)
	}

	next, _ = next.Update(next.(Model).load(false)())
	if got := next.(Model).session.Status(); got != survey.StatusRefreshFailed {
		t.Errorf("unexpected status %q", got)
	}
	if _, ok := next.(Model).session.Buckets()["Fabrication"]; !ok {
		t.Error("expected buckets kept after failed refresh")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()
	if !strings.Contains(view, "CEID EXCHANGE") {
		t.Error("expected phase label in view")
	}
	if !strings.Contains(view, survey.StatusFetching) {
		t.Error("expected status line in view")
	}
	for _, label := range []string{"Energy", "Peak", "Overlap"} {
		if !strings.Contains(view, label) {
			t.Errorf("expected %s in stats panel", label)
		}
	}
	if !m.canvas.Lit(80, 48) {
		t.Error("expected the cloud dot drawn at the canvas centre")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 151, Height: 44})
	got := next.(Model)
	if got.canvas.Width != 100 || got.canvas.Height != 40 {
		t.Errorf("expected 100x40 canvas, got %dx%d", got.canvas.Width, got.canvas.Height)
	}
}

func TestThemeKeyCycles(t *testing.T) {
	t.Cleanup(func() { SetTheme(ThemeCEID.Name) })
	m := newTestModel(t, nil)

	names := ThemeNames()
	SetTheme(names[0])
	for i := 1; i <= len(names); i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
		m = next.(Model)
		if want := names[i%len(names)]; CurrentTheme.Name != want {
			t.Fatalf("press %d: theme %q, want %q", i, CurrentTheme.Name, want)
		}
	}

	SetTheme("no-such-theme")
	if CurrentTheme.Name != ThemeCEID.Name {
		t.Errorf("unknown theme should fall back to ceid, got %q", CurrentTheme.Name)
	}
}
