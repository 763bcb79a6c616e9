// Package gui runs the display in a resizable raylib window.
package gui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/skillwall/internal/sim"
	"github.com/san-kum/skillwall/internal/survey"
)

var (
	ColBg   = rl.NewColor(10, 10, 10, 255)
	ColText = rl.NewColor(140, 140, 140, 255)
	ColDim  = rl.NewColor(90, 90, 90, 255)
)

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

// Refresher feeds survey updates to a session until ctx is done.
type Refresher interface {
	Run(ctx context.Context, out chan<- survey.Update)
}

type App struct {
	Session   *sim.Session
	Font      rl.Font
	ShowStats bool
	canvas    *Canvas
	logger    *slog.Logger
}

// initWindow opens a resizable window of the session's canvas size.
func initWindow(title string, w, h int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w), int32(h), title)
	rl.SetTargetFPS(60)
}

// loadFont uses Liberation Mono when installed and the raylib default font
// otherwise.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(session *sim.Session, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &App{
		Session: session,
		Font:    loadFont(),
		canvas:  &Canvas{},
		logger:  logger,
	}
}

// Run opens the window and blocks until it is closed. refresher may be nil.
func Run(ctx context.Context, session *sim.Session, refresher Refresher, logger *slog.Logger) {
	w, h := session.Size()
	initWindow("skillwall", int(w), int(h))
	defer rl.CloseWindow()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if refresher != nil {
		go refresher.Run(ctx, session.Updates())
	}

	app := NewApp(session, logger)
	app.RunLoop(ctx)
}

func (a *App) RunLoop(ctx context.Context) {
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return
		}
		a.Update()
		a.Draw()
	}
}

// Update steps the session by the last frame's duration. S toggles the
// stats overlay.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyS) {
		a.ShowStats = !a.ShowStats
	}
	if rl.IsWindowResized() {
		w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
		a.Session.Resize(w, h)
		a.logger.Info("window resized", "width", w, "height", h)
	}
	dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	a.Session.Step(dt)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.Session.Draw(a.canvas)
	a.DrawHUD()
	rl.EndDrawing()
}

// DrawHUD writes the survey status along the bottom edge, and the bubble
// metrics in the opposite corner when stats are on.
func (a *App) DrawHUD() {
	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	a.drawText(a.Session.Status(), 20, h-36, 18, ColText)
	if a.ShowStats {
		snap := a.Session.Snapshot()
		a.drawText(hudStats(snap), w-320, h-36, 14, ColDim)
	}
}

func hudStats(snap sim.Snapshot) string {
	return fmt.Sprintf("E %.2f  peak %.2f  overlap %.0f%%", snap.Energy, snap.PeakEnergy, snap.Overlap*100)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
