package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"mosquito/internal/config"
	"mosquito/internal/logger"
	"mosquito/internal/sound"
	"mosquito/internal/swat"
)

// HUD strip above the playfield.
const hudHeight = 40

type Game struct {
	game  *swat.Game
	sound *sound.Board
	log   *logger.Logger

	fieldW, fieldH float64
	touchIDs       []ebiten.TouchID
}

func NewGame(cfg config.Tuning, sb *sound.Board, lg *logger.Logger, opts ...swat.Option) *Game {
	opts = append(opts, swat.WithLogger(lg))
	g := &Game{
		game:   swat.New(cfg, opts...),
		sound:  sb,
		log:    lg,
		fieldW: cfg.FieldW,
		fieldH: cfg.FieldH,
	}
	if sb != nil {
		sb.Bind(g.game.Events())
	}
	return g
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.fieldW), int(g.fieldH) + hudHeight
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	running := g.game.Running()
	if !running && (inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)) {
		g.start()
	}
	if running && inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.game.TogglePause()
	}

	// swatter follows mouse or first touch
	cx, cy := ebiten.CursorPosition()
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		cx, cy = ebiten.TouchPosition(g.touchIDs[0])
	}
	if fx, fy, ok := toField(cx, cy, g.fieldW, g.fieldH); ok {
		g.game.MoveCursor(fx, fy)
	}

	// clicks and taps count on release, like a DOM click
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.press(x, y)
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		g.press(x, y)
	}

	g.game.Update(time.Second / time.Duration(ebiten.TPS()))

	if g.sound != nil {
		g.sound.SetFlying(g.game.AnyFlying())
	}
	return nil
}

func (g *Game) start() {
	if err := g.game.Start(); err != nil {
		g.log.Warn("start: %v", err)
	}
}

func (g *Game) press(x, y int) {
	if !g.game.Running() {
		if g.game.Status().Banner == "" {
			g.start()
		}
		return
	}
	fx, fy, ok := toField(x, y, g.fieldW, g.fieldH)
	if !ok {
		return
	}
	g.game.Click(fx, fy)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorHUD)
	fill(screen, 0, hudHeight, g.fieldW, g.fieldH, colorField)

	st := g.game.Status()

	for _, m := range g.game.Mosquitos() {
		drawMosquito(screen, m, hudHeight)
	}

	if x, y, visible := g.game.Cursor(); visible {
		drawSwatter(screen, x, y+hudHeight)
	}

	// HUD
	hud := fmt.Sprintf("Level: %d   Bites: %d / %d   Smashed: %d   Time: %d", st.Level, st.Bites, st.MaxBites, st.Score, st.TimeLeft)
	text.Draw(screen, hud, basicfont.Face7x13, 10, 25, color.White)
	best := fmt.Sprintf("Best: %d", st.Best)
	text.Draw(screen, best, basicfont.Face7x13, int(g.fieldW)-10-textWidth(best), 25, color.White)

	switch {
	case st.Banner != "":
		drawBanner(screen, st.Banner, g.fieldW, g.fieldH+hudHeight)
	case st.Paused:
		drawBanner(screen, "PAUSED - press P to resume", g.fieldW, g.fieldH+hudHeight)
	case st.Phase == swat.PhaseIdle || st.Phase == swat.PhaseOver:
		drawBanner(screen, "Click or press SPACE to start. Smash mosquitos once they land!", g.fieldW, g.fieldH+hudHeight)
	}
}

// toField maps a screen pixel to playfield coordinates, rejecting the HUD.
func toField(x, y int, fieldW, fieldH float64) (float64, float64, bool) {
	fx := float64(x)
	fy := float64(y - hudHeight)
	if fx < 0 || fy < 0 || fx > fieldW || fy > fieldH {
		return 0, 0, false
	}
	return fx, fy, true
}

func main() {
	envPath := flag.String("env", ".env", "optional env file with MOSQUITO_* overrides")
	seed := flag.Int64("seed", 0, "random seed (0 uses the clock)")
	flag.Parse()

	lg := logger.NewStd()
	cfg, err := config.Load(*envPath)
	if err != nil {
		log.Fatal(err)
	}

	var sb *sound.Board
	if !cfg.Mute {
		sb, err = sound.NewBoard(cfg, lg)
		if err != nil {
			lg.Warn("audio disabled: %v", err)
			sb = nil
		}
	}

	var opts []swat.Option
	if *seed != 0 {
		opts = append(opts, swat.WithRand(rand.New(rand.NewSource(*seed))))
	}

	ebiten.SetWindowSize(int(cfg.FieldW), int(cfg.FieldH)+hudHeight)
	ebiten.SetWindowTitle("Mosquito Swat")
	if err := ebiten.RunGame(NewGame(cfg, sb, lg, opts...)); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
