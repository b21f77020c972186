// Command mosquito-tui plays the game in a terminal with mouse support.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"mosquito/internal/config"
	"mosquito/internal/logger"
	"mosquito/internal/swat"
)

const (
	logDir      = "logs"
	logFileName = "mosquito-tui.log"
	frameTime   = 16 * time.Millisecond
	maxStep     = 100 * time.Millisecond
)

var (
	styleHUD     = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleField   = tcell.StyleDefault.Background(tcell.ColorWheat)
	styleFlying  = styleField.Foreground(tcell.ColorDimGray)
	styleLanded  = styleField.Foreground(tcell.ColorBlack).Bold(true)
	styleBitten  = styleField.Foreground(tcell.ColorRed).Bold(true)
	styleSmashed = styleField.Foreground(tcell.ColorDarkRed)
	styleSwatter = styleField.Foreground(tcell.ColorBlue).Bold(true)
	styleBanner  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorYellow).Bold(true)
)

type Game struct {
	screen        tcell.Screen
	width, height int

	game  *swat.Game
	sound *SoundManager
	log   *logger.Logger

	mouseDown bool
	lastTick  time.Time
}

func NewGame(cfg config.Tuning, lg *logger.Logger, opts ...swat.Option) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	g := &Game{
		screen:   screen,
		game:     swat.New(cfg, append(opts, swat.WithLogger(lg))...),
		log:      lg,
		lastTick: time.Now(),
	}
	g.width, g.height = screen.Size()

	if !cfg.Mute {
		sm := NewSoundManager(cfg)
		if err := sm.Initialize(); err != nil {
			// game runs fine without sound
			lg.Warn("audio initialization failed: %v", err)
		} else {
			g.sound = sm
			sm.Bind(g.game.Events())
		}
	}
	return g, nil
}

// fieldRows is the playfield height in cells: one HUD row on top, one
// message row at the bottom.
func (g *Game) fieldRows() int {
	return max(1, g.height-2)
}

func (g *Game) toField(cx, cy int) (float64, float64, bool) {
	return cellToField(cx, cy-1, g.width, g.fieldRows(), g.game.Config())
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyEnter:
			g.start()
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 's', ' ':
				g.start()
			case 'p':
				g.game.TogglePause()
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		fx, fy, inField := g.toField(x, y)
		if inField {
			g.game.MoveCursor(fx, fy)
		}
		down := ev.Buttons()&tcell.Button1 != 0
		if g.mouseDown && !down {
			g.release(fx, fy, inField)
		}
		g.mouseDown = down

	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.screen.Sync()
	}
	return true
}

func (g *Game) start() {
	if g.game.Running() {
		return
	}
	if err := g.game.Start(); err != nil {
		g.log.Warn("start: %v", err)
	}
}

func (g *Game) release(fx, fy float64, inField bool) {
	if !g.game.Running() {
		if g.game.Status().Banner == "" {
			g.start()
		}
		return
	}
	if inField {
		g.game.Click(fx, fy)
	}
}

func (g *Game) update() {
	now := time.Now()
	dt := min(now.Sub(g.lastTick), maxStep)
	g.lastTick = now

	g.game.Update(dt)
	if g.sound != nil {
		g.sound.SetFlying(g.game.AnyFlying())
	}
}

func (g *Game) draw() {
	g.screen.Clear()
	cfg := g.game.Config()
	rows := g.fieldRows()
	st := g.game.Status()

	for y := 1; y <= rows; y++ {
		for x := 0; x < g.width; x++ {
			g.screen.SetContent(x, y, ' ', nil, styleField)
		}
	}

	for _, m := range g.game.Mosquitos() {
		cx, cy := m.Center()
		x, y := fieldToCell(cx, cy, g.width, rows, cfg)
		r, style := mosquitoGlyph(m.State)
		g.screen.SetContent(x, y+1, r, nil, style)
	}

	if fx, fy, visible := g.game.Cursor(); visible {
		x, y := fieldToCell(fx, fy, g.width, rows, cfg)
		g.screen.SetContent(x, y+1, '#', nil, styleSwatter)
	}

	hud := fmt.Sprintf(" Level %d | Bites %d/%d | Smashed %d | Time %d | Best %d", st.Level, st.Bites, st.MaxBites, st.Score, st.TimeLeft, st.Best)
	g.putLine(0, hud, styleHUD)

	msg := st.Banner
	switch {
	case msg != "":
	case st.Paused:
		msg = "PAUSED - p to resume"
	case !g.game.Running():
		msg = "s or click to start, p to pause, q to quit"
	}
	g.putLine(g.height-1, msg, styleBanner)

	g.screen.Show()
}

func (g *Game) putLine(y int, s string, style tcell.Style) {
	x := 0
	for _, r := range s {
		if x >= g.width {
			break
		}
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < g.width; x++ {
		g.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (g *Game) run() {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.update()
			g.draw()
		}
	}
}

func (g *Game) close() {
	if g.sound != nil {
		g.sound.Cleanup()
	}
	g.screen.Fini()
}

func mosquitoGlyph(s swat.State) (rune, tcell.Style) {
	switch s {
	case swat.Landed:
		return 'M', styleLanded
	case swat.Bitten:
		return '!', styleBitten
	case swat.Smashed:
		return '*', styleSmashed
	}
	return 'w', styleFlying
}

// cellToField maps a playfield cell to the field coordinate at its centre.
func cellToField(cx, cy, cols, rows int, cfg config.Tuning) (float64, float64, bool) {
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return 0, 0, false
	}
	fx := (float64(cx) + 0.5) * cfg.FieldW / float64(cols)
	fy := (float64(cy) + 0.5) * cfg.FieldH / float64(rows)
	return fx, fy, true
}

// fieldToCell is the inverse of cellToField, clamped to the grid.
func fieldToCell(fx, fy float64, cols, rows int, cfg config.Tuning) (int, int) {
	x := int(fx * float64(cols) / cfg.FieldW)
	y := int(fy * float64(rows) / cfg.FieldH)
	return min(max(x, 0), cols-1), min(max(y, 0), rows-1)
}

func setupLogging(debug bool) (*logger.Logger, *os.File) {
	if !debug {
		return logger.Discard(), nil
	}
	lg, f, err := logger.OpenFile(logDir, logFileName)
	if err != nil {
		log.Printf("log file unavailable: %v", err)
		return logger.Discard(), nil
	}
	return lg, f
}

func main() {
	envPath := flag.String("env", ".env", "optional env file with MOSQUITO_* overrides")
	seed := flag.Int64("seed", 0, "random seed (0 uses the clock)")
	debug := flag.Bool("debug", false, "write a log file under "+logDir)
	flag.Parse()

	cfg, err := config.Load(*envPath)
	if err != nil {
		log.Fatal(err)
	}

	lg, logFile := setupLogging(*debug)
	if logFile != nil {
		defer logFile.Close()
	}

	var opts []swat.Option
	if *seed != 0 {
		opts = append(opts, swat.WithRand(rand.New(rand.NewSource(*seed))))
	}

	g, err := NewGame(cfg, lg, opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer g.close()

	g.run()
}
