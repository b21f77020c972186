// Package swat is the mosquito game core: the per-mosquito fly/land/bite
// cycle, the level countdown and the win/loss rules. It runs on a virtual
// clock advanced by the frontend's frame loop and has no rendering or audio.
package swat

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"mosquito/internal/config"
	"mosquito/internal/logger"
)

var ErrAlreadyRunning = errors.New("game already running")

type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseIntermission
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseIntermission:
		return "intermission"
	case PhaseOver:
		return "over"
	}
	return "unknown"
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeLoss
	OutcomeWin
)

// Result describes how the last game ended.
type Result struct {
	Outcome Outcome
	Level   int
	Score   int
	Reason  string
}

// Status is a HUD snapshot.
type Status struct {
	Phase    Phase
	Paused   bool
	Level    int
	Bites    int
	MaxBites int
	Score    int
	TimeLeft int
	Best     int
	Banner   string
}

type Option func(*Game)

func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

func WithLogger(l *logger.Logger) Option {
	return func(g *Game) { g.log = l }
}

type Game struct {
	cfg   config.Tuning
	rng   *rand.Rand
	sched *Scheduler
	bus   *EventBus
	log   *logger.Logger

	running bool
	paused  bool
	phase   Phase

	level    int
	bites    int
	score    int
	timeLeft int
	best     int

	mosquitos []*Mosquito
	nextID    int

	countdown    TimerID
	intermission TimerID

	banner      string
	bannerTimer TimerID

	cursorX, cursorY float64
	last             Result
}

func New(cfg config.Tuning, opts ...Option) *Game {
	g := &Game{
		cfg:   cfg,
		sched: NewScheduler(),
		bus:   NewEventBus(),
		level: 1,
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.log == nil {
		g.log = logger.Discard()
	}
	g.bus.SubscribeAll(g.logEvent)
	return g
}

func (g *Game) Events() *EventBus     { return g.bus }
func (g *Game) Config() config.Tuning { return g.cfg }
func (g *Game) Running() bool         { return g.running }
func (g *Game) LastResult() Result    { return g.last }

func (g *Game) Status() Status {
	return Status{
		Phase:    g.phase,
		Paused:   g.paused,
		Level:    g.level,
		Bites:    g.bites,
		MaxBites: g.cfg.MaxBites,
		Score:    g.score,
		TimeLeft: g.timeLeft,
		Best:     g.best,
		Banner:   g.banner,
	}
}

// Mosquitos returns copies of the live mosquitos in spawn order.
func (g *Game) Mosquitos() []Mosquito {
	out := make([]Mosquito, len(g.mosquitos))
	for i, m := range g.mosquitos {
		out[i] = *m
	}
	return out
}

// AnyFlying drives the flight sound loop.
func (g *Game) AnyFlying() bool {
	if !g.running || g.paused {
		return false
	}
	for _, m := range g.mosquitos {
		if m.State == Flying {
			return true
		}
	}
	return false
}

// Cursor is the swatter position; visible only while a game runs.
func (g *Game) Cursor() (x, y float64, visible bool) {
	return g.cursorX, g.cursorY, g.running
}

func (g *Game) MoveCursor(x, y float64) {
	if !g.running {
		return
	}
	g.cursorX = clamp(x, 0, g.cfg.FieldW)
	g.cursorY = clamp(y, 0, g.cfg.FieldH)
}

// Start begins a new game at level 1.
func (g *Game) Start() error {
	if g.running {
		return ErrAlreadyRunning
	}
	g.running = true
	g.paused = false
	g.level = 1
	g.bites = 0
	g.score = 0
	g.last = Result{}
	// only the previous game-over banner can still be pending
	g.sched.Reset()
	g.banner, g.bannerTimer = "", 0
	g.startLevel()
	return nil
}

// TogglePause freezes or resumes every timer. It reports the new paused state.
func (g *Game) TogglePause() bool {
	if !g.running {
		return false
	}
	g.paused = !g.paused
	return g.paused
}

// Update advances game time by dt.
func (g *Game) Update(dt time.Duration) {
	if g.paused {
		return
	}
	g.sched.Advance(dt)
}

// Click smashes the first hittable mosquito under (x, y) and reports whether
// one was hit.
func (g *Game) Click(x, y float64) bool {
	if !g.running || g.paused {
		return false
	}
	for _, m := range g.mosquitos {
		if !m.Hittable {
			continue
		}
		if m.Contains(x, y) {
			g.smash(m)
			return true
		}
	}
	return false
}

func (g *Game) startLevel() {
	g.phase = PhasePlaying
	g.bites = 0
	g.clearMosquitos()

	for i := 0; i < g.level; i++ {
		g.live(g.spawn())
	}

	g.timeLeft = int(g.cfg.LevelDuration / time.Second) // whole seconds, see config.Validate
	g.countdown = g.sched.After(time.Second, g.tick)
	g.bus.Emit(Event{Type: EventLevelStarted, Level: g.level, Score: g.score})
}

func (g *Game) tick() {
	g.countdown = 0
	g.timeLeft--
	if g.timeLeft <= 0 {
		g.nextLevel()
		return
	}
	g.countdown = g.sched.After(time.Second, g.tick)
}

func (g *Game) nextLevel() {
	if !g.running {
		return
	}
	g.sched.Cancel(g.countdown)
	g.countdown = 0
	g.clearMosquitos()

	cleared := g.level
	g.bus.Emit(Event{Type: EventLevelCleared, Level: cleared, Bites: g.bites, Score: g.score})

	if g.cfg.MaxLevel > 0 && cleared >= g.cfg.MaxLevel {
		g.end(OutcomeWin, fmt.Sprintf("You survived all %d levels!", cleared))
		return
	}

	g.level++
	g.phase = PhaseIntermission
	g.showBanner(fmt.Sprintf("Level %d cleared! Preparing level %d.", cleared, g.level))
	g.intermission = g.sched.After(g.cfg.LevelPause, func() {
		g.intermission = 0
		if g.running {
			g.startLevel()
		}
	})
}

func (g *Game) end(outcome Outcome, reason string) {
	g.running = false
	g.paused = false
	g.phase = PhaseOver

	g.sched.Cancel(g.countdown)
	g.sched.Cancel(g.intermission)
	g.countdown, g.intermission = 0, 0
	g.clearMosquitos()

	g.last = Result{Outcome: outcome, Level: g.level, Score: g.score, Reason: reason}
	if g.score > g.best {
		g.best = g.score
	}
	finalLevel := g.level
	g.level = 1

	g.showBanner(fmt.Sprintf("GAME OVER. %s Total smashed: %d", reason, g.score))
	g.bus.Emit(Event{Type: EventGameOver, Level: finalLevel, Bites: g.bites, Score: g.score})
}

func (g *Game) spawn() *Mosquito {
	g.nextID++
	m := &Mosquito{ID: g.nextID, Size: g.cfg.MosquitoSize}
	g.mosquitos = append(g.mosquitos, m)
	g.bus.Emit(Event{Type: EventSpawned, MosquitoID: m.ID, Level: g.level})
	return m
}

func (g *Game) remove(m *Mosquito) {
	for i, other := range g.mosquitos {
		if other == m {
			g.mosquitos = append(g.mosquitos[:i], g.mosquitos[i+1:]...)
			return
		}
	}
}

func (g *Game) clearMosquitos() {
	for _, m := range g.mosquitos {
		g.cancelTimers(m)
	}
	g.mosquitos = g.mosquitos[:0]
}

// live relocates m and starts one flight. A landing flight ends in a bite
// unless the mosquito is smashed first; otherwise it flies again.
func (g *Game) live(m *Mosquito) {
	if !g.running {
		return
	}
	g.cancelTimers(m)
	m.Hittable = false
	m.X = g.rng.Float64() * (g.cfg.FieldW - m.Size)
	m.Y = g.rng.Float64() * (g.cfg.FieldH - m.Size)
	m.State = Flying

	if g.rng.Float64() < g.cfg.LandingProbability {
		m.fly = g.sched.After(g.cfg.FlightTime, func() {
			m.fly = 0
			if !g.running {
				return
			}
			m.State = Landed
			m.Hittable = true
			g.bus.Emit(Event{Type: EventLanded, MosquitoID: m.ID, X: m.X, Y: m.Y, Level: g.level})

			m.bite = g.sched.After(g.cfg.BiteDelay, func() {
				m.bite = 0
				if m.Hittable {
					g.bite(m)
				}
			})
		})
		return
	}

	m.fly = g.sched.After(g.cfg.FlightTime, func() {
		m.fly = 0
		g.live(m)
	})
}

func (g *Game) bite(m *Mosquito) {
	if !g.running || !m.Hittable {
		return
	}
	g.bites++
	m.Hittable = false
	m.State = Bitten
	g.bus.Emit(Event{Type: EventBite, MosquitoID: m.ID, X: m.X, Y: m.Y, Level: g.level, Bites: g.bites, Score: g.score})

	if g.bites >= g.cfg.MaxBites {
		g.end(OutcomeLoss, "The mosquitos got you! You lose.")
		return
	}

	m.bitePause = g.sched.After(g.cfg.PauseOnBite, func() {
		m.bitePause = 0
		if g.running {
			g.live(m)
		}
	})
}

func (g *Game) smash(m *Mosquito) {
	g.score++
	g.sched.Cancel(m.fly)
	g.sched.Cancel(m.bite)
	g.sched.Cancel(m.bitePause)
	m.fly, m.bite, m.bitePause = 0, 0, 0
	m.Hittable = false
	m.State = Smashed
	g.bus.Emit(Event{Type: EventSmash, MosquitoID: m.ID, X: m.X, Y: m.Y, Level: g.level, Bites: g.bites, Score: g.score})

	m.killPause = g.sched.After(g.cfg.PauseOnKill, func() {
		m.killPause = 0
		g.remove(m)
		if g.running && g.phase == PhasePlaying {
			g.live(g.spawn())
		}
	})
}

func (g *Game) cancelTimers(m *Mosquito) {
	g.sched.Cancel(m.fly)
	g.sched.Cancel(m.bite)
	g.sched.Cancel(m.bitePause)
	g.sched.Cancel(m.killPause)
	m.fly, m.bite, m.bitePause, m.killPause = 0, 0, 0, 0
}

func (g *Game) showBanner(msg string) {
	g.sched.Cancel(g.bannerTimer)
	g.banner = msg
	g.bannerTimer = g.sched.After(g.cfg.BannerTime(), func() {
		g.bannerTimer = 0
		g.banner = ""
	})
}

func (g *Game) logEvent(e Event) {
	subject := "game"
	if e.MosquitoID != 0 {
		subject = fmt.Sprintf("mosquito-%d", e.MosquitoID)
	}
	g.log.Event(e.Type.String(), subject, fmt.Sprintf("level=%d bites=%d score=%d", e.Level, e.Bites, e.Score))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
