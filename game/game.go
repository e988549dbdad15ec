package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"wumpus/agents"
	"wumpus/grid_world"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalidAction is returned when a strategy proposes a symbol outside the
	// action alphabet. It aborts the run.
	ErrInvalidAction = errors.New("invalid action")
	// ErrStuck is returned when a strategy keeps proposing infeasible actions.
	ErrStuck = errors.New("no feasible action proposed")
)

// maxProposals bounds the calls to Act within a single tick.
const maxProposals = 100

// Status is the state of the game as a whole.
type Status int

const (
	Running Status = iota
	Won
	Lost
	// Abandoned runs were cut short by the tick cap or cancellation.
	Abandoned
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Abandoned:
		return "abandoned"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Game owns the world, both characters and the reasoning agent's belief, and
// advances them one tick at a time. It is not safe for concurrent use; viewers
// receive Snapshots instead.
type Game struct {
	cfg    *GameConfig
	world  *grid_world.World
	ticks  int
	status Status
	// cause is the cell that killed the hero, if it died.
	cause grid_world.Cell
	// fault is the fatal error that aborted the run, if any.
	fault error

	hero      *grid_world.Character
	heroState *agents.State
	strategy  agents.Strategy

	// The wanderer fields are nil when the wanderer is disabled.
	wanderer      *grid_world.Character
	wandererState *agents.State
	wanderPolicy  *agents.Wanderer

	runID  uuid.UUID
	logger *zap.Logger
	debug  io.Writer
}

// Option customizes a Game at construction.
type Option func(*Game)

// WithLogger sets the game logger; every line carries the run id.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithDebug prints the world and the hero's map to w before every tick.
func WithDebug(w io.Writer) Option {
	return func(g *Game) {
		g.debug = w
	}
}

// WithStrategy overrides the strategy named in the config.
func WithStrategy(s agents.Strategy) Option {
	return func(g *Game) {
		g.strategy = s
	}
}

// New validates cfg and sets up a game ready to tick.
func New(cfg *GameConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		world:  grid_world.NewWorld(grid_world.MustConvert(cfg.Layout)),
		status: Running,
		runID:  uuid.New(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With(zap.String("run", g.runID.String()))

	if g.strategy == nil {
		var err error
		if g.strategy, err = agents.New(cfg.Strategy, cfg.Tuning); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}

	// Validate checked the headings already.
	heading, _ := ParseHeading(cfg.Agent.Start.Heading)
	g.hero = grid_world.NewCharacter(cfg.Agent.Name, cfg.Agent.Start.Position(), heading, cfg.Agent.Arrows)
	g.heroState = agents.NewState(cfg.Agent.Name, cfg.Size, cfg.Agent.Arrows)

	if cfg.Wanderer.Enabled {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		heading, _ := ParseHeading(cfg.Wanderer.Start.Heading)
		g.wanderer = grid_world.NewCharacter(cfg.Wanderer.ID, cfg.Wanderer.Start.Position(), heading, 0)
		g.wanderer.Immune = true
		g.wandererState = agents.NewState(cfg.Wanderer.ID, cfg.Size, 0)
		g.wanderPolicy = agents.NewWanderer(rand.New(rand.NewSource(seed)))
		g.wanderPolicy.Observe(g.wandererState, g.wandererState.Pos, g.world.CellAt(g.wanderer.Pos))
		g.logger.Debug("wanderer placed",
			zap.String("id", g.wanderer.ID),
			zap.Stringer("pos", g.wanderer.Pos),
			zap.Stringer("cell", g.world.CellAt(g.wanderer.Pos)),
			zap.Int64("seed", seed))
	}

	g.logger.Info("game ready",
		zap.String("agent", g.hero.ID),
		zap.Int("size", cfg.Size),
		zap.Int("monsters", g.world.Monsters()),
		zap.Stringer("pos", g.hero.Pos),
		zap.Stringer("heading", g.hero.Ori))
	return g, nil
}

// RunID identifies this game in logs.
func (g *Game) RunID() uuid.UUID {
	return g.runID
}

// Status returns the current game status.
func (g *Game) Status() Status {
	return g.status
}

// Ticks returns the number of completed ticks.
func (g *Game) Ticks() int {
	return g.ticks
}

// Tick plays one turn: the hero perceives, plans, and acts until an action is
// feasible, then the wanderer takes one step. Ticking a finished game does
// nothing. A strategy proposing an invalid symbol, or no feasible action at
// all, aborts the game with an error.
func (g *Game) Tick() (Status, error) {
	if g.fault != nil {
		return g.status, g.fault
	}
	if g.status != Running {
		return g.status, nil
	}
	if g.debug != nil {
		g.show()
	}

	percept := g.world.Perceive(g.hero.Pos, grid_world.Flags{
		Bump:      g.hero.Bumped,
		Scream:    g.world.Screamed(),
		Colocated: g.colocated(),
	})
	// Both flags are delivered exactly once.
	g.hero.Bumped = false
	g.world.Hush()

	g.strategy.Plan(g.heroState, percept)

	var action agents.Action
	for proposals := 0; ; proposals++ {
		if proposals == maxProposals {
			g.fault = fmt.Errorf("%w: %d proposals at tick %d", ErrStuck, proposals, g.ticks)
			g.logger.Error("aborting game", zap.Error(g.fault))
			return g.status, g.fault
		}
		action = g.strategy.Act(g.heroState)
		feasible, err := g.execute(action)
		if err != nil {
			g.fault = fmt.Errorf("tick %d: %w", g.ticks, err)
			g.logger.Error("aborting game", zap.Error(g.fault))
			return g.status, g.fault
		}
		if feasible {
			break
		}
		g.logger.Debug("infeasible action", zap.Int("tick", g.ticks), zap.Stringer("action", action))
	}

	g.ticks++
	g.logger.Debug("tick",
		zap.Int("tick", g.ticks),
		zap.Stringer("percept", percept),
		zap.Stringer("action", action),
		zap.Stringer("pos", g.hero.Pos),
		zap.Stringer("heading", g.hero.Ori))

	g.wander()
	g.settle()
	return g.status, nil
}

// execute routes an action to the world. Only the world changes life, arrows
// and position; the hero's State gets the resulting mirror copies.
func (g *Game) execute(action agents.Action) (feasible bool, err error) {
	switch action {
	case agents.MOVE:
		feasible = g.world.Move(g.hero)
		g.heroState.Alive = g.hero.Alive
	case agents.TURN_RIGHT:
		feasible = g.hero.TurnRight()
	case agents.TURN_LEFT:
		feasible = g.hero.TurnLeft()
	case agents.SHOOT:
		var hit bool
		feasible, hit = g.world.Shoot(g.hero)
		g.heroState.Arrows = g.hero.Arrows
		if !feasible {
			g.logger.Info("no arrows left", zap.String("agent", g.hero.ID))
		} else if hit {
			g.logger.Info("monster killed",
				zap.Stringer("at", g.hero.Ahead(g.world.Size())),
				zap.Int("remaining", g.world.Monsters()))
		}
	case agents.SHARE:
		feasible = g.share()
	default:
		return false, fmt.Errorf("%w: %v", ErrInvalidAction, action)
	}
	return feasible, nil
}

// share copies the wanderer's whole map into the hero's, through the fixed
// transform between their frames. The hero gets a snapshot; later notes of
// the wanderer are not shared until the next share.
func (g *Game) share() bool {
	if g.wanderer == nil || !g.world.Colocated(g.hero, g.wanderer) {
		g.logger.Info("nobody here to share with", zap.String("agent", g.hero.ID))
		return false
	}
	into := g.wanderer.Frame.Into(g.hero.Frame, g.world.Size())
	added := g.heroState.Map.Merge(g.wandererState.Map, into)
	g.logger.Debug("shared map", zap.String("from", g.wanderer.ID), zap.Int("added", added))
	return true
}

// colocated returns the ids of the live characters in the hero's cell.
func (g *Game) colocated() []string {
	if g.wanderer != nil && g.wanderer.Alive && g.world.Colocated(g.hero, g.wanderer) {
		return []string{g.wanderer.ID}
	}
	return nil
}

// wander takes the wanderer's step and logs the cell it lands on.
func (g *Game) wander() {
	if g.wanderer == nil {
		return
	}
	n := g.world.Size()
	g.wanderPolicy.Plan(g.wandererState, grid_world.NewPercept())
	g.world.Step(g.wanderer, g.wanderPolicy.Next(g.wanderer.Pos, g.hero.Pos, n))
	g.wandererState.Pos = g.wanderer.Frame.ToRelative(g.wanderer.Pos, n)
	g.wanderPolicy.Observe(g.wandererState, g.wandererState.Pos, g.world.CellAt(g.wanderer.Pos))
}

// settle moves a running game to a terminal status when one applies.
func (g *Game) settle() {
	switch {
	case g.world.Monsters() == 0:
		g.status = Won
	case !g.hero.Alive:
		g.status = Lost
		g.cause = g.world.CellAt(g.hero.Pos)
	}
}

// ProgressFunc receives snapshots while a game runs. It is called on the
// game's goroutine and may block it.
type ProgressFunc func(ctx context.Context, snap Snapshot)

// Run ticks the game until it ends, the tick cap is reached or ctx is done.
// progress, if not nil, gets a snapshot before the first tick, every
// publishEvery ticks, and once at the end.
func (g *Game) Run(ctx context.Context, progress ProgressFunc) (Outcome, error) {
	every := g.cfg.Server.PublishEvery
	if every < 1 {
		every = 1
	}
	publish := func() {
		if progress != nil {
			progress(ctx, g.Snapshot())
		}
	}

	publish()
	for g.status == Running {
		if err := ctx.Err(); err != nil {
			g.status = Abandoned
			return g.Outcome(), err
		}
		if g.cfg.MaxTicks > 0 && g.ticks >= g.cfg.MaxTicks {
			g.status = Abandoned
			break
		}
		if _, err := g.Tick(); err != nil {
			return g.Outcome(), err
		}
		if g.ticks%every == 0 {
			publish()
		}
	}
	publish()
	if g.debug != nil {
		g.show()
	}

	outcome := g.Outcome()
	g.logger.Info("game over",
		zap.Stringer("status", outcome.Status),
		zap.Int("ticks", outcome.Ticks),
		zap.String("message", outcome.Message))
	return outcome, nil
}

func (g *Game) show() {
	if g.wanderer != nil {
		grid_world.ShowWorld(g.debug, g.world, g.hero, g.wanderer)
	} else {
		grid_world.ShowWorld(g.debug, g.world, g.hero)
	}
	agents.ShowKnowledge(g.debug, g.heroState)
}
