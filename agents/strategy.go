package agents

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"wumpus/grid_world"
)

// Strategy is the decision procedure of a reasoning agent. Each turn the loop
// calls Plan once with the fresh percept, then Act until the proposed action
// is feasible. A strategy must not keep proposing infeasible actions.
type Strategy interface {
	Plan(state *State, percept grid_world.Percept)
	Act(state *State) Action
}

// Tuning holds the implementation-specific thresholds of a policy.
type Tuning struct {
	// MaxRetries is the number of fruitless turns before a visited or risky
	// cell is reused.
	MaxRetries int `mapstructure:"maxRetries" yaml:"maxretries" toml:"max_retries"`
	// MaxShares bounds the shares in a single cell.
	MaxShares int `mapstructure:"maxShares" yaml:"maxshares" toml:"max_shares"`
}

// DefaultTuning returns the reference thresholds.
func DefaultTuning() Tuning {
	return Tuning{
		MaxRetries: 5,
		MaxShares:  5,
	}
}

// Factory builds a strategy with the given tuning.
type Factory func(Tuning) Strategy

// ErrUnknownStrategy is returned by New for names never registered.
var ErrUnknownStrategy = errors.New("unknown strategy")

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a strategy available by name. Registering a name twice
// replaces the earlier factory.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// New builds the strategy registered under name.
func New(name string, tuning Tuning) (Strategy, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return factory(tuning), nil
}

// Registered returns the registered strategy names, sorted.
func Registered() (names []string) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func init() {
	Register("explorer", func(t Tuning) Strategy { return NewExplorer(t) })
}
