package dynamo

import (
	"context"
	"sync"
)

// Member is one independently evolved trajectory in an Ensemble: a
// formulation of the dynamics with its own integrator and start state.
type Member struct {
	Name  string
	Dyn   System
	Integ Integrator
	Ctrl  Controller
	X0    State
}

// Ensemble evolves several formulations of the same physical system from
// matched initial conditions. The members do not interact, so each runs
// in its own goroutine.
type Ensemble struct {
	members []Member
}

func NewEnsemble(members ...Member) *Ensemble {
	return &Ensemble{members: members}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) (map[string]*Result, error) {
	results := make([]*Result, len(e.members))
	errs := make([]error, len(e.members))

	var wg sync.WaitGroup
	for i := range e.members {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			m := e.members[idx]
			s := New(m.Dyn, m.Integ, m.Ctrl)
			results[idx], errs[idx] = s.Run(ctx, m.X0, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	byName := make(map[string]*Result, len(e.members))
	for i, m := range e.members {
		byName[m.Name] = results[i]
	}
	return byName, nil
}
