package memory

import (
	"context"
	"strconv"

	"github.com/iho/ledgerkv/internal/domain"
	"github.com/iho/ledgerkv/internal/usecase"
)

type condition func(s *Store) bool

type mutation struct {
	apply func(s *Store)
	// check reports whether apply can run: counters must hold integers and stay
	// within int64. pending carries counter values produced by earlier mutations
	// of the same group.
	check func(s *Store, pending map[string]int64) error
}

type group struct {
	store      *Store
	conditions []condition
	mutations  []mutation
}

func (g *group) RequireAbsent(key, field string) usecase.Group {
	g.conditions = append(g.conditions, func(s *Store) bool {
		_, exists := s.hashes[key][field]
		return !exists
	})
	return g
}

func (g *group) RequireLenBelow(key string, n int64) usecase.Group {
	g.conditions = append(g.conditions, func(s *Store) bool {
		return int64(len(s.hashes[key])) < n
	})
	return g
}

func (g *group) RequireEquals(key, field, value string) usecase.Group {
	g.conditions = append(g.conditions, func(s *Store) bool {
		current, exists := s.hashes[key][field]
		return exists && current == value
	})
	return g
}

func (g *group) HSet(key, field, value string) usecase.Group {
	g.mutations = append(g.mutations, mutation{
		apply: func(s *Store) { s.hset(key, field, value) },
	})
	return g
}

func (g *group) HDel(key, field string) usecase.Group {
	g.mutations = append(g.mutations, mutation{
		apply: func(s *Store) { s.hdel(key, field) },
	})
	return g
}

func (g *group) IncrBy(key string, delta int64) usecase.Group {
	g.mutations = append(g.mutations, mutation{
		check: func(s *Store, pending map[string]int64) error {
			return checkCounter(pending, "s\x00"+key, s.strings[key], delta)
		},
		apply: func(s *Store) {
			current, _ := parseCounter(s.strings[key])
			s.strings[key] = strconv.FormatInt(current+delta, 10)
		},
	})
	return g
}

func (g *group) HIncrBy(key, field string, delta int64) usecase.Group {
	g.mutations = append(g.mutations, mutation{
		check: func(s *Store, pending map[string]int64) error {
			return checkCounter(pending, "h\x00"+key+"\x00"+field, s.hashes[key][field], delta)
		},
		apply: func(s *Store) {
			current, _ := parseCounter(s.hashes[key][field])
			s.hset(key, field, strconv.FormatInt(current+delta, 10))
		},
	})
	return g
}

func checkCounter(pending map[string]int64, id, raw string, delta int64) error {
	current, ok := pending[id]
	if !ok {
		var err error
		if current, err = parseCounter(raw); err != nil {
			return err
		}
	}

	next, err := domain.AddMinorUnits(current, delta)
	if err != nil {
		return err
	}
	pending[id] = next
	return nil
}

// Commit evaluates conditions and applies mutations under the store lock.
// Counter type and range errors are detected before anything is written.
func (g *group) Commit(ctx context.Context) (usecase.GroupResult, error) {
	if err := ctx.Err(); err != nil {
		return usecase.GroupResult{FailedCondition: -1}, err
	}

	s := g.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cond := range g.conditions {
		if !cond(s) {
			return usecase.GroupResult{FailedCondition: i}, nil
		}
	}

	pending := make(map[string]int64)
	for _, m := range g.mutations {
		if m.check == nil {
			continue
		}
		if err := m.check(s, pending); err != nil {
			return usecase.GroupResult{FailedCondition: -1}, err
		}
	}

	for _, m := range g.mutations {
		m.apply(s)
	}

	return usecase.GroupResult{Applied: true, FailedCondition: -1}, nil
}
