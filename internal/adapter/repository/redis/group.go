package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/iho/ledgerkv/internal/domain"
	"github.com/iho/ledgerkv/internal/usecase"
)

// Op names shared with groupScript.
const (
	condAbsent   = "absent"
	condLenBelow = "lenbelow"
	condEquals   = "equals"

	mutHSet    = "hset"
	mutHDel    = "hdel"
	mutIncrBy  = "incrby"
	mutHIncrBy = "hincrby"
)

// groupScript evaluates the conditions of a group and, only if all hold, applies its
// mutations. Redis runs a script without interleaving other commands, which makes the
// check and the write one step. Redis does not roll back a script that fails halfway,
// so every counter is range checked before the first write.
//
// Returns 0 when applied, the 1-based index of the first failed condition, or the
// negated 1-based index of the first counter mutation that would leave int64.
// Counters hold at most 19 digits; they are split into a high part and a 10-digit
// low part so that Lua's doubles add them exactly.
//
// ARGV layout: <n conditions> (op, key index, field, arg)* <n mutations> (op, key index, field, arg)*
var groupScript = redis.NewScript(`
local pos = 1

local function take()
  local op = ARGV[pos]
  local key = KEYS[tonumber(ARGV[pos + 1])]
  local field = ARGV[pos + 2]
  local arg = ARGV[pos + 3]
  pos = pos + 4
  return op, key, field, arg
end

local function magnitude(v)
  local neg = string.sub(v, 1, 1) == '-'
  local digits = v
  if neg then digits = string.sub(v, 2) end
  local n = string.len(digits)
  if n <= 10 then return neg, 0, tonumber(digits) end
  return neg, tonumber(string.sub(digits, 1, n - 10)), tonumber(string.sub(digits, n - 9))
end

local function within(neg, hi, lo)
  if hi ~= 922337203 then return hi < 922337203 end
  if neg then return lo <= 6854775808 end
  return lo <= 6854775807
end

local function counter(raw)
  if not raw then return '0' end
  if raw ~= '0' and not string.match(raw, '^%-?[1-9]%d*$') then return nil end
  if string.len(raw) > 20 or (string.len(raw) == 20 and string.sub(raw, 1, 1) ~= '-') then return nil end
  if not within(magnitude(raw)) then return nil end
  return raw
end

local function fits(current, delta)
  local cneg, chi, clo = magnitude(current)
  local dneg, dhi, dlo = magnitude(delta)
  if cneg ~= dneg then return true end
  local hi, lo = chi + dhi, clo + dlo
  if lo >= 10000000000 then
    hi = hi + 1
    lo = lo - 10000000000
  end
  return within(cneg, hi, lo)
end

local conditions = tonumber(ARGV[pos])
pos = pos + 1
for i = 1, conditions do
  local op, key, field, arg = take()
  if op == 'absent' then
    if redis.call('HEXISTS', key, field) == 1 then return i end
  elseif op == 'lenbelow' then
    if redis.call('HLEN', key) >= tonumber(arg) then return i end
  elseif op == 'equals' then
    if redis.call('HGET', key, field) ~= arg then return i end
  else
    return redis.error_reply('unknown condition ' .. op)
  end
end

local mutations = tonumber(ARGV[pos])
pos = pos + 1
local first = pos
for i = 1, mutations do
  local op, key, field, arg = take()
  if op == 'incrby' or op == 'hincrby' then
    local raw
    if op == 'incrby' then
      raw = redis.call('GET', key)
    else
      raw = redis.call('HGET', key, field)
    end
    local current = counter(raw)
    if not current then
      return redis.error_reply('hash value is not an integer')
    end
    if not fits(current, arg) then return -i end
  end
end

pos = first
for _ = 1, mutations do
  local op, key, field, arg = take()
  if op == 'hset' then
    redis.call('HSET', key, field, arg)
  elseif op == 'hdel' then
    redis.call('HDEL', key, field)
  elseif op == 'incrby' then
    redis.call('INCRBY', key, arg)
  elseif op == 'hincrby' then
    redis.call('HINCRBY', key, field, arg)
  else
    return redis.error_reply('unknown mutation ' .. op)
  end
end

return 0
`)

type groupOp struct {
	op    string
	key   string
	field string
	arg   string
	delta int64
}

type group struct {
	client     redis.UniversalClient
	conditions []groupOp
	mutations  []groupOp
}

func (g *group) RequireAbsent(key, field string) usecase.Group {
	g.conditions = append(g.conditions, groupOp{op: condAbsent, key: key, field: field})
	return g
}

func (g *group) RequireLenBelow(key string, n int64) usecase.Group {
	g.conditions = append(g.conditions, groupOp{op: condLenBelow, key: key, arg: strconv.FormatInt(n, 10)})
	return g
}

func (g *group) RequireEquals(key, field, value string) usecase.Group {
	g.conditions = append(g.conditions, groupOp{op: condEquals, key: key, field: field, arg: value})
	return g
}

func (g *group) HSet(key, field, value string) usecase.Group {
	g.mutations = append(g.mutations, groupOp{op: mutHSet, key: key, field: field, arg: value})
	return g
}

func (g *group) HDel(key, field string) usecase.Group {
	g.mutations = append(g.mutations, groupOp{op: mutHDel, key: key, field: field})
	return g
}

func (g *group) IncrBy(key string, delta int64) usecase.Group {
	g.mutations = append(g.mutations, groupOp{op: mutIncrBy, key: key, arg: strconv.FormatInt(delta, 10), delta: delta})
	return g
}

func (g *group) HIncrBy(key, field string, delta int64) usecase.Group {
	g.mutations = append(g.mutations, groupOp{op: mutHIncrBy, key: key, field: field, arg: strconv.FormatInt(delta, 10), delta: delta})
	return g
}

// Commit applies the group. Groups without conditions or counters go through
// MULTI/EXEC; all others through groupScript. A counter may appear only once per
// group, since the script checks each increment against the stored value alone.
func (g *group) Commit(ctx context.Context) (usecase.GroupResult, error) {
	applied := usecase.GroupResult{Applied: true, FailedCondition: -1}

	hasCounters, err := g.checkCounters()
	if err != nil {
		return usecase.GroupResult{FailedCondition: -1}, err
	}

	if len(g.conditions) == 0 && !hasCounters {
		if len(g.mutations) == 0 {
			return applied, nil
		}
		if err := g.commitPipeline(ctx); err != nil {
			return usecase.GroupResult{FailedCondition: -1}, err
		}
		return applied, nil
	}

	keys, args := g.scriptArgs()

	failed, err := groupScript.Run(ctx, g.client, keys, args...).Int64()
	if err != nil {
		return usecase.GroupResult{FailedCondition: -1}, wrapError("eval", keys[0], err)
	}

	if failed > 0 {
		return usecase.GroupResult{FailedCondition: int(failed) - 1}, nil
	}
	if failed < 0 {
		m := g.mutations[-failed-1]
		return usecase.GroupResult{FailedCondition: -1}, fmt.Errorf("%w: %s %s %+d", domain.ErrAmountOverflow, m.key, m.field, m.delta)
	}

	return applied, nil
}

func (g *group) checkCounters() (bool, error) {
	seen := make(map[[2]string]bool)
	for _, m := range g.mutations {
		if m.op != mutIncrBy && m.op != mutHIncrBy {
			continue
		}
		id := [2]string{m.key, m.field}
		if m.op == mutIncrBy {
			id[1] = "\x00"
		}
		if seen[id] {
			return true, fmt.Errorf("counter %s %s incremented twice in one group", m.key, m.field)
		}
		seen[id] = true
	}
	return len(seen) > 0, nil
}

func (g *group) commitPipeline(ctx context.Context) error {
	_, err := g.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, m := range g.mutations {
			switch m.op {
			case mutHSet:
				pipe.HSet(ctx, m.key, m.field, m.arg)
			case mutHDel:
				pipe.HDel(ctx, m.key, m.field)
			case mutIncrBy:
				pipe.IncrBy(ctx, m.key, m.delta)
			case mutHIncrBy:
				pipe.HIncrBy(ctx, m.key, m.field, m.delta)
			}
		}
		return nil
	})
	if err != nil {
		return wrapError("multi", g.mutations[0].key, err)
	}
	return nil
}

// scriptArgs flattens the group into KEYS and ARGV for groupScript.
func (g *group) scriptArgs() ([]string, []any) {
	var keys []string
	index := make(map[string]int)

	keyIndex := func(key string) string {
		i, ok := index[key]
		if !ok {
			keys = append(keys, key)
			i = len(keys)
			index[key] = i
		}
		return strconv.Itoa(i)
	}

	args := make([]any, 0, 2+4*(len(g.conditions)+len(g.mutations)))

	args = append(args, strconv.Itoa(len(g.conditions)))
	for _, c := range g.conditions {
		args = append(args, c.op, keyIndex(c.key), c.field, c.arg)
	}

	args = append(args, strconv.Itoa(len(g.mutations)))
	for _, m := range g.mutations {
		args = append(args, m.op, keyIndex(m.key), m.field, m.arg)
	}

	return keys, args
}
