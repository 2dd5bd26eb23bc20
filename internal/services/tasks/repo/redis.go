package repo

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	perr "textpolish/internal/platform/errors"

	pdom "textpolish/internal/services/api/polish/domain"
	"textpolish/internal/services/tasks/domain"

	"github.com/redis/go-redis/v9"
)

// DefaultResultTTL keeps finished tasks queryable for a day
const DefaultResultTTL = 24 * time.Hour

// Redis is the broker backed queue: a pending list, a processing sorted set
// scored by lease expiry, and one hash per task
type Redis struct {
	rdb       *redis.Client
	prefix    string
	resultTTL time.Duration
	now       func() time.Time
}

// NewRedis builds the queue under key prefix ("textpolish:" when empty)
func NewRedis(rdb *redis.Client, prefix string, resultTTL time.Duration) *Redis {
	if rdb == nil {
		panic("tasks.Redis requires a non nil client")
	}
	if prefix == "" {
		prefix = "textpolish:"
	}
	if resultTTL <= 0 {
		resultTTL = DefaultResultTTL
	}
	return &Redis{rdb: rdb, prefix: prefix, resultTTL: resultTTL, now: time.Now}
}

func (r *Redis) pendingKey() string    { return r.prefix + "tasks:pending" }
func (r *Redis) processingKey() string { return r.prefix + "tasks:processing" }
func (r *Redis) taskPrefix() string    { return r.prefix + "task:" }
func (r *Redis) taskKey(id string) string {
	return r.taskPrefix() + id
}

func ms(t time.Time) int64 { return t.UnixMilli() }

// EnsureSchema is a no-op; keys are created on write
func (r *Redis) EnsureSchema(context.Context) error { return nil }

// Enqueue writes the task hash and pushes its id onto the pending list
func (r *Redis) Enqueue(ctx context.Context, t domain.Task) error {
	req, err := json.Marshal(t.Request)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "tasks: encode request")
	}
	now := ms(r.now())
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, r.taskKey(t.ID),
			"status", string(domain.StatusPending),
			"request", req,
			"attempts", 0,
			"error", "",
			"created_at", now,
			"updated_at", now,
		)
		p.LPush(ctx, r.pendingKey(), t.ID)
		return nil
	})
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "tasks: enqueue")
	}
	return nil
}

// Get reads the task hash
func (r *Redis) Get(ctx context.Context, id string) (domain.Task, error) {
	m, err := r.rdb.HGetAll(ctx, r.taskKey(id)).Result()
	if err != nil {
		return domain.Task{}, perr.Wrap(err, perr.ErrorCodeDB, "tasks: get")
	}
	if len(m) == 0 {
		return domain.Task{}, perr.NotFoundf("task %s not found", id)
	}
	return fromHash(id, m)
}

// reclaim returns expired leases to the pending list, failing the ones out of attempts
var reclaim = redis.NewScript(`
local ids = redis.call('ZRANGEBYSCORE', KEYS[2], '-inf', ARGV[1])
local failed = 0
for _, id in ipairs(ids) do
	redis.call('ZREM', KEYS[2], id)
	local key = ARGV[3] .. id
	if redis.call('EXISTS', key) == 1 then
		local attempts = tonumber(redis.call('HGET', key, 'attempts') or '0')
		if attempts >= tonumber(ARGV[2]) then
			redis.call('HSET', key, 'status', 'failed', 'error', ARGV[4], 'updated_at', ARGV[1])
			redis.call('PEXPIRE', key, ARGV[5])
			failed = failed + 1
		else
			redis.call('HSET', key, 'status', 'pending', 'updated_at', ARGV[1])
			redis.call('RPUSH', KEYS[1], id)
		end
	end
end
return failed
`)

// claim pops up to ARGV[1] ids and moves them into the processing set. Ids
// whose task is no longer pending (finished after a reclaim) are dropped.
var claim = redis.NewScript(`
local out = {}
for i = 1, tonumber(ARGV[1]) do
	local id = redis.call('RPOP', KEYS[1])
	if not id then break end
	local key = ARGV[5] .. id
	if redis.call('HGET', key, 'status') == 'pending' then
		redis.call('ZADD', KEYS[2], ARGV[2], id)
		redis.call('HINCRBY', key, 'attempts', 1)
		redis.call('HSET', key, 'status', 'processing', 'leased_by', ARGV[4], 'updated_at', ARGV[3])
		table.insert(out, id)
	end
end
return out
`)

// Lease reclaims expired leases then claims up to limit pending tasks
func (r *Redis) Lease(ctx context.Context, workerID string, limit int, leaseFor time.Duration, maxAttempts int) ([]domain.Task, error) {
	now := r.now()
	keys := []string{r.pendingKey(), r.processingKey()}

	err := reclaim.Run(ctx, r.rdb, keys,
		ms(now), maxAttempts, r.taskPrefix(), ReasonLeaseExhausted, r.resultTTL.Milliseconds()).Err()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "tasks: reclaim")
	}

	ids, err := claim.Run(ctx, r.rdb, keys,
		limit, ms(now.Add(leaseFor)), ms(now), workerID, r.taskPrefix()).StringSlice()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "tasks: claim")
	}

	out := make([]domain.Task, 0, len(ids))
	for _, id := range ids {
		t, err := r.Get(ctx, id)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Complete stores the result, drops the lease and starts the result TTL
func (r *Redis) Complete(ctx context.Context, id string, res pdom.ProcessResult) error {
	b, err := json.Marshal(res)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "tasks: encode result")
	}
	return r.finish(ctx, id, domain.StatusCompleted, "result", string(b))
}

// Fail records reason, drops the lease and starts the result TTL
func (r *Redis) Fail(ctx context.Context, id string, reason string) error {
	return r.finish(ctx, id, domain.StatusFailed, "error", reason)
}

// finish moves a task into a terminal state once: -1 unknown, 0 already
// finished, 1 written. A reclaimed id still on the pending list is removed.
var finish = redis.NewScript(`
local st = redis.call('HGET', KEYS[3], 'status')
if not st then return -1 end
if st ~= 'pending' and st ~= 'processing' then return 0 end
redis.call('HSET', KEYS[3], 'status', ARGV[2], ARGV[3], ARGV[4], 'updated_at', ARGV[5])
redis.call('HDEL', KEYS[3], 'leased_by')
redis.call('ZREM', KEYS[2], ARGV[1])
redis.call('LREM', KEYS[1], 0, ARGV[1])
redis.call('PEXPIRE', KEYS[3], ARGV[6])
return 1
`)

func (r *Redis) finish(ctx context.Context, id string, st domain.Status, field, value string) error {
	keys := []string{r.pendingKey(), r.processingKey(), r.taskKey(id)}
	n, err := finish.Run(ctx, r.rdb, keys,
		id, string(st), field, value, ms(r.now()), r.resultTTL.Milliseconds()).Int()
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "tasks: finish")
	}
	switch n {
	case -1:
		return perr.NotFoundf("task %s not found", id)
	case 0:
		return perr.Conflictf("task %s is already finished", id)
	}
	return nil
}

func fromHash(id string, m map[string]string) (domain.Task, error) {
	t := domain.Task{ID: id, Status: domain.Status(m["status"]), Error: m["error"]}
	t.Attempts, _ = strconv.Atoi(m["attempts"])
	if v, err := strconv.ParseInt(m["created_at"], 10, 64); err == nil {
		t.CreatedAt = time.UnixMilli(v).UTC()
	}
	if v, err := strconv.ParseInt(m["updated_at"], 10, 64); err == nil {
		t.UpdatedAt = time.UnixMilli(v).UTC()
	}
	if err := decode([]byte(m["request"]), []byte(m["result"]), &t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}
