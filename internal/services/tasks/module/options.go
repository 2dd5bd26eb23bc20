package module

import (
	"time"

	"textpolish/internal/platform/config"
)

// Backends
const (
	BackendAuto  = ""
	BackendPG    = "pg"
	BackendRedis = "redis"
)

// Options controls the task queue and worker
type Options struct {
	Backend        string
	Concurrency    int
	QueueTakeBatch int
	Lease          time.Duration
	MaxAttempts    int
	Poll           time.Duration
	LockTimeout    time.Duration
	ResultTTL      time.Duration
	KeyPrefix      string
}

// FromConfig reads with TASKS_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("TASKS_")
	return Options{
		Backend:        c.MayEnum("BACKEND", BackendAuto, BackendAuto, BackendPG, BackendRedis),
		Concurrency:    c.MayInt("WORKER_CONCURRENCY", 4),
		QueueTakeBatch: c.MayInt("QUEUE_TAKE_BATCH", 16),
		Lease:          c.MayDuration("LEASE", 2*time.Minute),
		MaxAttempts:    c.MayInt("MAX_ATTEMPTS", 3),
		Poll:           c.MayDuration("POLL", 500*time.Millisecond),
		LockTimeout:    c.MayDuration("LOCK_TIMEOUT", 5*time.Second),
		ResultTTL:      c.MayDuration("RESULT_TTL", 24*time.Hour),
		KeyPrefix:      c.MayString("REDIS_PREFIX", "textpolish:"),
	}
}

// merge applies the non zero fields of o over opts
func (opts Options) merge(o Options) Options {
	if o.Backend != "" {
		opts.Backend = o.Backend
	}
	if o.Concurrency != 0 {
		opts.Concurrency = o.Concurrency
	}
	if o.QueueTakeBatch != 0 {
		opts.QueueTakeBatch = o.QueueTakeBatch
	}
	if o.Lease != 0 {
		opts.Lease = o.Lease
	}
	if o.MaxAttempts != 0 {
		opts.MaxAttempts = o.MaxAttempts
	}
	if o.Poll != 0 {
		opts.Poll = o.Poll
	}
	if o.LockTimeout != 0 {
		opts.LockTimeout = o.LockTimeout
	}
	if o.ResultTTL != 0 {
		opts.ResultTTL = o.ResultTTL
	}
	if o.KeyPrefix != "" {
		opts.KeyPrefix = o.KeyPrefix
	}
	return opts
}
