package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"textpolish/internal/platform/config"
	"textpolish/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestRetryPing(t *testing.T) {
	testkit.Serial(t)
	var waits []time.Duration
	testkit.Swap(t, &sleep, func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	})

	calls := 0
	err := retryPing(context.Background(), 6, time.Second, func(context.Context) error {
		calls++
		if calls < 6 {
			return errors.New("down")
		}
		return nil
	})
	if err != nil || calls != 6 {
		t.Fatalf("err=%v calls=%d", err, calls)
	}
	want := []time.Duration{150 * time.Millisecond, 300 * time.Millisecond, 600 * time.Millisecond, 1200 * time.Millisecond, 2 * time.Second}
	if len(waits) != len(want) {
		t.Fatalf("waits = %v", waits)
	}
	for i := range want {
		if waits[i] != want[i] {
			t.Fatalf("wait[%d] = %s, want %s", i, waits[i], want[i])
		}
	}

	err = retryPing(context.Background(), 2, time.Second, func(context.Context) error { return errors.New("still down") })
	if err == nil || !strings.Contains(err.Error(), "after 2 attempts") {
		t.Fatalf("err = %v", err)
	}
}

func TestRetryPing_ContextCancelled(t *testing.T) {
	testkit.Serial(t)
	ctx, cancel := context.WithCancel(context.Background())
	testkit.Swap(t, &sleep, func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	})
	err := retryPing(ctx, 5, time.Second, func(context.Context) error { return errors.New("down") })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SERVICE_SQLITE_PATH", "sqlite:///./data/app.db")
	t.Setenv("SERVICE_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SERVICE_PGSQL_DBURL", "")
	t.Setenv("SERVICE_CLICKHOUSE_DBURL", "")

	c := ConfigFromEnv(config.New(), "api")
	if c.PG.Enabled || c.CH.Enabled {
		t.Fatalf("pg/ch should be off: %+v", c)
	}
	if !c.Lite.Enabled || c.Lite.Path != "./data/app.db" {
		t.Fatalf("lite = %+v", c.Lite)
	}
	if !c.Redis.Enabled {
		t.Fatalf("redis should be on")
	}
	if c.CH.ClientRole != "api" || c.CH.ClientTag != "textpolish" {
		t.Fatalf("ch = %+v", c.CH)
	}
	if c.PG.MaxConns != 8 || c.PG.SlowQueryMs != 250 {
		t.Fatalf("pg defaults = %+v", c.PG)
	}
}

func TestSQLitePath(t *testing.T) {
	cases := map[string]string{
		"sqlite:///./a.db":    "./a.db",
		"sqlite:////var/a.db": "/var/a.db",
		"file:a.db":           "a.db",
		" ./b.db ":            "./b.db",
		":memory:":            ":memory:",
	}
	for in, want := range cases {
		if got := SQLitePath(in); got != want {
			t.Errorf("SQLitePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLogTracer(t *testing.T) {
	var buf bytes.Buffer
	tr := LogTracer(zerolog.New(&buf).Level(zerolog.InfoLevel))

	tr.OnQuery(context.Background(), QueryEvent{Backend: "pg", SQL: "SELECT\n   1", Elapsed: time.Millisecond})
	tr.OnQuery(context.Background(), QueryEvent{Backend: "pg", SQL: "SELECT 2", Slow: true})
	tr.OnQuery(context.Background(), QueryEvent{Backend: "pg", SQL: "SELECT 3", Err: errors.New("bad")})

	out := buf.String()
	testkit.MustContain(t, out, `"sql":"SELECT 1"`)
	testkit.MustContain(t, out, `"level":"warn"`)
	testkit.MustContain(t, out, `"level":"error"`)
}

func TestStore_NilAndEmpty(t *testing.T) {
	var s *Store
	if err := s.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(s.Pingers()) != 0 {
		t.Fatal("nil store has pingers")
	}
	if err := s.Guard(context.Background()); err == nil {
		t.Fatal("nil store guard should fail")
	}

	st, err := Open(context.Background(), Config{Lite: SQLiteConfig{Enabled: true, Path: ":memory:"}})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = st.Close(context.Background()) }()
	if st.Lite == nil || st.PG != nil {
		t.Fatalf("store = %+v", st)
	}
	if _, ok := st.Pingers()["sqlite"]; !ok {
		t.Fatal("sqlite pinger missing")
	}
	if err := st.Guard(context.Background()); err != nil {
		t.Fatal(err)
	}
}
