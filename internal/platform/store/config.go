package store

import (
	"strings"
	"time"

	"textpolish/internal/platform/config"
)

// Config selects and configures backends
type Config struct {
	PG    PGConfig
	Lite  SQLiteConfig
	CH    CHConfig
	Redis RedisConfig
}

// PGConfig configures the pgx pool
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
	// ConnectRetries bounds the startup ping loop
	ConnectRetries int
	PingTimeout    time.Duration
}

// SQLiteConfig configures the embedded database
type SQLiteConfig struct {
	Enabled bool
	Path    string
	LogSQL  bool
}

// CHConfig configures ClickHouse
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientRole string
	ClientTag  string
}

// RedisConfig configures go-redis
type RedisConfig struct {
	Enabled bool
	URL     string
}

// ConfigFromEnv reads SERVICE_PGSQL_*, SERVICE_SQLITE_*, SERVICE_CLICKHOUSE_*
// and SERVICE_REDIS_*. A backend is enabled when its URL or path is set.
// role names the process in ClickHouse client info.
func ConfigFromEnv(root config.Conf, role string) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	lite := root.Prefix("SERVICE_SQLITE_")
	ch := root.Prefix("SERVICE_CLICKHOUSE_")
	rds := root.Prefix("SERVICE_REDIS_")

	c := Config{
		PG: PGConfig{
			URL:            pg.MayString("DBURL", ""),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 8)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 250),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 10),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		Lite: SQLiteConfig{
			Path:   SQLitePath(lite.MayString("PATH", "")),
			LogSQL: lite.MayBool("LOG_SQL", false),
		},
		CH: CHConfig{
			URL:        ch.MayString("DBURL", ""),
			ClientRole: role,
			ClientTag:  ch.MayString("CLIENT_TAG", "textpolish"),
		},
		Redis: RedisConfig{URL: rds.MayString("URL", "")},
	}
	c.PG.Enabled = c.PG.URL != ""
	c.Lite.Enabled = c.Lite.Path != ""
	c.CH.Enabled = c.CH.URL != ""
	c.Redis.Enabled = c.Redis.URL != ""
	return c
}

// SQLitePath accepts either a file path or a sqlite URL
// ("sqlite:///./ai_processor.db") and returns the file path
func SQLitePath(s string) string {
	s = strings.TrimSpace(s)
	for _, p := range []string{"sqlite:///", "sqlite://", "file:"} {
		if strings.HasPrefix(s, p) {
			return strings.TrimPrefix(s, p)
		}
	}
	return s
}
