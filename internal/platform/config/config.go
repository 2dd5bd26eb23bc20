// Package config reads service settings from the environment.
// Values are looked up under a prefix so each component owns a namespace
// (CORE_API_, LLM_, SERVICE_PGSQL_ ...).
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"textpolish/internal/platform/logger"
)

// Conf is a prefixed view over the process environment
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix returns a child view, cfg.Prefix("LLM_").Prefix("X_") reads LLM_X_*
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value and whether it is non-empty
func (c Conf) lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.key(k)))
	return v, v != ""
}

// must returns the value or panics through the root logger
func (c Conf) must(k string) string {
	v, ok := c.lookup(k)
	if !ok {
		logger.Get().Panic().Str("key", c.key(k)).Msg("missing required env")
	}
	return v
}

func (c Conf) invalid(k, v, want string) {
	logger.Get().Panic().Str("key", c.key(k)).Str("value", v).Msg("invalid " + want)
}

// fallback logs the bad value and hands back the default
func fallback[T any](c Conf, k, v string, def T, err error) T {
	logger.Get().Warn().Err(err).Str("key", c.key(k)).Str("value", v).Interface("default", def).Msg("invalid env value; using default")
	return def
}

// MustString returns a required value
func (c Conf) MustString(key string) string { return c.must(key) }

// MustInt returns a required integer
func (c Conf) MustInt(key string) int {
	s := c.must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		c.invalid(key, s, "int value")
	}
	return n
}

// MustBool returns a required bool (strconv.ParseBool forms)
func (c Conf) MustBool(key string) bool {
	s := c.must(key)
	b, err := strconv.ParseBool(s)
	if err != nil {
		c.invalid(key, s, "bool value")
	}
	return b
}

// MustDuration returns a required Go duration such as 250ms or 2m
func (c Conf) MustDuration(key string) time.Duration {
	s := c.must(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		c.invalid(key, s, "duration")
	}
	return d
}

// MustURL returns a required absolute URL
func (c Conf) MustURL(key string) *url.URL {
	s := c.must(key)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		c.invalid(key, s, "absolute URL")
	}
	return u
}

// MustPort validates 1..65535 and returns a listen addr like ":8000"
func (c Conf) MustPort(key string) string {
	s := c.must(key)
	if p, err := strconv.Atoi(s); err != nil || p < 1 || p > 65535 {
		c.invalid(key, s, "TCP port")
	}
	return ":" + s
}

// Require panics on the first missing key
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		_ = c.must(k)
	}
}

// Has reports whether key is set to a non-blank value
func (c Conf) Has(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// MayInt returns the value or def; unparsable input is logged and ignored
func (c Conf) MayInt(key string, def int) int {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback(c, key, s, def, err)
	}
	return n
}

// MayFloat64 returns the value or def; unparsable input is logged and ignored
func (c Conf) MayFloat64(key string, def float64) float64 {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback(c, key, s, def, err)
	}
	return f
}

// MayBool returns the value or def; unparsable input is logged and ignored
func (c Conf) MayBool(key string, def bool) bool {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback(c, key, s, def, err)
	}
	return b
}

// MayDuration returns the value or def; unparsable input is logged and ignored.
// A bare integer is read as seconds so REQUEST_TIMEOUT=30 keeps working.
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback(c, key, s, def, err)
	}
	return d
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value (or def) and panics if it is not one of allowed.
// Comparison is case-insensitive and the canonical allowed spelling is returned.
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
