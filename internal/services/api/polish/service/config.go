package service

import "textpolish/internal/platform/config"

// Config bounds request sizes and batch fan out
type Config struct {
	MaxTextLength int // runes
	BatchMax      int
	BatchParallel int
}

// ConfigFromEnv reads CORE_API_MAX_TEXT_LENGTH and the CORE_API_BATCH_ keys
func ConfigFromEnv(cfg config.Conf) Config {
	c := cfg.Prefix("CORE_API_")
	return Config{
		MaxTextLength: c.MayInt("MAX_TEXT_LENGTH", 10000),
		BatchMax:      c.MayInt("BATCH_MAX", 10),
		BatchParallel: c.MayInt("BATCH_PARALLEL", 4),
	}
}

func (c Config) withDefaults() Config {
	if c.MaxTextLength <= 0 {
		c.MaxTextLength = 10000
	}
	if c.BatchMax <= 0 {
		c.BatchMax = 10
	}
	if c.BatchParallel <= 0 {
		c.BatchParallel = 4
	}
	return c
}
