package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kit "textpolish/internal/platform/testkit"
)

func TestPrefixNesting(t *testing.T) {
	llm := New().Prefix("LLM_")
	if got := llm.key("MODEL"); got != "LLM_MODEL" {
		t.Fatalf("key() = %q", got)
	}
	if got := llm.Prefix("X_").key("Y"); got != "LLM_X_Y" {
		t.Fatalf("nested key() = %q", got)
	}
}

func TestMustGetters(t *testing.T) {
	c := New().Prefix("TPM_")
	t.Setenv("TPM_NAME", "  polish ")
	t.Setenv("TPM_N", " 8 ")
	t.Setenv("TPM_ON", "true")
	t.Setenv("TPM_WAIT", "250ms")
	t.Setenv("TPM_BASE", "https://api.deepseek.com/v1")
	t.Setenv("TPM_PORT", "8000")

	if got := c.MustString("NAME"); got != "polish" {
		t.Fatalf("MustString = %q", got)
	}
	if got := c.MustInt("N"); got != 8 {
		t.Fatalf("MustInt = %d", got)
	}
	if !c.MustBool("ON") {
		t.Fatalf("MustBool = false")
	}
	if got := c.MustDuration("WAIT"); got != 250*time.Millisecond {
		t.Fatalf("MustDuration = %v", got)
	}
	if u := c.MustURL("BASE"); u.Host != "api.deepseek.com" {
		t.Fatalf("MustURL host = %q", u.Host)
	}
	if got := c.MustPort("PORT"); got != ":8000" {
		t.Fatalf("MustPort = %q", got)
	}
}

func TestMustGettersPanic(t *testing.T) {
	c := New().Prefix("TPP_")
	t.Setenv("TPP_TEXT", "abc")
	t.Setenv("TPP_REL", "/relative")
	t.Setenv("TPP_OOB", "70000")
	t.Setenv("TPP_WS", "   ")

	cases := map[string]func(){
		"missing string": func() { c.MustString("NOPE") },
		"bad int":        func() { c.MustInt("TEXT") },
		"bad bool":       func() { c.MustBool("TEXT") },
		"bad duration":   func() { c.MustDuration("TEXT") },
		"relative url":   func() { c.MustURL("REL") },
		"port range":     func() { c.MustPort("OOB") },
		"whitespace":     func() { c.Require("WS") },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) { kit.MustPanic(t, fn) })
	}
}

func TestMayGetters(t *testing.T) {
	c := New().Prefix("TPO_")
	t.Setenv("TPO_INT", "7")
	t.Setenv("TPO_BADINT", "x")
	t.Setenv("TPO_F", "0.3")
	t.Setenv("TPO_SECS", "30")
	t.Setenv("TPO_DUR", "2m")
	t.Setenv("TPO_BADDUR", "soon")

	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayInt("INT", 0); got != 7 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BADINT", 3); got != 3 {
		t.Fatalf("MayInt fallback = %d", got)
	}
	if got := c.MayFloat64("F", 1); got != 0.3 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if got := c.MayBool("MISSING", true); !got {
		t.Fatalf("MayBool default lost")
	}
	if got := c.MayDuration("SECS", 0); got != 30*time.Second {
		t.Fatalf("MayDuration seconds = %v", got)
	}
	if got := c.MayDuration("DUR", 0); got != 2*time.Minute {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("BADDUR", time.Second); got != time.Second {
		t.Fatalf("MayDuration fallback = %v", got)
	}
	if c.Has("MISSING") || !c.Has("INT") {
		t.Fatalf("Has mismatch")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("TPC_")
	t.Setenv("TPC_ORIGINS", " http://a, ,http://b ,, ")
	t.Setenv("TPC_BLANK", " , , ")

	got := c.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "http://a" || got[1] != "http://b" {
		t.Fatalf("MayCSV = %#v", got)
	}
	if got := c.MayCSV("BLANK", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV blank = %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("TPE_")
	if got := c.MayEnum("MISSING", "openai", "openai", "anthropic"); got != "openai" {
		t.Fatalf("MayEnum default = %q", got)
	}
	t.Setenv("TPE_PROVIDER", "Anthropic")
	if got := c.MayEnum("PROVIDER", "openai", "openai", "anthropic"); got != "anthropic" {
		t.Fatalf("MayEnum canonical = %q", got)
	}
	t.Setenv("TPE_BAD", "cohere")
	kit.MustPanic(t, func() { c.MayEnum("BAD", "openai", "openai", "anthropic") })
	if got := c.MayEnum("MISSING", "", "a"); got != "" {
		t.Fatalf("MayEnum empty default = %q", got)
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "test.env")
	if err := os.WriteFile(f, []byte("TPD_FROM_FILE=yes\nTPD_KEEP=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TPD_KEEP", "env")
	t.Cleanup(func() { _ = os.Unsetenv("TPD_FROM_FILE") })

	loaded, err := LoadDotenv(filepath.Join(dir, "absent.env"), f)
	if err != nil {
		t.Fatalf("LoadDotenv: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != f {
		t.Fatalf("loaded = %#v", loaded)
	}
	c := New().Prefix("TPD_")
	if got := c.MayString("FROM_FILE", ""); got != "yes" {
		t.Fatalf("FROM_FILE = %q", got)
	}
	if got := c.MayString("KEEP", ""); got != "env" {
		t.Fatalf("existing env overridden: %q", got)
	}
}
