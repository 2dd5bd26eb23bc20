// Package markers loads the embedded discourse and structure marker pack
// and compiles it once for the scorer
package markers

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

//go:embed markers.json
var embedded []byte

type rawMarker struct {
	ID      string `json:"id"`
	Lang    string `json:"lang,omitempty"`
	Fold    bool   `json:"fold,omitempty"`
	Pattern string `json:"pattern"`
}

type rawPack struct {
	Version   int         `json:"version"`
	Discourse []rawMarker `json:"discourse"`
	Structure []rawMarker `json:"structure"`
}

// Marker is one compiled pattern
type Marker struct {
	ID   string
	Lang string // "" applies to every language
	Re   *regexp.Regexp
}

// Pack is the compiled marker set
type Pack struct {
	Version int
	// Discourse markers feed the pattern signal
	Discourse []Marker
	// Structure markers feed the structure signal
	Structure []Marker
}

// Parse compiles a pack from JSON
func Parse(b []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(b, &rp); err != nil {
		return nil, fmt.Errorf("markers: parse: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("markers: unsupported version %d (want 1)", rp.Version)
	}
	p := &Pack{Version: rp.Version}
	var err error
	if p.Discourse, err = compile(rp.Discourse); err != nil {
		return nil, err
	}
	if p.Structure, err = compile(rp.Structure); err != nil {
		return nil, err
	}
	return p, nil
}

func compile(in []rawMarker) ([]Marker, error) {
	out := make([]Marker, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, m := range in {
		id := strings.TrimSpace(m.ID)
		if id == "" || m.Pattern == "" {
			return nil, fmt.Errorf("markers: marker needs id and pattern: %+v", m)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("markers: duplicate id %q", id)
		}
		seen[id] = struct{}{}

		pat := m.Pattern
		if m.Fold {
			pat = "(?i)" + pat
		}
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("markers: %s: %w", id, err)
		}
		out = append(out, Marker{ID: id, Lang: m.Lang, Re: re})
	}
	return out, nil
}

var (
	once    sync.Once
	loaded  *Pack
	loadErr error
)

// Load returns the embedded pack, compiled on first use
func Load() (*Pack, error) {
	once.Do(func() { loaded, loadErr = Parse(embedded) })
	return loaded, loadErr
}

// MustLoad is Load for process start; the embedded pack is fixed at build time
func MustLoad() *Pack {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}
