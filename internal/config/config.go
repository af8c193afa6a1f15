// Package config loads declfix.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"declfix/internal/analysis"
	"declfix/internal/members"
)

// FileName is the name looked up from the target directory upwards.
const FileName = "declfix.toml"

// ErrNotFound is returned by Find when no declfix.toml exists up to the
// filesystem root.
var ErrNotFound = errors.New("no " + FileName + " found")

type Config struct {
	// Path is empty for the built-in defaults.
	Path string

	Members       MembersConfig       `toml:"members"`
	Accessibility AccessibilityConfig `toml:"accessibility"`
	Rules         RulesConfig         `toml:"rules"`
	Run           RunConfig           `toml:"run"`
}

type MembersConfig struct {
	Order string `toml:"order"`
	Names string `toml:"names"`
}

type AccessibilityConfig struct {
	Explicit bool `toml:"explicit"`
}

type RulesConfig struct {
	// Disabled holds rule codes ("STY3004") or names ("member-order").
	Disabled []string `toml:"disabled"`
}

type RunConfig struct {
	// Jobs bounds the files processed at once; 0 means GOMAXPROCS.
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
}

// Default is the configuration used when no file is found.
func Default() Config {
	return Config{
		Members: MembersConfig{Order: "kind", Names: "ordinal"},
		Run:     RunConfig{Cache: true},
	}
}

// Find walks from start up to the filesystem root looking for declfix.toml.
// start may be a file; its directory is used then.
func Find(start string) (string, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if st, err := os.Stat(dir); err == nil && !st.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the config governing target. A missing file
// yields Default without error.
func Discover(target string) (Config, error) {
	path, err := Find(target)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

func (c Config) validate() error {
	if _, err := members.ParseMode(c.Members.Order); err != nil {
		return fmt.Errorf("[members].order: %w", err)
	}
	if _, err := members.ParseNames(c.Members.Names); err != nil {
		return fmt.Errorf("[members].names: %w", err)
	}
	if c.Run.Jobs < 0 {
		return fmt.Errorf("[run].jobs must not be negative, got %d", c.Run.Jobs)
	}
	for _, r := range c.Rules.Disabled {
		if _, ok := analysis.LookupRule(r); !ok {
			return fmt.Errorf("[rules].disabled: unknown rule %q", r)
		}
	}
	return nil
}

// Analysis converts the config into analyzer options. The config must have
// passed validation.
func (c Config) Analysis() analysis.Options {
	mode, _ := members.ParseMode(c.Members.Order)
	names, _ := members.ParseNames(c.Members.Names)
	opts := analysis.Options{
		MemberOrder:           mode,
		MemberNames:           names,
		ExplicitAccessibility: c.Accessibility.Explicit,
	}
	for _, r := range c.Rules.Disabled {
		if rule, ok := analysis.LookupRule(r); ok {
			opts.Disabled = append(opts.Disabled, rule.Code)
		}
	}
	return opts
}

// Fingerprint identifies the settings that influence analysis results; it
// is part of the cache key.
func (c Config) Fingerprint() string {
	o := c.Analysis()
	codes := make([]string, 0, len(o.Disabled))
	for _, code := range o.Disabled {
		codes = append(codes, code.ID())
	}
	return fmt.Sprintf("%s/%s/%t/%s", o.MemberOrder, o.MemberNames, o.ExplicitAccessibility, strings.Join(codes, ","))
}
