package project

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"datum/internal/format"
	"datum/internal/pipeline"
)

// ErrInvalidManifest wraps every validation failure of datum.toml.
var ErrInvalidManifest = errors.New("invalid datum.toml")

// Manifest is a loaded datum.toml together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Format FormatConfig `toml:"format"`
	Limits LimitsConfig `toml:"limits"`
	Check  CheckConfig  `toml:"check"`
}

type FormatConfig struct {
	MaxWidth int    `toml:"max_width"`
	Compact  bool   `toml:"compact"`
	Header   string `toml:"header"`
}

// LimitsConfig selects fixed-capacity storage; zero means unbounded.
type LimitsConfig struct {
	TokenLength int `toml:"token_length"`
	Depth       int `toml:"depth"`
	ListWidth   int `toml:"list_width"`
}

type CheckConfig struct {
	Jobs       int      `toml:"jobs"`
	Cache      bool     `toml:"cache"`
	CacheDir   string   `toml:"cache_dir"`
	Extensions []string `toml:"extensions"`
}

// Default returns the configuration used when no datum.toml exists.
func Default() Config {
	return Config{
		Format: FormatConfig{MaxWidth: 80},
		Check: CheckConfig{
			Cache:      true,
			CacheDir:   ".datum-cache",
			Extensions: []string{".datum", ".dtm"},
		},
	}
}

// Load finds datum.toml above startDir and decodes it over Default.
// ok is false when no manifest exists; the returned manifest then carries
// the defaults rooted at startDir.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		root, absErr := filepath.Abs(startDir)
		if absErr != nil {
			return nil, false, absErr
		}
		return &Manifest{Root: root, Config: Default()}, false, nil
	}
	m, err := LoadFile(path)
	return m, true, err
}

// LoadFile decodes the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %s: unknown keys: %s", ErrInvalidManifest, path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// Validate rejects negative limits and malformed extensions.
func (c Config) Validate() error {
	switch {
	case c.Format.MaxWidth < 0:
		return fmt.Errorf("%w: [format].max_width must not be negative", ErrInvalidManifest)
	case c.Limits.TokenLength < 0, c.Limits.Depth < 0, c.Limits.ListWidth < 0:
		return fmt.Errorf("%w: [limits] values must not be negative", ErrInvalidManifest)
	case c.Check.Jobs < 0:
		return fmt.Errorf("%w: [check].jobs must not be negative", ErrInvalidManifest)
	}
	for _, ext := range c.Check.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: [check].extensions: %q must start with a dot", ErrInvalidManifest, ext)
		}
	}
	return nil
}

// Pipeline returns the reader limits.
func (c Config) Pipeline() pipeline.Config {
	return pipeline.Config{
		MaxTokenLength: c.Limits.TokenLength,
		MaxDepth:       c.Limits.Depth,
		MaxListWidth:   c.Limits.ListWidth,
	}
}

// FormatOptions returns the layout options for `datum fmt`.
func (c Config) FormatOptions() format.Options {
	return format.Options{
		MaxWidth: c.Format.MaxWidth,
		Header:   c.Format.Header,
		Compact:  c.Format.Compact,
	}
}

// Jobs returns the worker count, resolving 0 to GOMAXPROCS.
func (c Config) Jobs() int {
	if c.Check.Jobs > 0 {
		return c.Check.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// MatchesExtension reports whether path has one of the configured extensions.
func (c Config) MatchesExtension(path string) bool {
	return slices.Contains(c.Check.Extensions, filepath.Ext(path))
}

// Fingerprint digests the settings that change check and format results.
// Cache entries are keyed by it together with the file content.
func (c Config) Fingerprint() Digest {
	return HashBytes(fmt.Appendf(nil, "%+v|%+v", c.Limits, c.Format))
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
