package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[format]
max_width = 60
header = "generated"

[limits]
depth = 32
list_width = 256

[check]
jobs = 2
extensions = [".datum"]
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	rootAbs, _ := filepath.Abs(root)
	if m.Root != rootAbs {
		t.Fatalf("root = %q, want %q", m.Root, rootAbs)
	}
	cfg := m.Config
	if cfg.Format.MaxWidth != 60 || cfg.Format.Header != "generated" {
		t.Fatalf("format = %+v", cfg.Format)
	}
	if !cfg.Check.Cache || cfg.Check.CacheDir != ".datum-cache" {
		t.Fatalf("defaults not kept: %+v", cfg.Check)
	}
	if cfg.Jobs() != 2 {
		t.Fatalf("jobs = %d", cfg.Jobs())
	}
	pc := cfg.Pipeline()
	if pc.MaxDepth != 32 || pc.MaxListWidth != 256 || pc.MaxTokenLength != 0 {
		t.Fatalf("pipeline config = %+v", pc)
	}
	if fo := cfg.FormatOptions(); fo.MaxWidth != 60 || fo.Header != "generated" {
		t.Fatalf("format options = %+v", fo)
	}
	if !cfg.MatchesExtension("x/y.datum") || cfg.MatchesExtension("y.dtm") {
		t.Fatal("extension matching")
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	m, ok, err := Load(dir)
	if err != nil || ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if m.Config.Format.MaxWidth != 80 || !m.Config.MatchesExtension("a.dtm") {
		t.Fatalf("defaults = %+v", m.Config)
	}
}

func TestLoadFileRejects(t *testing.T) {
	tests := []struct {
		name, body string
	}{
		{"unknown key", "[format]\nwidth = 3\n"},
		{"negative limit", "[limits]\ndepth = -1\n"},
		{"bad extension", "[check]\nextensions = [\"datum\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.body)
			if _, err := LoadFile(path); !errors.Is(err, ErrInvalidManifest) {
				t.Fatalf("LoadFile() err = %v, want ErrInvalidManifest", err)
			}
		})
	}

	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[format\n")
	if _, err := LoadFile(path); err == nil || errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("syntax error should be a parse failure, got %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Default().Encode()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, string(data))
	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile(encoded default): %v\n%s", err, data)
	}
	if m.Config.Fingerprint() != Default().Fingerprint() {
		t.Fatal("fingerprint changed after encode/decode")
	}
}

func TestDigest(t *testing.T) {
	a, b := HashBytes([]byte("a")), HashBytes([]byte("b"))
	if Combine(a, b) == Combine(b, a) {
		t.Fatal("Combine must be order sensitive")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex digest %q", a.String())
	}
	cfg := Default()
	other := cfg
	other.Limits.Depth = 8
	if cfg.Fingerprint() == other.Fingerprint() {
		t.Fatal("limits must change the fingerprint")
	}
}
