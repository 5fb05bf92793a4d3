package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"datum/internal/project"
	"datum/internal/source"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

// ErrNoFiles is returned when the given paths contain no datum files.
var ErrNoFiles = errors.New("no datum files found")

func (o *Options) load(fileSet *source.FileSet, path string) (source.FileID, error) {
	if path == StdinPath {
		return fileSet.LoadReader("<stdin>", o.stdin())
	}
	return fileSet.Load(path)
}

// CollectFiles returns the files CheckPaths and FormatPaths would visit.
func CollectFiles(ctx context.Context, paths []string, cfg project.Config) ([]string, error) {
	return collectSourceFiles(ctx, paths, cfg)
}

// collectSourceFiles expands directories into the files whose extension the
// config accepts. Files named explicitly are kept whatever their extension.
// Hidden directories and the cache directory are skipped.
func collectSourceFiles(ctx context.Context, paths []string, cfg project.Config) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p == StdinPath {
			addFile(p)
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != p && (strings.HasPrefix(name, ".") || name == cfg.Check.CacheDir) {
					return filepath.SkipDir
				}
				return nil
			}
			if cfg.MatchesExtension(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
