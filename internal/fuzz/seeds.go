package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// builtinSeeds cover each token kind and each failure the pipeline reports.
var builtinSeeds = []string{
	"",
	"a",
	"(a b c)",
	`"str\x41;\n"`,
	"#t #f #nil #{}#",
	"1 -2 3.5 1e10 #i+inf.0 #i+nan.0",
	"'x ''(y)",
	"; comment only\n",
	`\(id\)`,
	"(a (b (c",
	")",
	"'",
	`"open`,
	`"\q"`,
	`"\x110000;"`,
	"#what",
	"\xff\xfe",
	"\xc3",
	"(\xe2\x82\xac)",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
	addReadmeSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.datum файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".datum" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// addReadmeSeeds adds every ```datum block of the README.
func addReadmeSeeds(f *testing.F) {
	// #nosec G304 -- path is a fixed repository location
	data, err := os.ReadFile(filepath.Join("..", "..", "README.md"))
	if err != nil {
		return
	}
	var block [][]byte
	inBlock := false
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		trimmed := strings.TrimSpace(string(line))
		switch {
		case !inBlock && strings.HasPrefix(trimmed, "```datum"):
			inBlock = true
			block = block[:0]
		case inBlock && strings.HasPrefix(trimmed, "```"):
			inBlock = false
			f.Add(clampSeed(bytes.Join(block, []byte{'\n'})))
		case inBlock:
			block = append(block, line)
		}
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
