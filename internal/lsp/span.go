package lsp

import (
	"unicode/utf8"

	"fortio.org/safecast"

	"datum/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// positionForOffset converts a byte offset in file to an LSP position.
func positionForOffset(file *source.File, off uint32) position {
	off = min(off, safeUint32(len(file.Content)))
	line := 0
	var lineStart uint32
	for _, nl := range file.LineIdx {
		if nl >= off {
			break
		}
		line++
		lineStart = nl + 1
	}
	units := 0
	for _, r := range string(file.Content[lineStart:off]) {
		units++
		if r > 0xFFFF {
			units++
		}
	}
	return position{Line: line, Character: units}
}

func rangeForSpan(file *source.File, start, end uint32) lspRange {
	return lspRange{Start: positionForOffset(file, start), End: positionForOffset(file, end)}
}

// endPosition is the position just past the last byte of file.
func endPosition(file *source.File) position {
	return positionForOffset(file, safeUint32(len(file.Content)))
}

// runeEnd returns the offset after the rune starting at off.
func runeEnd(content []byte, off int) int {
	if off >= len(content) {
		return len(content)
	}
	_, size := utf8.DecodeRune(content[off:])
	return off + size
}
