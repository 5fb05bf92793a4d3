// Package decoder holds the two character-level stages at the front of the
// pipeline: UTF8 assembles bytes into scalar values and Escape resolves
// backslash escapes into classified characters.
package decoder
