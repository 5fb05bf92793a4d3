// Package format writes Datum text.
//
// Writer is a small state machine over an output buffer: it tracks whether a
// separating space or a run of indentation tabs is owed before the next
// token, so callers can stream tokens, atoms, values, newlines and comments
// in any order and still get text that reads back to the same tokens.
//
// Назначение: каноническая печать значений и токенов, проверка round-trip.
// Не делает: сохранение исходных комментариев и пробелов.
// Зависимости: internal/ast, internal/token, internal/char, internal/pipeline.
package format
