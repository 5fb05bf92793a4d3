// Package fuzztests houses Go fuzz harnesses for the Datum pipeline. They
// check that arbitrary bytes never panic a stage, that no stage exceeds its
// declared output bound, and that whatever parses also survives a
// write-then-read round trip.
//
// Назначение: прогонять произвольные байты через цепочки byte->token и
// byte->value, а также через потоковый Decoder.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/pipeline, internal/pipe, internal/format,
// internal/testkit.

package fuzztests
