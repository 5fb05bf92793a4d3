package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"datum/internal/project"
)

const testURI = "file:///tmp/lsp-test/doc.datum"

func analyzeText(t *testing.T, text string) *analysis {
	t.Helper()
	return analyze(context.Background(), testURI, document{text: text, version: 1}, project.Default(), 100)
}

func newTestServer(in io.Reader, out io.Writer) *Server {
	return NewServer(in, out, ServerOptions{Debounce: time.Hour, Log: io.Discard})
}

func request(t *testing.T, id int, method string, params any) []byte {
	t.Helper()
	msg := map[string]any{"jsonrpc": "2.0", "method": method}
	if id > 0 {
		msg["id"] = id
	}
	if params != nil {
		msg["params"] = params
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal %s: %v", method, err)
	}
	var buf bytes.Buffer
	if err := writeMessage(&buf, payload); err != nil {
		t.Fatalf("frame %s: %v", method, err)
	}
	return buf.Bytes()
}

type outgoing struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *rpcError       `json:"error,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
}

func readAll(t *testing.T, data []byte) []outgoing {
	t.Helper()
	r := bufio.NewReader(bytes.NewReader(data))
	var out []outgoing
	for {
		payload, err := readMessage(r)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		var msg outgoing
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode output: %v", err)
		}
		out = append(out, msg)
	}
}
