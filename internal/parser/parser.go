package parser

import (
	"errors"
	"fmt"

	"datum/internal/ast"
	"datum/internal/buffer"
	"datum/internal/token"
)

var (
	// ErrUnbalancedClose reports ')' with no open list to close.
	ErrUnbalancedClose = errors.New("unbalanced ')'")
	// ErrUnterminatedList reports input ending inside a list.
	ErrUnterminatedList = errors.New("unterminated list")
	// ErrDanglingQuote reports input ending right after a quote.
	ErrDanglingQuote = errors.New("quote without a value")
	// ErrBadAtom wraps an atom conversion failure from package ast.
	ErrBadAtom = errors.New("bad atom")
	// ErrTooDeep reports nesting beyond the frame stack capacity.
	ErrTooDeep = errors.New("nesting too deep")
	// ErrListTooLong reports a list longer than its buffer capacity.
	ErrListTooLong = errors.New("list too long")
)

// Parser is the pipeline stage turning tokens into top-level values.
type Parser struct {
	store Storage
	stack buffer.Buffer[Frame]
	err   error
}

// New returns a parser using store, or HeapStorage when store is nil.
func New(store Storage) *Parser {
	if store == nil {
		store = HeapStorage{}
	}
	return &Parser{store: store, stack: store.NewStack()}
}

func (p *Parser) Feed(t token.Token, emit func(ast.Value)) {
	if p.err != nil {
		return
	}
	switch t.Kind {
	case token.ListStart:
		p.push(Frame{Kind: InList, Items: p.store.NewList()})
	case token.Quote:
		p.push(Frame{Kind: InQuote})
	case token.ListEnd:
		top, ok := buffer.Pop(p.stack)
		if !ok {
			p.err = fmt.Errorf("%w: no list is open", ErrUnbalancedClose)
			return
		}
		if top.Kind != InList {
			p.err = fmt.Errorf("%w: closes a quote", ErrUnbalancedClose)
			return
		}
		p.close(ast.ListOf(buffer.Collect(top.Items)...), emit)
	default:
		v, err := ast.FromToken(t)
		if err != nil {
			p.err = fmt.Errorf("%w: %w", ErrBadAtom, err)
			return
		}
		p.close(v, emit)
	}
}

func (p *Parser) push(f Frame) {
	if err := p.stack.Push(f); err != nil {
		p.err = fmt.Errorf("%w: depth %d: %w", ErrTooDeep, p.stack.Len(), err)
	}
}

// close hands a finished value to the innermost open list, wrapping it once
// for every quote frame on top of that list.
func (p *Parser) close(v ast.Value, emit func(ast.Value)) {
	for {
		n := p.stack.Len()
		if n == 0 {
			emit(v)
			return
		}
		top := p.stack.At(n - 1)
		if top.Kind == InQuote {
			p.stack.Truncate(n - 1)
			v = ast.Quoted(v)
			continue
		}
		if err := top.Items.Push(v); err != nil {
			p.err = fmt.Errorf("%w: more than %d items: %w", ErrListTooLong, top.Items.Len(), err)
		}
		return
	}
}

// EOF fails if any construct is still open. It never emits.
func (p *Parser) EOF(func(ast.Value)) {
	if p.err != nil {
		return
	}
	n := p.stack.Len()
	if n == 0 {
		return
	}
	if p.stack.At(n-1).Kind == InQuote {
		p.err = fmt.Errorf("%w: %d open frame(s)", ErrDanglingQuote, n)
	} else {
		p.err = fmt.Errorf("%w: %d open frame(s)", ErrUnterminatedList, n)
	}
	p.stack.Truncate(0)
}

// Depth is the number of open frames.
func (p *Parser) Depth() int { return p.stack.Len() }

func (p *Parser) AllowedToEOF() bool { return p.err == nil && p.stack.Len() == 0 }

func (p *Parser) HasError() bool { return p.err != nil }

func (p *Parser) Err() error { return p.err }

func (p *Parser) MaxOut() int { return 1 }
