package lexer

import (
	"datum/internal/char"
	"datum/internal/token"
)

type state uint8

const (
	stStart state = iota
	stLineComment
	stString
	stID
	stNumericSign
	stNumeric
	stSpecialID
)

var stateNames = [...]string{
	stStart:       "Start",
	stLineComment: "LineComment",
	stString:      "String",
	stID:          "ID",
	stNumericSign: "NumericSign",
	stNumeric:     "Numeric",
	stSpecialID:   "SpecialID",
}

func (s state) String() string { return stateNames[s] }

// ActionKind says what to do with the char that produced an Action.
type ActionKind uint8

const (
	// ActNone ends the action list.
	ActNone ActionKind = iota
	// ActPush appends the char to the token text.
	ActPush
	// ActToken completes a token from the text so far, then clears it.
	ActToken
)

// Action is one step requested by the tokenizer.
type Action struct {
	Kind  ActionKind
	Token token.Kind
}

// Result holds the actions for one char; the first ActNone ends it.
type Result [2]Action

// EOFKind is the outcome of Tokenizer.EOF.
type EOFKind uint8

const (
	EOFNothing EOFKind = iota
	EOFToken
	EOFError
)

// EOFResult is the outcome of Tokenizer.EOF. Token is meaningful for EOFToken.
type EOFResult struct {
	Kind  EOFKind
	Token token.Kind
}

var (
	actPush = Action{Kind: ActPush}
	resNone = Result{}
	resPush = Result{actPush}
)

func actToken(k token.Kind) Action { return Action{Kind: ActToken, Token: k} }

// Tokenizer is the bufferless core state machine. It only sees char classes;
// the caller keeps the text according to the returned actions.
// Zero value is ready to use.
type Tokenizer struct {
	st state
}

// Feed advances the machine by one char class.
func (t *Tokenizer) Feed(class char.Class) Result {
	switch t.st {
	case stStart:
		var a Action
		t.st, a = startFeed(class)
		return Result{a}
	case stLineComment:
		if class == char.ClassNewline {
			t.st = stStart
		}
		return resNone
	case stString:
		if class == char.ClassString {
			t.st = stStart
			return Result{actToken(token.String)}
		}
		return resPush
	case stID:
		if class.PotentialIdentifier() {
			return resPush
		}
		return t.tokenThenRepeat(class, token.ID)
	case stNumericSign:
		if class.PotentialIdentifier() {
			t.st = stNumeric
			return resPush
		}
		// одинокий знак: это идентификатор
		return t.tokenThenRepeat(class, token.ID)
	case stNumeric:
		if class.PotentialIdentifier() {
			return resPush
		}
		return t.tokenThenRepeat(class, token.Numeric)
	case stSpecialID:
		if class.PotentialIdentifier() {
			return resPush
		}
		return t.tokenThenRepeat(class, token.SpecialID)
	}
	return resNone
}

// tokenThenRepeat closes the current token and re-dispatches class as if
// the machine were in Start.
func (t *Tokenizer) tokenThenRepeat(class char.Class, k token.Kind) Result {
	var a Action
	t.st, a = startFeed(class)
	return Result{actToken(k), a}
}

func startFeed(class char.Class) (state, Action) {
	switch class {
	case char.ClassContent:
		return stID, actPush
	case char.ClassLineComment:
		return stLineComment, Action{}
	case char.ClassString:
		return stString, Action{}
	case char.ClassQuote:
		return stStart, actToken(token.Quote)
	case char.ClassListStart:
		return stStart, actToken(token.ListStart)
	case char.ClassListEnd:
		return stStart, actToken(token.ListEnd)
	case char.ClassSpecialID:
		return stSpecialID, Action{}
	case char.ClassSign:
		return stNumericSign, actPush
	case char.ClassDigit:
		return stNumeric, actPush
	}
	// Whitespace, Newline
	return stStart, Action{}
}

// EOF finishes the input and resets the machine to Start.
func (t *Tokenizer) EOF() EOFResult {
	var res EOFResult
	switch t.st {
	case stString:
		res = EOFResult{Kind: EOFError}
	case stID, stNumericSign:
		res = EOFResult{Kind: EOFToken, Token: token.ID}
	case stNumeric:
		res = EOFResult{Kind: EOFToken, Token: token.Numeric}
	case stSpecialID:
		res = EOFResult{Kind: EOFToken, Token: token.SpecialID}
	}
	t.st = stStart
	return res
}

// AllowedToEOF reports whether EOF would succeed now.
func (t *Tokenizer) AllowedToEOF() bool { return t.st != stString }

// InComment reports whether the machine is inside a line comment.
func (t *Tokenizer) InComment() bool { return t.st == stLineComment }
