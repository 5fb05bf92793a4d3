package char

// Class is the grammatical role of a character.
type Class uint8

const (
	// ClassContent is ordinary identifier or string text.
	ClassContent Class = iota
	// ClassWhitespace covers control characters, space and DEL (except newline).
	ClassWhitespace
	// ClassNewline terminates line comments.
	ClassNewline
	// ClassLineComment is ';'.
	ClassLineComment
	// ClassString is '"'.
	ClassString
	// ClassQuote is '\''.
	ClassQuote
	// ClassListStart is '('.
	ClassListStart
	// ClassListEnd is ')'.
	ClassListEnd
	// ClassSpecialID is '#'.
	ClassSpecialID
	// ClassSign is '-'.
	ClassSign
	// ClassDigit is '0'..'9'.
	ClassDigit
)

var classNames = [...]string{
	ClassContent:     "Content",
	ClassWhitespace:  "Whitespace",
	ClassNewline:     "Newline",
	ClassLineComment: "LineComment",
	ClassString:      "String",
	ClassQuote:       "Quote",
	ClassListStart:   "ListStart",
	ClassListEnd:     "ListEnd",
	ClassSpecialID:   "SpecialID",
	ClassSign:        "Sign",
	ClassDigit:       "Digit",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "Class(?)"
}

// PotentialIdentifier reports whether the class may continue an identifier.
func (c Class) PotentialIdentifier() bool {
	switch c {
	case ClassContent, ClassSign, ClassDigit, ClassSpecialID:
		return true
	}
	return false
}

// NumericStart reports whether the class opens a numeric token.
func (c Class) NumericStart() bool {
	return c == ClassSign || c == ClassDigit
}

// NonPrinting reports whether the class is layout only.
func (c Class) NonPrinting() bool {
	return c == ClassWhitespace || c == ClassNewline
}

const (
	asciiLimit = 128
	backslash  = '\\'
	noClass    = 0xFF
)

// asciiTable is filled once at init and only read afterwards.
var asciiTable = buildASCIITable()

func buildASCIITable() [asciiLimit]uint8 {
	var t [asciiLimit]uint8
	for i := range t {
		t[i] = uint8(ClassContent)
	}
	for i := 0; i <= 32; i++ {
		t[i] = uint8(ClassWhitespace)
	}
	t[127] = uint8(ClassWhitespace)
	t['\n'] = uint8(ClassNewline)
	t[';'] = uint8(ClassLineComment)
	t['"'] = uint8(ClassString)
	t['\''] = uint8(ClassQuote)
	t['('] = uint8(ClassListStart)
	t[')'] = uint8(ClassListEnd)
	t['#'] = uint8(ClassSpecialID)
	t['-'] = uint8(ClassSign)
	for c := '0'; c <= '9'; c++ {
		t[c] = uint8(ClassDigit)
	}
	t[backslash] = noClass
	return t
}

// Classify returns the natural class of r. The backslash has none.
func Classify(r rune) (Class, bool) {
	if r >= 0 && r < asciiLimit {
		v := asciiTable[r]
		if v == noClass {
			return 0, false
		}
		return Class(v), true
	}
	return ClassContent, true
}
