package token

// Kind represents the category of a token.
type Kind uint8

const (
	// String is a "quoted" string.
	String Kind = iota
	// ID is a bare identifier.
	ID
	// SpecialID is '#' followed by identifier text, e.g. #t or #i+inf.0.
	SpecialID
	// Numeric is text starting with a digit or sign that continues as an identifier.
	Numeric
	// Quote is the ' shorthand.
	Quote
	// ListStart is '('.
	ListStart
	// ListEnd is ')'.
	ListEnd
)

var kindNames = [...]string{
	String:    "String",
	ID:        "ID",
	SpecialID: "SpecialID",
	Numeric:   "Numeric",
	Quote:     "Quote",
	ListStart: "ListStart",
	ListEnd:   "ListEnd",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// HasText reports whether tokens of this kind carry text.
func (k Kind) HasText() bool {
	return k <= Numeric
}
