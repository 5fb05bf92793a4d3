package token

// EmptyIDText is the SpecialID body that stands for the empty identifier.
const EmptyIDText = "{}#"

// Token is one lexical unit.
type Token struct {
	Kind Kind
	Text string
}

// New builds a token of kind k; text is dropped for kinds without text.
func New(k Kind, text string) Token {
	if !k.HasText() {
		text = ""
	}
	return Token{Kind: k, Text: text}
}

func (t Token) String() string {
	if t.Kind.HasText() {
		return t.Kind.String() + "(" + t.Text + ")"
	}
	return t.Kind.String()
}

// IsAtom reports whether the token denotes an atom rather than structure.
func (t Token) IsAtom() bool {
	return t.Kind.HasText()
}

// Positioned pairs a token with the byte offset of the input byte whose
// arrival completed it.
type Positioned struct {
	Token
	Offset int
}
