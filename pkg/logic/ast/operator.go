package ast

import "strings"

// Operator is a logical connective, represented by its canonical glyph.
type Operator string

const (
	And     Operator = "∧"
	Or      Operator = "∨"
	Not     Operator = "¬"
	Implies Operator = "→"
	Iff     Operator = "↔"
)

// aliases maps every accepted textual form to its canonical operator.
// Word forms are matched case-insensitively via OperatorFromText.
var aliases = map[string]Operator{
	"∧": And, "AND": And, "&": And, "^": And,
	"∨": Or, "OR": Or, "|": Or, "V": Or,
	"¬": Not, "NOT": Not, "~": Not, "!": Not,
	"→": Implies, "IMPLIES": Implies, "->": Implies, "=>": Implies,
	"↔": Iff, "IFF": Iff, "<->": Iff, "<=>": Iff,
}

// OperatorFromText converts any accepted alias to its canonical operator.
func OperatorFromText(text string) (Operator, bool) {
	op, ok := aliases[strings.ToUpper(text)]
	return op, ok
}

// Name returns the word form of the operator (e.g. "AND").
func (op Operator) Name() string {
	switch op {
	case And:
		return "AND"
	case Or:
		return "OR"
	case Not:
		return "NOT"
	case Implies:
		return "IMPLIES"
	case Iff:
		return "IFF"
	}
	return string(op)
}

// Symbol returns the canonical glyph of the operator.
func (op Operator) Symbol() string { return string(op) }
