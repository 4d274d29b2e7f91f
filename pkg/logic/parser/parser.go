// Package parser turns the textual expression grammar into ast values.
//
// Precedence, low to high: IFF < IMPLIES < OR < AND < NOT. Binary
// operators are left-associative, NOT is prefix. Parentheses only delimit
// atom subject/object lists; there is no sub-expression grouping.
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Sideloading-Research/Inference/pkg/logic/ast"
	"github.com/Sideloading-Research/Inference/pkg/logic/internalerr"
)

// atomToken matches the longest atom at the start of the input. The
// trailing argument list is optional: (Pedro)Feliz and (Pedro)Feliz()
// denote the same zero-argument atom.
var atomToken = regexp.MustCompile(`^\([^)]+\)[A-Za-z_][A-Za-z0-9_]*(\([^)]*\))?`)

// atomShape unpacks a full atom token into subject, relation and objects.
var atomShape = regexp.MustCompile(`^\(([^)]+)\)([A-Za-z_][A-Za-z0-9_]*)(?:\(([^)]*)\))?$`)

// multiCharOps are tried before single-character operators, longest first.
var multiCharOps = []string{"<->", "<=>", "->", "=>"}

// Parse parses a logical expression. Errors wrap internalerr.ErrParse.
func Parse(text string) (ast.Expr, error) {
	tokens, err := tokenize(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty expression: %w", internalerr.ErrParse)
	}

	p := &parser{tokens: tokens}
	expr, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("unexpected token %q: %w", p.tokens[p.pos], internalerr.ErrParse)
	}
	return expr, nil
}

// tokenize scans left to right, preferring the longest atom match, then
// multi-character operator aliases, then single-character ones. Operators
// are normalized to canonical glyphs.
func tokenize(text string) ([]string, error) {
	var tokens []string
	i := 0
	pos := 0 // rune position, for error messages

	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])

		if unicode.IsSpace(r) {
			i += size
			pos++
			continue
		}

		if r == '(' {
			m := atomToken.FindString(text[i:])
			if m == "" {
				return nil, fmt.Errorf("unexpected character %q at position %d: %w", r, pos, internalerr.ErrParse)
			}
			tokens = append(tokens, m)
			i += len(m)
			pos += utf8.RuneCountInString(m)
			continue
		}

		matched := false
		for _, alias := range multiCharOps {
			if strings.HasPrefix(text[i:], alias) {
				op, _ := ast.OperatorFromText(alias)
				tokens = append(tokens, string(op))
				i += len(alias)
				pos += len(alias)
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if unicode.IsLetter(r) {
			word := letterRun(text[i:])
			op, ok := ast.OperatorFromText(word)
			if !ok {
				return nil, fmt.Errorf("unexpected character %q at position %d: %w", r, pos, internalerr.ErrParse)
			}
			tokens = append(tokens, string(op))
			i += len(word)
			pos += len(word)
			continue
		}

		if op, ok := ast.OperatorFromText(string(r)); ok {
			tokens = append(tokens, string(op))
			i += size
			pos++
			continue
		}

		return nil, fmt.Errorf("unexpected character %q at position %d: %w", r, pos, internalerr.ErrParse)
	}

	return tokens, nil
}

// letterRun returns the leading run of ASCII letters.
func letterRun(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return s[:i]
		}
	}
	return s
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	return p.tokens[p.pos], true
}

// parseIff handles the biconditional, the lowest precedence level.
func (p *parser) parseIff() (ast.Expr, error) {
	left, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok != string(ast.Iff) {
			return left, nil
		}
		p.pos++
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		left = ast.NewIff(left, right)
	}
}

func (p *parser) parseImplies() (ast.Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok != string(ast.Implies) {
			return left, nil
		}
		p.pos++
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = ast.NewImplies(left, right)
	}
}

// parseOr collects a flattened n-ary disjunction.
func (p *parser) parseOr() (ast.Expr, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	operands := []ast.Expr{first}
	for {
		tok, ok := p.peek()
		if !ok || tok != string(ast.Or) {
			break
		}
		p.pos++
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	return ast.NewOr(operands...), nil
}

// parseAnd collects a flattened n-ary conjunction.
func (p *parser) parseAnd() (ast.Expr, error) {
	first, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	operands := []ast.Expr{first}
	for {
		tok, ok := p.peek()
		if !ok || tok != string(ast.And) {
			break
		}
		p.pos++
		next, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	return ast.NewAnd(operands...), nil
}

// parseNot handles the prefix negation, the highest precedence level.
func (p *parser) parseNot() (ast.Expr, error) {
	tok, ok := p.peek()
	if ok && tok == string(ast.Not) {
		p.pos++
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return ast.NewNot(operand), nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (ast.Expr, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression: %w", internalerr.ErrParse)
	}
	p.pos++

	m := atomShape.FindStringSubmatch(tok)
	if m == nil {
		return nil, fmt.Errorf("invalid atom %q, expected (Subject)Relation(Objects): %w", tok, internalerr.ErrParse)
	}

	subject := strings.TrimSpace(m[1])
	relation := m[2]
	if strings.ContainsAny(subject, "()") {
		return nil, fmt.Errorf("subject %q contains parentheses: %w", subject, internalerr.ErrParse)
	}

	var objects []string
	if objectsText := strings.TrimSpace(m[3]); objectsText != "" {
		for _, obj := range strings.Split(objectsText, ",") {
			obj = strings.TrimSpace(obj)
			if strings.ContainsAny(obj, "()") {
				return nil, fmt.Errorf("object %q contains parentheses: %w", obj, internalerr.ErrParse)
			}
			objects = append(objects, obj)
		}
	}

	return ast.Atom{Subject: subject, Relation: relation, Objects: objects}, nil
}
