// Package token defines the lexical tokens consumed by the parser.
//
// The lexer that produces these tokens is an external collaborator (see
// the lexer package for a minimal reference implementation); this package
// only fixes the contract both sides agree on.
package token

import "fmt"

// Position locates a token in its source text. Line and column are
// 1-indexed, matching the [line, column] pair used throughout the parser
// and error-formatting packages.
type Position struct {
	Line   uint32
	Column uint32
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Kind identifies which variant a token's Data payload holds.
type Kind int

const (
	Boolean Kind = iota
	Integer
	Real
	Rational
	Identifier
	Character
	String
	LeftParen
	RightParen
	VecConsIntro
	Quote
	Period
)

func (k Kind) String() string {
	switch k {
	case Boolean:
		return "Boolean"
	case Integer:
		return "Integer"
	case Real:
		return "Real"
	case Rational:
		return "Rational"
	case Identifier:
		return "Identifier"
	case Character:
		return "Character"
	case String:
		return "String"
	case LeftParen:
		return "LeftParen"
	case RightParen:
		return "RightParen"
	case VecConsIntro:
		return "VecConsIntro"
	case Quote:
		return "Quote"
	case Period:
		return "Period"
	default:
		return "Unknown"
	}
}

// Data is the tagged payload of a Token. Only the field matching Kind is
// meaningful; the others are zero values.
type Data struct {
	Kind             Kind
	Bool             bool
	Int              int32
	RealText         string // kept textual to preserve printing precision
	RationalNum      int32
	RationalDenom    uint32
	Ident            string
	Char             rune
	Str              string
}

func (d Data) String() string {
	switch d.Kind {
	case Boolean:
		if d.Bool {
			return "#t"
		}
		return "#f"
	case Integer:
		return fmt.Sprintf("%d", d.Int)
	case Real:
		return d.RealText
	case Rational:
		return fmt.Sprintf("%d/%d", d.RationalNum, d.RationalDenom)
	case Identifier:
		return d.Ident
	case Character:
		return fmt.Sprintf("#\\%c", d.Char)
	case String:
		return fmt.Sprintf("%q", d.Str)
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case VecConsIntro:
		return "#("
	case Quote:
		return "'"
	case Period:
		return "."
	default:
		return "<unknown token>"
	}
}

// Token pairs a Data payload with its optional source location.
type Token struct {
	Data     Data
	Location *Position
}

// Constructors for each Kind, used by lexers and tests alike.

func NewBoolean(v bool, loc *Position) Token {
	return Token{Data: Data{Kind: Boolean, Bool: v}, Location: loc}
}

func NewInteger(v int32, loc *Position) Token {
	return Token{Data: Data{Kind: Integer, Int: v}, Location: loc}
}

func NewReal(text string, loc *Position) Token {
	return Token{Data: Data{Kind: Real, RealText: text}, Location: loc}
}

func NewRational(num int32, denom uint32, loc *Position) Token {
	return Token{Data: Data{Kind: Rational, RationalNum: num, RationalDenom: denom}, Location: loc}
}

func NewIdentifier(v string, loc *Position) Token {
	return Token{Data: Data{Kind: Identifier, Ident: v}, Location: loc}
}

func NewCharacter(v rune, loc *Position) Token {
	return Token{Data: Data{Kind: Character, Char: v}, Location: loc}
}

func NewString(v string, loc *Position) Token {
	return Token{Data: Data{Kind: String, Str: v}, Location: loc}
}

func NewLeftParen(loc *Position) Token  { return Token{Data: Data{Kind: LeftParen}, Location: loc} }
func NewRightParen(loc *Position) Token { return Token{Data: Data{Kind: RightParen}, Location: loc} }
func NewVecConsIntro(loc *Position) Token {
	return Token{Data: Data{Kind: VecConsIntro}, Location: loc}
}
func NewQuote(loc *Position) Token  { return Token{Data: Data{Kind: Quote}, Location: loc} }
func NewPeriod(loc *Position) Token { return Token{Data: Data{Kind: Period}, Location: loc} }
