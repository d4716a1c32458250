// Package ast defines the typed abstract syntax tree produced by the
// parser: statements, definitions, expressions and import sets, every
// node carrying the source location of its introducing token.
package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/goschem/token"
)

// Located pairs a piece of AST data with its optional source location.
// Equality helpers compare Data only; a Located built with NewLocated
// carries no position, so comparisons stay location-agnostic.
type Located[T any] struct {
	Data     T
	Location *token.Position
}

// NewLocated builds a Located value with no recorded position,
// convenient for constructing expected AST values in tests.
func NewLocated[T any](data T) Located[T] {
	return Located[T]{Data: data}
}

// Statement is the sum type yielded by the parser, one value per
// top-level (or procedure-body) form.
type Statement interface {
	statementNode()
}

// ImportDeclaration is `(import set...)`.
type ImportDeclaration struct {
	Sets     []ImportSet
	Location *token.Position
}

func (*ImportDeclaration) statementNode() {}
func (i *ImportDeclaration) String() string {
	parts := make([]string, len(i.Sets))
	for idx, s := range i.Sets {
		parts[idx] = s.Data.String()
	}
	return fmt.Sprintf("(import %s)", strings.Join(parts, " "))
}

// DefinitionBody is the payload of a `(define name expr)` form.
type DefinitionBody struct {
	Name  string
	Value Expression
}

// Definition is a located DefinitionBody; it is also a Statement.
type Definition = Located[DefinitionBody]

// definitionStatement adapts a Definition into the Statement interface.
type definitionStatement struct {
	Definition
}

func (*definitionStatement) statementNode() {}
func (d *definitionStatement) String() string {
	return fmt.Sprintf("(define %s %s)", d.Definition.Data.Name, d.Definition.Data.Value.Data)
}

// NewDefinitionStatement wraps a Definition as a Statement.
func NewDefinitionStatement(d Definition) Statement {
	return &definitionStatement{Definition: d}
}

// AsDefinition extracts the Definition from a Statement, if it is one.
func AsDefinition(s Statement) (Definition, bool) {
	d, ok := s.(*definitionStatement)
	if !ok {
		return Definition{}, false
	}
	return d.Definition, true
}

// expressionStatement adapts an Expression into the Statement interface.
type expressionStatement struct {
	Expression
}

func (*expressionStatement) statementNode() {}
func (e *expressionStatement) String() string { return e.Expression.Data.String() }

// NewExpressionStatement wraps an Expression as a Statement.
func NewExpressionStatement(e Expression) Statement {
	return &expressionStatement{Expression: e}
}

// AsExpression extracts the Expression from a Statement, if it is one.
func AsExpression(s Statement) (Expression, bool) {
	e, ok := s.(*expressionStatement)
	if !ok {
		return Expression{}, false
	}
	return e.Expression, true
}

// StatementsEqual compares two statements structurally (data only).
func StatementsEqual(a, b Statement) bool {
	switch av := a.(type) {
	case *definitionStatement:
		bv, ok := b.(*definitionStatement)
		return ok && DefinitionsEqual(av.Definition, bv.Definition)
	case *expressionStatement:
		bv, ok := b.(*expressionStatement)
		return ok && ExpressionsEqual(av.Expression, bv.Expression)
	case *ImportDeclaration:
		bv, ok := b.(*ImportDeclaration)
		if !ok || len(av.Sets) != len(bv.Sets) {
			return false
		}
		for i := range av.Sets {
			if !ImportSetsEqual(av.Sets[i], bv.Sets[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func DefinitionsEqual(a, b Definition) bool {
	return a.Data.Name == b.Data.Name && ExpressionsEqual(a.Data.Value, b.Data.Value)
}

// ImportSet mirrors the recursive ImportSetBody grammar.
type ImportSet = Located[ImportSetBody]

type ImportSetBody interface {
	importSetBody()
	fmt.Stringer
}

type DirectImport struct{ LibName string }

func (DirectImport) importSetBody() {}
func (d DirectImport) String() string { return d.LibName }

type OnlyImport struct {
	Inner ImportSet
	Names []string
}

func (OnlyImport) importSetBody() {}
func (o OnlyImport) String() string {
	return fmt.Sprintf("(only %s %s)", o.Inner.Data, strings.Join(o.Names, " "))
}

type ExceptImport struct {
	Inner ImportSet
	Names []string
}

func (ExceptImport) importSetBody() {}
func (e ExceptImport) String() string {
	return fmt.Sprintf("(except %s %s)", e.Inner.Data, strings.Join(e.Names, " "))
}

type PrefixImport struct {
	Inner  ImportSet
	Prefix string
}

func (PrefixImport) importSetBody() {}
func (p PrefixImport) String() string {
	return fmt.Sprintf("(prefix %s %s)", p.Inner.Data, p.Prefix)
}

type RenamePair struct{ Old, New string }

type RenameImport struct {
	Inner   ImportSet
	Renames []RenamePair
}

func (RenameImport) importSetBody() {}
func (r RenameImport) String() string {
	parts := make([]string, len(r.Renames))
	for i, p := range r.Renames {
		parts[i] = fmt.Sprintf("(%s %s)", p.Old, p.New)
	}
	return fmt.Sprintf("(rename %s %s)", r.Inner.Data, strings.Join(parts, " "))
}

func ImportSetsEqual(a, b ImportSet) bool {
	switch av := a.Data.(type) {
	case DirectImport:
		bv, ok := b.Data.(DirectImport)
		return ok && av.LibName == bv.LibName
	case OnlyImport:
		bv, ok := b.Data.(OnlyImport)
		return ok && ImportSetsEqual(av.Inner, bv.Inner) && stringsEqual(av.Names, bv.Names)
	case ExceptImport:
		bv, ok := b.Data.(ExceptImport)
		return ok && ImportSetsEqual(av.Inner, bv.Inner) && stringsEqual(av.Names, bv.Names)
	case PrefixImport:
		bv, ok := b.Data.(PrefixImport)
		return ok && ImportSetsEqual(av.Inner, bv.Inner) && av.Prefix == bv.Prefix
	case RenameImport:
		bv, ok := b.Data.(RenameImport)
		if !ok || len(av.Renames) != len(bv.Renames) {
			return false
		}
		for i := range av.Renames {
			if av.Renames[i] != bv.Renames[i] {
				return false
			}
		}
		return ImportSetsEqual(av.Inner, bv.Inner)
	default:
		return false
	}
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
