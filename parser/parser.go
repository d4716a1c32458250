// Package parser implements a recursive-descent parser over a Token
// stream, producing the typed ast.Statement values consumed by an
// evaluator. One token of lookahead suffices for the whole grammar.
package parser

import (
	"iter"

	"github.com/cwbudde/goschem/ast"
	"github.com/cwbudde/goschem/goerrors"
	"github.com/cwbudde/goschem/token"
)

// TokenSource yields tokens in source order, returning (nil, nil) at
// end of input. The lexer package is the canonical implementation.
type TokenSource interface {
	NextToken() (*token.Token, error)
}

// Parser holds one token of current state plus a one-token lookahead
// buffer, mirroring the peekable-iterator shape of the grammar this
// parser implements.
type Parser struct {
	current    *token.Token
	source     TokenSource
	peeked     *token.Token
	peekedErr  error
	havePeeked bool
	location   *token.Position
}

// New builds a Parser reading from source.
func New(source TokenSource) *Parser {
	return &Parser{source: source}
}

// Parse consumes and returns the next top-level statement, or (nil,
// nil) once the token stream is exhausted at a statement boundary.
func (p *Parser) Parse() (ast.Statement, error) {
	if err := p.advance(1); err != nil {
		return nil, err
	}
	return p.parseCurrent()
}

// Statements returns a pull iterator over the remaining top-level
// statements. Iteration stops at end of input or after yielding the
// first error.
func (p *Parser) Statements() iter.Seq2[ast.Statement, error] {
	return func(yield func(ast.Statement, error) bool) {
		for {
			stmt, err := p.Parse()
			if err != nil {
				yield(nil, err)
				return
			}
			if stmt == nil {
				return
			}
			if !yield(stmt, nil) {
				return
			}
		}
	}
}

// ParseAll drains the source into a slice of statements.
func (p *Parser) ParseAll() ([]ast.Statement, error) {
	var statements []ast.Statement
	for {
		stmt, err := p.Parse()
		if err != nil {
			return statements, err
		}
		if stmt == nil {
			return statements, nil
		}
		statements = append(statements, stmt)
	}
}

func (p *Parser) nextRaw() (*token.Token, error) {
	if p.havePeeked {
		p.havePeeked = false
		t, err := p.peeked, p.peekedErr
		p.peeked, p.peekedErr = nil, nil
		return t, err
	}
	return p.source.NextToken()
}

// advance skips (count-1) tokens, then loads the next one as current.
func (p *Parser) advance(count int) error {
	for i := 1; i < count; i++ {
		if _, err := p.nextRaw(); err != nil {
			return err
		}
	}
	t, err := p.nextRaw()
	if err != nil {
		return err
	}
	p.current = t
	if t != nil {
		p.location = t.Location
	} else {
		p.location = nil
	}
	return nil
}

func (p *Parser) peekNextToken() (*token.Token, error) {
	if !p.havePeeked {
		p.peeked, p.peekedErr = p.source.NextToken()
		p.havePeeked = true
	}
	return p.peeked, p.peekedErr
}

func (p *Parser) locate(data ast.ExpressionBody) ast.Expression {
	return ast.Expression{Data: data, Location: p.location}
}

func (p *Parser) syntaxErr(format string, args ...any) error {
	return goerrors.NewSyntax(p.location, format, args...)
}

// parseCurrent dispatches on the already-loaded current token,
// implementing the top-level grammar switch.
func (p *Parser) parseCurrent() (ast.Statement, error) {
	if p.current == nil {
		return nil, nil
	}
	data := p.current.Data
	loc := p.current.Location

	switch data.Kind {
	case token.Boolean:
		return ast.NewExpressionStatement(ast.Expression{Data: ast.BooleanExpr{Value: data.Bool}, Location: loc}), nil
	case token.Integer:
		return ast.NewExpressionStatement(ast.Expression{Data: ast.IntegerExpr{Value: data.Int}, Location: loc}), nil
	case token.Real:
		return ast.NewExpressionStatement(ast.Expression{Data: ast.RealExpr{Text: data.RealText}, Location: loc}), nil
	case token.Rational:
		return ast.NewExpressionStatement(ast.Expression{Data: ast.RationalExpr{Num: data.RationalNum, Denom: data.RationalDenom}, Location: loc}), nil
	case token.Identifier:
		return ast.NewExpressionStatement(ast.Expression{Data: ast.IdentifierExpr{Name: data.Ident}, Location: loc}), nil
	case token.Character:
		return ast.NewExpressionStatement(ast.Expression{Data: ast.CharacterExpr{Value: data.Char}, Location: loc}), nil
	case token.String:
		return ast.NewExpressionStatement(ast.Expression{Data: ast.StringExpr{Value: data.Str}, Location: loc}), nil
	case token.Period:
		return ast.NewExpressionStatement(ast.Expression{Data: ast.PeriodExpr{}, Location: loc}), nil
	case token.RightParen:
		return nil, goerrors.NewSyntax(loc, "Unmatched Parentheses!")
	case token.VecConsIntro:
		expr, err := p.vector()
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr), nil
	case token.Quote:
		if err := p.advance(1); err != nil {
			return nil, err
		}
		expr, err := p.quote()
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr), nil
	case token.LeftParen:
		return p.parseParenForm()
	default:
		return nil, goerrors.NewSyntax(loc, "unsupported grammar")
	}
}

func (p *Parser) parseParenForm() (ast.Statement, error) {
	next, err := p.peekNextToken()
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, p.syntaxErr("unexpect end of input")
	}
	if next.Data.Kind == token.RightParen {
		return nil, goerrors.NewSyntax(next.Location, "empty procedure call")
	}
	if next.Data.Kind == token.Identifier {
		switch next.Data.Ident {
		case "lambda":
			expr, err := p.lambda()
			return wrapExpr(expr, err)
		case "quote":
			if err := p.advance(2); err != nil {
				return nil, err
			}
			quoted, err := p.quote()
			if err != nil {
				return nil, err
			}
			if err := p.advance(1); err != nil {
				return nil, err
			}
			if p.current == nil {
				return nil, p.syntaxErr("unclosed quotation!")
			}
			if p.current.Data.Kind != token.RightParen {
				return nil, p.syntaxErr("expect ), got %s", p.current.Data)
			}
			return ast.NewExpressionStatement(quoted), nil
		case "define":
			def, err := p.definition()
			if err != nil {
				return nil, err
			}
			return ast.NewDefinitionStatement(def), nil
		case "set!":
			expr, err := p.assignment()
			return wrapExpr(expr, err)
		case "import":
			return p.importDeclaration()
		case "if":
			expr, err := p.condition()
			return wrapExpr(expr, err)
		default:
			expr, err := p.procedureCall()
			return wrapExpr(expr, err)
		}
	}
	expr, err := p.procedureCall()
	return wrapExpr(expr, err)
}

func wrapExpr(expr ast.Expression, err error) (ast.Statement, error) {
	if err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr), nil
}

func (p *Parser) parseCurrentExpression() (ast.Expression, error) {
	stmt, err := p.parseCurrent()
	if err != nil {
		return ast.Expression{}, err
	}
	if expr, ok := ast.AsExpression(stmt); ok {
		return expr, nil
	}
	return ast.Expression{}, p.syntaxErr("expect a expression here")
}

// parseNext advances one token then parses it as a statement, the
// recursive step used throughout the sub-parsers below.
func (p *Parser) parseNext() (ast.Statement, error) {
	if err := p.advance(1); err != nil {
		return nil, err
	}
	return p.parseCurrent()
}

func (p *Parser) parseNextExpression() (ast.Expression, error) {
	stmt, err := p.parseNext()
	if err != nil {
		return ast.Expression{}, err
	}
	if expr, ok := ast.AsExpression(stmt); ok {
		return expr, nil
	}
	return ast.Expression{}, p.syntaxErr("expect a expression here")
}

func (p *Parser) getIdentifier() (string, error) {
	if p.current == nil {
		return "", p.syntaxErr("expect an identifier while encountered end of input")
	}
	if p.current.Data.Kind != token.Identifier {
		return "", p.syntaxErr("expect an identifier, got %s", p.current.Data)
	}
	return p.current.Data.Ident, nil
}

func (p *Parser) getIdentifierPair() ([2]string, error) {
	loc := p.location
	if err := requireKind(p, token.LeftParen); err != nil {
		return [2]string{}, err
	}
	if err := p.advance(1); err != nil {
		return [2]string{}, err
	}
	first, err := p.getIdentifier()
	if err != nil {
		return [2]string{}, err
	}
	if err := p.advance(1); err != nil {
		return [2]string{}, err
	}
	second, err := p.getIdentifier()
	if err != nil {
		return [2]string{}, err
	}
	if err := p.advance(1); err != nil {
		return [2]string{}, err
	}
	if p.current == nil || p.current.Data.Kind != token.RightParen {
		return [2]string{}, goerrors.NewSyntax(loc, "expect an identifier pair: (ident1, ident2)")
	}
	return [2]string{first, second}, nil
}

func requireKind(p *Parser, k token.Kind) error {
	if p.current == nil || p.current.Data.Kind != k {
		return p.syntaxErr("expect %s", k)
	}
	return nil
}

// collect repeatedly peeks for RightParen (consuming and stopping) or
// invokes elem for every other lookahead, advancing first.
func collect[T any](p *Parser, elem func(*Parser) (T, error)) ([]T, error) {
	var out []T
	for {
		next, err := p.peekNextToken()
		if err != nil {
			return out, err
		}
		if next == nil {
			return out, p.syntaxErr("unexpect end of input")
		}
		if next.Data.Kind == token.RightParen {
			if err := p.advance(1); err != nil {
				return out, err
			}
			return out, nil
		}
		if err := p.advance(1); err != nil {
			return out, err
		}
		v, err := elem(p)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
}

func (p *Parser) vector() (ast.Expression, error) {
	elems, err := collect(p, (*Parser).datum)
	if err != nil {
		return ast.Expression{}, err
	}
	return p.locate(ast.VectorExpr{Elements: elems}), nil
}

func (p *Parser) procedureFormals() (ast.ParameterFormals, error) {
	formals := ast.NewParameterFormals()
	for {
		next, err := p.peekNextToken()
		if err != nil {
			return formals, err
		}
		if next == nil {
			return formals, p.syntaxErr("unexpect end of input")
		}
		switch next.Data.Kind {
		case token.RightParen:
			if err := p.advance(1); err != nil {
				return formals, err
			}
			return formals, nil
		case token.Period:
			if len(formals.Fixed) == 0 {
				return formals, p.syntaxErr("must provide at least normal parameter before variadic parameter")
			}
			if err := p.advance(2); err != nil {
				return formals, err
			}
			name, err := p.getIdentifier()
			if err != nil {
				return formals, err
			}
			formals.Variadic = &name
		default:
			if err := p.advance(1); err != nil {
				return formals, err
			}
			name, err := p.getIdentifier()
			if err != nil {
				return formals, err
			}
			formals.Fixed = append(formals.Fixed, name)
		}
	}
}

func (p *Parser) quote() (ast.Expression, error) {
	inner, err := p.datum()
	if err != nil {
		return ast.Expression{}, err
	}
	return ast.Expression{Data: ast.QuoteExpr{Datum: inner}, Location: p.location}, nil
}

func (p *Parser) datum() (ast.Expression, error) {
	if p.current == nil {
		return ast.Expression{}, p.syntaxErr("expect a literal")
	}
	switch p.current.Data.Kind {
	case token.LeftParen:
		elems, err := collect(p, (*Parser).datum)
		if err != nil {
			return ast.Expression{}, err
		}
		return ast.Expression{Data: ast.ListExpr{Elements: elems}, Location: p.location}, nil
	case token.VecConsIntro:
		elems, err := collect(p, (*Parser).datum)
		if err != nil {
			return ast.Expression{}, err
		}
		return ast.Expression{Data: ast.VectorExpr{Elements: elems}, Location: p.location}, nil
	default:
		return p.parseCurrentExpression()
	}
}

func (p *Parser) lambda() (ast.Expression, error) {
	loc := p.location
	formals := ast.NewParameterFormals()
	if err := p.advance(2); err != nil {
		return ast.Expression{}, err
	}
	switch {
	case p.current != nil && p.current.Data.Kind == token.Identifier:
		name := p.current.Data.Ident
		formals.Variadic = &name
	case p.current != nil && p.current.Data.Kind == token.LeftParen:
		f, err := p.procedureFormals()
		if err != nil {
			return ast.Expression{}, err
		}
		formals = f
	default:
		return ast.Expression{}, goerrors.NewSyntax(loc, "expect formal identifiers")
	}
	return p.procedureBody(formals)
}

func (p *Parser) procedureBody(formals ast.ParameterFormals) (ast.Expression, error) {
	statements, err := collect(p, (*Parser).parseCurrent)
	if err != nil {
		return ast.Expression{}, err
	}
	var definitions []ast.Definition
	var expressions []ast.Expression
	for _, stmt := range statements {
		if stmt == nil {
			return ast.Expression{}, p.syntaxErr("lambda body empty")
		}
		if def, ok := ast.AsDefinition(stmt); ok {
			if len(expressions) != 0 {
				return ast.Expression{}, p.syntaxErr("unexpect definition af expression")
			}
			definitions = append(definitions, def)
			continue
		}
		if expr, ok := ast.AsExpression(stmt); ok {
			expressions = append(expressions, expr)
			continue
		}
		return ast.Expression{}, p.syntaxErr("procedure body can only contains definition or expression")
	}
	if len(expressions) == 0 {
		return ast.Expression{}, p.syntaxErr("no expression in procedure body")
	}
	return p.locate(ast.ProcedureExpr{Procedure: ast.SchemeProcedure{
		Formals:     formals,
		Definitions: definitions,
		Expressions: expressions,
	}}), nil
}

func (p *Parser) importDeclaration() (ast.Statement, error) {
	if err := p.advance(1); err != nil {
		return nil, err
	}
	sets, err := collect(p, (*Parser).importSet)
	if err != nil {
		return nil, err
	}
	return &ast.ImportDeclaration{Sets: sets, Location: p.location}, nil
}

func (p *Parser) condition() (ast.Expression, error) {
	if err := p.advance(1); err != nil {
		return ast.Expression{}, err
	}
	test, err := p.parseNextExpression()
	if err != nil {
		return ast.Expression{}, err
	}
	consequent, err := p.parseNextExpression()
	if err != nil {
		return ast.Expression{}, err
	}
	next, err := p.peekNextToken()
	if err != nil {
		return ast.Expression{}, err
	}
	if next != nil && next.Data.Kind == token.RightParen {
		if err := p.advance(1); err != nil {
			return ast.Expression{}, err
		}
		return p.locate(ast.ConditionalExpr{Test: test, Consequent: consequent}), nil
	}
	alternative, err := p.parseNextExpression()
	if err != nil {
		return ast.Expression{}, err
	}
	if err := p.advance(1); err != nil {
		return ast.Expression{}, err
	}
	if p.current == nil || p.current.Data.Kind != token.RightParen {
		return ast.Expression{}, p.syntaxErr("conditional syntax error")
	}
	return p.locate(ast.ConditionalExpr{Test: test, Consequent: consequent, Alternative: &alternative}), nil
}

func (p *Parser) importSet() (ast.ImportSet, error) {
	loc := p.location
	if p.current == nil {
		return ast.ImportSet{}, goerrors.NewSyntax(loc, "expect an import set")
	}
	if p.current.Data.Kind == token.Identifier {
		return ast.ImportSet{Data: ast.DirectImport{LibName: p.current.Data.Ident}, Location: loc}, nil
	}
	if p.current.Data.Kind != token.LeftParen {
		return ast.ImportSet{}, goerrors.NewSyntax(loc, "expect an import set, got %s", p.current.Data)
	}
	if err := p.advance(1); err != nil {
		return ast.ImportSet{}, err
	}
	if p.current == nil || p.current.Data.Kind != token.Identifier {
		return ast.ImportSet{}, goerrors.NewSyntax(loc, "import: expect library name or sub import sets")
	}
	switch p.current.Data.Ident {
	case "only":
		if err := p.advance(1); err != nil {
			return ast.ImportSet{}, err
		}
		inner, err := p.importSet()
		if err != nil {
			return ast.ImportSet{}, err
		}
		names, err := collect(p, (*Parser).getIdentifier)
		if err != nil {
			return ast.ImportSet{}, err
		}
		return ast.ImportSet{Data: ast.OnlyImport{Inner: inner, Names: names}, Location: loc}, nil
	case "except":
		if err := p.advance(1); err != nil {
			return ast.ImportSet{}, err
		}
		inner, err := p.importSet()
		if err != nil {
			return ast.ImportSet{}, err
		}
		names, err := collect(p, (*Parser).getIdentifier)
		if err != nil {
			return ast.ImportSet{}, err
		}
		return ast.ImportSet{Data: ast.ExceptImport{Inner: inner, Names: names}, Location: loc}, nil
	case "prefix":
		if err := p.advance(1); err != nil {
			return ast.ImportSet{}, err
		}
		inner, err := p.importSet()
		if err != nil {
			return ast.ImportSet{}, err
		}
		if err := p.advance(1); err != nil {
			return ast.ImportSet{}, err
		}
		if p.current == nil || p.current.Data.Kind != token.Identifier {
			return ast.ImportSet{}, goerrors.NewSyntax(loc, "expect a prefix name after import")
		}
		prefix := p.current.Data.Ident
		if err := p.advance(1); err != nil {
			return ast.ImportSet{}, err
		}
		if p.current == nil || p.current.Data.Kind != token.RightParen {
			return ast.ImportSet{}, goerrors.NewSyntax(loc, "expect ) after prefix name")
		}
		return ast.ImportSet{Data: ast.PrefixImport{Inner: inner, Prefix: prefix}, Location: loc}, nil
	case "rename":
		if err := p.advance(1); err != nil {
			return ast.ImportSet{}, err
		}
		inner, err := p.importSet()
		if err != nil {
			return ast.ImportSet{}, err
		}
		pairs, err := collect(p, (*Parser).getIdentifierPair)
		if err != nil {
			return ast.ImportSet{}, err
		}
		renames := make([]ast.RenamePair, len(pairs))
		for i, pr := range pairs {
			renames[i] = ast.RenamePair{Old: pr[0], New: pr[1]}
		}
		return ast.ImportSet{Data: ast.RenameImport{Inner: inner, Renames: renames}, Location: loc}, nil
	default:
		return ast.ImportSet{}, goerrors.NewSyntax(loc, "import: expect sub import set")
	}
}

func (p *Parser) definition() (ast.Definition, error) {
	loc := p.location
	if err := p.advance(2); err != nil {
		return ast.Definition{}, err
	}
	if p.current == nil {
		return ast.Definition{}, goerrors.NewSyntax(loc, "define: expect identifier and expression")
	}
	switch p.current.Data.Kind {
	case token.Identifier:
		name := p.current.Data.Ident
		expr, err := p.parseNextExpression()
		if err != nil {
			return ast.Definition{}, err
		}
		if err := p.advance(1); err != nil {
			return ast.Definition{}, err
		}
		if p.current == nil || p.current.Data.Kind != token.RightParen {
			return ast.Definition{}, goerrors.NewSyntax(loc, "define: expect identifier and expression")
		}
		return ast.NewLocated(ast.DefinitionBody{Name: name, Value: expr}), nil
	case token.LeftParen:
		if err := p.advance(1); err != nil {
			return ast.Definition{}, err
		}
		if p.current == nil || p.current.Data.Kind != token.Identifier {
			return ast.Definition{}, goerrors.NewSyntax(loc, "define: expect identifier and expression")
		}
		name := p.current.Data.Ident
		formals := ast.NewParameterFormals()
		next, err := p.peekNextToken()
		if err != nil {
			return ast.Definition{}, err
		}
		if next != nil && next.Data.Kind == token.Period {
			if err := p.advance(2); err != nil {
				return ast.Definition{}, err
			}
			restName, err := p.getIdentifier()
			if err != nil {
				return ast.Definition{}, err
			}
			formals.Variadic = &restName
			if err := p.advance(1); err != nil {
				return ast.Definition{}, err
			}
		} else {
			f, err := p.procedureFormals()
			if err != nil {
				return ast.Definition{}, err
			}
			formals = f
		}
		body, err := p.procedureBody(formals)
		if err != nil {
			return ast.Definition{}, err
		}
		return ast.NewLocated(ast.DefinitionBody{Name: name, Value: body}), nil
	default:
		return ast.Definition{}, goerrors.NewSyntax(loc, "define: expect identifier and expression")
	}
}

func (p *Parser) assignment() (ast.Expression, error) {
	loc := p.location
	if err := p.advance(2); err != nil {
		return ast.Expression{}, err
	}
	if p.current == nil {
		return ast.Expression{}, goerrors.NewSyntax(loc, "set!: expect identifier and expression")
	}
	switch p.current.Data.Kind {
	case token.Identifier:
		name := p.current.Data.Ident
		expr, err := p.parseNextExpression()
		if err != nil {
			return ast.Expression{}, err
		}
		if err := p.advance(1); err != nil {
			return ast.Expression{}, err
		}
		if p.current == nil || p.current.Data.Kind != token.RightParen {
			return ast.Expression{}, goerrors.NewSyntax(loc, "set!: expect identifier and expression")
		}
		return p.locate(ast.AssignmentExpr{Name: name, Value: expr}), nil
	case token.LeftParen:
		if err := p.advance(1); err != nil {
			return ast.Expression{}, err
		}
		if p.current == nil || p.current.Data.Kind != token.Identifier {
			return ast.Expression{}, goerrors.NewSyntax(loc, "set!: expect identifier and expression")
		}
		name := p.current.Data.Ident
		formals, err := p.procedureFormals()
		if err != nil {
			return ast.Expression{}, err
		}
		body, err := p.procedureBody(formals)
		if err != nil {
			return ast.Expression{}, err
		}
		return p.locate(ast.AssignmentExpr{Name: name, Value: body}), nil
	default:
		return ast.Expression{}, goerrors.NewSyntax(loc, "set!: expect identifier and expression")
	}
}

func (p *Parser) procedureCall() (ast.Expression, error) {
	operator, err := p.parseNextExpression()
	if err != nil {
		return ast.Expression{}, err
	}
	var arguments []ast.Expression
	for {
		next, err := p.peekNextToken()
		if err != nil {
			return ast.Expression{}, err
		}
		if next == nil {
			return ast.Expression{}, p.syntaxErr("Unmatched Parentheses!")
		}
		if next.Data.Kind == token.RightParen {
			if err := p.advance(1); err != nil {
				return ast.Expression{}, err
			}
			return p.locate(ast.ProcedureCallExpr{Operator: operator, Arguments: arguments}), nil
		}
		arg, err := p.parseNextExpression()
		if err != nil {
			return ast.Expression{}, err
		}
		arguments = append(arguments, arg)
	}
}
