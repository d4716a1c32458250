package parser

import (
	"testing"

	"github.com/cwbudde/goschem/ast"
	"github.com/cwbudde/goschem/goerrors"
	"github.com/cwbudde/goschem/lexer"
	"github.com/cwbudde/goschem/token"
)

// tokenSliceSource feeds pre-built tokens (all without locations) to
// the parser, for tests that pin error locations to nil.
type tokenSliceSource struct {
	tokens []token.Token
	next   int
}

func (s *tokenSliceSource) NextToken() (*token.Token, error) {
	if s.next >= len(s.tokens) {
		return nil, nil
	}
	t := s.tokens[s.next]
	s.next++
	return &t, nil
}

func tokenStreamToParser(tokens ...token.Token) *Parser {
	return New(&tokenSliceSource{tokens: tokens})
}

func parseAll(t *testing.T, src string) []ast.Statement {
	t.Helper()
	stmts, err := New(lexer.New(src)).ParseAll()
	if err != nil {
		t.Fatalf("ParseAll(%q) error: %v", src, err)
	}
	return stmts
}

func TestParseSelfEvaluatingLiterals(t *testing.T) {
	stmts := parseAll(t, "42 #t \"hi\" foo")
	if len(stmts) != 4 {
		t.Fatalf("got %d statements, want 4", len(stmts))
	}
	want := []string{"42", "#t", `"hi"`, "foo"}
	for i, s := range stmts {
		expr, ok := ast.AsExpression(s)
		if !ok {
			t.Fatalf("statement %d is not an expression", i)
		}
		if got := expr.Data.String(); got != want[i] {
			t.Errorf("statement %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestParseProcedureCall(t *testing.T) {
	stmts := parseAll(t, "(+ 1 2 3)")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	expr, ok := ast.AsExpression(stmts[0])
	if !ok {
		t.Fatal("expected an expression statement")
	}
	call, ok := expr.Data.(ast.ProcedureCallExpr)
	if !ok {
		t.Fatalf("expected a ProcedureCallExpr, got %T", expr.Data)
	}
	if got, want := call.Operator.Data.String(), "+"; got != want {
		t.Errorf("operator = %q, want %q", got, want)
	}
	if len(call.Arguments) != 3 {
		t.Fatalf("got %d arguments, want 3", len(call.Arguments))
	}
}

func TestParseUnmatchedParenthesesIsSyntaxError(t *testing.T) {
	_, err := New(lexer.New("(+ 1 2")).ParseAll()
	if err == nil {
		t.Fatal("expected an error for unmatched parentheses")
	}
	se, ok := err.(*goerrors.SchemeError)
	if !ok {
		t.Fatalf("error is %T, want *goerrors.SchemeError", err)
	}
	if se.Kind != goerrors.Syntax {
		t.Errorf("Kind = %v, want Syntax", se.Kind)
	}
	if se.Message != "Unmatched Parentheses!" {
		t.Errorf("Message = %q, want %q", se.Message, "Unmatched Parentheses!")
	}
}

func TestParseUnmatchedParenthesesNilLocation(t *testing.T) {
	p := tokenStreamToParser(
		token.NewLeftParen(nil),
		token.NewIdentifier("+", nil),
		token.NewInteger(1, nil),
		token.NewInteger(2, nil),
		token.NewInteger(3, nil),
	)
	_, err := p.Parse()
	se, ok := err.(*goerrors.SchemeError)
	if !ok {
		t.Fatalf("error is %T, want *goerrors.SchemeError", err)
	}
	want := goerrors.NewSyntax(nil, "Unmatched Parentheses!")
	if !se.Equals(want) {
		t.Errorf("error = %+v, want %+v", se, want)
	}
}

func TestParseLambdaDottedFormals(t *testing.T) {
	stmts := parseAll(t, "(lambda (x . rest) x)")
	expr, _ := ast.AsExpression(stmts[0])
	proc, ok := expr.Data.(ast.ProcedureExpr)
	if !ok {
		t.Fatalf("expected a ProcedureExpr, got %T", expr.Data)
	}
	if len(proc.Procedure.Formals.Fixed) != 1 || proc.Procedure.Formals.Fixed[0] != "x" {
		t.Errorf("Fixed = %v, want [x]", proc.Procedure.Formals.Fixed)
	}
	if proc.Procedure.Formals.Variadic == nil || *proc.Procedure.Formals.Variadic != "rest" {
		t.Errorf("Variadic = %v, want rest", proc.Procedure.Formals.Variadic)
	}
}

func TestParseLambdaVariadicOnly(t *testing.T) {
	stmts := parseAll(t, "(lambda args args)")
	expr, _ := ast.AsExpression(stmts[0])
	proc := expr.Data.(ast.ProcedureExpr)
	if proc.Procedure.Formals.Variadic == nil || *proc.Procedure.Formals.Variadic != "args" {
		t.Errorf("Variadic = %v, want args", proc.Procedure.Formals.Variadic)
	}
	if len(proc.Procedure.Formals.Fixed) != 0 {
		t.Errorf("Fixed = %v, want empty", proc.Procedure.Formals.Fixed)
	}
}

func TestParseLambdaEmptyBodyFails(t *testing.T) {
	_, err := New(lexer.New("(lambda (x))")).ParseAll()
	if err == nil {
		t.Fatal("expected an error for a lambda with no body expression")
	}
}

func TestParseLambdaBodyMustEndWithExpression(t *testing.T) {
	_, err := New(lexer.New("(lambda (x) (define y 1))")).ParseAll()
	se, ok := err.(*goerrors.SchemeError)
	if !ok {
		t.Fatalf("error is %T, want *goerrors.SchemeError", err)
	}
	if se.Kind != goerrors.Syntax || se.Message != "no expression in procedure body" {
		t.Errorf("error = %v %q, want Syntax %q", se.Kind, se.Message, "no expression in procedure body")
	}
}

func TestParseLambdaDefinitionAfterExpressionFails(t *testing.T) {
	_, err := New(lexer.New("(lambda (x) x (define y 1))")).ParseAll()
	if err == nil {
		t.Fatal("expected an error when a definition follows an expression in a body")
	}
}

func TestParseDefineSimple(t *testing.T) {
	stmts := parseAll(t, "(define x 5)")
	def, ok := ast.AsDefinition(stmts[0])
	if !ok {
		t.Fatal("expected a definition statement")
	}
	if def.Data.Name != "x" {
		t.Errorf("Name = %q, want x", def.Data.Name)
	}
	if got, want := def.Data.Value.Data.String(), "5"; got != want {
		t.Errorf("Value = %q, want %q", got, want)
	}
}

func TestParseDefineProcedureShorthand(t *testing.T) {
	stmts := parseAll(t, "(define (add a b) (+ a b))")
	def, ok := ast.AsDefinition(stmts[0])
	if !ok {
		t.Fatal("expected a definition statement")
	}
	if def.Data.Name != "add" {
		t.Errorf("Name = %q, want add", def.Data.Name)
	}
	proc, ok := def.Data.Value.Data.(ast.ProcedureExpr)
	if !ok {
		t.Fatalf("expected a ProcedureExpr, got %T", def.Data.Value.Data)
	}
	if got, want := proc.Procedure.Formals.String(), "(a b)"; got != want {
		t.Errorf("Formals = %q, want %q", got, want)
	}
}

func TestParseDefineProcedureDottedTail(t *testing.T) {
	stmts := parseAll(t, "(define (f a . rest) a)")
	def, _ := ast.AsDefinition(stmts[0])
	proc := def.Data.Value.Data.(ast.ProcedureExpr)
	if len(proc.Procedure.Formals.Fixed) != 1 || proc.Procedure.Formals.Fixed[0] != "a" {
		t.Errorf("Fixed = %v, want [a]", proc.Procedure.Formals.Fixed)
	}
	if proc.Procedure.Formals.Variadic == nil || *proc.Procedure.Formals.Variadic != "rest" {
		t.Errorf("Variadic = %v, want rest", proc.Procedure.Formals.Variadic)
	}
}

func TestParseDefineShorthandVariadicOnly(t *testing.T) {
	stmts := parseAll(t, "(define (add . x) x)")
	def, ok := ast.AsDefinition(stmts[0])
	if !ok {
		t.Fatal("expected a definition statement")
	}
	if def.Data.Name != "add" {
		t.Errorf("Name = %q, want add", def.Data.Name)
	}
	proc, ok := def.Data.Value.Data.(ast.ProcedureExpr)
	if !ok {
		t.Fatalf("expected a ProcedureExpr, got %T", def.Data.Value.Data)
	}
	f := proc.Procedure.Formals
	if len(f.Fixed) != 0 || f.Variadic == nil || *f.Variadic != "x" {
		t.Errorf("Formals = %s, want x (variadic only)", f)
	}
	if len(proc.Procedure.Expressions) != 1 || proc.Procedure.Expressions[0].Data.String() != "x" {
		t.Errorf("body = %+v, want single expression x", proc.Procedure.Expressions)
	}
}

func TestParseDottedFormalsRequireFixedPrefix(t *testing.T) {
	if _, err := New(lexer.New("(lambda (. x) x)")).ParseAll(); err == nil {
		t.Fatal("expected an error for a dotted formals list with no fixed names")
	}
}

func TestParseImportOnlyAndRename(t *testing.T) {
	stmts := parseAll(t, "(import (only example-lib a b) (rename example-lib (old new)))")
	decl, ok := stmts[0].(*ast.ImportDeclaration)
	if !ok {
		t.Fatalf("expected *ast.ImportDeclaration, got %T", stmts[0])
	}
	if len(decl.Sets) != 2 {
		t.Fatalf("got %d import sets, want 2", len(decl.Sets))
	}
	only, ok := decl.Sets[0].Data.(ast.OnlyImport)
	if !ok {
		t.Fatalf("first set is %T, want OnlyImport", decl.Sets[0].Data)
	}
	if len(only.Names) != 2 || only.Names[0] != "a" || only.Names[1] != "b" {
		t.Errorf("Names = %v, want [a b]", only.Names)
	}
	rename, ok := decl.Sets[1].Data.(ast.RenameImport)
	if !ok {
		t.Fatalf("second set is %T, want RenameImport", decl.Sets[1].Data)
	}
	if len(rename.Renames) != 1 || rename.Renames[0].Old != "old" || rename.Renames[0].New != "new" {
		t.Errorf("Renames = %+v", rename.Renames)
	}
}

func TestParseImportExceptAndPrefix(t *testing.T) {
	stmts := parseAll(t, "(import (except example-lib a) (prefix example-lib my-))")
	decl := stmts[0].(*ast.ImportDeclaration)
	except, ok := decl.Sets[0].Data.(ast.ExceptImport)
	if !ok || len(except.Names) != 1 || except.Names[0] != "a" {
		t.Errorf("except set = %+v", decl.Sets[0].Data)
	}
	prefix, ok := decl.Sets[1].Data.(ast.PrefixImport)
	if !ok || prefix.Prefix != "my-" {
		t.Errorf("prefix set = %+v", decl.Sets[1].Data)
	}
}

func TestParseQuoteForms(t *testing.T) {
	stmts := parseAll(t, "'(1 2) '#(3 4) (quote foo)")
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}
	for i, stmt := range stmts {
		expr, ok := ast.AsExpression(stmt)
		if !ok {
			t.Fatalf("statement %d is not an expression", i)
		}
		if _, ok := expr.Data.(ast.QuoteExpr); !ok {
			t.Errorf("statement %d = %T, want QuoteExpr", i, expr.Data)
		}
	}
}

func TestParseQuoteAndVectorLiteralShapes(t *testing.T) {
	stmts := parseAll(t, "'1 'a '(1) #(1) '#(1)")
	if len(stmts) != 5 {
		t.Fatalf("got %d statements, want 5", len(stmts))
	}
	one := ast.NewExpression(ast.IntegerExpr{Value: 1})
	want := []ast.Expression{
		ast.NewExpression(ast.QuoteExpr{Datum: one}),
		ast.NewExpression(ast.QuoteExpr{Datum: ast.NewExpression(ast.IdentifierExpr{Name: "a"})}),
		ast.NewExpression(ast.QuoteExpr{Datum: ast.NewExpression(ast.ListExpr{Elements: []ast.Expression{one}})}),
		ast.NewExpression(ast.VectorExpr{Elements: []ast.Expression{one}}),
		ast.NewExpression(ast.QuoteExpr{Datum: ast.NewExpression(ast.VectorExpr{Elements: []ast.Expression{one}})}),
	}
	for i, stmt := range stmts {
		expr, ok := ast.AsExpression(stmt)
		if !ok {
			t.Fatalf("statement %d is not an expression", i)
		}
		if !ast.ExpressionsEqual(expr, want[i]) {
			t.Errorf("statement %d = %s, want %s", i, expr.Data, want[i].Data)
		}
	}
}

func TestParseStatementsIterator(t *testing.T) {
	p := New(lexer.New("1 2 3"))
	var got []string
	for stmt, err := range p.Statements() {
		if err != nil {
			t.Fatalf("Statements() error: %v", err)
		}
		expr, _ := ast.AsExpression(stmt)
		got = append(got, expr.Data.String())
	}
	if len(got) != 3 || got[0] != "1" || got[2] != "3" {
		t.Errorf("Statements() yielded %v, want [1 2 3]", got)
	}
}

func TestParseIfOneArmed(t *testing.T) {
	stmts := parseAll(t, "(if #t 1)")
	expr, _ := ast.AsExpression(stmts[0])
	cond, ok := expr.Data.(ast.ConditionalExpr)
	if !ok {
		t.Fatalf("expected a ConditionalExpr, got %T", expr.Data)
	}
	if cond.Alternative != nil {
		t.Error("expected no alternative branch")
	}
}

func TestParseIfTwoArmed(t *testing.T) {
	stmts := parseAll(t, "(if #t 1 2)")
	expr, _ := ast.AsExpression(stmts[0])
	cond, ok := expr.Data.(ast.ConditionalExpr)
	if !ok {
		t.Fatalf("expected a ConditionalExpr, got %T", expr.Data)
	}
	if cond.Alternative == nil {
		t.Fatal("expected an alternative branch")
	}
	if got, want := cond.Alternative.Data.String(), "2"; got != want {
		t.Errorf("Alternative = %q, want %q", got, want)
	}
}

func TestParseSetBang(t *testing.T) {
	stmts := parseAll(t, "(set! x 5)")
	expr, _ := ast.AsExpression(stmts[0])
	assign, ok := expr.Data.(ast.AssignmentExpr)
	if !ok {
		t.Fatalf("expected an AssignmentExpr, got %T", expr.Data)
	}
	if assign.Name != "x" {
		t.Errorf("Name = %q, want x", assign.Name)
	}
}

func TestParseEmptyProcedureCallFails(t *testing.T) {
	_, err := New(lexer.New("()")).ParseAll()
	se, ok := err.(*goerrors.SchemeError)
	if !ok {
		t.Fatalf("error is %T, want *goerrors.SchemeError", err)
	}
	if se.Kind != goerrors.Syntax || se.Message != "empty procedure call" {
		t.Errorf("error = %v %q, want Syntax %q", se.Kind, se.Message, "empty procedure call")
	}
}

func TestParseUnmatchedRightParen(t *testing.T) {
	_, err := New(lexer.New(")")).ParseAll()
	se, ok := err.(*goerrors.SchemeError)
	if !ok {
		t.Fatalf("error is %T, want *goerrors.SchemeError", err)
	}
	if se.Message != "Unmatched Parentheses!" {
		t.Errorf("Message = %q, want %q", se.Message, "Unmatched Parentheses!")
	}
}
