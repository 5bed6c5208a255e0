package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/plox/internal/ast"
	"github.com/sdecook/plox/internal/lexer"
	"github.com/sdecook/plox/internal/parser"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks := lexer.New(src).Scan()
	p := parser.New(toks)
	stmts := p.Parse()
	require.Empty(t, p.Errors(), "unexpected parse errors: %v", p.Errors())
	return stmts
}

func TestParseVarDecl(t *testing.T) {
	stmts := parse(t, `var a = 1;`)
	require.Len(t, stmts, 1)
	vd, ok := stmts[0].(*ast.VarStmt)
	require.True(t, ok)
	assert.Equal(t, "a", vd.Name.Lexeme)
	lit := vd.Initializer.(*ast.Literal)
	assert.Equal(t, int64(1), lit.Value.Int)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := parse(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.Len(t, stmts, 1)
	block, ok := stmts[0].(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)
	_, isVar := block.Statements[0].(*ast.VarStmt)
	assert.True(t, isVar)
	whileStmt, ok := block.Statements[1].(*ast.WhileStmt)
	require.True(t, ok)
	whileBody, ok := whileStmt.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, whileBody.Statements, 2)
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	stmts := parse(t, `class B < A { greet() { return 1; } }`)
	require.Len(t, stmts, 1)
	cd, ok := stmts[0].(*ast.ClassStmt)
	require.True(t, ok)
	assert.Equal(t, "B", cd.Name.Lexeme)
	require.NotNil(t, cd.Superclass)
	assert.Equal(t, "A", cd.Superclass.Name.Lexeme)
	require.Len(t, cd.Methods, 1)
	assert.Equal(t, "greet", cd.Methods[0].Name.Lexeme)
}

func TestParseAssignmentTargetGetBecomesSet(t *testing.T) {
	stmts := parse(t, `a.b = 1;`)
	es := stmts[0].(*ast.ExpressionStmt)
	set, ok := es.Expr.(*ast.Set)
	require.True(t, ok)
	assert.Equal(t, "b", set.Name.Lexeme)
}

func TestParseInvalidAssignmentTargetReportsButContinues(t *testing.T) {
	toks := lexer.New(`1 = 2; print "still here";`).Scan()
	p := parser.New(toks)
	stmts := p.Parse()
	require.Len(t, p.Errors(), 1)
	assert.Contains(t, p.Errors()[0].Message, "Invalid assignment target")
	// parsing continued past the bad statement
	require.Len(t, stmts, 2)
}

func TestParseDanglingElseBindsToNearestIf(t *testing.T) {
	stmts := parse(t, `if (true) if (false) print 1; else print 2;`)
	outer := stmts[0].(*ast.IfStmt)
	inner, ok := outer.Then.(*ast.IfStmt)
	require.True(t, ok)
	assert.NotNil(t, inner.Else)
	assert.Nil(t, outer.Else)
}

func TestParseMissingSemicolonSynchronizes(t *testing.T) {
	toks := lexer.New("var a = 1 print a; var b = 2;").Scan()
	p := parser.New(toks)
	stmts := p.Parse()
	require.Len(t, p.Errors(), 1)
	// synchronize discards the broken declaration and resumes parsing at
	// the next statement boundary (the following 'var').
	require.Len(t, stmts, 1)
	vd, ok := stmts[0].(*ast.VarStmt)
	require.True(t, ok)
	assert.Equal(t, "b", vd.Name.Lexeme)
}

func TestParseTooManyParamsReportsError(t *testing.T) {
	params := ""
	for i := 0; i < 256; i++ {
		if i > 0 {
			params += ", "
		}
		params += "p"
	}
	toks := lexer.New("fun f(" + params + ") {}").Scan()
	p := parser.New(toks)
	p.Parse()
	require.NotEmpty(t, p.Errors())
	assert.Contains(t, p.Errors()[0].Message, "255 parameters")
}

func TestParseSuperCall(t *testing.T) {
	stmts := parse(t, `class B < A { m() { super.m(); } }`)
	cd := stmts[0].(*ast.ClassStmt)
	body := cd.Methods[0].Body
	es := body[0].(*ast.ExpressionStmt)
	call := es.Expr.(*ast.Call)
	superExpr, ok := call.Callee.(*ast.Super)
	require.True(t, ok)
	assert.Equal(t, "m", superExpr.Method.Lexeme)
}
