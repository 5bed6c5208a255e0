package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sdecook/plox/internal/ast"
	"github.com/sdecook/plox/internal/token"
)

func TestPrintBinaryExpression(t *testing.T) {
	expr := &ast.Binary{
		Left:  &ast.Literal{Value: ast.LiteralValue{Kind: ast.LiteralInt, Int: 1}},
		Op:    token.Token{Type: token.Plus, Lexeme: "+"},
		Right: &ast.Literal{Value: ast.LiteralValue{Kind: ast.LiteralInt, Int: 2}},
	}
	assert.Equal(t, "(+ 1 2)", ast.PrintExpr(expr))
}

func TestPrintVarDeclWithoutInitializer(t *testing.T) {
	stmt := &ast.VarStmt{Name: token.Token{Lexeme: "a"}}
	assert.Equal(t, "(var a)", ast.PrintStmtNode(stmt))
}

func TestPrintClassWithSuperclassAndMethods(t *testing.T) {
	class := &ast.ClassStmt{
		Name:       token.Token{Lexeme: "B"},
		Superclass: &ast.Variable{Name: token.Token{Lexeme: "A"}},
		Methods: []*ast.FunctionStmt{
			{Name: token.Token{Lexeme: "greet"}, Body: nil},
		},
	}
	assert.Equal(t, "(class B < A (fun greet()))", ast.PrintStmtNode(class))
}

func TestLiteralValueStringDistinguishesFalseFromNil(t *testing.T) {
	assert.Equal(t, "false", ast.LiteralValue{Kind: ast.LiteralBool, Bool: false}.String())
	assert.Equal(t, "nil", ast.LiteralValue{Kind: ast.LiteralNil}.String())
}
