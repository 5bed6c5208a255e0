package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a parenthesized, Lisp-like view of a program, used by the
// `plox ast` subcommand for debugging. It has no bearing on evaluation.
func Print(stmts []Stmt) string {
	var sb strings.Builder
	for _, s := range stmts {
		sb.WriteString(PrintStmtNode(s))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// PrintExpr renders a single expression tree.
func PrintExpr(e Expr) string {
	switch e := e.(type) {
	case *Literal:
		return e.Value.String()
	case *Grouping:
		return parenthesize("group", e.Inner)
	case *Unary:
		return parenthesize(e.Op.Lexeme, e.Operand)
	case *Binary:
		return parenthesize(e.Op.Lexeme, e.Left, e.Right)
	case *Logical:
		return parenthesize(e.Op.Lexeme, e.Left, e.Right)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Call:
		args := append([]Expr{e.Callee}, e.Args...)
		return parenthesize("call", args...)
	case *Get:
		return parenthesize("get "+e.Name.Lexeme, e.Object)
	case *Set:
		return parenthesize("set "+e.Name.Lexeme, e.Object, e.Value)
	case *This:
		return "this"
	case *Super:
		return "(super " + e.Method.Lexeme + ")"
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

// PrintStmtNode renders a single statement tree.
func PrintStmtNode(s Stmt) string {
	switch s := s.(type) {
	case *ExpressionStmt:
		return PrintExpr(s.Expr) + ";"
	case *PrintStmt:
		return "(print " + PrintExpr(s.Expr) + ")"
	case *VarStmt:
		if s.Initializer == nil {
			return "(var " + s.Name.Lexeme + ")"
		}
		return "(var " + s.Name.Lexeme + " " + PrintExpr(s.Initializer) + ")"
	case *BlockStmt:
		var sb strings.Builder
		sb.WriteString("(block")
		for _, inner := range s.Statements {
			sb.WriteString(" " + PrintStmtNode(inner))
		}
		sb.WriteByte(')')
		return sb.String()
	case *IfStmt:
		if s.Else == nil {
			return fmt.Sprintf("(if %s %s)", PrintExpr(s.Condition), PrintStmtNode(s.Then))
		}
		return fmt.Sprintf("(if %s %s %s)", PrintExpr(s.Condition), PrintStmtNode(s.Then), PrintStmtNode(s.Else))
	case *WhileStmt:
		return fmt.Sprintf("(while %s %s)", PrintExpr(s.Condition), PrintStmtNode(s.Body))
	case *FunctionStmt:
		names := make([]string, len(s.Params))
		for i, p := range s.Params {
			names[i] = p.Lexeme
		}
		return fmt.Sprintf("(fun %s(%s))", s.Name.Lexeme, strings.Join(names, " "))
	case *ReturnStmt:
		if s.Value == nil {
			return "(return)"
		}
		return "(return " + PrintExpr(s.Value) + ")"
	case *ClassStmt:
		var sb strings.Builder
		sb.WriteString("(class " + s.Name.Lexeme)
		if s.Superclass != nil {
			sb.WriteString(" < " + s.Superclass.Name.Lexeme)
		}
		for _, m := range s.Methods {
			sb.WriteString(" " + PrintStmtNode(m))
		}
		sb.WriteByte(')')
		return sb.String()
	default:
		return fmt.Sprintf("<unknown stmt %T>", s)
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteByte(' ')
		sb.WriteString(PrintExpr(e))
	}
	sb.WriteByte(')')
	return sb.String()
}

func (v LiteralValue) String() string {
	switch v.Kind {
	case LiteralNil:
		return "nil"
	case LiteralBool:
		return strconv.FormatBool(v.Bool)
	case LiteralInt:
		return strconv.FormatInt(v.Int, 10)
	case LiteralFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case LiteralString:
		return v.Str
	default:
		return "?"
	}
}
