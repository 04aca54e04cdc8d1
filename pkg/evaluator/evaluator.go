// Package evaluator walks a parsed program and produces object values.
// Only integer literals are evaluated so far; every other node yields nil.
package evaluator

import (
	"cipher/pkg/object"
	"cipher/pkg/parser"
)

// Eval evaluates node. A nil result means the node kind is not evaluated.
func Eval(node parser.Node) object.Object {
	switch node := node.(type) {
	case *parser.Program:
		return evalProgram(node)
	case *parser.ExpressionStatement:
		if node.Expression == nil {
			return nil
		}
		return Eval(node.Expression)
	case *parser.IntegerLiteral:
		return &object.Integer{Value: node.Value}
	}
	return nil
}

// evalProgram returns the value of the last statement.
func evalProgram(program *parser.Program) object.Object {
	var result object.Object
	for _, stmt := range program.Statements {
		result = Eval(stmt)
	}
	return result
}
