package parser

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"cipher/pkg/lexer"
)

// Dump renders the tree rooted at node as a YAML document. Every node
// becomes a mapping whose first key is its kind; children keep source order.
func Dump(node Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(dumpNode(node)); err != nil {
		return nil, fmt.Errorf("dump AST: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("dump AST: %w", err)
	}
	return buf.Bytes(), nil
}

func dumpNode(node Node) *yaml.Node {
	switch n := node.(type) {
	case nil:
		return nullScalar()
	case *Program:
		m := newMapping("Program", lexer.Token{})
		m.add("statements", dumpStatements(n.Statements))
		return m.Node
	case *LetStatement:
		m := newMapping("LetStatement", n.Token)
		m.add("name", strScalar(n.Name.Value))
		m.add("value", dumpExpression(n.Value))
		return m.Node
	case *ReturnStatement:
		m := newMapping("ReturnStatement", n.Token)
		m.add("value", dumpExpression(n.ReturnValue))
		return m.Node
	case *ExpressionStatement:
		m := newMapping("ExpressionStatement", n.Token)
		m.add("expression", dumpExpression(n.Expression))
		return m.Node
	case *BlockStatement:
		return dumpBlock(n)
	case *Identifier:
		m := newMapping("Identifier", n.Token)
		m.add("value", strScalar(n.Value))
		return m.Node
	case *IntegerLiteral:
		m := newMapping("IntegerLiteral", n.Token)
		m.add("value", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(n.Value, 10)})
		return m.Node
	case *StringLiteral:
		m := newMapping("StringLiteral", n.Token)
		m.add("value", strScalar(n.Value))
		return m.Node
	case *Boolean:
		m := newMapping("Boolean", n.Token)
		m.add("value", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(n.Value)})
		return m.Node
	case *PrefixExpression:
		m := newMapping("PrefixExpression", n.Token)
		m.add("operator", strScalar(n.Operator))
		m.add("right", dumpExpression(n.Right))
		return m.Node
	case *InfixExpression:
		m := newMapping("InfixExpression", n.Token)
		m.add("operator", strScalar(n.Operator))
		m.add("left", dumpExpression(n.Left))
		m.add("right", dumpExpression(n.Right))
		return m.Node
	case *IfExpression:
		m := newMapping("IfExpression", n.Token)
		m.add("condition", dumpExpression(n.Condition))
		m.add("consequence", dumpBlock(n.Consequence))
		if n.Alternative != nil {
			m.add("alternative", dumpBlock(n.Alternative))
		}
		return m.Node
	case *FunctionLiteral:
		m := newMapping("FunctionLiteral", n.Token)
		params := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, p := range n.Parameters {
			params.Content = append(params.Content, strScalar(p.Value))
		}
		m.add("parameters", params)
		m.add("body", dumpBlock(n.Body))
		return m.Node
	case *CallExpression:
		m := newMapping("CallExpression", n.Token)
		m.add("function", dumpExpression(n.Function))
		m.add("arguments", dumpExpressions(n.Arguments))
		return m.Node
	case *ArrayLiteral:
		m := newMapping("ArrayLiteral", n.Token)
		m.add("elements", dumpExpressions(n.Elements))
		return m.Node
	case *IndexExpression:
		m := newMapping("IndexExpression", n.Token)
		m.add("left", dumpExpression(n.Left))
		m.add("index", dumpExpression(n.Index))
		return m.Node
	case *HashLiteral:
		m := newMapping("HashLiteral", n.Token)
		pairs := &yaml.Node{Kind: yaml.SequenceNode}
		for _, pair := range n.Pairs {
			pm := mapping{&yaml.Node{Kind: yaml.MappingNode}}
			pm.add("key", dumpExpression(pair.Key))
			pm.add("value", dumpExpression(pair.Value))
			pairs.Content = append(pairs.Content, pm.Node)
		}
		m.add("pairs", pairs)
		return m.Node
	}
	return strScalar(fmt.Sprintf("<unknown %T>", node))
}

func dumpExpression(e Expression) *yaml.Node {
	if e == nil {
		return nullScalar()
	}
	return dumpNode(e)
}

func dumpBlock(b *BlockStatement) *yaml.Node {
	if b == nil {
		return nullScalar()
	}
	m := newMapping("BlockStatement", b.Token)
	m.add("statements", dumpStatements(b.Statements))
	return m.Node
}

func dumpStatements(stmts []Statement) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, s := range stmts {
		seq.Content = append(seq.Content, dumpNode(s))
	}
	return seq
}

func dumpExpressions(exprs []Expression) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, e := range exprs {
		seq.Content = append(seq.Content, dumpExpression(e))
	}
	return seq
}

// mapping wraps a yaml.MappingNode so keys can be appended in order.
type mapping struct {
	*yaml.Node
}

func newMapping(kind string, tok lexer.Token) mapping {
	m := mapping{&yaml.Node{Kind: yaml.MappingNode}}
	m.add("kind", strScalar(kind))
	if tok.Line > 0 {
		m.add("line", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(tok.Line)})
		m.add("column", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(tok.Column)})
	}
	return m
}

func (m mapping) add(key string, value *yaml.Node) {
	m.Content = append(m.Content, strScalar(key), value)
}

func strScalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func nullScalar() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
