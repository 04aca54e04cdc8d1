package parser

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDump(t *testing.T) {
	program := parseNoErrors(t, `let x = -5; "10"`)

	out, err := Dump(program)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.HasPrefix(string(out), "kind: Program\n") {
		t.Errorf("dump does not start with the root kind:\n%s", out)
	}

	var doc struct {
		Kind       string `yaml:"kind"`
		Statements []struct {
			Kind   string `yaml:"kind"`
			Line   int    `yaml:"line"`
			Column int    `yaml:"column"`
			Name   string `yaml:"name"`
			Value  struct {
				Kind     string `yaml:"kind"`
				Operator string `yaml:"operator"`
				Right    struct {
					Kind  string `yaml:"kind"`
					Value int64  `yaml:"value"`
				} `yaml:"right"`
			} `yaml:"value"`
			Expression struct {
				Kind  string `yaml:"kind"`
				Value string `yaml:"value"`
			} `yaml:"expression"`
		} `yaml:"statements"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("dump is not valid YAML: %v\n%s", err, out)
	}

	if doc.Kind != "Program" || len(doc.Statements) != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	let := doc.Statements[0]
	if let.Kind != "LetStatement" || let.Name != "x" || let.Line != 1 || let.Column != 1 {
		t.Errorf("let statement dumped as %+v", let)
	}
	if let.Value.Kind != "PrefixExpression" || let.Value.Operator != "-" || let.Value.Right.Value != 5 {
		t.Errorf("let value dumped as %+v", let.Value)
	}
	// "10" must stay a string, not turn into an integer.
	str := doc.Statements[1].Expression
	if str.Kind != "StringLiteral" || str.Value != "10" {
		t.Errorf("string literal dumped as %+v", str)
	}
}

func TestDumpKeepsHashOrder(t *testing.T) {
	program := parseNoErrors(t, `{"b": 1, "a": 2, "b": 3}`)

	out, err := Dump(program.Statements[0])
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}

	var doc struct {
		Expression struct {
			Pairs []struct {
				Key struct {
					Value string `yaml:"value"`
				} `yaml:"key"`
			} `yaml:"pairs"`
		} `yaml:"expression"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("dump is not valid YAML: %v\n%s", err, out)
	}

	var keys []string
	for _, p := range doc.Expression.Pairs {
		keys = append(keys, p.Key.Value)
	}
	if strings.Join(keys, ",") != "b,a,b" {
		t.Errorf("pair order = %v", keys)
	}
}

func TestDumpFunctionLiteral(t *testing.T) {
	program := parseNoErrors(t, "fn(x, y) { if (x) { y } }")

	out, err := Dump(program)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	s := string(out)
	for _, want := range []string{"kind: FunctionLiteral", "parameters: [x, y]", "kind: IfExpression", "kind: BlockStatement"} {
		if !strings.Contains(s, want) {
			t.Errorf("dump missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "alternative") {
		t.Errorf("dump has an alternative for an if without else:\n%s", s)
	}
}
