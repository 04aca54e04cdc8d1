package lexer

import (
	"reflect"
	"testing"

	"cipher/pkg/source"
)

func TestNextToken(t *testing.T) {
	input := `let five = 5;
let ten = 10;

let add = fn(x, y) {
  x + y;
};

let result = add(five, ten);
!-/*5;
5 < 10 > 5;

if (5 < 10) {
	return true;
} else {
	return false;
}

10 == 10;
10 != 9;
"foobar"
"foo bar"
[1, 2];
{"foo": "bar"}
const xs = ys |> map;
for while in`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
		expectedLine    int
	}{
		{LET, "let", 1},
		{IDENT, "five", 1},
		{ASSIGN, "=", 1},
		{INT, "5", 1},
		{SEMICOLON, ";", 1},
		{LET, "let", 2},
		{IDENT, "ten", 2},
		{ASSIGN, "=", 2},
		{INT, "10", 2},
		{SEMICOLON, ";", 2},
		{LET, "let", 4},
		{IDENT, "add", 4},
		{ASSIGN, "=", 4},
		{FUNCTION, "fn", 4},
		{LPAREN, "(", 4},
		{IDENT, "x", 4},
		{COMMA, ",", 4},
		{IDENT, "y", 4},
		{RPAREN, ")", 4},
		{LBRACE, "{", 4},
		{IDENT, "x", 5},
		{PLUS, "+", 5},
		{IDENT, "y", 5},
		{SEMICOLON, ";", 5},
		{RBRACE, "}", 6},
		{SEMICOLON, ";", 6},
		{LET, "let", 8},
		{IDENT, "result", 8},
		{ASSIGN, "=", 8},
		{IDENT, "add", 8},
		{LPAREN, "(", 8},
		{IDENT, "five", 8},
		{COMMA, ",", 8},
		{IDENT, "ten", 8},
		{RPAREN, ")", 8},
		{SEMICOLON, ";", 8},
		{BANG, "!", 9},
		{MINUS, "-", 9},
		{SLASH, "/", 9},
		{ASTERISK, "*", 9},
		{INT, "5", 9},
		{SEMICOLON, ";", 9},
		{INT, "5", 10},
		{LT, "<", 10},
		{INT, "10", 10},
		{GT, ">", 10},
		{INT, "5", 10},
		{SEMICOLON, ";", 10},
		{IF, "if", 12},
		{LPAREN, "(", 12},
		{INT, "5", 12},
		{LT, "<", 12},
		{INT, "10", 12},
		{RPAREN, ")", 12},
		{LBRACE, "{", 12},
		{RETURN, "return", 13},
		{TRUE, "true", 13},
		{SEMICOLON, ";", 13},
		{RBRACE, "}", 14},
		{ELSE, "else", 14},
		{LBRACE, "{", 14},
		{RETURN, "return", 15},
		{FALSE, "false", 15},
		{SEMICOLON, ";", 15},
		{RBRACE, "}", 16},
		{INT, "10", 18},
		{EQ, "==", 18},
		{INT, "10", 18},
		{SEMICOLON, ";", 18},
		{INT, "10", 19},
		{NOT_EQ, "!=", 19},
		{INT, "9", 19},
		{SEMICOLON, ";", 19},
		{STRING, "foobar", 20},
		{STRING, "foo bar", 21},
		{LBRACKET, "[", 22},
		{INT, "1", 22},
		{COMMA, ",", 22},
		{INT, "2", 22},
		{RBRACKET, "]", 22},
		{SEMICOLON, ";", 22},
		{LBRACE, "{", 23},
		{STRING, "foo", 23},
		{COLON, ":", 23},
		{STRING, "bar", 23},
		{RBRACE, "}", 23},
		{CONST, "const", 24},
		{IDENT, "xs", 24},
		{ASSIGN, "=", 24},
		{IDENT, "ys", 24},
		{PIPE, "|>", 24},
		{IDENT, "map", 24},
		{SEMICOLON, ";", 24},
		{FOR, "for", 25},
		{WHILE, "while", 25},
		{IN, "in", 25},
		{EOF, "", 25},
	}

	l := NewLexer(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal: %q, line: %d)",
				i, tt.expectedType, tok.Type, tok.Literal, tok.Line)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q (type: %q, line: %d)",
				i, tt.expectedLiteral, tok.Literal, tok.Type, tok.Line)
		}

		if tok.Line != tt.expectedLine {
			t.Errorf("tests[%d] - line wrong. expected=%d, got=%d (type: %q, literal: %q)",
				i, tt.expectedLine, tok.Line, tok.Type, tok.Literal)
		}
	}
}

func TestSingleCharacterTokens(t *testing.T) {
	input := "=+(){},;"
	expected := []TokenType{ASSIGN, PLUS, LPAREN, RPAREN, LBRACE, RBRACE, COMMA, SEMICOLON, EOF}

	toks := Tokenize(input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, tok := range toks {
		if tok.Type != expected[i] {
			t.Errorf("tokens[%d] - expected=%q, got=%q", i, expected[i], tok.Type)
		}
		if tok.Type != EOF && tok.Literal != string(input[i]) {
			t.Errorf("tokens[%d] - literal expected=%q, got=%q", i, string(input[i]), tok.Literal)
		}
	}

	for _, ch := range "=+-!*/<>{}()[],;:" {
		tok := NewLexer(string(ch)).NextToken()
		if tok.Literal != string(ch) {
			t.Errorf("%q: literal = %q", ch, tok.Literal)
		}
		if tok.Type == ILLEGAL {
			t.Errorf("%q: lexed as ILLEGAL", ch)
		}
	}
}

func TestTokenizeSource(t *testing.T) {
	input := "let x = 5;\nx >= 1"
	src := source.NewSourceFile("main.cph", "/tmp/main.cph", input)

	toks := TokenizeSource(src)
	if !reflect.DeepEqual(toks, Tokenize(input)) {
		t.Fatalf("TokenizeSource and Tokenize disagree:\n%v\n%v", toks, Tokenize(input))
	}
	if last := toks[len(toks)-1]; last.Type != EOF {
		t.Errorf("last token = %q, want EOF", last.Type)
	}
	pipe := toks[6]
	if pipe.Type != PIPE || pipe.Line != 2 || pipe.Column != 3 {
		t.Errorf("tokens[6] = %+v, want |> at 2:3", pipe)
	}
}

func TestSpecificOperatorLexing(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
		literals []string
	}{
		{"==", []TokenType{EQ, EOF}, []string{"==", ""}},
		{"!=", []TokenType{NOT_EQ, EOF}, []string{"!=", ""}},
		{"|>", []TokenType{PIPE, EOF}, []string{"|>", ""}},
		{"= =", []TokenType{ASSIGN, ASSIGN, EOF}, []string{"=", "=", ""}},
		{"!x", []TokenType{BANG, IDENT, EOF}, []string{"!", "x", ""}},
		{"=!", []TokenType{ASSIGN, BANG, EOF}, []string{"=", "!", ""}},
		{"|x", []TokenType{ILLEGAL, IDENT, EOF}, []string{"|", "x", ""}},
		{"|", []TokenType{ILLEGAL, EOF}, []string{"|", ""}},
		{"| >", []TokenType{ILLEGAL, GT, EOF}, []string{"|", ">", ""}},
		{"===", []TokenType{EQ, ASSIGN, EOF}, []string{"==", "=", ""}},
		// ">=" has no token of its own and comes out as a pipe.
		{">=", []TokenType{PIPE, EOF}, []string{"|>", ""}},
		{"1 >= 1", []TokenType{INT, PIPE, INT, EOF}, []string{"1", "|>", "1", ""}},
		{"> =", []TokenType{GT, ASSIGN, EOF}, []string{">", "=", ""}},
	}

	for _, tt := range tests {
		toks := Tokenize(tt.input)
		if len(toks) != len(tt.expected) {
			t.Errorf("%q: expected %d tokens, got %d (%v)", tt.input, len(tt.expected), len(toks), toks)
			continue
		}
		for i, tok := range toks {
			if tok.Type != tt.expected[i] {
				t.Errorf("%q: tokens[%d] type expected=%q, got=%q", tt.input, i, tt.expected[i], tok.Type)
			}
			if tok.Literal != tt.literals[i] {
				t.Errorf("%q: tokens[%d] literal expected=%q, got=%q", tt.input, i, tt.literals[i], tok.Literal)
			}
		}
	}
}

func TestKeywords(t *testing.T) {
	tests := map[string]TokenType{
		"fn":     FUNCTION,
		"let":    LET,
		"const":  CONST,
		"true":   TRUE,
		"false":  FALSE,
		"if":     IF,
		"else":   ELSE,
		"return": RETURN,
		"for":    FOR,
		"while":  WHILE,
		"in":     IN,
		"foobar": IDENT,
		"Let":    IDENT,
		"func":   IDENT,
		"_":      IDENT,
		"iff":    IDENT,
	}

	for input, expected := range tests {
		tok := NewLexer(input).NextToken()
		if tok.Type != expected {
			t.Errorf("%q: expected=%q, got=%q", input, expected, tok.Type)
		}
		if tok.Literal != input {
			t.Errorf("%q: literal = %q", input, tok.Literal)
		}
		if IsKeyword(expected) != (expected != IDENT) {
			t.Errorf("IsKeyword(%q) wrong", expected)
		}
	}
}

func TestIdentifiersStopAtDigits(t *testing.T) {
	toks := Tokenize("foo1 _bar_ 42abc")
	expected := []struct {
		typ TokenType
		lit string
	}{
		{IDENT, "foo"},
		{INT, "1"},
		{IDENT, "_bar_"},
		{INT, "42"},
		{IDENT, "abc"},
		{EOF, ""},
	}
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, e := range expected {
		if toks[i].Type != e.typ || toks[i].Literal != e.lit {
			t.Errorf("tokens[%d] = %s %q, want %s %q", i, toks[i].Type, toks[i].Literal, e.typ, e.lit)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected []Token
	}{
		{`"hello"`, []Token{{Type: STRING, Literal: "hello"}, {Type: EOF}}},
		{`""`, []Token{{Type: STRING, Literal: ""}, {Type: EOF}}},
		{`"a" "b"`, []Token{{Type: STRING, Literal: "a"}, {Type: STRING, Literal: "b"}, {Type: EOF}}},
		// No closing quote: the literal runs to end of input, no error.
		{`"unterminated`, []Token{{Type: STRING, Literal: "unterminated"}, {Type: EOF}}},
		{`"`, []Token{{Type: STRING, Literal: ""}, {Type: EOF}}},
		{`x = "a b;`, []Token{{Type: IDENT, Literal: "x"}, {Type: ASSIGN, Literal: "="}, {Type: STRING, Literal: "a b;"}, {Type: EOF}}},
	}

	for _, tt := range tests {
		toks := Tokenize(tt.input)
		if len(toks) != len(tt.expected) {
			t.Errorf("%q: expected %d tokens, got %d", tt.input, len(tt.expected), len(toks))
			continue
		}
		for i, e := range tt.expected {
			if toks[i].Type != e.Type || toks[i].Literal != e.Literal {
				t.Errorf("%q: tokens[%d] = %s %q, want %s %q", tt.input, i, toks[i].Type, toks[i].Literal, e.Type, e.Literal)
			}
		}
	}
}

func TestIllegalCharacters(t *testing.T) {
	toks := Tokenize("a @ é # \x00")
	expected := []struct {
		typ TokenType
		lit string
	}{
		{IDENT, "a"},
		{ILLEGAL, "@"},
		{ILLEGAL, "é"},
		{ILLEGAL, "#"},
		{ILLEGAL, "\x00"},
		{EOF, ""},
	}
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d (%v)", len(expected), len(toks), toks)
	}
	for i, e := range expected {
		if toks[i].Type != e.typ || toks[i].Literal != e.lit {
			t.Errorf("tokens[%d] = %s %q, want %s %q", i, toks[i].Type, toks[i].Literal, e.typ, e.lit)
		}
	}
}

func TestWhitespaceClass(t *testing.T) {
	input := "a\t\v\f\r\n \u00a0\u2028\u3000\ufeff b"
	toks := Tokenize(input)
	if len(toks) != 3 || toks[0].Literal != "a" || toks[1].Literal != "b" || toks[2].Type != EOF {
		t.Fatalf("unexpected tokens: %v", toks)
	}

	// U+0085 (NEL) is not whitespace in the language.
	toks = Tokenize("a\u0085b")
	if len(toks) != 4 || toks[1].Type != ILLEGAL || toks[1].Literal != "\u0085" {
		t.Fatalf("expected NEL to be ILLEGAL, got %v", toks)
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := NewLexer("x")
	if tok := l.NextToken(); tok.Type != IDENT {
		t.Fatalf("expected IDENT, got %q", tok.Type)
	}
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != EOF || tok.Literal != "" {
			t.Fatalf("call %d: expected EOF, got %q %q", i, tok.Type, tok.Literal)
		}
	}

	if tok := NewLexer("").NextToken(); tok.Type != EOF {
		t.Errorf("empty input: expected EOF, got %q", tok.Type)
	}
	if tok := NewLexer(" \n\t ").NextToken(); tok.Type != EOF {
		t.Errorf("blank input: expected EOF, got %q", tok.Type)
	}
}

func TestTokenPositions(t *testing.T) {
	toks := Tokenize("let x = 10;\n  \"hi\" == y")
	expected := []struct {
		lit                      string
		line, col, start, endPos int
	}{
		{"let", 1, 1, 0, 3},
		{"x", 1, 5, 4, 5},
		{"=", 1, 7, 6, 7},
		{"10", 1, 9, 8, 10},
		{";", 1, 11, 10, 11},
		{"hi", 2, 3, 14, 18},
		{"==", 2, 8, 19, 21},
		{"y", 2, 11, 22, 23},
		{"", 2, 12, 23, 23},
	}
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, e := range expected {
		tok := toks[i]
		if tok.Literal != e.lit || tok.Line != e.line || tok.Column != e.col || tok.StartPos != e.start || tok.EndPos != e.endPos {
			t.Errorf("tokens[%d] = %q %d:%d [%d,%d), want %q %d:%d [%d,%d)",
				i, tok.Literal, tok.Line, tok.Column, tok.StartPos, tok.EndPos,
				e.lit, e.line, e.col, e.start, e.endPos)
		}
	}
}
