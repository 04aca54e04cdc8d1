package parser

import (
	"fmt"
	"log/slog"
	"strconv"

	"cipher/pkg/errors"
	"cipher/pkg/lexer"
	"cipher/pkg/source"
)

// Parser takes a lexer and builds an AST.
type Parser struct {
	l      *lexer.Lexer
	source *source.SourceFile // cached from lexer
	errors []*errors.SyntaxError
	logger *slog.Logger // nil disables tracing

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
	precedences    map[lexer.TokenType]int
}

// Parsing functions types for Pratt parser. A nil Expression means the
// function failed and has already recorded a diagnostic.
type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression // Arg is the left side expression
)

// Precedence levels, lowest first. Tokens missing from the precedence
// table rank as LOWEST.
const (
	LOWEST      int = iota
	EQUALS          // ==, !=
	LESSGREATER     // > or <
	SUM             // + or -
	PRODUCT         // * or /
	PREFIX          // -X or !X
	CALL            // myFunction(X)
	INDEX           // array[index]
)

// precedences deliberately has no entry for '(' or '['. Their infix
// functions are registered, but the loop in parseExpression only reaches
// them when WithCallPrecedence is set.
var precedences = map[lexer.TokenType]int{
	lexer.EQ:       EQUALS,
	lexer.NOT_EQ:   EQUALS,
	lexer.LT:       LESSGREATER,
	lexer.GT:       LESSGREATER,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.SLASH:    PRODUCT,
	lexer.ASTERISK: PRODUCT,
}

// Option configures a Parser.
type Option func(*Parser)

// WithCallPrecedence ranks '(' as CALL and '[' as INDEX so call and index
// expressions are parsed. Off by default.
func WithCallPrecedence() Option {
	return func(p *Parser) {
		p.precedences[lexer.LPAREN] = CALL
		p.precedences[lexer.LBRACKET] = INDEX
	}
}

// WithLogger traces parser decisions at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a new Parser. The parser owns l from here on.
func NewParser(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		l:      l,
		source: l.Source(),
		errors: []*errors.SyntaxError{},
	}

	p.precedences = make(map[lexer.TokenType]int, len(precedences)+2)
	for tok, prec := range precedences {
		p.precedences[tok] = prec
	}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseIntegerLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolean)
	p.registerPrefix(lexer.FALSE, p.parseBoolean)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpression)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(lexer.IF, p.parseIfExpression)
	p.registerPrefix(lexer.FUNCTION, p.parseFunctionLiteral)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(lexer.LBRACE, p.parseHashLiteral)

	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	p.registerInfix(lexer.PLUS, p.parseInfixExpression)
	p.registerInfix(lexer.MINUS, p.parseInfixExpression)
	p.registerInfix(lexer.SLASH, p.parseInfixExpression)
	p.registerInfix(lexer.ASTERISK, p.parseInfixExpression)
	p.registerInfix(lexer.EQ, p.parseInfixExpression)
	p.registerInfix(lexer.NOT_EQ, p.parseInfixExpression)
	p.registerInfix(lexer.LT, p.parseInfixExpression)
	p.registerInfix(lexer.GT, p.parseInfixExpression)
	p.registerInfix(lexer.LPAREN, p.parseCallExpression)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpression)

	for _, opt := range opts {
		opt(p)
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// ParseString parses input with a fresh lexer and parser.
func ParseString(input string, opts ...Option) (*Program, []string) {
	p := NewParser(lexer.NewLexer(input), opts...)
	program := p.ParseProgram()
	return program, p.Errors()
}

// Errors returns the diagnostics recorded so far, in order.
func (p *Parser) Errors() []string {
	return errors.Messages(p.errors)
}

// Diagnostics returns the recorded diagnostics with their source positions.
func (p *Parser) Diagnostics() []*errors.SyntaxError {
	return p.errors
}

func (p *Parser) trace(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

// nextToken advances the current and peek tokens.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// ParseProgram parses statements until EOF. A statement that fails to parse
// is dropped and parsing resumes at the next token.
func (p *Parser) ParseProgram() *Program {
	program := &Program{Statements: []Statement{}}

	for p.curToken.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

func (p *Parser) parseStatement() Statement {
	p.trace("parseStatement", "cur", p.curToken.Literal, "type", p.curToken.Type)
	switch p.curToken.Type {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() Statement {
	tok := p.curToken

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	p.nextToken()

	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return &LetStatement{Token: tok, Name: name, Value: value}
}

func (p *Parser) parseReturnStatement() Statement {
	tok := p.curToken
	p.nextToken()

	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return &ReturnStatement{Token: tok, ReturnValue: value}
}

func (p *Parser) parseExpressionStatement() Statement {
	tok := p.curToken

	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return &ExpressionStatement{Token: tok, Expression: expr}
}

// parseBlockStatement expects curToken to be the opening '{'. An unclosed
// block fails as a whole, dropping the statements it already collected.
func (p *Parser) parseBlockStatement() *BlockStatement {
	tok := p.curToken
	p.nextToken()

	statements := []Statement{}
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			statements = append(statements, stmt)
		}
		p.nextToken()
	}

	if !p.curTokenIs(lexer.RBRACE) {
		p.addError(p.curToken, "expected '}' to close block statement.")
		return nil
	}

	return &BlockStatement{Token: tok, Statements: statements}
}

// parseExpression is the precedence-climbing core. It stops at ';', at a
// peek token that does not bind tighter than precedence, or at a peek token
// with no infix function.
func (p *Parser) parseExpression(precedence int) Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()
		p.trace("infix", "op", p.curToken.Literal, "min", precedence)

		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}

	return leftExp
}

// -- Prefix Parse Functions --

func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError(p.curToken, fmt.Sprintf("could not parse %s as integer", p.curToken.Literal)).CausedBy(err)
		return nil
	}
	return &IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() Expression {
	return &StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBoolean() Expression {
	return &Boolean{Token: p.curToken, Value: p.curTokenIs(lexer.TRUE)}
}

func (p *Parser) parsePrefixExpression() Expression {
	tok := p.curToken
	p.nextToken()

	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	return &PrefixExpression{Token: tok, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseIfExpression() Expression {
	tok := p.curToken

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()

	condition := p.parseExpression(LOWEST)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}

	consequence := p.parseBlockStatement()
	if consequence == nil {
		return nil
	}

	expr := &IfExpression{Token: tok, Condition: condition, Consequence: consequence}
	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken()
		if !p.expectPeek(lexer.LBRACE) {
			return nil
		}
		alternative := p.parseBlockStatement()
		if alternative == nil {
			return nil
		}
		expr.Alternative = alternative
	}
	return expr
}

func (p *Parser) parseFunctionLiteral() Expression {
	tok := p.curToken

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}

	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}
	return &FunctionLiteral{Token: tok, Parameters: params, Body: body}
}

// parseFunctionParameters takes each comma-separated token as a parameter
// name without checking that it is an identifier.
// TODO: reject non-IDENT parameters once the evaluator binds parameters.
func (p *Parser) parseFunctionParameters() ([]*Identifier, bool) {
	identifiers := []*Identifier{}

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return identifiers, true
	}

	p.nextToken()
	identifiers = append(identifiers, &Identifier{Token: p.curToken, Value: p.curToken.Literal})

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		identifiers = append(identifiers, &Identifier{Token: p.curToken, Value: p.curToken.Literal})
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil, false
	}
	return identifiers, true
}

func (p *Parser) parseArrayLiteral() Expression {
	tok := p.curToken

	elements, ok := p.parseExpressionList(lexer.RBRACKET)
	if !ok {
		return nil
	}
	return &ArrayLiteral{Token: tok, Elements: elements}
}

// parseExpressionList parses comma-separated expressions up to end. It is
// shared by array literals and call arguments.
func (p *Parser) parseExpressionList(end lexer.TokenType) ([]Expression, bool) {
	list := []Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil, false
	}
	list = append(list, first)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		next := p.parseExpression(LOWEST)
		if next == nil {
			return nil, false
		}
		list = append(list, next)
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}

func (p *Parser) parseHashLiteral() Expression {
	tok := p.curToken
	pairs := []HashPair{}

	if p.peekTokenIs(lexer.RBRACE) {
		p.nextToken()
		return &HashLiteral{Token: tok, Pairs: pairs}
	}

	p.nextToken()
	pair, ok := p.parseHashPair()
	if !ok {
		return nil
	}
	pairs = append(pairs, pair)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		pair, ok := p.parseHashPair()
		if !ok {
			return nil
		}
		pairs = append(pairs, pair)
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return &HashLiteral{Token: tok, Pairs: pairs}
}

// parseHashPair parses `key : value` starting with curToken on the key.
func (p *Parser) parseHashPair() (HashPair, bool) {
	key := p.parseExpression(LOWEST)
	if key == nil {
		return HashPair{}, false
	}
	if !p.expectPeek(lexer.COLON) {
		return HashPair{}, false
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return HashPair{}, false
	}
	return HashPair{Key: key, Value: value}, true
}

// -- Infix Parse Functions --

func (p *Parser) parseInfixExpression(left Expression) Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()

	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &InfixExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseCallExpression(function Expression) Expression {
	tok := p.curToken

	args, ok := p.parseExpressionList(lexer.RPAREN)
	if !ok {
		return nil
	}
	return &CallExpression{Token: tok, Function: function, Arguments: args}
}

func (p *Parser) parseIndexExpression(left Expression) Expression {
	tok := p.curToken
	p.nextToken()

	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil
	}
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return &IndexExpression{Token: tok, Left: left, Index: index}
}

// --- Helpers ---

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances if the peek token has type t, otherwise records an
// error and leaves the position alone.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := p.precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := p.precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekError(t lexer.TokenType) {
	msg := fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type)
	p.addError(p.peekToken, msg)
}

func (p *Parser) noPrefixParseFnError(t lexer.TokenType) {
	msg := fmt.Sprintf("no prefix parse function for %s found", t)
	p.addError(p.curToken, msg)
}

func (p *Parser) addError(tok lexer.Token, msg string) *errors.SyntaxError {
	syntaxErr := &errors.SyntaxError{
		Position: errors.Position{
			Line:     tok.Line,
			Column:   tok.Column,
			StartPos: tok.StartPos,
			EndPos:   tok.EndPos,
			Source:   p.source,
		},
		Msg: msg,
	}
	p.errors = append(p.errors, syntaxErr)
	p.trace("syntax error", "msg", msg, "line", tok.Line, "column", tok.Column)
	return syntaxErr
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}
