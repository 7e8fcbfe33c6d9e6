// Package parser implements a recursive-descent, precedence-climbing parser
// over the token stream produced by internal/lexer, following the operator
// table in spec.md §4.2.
package parser

import (
	"github.com/echosoar/jsi-sub000/internal/ast"
	"github.com/echosoar/jsi-sub000/internal/lexer"
)

// Binary/logical operator precedence levels, lowest to highest binding,
// matching spec.md §4.2's table (Comma and Assignment are handled outside
// this table since they are right-recursive / statement-adjacent).
const (
	_ = iota
	precNullish
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.NULLISH:        precNullish,
	lexer.OR_OR:          precLogicalOr,
	lexer.AND_AND:        precLogicalAnd,
	lexer.PIPE:           precBitOr,
	lexer.CARET:          precBitXor,
	lexer.AMP:            precBitAnd,
	lexer.EQ:             precEquality,
	lexer.NOT_EQ:         precEquality,
	lexer.STRICT_EQ:      precEquality,
	lexer.STRICT_NOT_EQ:  precEquality,
	lexer.LT:             precRelational,
	lexer.GT:             precRelational,
	lexer.LT_EQ:          precRelational,
	lexer.GT_EQ:          precRelational,
	lexer.INSTANCEOF:     precRelational,
	lexer.IN:             precRelational,
	lexer.SHL:            precShift,
	lexer.SHR:            precShift,
	lexer.USHR:           precShift,
	lexer.PLUS:           precAdditive,
	lexer.MINUS:          precAdditive,
	lexer.STAR:           precMultiplicative,
	lexer.SLASH:          precMultiplicative,
	lexer.PERCENT:        precMultiplicative,
	lexer.STAR_STAR:      precExponent,
}

var assignOps = map[lexer.TokenType]bool{
	lexer.ASSIGN: true, lexer.PLUS_EQ: true, lexer.MINUS_EQ: true,
	lexer.STAR_EQ: true, lexer.SLASH_EQ: true, lexer.PERCENT_EQ: true,
	lexer.STARSTAR_EQ: true, lexer.AMP_EQ: true, lexer.PIPE_EQ: true,
	lexer.CARET_EQ: true, lexer.SHL_EQ: true, lexer.SHR_EQ: true,
	lexer.USHR_EQ: true, lexer.AND_AND_EQ: true, lexer.OR_OR_EQ: true,
	lexer.NULLISH_EQ: true,
}

// Parser consumes a pre-tokenized stream and produces an *ast.Program. The
// whole token stream is materialized up front (rather than pulled lazily
// from the Lexer) so that arrow-function-head disambiguation and other
// lookahead-heavy constructs can backtrack by simply restoring an integer
// cursor, mirroring the teacher's ParserState snapshot/restore idiom without
// needing to re-enter the lexer.
type Parser struct {
	tokens []lexer.Token
	pos    int

	errors []*ParseError

	// noIn suppresses treating `in` as a relational operator while parsing
	// the init clause of a classic for(;;) loop, so `for (x in y)` is not
	// misparsed as a for-in loop whose init contains a binary `in`.
	noIn bool
}

// New tokenizes the entirety of l's input and returns a Parser over it.
func New(l *lexer.Lexer) *Parser {
	var toks []lexer.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	// Outside strict mode the lexer reports `let` and `static` as identifiers;
	// an identifier right after one marks a declaration (`let x`, `static m`).
	sloppyKeywords := map[string]lexer.TokenType{"let": lexer.LET, "static": lexer.STATIC}
	for idx := 0; idx+1 < len(toks); idx++ {
		if kw, ok := sloppyKeywords[toks[idx].Literal]; ok && toks[idx].Type == lexer.IDENT && toks[idx+1].Type == lexer.IDENT {
			toks[idx].Type = kw
		}
	}
	return &Parser{tokens: toks}
}

// Errors returns the syntax errors accumulated during parsing.
func (p *Parser) Errors() []*ParseError { return p.errors }

func (p *Parser) cur() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) peek(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{Message: msg, Pos: p.cur().Pos})
}

func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	if p.cur().Type != tt {
		p.addError("expected " + tt.String() + ", got " + p.cur().Type.String())
		return p.cur()
	}
	return p.advance()
}

// consumeSemicolon implements Automatic Semicolon Insertion: an explicit
// `;` is consumed; otherwise ASI fires silently at `}`, EOF, or a line
// break before the next token, matching spec.md §4.1.
func (p *Parser) consumeSemicolon() {
	if p.cur().Type == lexer.SEMICOLON {
		p.advance()
		return
	}
	if p.cur().Type == lexer.RBRACE || p.cur().Type == lexer.EOF {
		return
	}
	if p.cur().PrecededByLineBreak {
		return
	}
	p.addError("expected ';', got " + p.cur().Type.String())
}

// ParseProgram parses the entire token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur().Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case lexer.VAR, lexer.LET, lexer.CONST:
		return p.parseVariableStatement()
	case lexer.FUNCTION:
		return p.parseFunctionDeclaration()
	case lexer.CLASS:
		return p.parseClassDeclaration()
	case lexer.LBRACE:
		return p.parseBlockStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.SWITCH:
		return p.parseSwitchStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.DO:
		return p.parseDoWhileStatement()
	case lexer.BREAK:
		return p.parseBreakStatement()
	case lexer.CONTINUE:
		return p.parseContinueStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.THROW:
		return p.parseThrowStatement()
	case lexer.TRY:
		return p.parseTryStatement()
	case lexer.SEMICOLON:
		tok := p.advance()
		return &ast.EmptyStatement{Token: tok}
	case lexer.IDENT:
		if p.peek(1).Type == lexer.COLON {
			return p.parseLabeledStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLabeledStatement() ast.Statement {
	tok := p.cur()
	label := p.advance().Literal
	p.expect(lexer.COLON)
	body := p.parseStatement()
	return &ast.LabeledStatement{Token: tok, Label: label, Body: body}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression()
	p.consumeSemicolon()
	return &ast.ExpressionStatement{Token: tok, Expr: expr}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	tok := p.expect(lexer.LBRACE)
	block := &ast.BlockStatement{Token: tok}
	for p.cur().Type != lexer.RBRACE && p.cur().Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	p.expect(lexer.RBRACE)
	return block
}

func varKindOf(tt lexer.TokenType) ast.VarKind {
	switch tt {
	case lexer.LET:
		return ast.VarLet
	case lexer.CONST:
		return ast.VarConst
	default:
		return ast.VarVar
	}
}

func (p *Parser) parseVariableStatement() ast.Statement {
	decl := p.parseVariableDeclaration()
	p.consumeSemicolon()
	return decl
}

// parseVariableDeclaration parses `var|let|const decl, decl, ...` without
// consuming the trailing semicolon, so for-loop headers can reuse it.
func (p *Parser) parseVariableDeclaration() *ast.VariableDeclaration {
	tok := p.cur()
	kind := varKindOf(p.advance().Type)
	decl := &ast.VariableDeclaration{Token: tok, Kind: kind}
	for {
		name := &ast.Identifier{Token: p.cur(), Name: p.expect(lexer.IDENT).Literal}
		var init ast.Expression
		if p.cur().Type == lexer.ASSIGN {
			p.advance()
			init = p.parseAssignmentExpression()
		}
		decl.Declarators = append(decl.Declarators, &ast.VariableDeclarator{Name: name, Init: init})
		if p.cur().Type != lexer.COMMA {
			break
		}
		p.advance()
	}
	return decl
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.expect(lexer.IF)
	p.expect(lexer.LPAREN)
	test := p.parseExpression()
	p.expect(lexer.RPAREN)
	consequent := p.parseStatement()
	var alternate ast.Statement
	if p.cur().Type == lexer.ELSE {
		p.advance()
		alternate = p.parseStatement()
	}
	return &ast.IfStatement{Token: tok, Test: test, Consequent: consequent, Alternate: alternate}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	test := p.parseExpression()
	p.expect(lexer.RPAREN)
	body := p.parseStatement()
	return &ast.WhileStatement{Token: tok, Test: test, Body: body}
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	tok := p.expect(lexer.DO)
	body := p.parseStatement()
	p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	test := p.parseExpression()
	p.expect(lexer.RPAREN)
	p.consumeSemicolon()
	return &ast.DoWhileStatement{Token: tok, Body: body, Test: test}
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.expect(lexer.FOR)
	p.expect(lexer.LPAREN)

	var init ast.Node
	if p.cur().Type == lexer.VAR || p.cur().Type == lexer.LET || p.cur().Type == lexer.CONST {
		p.noIn = true
		decl := p.parseVariableDeclaration()
		p.noIn = false
		if p.cur().Type == lexer.IN && len(decl.Declarators) == 1 {
			p.advance()
			right := p.parseExpression()
			p.expect(lexer.RPAREN)
			body := p.parseStatement()
			return &ast.ForInStatement{Token: tok, Left: decl, Right: right, Body: body}
		}
		if isIdentOf(p.cur()) && len(decl.Declarators) == 1 {
			p.advance()
			right := p.parseAssignmentExpression()
			p.expect(lexer.RPAREN)
			body := p.parseStatement()
			return &ast.ForOfStatement{Token: tok, Left: decl, Right: right, Body: body}
		}
		init = decl
	} else if p.cur().Type != lexer.SEMICOLON {
		p.noIn = true
		expr := p.parseExpression()
		p.noIn = false
		if p.cur().Type == lexer.IN {
			p.advance()
			right := p.parseExpression()
			p.expect(lexer.RPAREN)
			body := p.parseStatement()
			return &ast.ForInStatement{Token: tok, Left: expr, Right: right, Body: body}
		}
		if isIdentOf(p.cur()) {
			p.advance()
			right := p.parseAssignmentExpression()
			p.expect(lexer.RPAREN)
			body := p.parseStatement()
			return &ast.ForOfStatement{Token: tok, Left: expr, Right: right, Body: body}
		}
		init = expr
	}

	p.expect(lexer.SEMICOLON)
	var test ast.Expression
	if p.cur().Type != lexer.SEMICOLON {
		test = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON)
	var update ast.Expression
	if p.cur().Type != lexer.RPAREN {
		update = p.parseExpression()
	}
	p.expect(lexer.RPAREN)
	body := p.parseStatement()
	return &ast.ForStatement{Token: tok, Init: init, Test: test, Update: update, Body: body}
}

// isIdentOf reports whether tok is the contextual keyword `of`, which this
// lexer does not reserve (it lexes as a plain IDENT); the parser recognizes
// it positionally in for-of headers only.
func isIdentOf(tok lexer.Token) bool {
	return tok.Type == lexer.IDENT && tok.Literal == "of"
}

func (p *Parser) parseBreakStatement() ast.Statement {
	tok := p.expect(lexer.BREAK)
	label := ""
	if p.cur().Type == lexer.IDENT && !p.cur().PrecededByLineBreak {
		label = p.advance().Literal
	}
	p.consumeSemicolon()
	return &ast.BreakStatement{Token: tok, Label: label}
}

func (p *Parser) parseContinueStatement() ast.Statement {
	tok := p.expect(lexer.CONTINUE)
	label := ""
	if p.cur().Type == lexer.IDENT && !p.cur().PrecededByLineBreak {
		label = p.advance().Literal
	}
	p.consumeSemicolon()
	return &ast.ContinueStatement{Token: tok, Label: label}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.expect(lexer.RETURN)
	if p.cur().Type == lexer.SEMICOLON || p.cur().Type == lexer.RBRACE ||
		p.cur().Type == lexer.EOF || p.cur().PrecededByLineBreak {
		p.consumeSemicolon()
		return &ast.ReturnStatement{Token: tok}
	}
	val := p.parseExpression()
	p.consumeSemicolon()
	return &ast.ReturnStatement{Token: tok, Value: val}
}

func (p *Parser) parseThrowStatement() ast.Statement {
	tok := p.expect(lexer.THROW)
	if p.cur().PrecededByLineBreak {
		p.addError("illegal newline after throw")
	}
	val := p.parseExpression()
	p.consumeSemicolon()
	return &ast.ThrowStatement{Token: tok, Value: val}
}

func (p *Parser) parseTryStatement() ast.Statement {
	tok := p.expect(lexer.TRY)
	block := p.parseBlockStatement()
	ts := &ast.TryStatement{Token: tok, Block: block}
	if p.cur().Type == lexer.CATCH {
		p.advance()
		clause := &ast.CatchClause{}
		if p.cur().Type == lexer.LPAREN {
			p.advance()
			clause.Param = &ast.Identifier{Token: p.cur(), Name: p.expect(lexer.IDENT).Literal}
			p.expect(lexer.RPAREN)
		}
		clause.Body = p.parseBlockStatement()
		ts.Catch = clause
	}
	if p.cur().Type == lexer.FINALLY {
		p.advance()
		ts.Finally = p.parseBlockStatement()
	}
	return ts
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	tok := p.expect(lexer.SWITCH)
	p.expect(lexer.LPAREN)
	disc := p.parseExpression()
	p.expect(lexer.RPAREN)
	p.expect(lexer.LBRACE)
	sw := &ast.SwitchStatement{Token: tok, Discriminant: disc}
	for p.cur().Type != lexer.RBRACE && p.cur().Type != lexer.EOF {
		c := &ast.SwitchCase{}
		if p.cur().Type == lexer.CASE {
			p.advance()
			c.Test = p.parseExpression()
		} else {
			p.expect(lexer.DEFAULT)
		}
		p.expect(lexer.COLON)
		for p.cur().Type != lexer.CASE && p.cur().Type != lexer.DEFAULT &&
			p.cur().Type != lexer.RBRACE && p.cur().Type != lexer.EOF {
			c.Consequent = append(c.Consequent, p.parseStatement())
		}
		sw.Cases = append(sw.Cases, c)
	}
	p.expect(lexer.RBRACE)
	return sw
}

// ---- Expressions ----

// parseExpression parses the comma operator and everything below it; this
// is the entry point for full expression contexts (expression statements,
// parenthesized groups).
func (p *Parser) parseExpression() ast.Expression {
	first := p.parseAssignmentExpression()
	if p.cur().Type != lexer.COMMA {
		return first
	}
	tok := p.cur()
	exprs := []ast.Expression{first}
	for p.cur().Type == lexer.COMMA {
		p.advance()
		exprs = append(exprs, p.parseAssignmentExpression())
	}
	return &ast.SequenceExpression{Token: tok, Expressions: exprs}
}

// parseAssignmentExpression parses everything at or above Assignment
// precedence (i.e. excluding the comma operator) — the building block used
// wherever a single argument/element/initializer is expected.
func (p *Parser) parseAssignmentExpression() ast.Expression {
	left := p.parseConditionalExpression()
	if assignOps[p.cur().Type] {
		tok := p.cur()
		op := p.advance().Literal
		if op == "" {
			op = tok.Type.String()
		}
		right := p.parseAssignmentExpression()
		return &ast.AssignmentExpression{Token: tok, Operator: op, Target: left, Value: right}
	}
	return left
}

func (p *Parser) parseConditionalExpression() ast.Expression {
	test := p.parseBinaryExpression(precNullish)
	if p.cur().Type == lexer.QUESTION {
		tok := p.cur()
		p.advance()
		consequent := p.parseAssignmentExpression()
		p.expect(lexer.COLON)
		alternate := p.parseAssignmentExpression()
		return &ast.ConditionalExpression{Token: tok, Test: test, Consequent: consequent, Alternate: alternate}
	}
	return test
}

func (p *Parser) parseBinaryExpression(minPrec int) ast.Expression {
	left := p.parseUnaryExpression()
	for {
		tt := p.cur().Type
		if tt == lexer.IN && p.noIn {
			break
		}
		prec, ok := binaryPrecedence[tt]
		if !ok || prec < minPrec {
			break
		}
		tok := p.cur()
		op := tok.Literal
		if op == "" {
			op = tt.String()
		}
		p.advance()
		nextMin := prec + 1
		if tt == lexer.STAR_STAR {
			nextMin = prec // right-associative
		}
		right := p.parseBinaryExpression(nextMin)
		switch tt {
		case lexer.AND_AND, lexer.OR_OR, lexer.NULLISH:
			left = &ast.LogicalExpression{Token: tok, Left: left, Operator: op, Right: right}
		default:
			left = &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
		}
	}
	return left
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.NOT, lexer.TILDE, lexer.PLUS, lexer.MINUS, lexer.TYPEOF, lexer.VOID, lexer.DELETE:
		p.advance()
		operand := p.parseUnaryExpression()
		op := tok.Literal
		if op == "" {
			op = tok.Type.String()
		}
		return &ast.UnaryExpression{Token: tok, Operator: op, Operand: operand}
	case lexer.INCREMENT, lexer.DECREMENT:
		p.advance()
		operand := p.parseUnaryExpression()
		return &ast.UpdateExpression{Token: tok, Operator: tok.Type.String(), Operand: operand, Prefix: true}
	default:
		return p.parsePostfixExpression()
	}
}

func (p *Parser) parsePostfixExpression() ast.Expression {
	expr := p.parseLeftHandSideExpression()
	if (p.cur().Type == lexer.INCREMENT || p.cur().Type == lexer.DECREMENT) && !p.cur().PrecededByLineBreak {
		tok := p.cur()
		p.advance()
		return &ast.UpdateExpression{Token: tok, Operator: tok.Type.String(), Operand: expr, Prefix: false}
	}
	return expr
}

func (p *Parser) parseLeftHandSideExpression() ast.Expression {
	var expr ast.Expression
	if p.cur().Type == lexer.NEW {
		expr = p.parseNewExpression()
	} else {
		expr = p.parsePrimaryExpression()
	}
	return p.parseCallMemberTail(expr)
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.expect(lexer.NEW)
	if p.cur().Type == lexer.NEW {
		callee := p.parseNewExpression()
		return &ast.NewExpression{Token: tok, Callee: callee}
	}
	callee := p.parsePrimaryExpression()
	callee = p.parseMemberOnlyTail(callee)
	var args []ast.Expression
	if p.cur().Type == lexer.LPAREN {
		args = p.parseArguments()
	}
	return &ast.NewExpression{Token: tok, Callee: callee, Arguments: args}
}

// parseMemberOnlyTail parses `.prop`/`[expr]` chains but stops before any
// `(...)` call, so `new a.b.c()` attributes the call to the NewExpression
// rather than to `c`.
func (p *Parser) parseMemberOnlyTail(expr ast.Expression) ast.Expression {
	for {
		switch p.cur().Type {
		case lexer.DOT:
			tok := p.advance()
			prop := &ast.Identifier{Token: p.cur(), Name: p.advance().Literal}
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: prop}
		case lexer.LBRACKET:
			tok := p.advance()
			idx := p.parseExpression()
			p.expect(lexer.RBRACKET)
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: idx, Computed: true}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallMemberTail(expr ast.Expression) ast.Expression {
	for {
		switch p.cur().Type {
		case lexer.DOT:
			tok := p.advance()
			prop := &ast.Identifier{Token: p.cur(), Name: p.advance().Literal}
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: prop}
		case lexer.LBRACKET:
			tok := p.advance()
			idx := p.parseExpression()
			p.expect(lexer.RBRACKET)
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: idx, Computed: true}
		case lexer.LPAREN:
			tok := p.cur()
			args := p.parseArguments()
			expr = &ast.CallExpression{Token: tok, Callee: expr, Arguments: args}
		case lexer.OPT_CHAIN:
			tok := p.advance()
			switch p.cur().Type {
			case lexer.LPAREN:
				args := p.parseArguments()
				expr = &ast.CallExpression{Token: tok, Callee: expr, Arguments: args, Optional: true}
			case lexer.LBRACKET:
				p.advance()
				idx := p.parseExpression()
				p.expect(lexer.RBRACKET)
				expr = &ast.MemberExpression{Token: tok, Object: expr, Property: idx, Computed: true, Optional: true}
			default:
				prop := &ast.Identifier{Token: p.cur(), Name: p.advance().Literal}
				expr = &ast.MemberExpression{Token: tok, Object: expr, Property: prop, Optional: true}
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArguments() []ast.Expression {
	p.expect(lexer.LPAREN)
	var args []ast.Expression
	for p.cur().Type != lexer.RPAREN && p.cur().Type != lexer.EOF {
		if p.cur().Type == lexer.ELLIPSIS {
			tok := p.advance()
			args = append(args, &ast.SpreadElement{Token: tok, Arg: p.parseAssignmentExpression()})
		} else {
			args = append(args, p.parseAssignmentExpression())
		}
		if p.cur().Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

func (p *Parser) parsePrimaryExpression() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.NUMBER:
		p.advance()
		return &ast.NumberLiteral{Token: tok, Value: tok.NumberValue}
	case lexer.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case lexer.TEMPLATE:
		p.advance()
		return p.buildTemplateLiteral(tok)
	case lexer.TRUE_KW:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: true}
	case lexer.FALSE_KW:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: false}
	case lexer.NULL_KW:
		p.advance()
		return &ast.NullLiteral{Token: tok}
	case lexer.UNDEFINED_KW:
		p.advance()
		return &ast.UndefinedLiteral{Token: tok}
	case lexer.THIS:
		p.advance()
		return &ast.ThisExpression{Token: tok}
	case lexer.SUPER:
		p.advance()
		return &ast.SuperExpression{Token: tok}
	case lexer.FUNCTION:
		return p.parseFunctionLiteral(false)
	case lexer.CLASS:
		return p.parseClassLiteral()
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.LBRACE:
		return p.parseObjectLiteral()
	case lexer.LPAREN:
		if fn, ok := p.tryParseArrowFunction(); ok {
			return fn
		}
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN)
		return &ast.GroupedExpression{Token: tok, Inner: expr}
	case lexer.IDENT:
		if p.peek(1).Type == lexer.ARROW {
			return p.parseSingleIdentArrow()
		}
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	default:
		p.addError("unexpected token " + tok.Type.String())
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	}
}

func (p *Parser) buildTemplateLiteral(tok lexer.Token) *ast.TemplateLiteral {
	tmpl := &ast.TemplateLiteral{Token: tok}
	for _, part := range tok.TemplateParts {
		if !part.IsExpr {
			tmpl.Parts = append(tmpl.Parts, ast.TemplatePart{Cooked: part.Cooked})
			continue
		}
		subLexer := lexer.New(part.Raw)
		subParser := New(subLexer)
		expr := subParser.parseExpression()
		p.errors = append(p.errors, subParser.errors...)
		tmpl.Parts = append(tmpl.Parts, ast.TemplatePart{IsExpr: true, Expr: expr})
	}
	return tmpl
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.expect(lexer.LBRACKET)
	arr := &ast.ArrayLiteral{Token: tok}
	for p.cur().Type != lexer.RBRACKET && p.cur().Type != lexer.EOF {
		if p.cur().Type == lexer.COMMA {
			arr.Elements = append(arr.Elements, nil) // elision
			p.advance()
			continue
		}
		if p.cur().Type == lexer.ELLIPSIS {
			spreadTok := p.advance()
			arr.Elements = append(arr.Elements, &ast.SpreadElement{Token: spreadTok, Arg: p.parseAssignmentExpression()})
		} else {
			arr.Elements = append(arr.Elements, p.parseAssignmentExpression())
		}
		if p.cur().Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.expect(lexer.LBRACE)
	obj := &ast.ObjectLiteral{Token: tok}
	for p.cur().Type != lexer.RBRACE && p.cur().Type != lexer.EOF {
		obj.Properties = append(obj.Properties, p.parseObjectProperty())
		if p.cur().Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return obj
}

func (p *Parser) parseObjectProperty() *ast.ObjectProperty {
	if p.cur().Type == lexer.ELLIPSIS {
		tok := p.advance()
		return &ast.ObjectProperty{Token: tok, IsSpread: true, Value: p.parseAssignmentExpression()}
	}

	if (p.cur().Literal == "get" || p.cur().Literal == "set") && p.cur().Type == lexer.IDENT &&
		p.peek(1).Type != lexer.COLON && p.peek(1).Type != lexer.COMMA && p.peek(1).Type != lexer.RBRACE &&
		p.peek(1).Type != lexer.LPAREN {
		kindWord := p.advance().Literal
		key, computed := p.parsePropertyKey()
		fn := p.parseFunctionLiteralTail(nil)
		kind := ast.PropertyGet
		if kindWord == "set" {
			kind = ast.PropertySet
		}
		return &ast.ObjectProperty{Key: key, Computed: computed, Kind: kind, Value: fn}
	}

	keyTok := p.cur()
	key, computed := p.parsePropertyKey()

	if p.cur().Type == lexer.LPAREN {
		fn := p.parseFunctionLiteralTail(nil)
		return &ast.ObjectProperty{Token: keyTok, Key: key, Computed: computed, Kind: ast.PropertyMethod, Value: fn}
	}
	if p.cur().Type == lexer.COLON {
		p.advance()
		val := p.parseAssignmentExpression()
		return &ast.ObjectProperty{Token: keyTok, Key: key, Computed: computed, Kind: ast.PropertyInit, Value: val}
	}
	// Shorthand: {a} === {a: a}
	ident, _ := key.(*ast.Identifier)
	return &ast.ObjectProperty{Token: keyTok, Key: key, Shorthand: true, Kind: ast.PropertyInit, Value: ident}
}

// parsePropertyKey parses an object/class member key: identifier, string,
// number, or `[computed]`.
func (p *Parser) parsePropertyKey() (ast.Expression, bool) {
	switch p.cur().Type {
	case lexer.LBRACKET:
		p.advance()
		expr := p.parseAssignmentExpression()
		p.expect(lexer.RBRACKET)
		return expr, true
	case lexer.STRING:
		tok := p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}, false
	case lexer.NUMBER:
		tok := p.advance()
		return &ast.NumberLiteral{Token: tok, Value: tok.NumberValue}, false
	default:
		tok := p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}, false
	}
}

// ---- Functions ----

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	tok := p.cur()
	fn := p.parseFunctionLiteral(false).(*ast.FunctionLiteral)
	return &ast.FunctionDeclaration{Token: tok, Fn: fn}
}

func (p *Parser) parseFunctionLiteral(isArrow bool) ast.Expression {
	tok := p.expect(lexer.FUNCTION)
	var name *ast.Identifier
	if p.cur().Type == lexer.IDENT {
		name = &ast.Identifier{Token: p.cur(), Name: p.advance().Literal}
	}
	fn := p.parseFunctionLiteralTail(name)
	fn.Token = tok
	return fn
}

// parseFunctionLiteralTail parses `(params) { body }` given a name already
// consumed (nil for anonymous functions and methods).
func (p *Parser) parseFunctionLiteralTail(name *ast.Identifier) *ast.FunctionLiteral {
	fn := &ast.FunctionLiteral{Name: name}
	fn.Params = p.parseParameterList()
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseParameterList() []*ast.Parameter {
	p.expect(lexer.LPAREN)
	var params []*ast.Parameter
	for p.cur().Type != lexer.RPAREN && p.cur().Type != lexer.EOF {
		param := &ast.Parameter{}
		if p.cur().Type == lexer.ELLIPSIS {
			p.advance()
			param.Rest = true
		}
		param.Name = &ast.Identifier{Token: p.cur(), Name: p.expect(lexer.IDENT).Literal}
		if p.cur().Type == lexer.ASSIGN {
			p.advance()
			param.Default = p.parseAssignmentExpression()
		}
		params = append(params, param)
		if p.cur().Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseSingleIdentArrow() ast.Expression {
	tok := p.cur()
	name := &ast.Identifier{Token: tok, Name: p.advance().Literal}
	p.expect(lexer.ARROW)
	return p.finishArrow(tok, []*ast.Parameter{{Name: name}})
}

// tryParseArrowFunction attempts to parse `(params) => ...` starting at an
// LPAREN. On failure it rewinds the cursor and reports ok=false so the
// caller falls back to grouped-expression parsing.
func (p *Parser) tryParseArrowFunction() (ast.Expression, bool) {
	start := p.pos
	savedErrs := len(p.errors)

	params, ok := p.tryParseParameterList()
	if !ok || p.cur().Type != lexer.ARROW {
		p.pos = start
		p.errors = p.errors[:savedErrs]
		return nil, false
	}
	tok := p.tokens[start]
	p.advance() // consume =>
	return p.finishArrow(tok, params), true
}

// tryParseParameterList parses a parenthesized parameter list without
// reporting hard errors on malformed content (so the caller can silently
// back off to a grouped expression instead).
func (p *Parser) tryParseParameterList() ([]*ast.Parameter, bool) {
	if p.cur().Type != lexer.LPAREN {
		return nil, false
	}
	p.advance()
	var params []*ast.Parameter
	for p.cur().Type != lexer.RPAREN {
		if p.cur().Type == lexer.EOF {
			return nil, false
		}
		param := &ast.Parameter{}
		if p.cur().Type == lexer.ELLIPSIS {
			p.advance()
			param.Rest = true
		}
		if p.cur().Type != lexer.IDENT {
			return nil, false
		}
		param.Name = &ast.Identifier{Token: p.cur(), Name: p.advance().Literal}
		if p.cur().Type == lexer.ASSIGN {
			p.advance()
			param.Default = p.parseAssignmentExpression()
		}
		params = append(params, param)
		if p.cur().Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if p.cur().Type != lexer.RPAREN {
		return nil, false
	}
	p.advance()
	return params, true
}

func (p *Parser) finishArrow(tok lexer.Token, params []*ast.Parameter) ast.Expression {
	fn := &ast.FunctionLiteral{Token: tok, Params: params, IsArrow: true}
	if p.cur().Type == lexer.LBRACE {
		fn.Body = p.parseBlockStatement()
	} else {
		fn.ExprBody = p.parseAssignmentExpression()
	}
	return fn
}

// ---- Classes ----

func (p *Parser) parseClassDeclaration() ast.Statement {
	tok := p.cur()
	class := p.parseClassLiteral().(*ast.ClassLiteral)
	return &ast.ClassDeclaration{Token: tok, Class: class}
}

func (p *Parser) parseClassLiteral() ast.Expression {
	tok := p.expect(lexer.CLASS)
	class := &ast.ClassLiteral{Token: tok}
	if p.cur().Type == lexer.IDENT {
		class.Name = &ast.Identifier{Token: p.cur(), Name: p.advance().Literal}
	}
	if p.cur().Type == lexer.EXTENDS {
		p.advance()
		class.SuperClass = p.parseLeftHandSideExpression()
	}
	p.expect(lexer.LBRACE)
	for p.cur().Type != lexer.RBRACE && p.cur().Type != lexer.EOF {
		if p.cur().Type == lexer.SEMICOLON {
			p.advance()
			continue
		}
		class.Members = append(class.Members, p.parseClassMember())
	}
	p.expect(lexer.RBRACE)
	return class
}

func (p *Parser) parseClassMember() *ast.ClassMember {
	member := &ast.ClassMember{Kind: ast.PropertyMethod}

	for {
		switch p.cur().Type {
		case lexer.STATIC:
			member.Modifiers |= ast.ModStatic
			p.advance()
			continue
		case lexer.PRIVATE:
			member.Modifiers |= ast.ModPrivate
			p.advance()
			continue
		case lexer.PUBLIC:
			member.Modifiers |= ast.ModPublic
			p.advance()
			continue
		case lexer.PROTECTED:
			member.Modifiers |= ast.ModProtected
			p.advance()
			continue
		}
		break
	}

	if (p.cur().Literal == "get" || p.cur().Literal == "set") && p.cur().Type == lexer.IDENT &&
		p.peek(1).Type != lexer.LPAREN {
		kindWord := p.advance().Literal
		key, computed := p.parsePropertyKey()
		member.Key, member.Computed = key, computed
		member.Kind = ast.PropertyGet
		if kindWord == "set" {
			member.Kind = ast.PropertySet
		}
		member.Method = p.parseFunctionLiteralTail(nil)
		return member
	}

	key, computed := p.parsePropertyKey()
	member.Key, member.Computed = key, computed

	if ident, ok := key.(*ast.Identifier); ok && ident.Name == "constructor" && p.cur().Type == lexer.LPAREN {
		member.IsCtor = true
		member.Method = p.parseFunctionLiteralTail(nil)
		return member
	}

	if p.cur().Type == lexer.LPAREN {
		member.Method = p.parseFunctionLiteralTail(nil)
		return member
	}

	// Field declaration, optionally initialized.
	member.Kind = ast.PropertyInit
	if p.cur().Type == lexer.ASSIGN {
		p.advance()
		member.FieldInit = p.parseAssignmentExpression()
	}
	p.consumeSemicolon()
	return member
}
