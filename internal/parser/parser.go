// Package parser implements a recursive-descent parser with Pratt-style
// operator-precedence climbing over a token stream, producing the
// uniform ast.Node tree. Grounded on the teacher's lang/yparse parser
// (its recursive-descent structure and peek/match discipline), adapted
// from the teacher's typed-interface node shapes to the uniform n-ary
// shape spec.md §9 mandates.
package parser

import (
	"github.com/pkg/errors"

	"github.com/gmofishsauce/wut4/lang/cfront/internal/ast"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/diag"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/token"
)

// Parser holds the filtered token cursor and accumulated diagnostics.
type Parser struct {
	tokens []*token.Token
	pos    int
	diags  *diag.List
}

// Parse strips trivia from tokens and parses the remainder as a
// Program. Panics only on the parser's own no-progress invariant
// violation (an internal bug, not a user-facing condition), which
// Parse recovers and returns as a non-nil error (wrapped with
// "parser internal error") — spec.md §4.5's "fatal internal error".
func Parse(tokens []*token.Token) (prog *ast.Node, diags *diag.List, err error) {
	p := &Parser{tokens: stripTrivia(tokens), diags: &diag.List{}}
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(fatalError); ok {
				err = errors.Wrap(fe.cause, "parser internal error")
				return
			}
			panic(r)
		}
	}()
	prog = p.parseProgram()
	diags = p.diags
	return prog, diags, nil
}

func stripTrivia(tokens []*token.Token) []*token.Token {
	out := make([]*token.Token, 0, len(tokens))
	for _, t := range tokens {
		if !t.Kind.IsTrivia() {
			out = append(out, t)
		}
	}
	if len(out) == 0 || out[len(out)-1].Kind != token.EOF {
		out = append(out, token.New(token.EOF, "", 0))
	}
	return out
}

// fatalError is the panic payload for the progress invariant; Parse
// recovers it and turns it into a returned error.
type fatalError struct{ cause error }

func (p *Parser) fatal(format string, args ...interface{}) {
	panic(fatalError{cause: errors.Errorf(format, args...)})
}

// --- cursor ---

func (p *Parser) peek(k int) *token.Token {
	idx := p.pos + k
	if idx >= len(p.tokens) {
		idx = len(p.tokens) - 1
	}
	return p.tokens[idx]
}

func (p *Parser) cur() *token.Token { return p.peek(0) }

func (p *Parser) at(kind token.Kind) bool { return p.cur().Kind == kind }

func (p *Parser) atKeyword(kw token.Keyword) bool {
	t := p.cur()
	return t.Kind == token.Keyword && t.Value.KeyTag == kw
}

func (p *Parser) advance() *token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// match consumes the current token if it has the expected kind,
// otherwise records a parse diagnostic and substitutes a synthetic
// placeholder in its place (spec.md §4.5's missing-token recovery) —
// the cursor still advances past the actual offending token so the
// progress invariant holds.
func (p *Parser) match(kind token.Kind) *token.Token {
	if p.at(kind) {
		return p.advance()
	}
	bad := p.cur()
	p.diags.Addf(diag.Parse, bad, "expected %s but found %s", kind, bad.Kind)
	placeholder := token.Placeholder(bad.Start)
	if !p.at(token.EOF) {
		p.advance()
	}
	return placeholder
}

func (p *Parser) matchKeyword(kw token.Keyword) *token.Token {
	if p.atKeyword(kw) {
		return p.advance()
	}
	bad := p.cur()
	p.diags.Addf(diag.Parse, bad, "expected keyword %s but found %s", kw, bad.Kind)
	placeholder := token.Placeholder(bad.Start)
	if !p.at(token.EOF) {
		p.advance()
	}
	return placeholder
}

// --- top level ---

func (p *Parser) parseProgram() *ast.Node {
	var decls []*ast.Node
	for !p.at(token.EOF) {
		before := p.pos
		decls = append(decls, p.parseGlobalDecl())
		if p.pos == before {
			p.fatal("no progress parsing global declaration at token %d (%s)", p.pos, p.cur().Kind)
		}
	}
	return ast.New(ast.Program, nil, decls)
}

func (p *Parser) parseGlobalDecl() *ast.Node {
	if p.atKeyword(token.KwEnum) {
		return p.parseEnumDecl()
	}
	if p.atKeyword(token.KwStruct) {
		return p.parseStructDecl()
	}
	if p.atKeyword(token.KwUnion) {
		return p.parseUnionDecl()
	}

	var toks []*token.Token
	if p.atKeyword(token.KwConst) {
		toks = append(toks, p.advance())
	}
	typeTok := p.parseTypeSpecifier()
	toks = append(toks, typeTok)
	name := p.match(token.Identifier)

	if p.at(token.LParen) {
		lparen := p.advance()
		toks = append(toks, lparen)
		params := p.parseParamList()
		rparen := p.match(token.RParen)
		toks = append(toks, rparen)
		children := []*ast.Node{{Kind: ast.IdentifierExpr, Tokens: []*token.Token{name}}, params}
		if p.at(token.LBrace) {
			body := p.parseCompoundStmt()
			return ast.New(ast.FnDef, toks, append(children, body))
		}
		semi := p.match(token.Semi)
		toks = append(toks, semi)
		return ast.New(ast.FnDecl, toks, children)
	}

	var init *ast.Node
	if p.at(token.Equal) {
		toks = append(toks, p.advance())
		init = p.parseExpression()
	}
	toks = append(toks, p.match(token.Semi))
	children := []*ast.Node{{Kind: ast.IdentifierExpr, Tokens: []*token.Token{name}}}
	if init != nil {
		children = append(children, init)
	}
	return ast.New(ast.GlobalVarDecl, toks, children)
}

// parseTypeSpecifier consumes one type-introducing token (a type
// keyword, or a plain identifier standing in for a typedef name) and
// returns it as the type token to be attached to the enclosing
// declaration node. For struct/union/enum only the keyword itself is
// consumed; a tag identifier that follows it is not.
func (p *Parser) parseTypeSpecifier() *token.Token {
	t := p.cur()
	if t.Kind == token.Keyword && token.IsTypeKeyword(t.Value.KeyTag) {
		return p.advance()
	}
	if t.Kind == token.Identifier {
		return p.advance()
	}
	p.diags.Addf(diag.Parse, t, "expected type specifier but found %s", t.Kind)
	placeholder := token.Placeholder(t.Start)
	if !p.at(token.EOF) {
		p.advance()
	}
	return placeholder
}

func (p *Parser) parseParamList() *ast.Node {
	var toks []*token.Token
	var children []*ast.Node
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.atKeyword(token.KwConst) {
			toks = append(toks, p.advance())
		}
		typeTok := p.parseTypeSpecifier()
		toks = append(toks, typeTok)
		name := p.match(token.Identifier)
		children = append(children, &ast.Node{Kind: ast.IdentifierExpr, Tokens: []*token.Token{name}})
		if p.at(token.Comma) {
			toks = append(toks, p.advance())
			continue
		}
		break
	}
	return ast.New(ast.ParamList, toks, children)
}

func (p *Parser) parseEnumDecl() *ast.Node {
	var toks []*token.Token
	toks = append(toks, p.matchKeyword(token.KwEnum))
	toks = append(toks, p.match(token.Identifier))
	toks = append(toks, p.match(token.LBrace))
	list := p.parseEnumList()
	toks = append(toks, p.match(token.RBrace))
	toks = append(toks, p.match(token.Semi))
	return ast.New(ast.Enum, toks, []*ast.Node{list})
}

func (p *Parser) parseEnumList() *ast.Node {
	var toks []*token.Token
	var children []*ast.Node
	for p.at(token.Identifier) {
		name := p.advance()
		n := &ast.Node{Kind: ast.IdentifierExpr, Tokens: []*token.Token{name}}
		if p.at(token.Equal) {
			toks = append(toks, p.advance())
			val := p.parseExpression()
			n = ast.New(ast.IdentifierExpr, []*token.Token{name}, []*ast.Node{val})
		}
		children = append(children, n)
		if p.at(token.Comma) {
			toks = append(toks, p.advance())
			continue
		}
		break
	}
	return ast.New(ast.EnumList, toks, children)
}

func (p *Parser) parseStructDecl() *ast.Node {
	var toks []*token.Token
	toks = append(toks, p.matchKeyword(token.KwStruct))
	toks = append(toks, p.match(token.Identifier))
	toks = append(toks, p.match(token.LBrace))
	members := p.parseMemberList()
	toks = append(toks, p.match(token.RBrace))
	toks = append(toks, p.match(token.Semi))
	return ast.New(ast.Struct, toks, []*ast.Node{members})
}

func (p *Parser) parseUnionDecl() *ast.Node {
	var toks []*token.Token
	toks = append(toks, p.matchKeyword(token.KwUnion))
	toks = append(toks, p.match(token.Identifier))
	toks = append(toks, p.match(token.LBrace))
	members := p.parseMemberList()
	toks = append(toks, p.match(token.RBrace))
	toks = append(toks, p.match(token.Semi))
	return ast.New(ast.Union, toks, []*ast.Node{members})
}

func (p *Parser) parseMemberList() *ast.Node {
	var toks []*token.Token
	var children []*ast.Node
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		typeTok := p.parseTypeSpecifier()
		name := p.match(token.Identifier)
		fieldToks := []*token.Token{typeTok}
		if p.at(token.LBracket) {
			fieldToks = append(fieldToks, p.advance())
			lenTok := p.match(token.IntLiteral)
			fieldToks = append(fieldToks, lenTok)
			fieldToks = append(fieldToks, p.match(token.RBracket))
		}
		fieldToks = append(fieldToks, p.match(token.Semi))
		children = append(children, &ast.Node{Kind: ast.IdentifierExpr, Tokens: append([]*token.Token{name}, fieldToks...)})
		toks = append(toks, fieldToks...)
		if p.pos == before {
			p.fatal("no progress parsing struct/union member at token %d", p.pos)
		}
	}
	return ast.New(ast.MemberList, nil, children)
}

// --- statements ---

func (p *Parser) parseStatement() *ast.Node {
	switch {
	case p.at(token.LBrace):
		return p.parseCompoundStmt()
	case p.at(token.Identifier) && p.peek(1).Kind == token.Colon:
		return p.parseLabeledStmt()
	case p.atKeyword(token.KwReturn):
		return p.parseReturnStmt()
	case p.atKeyword(token.KwBreak):
		toks := []*token.Token{p.advance(), p.match(token.Semi)}
		return ast.New(ast.BreakStmt, toks, nil)
	case p.atKeyword(token.KwContinue):
		toks := []*token.Token{p.advance(), p.match(token.Semi)}
		return ast.New(ast.ContinueStmt, toks, nil)
	case p.atKeyword(token.KwGoto):
		toks := []*token.Token{p.advance(), p.match(token.Identifier), p.match(token.Semi)}
		return ast.New(ast.GotoStmt, toks, nil)
	case p.atKeyword(token.KwIf):
		return p.parseIfStmt()
	case p.atKeyword(token.KwSwitch):
		return p.parseSwitchStmt()
	case p.atKeyword(token.KwFor):
		return p.parseForStmt()
	case p.atKeyword(token.KwWhile):
		return p.parseWhileStmt()
	case p.atKeyword(token.KwDo):
		return p.parseDoStmt()
	case p.isLocalDeclStart():
		return p.parseLocalVarDecl()
	default:
		return p.parseExprStmt()
	}
}

// isLocalDeclStart reports whether the current position begins a local
// variable declaration: an optional `const`, then a type keyword, then
// an identifier. Typedef names are not recognized here; spec.md scopes
// type checking beyond operand-kind checks out, and the grammar has no
// typedef declaration to bind one against.
func (p *Parser) isLocalDeclStart() bool {
	k := 0
	if p.atKeyword(token.KwConst) {
		k = 1
	}
	t := p.peek(k)
	if t.Kind == token.Keyword && token.IsTypeKeyword(t.Value.KeyTag) {
		return p.peek(k+1).Kind == token.Identifier
	}
	return false
}

func (p *Parser) parseCompoundStmt() *ast.Node {
	lbrace := p.match(token.LBrace)
	var children []*ast.Node
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		children = append(children, p.parseStatement())
		if p.pos == before {
			p.fatal("no progress parsing statement at token %d (%s)", p.pos, p.cur().Kind)
		}
	}
	rbrace := p.match(token.RBrace)
	return ast.New(ast.CompoundStmt, []*token.Token{lbrace, rbrace}, children)
}

func (p *Parser) parseLabeledStmt() *ast.Node {
	name := p.advance()
	colon := p.match(token.Colon)
	stmt := p.parseStatement()
	return ast.New(ast.LabeledStmt, []*token.Token{name, colon}, []*ast.Node{stmt})
}

func (p *Parser) parseReturnStmt() *ast.Node {
	kw := p.advance()
	if p.at(token.Semi) {
		semi := p.advance()
		return ast.New(ast.ReturnStmt, []*token.Token{kw, semi}, nil)
	}
	expr := p.parseExpression()
	semi := p.match(token.Semi)
	return ast.New(ast.ReturnStmt, []*token.Token{kw, semi}, []*ast.Node{expr})
}

func (p *Parser) parseIfStmt() *ast.Node {
	var toks []*token.Token
	toks = append(toks, p.advance(), p.match(token.LParen))
	cond := p.parseExpression()
	toks = append(toks, p.match(token.RParen))
	then := p.parseStatement()
	children := []*ast.Node{cond, then}
	if p.atKeyword(token.KwElse) {
		toks = append(toks, p.advance())
		children = append(children, p.parseStatement())
	}
	return ast.New(ast.IfStmt, toks, children)
}

func (p *Parser) parseSwitchStmt() *ast.Node {
	var toks []*token.Token
	toks = append(toks, p.advance(), p.match(token.LParen))
	cond := p.parseExpression()
	toks = append(toks, p.match(token.RParen))
	body := p.parseSwitchBody()
	return ast.New(ast.SwitchStmt, toks, []*ast.Node{cond, body})
}

func (p *Parser) parseSwitchBody() *ast.Node {
	lbrace := p.match(token.LBrace)
	var toks []*token.Token
	var children []*ast.Node
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		if p.atKeyword(token.KwCase) {
			kw := p.advance()
			val := p.parseExpression()
			colon := p.match(token.Colon)
			var body []*ast.Node
			for !p.atKeyword(token.KwCase) && !p.atKeyword(token.KwDefault) && !p.at(token.RBrace) && !p.at(token.EOF) {
				body = append(body, p.parseStatement())
			}
			children = append(children, ast.New(ast.LabeledStmt, []*token.Token{kw, colon}, append([]*ast.Node{val}, body...)))
		} else if p.atKeyword(token.KwDefault) {
			kw := p.advance()
			colon := p.match(token.Colon)
			var body []*ast.Node
			for !p.atKeyword(token.KwCase) && !p.atKeyword(token.KwDefault) && !p.at(token.RBrace) && !p.at(token.EOF) {
				body = append(body, p.parseStatement())
			}
			children = append(children, ast.New(ast.LabeledStmt, []*token.Token{kw, colon}, body))
		} else {
			p.diags.Addf(diag.Parse, p.cur(), "expected case or default but found %s", p.cur().Kind)
			children = append(children, p.parseStatement())
		}
		if p.pos == before {
			p.fatal("no progress parsing switch body at token %d", p.pos)
		}
	}
	rbrace := p.match(token.RBrace)
	return ast.New(ast.SwitchBody, append(toks, lbrace, rbrace), children)
}

func (p *Parser) parseForStmt() *ast.Node {
	var toks []*token.Token
	toks = append(toks, p.advance(), p.match(token.LParen))
	var init *ast.Node
	if p.isLocalDeclStart() {
		init = p.parseLocalVarDecl()
	} else if !p.at(token.Semi) {
		init = p.parseExpression()
		toks = append(toks, p.match(token.Semi))
	} else {
		toks = append(toks, p.match(token.Semi))
	}
	var cond *ast.Node
	if !p.at(token.Semi) {
		cond = p.parseExpression()
	}
	toks = append(toks, p.match(token.Semi))
	var post *ast.Node
	if !p.at(token.RParen) {
		post = p.parseExpression()
	}
	toks = append(toks, p.match(token.RParen))
	body := p.parseStatement()

	var children []*ast.Node
	for _, n := range []*ast.Node{init, cond, post, body} {
		if n != nil {
			children = append(children, n)
		} else {
			children = append(children, &ast.Node{Kind: ast.Invalid})
		}
	}
	return ast.New(ast.ForStmt, toks, children)
}

func (p *Parser) parseWhileStmt() *ast.Node {
	var toks []*token.Token
	toks = append(toks, p.advance(), p.match(token.LParen))
	cond := p.parseExpression()
	toks = append(toks, p.match(token.RParen))
	body := p.parseStatement()
	return ast.New(ast.WhileStmt, toks, []*ast.Node{cond, body})
}

func (p *Parser) parseDoStmt() *ast.Node {
	var toks []*token.Token
	toks = append(toks, p.advance())
	body := p.parseStatement()
	toks = append(toks, p.matchKeyword(token.KwWhile), p.match(token.LParen))
	cond := p.parseExpression()
	toks = append(toks, p.match(token.RParen), p.match(token.Semi))
	return ast.New(ast.DoStmt, toks, []*ast.Node{body, cond})
}

func (p *Parser) parseLocalVarDecl() *ast.Node {
	var toks []*token.Token
	if p.atKeyword(token.KwConst) {
		toks = append(toks, p.advance())
	}
	typeTok := p.parseTypeSpecifier()
	toks = append(toks, typeTok)
	name := p.match(token.Identifier)
	children := []*ast.Node{{Kind: ast.IdentifierExpr, Tokens: []*token.Token{name}}}
	if p.at(token.Equal) {
		toks = append(toks, p.advance())
		children = append(children, p.parseExpression())
	}
	toks = append(toks, p.match(token.Semi))
	return ast.New(ast.LocalVarDecl, toks, children)
}

func (p *Parser) parseExprStmt() *ast.Node {
	if p.at(token.Semi) {
		semi := p.advance()
		return ast.New(ast.ExprStmt, []*token.Token{semi}, nil)
	}
	expr := p.parseExpression()
	semi := p.match(token.Semi)
	return ast.New(ast.ExprStmt, []*token.Token{semi}, []*ast.Node{expr})
}

// --- expressions ---

// opInfo is a binary operator's precedence level (spec.md §4.5's table)
// and its AST node kind; binOps maps each binary operator's token kind
// to one. Higher number binds tighter.
type opInfo struct {
	prec int
	kind ast.Kind
}

var binOps = map[token.Kind]opInfo{
	token.OrOr:         {2, ast.LogicalOrExpr},
	token.AndAnd:       {3, ast.LogicalAndExpr},
	token.Pipe:         {4, ast.BitwiseOrExpr},
	token.Caret:        {5, ast.BitwiseXorExpr},
	token.Amp:          {6, ast.BitwiseAndExpr},
	token.EqualEqual:   {7, ast.EqualityExpr},
	token.NotEqual:     {7, ast.EqualityExpr},
	token.Less:         {8, ast.RelationalExpr},
	token.Greater:      {8, ast.RelationalExpr},
	token.LessEqual:    {8, ast.RelationalExpr},
	token.GreaterEqual: {8, ast.RelationalExpr},
	token.Shl:          {9, ast.ShiftExpr},
	token.Shr:          {9, ast.ShiftExpr},
	token.Plus:         {10, ast.AdditiveExpr},
	token.Minus:        {10, ast.AdditiveExpr},
	token.Star:         {11, ast.MultiplicativeExpr},
	token.Slash:        {11, ast.MultiplicativeExpr},
	token.Percent:      {11, ast.MultiplicativeExpr},
}

var assignOps = map[token.Kind]bool{
	token.Equal: true, token.PlusEqual: true, token.MinusEqual: true,
	token.StarEqual: true, token.SlashEqual: true, token.PercentEqual: true,
	token.AndEqual: true, token.OrEqual: true, token.XorEqual: true,
	token.ShlEqual: true, token.ShrEqual: true,
}

// parseExpression is the entry point: assignment look-ahead, then the
// conditional/binary climb.
func (p *Parser) parseExpression() *ast.Node {
	if p.at(token.Identifier) && assignOps[p.peek(1).Kind] {
		name := p.advance()
		op := p.advance()
		rhs := p.parseExpression()
		lhs := &ast.Node{Kind: ast.IdentifierExpr, Tokens: []*token.Token{name}}
		return ast.New(ast.AssignmentExpr, []*token.Token{op}, []*ast.Node{lhs, rhs})
	}
	return p.parseConditional()
}

func (p *Parser) parseConditional() *ast.Node {
	cond := p.parseBinary(1)
	if p.at(token.Question) {
		q := p.advance()
		then := p.parseExpression()
		colon := p.match(token.Colon)
		els := p.parseConditional()
		return ast.New(ast.ConditionalExpr, []*token.Token{q, colon}, []*ast.Node{cond, then, els})
	}
	return cond
}

// parseBinary climbs precedence levels at or above floor,
// left-associatively, collecting same-precedence runs under one n-ary
// node per spec.md §4.6's per-kind folder contract (operands in source
// order, n-1 operators as attached tokens).
func (p *Parser) parseBinary(floor int) *ast.Node {
	left := p.parseUnary()
	for {
		info, ok := binOps[p.cur().Kind]
		if !ok || info.prec < floor {
			return left
		}
		kind := info.kind
		prec := info.prec
		var operands []*ast.Node
		var ops []*token.Token
		operands = append(operands, left)
		for {
			info2, ok2 := binOps[p.cur().Kind]
			if !ok2 || info2.prec != prec {
				break
			}
			ops = append(ops, p.advance())
			operands = append(operands, p.parseBinaryOperand(prec))
		}
		left = ast.New(kind, ops, operands)
	}
}

// parseBinaryOperand parses a single operand at the given precedence
// level: everything strictly tighter-binding than prec.
func (p *Parser) parseBinaryOperand(prec int) *ast.Node {
	return p.parseBinary(prec + 1)
}

// parseUnary handles prefix `+ - ! ~ ++ --` (right-associative) before
// falling through to postfix/primary.
func (p *Parser) parseUnary() *ast.Node {
	switch p.cur().Kind {
	case token.Plus, token.Minus, token.Bang, token.Tilde, token.PlusPlus, token.MinusMinus, token.Star, token.Amp:
		op := p.advance()
		operand := p.parseUnary()
		return ast.New(ast.UnaryExpr, []*token.Token{op}, []*ast.Node{operand})
	case token.Keyword:
		if p.atKeyword(token.KwSizeof) {
			return p.parseSizeof()
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parseSizeof() *ast.Node {
	kw := p.advance()
	if p.at(token.LParen) && p.isTypeAhead(1) {
		lparen := p.advance()
		typeToks := p.parseSizeofTypeName()
		rparen := p.match(token.RParen)
		toks := append([]*token.Token{kw, lparen}, typeToks...)
		toks = append(toks, rparen)
		return ast.New(ast.UnaryExpr, toks, nil)
	}
	operand := p.parseUnary()
	return ast.New(ast.UnaryExpr, []*token.Token{kw}, []*ast.Node{operand})
}

// parseSizeofTypeName consumes the type-name form used inside
// sizeof(...): an optional const, the type-introducing token, and — for
// struct and union — the tag identifier that follows it.
// parseTypeSpecifier alone only consumes the struct/union keyword, so
// sizeof(struct Point) would otherwise leave the tag unconsumed and the
// validator with no name to look up in the symbol table.
func (p *Parser) parseSizeofTypeName() []*token.Token {
	var toks []*token.Token
	if p.atKeyword(token.KwConst) {
		toks = append(toks, p.advance())
	}
	typeTok := p.parseTypeSpecifier()
	toks = append(toks, typeTok)
	if typeTok.Kind == token.Keyword && (typeTok.Value.KeyTag == token.KwStruct || typeTok.Value.KeyTag == token.KwUnion) {
		toks = append(toks, p.match(token.Identifier))
	}
	return toks
}

// isTypeAhead reports whether the token k positions ahead starts a
// type (a type keyword, optionally preceded by const), used for the
// cast-vs-paren and sizeof(type)-vs-sizeof(expr) disambiguation.
func (p *Parser) isTypeAhead(k int) bool {
	t := p.peek(k)
	if t.Kind == token.Keyword && t.Value.KeyTag == token.KwConst {
		t = p.peek(k + 1)
	}
	return t.Kind == token.Keyword && token.IsTypeKeyword(t.Value.KeyTag)
}

// parsePostfix handles postfix `++ --`, `. ->`, and array indexing.
// Call sites are recognized earlier, in parsePrimary, via two-token
// look-ahead.
func (p *Parser) parsePostfix() *ast.Node {
	expr := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.PlusPlus, token.MinusMinus:
			op := p.advance()
			expr = ast.New(ast.PostfixExpr, []*token.Token{op}, []*ast.Node{expr})
		case token.Dot, token.Arrow:
			op := p.advance()
			field := p.match(token.Identifier)
			expr = ast.New(ast.BinaryExpr, []*token.Token{op, field}, []*ast.Node{expr})
		case token.LBracket:
			lb := p.advance()
			idx := p.parseExpression()
			rb := p.match(token.RBracket)
			expr = ast.New(ast.BinaryExpr, []*token.Token{lb, rb}, []*ast.Node{expr, idx})
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() *ast.Node {
	t := p.cur()
	switch t.Kind {
	case token.IntLiteral, token.HexLiteral, token.OctalLiteral, token.FloatLiteral, token.CharLiteral, token.StringLiteral:
		p.advance()
		return ast.New(ast.Literal, []*token.Token{t}, nil)
	case token.Identifier:
		if p.peek(1).Kind == token.LParen {
			return p.parseFnCall()
		}
		p.advance()
		return ast.New(ast.IdentifierExpr, []*token.Token{t}, nil)
	case token.LParen:
		return p.parseParenOrCast()
	default:
		p.diags.Addf(diag.Parse, t, "expected expression but found %s", t.Kind)
		placeholder := token.Placeholder(t.Start)
		if !p.at(token.EOF) {
			p.advance()
		}
		return ast.New(ast.Literal, []*token.Token{placeholder}, nil)
	}
}

func (p *Parser) parseFnCall() *ast.Node {
	name := p.advance()
	lparen := p.advance() // '('
	var argToks []*token.Token
	var args []*ast.Node
	for !p.at(token.RParen) && !p.at(token.EOF) {
		args = append(args, p.parseExpression())
		if p.at(token.Comma) {
			argToks = append(argToks, p.advance())
			continue
		}
		break
	}
	rparen := p.match(token.RParen)
	argList := ast.New(ast.FnCallArgList, argToks, args)
	callee := &ast.Node{Kind: ast.IdentifierExpr, Tokens: []*token.Token{name}}
	return ast.New(ast.FnCall, []*token.Token{lparen, rparen}, []*ast.Node{callee, argList})
}

// parseParenOrCast implements spec.md §4.5's disambiguation: a
// parenthesized expression whose contents are a type keyword
// (optionally preceded by const) followed by ')' is a cast; otherwise
// it is a parenthesized primary.
func (p *Parser) parseParenOrCast() *ast.Node {
	lparen := p.advance()
	if p.isTypeAhead(0) && (p.peek(1).Kind == token.RParen || (p.cur().Value.KeyTag == token.KwConst && p.peek(2).Kind == token.RParen)) {
		var toks []*token.Token
		toks = append(toks, lparen)
		if p.atKeyword(token.KwConst) {
			toks = append(toks, p.advance())
		}
		typeTok := p.parseTypeSpecifier()
		toks = append(toks, typeTok)
		toks = append(toks, p.match(token.RParen))
		operand := p.parseUnary()
		return ast.New(ast.TypeCastExpr, toks, []*ast.Node{operand})
	}
	inner := p.parseExpression()
	rparen := p.match(token.RParen)
	return ast.New(ast.ParenExpr, []*token.Token{lparen, rparen}, []*ast.Node{inner})
}
