// Package validator walks a parsed AST and folds constant subtrees,
// reporting semantic diagnostics for invalid operand kinds encountered
// during folding. Grounded on
// _examples/original_source/src/Validator/validator.c for exact
// diagnostic wording and per-operator-kind rules, and on lang/yparse's
// Type/SymbolTable for the sizeof-over-type lookup.
package validator

import (
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/gmofishsauce/wut4/lang/cfront/internal/ast"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/diag"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/symtab"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/token"
)

// litKind is the folder's notion of what a constant value "is", used to
// select the right arithmetic and to drive symtab.SizeofLiteralKind for
// sizeof(expr).
type litKind int

const (
	litNone litKind = iota
	litInt
	litFloat
	litString
)

// value is the folder's internal constant accumulator: either an int64
// or a float64, tagged by kind. Strings only ever appear as
// placeholders ("truthy non-null") and are never carried as payload
// beyond the fold that produces litString.
type value struct {
	kind litKind
	i    int64
	f    float64
}

func (v value) asFloat() float64 {
	if v.kind == litFloat {
		return v.f
	}
	return float64(v.i)
}

// fold carries per-call state: the side list of synthesized tokens
// (spec.md §4.6's ownership note) and the diagnostic list this fold
// contributes to.
type fold struct {
	diags   *diag.List
	synth   []*token.Token
	symbols *symtab.Table
}

// Validate runs constant folding over prog and returns a fresh,
// deep-copied, folded tree plus the accumulated diagnostics. When
// optimize is true and the tree has more than one top-level
// declaration, each is folded concurrently via errgroup and results are
// joined in source order (spec.md §4.6 "optional parallelism");
// otherwise folding proceeds sequentially. The public contract is
// identical in either mode.
func Validate(prog *ast.Node, symbols *symtab.Table, optimize bool) (*ast.Node, *diag.List) {
	if symbols == nil {
		symbols = symtab.New()
	}
	if prog == nil {
		return nil, &diag.List{}
	}
	registerAggregates(prog, symbols)

	children := prog.Children
	if optimize && len(children) > 1 {
		return validateParallel(prog, symbols, children)
	}

	f := &fold{diags: &diag.List{}, symbols: symbols}
	out := make([]*ast.Node, len(children))
	for i, c := range children {
		out[i], _ = f.foldNode(c)
	}
	return ast.New(prog.Kind, prog.Tokens, out), f.diags
}

func validateParallel(prog *ast.Node, symbols *symtab.Table, children []*ast.Node) (*ast.Node, *diag.List) {
	results := make([]*ast.Node, len(children))
	folds := make([]*fold, len(children))
	var g errgroup.Group
	for i, c := range children {
		i, c := i, c
		folds[i] = &fold{diags: &diag.List{}, symbols: symbols}
		g.Go(func() error {
			results[i], _ = folds[i].foldNode(c)
			return nil
		})
	}
	_ = g.Wait() // workers never return an error; diagnostics are the channel

	merged := &diag.List{}
	for _, f := range folds {
		merged.Extend(f.diags)
	}
	return ast.New(prog.Kind, prog.Tokens, results), merged
}

// registerAggregates walks every top-level struct/union declaration and
// registers its field layout in symbols before any folding begins, so
// sizeof(struct X)/sizeof(union X) can resolve against the registered
// size instead of falling back to -1 (spec.md §4.6's sizeof-over-type
// lookup; SPEC_FULL.md §4.7's sizeof-of-struct carried into symtab).
func registerAggregates(prog *ast.Node, symbols *symtab.Table) {
	for _, decl := range prog.Children {
		switch decl.Kind {
		case ast.Struct:
			registerAggregate(decl, symbols.DefineStruct)
		case ast.Union:
			registerAggregate(decl, symbols.DefineUnion)
		}
	}
}

func registerAggregate(decl *ast.Node, define func(string, []symtab.FieldDef) (*symtab.StructDef, error)) {
	if len(decl.Tokens) < 2 || len(decl.Children) == 0 {
		return
	}
	name := decl.Tokens[1].Text
	_, _ = define(name, memberFields(decl.Children[0]))
}

// memberFields reads a MemberList node's IdentifierExpr children back
// into FieldDef values. Each member's Tokens are [name, typeTok,
// ('[' lenTok ']')?, ';'] per parseMemberList.
func memberFields(memberList *ast.Node) []symtab.FieldDef {
	fields := make([]symtab.FieldDef, 0, len(memberList.Children))
	for _, m := range memberList.Children {
		if len(m.Tokens) < 2 {
			continue
		}
		arrayLen := 0
		if len(m.Tokens) >= 5 && m.Tokens[2].Kind == token.LBracket {
			arrayLen, _ = strconv.Atoi(m.Tokens[3].Text)
		}
		fields = append(fields, symtab.FieldDef{
			Name:     m.Tokens[0].Text,
			Type:     keywordToType(m.Tokens[1].Value.KeyTag),
			ArrayLen: arrayLen,
		})
	}
	return fields
}

// foldNode dispatches on node kind and returns the (possibly new) node
// plus whether it is constant. Non-expression nodes (declarations,
// statements) are deep-copied with their children recursively folded,
// since a constant subtree can appear nested anywhere in the tree.
func (f *fold) foldNode(n *ast.Node) (*ast.Node, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Kind {
	case ast.Literal:
		return f.foldLiteral(n)
	case ast.IdentifierExpr:
		return f.foldIdentifier(n)
	case ast.ParenExpr:
		return f.foldParen(n)
	case ast.PostfixExpr:
		return f.foldPostfix(n)
	case ast.UnaryExpr:
		return f.foldUnary(n)
	case ast.TypeCastExpr:
		return f.foldCast(n)
	case ast.ConditionalExpr:
		return f.foldConditional(n)
	case ast.LogicalOrExpr, ast.LogicalAndExpr,
		ast.BitwiseOrExpr, ast.BitwiseXorExpr, ast.BitwiseAndExpr,
		ast.AdditiveExpr, ast.MultiplicativeExpr:
		return f.foldGreedyRun(n)
	case ast.EqualityExpr, ast.RelationalExpr, ast.ShiftExpr:
		return f.foldLeadingPrefix(n)
	default:
		return f.foldGeneric(n), false
	}
}

// foldGeneric recursively folds every child of a non-expression node
// (declarations, statements, param/arg lists) without itself
// participating in constant folding.
func (f *fold) foldGeneric(n *ast.Node) *ast.Node {
	children := make([]*ast.Node, len(n.Children))
	for i, c := range n.Children {
		children[i], _ = f.foldNode(c)
	}
	toks := make([]*token.Token, len(n.Tokens))
	for i, t := range n.Tokens {
		toks[i] = t.Copy()
	}
	return &ast.Node{Kind: n.Kind, Tokens: toks, Children: children}
}

func (f *fold) foldLiteral(n *ast.Node) (*ast.Node, bool) {
	return n.Copy(), true
}

func (f *fold) foldIdentifier(n *ast.Node) (*ast.Node, bool) {
	return f.foldGeneric(n), false
}

func (f *fold) foldPostfix(n *ast.Node) (*ast.Node, bool) {
	return f.foldGeneric(n), false
}

// foldParen unwraps a parenthesized primary and recurses into its
// inner expression, propagating constant-ness (spec.md §4.6's "Primary
// ... otherwise unwrap and recurse"). A folded constant inner
// expression collapses the parens away entirely; a non-constant one
// keeps the ParenExpr wrapper around the folded child.
func (f *fold) foldParen(n *ast.Node) (*ast.Node, bool) {
	inner, isConst := f.foldNode(n.Children[0])
	if isConst {
		return inner, true
	}
	return ast.New(ast.ParenExpr, copyTokensFrom(n.Tokens), []*ast.Node{inner}), false
}

// foldCast is a no-op passthrough: the source's foldCastExpression
// never narrows the operand's value, and whether it should is left an
// open question (spec.md §9). cfront preserves that behavior rather
// than guessing.
func (f *fold) foldCast(n *ast.Node) (*ast.Node, bool) {
	return f.foldGeneric(n), false
}

// literalValue extracts the folder's internal value/kind from a
// Literal node produced either by the lexer or by a previous fold.
func literalValue(n *ast.Node) (value, litKind) {
	if len(n.Tokens) == 0 {
		return value{}, litNone
	}
	t := n.Tokens[0]
	switch t.Kind {
	case token.IntLiteral, token.HexLiteral, token.OctalLiteral:
		return value{kind: litInt, i: int64(t.Value.Int)}, litInt
	case token.CharLiteral:
		return value{kind: litInt, i: int64(t.Value.Char)}, litInt
	case token.FloatLiteral:
		return value{kind: litFloat, f: t.Value.Float}, litFloat
	case token.StringLiteral:
		return value{kind: litString}, litString
	default:
		return value{}, litNone
	}
}

func synthInt(v int64) *token.Token {
	return token.NewInt(token.IntLiteral, "", 0, int32(v))
}

func synthFloat(v float64) *token.Token {
	return token.NewFloat("", 0, v)
}

func (f *fold) synthLiteral(tok *token.Token) *ast.Node {
	f.synth = append(f.synth, tok)
	return ast.New(ast.Literal, []*token.Token{tok}, nil)
}

// --- unary ---

func (f *fold) foldUnary(n *ast.Node) (*ast.Node, bool) {
	op := n.Tokens[0]
	if op.Kind == token.Keyword && op.Value.KeyTag == token.KwSizeof {
		return f.foldSizeof(n)
	}

	switch op.Kind {
	case token.Amp, token.Star, token.PlusPlus, token.MinusMinus:
		// Address-of, dereference, increment, decrement always
		// produce a non-constant result (spec.md §4.6).
		if len(n.Children) == 1 {
			child, childConst := f.foldNode(n.Children[0])
			if childConst {
				f.diags.Add(diag.New(diag.Validate, "Invalid operand to unary operator", n.Tokens[0]))
			}
			return ast.New(ast.UnaryExpr, []*token.Token{op.Copy()}, []*ast.Node{child}), false
		}
		f.diags.Add(diag.New(diag.Validate, "Invalid operand to unary operator", n.Tokens[0]))
		return f.foldGeneric(n), false
	}

	operand, isConst := f.foldNode(n.Children[0])
	if !isConst {
		return ast.New(ast.UnaryExpr, []*token.Token{op.Copy()}, []*ast.Node{operand}), false
	}

	v, kind := literalValue(operand)
	switch op.Kind {
	case token.Plus:
		if kind == litString {
			f.diags.Add(diag.New(diag.Validate, "Invalid operand to unary + ('string')", operand.Tokens[0]))
			return ast.New(ast.UnaryExpr, []*token.Token{op.Copy()}, []*ast.Node{operand}), false
		}
		return operand, true
	case token.Minus:
		if kind == litString {
			f.diags.Add(diag.New(diag.Validate, "Invalid operand to unary - ('string')", operand.Tokens[0]))
			return ast.New(ast.UnaryExpr, []*token.Token{op.Copy()}, []*ast.Node{operand}), false
		}
		if kind == litFloat {
			return f.synthLiteral(synthFloat(-v.f)), true
		}
		return f.synthLiteral(synthInt(-v.i)), true
	case token.Tilde:
		if kind == litFloat {
			f.diags.Add(diag.New(diag.Validate, "Invalid operand to unary ~ ('float')", operand.Tokens[0]))
			return ast.New(ast.UnaryExpr, []*token.Token{op.Copy()}, []*ast.Node{operand}), false
		}
		if kind == litString {
			f.diags.Add(diag.New(diag.Validate, "Invalid operand to unary ~ ('string')", operand.Tokens[0]))
			return ast.New(ast.UnaryExpr, []*token.Token{op.Copy()}, []*ast.Node{operand}), false
		}
		return f.synthLiteral(synthInt(^v.i)), true
	case token.Bang:
		truth := truthy(v, kind)
		if truth {
			return f.synthLiteral(synthInt(0)), true
		}
		return f.synthLiteral(synthInt(1)), true
	default:
		return ast.New(ast.UnaryExpr, []*token.Token{op.Copy()}, []*ast.Node{operand}), false
	}
}

func truthy(v value, kind litKind) bool {
	switch kind {
	case litString:
		return true
	case litFloat:
		return v.f != 0
	default:
		return v.i != 0
	}
}

// foldSizeof handles both sizeof(expr) and sizeof(type). A type-form
// sizeof carries no children (the type token was attached directly by
// the parser); an expression-form sizeof carries one child.
func (f *fold) foldSizeof(n *ast.Node) (*ast.Node, bool) {
	if len(n.Children) == 0 {
		// sizeof(type): tokens are [sizeof, '(', typeTok, ')'], with an
		// optional const before typeTok, or [sizeof, '(', struct|union,
		// tag, ')'] — either way the token before ')' names the type.
		typeTok := n.Tokens[len(n.Tokens)-2]
		sz := sizeofTypeKeyword(f.symbols, typeTok)
		return f.synthLiteral(synthInt(int64(sz))), true
	}
	operand, _ := f.foldNode(n.Children[0])
	_, kind := literalValue(operand)
	var litk symtab.LiteralKind
	switch kind {
	case litFloat:
		litk = symtab.LiteralFloat
	case litString:
		litk = symtab.LiteralString
	default:
		litk = symtab.LiteralInt
	}
	if operand.Kind == ast.Literal && len(operand.Tokens) > 0 && operand.Tokens[0].Kind == token.CharLiteral {
		litk = symtab.LiteralChar
	}
	sz := symtab.SizeofLiteralKind(litk)
	return f.synthLiteral(synthInt(int64(sz))), true
}

func sizeofTypeKeyword(symbols *symtab.Table, typeTok *token.Token) int {
	if typeTok.Kind != token.Keyword {
		if def, ok := symbols.LookupStruct(typeTok.Text); ok {
			return def.Size
		}
		if def, ok := symbols.LookupUnion(typeTok.Text); ok {
			return def.Size
		}
		return -1
	}
	t := keywordToType(typeTok.Value.KeyTag)
	return symbols.SizeofType(t)
}

func keywordToType(kw token.Keyword) *symtab.Type {
	switch kw {
	case token.KwVoid:
		return symtab.Void
	case token.KwChar:
		return symtab.Char
	case token.KwShort:
		return symtab.Short
	case token.KwInt:
		return symtab.Int
	case token.KwLong:
		return symtab.Long
	case token.KwFloat:
		return symtab.Float
	case token.KwDouble:
		return symtab.Double
	case token.KwString:
		return symtab.CharPointer
	default:
		return symtab.Int
	}
}

// --- conditional ---

func (f *fold) foldConditional(n *ast.Node) (*ast.Node, bool) {
	cond, condConst := f.foldNode(n.Children[0])
	then, thenConst := f.foldNode(n.Children[1])
	els, elsConst := f.foldNode(n.Children[2])

	if condConst {
		v, kind := literalValue(cond)
		if truthy(v, kind) {
			return then, thenConst
		}
		return els, elsConst
	}
	toks := make([]*token.Token, len(n.Tokens))
	for i, t := range n.Tokens {
		toks[i] = t.Copy()
	}
	return ast.New(ast.ConditionalExpr, toks, []*ast.Node{cond, then, els}), false
}

// --- greedy-run folders: Logical{Or,And}, Bitwise{Or,Xor,And}, Additive, Multiplicative ---

// operand pairs a folded child with its constant-ness, to drive the
// greedy run-collapsing algorithm shared by several operator families.
type operand struct {
	node    *ast.Node
	isConst bool
}

func (f *fold) foldGreedyRun(n *ast.Node) (*ast.Node, bool) {
	operands := make([]operand, len(n.Children))
	for i, c := range n.Children {
		node, isConst := f.foldNode(c)
		operands[i] = operand{node: node, isConst: isConst}
	}

	var outOperands []*ast.Node
	var outOps []*token.Token
	i := 0
	allConstant := true
	for i < len(operands) {
		if !operands[i].isConst {
			outOperands = append(outOperands, operands[i].node)
			if i > 0 {
				outOps = append(outOps, n.Tokens[i-1].Copy())
			}
			allConstant = false
			i++
			continue
		}
		// collect a maximal constant run starting at i
		runEnd := i + 1
		for runEnd < len(operands) && operands[runEnd].isConst {
			runEnd++
		}
		folded, ok := f.reduceRun(n.Kind, operands[i:runEnd], n.Tokens[i:maxInt(i, runEnd-1)])
		if !ok {
			allConstant = false
		}
		outOperands = append(outOperands, folded)
		if i > 0 {
			outOps = append(outOps, n.Tokens[i-1].Copy())
		}
		if !ok {
			allConstant = false
		}
		i = runEnd
	}

	if len(outOperands) == 1 && allConstant {
		return outOperands[0], true
	}
	return ast.New(n.Kind, outOps, outOperands), false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// reduceRun folds a maximal run of constant operands (len(run) >= 1)
// joined by the n-1 operator tokens in ops, returning the folded
// literal node and whether the fold succeeded without a diagnostic
// (false disables further upward folding of this run, matching the
// source's isConstant-cleared-on-failure rule).
func (f *fold) reduceRun(kind ast.Kind, run []operand, ops []*token.Token) (*ast.Node, bool) {
	if len(run) == 1 {
		return run[0].node, true
	}
	acc, accKind := literalValue(run[0].node)
	ok := true
	for idx := 1; idx < len(run); idx++ {
		opTok := ops[idx-1]
		rhs, rhsKind := literalValue(run[idx].node)
		var fine bool
		acc, accKind, fine = f.applyBinary(kind, opTok, acc, accKind, rhs, rhsKind)
		if !fine {
			ok = false
		}
	}
	if !ok {
		// Leave as an unfolded n-ary node of the same shape so the
		// diagnostic is recorded but the tree stays well-formed.
		return ast.New(kind, copyTokens(ops), nodesOf(run)), false
	}
	return f.literalNode(accKind, acc), true
}

func copyTokens(toks []*token.Token) []*token.Token {
	out := make([]*token.Token, len(toks))
	for i, t := range toks {
		out[i] = t.Copy()
	}
	return out
}

func nodesOf(run []operand) []*ast.Node {
	out := make([]*ast.Node, len(run))
	for i, o := range run {
		out[i] = o.node
	}
	return out
}

func (f *fold) literalNode(kind litKind, v value) *ast.Node {
	if kind == litFloat {
		return f.synthLiteral(synthFloat(v.f))
	}
	return f.synthLiteral(synthInt(v.i))
}

// applyBinary evaluates one binary step of the fold, applying the
// operand-kind rules of spec.md §4.6. It returns the resulting value,
// its kind, and false if a diagnostic was raised (the fold must abort
// and the run is left unfolded).
func (f *fold) applyBinary(nodeKind ast.Kind, opTok *token.Token, lhs value, lhsKind litKind, rhs value, rhsKind litKind) (value, litKind, bool) {
	switch opTok.Kind {
	case token.OrOr:
		return boolValue(truthy(lhs, lhsKind) || truthy(rhs, rhsKind)), litInt, true
	case token.AndAnd:
		return boolValue(truthy(lhs, lhsKind) && truthy(rhs, rhsKind)), litInt, true
	case token.Pipe, token.Caret, token.Amp:
		return f.applyBitwise(opTok, lhs, lhsKind, rhs, rhsKind)
	case token.Plus:
		return f.applyAdditive(opTok, lhs, lhsKind, rhs, rhsKind, true)
	case token.Minus:
		return f.applyAdditive(opTok, lhs, lhsKind, rhs, rhsKind, false)
	case token.Star, token.Slash, token.Percent:
		return f.applyMultiplicative(opTok, lhs, lhsKind, rhs, rhsKind)
	default:
		return value{}, litInt, false
	}
}

func boolValue(b bool) value {
	if b {
		return value{kind: litInt, i: 1}
	}
	return value{kind: litInt, i: 0}
}

func opSymbol(k token.Kind) string {
	switch k {
	case token.Pipe:
		return "|"
	case token.Caret:
		return "^"
	case token.Amp:
		return "&"
	case token.Shl:
		return "<<"
	case token.Shr:
		return ">>"
	case token.Star:
		return "*"
	case token.Slash:
		return "/"
	case token.Percent:
		return "%"
	default:
		return k.String()
	}
}

func (f *fold) applyBitwise(opTok *token.Token, lhs value, lhsKind litKind, rhs value, rhsKind litKind) (value, litKind, bool) {
	if lhsKind == litString {
		f.diags.Add(diag.New(diag.Validate, "Invalid operand to binary "+opSymbol(opTok.Kind)+" ('string')", opTok))
		return value{}, litInt, false
	}
	if rhsKind == litString {
		f.diags.Add(diag.New(diag.Validate, "Invalid operand to binary "+opSymbol(opTok.Kind)+" ('string')", opTok))
		return value{}, litInt, false
	}
	if lhsKind == litFloat {
		f.diags.Add(diag.New(diag.Validate, "Invalid operand to binary "+opSymbol(opTok.Kind)+" ('float')", opTok))
		return value{}, litInt, false
	}
	if rhsKind == litFloat {
		f.diags.Add(diag.New(diag.Validate, "Invalid operand to binary "+opSymbol(opTok.Kind)+" ('float')", opTok))
		return value{}, litInt, false
	}
	switch opTok.Kind {
	case token.Pipe:
		return value{kind: litInt, i: lhs.i | rhs.i}, litInt, true
	case token.Caret:
		return value{kind: litInt, i: lhs.i ^ rhs.i}, litInt, true
	default:
		return value{kind: litInt, i: lhs.i & rhs.i}, litInt, true
	}
}

func (f *fold) applyAdditive(opTok *token.Token, lhs value, lhsKind litKind, rhs value, rhsKind litKind, isPlus bool) (value, litKind, bool) {
	// Strings contribute 1 (non-null pointer) in additive contexts.
	lv, lk := normalizeAdditive(lhs, lhsKind)
	rv, rk := normalizeAdditive(rhs, rhsKind)
	if lk == litFloat || rk == litFloat {
		if isPlus {
			return value{kind: litFloat, f: lv.asFloat() + rv.asFloat()}, litFloat, true
		}
		return value{kind: litFloat, f: lv.asFloat() - rv.asFloat()}, litFloat, true
	}
	if isPlus {
		return value{kind: litInt, i: lv.i + rv.i}, litInt, true
	}
	return value{kind: litInt, i: lv.i - rv.i}, litInt, true
}

func normalizeAdditive(v value, kind litKind) (value, litKind) {
	if kind == litString {
		return value{kind: litInt, i: 1}, litInt
	}
	return v, kind
}

func (f *fold) applyMultiplicative(opTok *token.Token, lhs value, lhsKind litKind, rhs value, rhsKind litKind) (value, litKind, bool) {
	if lhsKind == litString {
		f.diags.Add(diag.New(diag.Validate, "Invalid operand to binary "+opSymbol(opTok.Kind)+" ('string')", opTok))
		return value{}, litInt, false
	}
	if rhsKind == litString {
		f.diags.Add(diag.New(diag.Validate, "Invalid operand to binary "+opSymbol(opTok.Kind)+" ('string')", opTok))
		return value{}, litInt, false
	}

	switch opTok.Kind {
	case token.Star:
		if lhsKind == litFloat || rhsKind == litFloat {
			return value{kind: litFloat, f: lhs.asFloat() * rhs.asFloat()}, litFloat, true
		}
		return value{kind: litInt, i: lhs.i * rhs.i}, litInt, true
	case token.Slash:
		if lhsKind == litFloat || rhsKind == litFloat {
			if rhs.asFloat() == 0 {
				f.diags.Add(diag.New(diag.Validate, "Division by zero.", opTok))
				return value{}, litInt, false
			}
			return value{kind: litFloat, f: lhs.asFloat() / rhs.asFloat()}, litFloat, true
		}
		if rhs.i == 0 {
			f.diags.Add(diag.New(diag.Validate, "Division by zero.", opTok))
			return value{}, litInt, false
		}
		return value{kind: litInt, i: lhs.i / rhs.i}, litInt, true
	default: // Percent
		if lhsKind == litFloat || rhsKind == litFloat {
			f.diags.Add(diag.New(diag.Validate, "Invalid operand to binary % ('float')", opTok))
			return value{}, litInt, false
		}
		if rhs.i == 0 {
			f.diags.Add(diag.New(diag.Validate, "Division by zero.", opTok))
			return value{}, litInt, false
		}
		return value{kind: litInt, i: lhs.i % rhs.i}, litInt, true
	}
}

// --- leading-prefix folders: Equality, Relational, Shift ---

// foldLeadingPrefix folds only the leading run of constant operands;
// once a non-constant operand is hit, the remainder (operators and
// operands) is left intact, matching the non-associative C semantics
// of these operator families (spec.md §4.6).
func (f *fold) foldLeadingPrefix(n *ast.Node) (*ast.Node, bool) {
	operands := make([]operand, len(n.Children))
	for i, c := range n.Children {
		node, isConst := f.foldNode(c)
		operands[i] = operand{node: node, isConst: isConst}
	}

	if !operands[0].isConst {
		return ast.New(n.Kind, copyTokensFrom(n.Tokens), nodesOf(operands)), false
	}

	acc, accKind := literalValue(operands[0].node)
	prefixEnd := 0
	ok := true
	for prefixEnd+1 < len(operands) && operands[prefixEnd+1].isConst && ok {
		opTok := n.Tokens[prefixEnd]
		rhs, rhsKind := literalValue(operands[prefixEnd+1].node)
		next, nextKind, fine := f.applyNonAssoc(n.Kind, opTok, acc, accKind, rhs, rhsKind)
		if !fine {
			ok = false
			break
		}
		acc, accKind = next, nextKind
		prefixEnd++
	}

	folded := f.literalNode(accKind, acc)
	if prefixEnd == len(operands)-1 && ok {
		return folded, true
	}

	outOperands := []*ast.Node{folded}
	outOperands = append(outOperands, nodesOf(operands[prefixEnd+1:])...)
	outOps := copyTokensFrom(n.Tokens[prefixEnd:])
	return ast.New(n.Kind, outOps, outOperands), false
}

func copyTokensFrom(toks []*token.Token) []*token.Token {
	out := make([]*token.Token, len(toks))
	for i, t := range toks {
		out[i] = t.Copy()
	}
	return out
}

func (f *fold) applyNonAssoc(kind ast.Kind, opTok *token.Token, lhs value, lhsKind litKind, rhs value, rhsKind litKind) (value, litKind, bool) {
	switch kind {
	case ast.ShiftExpr:
		if lhsKind == litString {
			f.diags.Add(diag.New(diag.Validate, "Invalid operand to binary "+opSymbol(opTok.Kind)+" ('string')", opTok))
			return value{}, litInt, false
		}
		if rhsKind == litString {
			f.diags.Add(diag.New(diag.Validate, "Invalid operand to binary "+opSymbol(opTok.Kind)+" ('string')", opTok))
			return value{}, litInt, false
		}
		if lhsKind == litFloat {
			f.diags.Add(diag.New(diag.Validate, "Invalid operand to binary "+opSymbol(opTok.Kind)+" ('float')", opTok))
			return value{}, litInt, false
		}
		if rhsKind == litFloat {
			f.diags.Add(diag.New(diag.Validate, "Invalid operand to binary "+opSymbol(opTok.Kind)+" ('float')", opTok))
			return value{}, litInt, false
		}
		if opTok.Kind == token.Shl {
			return value{kind: litInt, i: lhs.i << uint(rhs.i)}, litInt, true
		}
		return value{kind: litInt, i: lhs.i >> uint(rhs.i)}, litInt, true
	case ast.RelationalExpr:
		return f.compareNonAssoc(opTok, lhs, lhsKind, rhs, rhsKind, false), litInt, true
	default: // EqualityExpr
		return f.compareNonAssoc(opTok, lhs, lhsKind, rhs, rhsKind, true), litInt, true
	}
}

func (f *fold) compareNonAssoc(opTok *token.Token, lhs value, lhsKind litKind, rhs value, rhsKind litKind, equality bool) value {
	lv, lk := normalizeAdditive(lhs, lhsKind)
	rv, rk := normalizeAdditive(rhs, rhsKind)
	var cmp int
	if lk == litFloat || rk == litFloat {
		a, b := lv.asFloat(), rv.asFloat()
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		default:
			cmp = 0
		}
	} else {
		switch {
		case lv.i < rv.i:
			cmp = -1
		case lv.i > rv.i:
			cmp = 1
		default:
			cmp = 0
		}
	}
	var result bool
	if equality {
		switch opTok.Kind {
		case token.EqualEqual:
			result = cmp == 0
		default:
			result = cmp != 0
		}
	} else {
		switch opTok.Kind {
		case token.Less:
			result = cmp < 0
		case token.Greater:
			result = cmp > 0
		case token.LessEqual:
			result = cmp <= 0
		default:
			result = cmp >= 0
		}
	}
	return boolValue(result)
}
