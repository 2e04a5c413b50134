// Package ast defines the uniform n-ary AST node shared by the parser
// and validator. Every node kind uses the same shape (kind, attached
// tokens, ordered children); interpretation of the token and child lists
// is per-kind and fixed. This subsumes the fixed 3-arity node shape one
// early draft of the source used (spec.md §9).
package ast

import (
	"fmt"
	"strings"

	"github.com/gmofishsauce/wut4/lang/cfront/internal/token"
)

// Kind is the closed set of AST node kinds.
type Kind int

const (
	Invalid Kind = iota

	Program
	GlobalVarDecl
	FnDecl
	FnDef
	Enum
	Struct
	Union
	ParamList
	EnumList
	MemberList
	LabeledStmt
	ExprStmt
	ReturnStmt
	BreakStmt
	ContinueStmt
	GotoStmt
	CompoundStmt
	LocalVarDecl
	ForStmt
	WhileStmt
	DoStmt
	IfStmt
	SwitchStmt
	SwitchBody
	Literal
	BinaryExpr
	UnaryExpr
	IdentifierExpr
	ParenExpr
	TypeCastExpr
	AssignmentExpr
	FnCall
	FnCallArgList

	// Folder-internal precedence nodes. The parser's precedence climb
	// emits ConditionalExpr, PostfixExpr and the binary-operator kinds
	// LogicalOrExpr through MultiplicativeExpr; the validator's per-kind
	// folders match on them, and a partially folded node keeps its kind.
	// ConstantExpr, CastExpr and PrimaryExpr are not produced by the
	// parser.
	ConstantExpr
	ConditionalExpr
	LogicalOrExpr
	LogicalAndExpr
	BitwiseOrExpr
	BitwiseXorExpr
	BitwiseAndExpr
	EqualityExpr
	RelationalExpr
	ShiftExpr
	AdditiveExpr
	MultiplicativeExpr
	CastExpr
	PostfixExpr
	PrimaryExpr
)

var kindNames = map[Kind]string{
	Invalid: "Invalid",

	Program: "Program", GlobalVarDecl: "GlobalVarDecl", FnDecl: "FnDecl",
	FnDef: "FnDef", Enum: "Enum", Struct: "Struct", Union: "Union",
	ParamList: "ParamList", EnumList: "EnumList", MemberList: "MemberList",
	LabeledStmt: "LabeledStmt", ExprStmt: "ExprStmt", ReturnStmt: "ReturnStmt",
	BreakStmt: "BreakStmt", ContinueStmt: "ContinueStmt", GotoStmt: "GotoStmt",
	CompoundStmt: "CompoundStmt", LocalVarDecl: "LocalVarDecl", ForStmt: "ForStmt",
	WhileStmt: "WhileStmt", DoStmt: "DoStmt", IfStmt: "IfStmt",
	SwitchStmt: "SwitchStmt", SwitchBody: "SwitchBody", Literal: "Literal",
	BinaryExpr: "BinaryExpr", UnaryExpr: "UnaryExpr", IdentifierExpr: "IdentifierExpr",
	ParenExpr: "ParenExpr", TypeCastExpr: "TypeCastExpr", AssignmentExpr: "AssignmentExpr",
	FnCall: "FnCall", FnCallArgList: "FnCallArgList",

	ConstantExpr: "ConstantExpr", ConditionalExpr: "ConditionalExpr",
	LogicalOrExpr: "LogicalOrExpr", LogicalAndExpr: "LogicalAndExpr",
	BitwiseOrExpr: "BitwiseOrExpr", BitwiseXorExpr: "BitwiseXorExpr", BitwiseAndExpr: "BitwiseAndExpr",
	EqualityExpr: "EqualityExpr", RelationalExpr: "RelationalExpr", ShiftExpr: "ShiftExpr",
	AdditiveExpr: "AdditiveExpr", MultiplicativeExpr: "MultiplicativeExpr",
	CastExpr: "CastExpr", PostfixExpr: "PostfixExpr", PrimaryExpr: "PrimaryExpr",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is the uniform AST node. Tokens holds operator/delimiter/keyword
// tokens consumed by the production but not themselves children;
// Children holds the ordered sub-nodes. Interpretation of both lists is
// fixed per Kind (see package doc comments on the parser's productions).
type Node struct {
	Kind     Kind
	Tokens   []*token.Token
	Children []*Node
}

// New constructs a node. tokens and children are copied into fresh
// slices the node owns; the caller's slices are left untouched.
func New(kind Kind, tokens []*token.Token, children []*Node) *Node {
	n := &Node{Kind: kind}
	if len(tokens) > 0 {
		n.Tokens = append(n.Tokens, tokens...)
	}
	if len(children) > 0 {
		n.Children = append(n.Children, children...)
	}
	return n
}

// Copy returns a deep copy of the subtree rooted at n: every child is
// itself deep-copied, and every token is deep-copied (tokens are
// immutable, so a token value-copy is sufficient, but we copy the
// pointer's target rather than alias it so trees can be disposed
// independently per spec.md §3 invariant 2).
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{Kind: n.Kind}
	if len(n.Tokens) > 0 {
		cp.Tokens = make([]*token.Token, len(n.Tokens))
		for i, t := range n.Tokens {
			cp.Tokens[i] = t.Copy()
		}
	}
	if len(n.Children) > 0 {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Copy()
		}
	}
	return cp
}

// Print renders an indented view of the subtree for debugging, in the
// style of the teacher's OutputWriter: two-space indents per depth
// level, one line per node, tokens inlined after the kind. Depth is
// shown by indentation only; no spine or branch characters are drawn.
func (n *Node) Print() string {
	var b strings.Builder
	n.print(&b, 0)
	return b.String()
}

func (n *Node) print(b *strings.Builder, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind.String())
	for _, t := range n.Tokens {
		fmt.Fprintf(b, " %s", t.Text)
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.print(b, depth+1)
	}
}
