// Copyright (C) 2024 the toz3-go authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package ast

import "math/big"

// Expression is implemented by every node that produces a value.
type Expression interface {
	Node
	exprMarker()
}

// Statement is implemented by every node that mutates the environment.
type Statement interface {
	Node
	stmtMarker()
}

// Declaration is implemented by every top-level or locally-declared
// callable or table (spec.md §3's Declaration and Table variants wrap
// these by reference).
type Declaration interface {
	Node
	DeclName() string
}

// UnaryOp enumerates the unary operators of spec.md §4.1.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpBitNot
	OpLNot
)

// BinaryOp enumerates the binary operators of spec.md §4.1.
type BinaryOp int

const (
	OpMul BinaryOp = iota
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpAddSat
	OpSubSat
	OpShl
	OpShr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpBAnd
	OpBOr
	OpBXor
	OpLAnd
	OpLOr
	OpConcat
)

// base carries the location every node embeds.
type base struct {
	At Location
}

func (b base) Loc() Location { return b.At }

// --- expressions ---

// IntLit is an integer literal. If Typ is nil the literal is an
// arbitrary-precision IntLiteral; otherwise Typ must be a *BitsType and the
// literal is evaluated directly as a Bitvector of that width.
type IntLit struct {
	base
	Val *big.Int
	Typ Type
}

func (*IntLit) exprMarker() {}

// BoolLit is a boolean literal.
type BoolLit struct {
	base
	Val bool
}

func (*BoolLit) exprMarker() {}

// PathExpr is a bare variable reference.
type PathExpr struct {
	base
	Name string
}

func (*PathExpr) exprMarker() {}

// Member is field/method access: Obj.Field.
type Member struct {
	base
	Obj   Expression
	Field string
}

func (*Member) exprMarker() {}

// Unary is a unary operator applied to X.
type Unary struct {
	base
	Op UnaryOp
	X  Expression
}

func (*Unary) exprMarker() {}

// Binary is a binary operator applied to X and Y.
type Binary struct {
	base
	Op   BinaryOp
	X, Y Expression
}

func (*Binary) exprMarker() {}

// Mux is the ternary conditional expression `Cond ? Then : Else`.
type Mux struct {
	base
	Cond, Then, Else Expression
}

func (*Mux) exprMarker() {}

// Cast casts X to Dest.
type Cast struct {
	base
	Dest Type
	X    Expression
}

func (*Cast) exprMarker() {}

// MethodCall invokes a named method/function/action/table-apply, optionally
// on a receiver object (Obj is nil for free function calls).
type MethodCall struct {
	base
	Obj    Expression
	Method string
	Args   []Expression
}

func (*MethodCall) exprMarker() {}

// ListExpr is a tuple/list literal.
type ListExpr struct {
	base
	Elems []Expression
	Typ   Type
}

func (*ListExpr) exprMarker() {}

// --- statements ---

// Block is a sequence of statements evaluated in a fresh scope.
type Block struct {
	base
	Stmts []Statement
}

func (*Block) stmtMarker() {}

// VarDeclStmt declares a new local variable, optionally initialized.
type VarDeclStmt struct {
	base
	Name string
	Typ  Type
	Init Expression
}

func (*VarDeclStmt) stmtMarker() {}

// Assignment writes Value into the location addressed by Target.
type Assignment struct {
	base
	Target Expression
	Value  Expression
}

func (*Assignment) stmtMarker() {}

// If is a two-armed conditional; Else may be nil.
type If struct {
	base
	Cond Expression
	Then Statement
	Else Statement
}

func (*If) stmtMarker() {}

// Return is an early-return statement; Value may be nil for a void return.
type Return struct {
	base
	Value Expression
}

func (*Return) stmtMarker() {}

// Exit terminates the entire entry-point evaluation at this path.
type Exit struct {
	base
}

func (*Exit) stmtMarker() {}

// ExprStmt evaluates Expr for its side effects (table applies, void calls).
type ExprStmt struct {
	base
	Expr Expression
}

func (*ExprStmt) stmtMarker() {}

// --- declarations ---

// Dir is a parameter's passing direction.
type Dir int

const (
	DirIn Dir = iota
	DirOut
	DirInOut
)

// Parameter is one formal parameter of a callable.
type Parameter struct {
	Name string
	Typ  Type
	Dir  Dir
}

// FunctionDecl is a P4 function (may return a value).
type FunctionDecl struct {
	base
	Name       string
	Params     []*Parameter
	ReturnType Type
	Body       *Block
}

func (d *FunctionDecl) DeclName() string { return d.Name }

// ActionDecl is a P4 action (void, copy-in/copy-out only).
type ActionDecl struct {
	base
	Name   string
	Params []*Parameter
	Body   *Block
}

func (d *ActionDecl) DeclName() string { return d.Name }

// KeyElement is one match key of a table.
type KeyElement struct {
	Expr      Expression
	MatchKind string
}

// TableDecl declares a table: a non-deterministic choice among its actions
// guarded by whether the key lookup hits (spec.md §4.3).
type TableDecl struct {
	base
	Name    string
	Keys    []*KeyElement
	Actions []*MethodCall
	Default *MethodCall
}

func (d *TableDecl) DeclName() string { return d.Name }

// EntryKind distinguishes the two externally observable entry points.
type EntryKind int

const (
	EntryParser EntryKind = iota
	EntryControl
)

// EntryDecl is a parser or control block: an externally observable program
// point whose terminal scope is captured into a ControlState (spec.md §1,
// §6).
type EntryDecl struct {
	base
	Name   string
	Kind   EntryKind
	Params []*Parameter
	Body   *Block
}

func (d *EntryDecl) DeclName() string { return d.Name }
