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

// base is unexported so that no package outside ast can forge a Node by
// embedding it directly in a composite literal (the teacher's expr.Node
// family has the same property via its private fields). Every node needs a
// constructor here instead, mirroring expr.NewArith/expr.NewUnaryArith: a
// decoder building fixture programs from a serialized format (cmd/toz3) or
// a test building a tree by hand always goes through one of these.

func NewIntLit(loc Location, val *big.Int, typ Type) *IntLit {
	return &IntLit{base: base{At: loc}, Val: val, Typ: typ}
}

func NewBoolLit(loc Location, val bool) *BoolLit {
	return &BoolLit{base: base{At: loc}, Val: val}
}

func NewPathExpr(loc Location, name string) *PathExpr {
	return &PathExpr{base: base{At: loc}, Name: name}
}

func NewMember(loc Location, obj Expression, field string) *Member {
	return &Member{base: base{At: loc}, Obj: obj, Field: field}
}

func NewUnary(loc Location, op UnaryOp, x Expression) *Unary {
	return &Unary{base: base{At: loc}, Op: op, X: x}
}

func NewBinary(loc Location, op BinaryOp, x, y Expression) *Binary {
	return &Binary{base: base{At: loc}, Op: op, X: x, Y: y}
}

func NewMux(loc Location, cond, then, els Expression) *Mux {
	return &Mux{base: base{At: loc}, Cond: cond, Then: then, Else: els}
}

func NewCast(loc Location, dest Type, x Expression) *Cast {
	return &Cast{base: base{At: loc}, Dest: dest, X: x}
}

func NewMethodCall(loc Location, obj Expression, method string, args []Expression) *MethodCall {
	return &MethodCall{base: base{At: loc}, Obj: obj, Method: method, Args: args}
}

func NewListExpr(loc Location, elems []Expression, typ Type) *ListExpr {
	return &ListExpr{base: base{At: loc}, Elems: elems, Typ: typ}
}

func NewBlock(loc Location, stmts []Statement) *Block {
	return &Block{base: base{At: loc}, Stmts: stmts}
}

func NewVarDeclStmt(loc Location, name string, typ Type, init Expression) *VarDeclStmt {
	return &VarDeclStmt{base: base{At: loc}, Name: name, Typ: typ, Init: init}
}

func NewAssignment(loc Location, target, value Expression) *Assignment {
	return &Assignment{base: base{At: loc}, Target: target, Value: value}
}

func NewIf(loc Location, cond Expression, then, els Statement) *If {
	return &If{base: base{At: loc}, Cond: cond, Then: then, Else: els}
}

func NewReturn(loc Location, value Expression) *Return {
	return &Return{base: base{At: loc}, Value: value}
}

func NewExit(loc Location) *Exit {
	return &Exit{base: base{At: loc}}
}

func NewExprStmt(loc Location, expr Expression) *ExprStmt {
	return &ExprStmt{base: base{At: loc}, Expr: expr}
}

func NewFunctionDecl(loc Location, name string, params []*Parameter, ret Type, body *Block) *FunctionDecl {
	return &FunctionDecl{base: base{At: loc}, Name: name, Params: params, ReturnType: ret, Body: body}
}

func NewActionDecl(loc Location, name string, params []*Parameter, body *Block) *ActionDecl {
	return &ActionDecl{base: base{At: loc}, Name: name, Params: params, Body: body}
}

func NewTableDecl(loc Location, name string, keys []*KeyElement, actions []*MethodCall, def *MethodCall) *TableDecl {
	return &TableDecl{base: base{At: loc}, Name: name, Keys: keys, Actions: actions, Default: def}
}

func NewEntryDecl(loc Location, name string, kind EntryKind, params []*Parameter, body *Block) *EntryDecl {
	return &EntryDecl{base: base{At: loc}, Name: name, Kind: kind, Params: params, Body: body}
}
