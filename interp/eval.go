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

package interp

import (
	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/ifaceerr"
	"github.com/p4gauntlet/toz3go/smt"
	"github.com/p4gauntlet/toz3go/value"
)

// EvalExpr walks e depth-first (spec.md §4.3): sub-expressions evaluate
// left-to-right, and the result is left in the state's expression register
// in addition to being returned, matching copy_expr_result/set_expr_result.
func (ip *Interp) EvalExpr(e ast.Expression) (value.Value, error) {
	v, err := ip.evalExpr(e)
	if err != nil {
		return nil, err
	}
	ip.St.SetExprResult(v)
	return v, nil
}

func (ip *Interp) evalExpr(e ast.Expression) (value.Value, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return ip.evalIntLit(n)
	case *ast.BoolLit:
		return &value.Bitvector{Term: ip.ctx().BoolVal(n.Val)}, nil
	case *ast.PathExpr:
		return ip.evalPath(n)
	case *ast.Member:
		return ip.evalMember(n)
	case *ast.Unary:
		x, err := ip.EvalExpr(n.X)
		if err != nil {
			return nil, err
		}
		return value.Unary(ip.ctx(), n.Loc(), n.Op, x)
	case *ast.Binary:
		return ip.evalBinary(n)
	case *ast.Mux:
		return ip.evalMux(n)
	case *ast.Cast:
		x, err := ip.EvalExpr(n.X)
		if err != nil {
			return nil, err
		}
		dest, err := ip.St.ResolveType(n.Dest)
		if err != nil {
			return nil, err
		}
		return value.Cast(ip.ctx(), n.Loc(), x, dest)
	case *ast.MethodCall:
		return ip.evalCall(n)
	case *ast.ListExpr:
		return ip.evalList(n)
	}
	return nil, ifaceerr.At(&ifaceerr.TypeMismatchError{Op: "eval", Msg: "unhandled expression node"}, e.Loc())
}

func (ip *Interp) evalIntLit(n *ast.IntLit) (value.Value, error) {
	if n.Typ == nil {
		return &value.IntLiteral{Term: ip.ctx().IntLit(n.Val)}, nil
	}
	bt, ok := n.Typ.(*ast.BitsType)
	if !ok {
		return nil, ifaceerr.At(&ifaceerr.TypeMismatchError{Op: "int_lit", Msg: "typed literal must be a BitsType"}, n.Loc())
	}
	return &value.Bitvector{Term: ip.ctx().BVLit(n.Val, bt.Width), Signed: bt.Signed}, nil
}

// evalPath resolves a bare name first against local variables, then the
// static-decl namespace (functions, actions and tables registered through
// DeclareCallable), matching spec.md §4.2's two separate namespaces.
func (ip *Interp) evalPath(n *ast.PathExpr) (value.Value, error) {
	if v, _, err := ip.St.GetVar(n.Name); err == nil {
		return v, nil
	}
	if v, ok := ip.St.GetStaticDecl(n.Name); ok {
		return v, nil
	}
	return nil, ifaceerr.At(&ifaceerr.VarNotFoundError{Name: n.Name}, n.Loc())
}

// evalMember performs spec.md §4.3's field access: evaluate the object,
// look up the field, fail FieldNotFound if absent.
func (ip *Interp) evalMember(n *ast.Member) (value.Value, error) {
	obj, err := ip.EvalExpr(n.Obj)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *value.Struct:
		if v, ok := o.Get(n.Field); ok {
			return v, nil
		}
	case *value.Header:
		if v, ok := o.Get(n.Field); ok {
			return v, nil
		}
	case *value.Enum:
		if v, ok := o.Get(n.Field); ok {
			return v, nil
		}
	case *value.ErrorSet:
		if v, ok := o.Get(n.Field); ok {
			return v, nil
		}
	default:
		return nil, ifaceerr.At(&ifaceerr.TypeMismatchError{Op: "member", Msg: "value has no fields"}, n.Loc())
	}
	return nil, ifaceerr.At(&ifaceerr.FieldNotFoundError{Name: n.Field}, n.Loc())
}

// evalBinary implements short-circuit &&/|| (spec.md §4.3, §9) by
// simplifying the left operand before deciding whether the right operand
// is evaluated at all; every other operator evaluates both sides and
// delegates to value.Binary.
func (ip *Interp) evalBinary(n *ast.Binary) (value.Value, error) {
	x, err := ip.EvalExpr(n.X)
	if err != nil {
		return nil, err
	}
	if n.Op == ast.OpLAnd || n.Op == ast.OpLOr {
		xb, ok := x.(*value.Bitvector)
		if !ok {
			return nil, ifaceerr.At(&ifaceerr.TypeMismatchError{Op: "land/lor", Msg: "left operand is not a Bitvector"}, n.Loc())
		}
		if b, isConst := constBool(ip.ctx(), xb.Term); isConst {
			if n.Op == ast.OpLAnd && !b {
				return xb, nil
			}
			if n.Op == ast.OpLOr && b {
				return xb, nil
			}
		}
	}
	y, err := ip.EvalExpr(n.Y)
	if err != nil {
		return nil, err
	}
	return value.Binary(ip.ctx(), n.Loc(), n.Op, x, y)
}

// constBool reports whether t simplifies to a boolean literal and, if so,
// its value. smt.Context exposes no direct "is this a literal" query
// (spec.md §6's contract stops at Simplify), so this compares the
// simplified term's textual form against the two known literal renderings
// — the cheapest test expressible purely in terms of the Context contract.
func constBool(ctx smt.Context, t smt.Term) (value bool, ok bool) {
	s := ctx.Simplify(t).String()
	if s == ctx.BoolVal(true).String() {
		return true, true
	}
	if s == ctx.BoolVal(false).String() {
		return false, true
	}
	return false, false
}

// evalMux implements the ternary conditional's fork/merge protocol (spec.md
// §4.3): a tautological/contradictory condition short-circuits to
// evaluating only the live arm; otherwise both arms run against isolated
// forks of the state and the results are merged at the value level.
func (ip *Interp) evalMux(n *ast.Mux) (value.Value, error) {
	cond, err := ip.EvalExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	cb, ok := cond.(*value.Bitvector)
	if !ok {
		return nil, ifaceerr.At(&ifaceerr.TypeMismatchError{Op: "mux", Msg: "condition is not a Bitvector"}, n.Loc())
	}
	if b, isConst := constBool(ip.ctx(), cb.Term); isConst {
		if b {
			return ip.EvalExpr(n.Then)
		}
		return ip.EvalExpr(n.Else)
	}

	pre := ip.St.Fork()
	thenVal, err := ip.EvalExpr(n.Then)
	if err != nil {
		return nil, err
	}
	thenState := ip.St.Fork()
	ip.St.Restore(pre)
	elseVal, err := ip.EvalExpr(n.Else)
	if err != nil {
		return nil, err
	}

	merged, err := value.Merge(ip.ctx(), cb.Term, elseVal, thenVal)
	if err != nil {
		return nil, ifaceerr.At(err, n.Loc())
	}
	if err := ip.St.MergeState(cb.Term, thenState); err != nil {
		return nil, ifaceerr.At(err, n.Loc())
	}
	return merged, nil
}

func (ip *Interp) evalList(n *ast.ListExpr) (value.Value, error) {
	elems := make([]value.Value, len(n.Elems))
	for i, el := range n.Elems {
		v, err := ip.EvalExpr(el)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	name := ""
	if lt, ok := n.Typ.(*ast.ListType); ok {
		name = lt.Name
	}
	return &value.List{TypeName: name, Elems: elems}, nil
}
