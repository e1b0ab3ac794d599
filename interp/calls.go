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
	"fmt"

	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/ifaceerr"
	"github.com/p4gauntlet/toz3go/value"
)

// evalCall is the `MethodCall` evaluator of spec.md §4.3's Calls section:
// header built-ins, table apply, and user-declared function/action calls
// with copy-in/copy-out.
func (ip *Interp) evalCall(n *ast.MethodCall) (value.Value, error) {
	if n.Obj == nil {
		return ip.evalFreeCall(n)
	}

	if objPath, ok := n.Obj.(*ast.PathExpr); ok && n.Method == "apply" {
		if decl, ok := ip.St.GetStaticDecl(objPath.Name); ok {
			if d, ok := decl.(*value.Declaration); ok {
				if td, ok := d.Decl.(*ast.TableDecl); ok {
					return ip.applyTable(td, n.Loc())
				}
			}
		}
	}

	obj, err := ip.EvalExpr(n.Obj)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *value.Header:
		switch n.Method {
		case "setValid":
			o.SetValid(ip.ctx())
			return &value.Void{}, nil
		case "setInvalid":
			o.SetInvalid(ip.ctx())
			return &value.Void{}, nil
		case "isValid":
			return o.IsValid(), nil
		}
	case *value.Extern:
		if decl, ok := o.GetMethod(n.Method); ok {
			return ip.invokeCallable(decl, n.Args, n.Loc())
		}
	}
	return nil, ifaceerr.At(&ifaceerr.FieldNotFoundError{Name: n.Method}, n.Loc())
}

func (ip *Interp) evalFreeCall(n *ast.MethodCall) (value.Value, error) {
	decl, ok := ip.St.GetStaticDecl(n.Method)
	if !ok {
		return nil, ifaceerr.At(&ifaceerr.VarNotFoundError{Name: n.Method}, n.Loc())
	}
	switch d := decl.(type) {
	case *value.Declaration:
		return ip.invokeCallable(d.Decl, n.Args, n.Loc())
	case *value.FunctionHandle:
		return ip.invokeCallable(d.Decl, n.Args, n.Loc())
	}
	return nil, ifaceerr.At(&ifaceerr.TypeMismatchError{Op: "call", Msg: n.Method + " is not callable"}, n.Loc())
}

func (ip *Interp) invokeCallable(decl ast.Declaration, args []ast.Expression, loc ast.Location) (value.Value, error) {
	switch d := decl.(type) {
	case *ast.FunctionDecl:
		return ip.callBody(d.Params, d.Body, args, loc, true)
	case *ast.ActionDecl:
		return ip.callBody(d.Params, d.Body, args, loc, false)
	}
	return nil, ifaceerr.At(&ifaceerr.TypeMismatchError{Op: "call", Msg: "declaration is not a callable"}, loc)
}

type copyOutBinding struct {
	target ast.Expression
	local  string
}

// callBody implements spec.md §4.3's call protocol: zip parameters with
// arguments, bind IN/INOUT arguments into fresh locals (and record INOUT/OUT
// pairs for copy-out), push a scope, run the body, fold any recorded
// returns right-to-left with `ite`, copy every OUT/INOUT local back to its
// originating expression, then pop the scope.
func (ip *Interp) callBody(params []*ast.Parameter, body *ast.Block, args []ast.Expression, loc ast.Location, wantsReturn bool) (value.Value, error) {
	if len(params) != len(args) {
		return nil, ifaceerr.At(&ifaceerr.TypeMismatchError{Op: "call", Msg: "argument count does not match parameter count"}, loc)
	}

	ip.St.PushScope()

	var copyOuts []copyOutBinding
	for i, p := range params {
		resolved, err := ip.St.ResolveType(p.Typ)
		if err != nil {
			ip.St.PopScope()
			return nil, err
		}
		switch p.Dir {
		case ast.DirIn, ast.DirInOut:
			argVal, err := ip.EvalExpr(args[i])
			if err != nil {
				ip.St.PopScope()
				return nil, err
			}
			if err := ip.St.DeclareVar(p.Name, argVal.Copy(), resolved); err != nil {
				ip.St.PopScope()
				return nil, err
			}
			if p.Dir == ast.DirInOut {
				copyOuts = append(copyOuts, copyOutBinding{target: args[i], local: p.Name})
			}
		case ast.DirOut:
			fresh, err := ip.St.GenInstance(p.Name, resolved)
			if err != nil {
				ip.St.PopScope()
				return nil, err
			}
			if err := ip.St.DeclareVar(p.Name, fresh, resolved); err != nil {
				ip.St.PopScope()
				return nil, err
			}
			copyOuts = append(copyOuts, copyOutBinding{target: args[i], local: p.Name})
		}
	}

	for _, stmt := range body.Stmts {
		if ip.St.Returned() {
			break
		}
		if err := ip.ExecStmt(stmt); err != nil {
			ip.St.PopScope()
			return nil, err
		}
	}

	var result value.Value = &value.Void{}
	if wantsReturn {
		folded, err := ip.foldReturnExprs()
		if err != nil {
			ip.St.PopScope()
			return nil, err
		}
		result = folded
	}

	for _, co := range copyOuts {
		local, _, err := ip.St.GetVar(co.local)
		if err != nil {
			ip.St.PopScope()
			return nil, err
		}
		if err := ip.assignTo(co.target, local.Copy()); err != nil {
			ip.St.PopScope()
			return nil, err
		}
	}

	if err := ip.St.PopScope(); err != nil {
		return nil, err
	}
	return result, nil
}

// foldReturnExprs implements spec.md §4.2's "merges return-states across
// accumulated pairs by folding right-to-left with ite": the last recorded
// return's value is the base case, and each earlier (cond, expr) pair
// nests outward as ite(cond, expr, acc). With no recorded return the
// result is a Void.
func (ip *Interp) foldReturnExprs() (value.Value, error) {
	returns := ip.St.ReturnExprs()
	if len(returns) == 0 {
		return &value.Void{}, nil
	}
	var acc value.Value = returns[len(returns)-1].Expr
	for i := len(returns) - 2; i >= 0; i-- {
		r := returns[i]
		merged, err := value.Merge(ip.ctx(), r.Cond, acc, r.Expr)
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return acc, nil
}

// applyTable realizes spec.md §4.3's table-apply rule: the key expressions
// are evaluated (for any side effects a front end's key exprs might carry),
// a fresh `hit` boolean stands in for "did some entry match" without
// enumerating match entries, and on a hit the action list is dispatched as
// a chain of fresh one-hot selector booleans folded with ite (the same
// guarded-fork-merge protocol as `if`, applied once per action) — a
// concrete realization of "non-deterministic choice between actions".
func (ip *Interp) applyTable(t *ast.TableDecl, loc ast.Location) (value.Value, error) {
	for _, k := range t.Keys {
		if _, err := ip.EvalExpr(k.Expr); err != nil {
			return nil, err
		}
	}
	hit := ip.ctx().FreshBoolConst(t.Name + "_hit")

	pre := ip.St.Fork()
	chainVal, err := ip.dispatchActions(t.Name, t.Actions, loc)
	if err != nil {
		return nil, err
	}
	thenState := ip.St.Fork()
	ip.St.Restore(pre)

	var elseVal value.Value = &value.Void{}
	if t.Default != nil {
		elseVal, err = ip.evalCall(t.Default)
		if err != nil {
			return nil, err
		}
	}

	merged, err := value.Merge(ip.ctx(), hit, elseVal, chainVal)
	if err != nil {
		return nil, ifaceerr.At(err, loc)
	}
	if err := ip.St.MergeState(hit, thenState); err != nil {
		return nil, ifaceerr.At(err, loc)
	}
	return merged, nil
}

func (ip *Interp) dispatchActions(tableName string, actions []*ast.MethodCall, loc ast.Location) (value.Value, error) {
	if len(actions) == 0 {
		return &value.Void{}, nil
	}
	if len(actions) == 1 {
		return ip.evalCall(actions[0])
	}

	guard := ip.ctx().FreshBoolConst(fmt.Sprintf("%s_sel%d", tableName, len(actions)-1))
	pre := ip.St.Fork()
	thisVal, err := ip.evalCall(actions[0])
	if err != nil {
		return nil, err
	}
	thisState := ip.St.Fork()
	ip.St.Restore(pre)

	restVal, err := ip.dispatchActions(tableName, actions[1:], loc)
	if err != nil {
		return nil, err
	}

	merged, err := value.Merge(ip.ctx(), guard, restVal, thisVal)
	if err != nil {
		return nil, ifaceerr.At(err, loc)
	}
	if err := ip.St.MergeState(guard, thisState); err != nil {
		return nil, ifaceerr.At(err, loc)
	}
	return merged, nil
}
