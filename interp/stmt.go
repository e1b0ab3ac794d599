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
	"github.com/p4gauntlet/toz3go/value"
)

// ExecStmt executes one statement, mutating the environment (spec.md
// §4.3). A block introduces its own scope; every other statement mutates
// the current scope in place.
func (ip *Interp) ExecStmt(s ast.Statement) error {
	switch n := s.(type) {
	case *ast.Block:
		return ip.execBlock(n)
	case *ast.VarDeclStmt:
		return ip.execVarDecl(n)
	case *ast.Assignment:
		return ip.execAssignment(n)
	case *ast.If:
		return ip.execIf(n)
	case *ast.Return:
		return ip.execReturn(n)
	case *ast.Exit:
		return ip.St.RecordExit()
	case *ast.ExprStmt:
		_, err := ip.EvalExpr(n.Expr)
		return err
	}
	return ifaceerr.At(&ifaceerr.TypeMismatchError{Op: "exec", Msg: "unhandled statement node"}, s.Loc())
}

// execBlock pushes a fresh scope (spec.md §4.2: "a scope is created on
// function/block entry"), runs each statement in order, skipping the rest
// once "returned" holds, then pops the scope while bubbling its
// return/exit bookkeeping into the parent (state.PopScopeBubbling): a
// `return` nested inside an `if`'s block body must stay visible to the
// function body that encloses it once that block's own scope is gone.
func (ip *Interp) execBlock(b *ast.Block) error {
	ip.St.PushScope()
	for _, stmt := range b.Stmts {
		if ip.St.Returned() {
			break
		}
		if err := ip.ExecStmt(stmt); err != nil {
			ip.St.PopScopeBubbling()
			return err
		}
	}
	return ip.St.PopScopeBubbling()
}

// execVarDecl implements `declare_var`: a local with no initializer starts
// as a fresh symbolic instance of its declared type (state.GenInstance);
// an initializer's value is cloned in, matching spec.md §4.2's
// clone-on-declare-or-assign discipline.
func (ip *Interp) execVarDecl(n *ast.VarDeclStmt) error {
	resolved, err := ip.St.ResolveType(n.Typ)
	if err != nil {
		return err
	}
	var v value.Value
	if n.Init != nil {
		iv, err := ip.EvalExpr(n.Init)
		if err != nil {
			return err
		}
		v = iv.Copy()
	} else {
		v, err = ip.St.GenInstance(n.Name, resolved)
		if err != nil {
			return err
		}
	}
	return ip.St.DeclareVar(n.Name, v, resolved)
}

// execAssignment writes Value into the location addressed by Target
// (spec.md §4.3): a bare name writes through to the owning scope; a member
// chain evaluates the object and sets the field in place.
func (ip *Interp) execAssignment(n *ast.Assignment) error {
	v, err := ip.EvalExpr(n.Value)
	if err != nil {
		return err
	}
	return ip.assignTo(n.Target, v.Copy())
}

// assignTo stores v (already owned by the caller — never the live
// expression register) at the location addressed by target.
func (ip *Interp) assignTo(target ast.Expression, v value.Value) error {
	switch t := target.(type) {
	case *ast.PathExpr:
		return ip.St.UpdateVar(t.Name, v)
	case *ast.Member:
		obj, err := ip.EvalExpr(t.Obj)
		if err != nil {
			return err
		}
		switch o := obj.(type) {
		case *value.Struct:
			if !o.HasField(t.Field) {
				return ifaceerr.At(&ifaceerr.FieldNotFoundError{Name: t.Field}, t.Loc())
			}
			o.Set(t.Field, v)
			return nil
		case *value.Header:
			if !o.HasField(t.Field) {
				return ifaceerr.At(&ifaceerr.FieldNotFoundError{Name: t.Field}, t.Loc())
			}
			o.Set(t.Field, v)
			return nil
		}
		return ifaceerr.At(&ifaceerr.TypeMismatchError{Op: "assign", Msg: "value has no fields"}, t.Loc())
	}
	return ifaceerr.At(&ifaceerr.TypeMismatchError{Op: "assign", Msg: "target is not an assignable location"}, target.Loc())
}

// execIf implements spec.md §4.3's statement-level fork/merge protocol:
// the same discipline as evalMux, but over statements, and pushing the
// branch guard onto the path-condition stack for the duration of each arm
// so that any `return`/`exit` recorded inside picks up the right
// path-condition (spec.md §4.2).
func (ip *Interp) execIf(n *ast.If) error {
	cond, err := ip.EvalExpr(n.Cond)
	if err != nil {
		return err
	}
	cb, ok := cond.(*value.Bitvector)
	if !ok {
		return ifaceerr.At(&ifaceerr.TypeMismatchError{Op: "if", Msg: "condition is not a Bitvector"}, n.Loc())
	}
	if b, isConst := constBool(ip.ctx(), cb.Term); isConst {
		if b {
			return ip.ExecStmt(n.Then)
		}
		if n.Else != nil {
			return ip.ExecStmt(n.Else)
		}
		return nil
	}

	pre := ip.St.Fork()
	ip.St.PushPathCond(cb.Term)
	thenErr := ip.ExecStmt(n.Then)
	ip.St.PopPathCond()
	if thenErr != nil {
		return thenErr
	}
	thenState := ip.St.Fork()
	ip.St.Restore(pre)

	notCond, err := ip.ctx().Not(cb.Term)
	if err != nil {
		return ifaceerr.At(&ifaceerr.BackendError{Err: err}, n.Loc())
	}
	if n.Else != nil {
		ip.St.PushPathCond(notCond)
		elseErr := ip.ExecStmt(n.Else)
		ip.St.PopPathCond()
		if elseErr != nil {
			return elseErr
		}
	}

	if err := ip.St.MergeState(cb.Term, thenState); err != nil {
		return ifaceerr.At(err, n.Loc())
	}
	return nil
}

// execReturn implements the `return e` bookkeeping of spec.md §4.2: record
// the (path-condition, value) pair (when e is present) and the
// (path-condition, variable-snapshot) pair, then mark the current scope
// "returned" so the enclosing block stops executing further statements on
// this path.
func (ip *Interp) execReturn(n *ast.Return) error {
	if n.Value == nil {
		return ip.St.RecordReturn(nil)
	}
	v, err := ip.EvalExpr(n.Value)
	if err != nil {
		return err
	}
	return ip.St.RecordReturn(v)
}
