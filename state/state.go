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

package state

import (
	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/ifaceerr"
	"github.com/p4gauntlet/toz3go/smt"
	"github.com/p4gauntlet/toz3go/value"
)

// State is the environment: the scope stack plus the shared term-context
// handle (spec.md §2, §4.2). One State belongs to exactly one evaluation;
// it is never shared across goroutines (spec.md §5).
type State struct {
	Ctx        smt.Context
	Scopes     []*Scope
	exprResult value.Value
}

// New returns a State with its single outermost scope already pushed (that
// scope is where top-level types and declarations accumulate).
func New(ctx smt.Context) *State {
	return &State{Ctx: ctx, Scopes: []*Scope{newScope()}}
}

// PushScope opens a new lexical level on function/block entry.
func (s *State) PushScope() {
	s.Scopes = append(s.Scopes, newScope())
}

// PopScope closes the innermost lexical level; popping the last scope is an
// error (spec.md §4.2).
func (s *State) PopScope() error {
	if len(s.Scopes) <= 1 {
		return ifaceerr.ScopeUnderflowError{}
	}
	s.Scopes = s.Scopes[:len(s.Scopes)-1]
	return nil
}

func (s *State) top() *Scope { return s.Scopes[len(s.Scopes)-1] }

// PopScopeBubbling closes the innermost scope like PopScope, but first
// transfers its accumulated return/exit bookkeeping (and "returned" flag)
// into the parent scope. A nested block (an `if` arm's body, say) pushes
// its own scope for variable shadowing, but a `return` inside it has to
// stay visible to the function/entry body that encloses it once that
// block's scope is gone.
func (s *State) PopScopeBubbling() error {
	if len(s.Scopes) <= 1 {
		return ifaceerr.ScopeUnderflowError{}
	}
	child := s.top()
	parent := s.Scopes[len(s.Scopes)-2]
	parent.returns = append(parent.returns, child.returns...)
	parent.returnVars = append(parent.returnVars, child.returnVars...)
	parent.exits = append(parent.exits, child.exits...)
	parent.returned = parent.returned || child.returned
	s.Scopes = s.Scopes[:len(s.Scopes)-1]
	return nil
}

// DeclareVar adds name to the top scope; name must be fresh there.
func (s *State) DeclareVar(name string, v value.Value, declaredType ast.Type) error {
	top := s.top()
	if _, ok := top.vars[name]; ok {
		return &ifaceerr.TypeMismatchError{Op: "declare_var", Msg: "variable " + name + " already declared in this scope"}
	}
	top.vars[name] = v
	top.varTypes[name] = declaredType
	top.order = append(top.order, name)
	return nil
}

// GetVar performs a top-down (innermost-first) name lookup.
func (s *State) GetVar(name string) (value.Value, ast.Type, error) {
	for i := len(s.Scopes) - 1; i >= 0; i-- {
		if v, ok := s.Scopes[i].vars[name]; ok {
			return v, s.Scopes[i].varTypes[name], nil
		}
	}
	return nil, nil, &ifaceerr.VarNotFoundError{Name: name}
}

// UpdateVar writes through to the scope that owns name.
func (s *State) UpdateVar(name string, v value.Value) error {
	for i := len(s.Scopes) - 1; i >= 0; i-- {
		if _, ok := s.Scopes[i].vars[name]; ok {
			s.Scopes[i].vars[name] = v
			return nil
		}
	}
	return &ifaceerr.VarNotFoundError{Name: name}
}

// DeclareStaticDecl adds a callable/table to the top scope's declaration
// namespace, separate from values (spec.md §4.2).
func (s *State) DeclareStaticDecl(name string, v value.Value) {
	top := s.top()
	top.decls[name] = v
}

// GetStaticDecl looks up a callable/table by name, innermost scope first.
func (s *State) GetStaticDecl(name string) (value.Value, bool) {
	for i := len(s.Scopes) - 1; i >= 0; i-- {
		if v, ok := s.Scopes[i].decls[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// AddType registers a named type in the top scope.
func (s *State) AddType(name string, t ast.Type) {
	s.top().types[name] = t
}

// GetType looks up a named type, innermost scope first.
func (s *State) GetType(name string) (ast.Type, bool) {
	for i := len(s.Scopes) - 1; i >= 0; i-- {
		if t, ok := s.Scopes[i].types[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// ResolveType returns t unchanged unless it is a name-reference, in which
// case it follows the scope chain (spec.md §4.2). A reference to an
// undeclared name is a TypeNotFoundError.
func (s *State) ResolveType(t ast.Type) (ast.Type, error) {
	name, ok := t.(*ast.NameType)
	if !ok {
		return t, nil
	}
	resolved, ok := s.GetType(name.Name)
	if !ok {
		return nil, &ifaceerr.TypeNotFoundError{Name: name.Name}
	}
	return s.ResolveType(resolved)
}

// SetExprResult and ExprResult implement copy_expr_result/set_expr_result:
// a single-slot register holding the last expression's result. Writes are
// cloned unless the value has no independent lifetime (spec.md §4.2).
func (s *State) SetExprResult(v value.Value) {
	switch v.(type) {
	case *value.Declaration, *value.Table, *value.Extern, *value.FunctionHandle, *value.Void, *value.ControlState:
		s.exprResult = v
	default:
		s.exprResult = v.Copy()
	}
}

func (s *State) ExprResult() value.Value { return s.exprResult }

// PushPathCond pushes a boolean term onto the innermost scope's path
// condition stack (entering an `if`/mux arm).
func (s *State) PushPathCond(t smt.Term) {
	top := s.top()
	top.pathConds = append(top.pathConds, t)
}

// PopPathCond pops the innermost scope's most recently pushed path
// condition (leaving an `if`/mux arm).
func (s *State) PopPathCond() {
	top := s.top()
	top.pathConds = top.pathConds[:len(top.pathConds)-1]
}

// PathCondition returns the conjunction of every boolean term pushed by an
// enclosing conditional, across every scope (spec.md §4.2).
func (s *State) PathCondition() (smt.Term, error) {
	cur := s.Ctx.BoolVal(true)
	for _, sc := range s.Scopes {
		for _, t := range sc.pathConds {
			next, err := s.Ctx.And(cur, t)
			if err != nil {
				return nil, err
			}
			cur = next
		}
	}
	return cur, nil
}

// RecordReturn implements the `return e` bookkeeping of spec.md §4.2: it
// appends (path-condition, clone(e)) to the return-expressions list and
// (path-condition, variable-snapshot) to the return-states list, then sets
// "returned" on the innermost scope.
func (s *State) RecordReturn(value_ value.Value) error {
	cond, err := s.PathCondition()
	if err != nil {
		return err
	}
	top := s.top()
	if top.returned {
		return &ifaceerr.ReturnAfterReturnError{}
	}
	if value_ != nil {
		top.returns = append(top.returns, ReturnExpr{Cond: cond, Expr: value_.Copy()})
	}
	top.returnVars = append(top.returnVars, VarSnapshot{Cond: cond, Vars: s.flattenVars()})
	top.returned = true
	return nil
}

// RecordExit appends (path-condition, variable-snapshot) to the innermost
// scope's exit-paths list (spec.md §2).
func (s *State) RecordExit() error {
	cond, err := s.PathCondition()
	if err != nil {
		return err
	}
	top := s.top()
	top.exits = append(top.exits, VarSnapshot{Cond: cond, Vars: s.flattenVars()})
	top.returned = true
	return nil
}

// Returned reports whether the innermost scope has already executed a
// return/exit on the current straight-line path (spec.md §4.3: subsequent
// statements in the same block are skipped while this holds).
func (s *State) Returned() bool { return s.top().returned }

// ReturnExprs/ReturnVarSnapshots/ExitVarSnapshots expose the innermost
// scope's accumulated
// bookkeeping to the call site that folds them with `ite` on completion.
func (s *State) ReturnExprs() []ReturnExpr     { return s.top().returns }
func (s *State) ReturnVarSnapshots() []VarSnapshot { return s.top().returnVars }
func (s *State) ExitVarSnapshots() []VarSnapshot   { return s.top().exits }

func (s *State) flattenVars() []NamedValue {
	var out []NamedValue
	for _, sc := range s.Scopes {
		out = append(out, sc.snapshot()...)
	}
	return out
}

// Fork returns an independent duplicate of the scope stack for branch
// evaluation (spec.md §4.2, §5): every variable's value is deep-copied, so
// neither the fork nor the original observes the other's subsequent
// writes. Declarations and types are shared, since they are never mutated
// once declared.
func (s *State) Fork() *State {
	scopes := make([]*Scope, len(s.Scopes))
	for i, sc := range s.Scopes {
		scopes[i] = sc.clone()
	}
	return &State{Ctx: s.Ctx, Scopes: scopes, exprResult: s.exprResult}
}

// Restore replaces the live scope stack with a previously forked snapshot
// (spec.md §4.2's restore_state), discarding whatever the live stack had
// accumulated since the fork.
func (s *State) Restore(snapshot *State) {
	s.Scopes = snapshot.Scopes
	s.exprResult = snapshot.exprResult
}

// MergeState merges, for each variable present in both self and other, the
// value-level merge of the two under cond (spec.md §4.2's merge_state). It
// also folds in other's accumulated return/exit bookkeeping, since those
// represent real alternate-branch paths the enclosing call site still needs
// to fold with `ite` later — they are concatenated, not value-merged.
//
// "returned" on the merged scope is the logical OR of both sides: a block
// is only free to keep executing unconditional follow-on statements once
// neither live alternative can still reach them on some path. Finer-grained
// per-path suppression (skipping only the statements downstream of the
// branch that actually returned, while still running on the branch that
// didn't) is not modeled; this is a deliberate simplification recorded in
// DESIGN.md.
func (s *State) MergeState(cond smt.Term, other *State) error {
	for i := range s.Scopes {
		if i >= len(other.Scopes) {
			break
		}
		sc, oc := s.Scopes[i], other.Scopes[i]
		for name, sv := range sc.vars {
			ov, ok := oc.vars[name]
			if !ok {
				continue
			}
			merged, err := value.Merge(s.Ctx, cond, sv, ov)
			if err != nil {
				return err
			}
			sc.vars[name] = merged
		}
		sc.returns = append(sc.returns, oc.returns...)
		sc.returnVars = append(sc.returnVars, oc.returnVars...)
		sc.exits = append(sc.exits, oc.exits...)
		sc.returned = sc.returned || oc.returned
	}
	return nil
}
