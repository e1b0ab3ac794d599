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

// Package state implements the interpreter's environment (spec.md §4.2): a
// stack of lexical scopes plus the bookkeeping an if/mux fork-merge and a
// function return need. It owns no AST or evaluation logic of its own —
// that lives in the interp package, which reads and writes through the
// operations defined here.
package state

import (
	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/smt"
	"github.com/p4gauntlet/toz3go/value"
)

// NamedValue is one (name, value) pair of a flattened scope snapshot.
type NamedValue struct {
	Name  string
	Value value.Value
}

// ReturnExpr is one (path-condition, value) pair recorded by a `return e`
// statement (spec.md §4.2's return-expressions list).
type ReturnExpr struct {
	Cond smt.Term
	Expr value.Value
}

// VarSnapshot is one (path-condition, variable-snapshot) pair recorded by a
// `return` (the return-states list) or `exit` statement.
type VarSnapshot struct {
	Cond smt.Term
	Vars []NamedValue
}

// Scope is one lexical level of the environment (spec.md §2, §4.2).
type Scope struct {
	order      []string // declaration order of Vars, for deterministic snapshotting
	vars       map[string]value.Value
	varTypes   map[string]ast.Type
	decls      map[string]value.Value // declare_static_decl namespace: callables/tables
	types      map[string]ast.Type    // add_type namespace
	pathConds  []smt.Term
	returns    []ReturnExpr
	returnVars []VarSnapshot
	exits      []VarSnapshot
	returned   bool
}

func newScope() *Scope {
	return &Scope{
		vars:     make(map[string]value.Value),
		varTypes: make(map[string]ast.Type),
		decls:    make(map[string]value.Value),
		types:    make(map[string]ast.Type),
	}
}

// clone deep-copies everything a fork needs isolated (Vars) and
// append-safely copies everything a fork only needs to extend independently
// (the slices); declarations and types are shared, since nothing in the
// interpreter mutates an existing entry in those namespaces once declared.
func (s *Scope) clone() *Scope {
	vars := make(map[string]value.Value, len(s.vars))
	for k, v := range s.vars {
		vars[k] = v.Copy()
	}
	return &Scope{
		order:      append([]string(nil), s.order...),
		vars:       vars,
		varTypes:   s.varTypes,
		decls:      s.decls,
		types:      s.types,
		pathConds:  append([]smt.Term(nil), s.pathConds...),
		returns:    append([]ReturnExpr(nil), s.returns...),
		returnVars: append([]VarSnapshot(nil), s.returnVars...),
		exits:      append([]VarSnapshot(nil), s.exits...),
		returned:   s.returned,
	}
}

func (s *Scope) snapshot() []NamedValue {
	out := make([]NamedValue, len(s.order))
	for i, name := range s.order {
		out[i] = NamedValue{Name: name, Value: s.vars[name].Copy()}
	}
	return out
}
