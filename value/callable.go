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

// This file holds the variants that carry no symbolic content of their own
// (spec.md I5): Declaration, Table, Extern, FunctionHandle, and Void. Merge
// keeps self (the cond-false side of its ite(cond, other, self) rule) for
// each of them, Copy returns a new value with the same contents, and
// Undefined returns the value itself, matching the original's
// P4Declaration/P4TableInstance/ExternInstance, whose merge is a
// documented no-op.
package value

import (
	"golang.org/x/exp/slices"

	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/smt"
)

// Declaration is a reference to an AST declaration node, used for lookup by
// name (a callable).
type Declaration struct {
	Decl ast.Declaration
}

func (d *Declaration) Kind() Kind               { return KindDeclaration }
func (d *Declaration) Copy() Value              { return &Declaration{Decl: d.Decl} }
func (d *Declaration) Undefined(smt.Context) Value { return d }

// Table wraps a table declaration with its evaluation-time state: whether
// the symbolic key lookup hit, and the ordered key/action lists the
// interpreter needs to apply it (spec.md §3, §4.3).
type Table struct {
	Decl      ast.Declaration
	Name      string
	Hit       smt.Term // boolean
	Keys      []*ast.KeyElement
	Actions   []*ast.MethodCall
	Immutable bool
}

func (t *Table) Kind() Kind { return KindTable }

func (t *Table) Copy() Value {
	return &Table{
		Decl:      t.Decl,
		Name:      t.Name,
		Hit:       t.Hit,
		Keys:      slices.Clone(t.Keys),
		Actions:   slices.Clone(t.Actions),
		Immutable: t.Immutable,
	}
}

func (t *Table) Undefined(smt.Context) Value { return t }

// Extern maps method name to declaration.
type Extern struct {
	TypeName string
	Methods  map[string]ast.Declaration
}

func (e *Extern) Kind() Kind                  { return KindExtern }
func (e *Extern) Copy() Value                 { return &Extern{TypeName: e.TypeName, Methods: e.Methods} }
func (e *Extern) Undefined(smt.Context) Value { return e }

// GetMethod looks up a method declaration by name.
func (e *Extern) GetMethod(name string) (ast.Declaration, bool) {
	d, ok := e.Methods[name]
	return d, ok
}

// FunctionHandle is an opaque callable invoked directly by the interpreter
// (as opposed to Declaration, which is looked up by name first).
type FunctionHandle struct {
	Decl ast.Declaration
}

func (f *FunctionHandle) Kind() Kind                  { return KindFunctionHandle }
func (f *FunctionHandle) Copy() Value                 { return &FunctionHandle{Decl: f.Decl} }
func (f *FunctionHandle) Undefined(smt.Context) Value { return f }

// Void is the result of a procedure call that returns nothing.
type Void struct{}

func (v *Void) Kind() Kind                  { return KindVoid }
func (v *Void) Copy() Value                 { return &Void{} }
func (v *Void) Undefined(smt.Context) Value { return v }
