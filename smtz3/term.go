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

//go:build z3

// Package smtz3 is the production smt.Context backend: a thin adapter over
// the real Z3 Go binding (github.com/aclements/go-z3/z3), built only when
// the z3 build tag and a system libz3 are present (see
// cmd/toz3/backend_z3.go). It is not exercised by this repository's
// own test suite, which runs against smtmock instead (spec.md §6: the two
// backends are interchangeable implementations of the same opaque
// term-construction contract).
package smtz3

import "github.com/aclements/go-z3/z3"

import "github.com/p4gauntlet/toz3go/smt"

// term wraps a z3.Expr (the binding's common supertype for BV/Bool/Int)
// alongside the sort/width smt.Term needs to expose without a type
// assertion back into z3 at every call site.
type term struct {
	expr  z3.Expr
	sort  smt.SortKind
	width int
}

func (t *term) Sort() smt.SortKind { return t.sort }
func (t *term) BVWidth() int       { return t.width }
func (t *term) String() string     { return t.expr.String() }

func wrap(e z3.Expr, sort smt.SortKind, width int) smt.Term {
	return &term{expr: e, sort: sort, width: width}
}

func asBV(t smt.Term) z3.BV   { return t.(*term).expr.(z3.BV) }
func asBool(t smt.Term) z3.Bool { return t.(*term).expr.(z3.Bool) }
func asInt(t smt.Term) z3.Int { return t.(*term).expr.(z3.Int) }
