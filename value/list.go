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

package value

import (
	"github.com/p4gauntlet/toz3go/ifaceerr"
	"github.com/p4gauntlet/toz3go/smt"

	"github.com/p4gauntlet/toz3go/ast"
)

// List is an opaque ordered vector, used for tuple literals and
// initializer lists (spec.md §3).
type List struct {
	TypeName string
	Elems    []Value
}

func (l *List) Kind() Kind { return KindList }

func (l *List) Copy() Value {
	elems := make([]Value, len(l.Elems))
	for i, e := range l.Elems {
		elems[i] = e.Copy()
	}
	return &List{TypeName: l.TypeName, Elems: elems}
}

func (l *List) Undefined(ctx smt.Context) Value {
	elems := make([]Value, len(l.Elems))
	for i, e := range l.Elems {
		elems[i] = e.Undefined(ctx)
	}
	return &List{TypeName: l.TypeName, Elems: elems}
}

// CastAllocate zips the list's elements with target's field sequence in
// order (spec.md §4.1's `cast_allocate`); cardinalities must match.
func (l *List) CastAllocate(loc ast.Location, target *Struct) (*Struct, error) {
	if len(l.Elems) != len(target.Order) {
		return nil, &ifaceerr.ListArityMismatchError{At: loc, ListLen: len(l.Elems), FieldLen: len(target.Order)}
	}
	out := target.Copy().(*Struct)
	for i, name := range out.Order {
		out.Fields[name] = l.Elems[i].Copy()
	}
	return out, nil
}
