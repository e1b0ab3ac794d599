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
	"golang.org/x/exp/slices"

	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/smt"
)

// Struct is an ordered-map aggregate: the invariant (I1) is that a field's
// declared type never changes after declaration, so FieldTypes is
// immutable once built.
type Struct struct {
	TypeName   string
	Order      []string // field names in declaration order (I1)
	Fields     map[string]Value
	FieldTypes map[string]ast.Type
	ID         uint64 // stable numeric id, shared by all instances of this shape
	Width      int    // I3: sum of field widths, booleans count as 1
}

func NewStruct(typeName string, order []string, fields map[string]Value, fieldTypes map[string]ast.Type, id uint64, width int) *Struct {
	return &Struct{
		TypeName:   typeName,
		Order:      order,
		Fields:     fields,
		FieldTypes: fieldTypes,
		ID:         id,
		Width:      width,
	}
}

func (s *Struct) Kind() Kind { return KindStruct }

func (s *Struct) Copy() Value {
	fields := make(map[string]Value, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v.Copy()
	}
	return &Struct{
		TypeName:   s.TypeName,
		Order:      slices.Clone(s.Order),
		Fields:     fields,
		FieldTypes: s.FieldTypes, // I1: immutable, safe to share
		ID:         s.ID,
		Width:      s.Width,
	}
}

func (s *Struct) Undefined(ctx smt.Context) Value {
	ns := s.Copy().(*Struct)
	for _, name := range ns.Order {
		ns.Fields[name] = ns.Fields[name].Undefined(ctx)
	}
	return ns
}

// Get returns a field's current value by name.
func (s *Struct) Get(name string) (Value, bool) {
	v, ok := s.Fields[name]
	return v, ok
}

// Set overwrites a field's value. The caller is responsible for checking
// that name is already declared (I1): Set never adds a new field.
func (s *Struct) Set(name string, v Value) {
	s.Fields[name] = v
}

// HasField reports whether name is one of the struct's declared fields.
func (s *Struct) HasField(name string) bool {
	return slices.Contains(s.Order, name)
}
