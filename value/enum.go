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

import "github.com/p4gauntlet/toz3go/smt"

// Enum is an ordered map of named 32-bit constants, used both as the
// enum-type handle (Member access on it yields one named Bitvector) and,
// via its stable ID, as the basis for the single opaque 32-bit constant a
// gen_instance call produces for a variable of enum type.
type Enum struct {
	TypeName string
	Order    []string
	Members  map[string]*Bitvector
	ID       uint64
}

func (e *Enum) Kind() Kind { return KindEnum }

func (e *Enum) Copy() Value {
	members := make(map[string]*Bitvector, len(e.Members))
	for k, v := range e.Members {
		members[k] = v.Copy().(*Bitvector)
	}
	return &Enum{TypeName: e.TypeName, Order: append([]string(nil), e.Order...), Members: members, ID: e.ID}
}

// Undefined is a no-op: an enum's named constants are literals, not
// variable symbolic state (spec.md I5-adjacent: no independent lifetime).
func (e *Enum) Undefined(ctx smt.Context) Value { return e }

// Get returns the 32-bit Bitvector for a named member.
func (e *Enum) Get(name string) (*Bitvector, bool) {
	v, ok := e.Members[name]
	return v, ok
}
