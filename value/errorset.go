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

// ErrorSet has the same shape as Enum (spec.md §3).
type ErrorSet struct {
	TypeName string
	Order    []string
	Members  map[string]*Bitvector
	ID       uint64
}

func (e *ErrorSet) Kind() Kind { return KindErrorSet }

func (e *ErrorSet) Copy() Value {
	members := make(map[string]*Bitvector, len(e.Members))
	for k, v := range e.Members {
		members[k] = v.Copy().(*Bitvector)
	}
	return &ErrorSet{TypeName: e.TypeName, Order: append([]string(nil), e.Order...), Members: members, ID: e.ID}
}

func (e *ErrorSet) Undefined(ctx smt.Context) Value { return e }

func (e *ErrorSet) Get(name string) (*Bitvector, bool) {
	v, ok := e.Members[name]
	return v, ok
}
