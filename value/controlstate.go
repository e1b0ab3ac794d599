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

// ControlVar is one (dotted-path, term) pair of a flattened ControlState.
type ControlVar struct {
	Path string
	Term smt.Term
}

// ControlState is the flattened output of an evaluated entry point: an
// ordered list of (dotted-path, term) pairs (spec.md §3, §6). It is
// produced, not mutated further, so Copy/Undefined are identity.
type ControlState struct {
	Vars []ControlVar
}

func (c *ControlState) Kind() Kind { return KindControlState }

func (c *ControlState) Copy() Value {
	return &ControlState{Vars: append([]ControlVar(nil), c.Vars...)}
}

func (c *ControlState) Undefined(smt.Context) Value { return c }
