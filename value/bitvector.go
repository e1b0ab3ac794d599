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

// Bitvector is a bounded, modular-arithmetic symbolic value. Its Term may
// also carry a boolean sort: P4 conditions and header validity flags are
// represented as a Bitvector wrapping a bool-sorted term, per spec.md's
// cast rule ("Bitvector->bool: accept bool-sorted terms unchanged").
type Bitvector struct {
	Term   smt.Term
	Signed bool
}

func NewBitvector(t smt.Term, signed bool) *Bitvector {
	return &Bitvector{Term: t, Signed: signed}
}

func (b *Bitvector) Kind() Kind { return KindBitvector }

func (b *Bitvector) Copy() Value {
	return &Bitvector{Term: b.Term, Signed: b.Signed}
}

// Width is the bit width of the wrapped term; a bool-sorted term counts as
// width 1 (spec.md §3: "booleans count as 1").
func (b *Bitvector) Width() int {
	if b.Term.Sort() == smt.SortBool {
		return 1
	}
	return b.Term.BVWidth()
}

func (b *Bitvector) Undefined(ctx smt.Context) Value {
	if b.Term.Sort() == smt.SortBool {
		return &Bitvector{Term: ctx.FreshBoolConst("undef"), Signed: b.Signed}
	}
	return &Bitvector{Term: ctx.FreshBVConst("undef", b.Width()), Signed: b.Signed}
}
