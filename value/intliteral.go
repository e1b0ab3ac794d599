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

// IntLiteral is an arbitrary-precision integer value (spec.md I4): it
// coerces itself to a Bitvector's sort at each mixed use, but stays
// unbounded when combined with another IntLiteral.
type IntLiteral struct {
	Term smt.Term
}

func NewIntLiteral(t smt.Term) *IntLiteral {
	return &IntLiteral{Term: t}
}

func (i *IntLiteral) Kind() Kind { return KindIntLiteral }

func (i *IntLiteral) Copy() Value {
	return &IntLiteral{Term: i.Term}
}

func (i *IntLiteral) Undefined(ctx smt.Context) Value {
	return &IntLiteral{Term: ctx.FreshIntConst("undef")}
}
