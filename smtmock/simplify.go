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

package smtmock

import (
	"math/big"

	"github.com/p4gauntlet/toz3go/smt"
)

// Simplify performs bottom-up constant folding plus a handful of algebraic
// identities (double negation, and/or with a constant operand, ite with a
// constant condition or identical arms, x band x = x, reflexive equality).
// It never fails: if no rule applies the node is rebuilt with
// its simplified children.
func (c *Context) Simplify(t smt.Term) smt.Term {
	return simplify(asTerm(t))
}

func simplify(t *term) *term {
	switch t.op {
	case opBVLit, opBVConst, opBoolLit, opBoolConst, opIntLit:
		return t
	}

	args := make([]*term, len(t.args))
	for i, a := range t.args {
		args[i] = simplify(a)
	}

	switch t.op {
	case opNot:
		a := args[0]
		if a.op == opBoolLit {
			return &term{op: opBoolLit, sort: smt.SortBool, b: !a.b}
		}
		if a.op == opNot {
			return a.args[0]
		}
	case opAnd:
		a, b := args[0], args[1]
		if a.op == opBoolLit {
			if !a.b {
				return a
			}
			return b
		}
		if b.op == opBoolLit {
			if !b.b {
				return b
			}
			return a
		}
	case opOr:
		a, b := args[0], args[1]
		if a.op == opBoolLit {
			if a.b {
				return a
			}
			return b
		}
		if b.op == opBoolLit {
			if b.b {
				return b
			}
			return a
		}
	case opAdd, opSub, opMul:
		if a, b, ok := bothLit(args); ok {
			var v *big.Int
			switch t.op {
			case opAdd:
				v = new(big.Int).Add(a, b)
			case opSub:
				v = new(big.Int).Sub(a, b)
			case opMul:
				v = new(big.Int).Mul(a, b)
			}
			return &term{op: opBVLit, sort: smt.SortBV, width: t.width, bv: mask(v, t.width)}
		}
	case opUDiv, opURem:
		if a, b, ok := bothLit(args); ok && b.Sign() != 0 {
			var v *big.Int
			if t.op == opUDiv {
				v = new(big.Int).Div(a, b)
			} else {
				v = new(big.Int).Mod(a, b)
			}
			return &term{op: opBVLit, sort: smt.SortBV, width: t.width, bv: mask(v, t.width)}
		}
	case opSDiv, opSRem:
		if a, b, ok := bothLit(args); ok && b.Sign() != 0 {
			sa, sb := toSigned(a, t.width), toSigned(b, t.width)
			var v *big.Int
			if t.op == opSDiv {
				v = new(big.Int).Quo(sa, sb)
			} else {
				v = new(big.Int).Rem(sa, sb)
			}
			return &term{op: opBVLit, sort: smt.SortBV, width: t.width, bv: fromSigned(v, t.width)}
		}
	case opShl, opLShr:
		if a, b, ok := bothLit(args); ok {
			n := uint(b.Uint64())
			var v *big.Int
			if t.op == opShl {
				v = new(big.Int).Lsh(a, n)
			} else {
				v = new(big.Int).Rsh(a, n)
			}
			return &term{op: opBVLit, sort: smt.SortBV, width: t.width, bv: mask(v, t.width)}
		}
	case opAShr:
		if a, b, ok := bothLit(args); ok {
			sa := toSigned(a, args[0].width)
			v := new(big.Int).Rsh(sa, uint(b.Uint64()))
			return &term{op: opBVLit, sort: smt.SortBV, width: t.width, bv: fromSigned(v, t.width)}
		}
	case opULT, opULE, opUGT, opUGE:
		if a, b, ok := bothLit(args); ok {
			return boolLitFromCmp(a.Cmp(b), t.op)
		}
	case opSLT, opSLE, opSGT, opSGE:
		if a, b, ok := bothLit(args); ok {
			sa, sb := toSigned(a, args[0].width), toSigned(b, args[0].width)
			return boolLitFromCmp(sa.Cmp(sb), t.op)
		}
	case opEq:
		a, b := args[0], args[1]
		if equalStructurally(a, b) {
			return &term{op: opBoolLit, sort: smt.SortBool, b: true}
		}
		if lv, ok := litValue(a); ok {
			if rv, ok2 := litValue(b); ok2 {
				return &term{op: opBoolLit, sort: smt.SortBool, b: lv.Cmp(rv) == 0}
			}
		}
	case opConcat:
		if a, b, ok := bothLit(args); ok {
			v := new(big.Int).Lsh(a, uint(args[1].width))
			v.Or(v, b)
			return &term{op: opBVLit, sort: smt.SortBV, width: t.width, bv: mask(v, t.width)}
		}
	case opZeroExt:
		if a := args[0]; a.op == opBVLit {
			return &term{op: opBVLit, sort: smt.SortBV, width: t.width, bv: mask(a.bv, t.width)}
		}
	case opSignExt:
		if a := args[0]; a.op == opBVLit {
			sv := toSigned(a.bv, a.width)
			return &term{op: opBVLit, sort: smt.SortBV, width: t.width, bv: fromSigned(sv, t.width)}
		}
	case opExtract:
		if a := args[0]; a.op == opBVLit {
			v := new(big.Int).Rsh(a.bv, uint(t.lo))
			return &term{op: opBVLit, sort: smt.SortBV, width: t.width, bv: mask(v, t.width)}
		}
	case opIntToBV:
		if a := args[0]; a.op == opIntLit {
			return &term{op: opBVLit, sort: smt.SortBV, width: t.width, bv: mask(a.intv, t.width)}
		}
	case opBVToInt:
		if a := args[0]; a.op == opBVLit {
			return &term{op: opIntLit, sort: smt.SortInt, intv: new(big.Int).Set(a.bv)}
		}
	case opIntAdd, opIntSub, opIntMul:
		if a, b, ok := bothLit(args); ok {
			var v *big.Int
			switch t.op {
			case opIntAdd:
				v = new(big.Int).Add(a, b)
			case opIntSub:
				v = new(big.Int).Sub(a, b)
			case opIntMul:
				v = new(big.Int).Mul(a, b)
			}
			return &term{op: opIntLit, sort: smt.SortInt, intv: v}
		}
	case opIntDiv, opIntMod:
		if a, b, ok := bothLit(args); ok && b.Sign() != 0 {
			var v *big.Int
			if t.op == opIntDiv {
				v = new(big.Int).Div(a, b)
			} else {
				v = new(big.Int).Mod(a, b)
			}
			return &term{op: opIntLit, sort: smt.SortInt, intv: v}
		}
	case opIntLt, opIntLe, opIntGt, opIntGe:
		if a, b, ok := bothLit(args); ok {
			var v bool
			switch t.op {
			case opIntLt:
				v = a.Cmp(b) < 0
			case opIntLe:
				v = a.Cmp(b) <= 0
			case opIntGt:
				v = a.Cmp(b) > 0
			case opIntGe:
				v = a.Cmp(b) >= 0
			}
			return &term{op: opBoolLit, sort: smt.SortBool, b: v}
		}
	case opBVNot:
		if a := args[0]; a.op == opBVLit {
			v := new(big.Int).Not(a.bv)
			return &term{op: opBVLit, sort: smt.SortBV, width: t.width, bv: mask(v, t.width)}
		}
	case opBVAnd, opBVOr, opBVXor:
		if t.op == opBVAnd && equalStructurally(args[0], args[1]) {
			return args[0]
		}
		if a, b, ok := bothLit(args); ok {
			var v *big.Int
			switch t.op {
			case opBVAnd:
				v = new(big.Int).And(a, b)
			case opBVOr:
				v = new(big.Int).Or(a, b)
			case opBVXor:
				v = new(big.Int).Xor(a, b)
			}
			return &term{op: opBVLit, sort: smt.SortBV, width: t.width, bv: mask(v, t.width)}
		}
	case opIte:
		cond := args[0]
		if cond.op == opBoolLit {
			if cond.b {
				return args[1]
			}
			return args[2]
		}
		if equalStructurally(args[1], args[2]) {
			return args[1]
		}
	}

	out := *t
	out.args = args
	return &out
}

func bothLit(args []*term) (*big.Int, *big.Int, bool) {
	if len(args) != 2 {
		return nil, nil, false
	}
	a, ok1 := litValue(args[0])
	b, ok2 := litValue(args[1])
	return a, b, ok1 && ok2
}

func litValue(t *term) (*big.Int, bool) {
	switch t.op {
	case opBVLit:
		return t.bv, true
	case opIntLit:
		return t.intv, true
	}
	return nil, false
}

func boolLitFromCmp(cmp int, op opKind) *term {
	var v bool
	switch op {
	case opULT, opSLT:
		v = cmp < 0
	case opULE, opSLE:
		v = cmp <= 0
	case opUGT, opSGT:
		v = cmp > 0
	case opUGE, opSGE:
		v = cmp >= 0
	}
	return &term{op: opBoolLit, sort: smt.SortBool, b: v}
}

func equalStructurally(a, b *term) bool {
	if a == b {
		return true
	}
	if a.op != b.op || a.sort != b.sort || a.width != b.width {
		return false
	}
	switch a.op {
	case opBVLit:
		return a.bv.Cmp(b.bv) == 0
	case opIntLit:
		return a.intv.Cmp(b.intv) == 0
	case opBoolLit:
		return a.b == b.b
	case opBVConst, opBoolConst:
		return a.name == b.name
	}
	if a.hi != b.hi || a.lo != b.lo || len(a.args) != len(b.args) {
		return false
	}
	for i := range a.args {
		if !equalStructurally(a.args[i], b.args[i]) {
			return false
		}
	}
	return true
}
