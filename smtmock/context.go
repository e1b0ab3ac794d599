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
	"fmt"
	"math/big"

	"github.com/p4gauntlet/toz3go/internal/idgen"
	"github.com/p4gauntlet/toz3go/smt"
)

// Context is a pure-Go smt.Context. It is safe for use by a single
// evaluation only, matching spec.md §5 (no concurrency within one
// evaluation; independent evaluations get independent contexts).
type Context struct {
	fresh int
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{}
}

func asTerm(t smt.Term) *term {
	mt, ok := t.(*term)
	if !ok {
		panic(fmt.Sprintf("smtmock: foreign term %T used with this Context", t))
	}
	return mt
}

func bvTerm(a smt.Term) *term {
	t := asTerm(a)
	if t.sort != smt.SortBV {
		panic(fmt.Sprintf("smtmock: expected bitvector sort, got %v", t.sort))
	}
	return t
}

func boolTerm(a smt.Term) *term {
	t := asTerm(a)
	if t.sort != smt.SortBool {
		panic(fmt.Sprintf("smtmock: expected boolean sort, got %v", t.sort))
	}
	return t
}

func sameWidth(a, b *term) error {
	if a.width != b.width {
		return fmt.Errorf("smtmock: width mismatch: %d vs %d", a.width, b.width)
	}
	return nil
}

// --- construction ---

func (c *Context) BVLit(value *big.Int, width int) smt.Term {
	return &term{op: opBVLit, sort: smt.SortBV, width: width, bv: mask(value, width)}
}

func (c *Context) BVConst(name string, width int) smt.Term {
	return &term{op: opBVConst, sort: smt.SortBV, width: width, name: name}
}

func (c *Context) FreshBVConst(prefix string, width int) smt.Term {
	c.fresh++
	return c.BVConst(idgen.FreshName(prefix), width)
}

func (c *Context) BoolVal(b bool) smt.Term {
	return &term{op: opBoolLit, sort: smt.SortBool, b: b}
}

func (c *Context) BoolConst(name string) smt.Term {
	return &term{op: opBoolConst, sort: smt.SortBool, name: name}
}

func (c *Context) FreshBoolConst(prefix string) smt.Term {
	c.fresh++
	return c.BoolConst(idgen.FreshName(prefix))
}

func (c *Context) IntLit(value *big.Int) smt.Term {
	return &term{op: opIntLit, sort: smt.SortInt, intv: new(big.Int).Set(value)}
}

func (c *Context) IntConst(name string) smt.Term {
	return &term{op: opBVConst, sort: smt.SortInt, name: name}
}

func (c *Context) FreshIntConst(prefix string) smt.Term {
	c.fresh++
	return c.IntConst(idgen.FreshName(prefix))
}

func (c *Context) IntFromDecimal(decimal string) (smt.Term, error) {
	v, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		return nil, fmt.Errorf("smtmock: %q is not a decimal integer", decimal)
	}
	return c.IntLit(v), nil
}

// --- bitvector shaping ---

func (c *Context) ZeroExtend(t smt.Term, extra int) (smt.Term, error) {
	a := bvTerm(t)
	if extra < 0 {
		return nil, fmt.Errorf("smtmock: ZeroExtend negative extra %d", extra)
	}
	return &term{op: opZeroExt, sort: smt.SortBV, width: a.width + extra, args: []*term{a}}, nil
}

func (c *Context) SignExtend(t smt.Term, extra int) (smt.Term, error) {
	a := bvTerm(t)
	if extra < 0 {
		return nil, fmt.Errorf("smtmock: SignExtend negative extra %d", extra)
	}
	return &term{op: opSignExt, sort: smt.SortBV, width: a.width + extra, args: []*term{a}}, nil
}

func (c *Context) Extract(t smt.Term, hi, lo int) (smt.Term, error) {
	a := bvTerm(t)
	if hi < lo || lo < 0 || hi >= a.width {
		return nil, fmt.Errorf("smtmock: Extract(%d,%d) out of range for width %d", hi, lo, a.width)
	}
	return &term{op: opExtract, sort: smt.SortBV, width: hi - lo + 1, hi: hi, lo: lo, args: []*term{a}}, nil
}

// --- boolean ---

func (c *Context) Not(t smt.Term) (smt.Term, error) {
	a := boolTerm(t)
	return &term{op: opNot, sort: smt.SortBool, args: []*term{a}}, nil
}

func (c *Context) And(x, y smt.Term) (smt.Term, error) {
	a, b := boolTerm(x), boolTerm(y)
	return &term{op: opAnd, sort: smt.SortBool, args: []*term{a, b}}, nil
}

func (c *Context) Or(x, y smt.Term) (smt.Term, error) {
	a, b := boolTerm(x), boolTerm(y)
	return &term{op: opOr, sort: smt.SortBool, args: []*term{a, b}}, nil
}

// --- bitvector arithmetic ---

func bvBinOp(op opKind, x, y smt.Term) (*term, error) {
	a, b := bvTerm(x), bvTerm(y)
	if err := sameWidth(a, b); err != nil {
		return nil, err
	}
	return &term{op: op, sort: smt.SortBV, width: a.width, args: []*term{a, b}}, nil
}

func (c *Context) Add(x, y smt.Term) (smt.Term, error) { return bvBinOp(opAdd, x, y) }
func (c *Context) Sub(x, y smt.Term) (smt.Term, error) { return bvBinOp(opSub, x, y) }
func (c *Context) Mul(x, y smt.Term) (smt.Term, error) { return bvBinOp(opMul, x, y) }

func (c *Context) UDiv(x, y smt.Term) (smt.Term, error) { return bvBinOp(opUDiv, x, y) }
func (c *Context) SDiv(x, y smt.Term) (smt.Term, error) { return bvBinOp(opSDiv, x, y) }
func (c *Context) URem(x, y smt.Term) (smt.Term, error) { return bvBinOp(opURem, x, y) }
func (c *Context) SRem(x, y smt.Term) (smt.Term, error) { return bvBinOp(opSRem, x, y) }
func (c *Context) Shl(x, y smt.Term) (smt.Term, error)  { return bvBinOp(opShl, x, y) }
func (c *Context) LShr(x, y smt.Term) (smt.Term, error) { return bvBinOp(opLShr, x, y) }
func (c *Context) AShr(x, y smt.Term) (smt.Term, error) { return bvBinOp(opAShr, x, y) }

func (c *Context) BVNot(x smt.Term) (smt.Term, error) {
	a := bvTerm(x)
	return &term{op: opBVNot, sort: smt.SortBV, width: a.width, args: []*term{a}}, nil
}

func (c *Context) BVAnd(x, y smt.Term) (smt.Term, error) { return bvBinOp(opBVAnd, x, y) }
func (c *Context) BVOr(x, y smt.Term) (smt.Term, error)  { return bvBinOp(opBVOr, x, y) }
func (c *Context) BVXor(x, y smt.Term) (smt.Term, error) { return bvBinOp(opBVXor, x, y) }

func boolBinOp(op opKind, x, y smt.Term) (*term, error) {
	a, b := bvTerm(x), bvTerm(y)
	if err := sameWidth(a, b); err != nil {
		return nil, err
	}
	return &term{op: op, sort: smt.SortBool, args: []*term{a, b}}, nil
}

func (c *Context) ULT(x, y smt.Term) (smt.Term, error) { return boolBinOp(opULT, x, y) }
func (c *Context) SLT(x, y smt.Term) (smt.Term, error) { return boolBinOp(opSLT, x, y) }
func (c *Context) ULE(x, y smt.Term) (smt.Term, error) { return boolBinOp(opULE, x, y) }
func (c *Context) SLE(x, y smt.Term) (smt.Term, error) { return boolBinOp(opSLE, x, y) }
func (c *Context) UGT(x, y smt.Term) (smt.Term, error) { return boolBinOp(opUGT, x, y) }
func (c *Context) SGT(x, y smt.Term) (smt.Term, error) { return boolBinOp(opSGT, x, y) }
func (c *Context) UGE(x, y smt.Term) (smt.Term, error) { return boolBinOp(opUGE, x, y) }
func (c *Context) SGE(x, y smt.Term) (smt.Term, error) { return boolBinOp(opSGE, x, y) }

func (c *Context) Eq(x, y smt.Term) (smt.Term, error) {
	a, b := asTerm(x), asTerm(y)
	if a.sort != b.sort {
		return nil, fmt.Errorf("smtmock: Eq sort mismatch: %v vs %v", a.sort, b.sort)
	}
	if a.sort == smt.SortBV {
		if err := sameWidth(a, b); err != nil {
			return nil, err
		}
	}
	return &term{op: opEq, sort: smt.SortBool, args: []*term{a, b}}, nil
}

func (c *Context) Concat(x, y smt.Term) (smt.Term, error) {
	a, b := bvTerm(x), bvTerm(y)
	return &term{op: opConcat, sort: smt.SortBV, width: a.width + b.width, args: []*term{a, b}}, nil
}

func (c *Context) IntToBV(t smt.Term, width int) (smt.Term, error) {
	a := asTerm(t)
	if a.sort != smt.SortInt {
		return nil, fmt.Errorf("smtmock: IntToBV expects an integer-sorted term, got %v", a.sort)
	}
	return &term{op: opIntToBV, sort: smt.SortBV, width: width, args: []*term{a}}, nil
}

func (c *Context) BVToInt(t smt.Term) (smt.Term, error) {
	a := bvTerm(t)
	return &term{op: opBVToInt, sort: smt.SortInt, args: []*term{a}}, nil
}

func intBinOp(op opKind, x, y smt.Term) (*term, error) {
	a, b := asTerm(x), asTerm(y)
	if a.sort != smt.SortInt || b.sort != smt.SortInt {
		return nil, fmt.Errorf("smtmock: %s expects integer-sorted operands", opNames[op])
	}
	return &term{op: op, sort: smt.SortInt, args: []*term{a, b}}, nil
}

func intCmpOp(op opKind, x, y smt.Term) (*term, error) {
	a, b := asTerm(x), asTerm(y)
	if a.sort != smt.SortInt || b.sort != smt.SortInt {
		return nil, fmt.Errorf("smtmock: %s expects integer-sorted operands", opNames[op])
	}
	return &term{op: op, sort: smt.SortBool, args: []*term{a, b}}, nil
}

func (c *Context) IntAdd(x, y smt.Term) (smt.Term, error) { return intBinOp(opIntAdd, x, y) }
func (c *Context) IntSub(x, y smt.Term) (smt.Term, error) { return intBinOp(opIntSub, x, y) }
func (c *Context) IntMul(x, y smt.Term) (smt.Term, error) { return intBinOp(opIntMul, x, y) }
func (c *Context) IntDiv(x, y smt.Term) (smt.Term, error) { return intBinOp(opIntDiv, x, y) }
func (c *Context) IntMod(x, y smt.Term) (smt.Term, error) { return intBinOp(opIntMod, x, y) }
func (c *Context) IntLt(x, y smt.Term) (smt.Term, error)  { return intCmpOp(opIntLt, x, y) }
func (c *Context) IntLe(x, y smt.Term) (smt.Term, error)  { return intCmpOp(opIntLe, x, y) }
func (c *Context) IntGt(x, y smt.Term) (smt.Term, error)  { return intCmpOp(opIntGt, x, y) }
func (c *Context) IntGe(x, y smt.Term) (smt.Term, error)  { return intCmpOp(opIntGe, x, y) }

func (c *Context) Ite(cond, then, els smt.Term) (smt.Term, error) {
	cd := boolTerm(cond)
	th, el := asTerm(then), asTerm(els)
	if th.sort != el.sort {
		return nil, fmt.Errorf("smtmock: Ite branch sort mismatch: %v vs %v", th.sort, el.sort)
	}
	if th.sort == smt.SortBV {
		if err := sameWidth(th, el); err != nil {
			return nil, err
		}
	}
	return &term{op: opIte, sort: th.sort, width: th.width, args: []*term{cd, th, el}}, nil
}
