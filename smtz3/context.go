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

package smtz3

import (
	"fmt"
	"math/big"

	"github.com/aclements/go-z3/z3"

	"github.com/p4gauntlet/toz3go/internal/idgen"
	"github.com/p4gauntlet/toz3go/smt"
)

// Context adapts a real *z3.Context to the smt.Context contract. One
// Context belongs to exactly one evaluation (spec.md §5); it is built by
// cmd/toz3 when the host has libz3 available and this package is compiled
// in via the z3 build tag.
type Context struct {
	z *z3.Context
}

// New wraps an existing *z3.Context. Constructing the underlying z3.Context
// (z3.NewContext(z3.NewContextConfig())) is the caller's responsibility,
// matching the binding's own resource-ownership convention.
func New(z *z3.Context) *Context { return &Context{z: z} }

func (c *Context) BVLit(value *big.Int, width int) smt.Term {
	return wrap(c.z.FromBigInt(value, c.z.BVSort(width)), smt.SortBV, width)
}

func (c *Context) BVConst(name string, width int) smt.Term {
	return wrap(c.z.BVConst(name, width), smt.SortBV, width)
}

func (c *Context) FreshBVConst(prefix string, width int) smt.Term {
	return c.BVConst(idgen.FreshName(prefix), width)
}

func (c *Context) ZeroExtend(t smt.Term, extra int) (smt.Term, error) {
	bv := asBV(t)
	return wrap(bv.ZeroExtend(extra), smt.SortBV, bv.Sort().BVSize()+extra), nil
}

func (c *Context) SignExtend(t smt.Term, extra int) (smt.Term, error) {
	bv := asBV(t)
	return wrap(bv.SignExtend(extra), smt.SortBV, bv.Sort().BVSize()+extra), nil
}

func (c *Context) Extract(t smt.Term, hi, lo int) (smt.Term, error) {
	return wrap(asBV(t).Extract(hi, lo), smt.SortBV, hi-lo+1), nil
}

func (c *Context) BoolVal(b bool) smt.Term {
	return wrap(c.z.FromBool(b), smt.SortBool, 0)
}

func (c *Context) BoolConst(name string) smt.Term {
	return wrap(c.z.Const(name, c.z.BoolSort()).(z3.Bool), smt.SortBool, 0)
}

func (c *Context) FreshBoolConst(prefix string) smt.Term {
	return c.BoolConst(idgen.FreshName(prefix))
}

func (c *Context) IntConst(name string) smt.Term {
	return wrap(c.z.Const(name, c.z.IntSort()).(z3.Int), smt.SortInt, 0)
}

func (c *Context) FreshIntConst(prefix string) smt.Term {
	return c.IntConst(idgen.FreshName(prefix))
}

func (c *Context) Not(t smt.Term) (smt.Term, error) {
	return wrap(asBool(t).Not(), smt.SortBool, 0), nil
}

func (c *Context) And(a, b smt.Term) (smt.Term, error) {
	return wrap(asBool(a).And(asBool(b)), smt.SortBool, 0), nil
}

func (c *Context) Or(a, b smt.Term) (smt.Term, error) {
	return wrap(asBool(a).Or(asBool(b)), smt.SortBool, 0), nil
}

func bvWidth(t smt.Term) int { return t.(*term).width }

func (c *Context) Add(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).Add(asBV(b)), smt.SortBV, bvWidth(a)), nil
}
func (c *Context) Sub(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).Sub(asBV(b)), smt.SortBV, bvWidth(a)), nil
}
func (c *Context) Mul(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).Mul(asBV(b)), smt.SortBV, bvWidth(a)), nil
}

func (c *Context) BVNot(a smt.Term) (smt.Term, error) {
	return wrap(asBV(a).Not(), smt.SortBV, bvWidth(a)), nil
}
func (c *Context) BVAnd(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).And(asBV(b)), smt.SortBV, bvWidth(a)), nil
}
func (c *Context) BVOr(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).Or(asBV(b)), smt.SortBV, bvWidth(a)), nil
}
func (c *Context) BVXor(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).Xor(asBV(b)), smt.SortBV, bvWidth(a)), nil
}

func (c *Context) UDiv(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).UDiv(asBV(b)), smt.SortBV, bvWidth(a)), nil
}
func (c *Context) SDiv(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).SDiv(asBV(b)), smt.SortBV, bvWidth(a)), nil
}
func (c *Context) URem(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).URem(asBV(b)), smt.SortBV, bvWidth(a)), nil
}
func (c *Context) SRem(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).SRem(asBV(b)), smt.SortBV, bvWidth(a)), nil
}
func (c *Context) Shl(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).Lsh(asBV(b)), smt.SortBV, bvWidth(a)), nil
}
func (c *Context) LShr(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).URsh(asBV(b)), smt.SortBV, bvWidth(a)), nil
}
func (c *Context) AShr(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).SRsh(asBV(b)), smt.SortBV, bvWidth(a)), nil
}

func (c *Context) ULT(a, b smt.Term) (smt.Term, error) { return wrap(asBV(a).ULT(asBV(b)), smt.SortBool, 0), nil }
func (c *Context) SLT(a, b smt.Term) (smt.Term, error) { return wrap(asBV(a).SLT(asBV(b)), smt.SortBool, 0), nil }
func (c *Context) ULE(a, b smt.Term) (smt.Term, error) { return wrap(asBV(a).ULE(asBV(b)), smt.SortBool, 0), nil }
func (c *Context) SLE(a, b smt.Term) (smt.Term, error) { return wrap(asBV(a).SLE(asBV(b)), smt.SortBool, 0), nil }
func (c *Context) UGT(a, b smt.Term) (smt.Term, error) { return wrap(asBV(a).UGT(asBV(b)), smt.SortBool, 0), nil }
func (c *Context) SGT(a, b smt.Term) (smt.Term, error) { return wrap(asBV(a).SGT(asBV(b)), smt.SortBool, 0), nil }
func (c *Context) UGE(a, b smt.Term) (smt.Term, error) { return wrap(asBV(a).UGE(asBV(b)), smt.SortBool, 0), nil }
func (c *Context) SGE(a, b smt.Term) (smt.Term, error) { return wrap(asBV(a).SGE(asBV(b)), smt.SortBool, 0), nil }

func (c *Context) Eq(a, b smt.Term) (smt.Term, error) {
	ta, tb := a.(*term), b.(*term)
	return wrap(ta.expr.Eq(tb.expr), smt.SortBool, 0), nil
}

func (c *Context) Concat(a, b smt.Term) (smt.Term, error) {
	return wrap(asBV(a).Concat(asBV(b)), smt.SortBV, bvWidth(a)+bvWidth(b)), nil
}

func (c *Context) IntLit(value *big.Int) smt.Term {
	return wrap(c.z.FromBigInt(value, c.z.IntSort()), smt.SortInt, 0)
}

func (c *Context) IntFromDecimal(decimal string) (smt.Term, error) {
	v, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		return nil, smtErrf("invalid decimal literal %q", decimal)
	}
	return c.IntLit(v), nil
}

func (c *Context) IntAdd(a, b smt.Term) (smt.Term, error) { return wrap(asInt(a).Add(asInt(b)), smt.SortInt, 0), nil }
func (c *Context) IntSub(a, b smt.Term) (smt.Term, error) { return wrap(asInt(a).Sub(asInt(b)), smt.SortInt, 0), nil }
func (c *Context) IntMul(a, b smt.Term) (smt.Term, error) { return wrap(asInt(a).Mul(asInt(b)), smt.SortInt, 0), nil }
func (c *Context) IntDiv(a, b smt.Term) (smt.Term, error) { return wrap(asInt(a).Div(asInt(b)), smt.SortInt, 0), nil }
func (c *Context) IntMod(a, b smt.Term) (smt.Term, error) { return wrap(asInt(a).Mod(asInt(b)), smt.SortInt, 0), nil }
func (c *Context) IntLt(a, b smt.Term) (smt.Term, error)  { return wrap(asInt(a).LT(asInt(b)), smt.SortBool, 0), nil }
func (c *Context) IntLe(a, b smt.Term) (smt.Term, error)  { return wrap(asInt(a).LE(asInt(b)), smt.SortBool, 0), nil }
func (c *Context) IntGt(a, b smt.Term) (smt.Term, error)  { return wrap(asInt(a).GT(asInt(b)), smt.SortBool, 0), nil }
func (c *Context) IntGe(a, b smt.Term) (smt.Term, error)  { return wrap(asInt(a).GE(asInt(b)), smt.SortBool, 0), nil }

// IntToBV and BVToInt convert between the integer and bitvector sorts
// (spec.md §6). The binding has no direct int2bv wrapper, so IntToBV reads
// a literal integer term back as a big.Int and rebuilds it as a bitvector
// literal; a non-literal integer term is rejected with an error, unlike
// smtmock, which accepts it. BVToInt uses the binding's bv2int (UToInt).
func (c *Context) IntToBV(t smt.Term, width int) (smt.Term, error) {
	v, isLit := asInt(t).AsBigInt()
	if !isLit {
		return nil, smtErrf("int2bv of a non-literal integer term is not supported by this backend")
	}
	return c.BVLit(v, width), nil
}

func (c *Context) BVToInt(t smt.Term) (smt.Term, error) {
	return wrap(asBV(t).UToInt(), smt.SortInt, 0), nil
}

func (c *Context) Ite(cond, then, els smt.Term) (smt.Term, error) {
	te, ee := then.(*term), els.(*term)
	return wrap(asBool(cond).IfThenElse(te.expr, ee.expr), te.sort, te.width), nil
}

// Simplify delegates to the binding's own AST simplifier.
func (c *Context) Simplify(t smt.Term) smt.Term {
	tt := t.(*term)
	return wrap(tt.expr.Simplify(), tt.sort, tt.width)
}

func smtErrf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
