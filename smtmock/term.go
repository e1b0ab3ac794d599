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

// Package smtmock is a pure-Go reference implementation of smt.Context. It
// builds an explicit term DAG and implements Simplify with constant folding
// plus a handful of algebraic identities, which is enough to make spec.md
// §8's testable properties and worked scenarios observably true without
// requiring cgo or a system Z3 install. It plays the same role in this
// repository's test suite that a scalar reference implementation plays
// alongside a hardware-accelerated path in the teacher package (see
// vm/bctest.go in the retrieval pack).
package smtmock

import (
	"fmt"
	"math/big"

	"github.com/p4gauntlet/toz3go/smt"
)

type opKind int

const (
	opBVLit opKind = iota
	opBVConst
	opBoolLit
	opBoolConst
	opIntLit
	opZeroExt
	opSignExt
	opExtract
	opNot
	opAnd
	opOr
	opAdd
	opSub
	opMul
	opUDiv
	opSDiv
	opURem
	opSRem
	opShl
	opLShr
	opAShr
	opULT
	opSLT
	opULE
	opSLE
	opUGT
	opSGT
	opUGE
	opSGE
	opEq
	opConcat
	opIntToBV
	opBVToInt
	opIte
	opIntAdd
	opIntSub
	opIntMul
	opIntDiv
	opIntMod
	opIntLt
	opIntLe
	opIntGt
	opIntGe
	opBVNot
	opBVAnd
	opBVOr
	opBVXor
)

// term is the concrete Term implementation: a node in an expression DAG,
// held by callers as the small opaque handle spec.md §5 describes.
type term struct {
	op    opKind
	sort  smt.SortKind
	width int // meaningful when sort == smt.SortBV

	bv   *big.Int // canonical unsigned value in [0, 2^width), for opBVLit
	intv *big.Int // for opIntLit
	b    bool     // for opBoolLit
	name string   // for opBVConst/opBoolConst

	args   []*term
	hi, lo int // opExtract
}

func (t *term) Sort() smt.SortKind { return t.sort }
func (t *term) BVWidth() int       { return t.width }

func (t *term) String() string {
	switch t.op {
	case opBVLit:
		return fmt.Sprintf("(_ bv%s %d)", t.bv.String(), t.width)
	case opIntLit:
		return t.intv.String()
	case opBoolLit:
		if t.b {
			return "true"
		}
		return "false"
	case opBVConst, opBoolConst:
		return t.name
	default:
		s := opNames[t.op] + "("
		for i, a := range t.args {
			if i > 0 {
				s += ", "
			}
			s += a.String()
		}
		if t.op == opExtract {
			s += fmt.Sprintf(", %d, %d", t.hi, t.lo)
		}
		return s + ")"
	}
}

var opNames = map[opKind]string{
	opZeroExt: "zero_extend", opSignExt: "sign_extend", opExtract: "extract",
	opNot: "not", opAnd: "and", opOr: "or",
	opAdd: "bvadd", opSub: "bvsub", opMul: "bvmul",
	opUDiv: "bvudiv", opSDiv: "bvsdiv", opURem: "bvurem", opSRem: "bvsrem",
	opShl: "bvshl", opLShr: "bvlshr", opAShr: "bvashr",
	opULT: "bvult", opSLT: "bvslt", opULE: "bvule", opSLE: "bvsle",
	opUGT: "bvugt", opSGT: "bvsgt", opUGE: "bvuge", opSGE: "bvsge",
	opEq: "=", opConcat: "concat",
	opIntToBV: "int2bv", opBVToInt: "bv2int", opIte: "ite",
	opIntAdd: "+", opIntSub: "-", opIntMul: "*", opIntDiv: "div", opIntMod: "mod",
	opIntLt: "<", opIntLe: "<=", opIntGt: ">", opIntGe: ">=",
	opBVNot: "bvnot", opBVAnd: "bvand", opBVOr: "bvor", opBVXor: "bvxor",
}
