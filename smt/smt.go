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

// Package smt defines the SMT backend contract the symbolic interpreter
// consumes (spec.md §6). The backend itself is an external collaborator: a
// term-construction context with a fixed algebra. This package only pins
// the interface; concrete backends live in smtz3 (a real Z3 binding) and
// smtmock (a pure-Go reference used by this repository's tests).
//
// The method set mirrors the real Go Z3 binding surfaced by the retrieval
// pack (github.com/aclements/go-z3, package z3, type BV) method-for-method:
// signed and unsigned arithmetic/compare/shift are distinct methods rather
// than one method with a signedness flag, because that is the shape of the
// domain dependency this contract stands in for.
package smt

import "math/big"

// SortKind is the closed set of term sorts the interpreter needs.
type SortKind int

const (
	SortBool SortKind = iota
	SortBV
	SortInt
)

// Term is an opaque handle into a Context. Per spec.md §5, terms are small
// handles and are held by value, not by reference; they carry no lifetime
// of their own distinct from the Context that produced them.
type Term interface {
	Sort() SortKind
	// BVWidth is only meaningful when Sort() == SortBV.
	BVWidth() int
	String() string
}

// Context is the opaque term-construction context. All construction is
// append-only (spec.md §5): a Context never mutates a previously returned
// Term.
type Context interface {
	// --- bitvector construction ---
	BVLit(value *big.Int, width int) Term
	BVConst(name string, width int) Term
	FreshBVConst(prefix string, width int) Term
	ZeroExtend(t Term, extra int) (Term, error)
	SignExtend(t Term, extra int) (Term, error)
	Extract(t Term, hi, lo int) (Term, error)

	// --- boolean construction ---
	BoolVal(b bool) Term
	BoolConst(name string) Term
	FreshBoolConst(prefix string) Term
	Not(t Term) (Term, error)
	And(a, b Term) (Term, error)
	Or(a, b Term) (Term, error)

	// IntConst/FreshIntConst round out "fresh named constants of a given
	// sort" (spec.md §6) for the arbitrary-precision integer sort.
	IntConst(name string) Term
	FreshIntConst(prefix string) Term

	// --- bitvector arithmetic (modular) ---
	Add(a, b Term) (Term, error)
	Sub(a, b Term) (Term, error)
	Mul(a, b Term) (Term, error)

	// --- bitvector bitwise (distinct from the boolean-only And/Or/Not
	// above: these operate lanewise over a bitvector sort) ---
	BVNot(a Term) (Term, error)
	BVAnd(a, b Term) (Term, error)
	BVOr(a, b Term) (Term, error)
	BVXor(a, b Term) (Term, error)

	// --- bitvector arithmetic, signedness-split ---
	UDiv(a, b Term) (Term, error)
	SDiv(a, b Term) (Term, error)
	URem(a, b Term) (Term, error)
	SRem(a, b Term) (Term, error)
	Shl(a, b Term) (Term, error)
	LShr(a, b Term) (Term, error)
	AShr(a, b Term) (Term, error)

	// --- comparison, signedness-split ---
	ULT(a, b Term) (Term, error)
	SLT(a, b Term) (Term, error)
	ULE(a, b Term) (Term, error)
	SLE(a, b Term) (Term, error)
	UGT(a, b Term) (Term, error)
	SGT(a, b Term) (Term, error)
	UGE(a, b Term) (Term, error)
	SGE(a, b Term) (Term, error)
	Eq(a, b Term) (Term, error)

	Concat(a, b Term) (Term, error)

	// --- arbitrary-precision integers ---
	IntLit(value *big.Int) Term
	IntFromDecimal(decimal string) (Term, error)

	// Arbitrary-precision integer arithmetic/comparison, used only when
	// two IntLiteral operands meet without ever being coerced to a sized
	// bitvector (spec.md I4).
	IntAdd(a, b Term) (Term, error)
	IntSub(a, b Term) (Term, error)
	IntMul(a, b Term) (Term, error)
	IntDiv(a, b Term) (Term, error)
	IntMod(a, b Term) (Term, error)
	IntLt(a, b Term) (Term, error)
	IntLe(a, b Term) (Term, error)
	IntGt(a, b Term) (Term, error)
	IntGe(a, b Term) (Term, error)
	// IntToBV normalizes the decimal representation of t (which must have
	// SortInt) and constructs a bitvector literal of the given width.
	IntToBV(t Term, width int) (Term, error)
	// BVToInt reinterprets t (which must have SortBV) as a nonnegative
	// integer via decimal normalization of the term.
	BVToInt(t Term) (Term, error)

	Ite(cond, then, els Term) (Term, error)

	// Simplify performs a best-effort reduction; it never fails, and in
	// the worst case returns t unchanged.
	Simplify(t Term) Term
}
