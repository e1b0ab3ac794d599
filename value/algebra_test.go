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

package value_test

import (
	"math/big"
	"testing"

	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/smtmock"
	"github.com/p4gauntlet/toz3go/value"
)

func bv(ctx *smtmock.Context, v int64, width int, signed bool) *value.Bitvector {
	return value.NewBitvector(ctx.BVLit(big.NewInt(v), width), signed)
}

func intLit(ctx *smtmock.Context, v int64) *value.IntLiteral {
	return value.NewIntLiteral(ctx.IntLit(big.NewInt(v)))
}

func TestBinaryWidthAlignment(t *testing.T) {
	cases := []struct {
		name        string
		x, y        value.Value
		op          ast.BinaryOp
		wantSimple  string
	}{
		{
			name:       "equal width bitvectors add",
			x:          nil, // filled below
			y:          nil,
			op:         ast.OpAdd,
			wantSimple: "(_ bv12 8)",
		},
		{
			name:       "narrower right operand zero-extended to left width",
			op:         ast.OpAdd,
			wantSimple: "(_ bv13 8)",
		},
		{
			name:       "IntLiteral coerced to the Bitvector's own width",
			op:         ast.OpAdd,
			wantSimple: "(_ bv13 8)",
		},
	}

	ctx := smtmock.NewContext()
	cases[0].x, cases[0].y = bv(ctx, 5, 8, false), bv(ctx, 7, 8, false)
	cases[1].x, cases[1].y = bv(ctx, 8, 8, false), bv(ctx, 5, 4, false)
	cases[2].x, cases[2].y = bv(ctx, 8, 8, false), intLit(ctx, 5)

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := value.Binary(ctx, ast.Location{}, c.op, c.x, c.y)
			if err != nil {
				t.Fatalf("Binary: %v", err)
			}
			result := ctx.Simplify(got.(*value.Bitvector).Term).String()
			if result != c.wantSimple {
				t.Errorf("got %s, want %s", result, c.wantSimple)
			}
		})
	}
}

func TestBinarySignednessDispatch(t *testing.T) {
	ctx := smtmock.NewContext()
	x := bv(ctx, 1, 8, true)
	y := bv(ctx, 2, 8, true)

	div, err := value.Binary(ctx, ast.Location{}, ast.OpDiv, x, y)
	if err != nil {
		t.Fatalf("Binary div: %v", err)
	}
	if got := div.(*value.Bitvector).Term.String(); got[:7] != "bvsdiv(" {
		t.Errorf("signed div: got %q, want prefix bvsdiv(", got)
	}

	lt, err := value.Binary(ctx, ast.Location{}, ast.OpLt, x, y)
	if err != nil {
		t.Fatalf("Binary lt: %v", err)
	}
	if got := lt.(*value.Bitvector).Term.String(); got[:6] != "bvslt(" {
		t.Errorf("signed lt: got %q, want prefix bvslt(", got)
	}

	// mod is never signed-dispatched, even on signed operands.
	mod, err := value.Binary(ctx, ast.Location{}, ast.OpMod, x, y)
	if err != nil {
		t.Fatalf("Binary mod: %v", err)
	}
	if got := mod.(*value.Bitvector).Term.String(); got[:7] != "bvurem(" {
		t.Errorf("mod: got %q, want prefix bvurem(", got)
	}

	ux := bv(ctx, 1, 8, false)
	uy := bv(ctx, 2, 8, false)
	udiv, err := value.Binary(ctx, ast.Location{}, ast.OpDiv, ux, uy)
	if err != nil {
		t.Fatalf("Binary udiv: %v", err)
	}
	if got := udiv.(*value.Bitvector).Term.String(); got[:7] != "bvudiv(" {
		t.Errorf("unsigned div: got %q, want prefix bvudiv(", got)
	}
}

func TestAddSatSaturates(t *testing.T) {
	ctx := smtmock.NewContext()
	x := bv(ctx, 250, 8, false)
	y := bv(ctx, 10, 8, false)

	got, err := value.Binary(ctx, ast.Location{}, ast.OpAddSat, x, y)
	if err != nil {
		t.Fatalf("Binary add_sat: %v", err)
	}
	result := ctx.Simplify(got.(*value.Bitvector).Term).String()
	want := "(_ bv255 8)"
	if result != want {
		t.Errorf("got %s, want %s", result, want)
	}
}

func TestSubSatFloorsAtZero(t *testing.T) {
	ctx := smtmock.NewContext()
	x := bv(ctx, 3, 8, false)
	y := bv(ctx, 10, 8, false)

	got, err := value.Binary(ctx, ast.Location{}, ast.OpSubSat, x, y)
	if err != nil {
		t.Fatalf("Binary sub_sat: %v", err)
	}
	result := ctx.Simplify(got.(*value.Bitvector).Term).String()
	want := "(_ bv0 8)"
	if result != want {
		t.Errorf("got %s, want %s", result, want)
	}
}

func TestCastRoundTrip(t *testing.T) {
	ctx := smtmock.NewContext()
	orig := bv(ctx, 7, 8, false)

	asBool, err := value.Cast(ctx, ast.Location{}, orig, &ast.BoolType{})
	if err != nil {
		t.Fatalf("cast to bool: %v", err)
	}
	back, err := value.Cast(ctx, ast.Location{}, asBool, &ast.BitsType{Width: 8})
	if err != nil {
		t.Fatalf("cast back to bits: %v", err)
	}
	result := ctx.Simplify(back.(*value.Bitvector).Term).String()
	want := "(_ bv1 8)" // 7 != 0 -> true -> 1
	if result != want {
		t.Errorf("got %s, want %s", result, want)
	}
}

func TestCastIntLiteralToBits(t *testing.T) {
	ctx := smtmock.NewContext()
	lit := intLit(ctx, 9)

	got, err := value.Cast(ctx, ast.Location{}, lit, &ast.BitsType{Width: 4})
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	result := ctx.Simplify(got.(*value.Bitvector).Term).String()
	want := "(_ bv9 4)"
	if result != want {
		t.Errorf("got %s, want %s", result, want)
	}
}

func TestCastUnsupportedReturnsTypedError(t *testing.T) {
	ctx := smtmock.NewContext()
	lit := intLit(ctx, 1)
	_, err := value.Cast(ctx, ast.Location{}, lit, &ast.BoolType{})
	if err == nil {
		t.Fatal("expected an error casting IntLiteral to bool")
	}
}

func TestMergeProducesIte(t *testing.T) {
	ctx := smtmock.NewContext()
	cond := ctx.BoolConst("c")
	self := bv(ctx, 1, 8, false)
	other := bv(ctx, 2, 8, false)

	merged, err := value.Merge(ctx, cond, self, other)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	got := merged.(*value.Bitvector).Term.String()
	want := "ite(c, (_ bv2 8), (_ bv1 8))"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestMergeIdempotent(t *testing.T) {
	ctx := smtmock.NewContext()
	cond := ctx.BoolConst("c")
	self := bv(ctx, 5, 8, false)

	merged, err := value.Merge(ctx, cond, self, self)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	result := ctx.Simplify(merged.(*value.Bitvector).Term).String()
	want := "(_ bv5 8)"
	if result != want {
		t.Errorf("merging a value with itself should collapse to itself: got %s, want %s", result, want)
	}
}
