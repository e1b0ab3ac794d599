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

package interp_test

import (
	"math/big"
	"testing"

	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/value"
)

// TestEvalMuxMergesBranches mirrors TestExecIfMergesBranches for the
// expression-level ternary: a symbolic condition must produce
// ite(cond, then, else), not the inverted ite(cond, else, then).
func TestEvalMuxMergesBranches(t *testing.T) {
	ip, ctx := newInterp()
	ip.St.PushScope()

	cond := value.NewBitvector(ctx.BoolConst("c"), false)
	if err := ip.St.DeclareVar("c", cond, &ast.BoolType{}); err != nil {
		t.Fatalf("declare c: %v", err)
	}

	loc := ast.Location{}
	mux := ast.NewMux(loc,
		ast.NewPathExpr(loc, "c"),
		ast.NewIntLit(loc, big.NewInt(10), &ast.BitsType{Width: 8}),
		ast.NewIntLit(loc, big.NewInt(20), &ast.BitsType{Width: 8}),
	)

	got, err := ip.EvalExpr(mux)
	if err != nil {
		t.Fatalf("EvalExpr: %v", err)
	}
	want := "ite(c, (_ bv10 8), (_ bv20 8))"
	if s := got.(*value.Bitvector).Term.String(); s != want {
		t.Errorf("got %s, want %s", s, want)
	}
}
