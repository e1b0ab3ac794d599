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
	"github.com/p4gauntlet/toz3go/config"
	"github.com/p4gauntlet/toz3go/interp"
	"github.com/p4gauntlet/toz3go/smtmock"
	"github.com/p4gauntlet/toz3go/value"
)

func newInterp() (*interp.Interp, *smtmock.Context) {
	ctx := smtmock.NewContext()
	return interp.New(ctx, config.Default()), ctx
}

// TestExecIfMergesBranches exercises the statement-level fork/merge
// protocol of execIf on a symbolic condition: both arms run against
// isolated forks, and the post-if value of an assigned variable collapses
// to a single ite term over the two arms' values.
func TestExecIfMergesBranches(t *testing.T) {
	ip, ctx := newInterp()
	ip.St.PushScope()

	cond := value.NewBitvector(ctx.BoolConst("c"), false)
	if err := ip.St.DeclareVar("c", cond, &ast.BoolType{}); err != nil {
		t.Fatalf("declare c: %v", err)
	}
	x := value.NewBitvector(ctx.BVLit(big.NewInt(5), 8), false)
	if err := ip.St.DeclareVar("x", x, &ast.BitsType{Width: 8}); err != nil {
		t.Fatalf("declare x: %v", err)
	}

	loc := ast.Location{}
	ifStmt := ast.NewIf(loc,
		ast.NewPathExpr(loc, "c"),
		ast.NewAssignment(loc, ast.NewPathExpr(loc, "x"), ast.NewIntLit(loc, big.NewInt(10), &ast.BitsType{Width: 8})),
		ast.NewAssignment(loc, ast.NewPathExpr(loc, "x"), ast.NewIntLit(loc, big.NewInt(20), &ast.BitsType{Width: 8})),
	)

	if err := ip.ExecStmt(ifStmt); err != nil {
		t.Fatalf("ExecStmt: %v", err)
	}

	got, _, err := ip.St.GetVar("x")
	if err != nil {
		t.Fatalf("GetVar: %v", err)
	}
	want := "ite(c, (_ bv10 8), (_ bv20 8))"
	if s := got.(*value.Bitvector).Term.String(); s != want {
		t.Errorf("merged x: got %s, want %s", s, want)
	}
}

// TestExecIfConstantConditionShortCircuits checks that a literally-true
// condition runs only the then arm, with no fork/merge machinery involved.
func TestExecIfConstantConditionShortCircuits(t *testing.T) {
	ip, ctx := newInterp()
	ip.St.PushScope()

	x := value.NewBitvector(ctx.BVLit(big.NewInt(0), 8), false)
	if err := ip.St.DeclareVar("x", x, &ast.BitsType{Width: 8}); err != nil {
		t.Fatalf("declare x: %v", err)
	}

	loc := ast.Location{}
	ifStmt := ast.NewIf(loc,
		ast.NewBoolLit(loc, true),
		ast.NewAssignment(loc, ast.NewPathExpr(loc, "x"), ast.NewIntLit(loc, big.NewInt(42), &ast.BitsType{Width: 8})),
		ast.NewAssignment(loc, ast.NewPathExpr(loc, "x"), ast.NewIntLit(loc, big.NewInt(99), &ast.BitsType{Width: 8})),
	)

	if err := ip.ExecStmt(ifStmt); err != nil {
		t.Fatalf("ExecStmt: %v", err)
	}

	got, _, err := ip.St.GetVar("x")
	if err != nil {
		t.Fatalf("GetVar: %v", err)
	}
	want := "(_ bv42 8)"
	if s := ctx.Simplify(got.(*value.Bitvector).Term).String(); s != want {
		t.Errorf("got %s, want %s", s, want)
	}
}

// TestExecVarDeclWithoutInitIsFresh checks that a local with no initializer
// is bound to a freshly named symbolic constant rather than a zero value.
func TestExecVarDeclWithoutInitIsFresh(t *testing.T) {
	ip, _ := newInterp()
	ip.St.PushScope()

	loc := ast.Location{}
	decl := ast.NewVarDeclStmt(loc, "y", &ast.BitsType{Width: 8}, nil)
	if err := ip.ExecStmt(decl); err != nil {
		t.Fatalf("ExecStmt: %v", err)
	}

	got, typ, err := ip.St.GetVar("y")
	if err != nil {
		t.Fatalf("GetVar: %v", err)
	}
	if _, ok := typ.(*ast.BitsType); !ok {
		t.Fatalf("declared type: got %T, want *ast.BitsType", typ)
	}
	bvVal, ok := got.(*value.Bitvector)
	if !ok {
		t.Fatalf("value: got %T, want *value.Bitvector", got)
	}
	if bvVal.Term.String() == "" {
		t.Errorf("expected a named symbolic constant, got empty string")
	}
}

// TestExecReturnStopsBlockExecution checks that a statement following a
// `return` inside the same block never executes.
func TestExecReturnStopsBlockExecution(t *testing.T) {
	ip, ctx := newInterp()
	ip.St.PushScope()

	x := value.NewBitvector(ctx.BVLit(big.NewInt(1), 8), false)
	if err := ip.St.DeclareVar("x", x, &ast.BitsType{Width: 8}); err != nil {
		t.Fatalf("declare x: %v", err)
	}

	loc := ast.Location{}
	block := ast.NewBlock(loc, []ast.Statement{
		ast.NewReturn(loc, nil),
		ast.NewAssignment(loc, ast.NewPathExpr(loc, "x"), ast.NewIntLit(loc, big.NewInt(2), &ast.BitsType{Width: 8})),
	})

	if err := ip.ExecStmt(block); err != nil {
		t.Fatalf("ExecStmt: %v", err)
	}

	got, _, err := ip.St.GetVar("x")
	if err != nil {
		t.Fatalf("GetVar: %v", err)
	}
	want := "(_ bv1 8)"
	if s := ctx.Simplify(got.(*value.Bitvector).Term).String(); s != want {
		t.Errorf("x should be unchanged after the return, got %s, want %s", s, want)
	}
}
