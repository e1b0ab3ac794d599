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

package state_test

import (
	"math/big"
	"testing"

	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/smtmock"
	"github.com/p4gauntlet/toz3go/state"
	"github.com/p4gauntlet/toz3go/value"
)

func bv(ctx *smtmock.Context, v int64, width int) *value.Bitvector {
	return value.NewBitvector(ctx.BVLit(big.NewInt(v), width), false)
}

func TestPushPopScope(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)

	s.PushScope()
	if err := s.DeclareVar("x", bv(ctx, 1, 8), &ast.BitsType{Width: 8}); err != nil {
		t.Fatalf("DeclareVar: %v", err)
	}
	if _, _, err := s.GetVar("x"); err != nil {
		t.Fatalf("GetVar: %v", err)
	}
	if err := s.PopScope(); err != nil {
		t.Fatalf("PopScope: %v", err)
	}
	if _, _, err := s.GetVar("x"); err == nil {
		t.Fatal("expected VarNotFoundError after the declaring scope closed")
	}
}

func TestPopScopeUnderflow(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)
	if err := s.PopScope(); err == nil {
		t.Fatal("expected an error popping the outermost scope")
	}
}

func TestDeclareVarDuplicateRejected(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)
	if err := s.DeclareVar("x", bv(ctx, 1, 8), &ast.BitsType{Width: 8}); err != nil {
		t.Fatalf("DeclareVar: %v", err)
	}
	if err := s.DeclareVar("x", bv(ctx, 2, 8), &ast.BitsType{Width: 8}); err == nil {
		t.Fatal("expected re-declaring x in the same scope to fail")
	}
}

func TestGetVarShadowing(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)
	if err := s.DeclareVar("x", bv(ctx, 1, 8), &ast.BitsType{Width: 8}); err != nil {
		t.Fatal(err)
	}
	s.PushScope()
	if err := s.DeclareVar("x", bv(ctx, 2, 8), &ast.BitsType{Width: 8}); err != nil {
		t.Fatal(err)
	}
	v, _, err := s.GetVar("x")
	if err != nil {
		t.Fatal(err)
	}
	got := ctx.Simplify(v.(*value.Bitvector).Term).String()
	if got != "(_ bv2 8)" {
		t.Errorf("inner scope should shadow outer: got %s", got)
	}
	if err := s.PopScope(); err != nil {
		t.Fatal(err)
	}
	v, _, err = s.GetVar("x")
	if err != nil {
		t.Fatal(err)
	}
	got = ctx.Simplify(v.(*value.Bitvector).Term).String()
	if got != "(_ bv1 8)" {
		t.Errorf("outer x should be restored once inner scope closes: got %s", got)
	}
}

func TestUpdateVarWritesThroughOwningScope(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)
	if err := s.DeclareVar("x", bv(ctx, 1, 8), &ast.BitsType{Width: 8}); err != nil {
		t.Fatal(err)
	}
	s.PushScope()
	if err := s.UpdateVar("x", bv(ctx, 9, 8)); err != nil {
		t.Fatalf("UpdateVar: %v", err)
	}
	v, _, err := s.GetVar("x")
	if err != nil {
		t.Fatal(err)
	}
	got := ctx.Simplify(v.(*value.Bitvector).Term).String()
	if got != "(_ bv9 8)" {
		t.Errorf("got %s, want (_ bv9 8)", got)
	}
}

func TestUpdateVarNotFound(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)
	if err := s.UpdateVar("nope", bv(ctx, 1, 8)); err == nil {
		t.Fatal("expected VarNotFoundError")
	}
}

func TestResolveTypeFollowsChain(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)
	s.AddType("byte_t", &ast.BitsType{Width: 8})
	s.PushScope()
	s.AddType("alias_t", &ast.NameType{Name: "byte_t"})

	resolved, err := s.ResolveType(&ast.NameType{Name: "alias_t"})
	if err != nil {
		t.Fatalf("ResolveType: %v", err)
	}
	bt, ok := resolved.(*ast.BitsType)
	if !ok || bt.Width != 8 {
		t.Errorf("expected bits<8>, got %#v", resolved)
	}
}

func TestResolveTypeNotFound(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)
	if _, err := s.ResolveType(&ast.NameType{Name: "missing_t"}); err == nil {
		t.Fatal("expected TypeNotFoundError")
	}
}

func TestFork_IsolatesWrites(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)
	if err := s.DeclareVar("x", bv(ctx, 1, 8), &ast.BitsType{Width: 8}); err != nil {
		t.Fatal(err)
	}

	fork := s.Fork()
	if err := fork.UpdateVar("x", bv(ctx, 2, 8)); err != nil {
		t.Fatal(err)
	}

	v, _, err := s.GetVar("x")
	if err != nil {
		t.Fatal(err)
	}
	if got := ctx.Simplify(v.(*value.Bitvector).Term).String(); got != "(_ bv1 8)" {
		t.Errorf("original state observed the fork's write: got %s", got)
	}
	v, _, err = fork.GetVar("x")
	if err != nil {
		t.Fatal(err)
	}
	if got := ctx.Simplify(v.(*value.Bitvector).Term).String(); got != "(_ bv2 8)" {
		t.Errorf("fork did not keep its own write: got %s", got)
	}
}

func TestRestoreDiscardsLiveAccumulation(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)
	if err := s.DeclareVar("x", bv(ctx, 1, 8), &ast.BitsType{Width: 8}); err != nil {
		t.Fatal(err)
	}
	snapshot := s.Fork()
	if err := s.UpdateVar("x", bv(ctx, 9, 8)); err != nil {
		t.Fatal(err)
	}
	s.Restore(snapshot)
	v, _, err := s.GetVar("x")
	if err != nil {
		t.Fatal(err)
	}
	if got := ctx.Simplify(v.(*value.Bitvector).Term).String(); got != "(_ bv1 8)" {
		t.Errorf("Restore should have rewound to the snapshot: got %s", got)
	}
}

// TestMergeState_IfElseMerge realizes spec.md §8 worked scenario 5: if/else merge
// produces ite(c, then, else) for a variable assigned on both arms.
func TestMergeState_IfElseMerge(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)
	if err := s.DeclareVar("x", bv(ctx, 0, 8), &ast.BitsType{Width: 8}); err != nil {
		t.Fatal(err)
	}
	cond := ctx.BoolConst("c")

	thenState := s.Fork()
	if err := thenState.UpdateVar("x", bv(ctx, 1, 8)); err != nil {
		t.Fatal(err)
	}

	elseState := s.Fork()
	if err := elseState.UpdateVar("x", bv(ctx, 2, 8)); err != nil {
		t.Fatal(err)
	}

	s.Restore(elseState)
	if err := s.MergeState(cond, thenState); err != nil {
		t.Fatalf("MergeState: %v", err)
	}

	v, _, err := s.GetVar("x")
	if err != nil {
		t.Fatal(err)
	}
	got := ctx.Simplify(v.(*value.Bitvector).Term).String()
	want := "ite(c, (_ bv1 8), (_ bv2 8))"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestMergeState_TautologyIsIdempotent(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)
	if err := s.DeclareVar("x", bv(ctx, 5, 8), &ast.BitsType{Width: 8}); err != nil {
		t.Fatal(err)
	}
	other := s.Fork()

	trueTerm := ctx.BoolVal(true)
	if err := s.MergeState(trueTerm, other); err != nil {
		t.Fatal(err)
	}
	v, _, err := s.GetVar("x")
	if err != nil {
		t.Fatal(err)
	}
	if got := ctx.Simplify(v.(*value.Bitvector).Term).String(); got != "(_ bv5 8)" {
		t.Errorf("merge(true, x) should keep x's own value: got %s", got)
	}
}

func TestRecordReturn_SecondReturnFails(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)
	if err := s.RecordReturn(bv(ctx, 1, 8)); err != nil {
		t.Fatalf("first return: %v", err)
	}
	if !s.Returned() {
		t.Fatal("expected Returned() true after a return")
	}
	if err := s.RecordReturn(bv(ctx, 2, 8)); err == nil {
		t.Fatal("expected ReturnAfterReturnError on the second return")
	}
}

func TestPopScopeBubblingCarriesReturnUpward(t *testing.T) {
	ctx := smtmock.NewContext()
	s := state.New(ctx)
	s.PushScope()
	if err := s.RecordReturn(bv(ctx, 1, 8)); err != nil {
		t.Fatal(err)
	}
	if err := s.PopScopeBubbling(); err != nil {
		t.Fatal(err)
	}
	if !s.Returned() {
		t.Error("the enclosing scope should see the inner block's return")
	}
	if len(s.ReturnExprs()) != 1 {
		t.Errorf("expected one bubbled return expression, got %d", len(s.ReturnExprs()))
	}
}
