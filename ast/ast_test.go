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

package ast_test

import (
	"math/big"
	"testing"

	"github.com/p4gauntlet/toz3go/ast"
)

func TestLocationString(t *testing.T) {
	cases := []struct {
		loc  ast.Location
		want string
	}{
		{ast.Location{Line: 3, Col: 7}, "3:7"},
		{ast.Location{File: "prog.p4", Line: 3, Col: 7}, "prog.p4:3:7"},
	}
	for _, c := range cases {
		if got := c.loc.String(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

func TestBitsTypeString(t *testing.T) {
	if got := (&ast.BitsType{Width: 8}).String(); got != "bit<8>" {
		t.Errorf("got %q, want bit<8>", got)
	}
	if got := (&ast.BitsType{Width: 8, Signed: true}).String(); got != "int<8>" {
		t.Errorf("got %q, want int<8>", got)
	}
}

func TestNodeLocIsPreserved(t *testing.T) {
	loc := ast.Location{File: "p.p4", Line: 1, Col: 1}
	lit := ast.NewIntLit(loc, big.NewInt(5), &ast.BitsType{Width: 8})
	if lit.Loc() != loc {
		t.Errorf("got %v, want %v", lit.Loc(), loc)
	}
}

func TestAssignmentIsStatement(t *testing.T) {
	loc := ast.Location{Line: 1, Col: 1}
	target := ast.NewPathExpr(loc, "x")
	val := ast.NewIntLit(loc, big.NewInt(1), nil)
	var s ast.Statement = ast.NewAssignment(loc, target, val)
	if s.Loc() != loc {
		t.Errorf("got %v, want %v", s.Loc(), loc)
	}
}
