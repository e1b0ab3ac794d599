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

package ifaceerr_test

import (
	"errors"
	"testing"

	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/ifaceerr"
)

func TestAtBackfillsLocation(t *testing.T) {
	err := &ifaceerr.VarNotFoundError{Name: "x"}
	loc := ast.Location{File: "prog.p4", Line: 3, Col: 7}
	got := ifaceerr.At(err, loc)

	vnf, ok := got.(*ifaceerr.VarNotFoundError)
	if !ok {
		t.Fatalf("expected *VarNotFoundError, got %T", got)
	}
	if vnf.At != loc {
		t.Errorf("got %v, want %v", vnf.At, loc)
	}
	if want := "prog.p4:3:7: variable \"x\" not found"; got.Error() != want {
		t.Errorf("got %q, want %q", got.Error(), want)
	}
}

func TestBackendErrorUnwraps(t *testing.T) {
	inner := errors.New("sort mismatch")
	be := &ifaceerr.BackendError{Err: inner}
	if !errors.Is(be, inner) {
		t.Error("expected errors.Is to see through BackendError to its wrapped cause")
	}
}

func TestScopeUnderflowErrorMessage(t *testing.T) {
	err := ifaceerr.ScopeUnderflowError{At: ast.Location{Line: 1, Col: 1}}
	if err.Error() == "" {
		t.Error("expected a non-empty error message")
	}
}
