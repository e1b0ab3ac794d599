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

// Package ifaceerr holds the error taxonomy of spec.md §7. Every error
// carries the source Location of the AST node being processed when it was
// raised, following the location-carrying error pattern of expr.TypeError
// in the teacher package (expr/check.go): a typed struct, an Error()
// method, and an "at" helper that backfills the location once the error
// unwinds to a point that has one.
package ifaceerr

import (
	"fmt"

	"github.com/p4gauntlet/toz3go/ast"
)

// locatable lets At backfill a location on any of the error types below.
type locatable interface {
	setLoc(ast.Location)
}

// At sets err's location to loc if err is one of this package's
// location-carrying types (every type below except ScopeUnderflowError),
// replacing any location it already holds. It returns err for chaining.
func At(err error, loc ast.Location) error {
	if l, ok := err.(locatable); ok {
		l.setLoc(loc)
	}
	return err
}

// TypeMismatchError: an operation is not defined on this combination of
// value variants (e.g. concat on an arbitrary-precision integer).
type TypeMismatchError struct {
	At  ast.Location
	Op  string
	Msg string
}

func (e *TypeMismatchError) setLoc(l ast.Location) { e.At = l }
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: type mismatch in %s: %s", e.At, e.Op, e.Msg)
}

// UnsupportedCastError: the target type is unreachable from the source value.
type UnsupportedCastError struct {
	At         ast.Location
	From, Dest string
}

func (e *UnsupportedCastError) setLoc(l ast.Location) { e.At = l }
func (e *UnsupportedCastError) Error() string {
	return fmt.Sprintf("%s: unsupported cast from %s to %s", e.At, e.From, e.Dest)
}

// FieldNotFoundError: a member-access lookup missed.
type FieldNotFoundError struct {
	At   ast.Location
	Name string
}

func (e *FieldNotFoundError) setLoc(l ast.Location) { e.At = l }
func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("%s: field %q not found", e.At, e.Name)
}

// VarNotFoundError: a variable lookup missed in every scope.
type VarNotFoundError struct {
	At   ast.Location
	Name string
}

func (e *VarNotFoundError) setLoc(l ast.Location) { e.At = l }
func (e *VarNotFoundError) Error() string {
	return fmt.Sprintf("%s: variable %q not found", e.At, e.Name)
}

// TypeNotFoundError: a type-name lookup missed.
type TypeNotFoundError struct {
	At   ast.Location
	Name string
}

func (e *TypeNotFoundError) setLoc(l ast.Location) { e.At = l }
func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("%s: type %q not found", e.At, e.Name)
}

// ListArityMismatchError: a list cast target has a different field count.
type ListArityMismatchError struct {
	At               ast.Location
	ListLen, FieldLen int
}

func (e *ListArityMismatchError) setLoc(l ast.Location) { e.At = l }
func (e *ListArityMismatchError) Error() string {
	return fmt.Sprintf("%s: list has %d elements but target has %d fields", e.At, e.ListLen, e.FieldLen)
}

// ReturnAfterReturnError: a second return in the same block path. Always an
// internal invariant violation, never a user-visible P4 program error.
type ReturnAfterReturnError struct {
	At ast.Location
}

func (e *ReturnAfterReturnError) setLoc(l ast.Location) { e.At = l }
func (e *ReturnAfterReturnError) Error() string {
	return fmt.Sprintf("%s: return after return in the same block path", e.At)
}

// ScopeUnderflowError: pop_scope was called with only the outermost scope
// left on the stack. Always an internal invariant violation.
type ScopeUnderflowError struct {
	At ast.Location
}

func (e ScopeUnderflowError) Error() string {
	return fmt.Sprintf("%s: pop_scope called with no scope left to pop", e.At)
}

// BackendError: the SMT context refused a term (a sort mismatch that
// survived the value algebra's own alignment rules).
type BackendError struct {
	At  ast.Location
	Err error
}

func (e *BackendError) setLoc(l ast.Location) { e.At = l }
func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: backend error: %s", e.At, e.Err)
}
func (e *BackendError) Unwrap() error { return e.Err }
