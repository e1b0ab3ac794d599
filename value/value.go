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

// Package value implements the symbolic value domain of spec.md §3-§4.1:
// the tagged sum of Bitvector, IntLiteral, Struct, Header, Enum, ErrorSet,
// List, Declaration, Table, Extern, FunctionHandle, Void, and ControlState,
// and the uniform algebra every variant participates in.
//
// Operations dispatch by Go type switch rather than virtual method call, as
// spec.md §9's design notes call for: "downcast is replaced by matching the
// discriminant." Concrete variants are therefore plain data holders; the
// algebra (Unary, Binary, Cast, Merge in algebra.go) lives at package level.
package value

import "github.com/p4gauntlet/toz3go/smt"

// Kind is the discriminant of the tagged sum.
type Kind int

const (
	KindBitvector Kind = iota
	KindIntLiteral
	KindStruct
	KindHeader
	KindEnum
	KindErrorSet
	KindList
	KindDeclaration
	KindTable
	KindExtern
	KindFunctionHandle
	KindVoid
	KindControlState
)

func (k Kind) String() string {
	switch k {
	case KindBitvector:
		return "Bitvector"
	case KindIntLiteral:
		return "IntLiteral"
	case KindStruct:
		return "Struct"
	case KindHeader:
		return "Header"
	case KindEnum:
		return "Enum"
	case KindErrorSet:
		return "ErrorSet"
	case KindList:
		return "List"
	case KindDeclaration:
		return "Declaration"
	case KindTable:
		return "Table"
	case KindExtern:
		return "Extern"
	case KindFunctionHandle:
		return "FunctionHandle"
	case KindVoid:
		return "Void"
	case KindControlState:
		return "ControlState"
	}
	return "unknown"
}

// Value is implemented by every variant of the symbolic value domain.
type Value interface {
	Kind() Kind
	// Copy deep-clones the value; it is how the state arena snapshots a
	// value before a branch, and how assignment-by-value semantics are
	// realized for aggregates (spec.md §4.2, §9).
	Copy() Value
	// Undefined resets the value to spec.md's "undefined" state: for a
	// Bitvector/IntLiteral this is a fresh symbolic constant of the same
	// sort; for an aggregate it recurses into every member. Variants with
	// no symbolic content (Declaration, Table, Extern, FunctionHandle,
	// Void) return themselves unchanged.
	Undefined(ctx smt.Context) Value
}
