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

package ast

import "fmt"

// Kind is the closed set of type kinds the interpreter must distinguish.
type Kind int

const (
	KindBits Kind = iota
	KindVarbits
	KindBool
	KindInteger
	KindStruct
	KindHeader
	KindEnum
	KindError
	KindList
	KindExtern
	KindName
)

func (k Kind) String() string {
	switch k {
	case KindBits:
		return "bits"
	case KindVarbits:
		return "varbits"
	case KindBool:
		return "bool"
	case KindInteger:
		return "int"
	case KindStruct:
		return "struct"
	case KindHeader:
		return "header"
	case KindEnum:
		return "enum"
	case KindError:
		return "error"
	case KindList:
		return "list"
	case KindExtern:
		return "extern"
	case KindName:
		return "name"
	}
	return "unknown"
}

// Type is the interface the interpreter and value algebra consult to decide
// how to construct and coerce values. Concrete types below are the minimal
// family a P4 front end would hand to the core.
type Type interface {
	Kind() Kind
	String() string
}

// BitsType is a fixed-width bitvector type, optionally signed.
type BitsType struct {
	Width  int
	Signed bool
}

func (t *BitsType) Kind() Kind { return KindBits }
func (t *BitsType) String() string {
	if t.Signed {
		return fmt.Sprintf("int<%d>", t.Width)
	}
	return fmt.Sprintf("bit<%d>", t.Width)
}

// VarbitsType is a variable-width bitvector bounded by MaxWidth.
type VarbitsType struct {
	MaxWidth int
}

func (t *VarbitsType) Kind() Kind     { return KindVarbits }
func (t *VarbitsType) String() string { return fmt.Sprintf("varbit<%d>", t.MaxWidth) }

// BoolType is the P4 boolean type.
type BoolType struct{}

func (t *BoolType) Kind() Kind     { return KindBool }
func (t *BoolType) String() string { return "bool" }

// IntegerType is the arbitrary-precision integer type used for literals
// before they are coerced into a bitvector sort.
type IntegerType struct{}

func (t *IntegerType) Kind() Kind     { return KindInteger }
func (t *IntegerType) String() string { return "int" }

// Field is one member of a struct-like type, in declaration order.
type Field struct {
	Name string
	Type Type
}

// StructType describes a struct-like aggregate. HeaderType embeds it, since
// a header is a struct with an additional validity bit (spec.md I2).
type StructType struct {
	Name   string
	Fields []Field
}

func (t *StructType) Kind() Kind     { return KindStruct }
func (t *StructType) String() string { return "struct " + t.Name }

// HeaderType is a StructType plus validity semantics.
type HeaderType struct {
	StructType
}

func (t *HeaderType) Kind() Kind     { return KindHeader }
func (t *HeaderType) String() string { return "header " + t.Name }

// EnumType is an ordered set of named 32-bit constants.
type EnumType struct {
	Name    string
	Members []string
}

func (t *EnumType) Kind() Kind     { return KindEnum }
func (t *EnumType) String() string { return "enum " + t.Name }

// ErrorType has the same shape as EnumType (spec.md §3).
type ErrorType struct {
	Name    string
	Members []string
}

func (t *ErrorType) Kind() Kind     { return KindError }
func (t *ErrorType) String() string { return "error " + t.Name }

// ListType describes a tuple/list literal's declared element types.
type ListType struct {
	Name  string
	Elems []Type
}

func (t *ListType) Kind() Kind     { return KindList }
func (t *ListType) String() string { return "list " + t.Name }

// ExternType declares the method names an extern instance exposes.
type ExternType struct {
	Name    string
	Methods []string
}

func (t *ExternType) Kind() Kind     { return KindExtern }
func (t *ExternType) String() string { return "extern " + t.Name }

// NameType is a type-name reference that must be resolved via the state's
// scope chain (state.ResolveType) before use; it never appears in a value.
type NameType struct {
	Name string
}

func (t *NameType) Kind() Kind     { return KindName }
func (t *NameType) String() string { return t.Name }
