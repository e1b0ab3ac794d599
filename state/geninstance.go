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

package state

import (
	"math/big"

	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/ifaceerr"
	"github.com/p4gauntlet/toz3go/internal/idgen"
	"github.com/p4gauntlet/toz3go/value"
)

var bigZero = big.NewInt(0)

// GenInstance is the `gen_instance(name, type, id)` factory of spec.md
// §4.2: given a resolved type, produce a fresh symbolic value of the
// matching variant. Scalar types get one fresh SMT constant named after
// name; struct-like types recurse field by field, each nested field's
// constant named "<name>.<field>" so that distinct instances of the same
// shape never collide on a constant name even before the backend's own
// uniqueness suffix is applied. A struct/header's numeric id
// (value.Struct.ID, used to name its header validity constant) is derived
// by hashing the resolved type name and field order with
// internal/idgen.StableID, so two instances of the same shape always get
// the same id, rather than a position-dependent counter.
func (s *State) GenInstance(name string, t ast.Type) (value.Value, error) {
	resolved, err := s.ResolveType(t)
	if err != nil {
		return nil, err
	}
	v, _, err := s.genInstance(name, resolved)
	return v, err
}

// genInstance returns (value, width, error).
func (s *State) genInstance(namePrefix string, t ast.Type) (value.Value, int, error) {
	switch tt := t.(type) {
	case *ast.BitsType:
		return value.NewBitvector(s.Ctx.FreshBVConst(namePrefix, tt.Width), tt.Signed), tt.Width, nil
	case *ast.VarbitsType:
		return value.NewBitvector(s.Ctx.FreshBVConst(namePrefix, tt.MaxWidth), false), tt.MaxWidth, nil
	case *ast.BoolType:
		return value.NewBitvector(s.Ctx.FreshBoolConst(namePrefix), false), 1, nil
	case *ast.EnumType, *ast.ErrorType:
		// A variable of enum/error type is one opaque 32-bit symbolic
		// constant (spec.md §4.1's get_z3_vars note); no *value.Enum or
		// *value.ErrorSet holding the type's named members is built.
		return value.NewBitvector(s.Ctx.FreshBVConst(namePrefix, 32), false), 32, nil
	case *ast.StructType:
		return s.genStruct(namePrefix, tt.Name, tt.Fields)
	case *ast.HeaderType:
		structVal, width, err := s.genStruct(namePrefix, tt.Name, tt.Fields)
		if err != nil {
			return nil, 0, err
		}
		return value.NewHeader(s.Ctx, structVal.(*value.Struct)), width, nil
	case *ast.ListType:
		elems := make([]value.Value, len(tt.Elems))
		width := 0
		for i, et := range tt.Elems {
			ev, ew, err := s.genInstance(namePrefix, et)
			if err != nil {
				return nil, 0, err
			}
			elems[i] = ev
			width += ew
		}
		return &value.List{TypeName: tt.Name, Elems: elems}, width, nil
	case *ast.ExternType:
		return &value.Extern{TypeName: tt.Name, Methods: map[string]ast.Declaration{}}, 0, nil
	}
	return nil, 0, &ifaceerr.TypeNotFoundError{Name: t.String()}
}

// ZeroInstance builds a zero-valued instance of t: the header_invalid_read
// = zero configuration's else-branch for a gated field read (spec.md §6),
// as opposed to GenInstance's fresh symbolic constants.
func (s *State) ZeroInstance(t ast.Type) (value.Value, error) {
	resolved, err := s.ResolveType(t)
	if err != nil {
		return nil, err
	}
	v, _, err := s.zeroInstance(resolved)
	return v, err
}

func (s *State) zeroInstance(t ast.Type) (value.Value, int, error) {
	switch tt := t.(type) {
	case *ast.BitsType:
		return value.NewBitvector(s.Ctx.BVLit(bigZero, tt.Width), tt.Signed), tt.Width, nil
	case *ast.VarbitsType:
		return value.NewBitvector(s.Ctx.BVLit(bigZero, tt.MaxWidth), false), tt.MaxWidth, nil
	case *ast.BoolType:
		return value.NewBitvector(s.Ctx.BoolVal(false), false), 1, nil
	case *ast.EnumType, *ast.ErrorType:
		return value.NewBitvector(s.Ctx.BVLit(bigZero, 32), false), 32, nil
	case *ast.StructType:
		return s.zeroStruct(tt.Name, tt.Fields)
	case *ast.HeaderType:
		structVal, width, err := s.zeroStruct(tt.Name, tt.Fields)
		if err != nil {
			return nil, 0, err
		}
		h := value.NewHeader(s.Ctx, structVal.(*value.Struct))
		h.SetInvalid(s.Ctx)
		return h, width, nil
	case *ast.ListType:
		elems := make([]value.Value, len(tt.Elems))
		width := 0
		for i, et := range tt.Elems {
			ev, ew, err := s.zeroInstance(et)
			if err != nil {
				return nil, 0, err
			}
			elems[i] = ev
			width += ew
		}
		return &value.List{TypeName: tt.Name, Elems: elems}, width, nil
	case *ast.ExternType:
		return &value.Extern{TypeName: tt.Name, Methods: map[string]ast.Declaration{}}, 0, nil
	}
	return nil, 0, &ifaceerr.TypeNotFoundError{Name: t.String()}
}

func (s *State) zeroStruct(typeName string, declFields []ast.Field) (value.Value, int, error) {
	order := make([]string, len(declFields))
	fields := make(map[string]value.Value, len(declFields))
	fieldTypes := make(map[string]ast.Type, len(declFields))
	width := 0
	for i, f := range declFields {
		resolved, err := s.ResolveType(f.Type)
		if err != nil {
			return nil, 0, err
		}
		fv, fw, err := s.zeroInstance(resolved)
		if err != nil {
			return nil, 0, err
		}
		order[i] = f.Name
		fields[f.Name] = fv
		fieldTypes[f.Name] = resolved
		width += fw
	}
	id := idgen.StableID(typeName, order)
	return value.NewStruct(typeName, order, fields, fieldTypes, id, width), width, nil
}

func (s *State) genStruct(namePrefix, typeName string, declFields []ast.Field) (value.Value, int, error) {
	order := make([]string, len(declFields))
	fields := make(map[string]value.Value, len(declFields))
	fieldTypes := make(map[string]ast.Type, len(declFields))
	width := 0
	for i, f := range declFields {
		resolved, err := s.ResolveType(f.Type)
		if err != nil {
			return nil, 0, err
		}
		fv, fw, err := s.genInstance(namePrefix+"."+f.Name, resolved)
		if err != nil {
			return nil, 0, err
		}
		order[i] = f.Name
		fields[f.Name] = fv
		fieldTypes[f.Name] = resolved
		width += fw
	}
	id := idgen.StableID(typeName, order)
	return value.NewStruct(typeName, order, fields, fieldTypes, id, width), width, nil
}
