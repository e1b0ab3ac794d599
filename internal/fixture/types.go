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

package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/p4gauntlet/toz3go/ast"
)

type wireType struct {
	Kind     string       `json:"kind"`
	Width    int          `json:"width"`
	MaxWidth int          `json:"max_width"`
	Signed   bool         `json:"signed"`
	Name     string       `json:"name"`
	Fields   []wireField  `json:"fields"`
	Members  []string     `json:"members"`
	Elems    []wireType   `json:"elems"`
	Methods  []string     `json:"methods"`
}

type wireField struct {
	Name string   `json:"name"`
	Type wireType `json:"type"`
}

func decodeType(raw json.RawMessage) (ast.Type, error) {
	var wt wireType
	if err := json.Unmarshal(raw, &wt); err != nil {
		return nil, err
	}
	return wt.resolve()
}

func (wt wireType) resolve() (ast.Type, error) {
	switch wt.Kind {
	case "bits":
		return &ast.BitsType{Width: wt.Width, Signed: wt.Signed}, nil
	case "varbits":
		return &ast.VarbitsType{MaxWidth: wt.MaxWidth}, nil
	case "bool":
		return &ast.BoolType{}, nil
	case "int":
		return &ast.IntegerType{}, nil
	case "struct":
		fields, err := wt.resolveFields()
		if err != nil {
			return nil, err
		}
		return &ast.StructType{Name: wt.Name, Fields: fields}, nil
	case "header":
		fields, err := wt.resolveFields()
		if err != nil {
			return nil, err
		}
		return &ast.HeaderType{StructType: ast.StructType{Name: wt.Name, Fields: fields}}, nil
	case "enum":
		return &ast.EnumType{Name: wt.Name, Members: wt.Members}, nil
	case "error":
		return &ast.ErrorType{Name: wt.Name, Members: wt.Members}, nil
	case "list":
		elems := make([]ast.Type, len(wt.Elems))
		for i, e := range wt.Elems {
			t, err := e.resolve()
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return &ast.ListType{Name: wt.Name, Elems: elems}, nil
	case "extern":
		return &ast.ExternType{Name: wt.Name, Methods: wt.Methods}, nil
	case "name":
		return &ast.NameType{Name: wt.Name}, nil
	}
	return nil, fmt.Errorf("unknown type kind %q", wt.Kind)
}

func (wt wireType) resolveFields() ([]ast.Field, error) {
	fields := make([]ast.Field, len(wt.Fields))
	for i, f := range wt.Fields {
		t, err := f.Type.resolve()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		fields[i] = ast.Field{Name: f.Name, Type: t}
	}
	return fields, nil
}
