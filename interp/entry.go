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

package interp

import (
	"fmt"

	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/config"
	"github.com/p4gauntlet/toz3go/value"
)

// RunEntry is the external interface of spec.md §1/§6's "externally
// observable program point": it binds a fresh symbolic instance to every
// declared parameter, executes the entry's body, and captures the
// resulting bindings into a flattened ControlState. Every parser/control
// block in a program is run through this one entry point, matching the
// teacher's convention of one small exported driver function per
// externally-invoked unit of work.
func (ip *Interp) RunEntry(e *ast.EntryDecl) (*value.ControlState, error) {
	ip.St.PushScope()

	for _, p := range e.Params {
		resolved, err := ip.St.ResolveType(p.Typ)
		if err != nil {
			ip.St.PopScope()
			return nil, err
		}
		v, err := ip.St.GenInstance(p.Name, resolved)
		if err != nil {
			ip.St.PopScope()
			return nil, err
		}
		if err := ip.St.DeclareVar(p.Name, v, resolved); err != nil {
			ip.St.PopScope()
			return nil, err
		}
	}

	for _, stmt := range e.Body.Stmts {
		if ip.St.Returned() {
			break
		}
		if err := ip.ExecStmt(stmt); err != nil {
			ip.St.PopScope()
			return nil, err
		}
	}

	cs, err := ip.captureControlState(e.Params)
	if popErr := ip.St.PopScope(); err == nil {
		err = popErr
	}
	return cs, err
}

// captureControlState flattens every declared parameter's final value into
// the (dotted-path, term) pairs spec.md §6 describes as a ControlState,
// gating header field reads per the evaluator's Configuration (§6's
// header_invalid_read option).
func (ip *Interp) captureControlState(params []*ast.Parameter) (*value.ControlState, error) {
	var out []value.ControlVar
	for _, p := range params {
		v, _, err := ip.St.GetVar(p.Name)
		if err != nil {
			return nil, err
		}
		vars, err := ip.flattenValue(p.Name, v)
		if err != nil {
			return nil, err
		}
		out = append(out, vars...)
	}
	return &value.ControlState{Vars: out}, nil
}

// flattenValue recurses into v, emitting one ControlVar per leaf scalar,
// named by path. Header fields are gated (spec.md §6: "Header fields are
// emitted as ite(valid, value, fresh_undef_of_same_sort)"); everything else
// is read through untouched. Variants carrying no symbolic state of their
// own (Declaration, Table, Extern, FunctionHandle, Void, ControlState,
// Enum, ErrorSet — the latter two are named-constant declarations, never
// the type of a variable binding itself) contribute nothing.
func (ip *Interp) flattenValue(path string, v value.Value) ([]value.ControlVar, error) {
	switch t := v.(type) {
	case *value.Bitvector:
		return []value.ControlVar{{Path: path, Term: t.Term}}, nil
	case *value.IntLiteral:
		return []value.ControlVar{{Path: path, Term: t.Term}}, nil
	case *value.Struct:
		var out []value.ControlVar
		for _, name := range t.Order {
			vars, err := ip.flattenValue(path+"."+name, t.Fields[name])
			if err != nil {
				return nil, err
			}
			out = append(out, vars...)
		}
		return out, nil
	case *value.Header:
		var out []value.ControlVar
		for _, name := range t.Struct.Order {
			field, _ := t.Get(name)
			elseBranch, err := ip.invalidReadElse(t.Struct.FieldTypes[name], field)
			if err != nil {
				return nil, err
			}
			gated, err := t.GatedField(ip.ctx(), name, elseBranch)
			if err != nil {
				return nil, err
			}
			vars, err := ip.flattenValue(path+"."+name, gated)
			if err != nil {
				return nil, err
			}
			out = append(out, vars...)
		}
		return out, nil
	case *value.List:
		var out []value.ControlVar
		for i, elem := range t.Elems {
			vars, err := ip.flattenValue(fmt.Sprintf("%s[%d]", path, i), elem)
			if err != nil {
				return nil, err
			}
			out = append(out, vars...)
		}
		return out, nil
	case *value.Enum, *value.ErrorSet, *value.Declaration, *value.Table,
		*value.Extern, *value.FunctionHandle, *value.Void, *value.ControlState:
		return nil, nil
	}
	return nil, fmt.Errorf("flattenValue: unhandled value variant %T", v)
}

// invalidReadElse builds the else-branch of a gated header field read per
// the evaluator's Configuration: a fresh symbolic constant of the field's
// own shape (header_invalid_read=fresh_undef, the default) or a
// zero-valued instance of the field's declared type (=zero).
func (ip *Interp) invalidReadElse(fieldType ast.Type, field value.Value) (value.Value, error) {
	switch ip.Cfg.HeaderInvalidRead {
	case config.ReadZero:
		return ip.St.ZeroInstance(fieldType)
	default:
		return field.Undefined(ip.ctx()), nil
	}
}
