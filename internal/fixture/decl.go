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

var paramDirs = map[string]ast.Dir{
	"":    ast.DirIn,
	"in":  ast.DirIn,
	"out": ast.DirOut,
	"inout": ast.DirInOut,
}

type wireParam struct {
	Name string    `json:"name"`
	Type wireType  `json:"type"`
	Dir  string    `json:"dir"`
}

func decodeParams(raws []wireParam) ([]*ast.Parameter, error) {
	out := make([]*ast.Parameter, len(raws))
	for i, wp := range raws {
		t, err := wp.Type.resolve()
		if err != nil {
			return nil, fmt.Errorf("params[%d] %q: %w", i, wp.Name, err)
		}
		dir, ok := paramDirs[wp.Dir]
		if !ok {
			return nil, fmt.Errorf("params[%d] %q: unknown dir %q", i, wp.Name, wp.Dir)
		}
		out[i] = &ast.Parameter{Name: wp.Name, Typ: t, Dir: dir}
	}
	return out, nil
}

type wireKeyElement struct {
	Expr      json.RawMessage `json:"expr"`
	MatchKind string          `json:"match_kind"`
}

type wireDecl struct {
	Node    string            `json:"node"`
	Loc     wireLoc           `json:"loc"`
	Name    string            `json:"name"`
	Params  []wireParam       `json:"params"`
	Return  *wireType         `json:"return"`
	Body    json.RawMessage   `json:"body"`
	Keys    []wireKeyElement  `json:"keys"`
	Actions []json.RawMessage `json:"actions"`
	Default json.RawMessage   `json:"default"`
}

func decodeDecl(raw json.RawMessage) (ast.Declaration, error) {
	var wd wireDecl
	if err := json.Unmarshal(raw, &wd); err != nil {
		return nil, err
	}
	loc := wd.Loc.loc()
	params, err := decodeParams(wd.Params)
	if err != nil {
		return nil, err
	}

	switch wd.Node {
	case "function":
		var ret ast.Type
		if wd.Return != nil {
			ret, err = wd.Return.resolve()
			if err != nil {
				return nil, err
			}
		}
		body, err := decodeBlock(wd.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionDecl(loc, wd.Name, params, ret, body), nil
	case "action":
		body, err := decodeBlock(wd.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewActionDecl(loc, wd.Name, params, body), nil
	case "table":
		keys := make([]*ast.KeyElement, len(wd.Keys))
		for i, wk := range wd.Keys {
			e, err := decodeExpr(wk.Expr)
			if err != nil {
				return nil, fmt.Errorf("keys[%d]: %w", i, err)
			}
			keys[i] = &ast.KeyElement{Expr: e, MatchKind: wk.MatchKind}
		}
		actions, err := decodeCallList(wd.Actions)
		if err != nil {
			return nil, err
		}
		var def *ast.MethodCall
		if len(wd.Default) > 0 && string(wd.Default) != "null" {
			e, err := decodeExpr(wd.Default)
			if err != nil {
				return nil, err
			}
			def, _ = e.(*ast.MethodCall)
		}
		return ast.NewTableDecl(loc, wd.Name, keys, actions, def), nil
	}
	return nil, fmt.Errorf("unknown declaration node %q", wd.Node)
}

func decodeCallList(raws []json.RawMessage) ([]*ast.MethodCall, error) {
	out := make([]*ast.MethodCall, len(raws))
	for i, r := range raws {
		e, err := decodeExpr(r)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		mc, ok := e.(*ast.MethodCall)
		if !ok {
			return nil, fmt.Errorf("[%d]: expected a call expression, got %T", i, e)
		}
		out[i] = mc
	}
	return out, nil
}

type wireEntry struct {
	Node   string          `json:"node"`
	Loc    wireLoc         `json:"loc"`
	Name   string          `json:"name"`
	Kind   string          `json:"kind"`
	Params []wireParam     `json:"params"`
	Body   json.RawMessage `json:"body"`
}

func decodeEntry(raw json.RawMessage) (*ast.EntryDecl, error) {
	var we wireEntry
	if err := json.Unmarshal(raw, &we); err != nil {
		return nil, err
	}
	var kind ast.EntryKind
	switch we.Kind {
	case "parser":
		kind = ast.EntryParser
	case "control":
		kind = ast.EntryControl
	default:
		return nil, fmt.Errorf("entry %q: unknown kind %q", we.Name, we.Kind)
	}
	params, err := decodeParams(we.Params)
	if err != nil {
		return nil, err
	}
	body, err := decodeBlock(we.Body)
	if err != nil {
		return nil, err
	}
	return ast.NewEntryDecl(we.Loc.loc(), we.Name, kind, params, body), nil
}
