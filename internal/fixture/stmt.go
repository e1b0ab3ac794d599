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

type wireStmt struct {
	Node   string            `json:"node"`
	Loc    wireLoc           `json:"loc"`
	Stmts  []json.RawMessage `json:"stmts"`
	Name   string            `json:"name"`
	Typ    *wireType         `json:"type"`
	Init   json.RawMessage   `json:"init"`
	Target json.RawMessage   `json:"target"`
	Value  json.RawMessage   `json:"value"`
	Cond   json.RawMessage   `json:"cond"`
	Then   json.RawMessage   `json:"then"`
	Else   json.RawMessage   `json:"else"`
	Expr   json.RawMessage   `json:"expr"`
}

func decodeStmt(raw json.RawMessage) (ast.Statement, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var ws wireStmt
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, err
	}
	loc := ws.Loc.loc()

	switch ws.Node {
	case "block":
		return decodeBlockBody(loc, ws.Stmts)
	case "vardecl":
		if ws.Typ == nil {
			return nil, fmt.Errorf("vardecl %q: missing type", ws.Name)
		}
		t, err := ws.Typ.resolve()
		if err != nil {
			return nil, err
		}
		init, err := decodeExpr(ws.Init)
		if err != nil {
			return nil, err
		}
		return ast.NewVarDeclStmt(loc, ws.Name, t, init), nil
	case "assign":
		target, err := decodeExpr(ws.Target)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(ws.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewAssignment(loc, target, value), nil
	case "if":
		cond, err := decodeExpr(ws.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeStmt(ws.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeStmt(ws.Else)
		if err != nil {
			return nil, err
		}
		return ast.NewIf(loc, cond, then, els), nil
	case "return":
		v, err := decodeExpr(ws.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewReturn(loc, v), nil
	case "exit":
		return ast.NewExit(loc), nil
	case "expr":
		e, err := decodeExpr(ws.Expr)
		if err != nil {
			return nil, err
		}
		return ast.NewExprStmt(loc, e), nil
	}
	return nil, fmt.Errorf("unknown statement node %q", ws.Node)
}

func decodeBlockBody(loc ast.Location, raws []json.RawMessage) (*ast.Block, error) {
	stmts := make([]ast.Statement, len(raws))
	for i, r := range raws {
		s, err := decodeStmt(r)
		if err != nil {
			return nil, fmt.Errorf("stmts[%d]: %w", i, err)
		}
		stmts[i] = s
	}
	return ast.NewBlock(loc, stmts), nil
}

func decodeBlock(raw json.RawMessage) (*ast.Block, error) {
	s, err := decodeStmt(raw)
	if err != nil {
		return nil, err
	}
	b, ok := s.(*ast.Block)
	if !ok {
		return nil, fmt.Errorf("expected a block statement, got %T", s)
	}
	return b, nil
}
