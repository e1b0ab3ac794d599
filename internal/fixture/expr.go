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

var unaryOps = map[string]ast.UnaryOp{
	"neg":    ast.OpNeg,
	"bitnot": ast.OpBitNot,
	"lnot":   ast.OpLNot,
}

var binaryOps = map[string]ast.BinaryOp{
	"mul":    ast.OpMul,
	"div":    ast.OpDiv,
	"mod":    ast.OpMod,
	"add":    ast.OpAdd,
	"sub":    ast.OpSub,
	"addsat": ast.OpAddSat,
	"subsat": ast.OpSubSat,
	"shl":    ast.OpShl,
	"shr":    ast.OpShr,
	"eq":     ast.OpEq,
	"ne":     ast.OpNe,
	"lt":     ast.OpLt,
	"le":     ast.OpLe,
	"gt":     ast.OpGt,
	"ge":     ast.OpGe,
	"band":   ast.OpBAnd,
	"bor":    ast.OpBOr,
	"bxor":   ast.OpBXor,
	"land":   ast.OpLAnd,
	"lor":    ast.OpLOr,
	"concat": ast.OpConcat,
}

type wireExpr struct {
	Node string          `json:"node"`
	Loc  wireLoc         `json:"loc"`
	Val  string          `json:"val"`
	Typ  *wireType       `json:"type"`
	Name string          `json:"name"`
	Obj  json.RawMessage `json:"obj"`
	Field string         `json:"field"`
	Op   string          `json:"op"`
	X    json.RawMessage `json:"x"`
	Y    json.RawMessage `json:"y"`
	Cond json.RawMessage `json:"cond"`
	Then json.RawMessage `json:"then"`
	Else json.RawMessage `json:"else"`
	Dest *wireType       `json:"dest"`
	Method string        `json:"method"`
	Args []json.RawMessage `json:"args"`
	Elems []json.RawMessage `json:"elems"`
}

func decodeExpr(raw json.RawMessage) (ast.Expression, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var we wireExpr
	if err := json.Unmarshal(raw, &we); err != nil {
		return nil, err
	}
	loc := we.Loc.loc()

	switch we.Node {
	case "intlit":
		v, err := bigFromString(we.Val)
		if err != nil {
			return nil, err
		}
		var t ast.Type
		if we.Typ != nil {
			t, err = we.Typ.resolve()
			if err != nil {
				return nil, err
			}
		}
		return ast.NewIntLit(loc, v, t), nil
	case "boollit":
		return ast.NewBoolLit(loc, we.Val == "true"), nil
	case "path":
		return ast.NewPathExpr(loc, we.Name), nil
	case "member":
		obj, err := decodeExpr(we.Obj)
		if err != nil {
			return nil, err
		}
		return ast.NewMember(loc, obj, we.Field), nil
	case "unary":
		op, ok := unaryOps[we.Op]
		if !ok {
			return nil, fmt.Errorf("unknown unary op %q", we.Op)
		}
		x, err := decodeExpr(we.X)
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(loc, op, x), nil
	case "binary":
		op, ok := binaryOps[we.Op]
		if !ok {
			return nil, fmt.Errorf("unknown binary op %q", we.Op)
		}
		x, err := decodeExpr(we.X)
		if err != nil {
			return nil, err
		}
		y, err := decodeExpr(we.Y)
		if err != nil {
			return nil, err
		}
		return ast.NewBinary(loc, op, x, y), nil
	case "mux":
		cond, err := decodeExpr(we.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeExpr(we.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeExpr(we.Else)
		if err != nil {
			return nil, err
		}
		return ast.NewMux(loc, cond, then, els), nil
	case "cast":
		if we.Dest == nil {
			return nil, fmt.Errorf("cast: missing dest type")
		}
		dest, err := we.Dest.resolve()
		if err != nil {
			return nil, err
		}
		x, err := decodeExpr(we.X)
		if err != nil {
			return nil, err
		}
		return ast.NewCast(loc, dest, x), nil
	case "call":
		obj, err := decodeExpr(we.Obj)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprList(we.Args)
		if err != nil {
			return nil, err
		}
		return ast.NewMethodCall(loc, obj, we.Method, args), nil
	case "list":
		elems, err := decodeExprList(we.Elems)
		if err != nil {
			return nil, err
		}
		var t ast.Type
		if we.Typ != nil {
			t, err = we.Typ.resolve()
			if err != nil {
				return nil, err
			}
		}
		return ast.NewListExpr(loc, elems, t), nil
	}
	return nil, fmt.Errorf("unknown expression node %q", we.Node)
}

func decodeExprList(raws []json.RawMessage) ([]ast.Expression, error) {
	out := make([]ast.Expression, len(raws))
	for i, r := range raws {
		e, err := decodeExpr(r)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}
