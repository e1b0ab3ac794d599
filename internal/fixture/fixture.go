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

// Package fixture decodes a JSON-encoded program (named types, named
// callables, and entry points) into the ast package's node family, for
// cmd/toz3 and for tests that would rather describe a fixture program as
// data than build it with ast's constructors by hand. Every node carries a
// "node"/"kind" discriminator tag and is decoded through a type-switch over
// that tag, the same shape as the teacher's expr.decode (expr/decode.go):
// one small dispatcher per polymorphic family, each case delegating to the
// concrete type's own decode step.
package fixture

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/p4gauntlet/toz3go/ast"
)

// Program is a fully decoded fixture: named types available to ResolveType,
// named callables/tables available to MethodCall, and the entry points a
// driver runs one at a time.
type Program struct {
	Types   map[string]ast.Type
	Decls   map[string]ast.Declaration
	Entries []*ast.EntryDecl
}

type wireProgram struct {
	Types   map[string]json.RawMessage `json:"types"`
	Decls   map[string]json.RawMessage `json:"decls"`
	Entries []json.RawMessage         `json:"entries"`
}

// Decode parses a JSON document into a Program. Errors are wrapped with the
// name of the top-level entity being decoded, so a malformed fixture points
// at the offending type/decl/entry by name rather than a bare JSON offset.
func Decode(data []byte) (*Program, error) {
	var wp wireProgram
	if err := json.Unmarshal(data, &wp); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}

	p := &Program{
		Types: make(map[string]ast.Type, len(wp.Types)),
		Decls: make(map[string]ast.Declaration, len(wp.Decls)),
	}

	for name, raw := range wp.Types {
		t, err := decodeType(raw)
		if err != nil {
			return nil, fmt.Errorf("fixture: type %q: %w", name, err)
		}
		p.Types[name] = t
	}
	for name, raw := range wp.Decls {
		d, err := decodeDecl(raw)
		if err != nil {
			return nil, fmt.Errorf("fixture: decl %q: %w", name, err)
		}
		p.Decls[name] = d
	}
	for i, raw := range wp.Entries {
		e, err := decodeEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("fixture: entries[%d]: %w", i, err)
		}
		p.Entries = append(p.Entries, e)
	}
	return p, nil
}

type wireLoc struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

func (l wireLoc) loc() ast.Location {
	return ast.Location{File: l.File, Line: l.Line, Col: l.Col}
}

func bigFromString(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("not a decimal integer: %q", s)
	}
	return v, nil
}
