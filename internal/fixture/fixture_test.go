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

package fixture_test

import (
	"testing"

	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/internal/fixture"
)

// TestDecodeEntryProgram decodes a minimal fixture describing spec.md §8
// scenario 5 (`bit<8> x; if (c) x = 1; else x = 2;`) and checks the
// resulting AST shape.
func TestDecodeEntryProgram(t *testing.T) {
	doc := []byte(`{
		"types": {
			"byte_t": {"kind": "bits", "width": 8}
		},
		"entries": [
			{
				"node": "entry", "kind": "control", "name": "main",
				"params": [{"name": "c", "type": {"kind": "bool"}}],
				"body": {"node": "block", "stmts": [
					{"node": "vardecl", "name": "x", "type": {"kind": "name", "name": "byte_t"}},
					{"node": "if",
						"cond": {"node": "path", "name": "c"},
						"then": {"node": "assign",
							"target": {"node": "path", "name": "x"},
							"value": {"node": "intlit", "val": "1"}},
						"else": {"node": "assign",
							"target": {"node": "path", "name": "x"},
							"value": {"node": "intlit", "val": "2"}}}
				]}
			}
		]
	}`)

	p, err := fixture.Decode(doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := p.Types["byte_t"].(*ast.BitsType); !ok {
		t.Fatalf("expected byte_t to resolve to *ast.BitsType, got %#v", p.Types["byte_t"])
	}
	if len(p.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(p.Entries))
	}
	entry := p.Entries[0]
	if entry.Name != "main" || entry.Kind != ast.EntryControl {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if len(entry.Params) != 1 || entry.Params[0].Name != "c" {
		t.Fatalf("unexpected params: %+v", entry.Params)
	}
	if len(entry.Body.Stmts) != 2 {
		t.Fatalf("expected 2 statements in the body, got %d", len(entry.Body.Stmts))
	}
	ifStmt, ok := entry.Body.Stmts[1].(*ast.If)
	if !ok {
		t.Fatalf("expected the second statement to be an *ast.If, got %T", entry.Body.Stmts[1])
	}
	if _, ok := ifStmt.Then.(*ast.Assignment); !ok {
		t.Errorf("expected the then-arm to be an assignment, got %T", ifStmt.Then)
	}
}

func TestDecodeRejectsUnknownTypeKind(t *testing.T) {
	_, err := fixture.Decode([]byte(`{"types": {"bogus_t": {"kind": "nonsense"}}}`))
	if err == nil {
		t.Fatal("expected an error for an unrecognized type kind")
	}
}

func TestDecodeRejectsUnknownEntryKind(t *testing.T) {
	doc := []byte(`{"entries": [{"node": "entry", "kind": "bogus", "name": "p", "body": {"node": "block", "stmts": []}}]}`)
	if _, err := fixture.Decode(doc); err == nil {
		t.Fatal("expected an error for an unrecognized entry kind")
	}
}

func TestDecodeEmptyProgram(t *testing.T) {
	p, err := fixture.Decode([]byte(`{}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(p.Types) != 0 || len(p.Decls) != 0 || len(p.Entries) != 0 {
		t.Errorf("expected an empty program, got %+v", p)
	}
}
