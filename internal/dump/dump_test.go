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

package dump_test

import (
	"math/big"
	"testing"

	"github.com/p4gauntlet/toz3go/internal/dump"
	"github.com/p4gauntlet/toz3go/smtmock"
	"github.com/p4gauntlet/toz3go/value"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ctx := smtmock.NewContext()
	cs := &value.ControlState{
		Vars: []value.ControlVar{
			{Path: "h.f", Term: ctx.BVLit(big.NewInt(7), 8)},
			{Path: "h.valid", Term: ctx.BoolVal(true)},
		},
	}

	compressed, err := dump.Encode(map[string]*value.ControlState{"main": cs})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(compressed) == 0 {
		t.Fatal("expected non-empty compressed output")
	}

	records, err := dump.Decode(compressed)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 entry record, got %d", len(records))
	}
	rec := records[0]
	if rec.Entry != "main" {
		t.Errorf("got entry %q, want main", rec.Entry)
	}
	if len(rec.Vars) != 2 {
		t.Fatalf("expected 2 vars, got %d", len(rec.Vars))
	}
	byPath := make(map[string]string, len(rec.Vars))
	for _, v := range rec.Vars {
		byPath[v.Path] = v.Term
	}
	if want := cs.Vars[0].Term.String(); byPath["h.f"] != want {
		t.Errorf("got %q, want %q", byPath["h.f"], want)
	}
	if want := cs.Vars[1].Term.String(); byPath["h.valid"] != want {
		t.Errorf("got %q, want %q", byPath["h.valid"], want)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := dump.Decode([]byte("not zstd data")); err == nil {
		t.Fatal("expected an error decoding non-zstd input")
	}
}
