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

// Package dump writes a batch run's ControlState output as zstd-compressed
// JSON, for the case this exercise's §1 batch-verification workload
// describes: many programs evaluated in one run, each producing its own
// ControlState, too much output to keep comfortably as plain JSON on disk.
// Grounded on the teacher's own compr package (compr/compression.go),
// which reaches for klauspost/compress/zstd the same way: a package-level
// EncodeAll/DecodeAll pair rather than a long-lived streaming writer, since
// each entry point's dump is produced once and read back whole.
package dump

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/klauspost/compress/zstd"

	"github.com/p4gauntlet/toz3go/value"
)

// VarRecord is one flattened (path, term) pair, with the term rendered to
// its string form (spec.md §6's output contract has no notion of
// serializing a live smt.Term handle back in; the string form is what a
// downstream equivalence checker would re-parse).
type VarRecord struct {
	Path string `json:"path"`
	Term string `json:"term"`
}

// EntryRecord is one evaluated entry point's ControlState.
type EntryRecord struct {
	Entry string      `json:"entry"`
	Vars  []VarRecord `json:"vars"`
}

func toRecord(entry string, cs *value.ControlState) EntryRecord {
	vars := make([]VarRecord, len(cs.Vars))
	for i, v := range cs.Vars {
		vars[i] = VarRecord{Path: v.Path, Term: v.Term.String()}
	}
	return EntryRecord{Entry: entry, Vars: vars}
}

// Encode renders a batch of named ControlStates as zstd-compressed JSON.
func Encode(states map[string]*value.ControlState) ([]byte, error) {
	records := make([]EntryRecord, 0, len(states))
	for name, cs := range states {
		records = append(records, toRecord(name, cs))
	}
	plain, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("dump: encode: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("dump: zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(plain, nil), nil
}

// Decode reverses Encode, for a verifier that wants the raw
// (entry, path, term-string) records rather than live symbolic values.
func Decode(compressed []byte) ([]EntryRecord, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(runtime.GOMAXPROCS(0)))
	if err != nil {
		return nil, fmt.Errorf("dump: zstd reader: %w", err)
	}
	defer dec.Close()
	plain, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("dump: decode: %w", err)
	}
	var records []EntryRecord
	if err := json.Unmarshal(plain, &records); err != nil {
		return nil, fmt.Errorf("dump: unmarshal: %w", err)
	}
	return records, nil
}
