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

package idgen_test

import (
	"testing"

	"github.com/p4gauntlet/toz3go/internal/idgen"
)

func TestStableIDIsDeterministic(t *testing.T) {
	a := idgen.StableID("ethernet_t", []string{"dst", "src", "etype"})
	b := idgen.StableID("ethernet_t", []string{"dst", "src", "etype"})
	if a != b {
		t.Errorf("same shape produced different ids: %d vs %d", a, b)
	}
}

func TestStableIDDistinguishesShape(t *testing.T) {
	a := idgen.StableID("ethernet_t", []string{"dst", "src", "etype"})
	b := idgen.StableID("ethernet_t", []string{"src", "dst", "etype"})
	if a == b {
		t.Error("field order should change the id")
	}
	c := idgen.StableID("ipv4_t", []string{"dst", "src", "etype"})
	if a == c {
		t.Error("type name should change the id")
	}
}

func TestFreshNameIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := idgen.FreshName("x")
		if seen[n] {
			t.Fatalf("duplicate fresh name %q", n)
		}
		seen[n] = true
	}
}

func TestFreshNameKeepsPrefix(t *testing.T) {
	n := idgen.FreshName("hdr")
	if len(n) < len("hdr_") || n[:4] != "hdr_" {
		t.Errorf("expected prefix hdr_, got %q", n)
	}
}
