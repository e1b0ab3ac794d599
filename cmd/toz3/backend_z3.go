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

//go:build z3

package main

import (
	"github.com/aclements/go-z3/z3"

	"github.com/p4gauntlet/toz3go/smt"
	"github.com/p4gauntlet/toz3go/smtz3"
)

const backendName = "smtz3 (z3)"

// newContext builds a fresh *z3.Context per evaluation (spec.md §5:
// independent evaluations get independent contexts, never a shared one),
// matching the binding's own one-context-per-use-site convention.
func newContext() (smt.Context, error) {
	z := z3.NewContext(z3.NewContextConfig())
	return smtz3.New(z), nil
}
