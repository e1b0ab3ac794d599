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

//go:build !z3

package main

import (
	"github.com/p4gauntlet/toz3go/smt"
	"github.com/p4gauntlet/toz3go/smtmock"
)

// backendName reports which smt.Context implementation this binary was
// built with, for -version/diagnostic output.
const backendName = "smtmock"

// newContext returns a fresh backend context for one evaluation. This is
// the default build (no libz3 on the host, or the z3 tag was not passed);
// see backend_z3.go for the production cgo backend.
func newContext() (smt.Context, error) {
	return smtmock.NewContext(), nil
}
