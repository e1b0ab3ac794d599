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

// Package interp is the AST visitor of spec.md §4.3: expression evaluation,
// statement execution, calls with copy-in/copy-out, and the if/mux
// fork-merge protocol, all delegating value-level work to package value and
// environment bookkeeping to package state. Grounded on the teacher's
// expr.Visitor/expr.Rewrite depth-first traversal discipline (expr/node.go)
// for the shape of the walk.
package interp

import (
	"github.com/p4gauntlet/toz3go/ast"
	"github.com/p4gauntlet/toz3go/config"
	"github.com/p4gauntlet/toz3go/smt"
	"github.com/p4gauntlet/toz3go/state"
	"github.com/p4gauntlet/toz3go/value"
)

// Interp evaluates one program against one State. A fresh Interp (wrapping
// a fresh State) is created per evaluation; per spec.md §5 neither is ever
// shared across goroutines.
type Interp struct {
	St  *state.State
	Cfg config.Configuration
}

// New returns an Interp over a fresh State rooted at ctx.
func New(ctx smt.Context, cfg config.Configuration) *Interp {
	return &Interp{St: state.New(ctx), Cfg: cfg}
}

func (ip *Interp) ctx() smt.Context { return ip.St.Ctx }

// DeclareType registers every declared type a program needs resolved before
// evaluation begins; callers (the entry-point driver, tests building
// fixture programs) call this once per named type before running a body.
func (ip *Interp) DeclareType(name string, t ast.Type) {
	ip.St.AddType(name, t)
}

// DeclareCallable registers a function/action/table declaration in the
// static-decl namespace so MethodCall can resolve it by name.
func (ip *Interp) DeclareCallable(name string, decl ast.Declaration) {
	ip.St.DeclareStaticDecl(name, &value.Declaration{Decl: decl})
}
