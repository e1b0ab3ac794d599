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

package value

import (
	"fmt"

	"github.com/p4gauntlet/toz3go/smt"
)

// Header is a Struct plus a validity term (spec.md §3, I2). Field reads are
// not gated on every access; gating is applied once, where the spec's
// Output section actually requires it: when a ControlState is captured at
// an entry-point exit (see interp.captureControlState). This keeps internal
// reads and writes of a header's fields simple regardless of validity,
// while still producing `ite(valid, field, fresh_undef)` on every
// externally observable reading of the field, matching §6 and the worked
// scenario in §8 exactly.
type Header struct {
	Struct Struct
	Valid  smt.Term // boolean-sorted
}

// NewHeader builds a header with a fresh validity constant named
// "<id>_valid" (spec.md §4.1 propagate_validity) and recurses into any
// header-typed member so that a header nested inside another header shares
// its parent's validity term. A header reached only through a struct-typed
// member is not visited.
func NewHeader(ctx smt.Context, s *Struct) *Header {
	h := &Header{Struct: *s}
	h.Valid = ctx.FreshBoolConst(fmt.Sprintf("%d_valid", s.ID))
	h.propagateValidity(h.Valid)
	return h
}

func (h *Header) propagateValidity(valid smt.Term) {
	for _, name := range h.Struct.Order {
		if nested, ok := h.Struct.Fields[name].(*Header); ok {
			nested.Valid = valid
			nested.propagateValidity(valid)
		}
	}
}

func (h *Header) Kind() Kind { return KindHeader }

func (h *Header) Copy() Value {
	ns := h.Struct.Copy().(*Struct)
	return &Header{Struct: *ns, Valid: h.Valid}
}

func (h *Header) Undefined(ctx smt.Context) Value {
	nh := h.Copy().(*Header)
	for _, name := range nh.Struct.Order {
		nh.Struct.Fields[name] = nh.Struct.Fields[name].Undefined(ctx)
	}
	nh.Valid = ctx.FreshBoolConst(fmt.Sprintf("%d_undef_valid", nh.Struct.ID))
	return nh
}

// SetValid is the `setValid` header built-in (spec.md §4.4).
func (h *Header) SetValid(ctx smt.Context) {
	h.Valid = ctx.BoolVal(true)
	h.propagateValidity(h.Valid)
}

// SetInvalid is the `setInvalid` header built-in.
func (h *Header) SetInvalid(ctx smt.Context) {
	h.Valid = ctx.BoolVal(false)
	h.propagateValidity(h.Valid)
}

// IsValid is the `isValid` header built-in; it yields the current validity
// term wrapped as a boolean-sorted Bitvector (spec.md §4.4).
func (h *Header) IsValid() *Bitvector {
	return &Bitvector{Term: h.Valid}
}

// Get/Set/HasField forward to the embedded Struct for convenience at call
// sites that don't care whether they hold a Struct or a Header.
func (h *Header) Get(name string) (Value, bool) { return h.Struct.Get(name) }
func (h *Header) Set(name string, v Value)       { h.Struct.Set(name, v) }
func (h *Header) HasField(name string) bool      { return h.Struct.HasField(name) }

// GatedField returns the externally-observable reading of field name:
// ite(valid, field, elseBranch), where elseBranch is either a fresh
// undefined value of the field's own shape (header_invalid_read=fresh_undef)
// or a zero-valued instance (header_invalid_read=zero); the caller (interp)
// decides which per the evaluator's Configuration.
//
// Merge's convention is result = ite(cond, other, self); to get
// ite(valid, field, elseBranch) we merge with self=elseBranch,
// other=field, cond=valid.
func (h *Header) GatedField(ctx smt.Context, name string, elseBranch Value) (Value, error) {
	field, ok := h.Get(name)
	if !ok {
		return nil, fmt.Errorf("header %s has no field %q", h.Struct.TypeName, name)
	}
	return Merge(ctx, h.Valid, elseBranch, field)
}
