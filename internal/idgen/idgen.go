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

// Package idgen produces the two kinds of identifier the state and value
// packages need: a scope-local monotonic id (backed by google/uuid, a
// teacher dependency already used for object ids elsewhere in the pack),
// and a stable per-struct-shape id (backed by dchest/siphash, the
// teacher's content-hashing dependency) so that two instances of the same
// struct/header type get the same numeric id and therefore the same
// fresh-constant naming scheme across independent evaluations, which keeps
// ControlState output diffable across runs of the same program.
package idgen

import (
	"strings"

	"github.com/dchest/siphash"
	"github.com/google/uuid"
)

// siphash key: fixed and arbitrary, since we only need stability across a
// process, not cross-process secrecy.
const k0, k1 = 0x746f7a33, 0x676f6c61

// StableID hashes a type name and its ordered field names into a stable
// 64-bit id. Two StructType/HeaderType values with the same name and field
// order produce the same id.
func StableID(typeName string, fieldNames []string) uint64 {
	var b strings.Builder
	b.WriteString(typeName)
	for _, f := range fieldNames {
		b.WriteByte(0)
		b.WriteString(f)
	}
	return siphash.Hash(k0, k1, []byte(b.String()))
}

// FreshName returns a process-unique name with the given prefix, used when
// the state needs to generate a symbolic constant that must not collide
// with any other fresh constant generated during the same evaluation.
func FreshName(prefix string) string {
	return prefix + "_" + uuid.New().String()[:8]
}
