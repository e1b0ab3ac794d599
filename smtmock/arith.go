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

package smtmock

import "math/big"

// mask reduces v into the canonical unsigned representation of a width-bit
// bitvector, i.e. v mod 2^width, in [0, 2^width).
func mask(v *big.Int, width int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	r := new(big.Int).Mod(v, m)
	if r.Sign() < 0 {
		r.Add(r, m)
	}
	return r
}

// toSigned interprets a canonical unsigned width-bit value as a two's
// complement signed integer.
func toSigned(v *big.Int, width int) *big.Int {
	half := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
	if v.Cmp(half) >= 0 {
		full := new(big.Int).Lsh(big.NewInt(1), uint(width))
		return new(big.Int).Sub(v, full)
	}
	return new(big.Int).Set(v)
}

// fromSigned wraps a signed integer back into the canonical unsigned
// representation of a width-bit bitvector.
func fromSigned(v *big.Int, width int) *big.Int {
	return mask(v, width)
}
