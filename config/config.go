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

// Package config holds the three evaluator options spec.md §6 names,
// loaded from a YAML document via sigs.k8s.io/yaml (which decodes through
// the same json struct tags as encoding/json, rather than introducing a
// second tagging convention).
package config

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// SignedOverflowPolicy selects arithmetic overflow behavior on signed
// bitvectors (spec.md §6).
type SignedOverflowPolicy string

const (
	// PolicyWrap is modular two's-complement arithmetic and the default.
	// PolicyErrOnOverflow is accepted and validated by Load, but nothing
	// reads SignedIntegerPolicy: the value algebra's add/sub/mul are
	// modular under either setting, and signed overflow is never reported.
	PolicyWrap           SignedOverflowPolicy = "wrap"
	PolicyErrOnOverflow  SignedOverflowPolicy = "err_on_overflow"
)

// HeaderInvalidRead selects the else-branch of a header field's validity
// gate (spec.md §6, value.Header.GatedField).
type HeaderInvalidRead string

const (
	// ReadFreshUndef gates to a fresh symbolic constant of the field's own
	// shape: reading an invalid header's field yields "anything".
	ReadFreshUndef HeaderInvalidRead = "fresh_undef"
	// ReadZero gates to a zero-valued instance of the field's shape.
	ReadZero HeaderInvalidRead = "zero"
)

// Configuration is the evaluator's tunable behavior (spec.md §6).
type Configuration struct {
	SignedIntegerPolicy SignedOverflowPolicy `json:"signed_integer_policy"`
	HeaderInvalidRead   HeaderInvalidRead    `json:"header_invalid_read"`
	ListArityStrict     bool                 `json:"list_arity_strict"`
}

// Default matches spec.md §6's stated defaults.
func Default() Configuration {
	return Configuration{
		SignedIntegerPolicy: PolicyWrap,
		HeaderInvalidRead:   ReadFreshUndef,
		ListArityStrict:     true,
	}
}

// Load reads a YAML document and overlays it onto Default(); fields absent
// from the document keep their default value.
func Load(data []byte) (Configuration, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Configuration{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

func (c Configuration) validate() error {
	switch c.SignedIntegerPolicy {
	case PolicyWrap, PolicyErrOnOverflow:
	default:
		return fmt.Errorf("config: unknown signed_integer_policy %q", c.SignedIntegerPolicy)
	}
	switch c.HeaderInvalidRead {
	case ReadFreshUndef, ReadZero:
	default:
		return fmt.Errorf("config: unknown header_invalid_read %q", c.HeaderInvalidRead)
	}
	return nil
}
