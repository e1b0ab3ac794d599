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

package config_test

import (
	"testing"

	"github.com/p4gauntlet/toz3go/config"
)

func TestDefault(t *testing.T) {
	d := config.Default()
	if d.SignedIntegerPolicy != config.PolicyWrap {
		t.Errorf("got %q, want %q", d.SignedIntegerPolicy, config.PolicyWrap)
	}
	if d.HeaderInvalidRead != config.ReadFreshUndef {
		t.Errorf("got %q, want %q", d.HeaderInvalidRead, config.ReadFreshUndef)
	}
	if !d.ListArityStrict {
		t.Error("expected ListArityStrict default true")
	}
}

func TestLoadOverlaysOntoDefault(t *testing.T) {
	cfg, err := config.Load([]byte(`header_invalid_read: zero`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HeaderInvalidRead != config.ReadZero {
		t.Errorf("got %q, want zero", cfg.HeaderInvalidRead)
	}
	// Fields absent from the document keep Default()'s value.
	if cfg.SignedIntegerPolicy != config.PolicyWrap {
		t.Errorf("got %q, want wrap", cfg.SignedIntegerPolicy)
	}
	if !cfg.ListArityStrict {
		t.Error("expected list_arity_strict to keep its default of true")
	}
}

func TestLoadEmptyDocumentIsDefault(t *testing.T) {
	cfg, err := config.Load([]byte(``))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("got %+v, want %+v", cfg, config.Default())
	}
}

func TestLoadRejectsUnknownSignedIntegerPolicy(t *testing.T) {
	if _, err := config.Load([]byte(`signed_integer_policy: bogus`)); err == nil {
		t.Fatal("expected an error for an unrecognized signed_integer_policy")
	}
}

func TestLoadRejectsUnknownHeaderInvalidRead(t *testing.T) {
	if _, err := config.Load([]byte(`header_invalid_read: bogus`)); err == nil {
		t.Fatal("expected an error for an unrecognized header_invalid_read")
	}
}

func TestLoadAcceptsErrOnOverflowPolicy(t *testing.T) {
	cfg, err := config.Load([]byte(`signed_integer_policy: err_on_overflow`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SignedIntegerPolicy != config.PolicyErrOnOverflow {
		t.Errorf("got %q, want err_on_overflow", cfg.SignedIntegerPolicy)
	}
}

func TestLoadListAritystrictFalse(t *testing.T) {
	cfg, err := config.Load([]byte(`list_arity_strict: false`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListArityStrict {
		t.Error("expected list_arity_strict: false to be honored")
	}
}
