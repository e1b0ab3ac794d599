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

// Command toz3 reads a JSON-encoded program fixture and a YAML
// configuration file, symbolically evaluates each of the program's
// declared entry points, and prints the resulting ControlState mappings
// (spec.md §1, §6). File I/O and flag parsing are the external
// collaborators the core packages have no business knowing about;
// grounded on cmd/sneller/main.go's style (package-level flag
// destinations, a flag.CommandLine.Usage override, no CLI framework).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/p4gauntlet/toz3go/config"
	"github.com/p4gauntlet/toz3go/interp"
	"github.com/p4gauntlet/toz3go/internal/dump"
	"github.com/p4gauntlet/toz3go/internal/fixture"
	"github.com/p4gauntlet/toz3go/value"
)

var (
	dashProgram string
	dashConfig  string
	dashEntry   string
	dashOut     string
	dashDump    bool
	printVersion bool
)

func init() {
	flag.CommandLine.Usage = printHelp
	flag.StringVar(&dashProgram, "program", "", "path to a JSON-encoded program fixture (required)")
	flag.StringVar(&dashConfig, "config", "", "path to a YAML evaluator configuration (defaults to config.Default())")
	flag.StringVar(&dashEntry, "entry", "", "evaluate only the named entry point (default: all)")
	flag.StringVar(&dashOut, "o", "", "file for output (default is stdout)")
	flag.BoolVar(&dashDump, "dump", false, "write zstd-compressed JSON instead of plain text")
	flag.BoolVar(&printVersion, "version", false, "print the backend this binary was built with")
}

func printHelp() {
	fmt.Fprintln(os.Stderr, "usage: toz3 -program prog.json [-config cfg.yaml] [-entry name] [-o out] [-dump]")
	flag.PrintDefaults()
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if printVersion {
		fmt.Println(backendName)
		return
	}
	if dashProgram == "" {
		flag.CommandLine.Usage()
		os.Exit(1)
	}

	cfg := config.Default()
	if dashConfig != "" {
		raw, err := os.ReadFile(dashConfig)
		if err != nil {
			exit(err)
		}
		cfg, err = config.Load(raw)
		if err != nil {
			exit(err)
		}
	}

	raw, err := os.ReadFile(dashProgram)
	if err != nil {
		exit(err)
	}
	prog, err := fixture.Decode(raw)
	if err != nil {
		exit(err)
	}

	results, err := runProgram(prog, cfg)
	if err != nil {
		exit(err)
	}

	dst := os.Stdout
	if dashOut != "" {
		f, err := os.Create(dashOut)
		if err != nil {
			exit(err)
		}
		defer f.Close()
		dst = f
	}

	if dashDump {
		out, err := dump.Encode(results)
		if err != nil {
			exit(err)
		}
		if _, err := dst.Write(out); err != nil {
			exit(err)
		}
		return
	}
	printResults(dst, prog, results)
}

// runProgram evaluates every entry point named in prog (or just dashEntry,
// when set), each against its own fresh backend context: spec.md §5 treats
// independent evaluations as never sharing state.
func runProgram(prog *fixture.Program, cfg config.Configuration) (map[string]*value.ControlState, error) {
	results := make(map[string]*value.ControlState)
	for _, e := range prog.Entries {
		if dashEntry != "" && e.Name != dashEntry {
			continue
		}
		ctx, err := newContext()
		if err != nil {
			return nil, fmt.Errorf("toz3: backend: %w", err)
		}
		ip := interp.New(ctx, cfg)
		for name, t := range prog.Types {
			ip.DeclareType(name, t)
		}
		for name, d := range prog.Decls {
			ip.DeclareCallable(name, d)
		}
		cs, err := ip.RunEntry(e)
		if err != nil {
			return nil, fmt.Errorf("toz3: entry %q: %w", e.Name, err)
		}
		results[e.Name] = cs
	}
	return results, nil
}

// printResults prints each entry's ControlState in program declaration
// order, one (path, term) pair per line.
func printResults(dst *os.File, prog *fixture.Program, results map[string]*value.ControlState) {
	for _, e := range prog.Entries {
		cs, ok := results[e.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(dst, "%s:\n", e.Name)
		for _, v := range cs.Vars {
			fmt.Fprintf(dst, "  %s = %s\n", v.Path, v.Term.String())
		}
	}
}
