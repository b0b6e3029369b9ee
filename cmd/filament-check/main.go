// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Binary filament-check type-checks a JSON-encoded Namespace fixture
// against Filament's interval type system.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	log "github.com/golang/glog"

	"github.com/Jetbl/filament/fixtures"
	"github.com/Jetbl/filament/interpreter"
	"github.com/Jetbl/filament/packages"
)

// config is the optional TOML file's shape: solver binary path and
// driver defaults, each overridable by the matching flag.
type config struct {
	SolverPath string `toml:"solver_path"`
	ShowModels bool   `toml:"show_models"`
}

var (
	configPath          = flag.String("config", "", "path to a TOML driver config file")
	solverPath          = flag.String("solver", "", "SMT solver binary to exec (overrides config)")
	showModels          = flag.Bool("show-models", false, "extract and print a counter-model for each failing fact")
	unsafeSkipDischarge = flag.Bool("unsafe-skip-discharge", false, "skip Discharge entirely (debugging only)")
	dumpDepFile         = flag.String("dump-dep-file", "", "write a make-style dependency file here")
	out                 = flag.String("out", "", "logical output name used in the dependency file")
)

func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return config{}, fmt.Errorf("filament-check: read config %s: %w", path, err)
	}
	return cfg, nil
}

func run() (int, error) {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: filament-check [flags] <namespace.json>")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return 0, err
	}
	opts := interpreter.Options{
		SolverPath:    cfg.SolverPath,
		ShowModels:    cfg.ShowModels,
		SkipDischarge: *unsafeSkipDischarge,
	}
	if *solverPath != "" {
		opts.SolverPath = *solverPath
	}
	if *showModels {
		opts.ShowModels = true
	}

	blob, err := os.ReadFile(args[0])
	if err != nil {
		return 0, fmt.Errorf("filament-check: %w", err)
	}
	ns, err := fixtures.DecodeNamespace(blob)
	if err != nil {
		return 0, fmt.Errorf("filament-check: %w", err)
	}

	if *dumpDepFile != "" && *out != "" {
		deduped := packages.Dedup(ns.Imports)
		if err := os.WriteFile(*dumpDepFile, []byte(joinLines(packages.DepFileLines(*out, deduped))), 0644); err != nil {
			return 0, fmt.Errorf("filament-check: write dep file: %w", err)
		}
	}

	sess, loadDiags := interpreter.Load(ns, opts)
	errCount := len(loadDiags)
	for _, d := range loadDiags {
		fmt.Fprintln(os.Stderr, d.Error())
	}

	results, err := sess.CheckAll()
	if err != nil {
		return errCount, fmt.Errorf("filament-check: %w", err)
	}
	for _, r := range results {
		for _, d := range r.Diagnostics {
			fmt.Fprintf(os.Stderr, "%s: %s\n", r.Component, d.Error())
			errCount++
		}
		for _, f := range r.Lint {
			log.Infof("%s: [%s] %s: %s", r.Component, f.Severity, f.RuleName, f.Message)
		}
	}
	return errCount, nil
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out + "\n"
}

func main() {
	errCount, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if errCount > 0 {
		fmt.Fprintf(os.Stderr, "Compilation failed with %d errors.\n", errCount)
		if !*showModels {
			fmt.Fprintln(os.Stderr, "Run with --show-models to generate assignments for failing constraints.")
		}
		os.Exit(1)
	}
}
