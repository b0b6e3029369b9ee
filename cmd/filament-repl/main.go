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

// Binary filament-repl is an interactive shell for loading a Namespace
// fixture and checking one or all of its components.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	log "github.com/golang/glog"

	"github.com/Jetbl/filament/ast"
	"github.com/Jetbl/filament/fixtures"
	"github.com/Jetbl/filament/interpreter"
)

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

var (
	load          = flag.String("load", "", "JSON namespace fixture to load on startup")
	solverPath    = flag.String("solver", "", "SMT solver binary to exec")
	skipDischarge = flag.Bool("unsafe-skip-discharge", false, "skip Discharge entirely (debugging only)")
)

const prompt = "fil> "

// shell holds the loaded session across commands typed at the prompt.
type shell struct {
	ns   ast.Namespace
	sess *interpreter.Session
}

func (s *shell) loadFile(path string) error {
	blob, err := readFile(path)
	if err != nil {
		return err
	}
	ns, err := fixtures.DecodeNamespace(blob)
	if err != nil {
		return err
	}
	sess, diags := interpreter.Load(ns, interpreter.Options{
		SolverPath:    *solverPath,
		SkipDischarge: *skipDischarge,
	})
	for _, d := range diags {
		fmt.Println(d.Error())
	}
	s.ns = ns
	s.sess = sess
	return nil
}

func (s *shell) checkAll() {
	if s.sess == nil {
		fmt.Println("no namespace loaded; use :load <file.json>")
		return
	}
	results, err := s.sess.CheckAll()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, r := range results {
		status := "ok"
		if !r.Ok() {
			status = "FAILED"
		}
		fmt.Printf("%s: %s\n", r.Component, status)
		for _, d := range r.Diagnostics {
			fmt.Println(" ", d.Error())
		}
		for _, f := range r.Lint {
			fmt.Printf("  [%s] %s: %s\n", f.Severity, f.RuleName, f.Message)
		}
	}
}

func (s *shell) printNamespace() {
	if s.ns.Components == nil && s.ns.Externals == nil {
		fmt.Println("no namespace loaded; use :load <file.json>")
		return
	}
	fmt.Print(ast.PrintNamespace(s.ns))
}

func (s *shell) dispatch(line string) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return
	case line == ":check":
		s.checkAll()
	case line == ":print":
		s.printNamespace()
	case strings.HasPrefix(line, ":load "):
		path := strings.TrimSpace(strings.TrimPrefix(line, ":load "))
		if err := s.loadFile(path); err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Printf("loaded %d component(s)\n", len(s.ns.Components))
	default:
		fmt.Println("commands: :load <file.json>, :check, :print")
	}
}

func loop() error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	s := &shell{}
	if *load != "" {
		if err := s.loadFile(*load); err != nil {
			return err
		}
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			return err
		}
		readline.AddHistory(line)
		s.dispatch(line)
	}
}

func main() {
	flag.Parse()
	if err := loop(); err != nil && err != io.EOF {
		log.Exit(err)
	}
}
