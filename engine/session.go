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

// Package engine implements Discharge: opening a solver session, asserting
// the negation of each Fact inside a push/pop scope, and interpreting the
// check-sat result (§4.4).
package engine

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"go.uber.org/multierr"

	"github.com/Jetbl/filament/ast"
)

// sessionState is the solver session's own state machine (§4.4):
//
//	Idle -> declare -> Declared -> (push/assert/check-sat/pop)* -> exit -> Closed
type sessionState int

const (
	stateIdle sessionState = iota
	stateDeclared
	stateClosed
)

// CheckSatResult is the solver's verdict on the asserted formula.
type CheckSatResult int

const (
	Unsat CheckSatResult = iota
	Sat
	Unknown
)

func (r CheckSatResult) String() string {
	switch r {
	case Unsat:
		return "unsat"
	case Sat:
		return "sat"
	default:
		return "unknown"
	}
}

// TransportError wraps a failure talking to the solver subprocess: a
// broken pipe, a process that exited unexpectedly, or a response that
// doesn't parse as one of sat/unsat/unknown. Per §7 this is the fatal
// SmtTransport kind — it is never collected as a Diagnostic, only
// propagated and wrapped.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("engine: smt transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Session drives one external SMT solver subprocess over S-expressions on
// its stdin/stdout (§4.4, §6). A Session is single-use: once closed it
// cannot be reopened, matching the "acquired at the start of a
// component-checking operation, released on all exit paths" lifecycle of
// §5.
type Session struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   *bufio.Scanner
	state sessionState
}

// NewSession spawns solverPath as a child process and puts it in Idle
// state, having sent the model-production option (§6's
// "set-option :produce-models true"). solverPath must be a solver that
// speaks the SMT-LIB2 subset named in §6 (no custom theories, linear
// integer arithmetic only).
func NewSession(solverPath string) (*Session, error) {
	cmd := exec.Command(solverPath, "-in")
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &TransportError{Op: "open stdin", Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &TransportError{Op: "open stdout", Err: err}
	}
	if err := cmd.Start(); err != nil {
		return nil, &TransportError{Op: "start solver process", Err: err}
	}
	s := &Session{cmd: cmd, stdin: stdin, out: bufio.NewScanner(stdout), state: stateIdle}
	log.V(1).Infof("engine: started solver session (pid %d)", cmd.Process.Pid)
	if err := s.send("(set-option :produce-models true)"); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) send(line string) error {
	if s.state == stateClosed {
		return &TransportError{Op: "send", Err: fmt.Errorf("session already closed")}
	}
	if _, err := io.WriteString(s.stdin, line+"\n"); err != nil {
		s.state = stateClosed
		return &TransportError{Op: "write to solver stdin", Err: err}
	}
	return nil
}

func (s *Session) readLine() (string, error) {
	if !s.out.Scan() {
		s.state = stateClosed
		if err := s.out.Err(); err != nil {
			return "", &TransportError{Op: "read from solver stdout", Err: err}
		}
		return "", &TransportError{Op: "read from solver stdout", Err: io.ErrUnexpectedEOF}
	}
	return s.out.Text(), nil
}

// Declare moves the session from Idle to Declared: one
// "(declare-const name Int)" per abstract time variable in scope, then
// one "assert" per assumption constraint (§4.4's "declares one integer
// constant per abstract time variable ... asserts each assumption
// constraint").
func (s *Session) Declare(vars []ast.Id, assumptions []ast.Constraint) error {
	if s.state != stateIdle {
		return &TransportError{Op: "declare", Err: fmt.Errorf("session not idle")}
	}
	for _, v := range vars {
		if err := s.send(fmt.Sprintf("(declare-const %s Int)", v.String())); err != nil {
			return err
		}
	}
	for _, c := range assumptions {
		if err := s.send(fmt.Sprintf("(assert %s)", c.ToSMT())); err != nil {
			return err
		}
	}
	s.state = stateDeclared
	return nil
}

// Push opens a new push/pop scope.
func (s *Session) Push() error {
	if s.state != stateDeclared {
		return &TransportError{Op: "push", Err: fmt.Errorf("session not declared")}
	}
	return s.send("(push 1)")
}

// Pop closes the innermost push/pop scope.
func (s *Session) Pop() error {
	if s.state != stateDeclared {
		return &TransportError{Op: "pop", Err: fmt.Errorf("session not declared")}
	}
	return s.send("(pop 1)")
}

// Assert sends an assert command for the given formula.
func (s *Session) Assert(formula ast.SExp) error {
	if s.state != stateDeclared {
		return &TransportError{Op: "assert", Err: fmt.Errorf("session not declared")}
	}
	return s.send(fmt.Sprintf("(assert %s)", formula))
}

// CheckSat sends check-sat and interprets the single-line response.
func (s *Session) CheckSat() (CheckSatResult, error) {
	if s.state != stateDeclared {
		return Unknown, &TransportError{Op: "check-sat", Err: fmt.Errorf("session not declared")}
	}
	if err := s.send("(check-sat)"); err != nil {
		return Unknown, err
	}
	line, err := s.readLine()
	if err != nil {
		return Unknown, err
	}
	switch strings.TrimSpace(line) {
	case "sat":
		return Sat, nil
	case "unsat":
		return Unsat, nil
	case "unknown":
		return Unknown, nil
	default:
		return Unknown, &TransportError{Op: "check-sat", Err: fmt.Errorf("unrecognized response %q", line)}
	}
}

// Model extracts a counter-model after a sat result, parsing
// "(get-model)"'s S-expression response into a flat variable -> value
// map. Only called when the outer driver passed --show-models (§4.4,
// §6).
func (s *Session) Model() (map[string]int64, error) {
	if s.state != stateDeclared {
		return nil, &TransportError{Op: "get-model", Err: fmt.Errorf("session not declared")}
	}
	if err := s.send("(get-model)"); err != nil {
		return nil, err
	}
	model := make(map[string]int64)
	depth := 0
	for {
		line, err := s.readLine()
		if err != nil {
			return nil, err
		}
		depth += strings.Count(line, "(") - strings.Count(line, ")")
		parseDefineFun(line, model)
		if depth <= 0 {
			break
		}
	}
	return model, nil
}

// parseDefineFun extracts a binding out of a single-line
// "(define-fun name () Int value)" response, ignoring lines that don't
// match; solvers differ cosmetically in how they format get-model
// output, but this shape is the common one across the SMT-LIB2 family.
func parseDefineFun(line string, out map[string]int64) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "(define-fun") {
		return
	}
	fields := strings.Fields(strings.Trim(line, "()"))
	if len(fields) < 5 {
		return
	}
	name := fields[1]
	value := strings.TrimRight(fields[len(fields)-1], ")")
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return
	}
	out[name] = n
}

// Exit sends the exit command and reaps the child process, moving the
// session to Closed. Safe to call more than once.
func (s *Session) Exit() error {
	if s.state == stateClosed {
		return nil
	}
	var merr error
	if err := s.send("(exit)"); err != nil {
		merr = multierr.Append(merr, err)
	}
	merr = multierr.Append(merr, s.Close())
	return merr
}

// Close tears down the subprocess unconditionally: it is the teardown
// hook §5 requires to run on every exit path (success, diagnostic
// emission, or panic), so it must never itself panic and must be
// idempotent.
func (s *Session) Close() error {
	if s.state == stateClosed && s.cmd.ProcessState != nil {
		return nil
	}
	s.state = stateClosed
	var merr error
	if err := s.stdin.Close(); err != nil {
		merr = multierr.Append(merr, fmt.Errorf("engine: closing solver stdin: %w", err))
	}
	if err := s.cmd.Wait(); err != nil {
		merr = multierr.Append(merr, fmt.Errorf("engine: waiting for solver process: %w", err))
	}
	log.V(1).Infof("engine: solver session closed")
	return merr
}
