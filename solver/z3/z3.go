// Package z3 is a solver backend that runs the z3 binary.
//
// Each Check renders the session as an SMT-LIB v2 script and pipes it into a
// fresh `z3 -in -smt2` process bounded by the configured timeout. A missing
// binary, a timeout, a crash or unexpected output all yield Unknown.
package z3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strings"
	"time"

	"github.com/Gobd/symvalidation/formula"
	"github.com/Gobd/symvalidation/solver"
)

const (
	// DefaultPath is looked up on PATH.
	DefaultPath = "z3"
	// DefaultTimeout bounds one check.
	DefaultTimeout = 5 * time.Second
)

// Solver runs z3 processes.
type Solver struct {
	path    string
	timeout time.Duration
}

// Option configures a Solver.
type Option func(*Solver)

// WithPath sets the z3 executable.
func WithPath(path string) Option {
	return func(s *Solver) {
		if path != "" {
			s.path = path
		}
	}
}

// WithTimeout bounds each check.
func WithTimeout(d time.Duration) Option {
	return func(s *Solver) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New returns a z3 backed solver.
func New(opts ...Option) *Solver {
	s := &Solver{path: DefaultPath, timeout: DefaultTimeout}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewSession implements solver.Solver. It fails with solver.ErrUnavailable
// when the executable cannot be found.
func (s *Solver) NewSession(_ context.Context) (solver.Session, error) {
	path, err := exec.LookPath(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", solver.ErrUnavailable, err)
	}
	return &session{path: path, timeout: s.timeout}, nil
}

type session struct {
	path       string
	timeout    time.Duration
	assertions []formula.Formula
}

func (s *session) Assert(f formula.Formula) {
	s.assertions = append(s.assertions, f)
}

func (s *session) Bind(v formula.Var, value formula.Value) error {
	if v.Sort != value.Sort {
		return fmt.Errorf("%w: bind %s to %s value", formula.ErrSortMismatch, v, value.Sort)
	}
	if v.Sort == formula.SortInt {
		s.Assert(formula.IntEquals(formula.IntVar(v.Name), formula.Int(value.Int)))
		return nil
	}
	s.Assert(formula.Equals(formula.StrVar(v.Name), formula.Str(value.Str)))
	return nil
}

func (s *session) Check(ctx context.Context) (solver.Status, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	secs := int(math.Ceil(s.timeout.Seconds()))
	cmd := exec.CommandContext(ctx, s.path, "-in", "-smt2", fmt.Sprintf("-T:%d", max(secs, 1)))
	cmd.Stdin = strings.NewReader(Script(s.assertions))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return solver.Unknown, fmt.Errorf("z3: %w", ctxErr)
	}
	status, perr := ParseStatus(out)
	if perr == nil {
		return status, nil
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return solver.Unknown, fmt.Errorf("z3: exit %d: %s", exitErr.ExitCode(), firstLine(out, stderr.Bytes()))
		}
		return solver.Unknown, fmt.Errorf("%w: %w", solver.ErrUnavailable, err)
	}
	return solver.Unknown, perr
}

func (s *session) Reset() {
	s.assertions = nil
}

func (s *session) Close() error {
	s.assertions = nil
	return nil
}

// ParseStatus reads the answer line of a check-sat response.
func ParseStatus(out []byte) (solver.Status, error) {
	line := firstLine(out, nil)
	switch line {
	case "sat":
		return solver.Sat, nil
	case "unsat":
		return solver.Unsat, nil
	case "unknown", "timeout":
		return solver.Unknown, fmt.Errorf("z3: %s", line)
	}
	return solver.Unknown, fmt.Errorf("z3: unexpected output %q", line)
}

func firstLine(bufs ...[]byte) string {
	for _, b := range bufs {
		for _, l := range strings.Split(string(b), "\n") {
			if l = strings.TrimSpace(l); l != "" {
				return l
			}
		}
	}
	return ""
}
