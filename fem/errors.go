// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"

	"github.com/cpmech/gosl/io"
)

// error classes
var (
	ErrConfig         = errors.New("invalid configuration")            // mismatched dimensions; never retried
	ErrIterationLimit = errors.New("max number of iterations reached") // Newton did not converge in time
	ErrDiverged       = errors.New("iterations diverged")              // non-finite values or failed linear solve
)

// configErr returns a configuration error
func configErr(msg string, prm ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfig, io.Sf(msg, prm...))
}

// NewtonError holds the state of failed Newton iterations
type NewtonError struct {
	Status Status  // final state: Diverged or IterationLimit
	It     int     // number of corrections performed
	Norm   float64 // last residual norm
	Cause  error   // e.g. linear solver failure; may be nil
}

// Error returns the error message
func (o *NewtonError) Error() string {
	msg := io.Sf("Newton: %v after %d iterations (|R| = %g)", o.sentinel(), o.It, o.Norm)
	if o.Cause != nil {
		msg += io.Sf(":\n%v", o.Cause)
	}
	return msg
}

// Unwrap returns the error class and the cause
func (o *NewtonError) Unwrap() []error {
	if o.Cause == nil {
		return []error{o.sentinel()}
	}
	return []error{o.sentinel(), o.Cause}
}

func (o *NewtonError) sentinel() error {
	if o.Status == IterationLimit {
		return ErrIterationLimit
	}
	return ErrDiverged
}

// Warning holds a non-fatal message raised during assembly
type Warning struct {
	Cell int    // cell id
	Form string // description of form
	Msg  string // message
}

// Report holds the outcome of one assembly
type Report struct {
	Warnings []Warning
}

// Reliable tells whether the assembled system can be used for convergence checks
func (o *Report) Reliable() bool {
	return len(o.Warnings) == 0
}

// String returns a summary of warnings
func (o *Report) String() (l string) {
	for _, w := range o.Warnings {
		l += io.Sf("cell %d: %s: %s\n", w.Cell, w.Form, w.Msg)
	}
	return
}
