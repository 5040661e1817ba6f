// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/floats"
)

// Status defines the state of Newton iterations
type Status int

const (
	Assembling     Status = iota // computing Jacobian and residual
	Solving                      // solving the linear system
	Converged                    // |R| < Tol
	Diverged                     // non-finite values, |R| > MaxRes or linear solver failure
	IterationLimit               // MaxIt corrections did not reduce |R| below Tol
)

// String returns the name of the state
func (s Status) String() string {
	switch s {
	case Assembling:
		return "assembling"
	case Solving:
		return "solving"
	case Converged:
		return "converged"
	case Diverged:
		return "diverged"
	case IterationLimit:
		return "iteration limit"
	}
	return "unknown"
}

// Newton solves R(x) = 0 with Newton's method
//  Convergence: after each assembly, |R|₂ < Tol (with no assembly warnings).
//  At most MaxIt corrections are applied; i.e. MaxIt = 0 only checks the initial guess.
type Newton struct {
	Asm    *Assembler // assembler
	Ls     LinSolver  // linear solver
	Tol    float64    // tolerance on the Euclidean norm of the residual
	MaxIt  int        // max number of corrections
	MaxRes float64    // divergence threshold for the residual norm; 0 = none
	CteTg  bool       // constant tangent: assemble and factorise the Jacobian once
	ShowR  bool       // print residuals
	Status Status     // current state

	kb *la.Triplet // Jacobian
	fb []float64   // minus residual
	dx []float64   // correction
	x  []float64   // iterate
}

// NewtonResult holds information about one solution
type NewtonResult struct {
	It       int       // number of corrections performed
	Norm     float64   // final residual norm
	Degraded bool      // some assembly produced warnings
	Resids   []float64 // residual norm after each assembly
	Warnings []Warning // warnings of the last assembly
}

// NewNewton returns a new Newton solver
func NewNewton(asm *Assembler, ls LinSolver, tol float64, maxit int) *Newton {
	return &Newton{Asm: asm, Ls: ls, Tol: tol, MaxIt: maxit}
}

// Solve solves R(x) = 0 at time t starting from x
//  x -- [nfree] initial guess; replaced by the solution on success and left unchanged otherwise
func (o *Newton) Solve(x []float64, t float64) (res *NewtonResult, err error) {

	// allocate
	if o.kb == nil || len(o.fb) != len(x) {
		o.kb, o.fb = o.Asm.Alloc()
		o.dx = make([]float64, len(x))
		o.x = make([]float64, len(x))
	}
	copy(o.x, x)

	// message
	if o.ShowR {
		io.Pf("\n%13s%4s%23s%23s\n", "t", "it", "|R|", "|δx|")
	}

	// iterations
	res = new(NewtonResult)
	for it := 0; ; it++ {

		// assemble
		o.Status = Assembling
		asmK := it == 0 || !o.CteTg
		var kb *la.Triplet
		if asmK {
			kb = o.kb
		}
		rep, err := o.Asm.Assemble(kb, o.fb, o.x, t)
		if err != nil {
			return res, err
		}
		var norm float64
		if len(o.fb) > 0 {
			norm = floats.Norm(o.fb, 2)
		}
		res.It, res.Norm = it, norm
		res.Resids = append(res.Resids, norm)
		res.Warnings = rep.Warnings
		if !rep.Reliable() {
			res.Degraded = true
			if o.ShowR {
				io.Pfyel("%v", rep)
			}
		}

		// check convergence
		if rep.Reliable() && norm < o.Tol {
			o.Status = Converged
			copy(x, o.x)
			return res, nil
		}
		if math.IsNaN(norm) || math.IsInf(norm, 0) || (o.MaxRes > 0 && norm > o.MaxRes) {
			o.Status = Diverged
			return res, &NewtonError{Status: Diverged, It: it, Norm: norm}
		}
		if it >= o.MaxIt {
			o.Status = IterationLimit
			return res, &NewtonError{Status: IterationLimit, It: it, Norm: norm}
		}

		// solve
		o.Status = Solving
		err = o.Ls.Solve(o.dx, o.kb, o.fb, !asmK)
		if err != nil {
			o.Status = Diverged
			return res, &NewtonError{Status: Diverged, It: it, Norm: norm, Cause: err}
		}
		dxnorm := floats.Norm(o.dx, 2)
		if math.IsNaN(dxnorm) || math.IsInf(dxnorm, 0) {
			o.Status = Diverged
			return res, &NewtonError{Status: Diverged, It: it, Norm: norm}
		}
		if o.ShowR {
			io.Pf("%13.6e%4d%23.15e%23.15e\n", t, it, norm, dxnorm)
		}

		// update
		floats.Add(o.x, o.dx)
	}
}

// Free releases the linear solver
func (o *Newton) Free() {
	if o.Ls != nil {
		o.Ls.Free()
	}
}
