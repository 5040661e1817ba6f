// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/blackvladimir/hermes/wf"

// SolverSteady solves F(u) = 0 with Newton's method
type SolverSteady struct {
	Spc *Space        // space
	Nwt *Newton       // nonlinear solver
	Y   []float64     // [ndof] solution; holds the initial guess before Solve
	Res *NewtonResult // result of last solution
	Sum *Summary      // summary; may be nil
}

// add solver to factory
func init() {
	allocators["steady"] = func(m *Main) (Solver, error) {
		dat := m.Sim.Solver
		w, err := m.Prob.Steady()
		if err != nil {
			return nil, configErr("%v", err)
		}
		ls, err := newLinSolver(&m.Sim.LinSol)
		if err != nil {
			return nil, err
		}
		o, err := NewSolverSteady(m.Spc, w, ls)
		if err != nil {
			return nil, err
		}
		o.Nwt.Tol, o.Nwt.MaxIt, o.Nwt.MaxRes = dat.Tol, dat.NmaxIt, dat.MaxRes
		o.Nwt.CteTg, o.Nwt.ShowR = dat.CteTg, dat.ShowR
		o.Nwt.Asm.Nworkers = dat.Nworkers
		copy(o.Y, m.Y0)
		o.Sum = m.Summary
		return o, nil
	}
}

// NewSolverSteady returns a new steady solver
func NewSolverSteady(spc *Space, w *wf.WeakForm, ls LinSolver) (o *SolverSteady, err error) {
	asm, err := NewAssembler(spc, w)
	if err != nil {
		return
	}
	o = &SolverSteady{Spc: spc, Nwt: NewNewton(asm, ls, 1e-6, 20)}
	o.Y = make([]float64, spc.Ndof)
	return
}

// Solve solves F(u, t) = 0 starting from Y. Y is updated on success only
func (o *SolverSteady) Solve(t float64) (err error) {
	x := make([]float64, o.Spc.Nfree)
	o.Spc.Gather(x, o.Y)
	o.Res, err = o.Nwt.Solve(x, t)
	if err != nil {
		return
	}
	o.Spc.Scatter(o.Y, x, t)
	return
}

// Run implements Solver; the problem is solved once at tf
func (o *SolverSteady) Run(tf float64, dtFunc, dtoFunc TimeSpace, verbose bool) (err error) {
	err = o.Solve(tf)
	if err != nil {
		return
	}
	if o.Sum != nil {
		o.Sum.Save(tf, o.Y)
		o.Sum.Nsteps++
		o.Sum.Its = append(o.Sum.Its, []int{o.Res.It})
	}
	return
}
