// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"

	"github.com/blackvladimir/hermes/rk"
	"github.com/cpmech/gosl/io"
)

// SolverImplicit runs the time loop with a diagonally implicit Runge-Kutta stepper
type SolverImplicit struct {
	Stp     *Stepper // stepper holding the current state
	Sum     *Summary // summary; may be nil
	DvgCtrl bool     // halve the time step when a step fails
	NdvgMax int      // max number of consecutive failed steps
	DtMin   float64  // min time step after failures
}

// add solver to factory
func init() {
	allocators["imp"] = func(m *Main) (Solver, error) {
		dat := m.Sim.Solver
		tab, err := rk.New(dat.Method)
		if err != nil {
			return nil, configErr("%v", err)
		}
		ls, err := newLinSolver(&m.Sim.LinSol)
		if err != nil {
			return nil, err
		}
		stp, err := NewStepper(m.Spc, m.Prob, tab, ls)
		if err != nil {
			return nil, err
		}
		stp.Tol, stp.MaxIt, stp.MaxRes = dat.Tol, dat.NmaxIt, dat.MaxRes
		stp.CteTg, stp.ShowR, stp.Cache, stp.Nworkers = dat.CteTg, dat.ShowR, dat.Cache, dat.Nworkers
		stp.Verbose = m.ShowMsg
		if err = stp.SetState(0, m.Y0); err != nil {
			return nil, err
		}
		return &SolverImplicit{Stp: stp, Sum: m.Summary, DvgCtrl: dat.DvgCtrl, NdvgMax: dat.NdvgMax, DtMin: dat.DtMin}, nil
	}
}

// Run runs the time loop up to tf
func (o *SolverImplicit) Run(tf float64, dtFunc, dtoFunc TimeSpace, verbose bool) (err error) {

	// auxiliary
	md := 1.0    // time step multiplier if divergence control is on
	ndiverg := 0 // number of steps diverging

	// control
	stp := o.Stp
	t := stp.T
	tout := t + dtoFunc.F(t, nil)

	// first output
	if o.Sum != nil {
		o.Sum.Save(t, stp.Y)
	}

	// time loop
	var Δt float64
	var lasttimestep bool
	for t < tf && !lasttimestep {

		// check for continued divergence
		if ndiverg >= o.NdvgMax && ndiverg > 0 {
			return fmt.Errorf("continuous divergence after %d steps reached:\n%w", ndiverg, err)
		}

		// time increment
		Δt = dtFunc.F(t, nil) * md
		if t+Δt > tf || tf-(t+Δt) < 1e-8*Δt {
			Δt = tf - t
			lasttimestep = true
		}
		if Δt < o.DtMin {
			if md < 1 {
				return fmt.Errorf("Δt increment is too small: %g < %g:\n%w", Δt, o.DtMin, err)
			}
		}

		// message
		if verbose {
			if !stp.ShowR {
				io.Pf("%30.15f\r", t+Δt)
			}
		}

		// step; state is unchanged on failure
		err = stp.Step(Δt)
		if err != nil {
			retry := errors.Is(err, ErrDiverged) || errors.Is(err, ErrIterationLimit)
			if !o.DvgCtrl || !retry {
				return err
			}
			if verbose {
				io.Pfred(". . . iterations diverging (%2d) . . .\n", ndiverg+1)
			}
			md *= 0.5
			ndiverg++
			lasttimestep = false
			if o.Sum != nil {
				o.Sum.Ndiverg++
			}
			continue
		}
		ndiverg = 0
		md = 1.0
		if lasttimestep {
			stp.T = tf
		}
		t = stp.T
		if o.Sum != nil {
			o.Sum.Nsteps++
			o.Sum.Its = append(o.Sum.Its, stp.Its)
		}

		// perform output
		if t >= tout || lasttimestep {
			if o.Sum != nil {
				o.Sum.Save(t, stp.Y)
			}
			tout += dtoFunc.F(t, nil)
		}
	}
	if verbose {
		io.Pf("\n")
	}
	return nil
}
