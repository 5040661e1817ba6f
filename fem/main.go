// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the finite element solver: assembly of weak forms, Newton iterations
// and diagonally implicit Runge-Kutta time stepping
package fem

import (
	"time"

	"github.com/blackvladimir/hermes/heat"
	"github.com/blackvladimir/hermes/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Main holds all data for a simulation using the finite element method
type Main struct {
	Sim     *inp.Simulation // simulation data
	Spc     *Space          // degrees of freedom
	Prob    *Problem        // heat conduction problem
	Y0      []float64       // [ndof] initial values
	Summary *Summary        // summary structure
	Solver  Solver          // finite element method solver; e.g. implicit or steady
	ShowMsg bool            // show messages
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath -- simulation (.sim) filename including full path
//   verbose     -- show messages
func NewMain(simfilepath string, verbose bool) (o *Main, err error) {

	// new Main object
	o = &Main{Summary: new(Summary), ShowMsg: verbose}

	// read input data
	o.Sim, err = inp.ReadSim(simfilepath)
	if err != nil {
		return nil, err
	}
	if o.ShowMsg {
		io.Pf("> Simulation (.sim) file read\n")
	}

	// space
	sim := o.Sim
	o.Spc, err = NewSpace(sim.Msh, sim.Data.Keys...)
	if err != nil {
		return nil, err
	}
	if o.Spc.KeyIndex("u") != 0 || len(sim.Data.Keys) != 1 {
		return nil, configErr("heat conduction requires the single field \"u\"; keys = %v", sim.Data.Keys)
	}

	// material
	mat := sim.Materials.Get(sim.Problem.Mat)
	if mat == nil {
		return nil, chk.Err("cannot find material %q", sim.Problem.Mat)
	}
	prms := &heat.Params{Lam: mat.Conduct, Flux: make(map[int]heat.TimeSpace), Conv: make(map[int]*heat.Convection)}
	if sim.Problem.Src != "" && sim.Problem.Src != "zero" {
		prms.Src, err = sim.Functions.Get(sim.Problem.Src)
		if err != nil {
			return nil, err
		}
	}

	// face boundary conditions
	for _, fbc := range sim.FaceBcs {
		if len(fbc.Keys) != len(fbc.Funcs) {
			return nil, chk.Err("face bc with tag %d: number of keys and functions must be equal", fbc.Tag)
		}
		for i, key := range fbc.Keys {
			fcn, err := sim.Functions.Get(fbc.Funcs[i])
			if err != nil {
				return nil, err
			}
			switch key {
			case "u":
				err = o.Spc.SetEssential(key, fbc.Tag, fcn)
				if err != nil {
					return nil, err
				}
			case "qn":
				prms.Flux[fbc.Tag] = fcn
			case "conv":
				prms.Conv[fbc.Tag] = &heat.Convection{Alpha: fbc.Alpha, Text: fcn}
			default:
				return nil, chk.Err("face bc with tag %d: key %q is invalid. options are \"u\", \"qn\" and \"conv\"", fbc.Tag, key)
			}
		}
	}

	// node boundary conditions
	for _, nbc := range sim.NodeBcs {
		if len(nbc.Keys) != len(nbc.Funcs) {
			return nil, chk.Err("node bc with tag %d: number of keys and functions must be equal", nbc.Tag)
		}
		for i, key := range nbc.Keys {
			fcn, err := sim.Functions.Get(nbc.Funcs[i])
			if err != nil {
				return nil, err
			}
			err = o.Spc.SetEssentialVert(key, nbc.Tag, fcn)
			if err != nil {
				return nil, err
			}
		}
	}
	o.Spc.Build()
	if sim.Data.ListBcs {
		io.Pf("%v", o.Spc.EssenBcs.List(sim.Control.Tf))
	}

	// problem
	o.Prob = &Problem{Neq: 1, Rho: []float64{sim.Problem.Rho}}
	o.Prob.Jac, o.Prob.Res, err = heat.Forms(prms)
	if err != nil {
		return nil, err
	}

	// initial values
	ini, err := sim.Functions.Get(sim.Problem.Ini)
	if err != nil {
		return nil, err
	}
	o.Y0 = make([]float64, o.Spc.Ndof)
	err = o.Spc.Interpolate(o.Y0, "u", ini, 0)
	if err != nil {
		return nil, err
	}
	o.Spc.EssenBcs.Values(o.Y0, 0)

	// allocate solver
	key := "imp"
	if sim.Data.Steady {
		key = "steady"
	}
	o.Solver, err = allocators[key](o)
	if err != nil {
		return nil, err
	}
	if o.ShowMsg {
		io.Pf("> %d equations (%d free)\n", o.Spc.Ndof, o.Spc.Nfree)
	}
	return
}

// Run runs FE simulation
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Running FE solver\n")
	}

	// time loop
	ctrl := o.Sim.Control
	return o.Solver.Run(ctrl.Tf, ctrl.DtFunc, ctrl.DtoFunc, o.ShowMsg)
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// onexit frees the linear solver and prints the final message with the cpu time
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {
	switch s := o.Solver.(type) {
	case *SolverImplicit:
		s.Stp.Ls.Free()
	case *SolverSteady:
		s.Nwt.Free()
	}
	if o.ShowMsg {
		if prevErr == nil {
			io.Pf("> Success\n")
			io.Pf("> CPU time = %v\n", time.Since(cputime))
		} else {
			io.Pfred("> Failed\n")
		}
	}
	return prevErr
}
