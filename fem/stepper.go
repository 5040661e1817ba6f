// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"fmt"

	"github.com/blackvladimir/hermes/rk"
	"github.com/blackvladimir/hermes/wf"
	"github.com/cpmech/gosl/io"
)

// Problem defines the system of evolution equations
//
//      M・∂u/∂t + F(u, t) = 0
//
//  where M is the mass matrix scaled by Rho per field
type Problem struct {
	Neq int              // number of fields
	Rho []float64        // [neq] coefficient multiplying ∂u/∂t per field; nil means 1
	Jac []*wf.MatrixForm // forms of ∂F/∂u
	Res []*wf.VectorForm // forms of F
}

// Steady returns the weak form of F(u, t) = 0
func (o *Problem) Steady() (w *wf.WeakForm, err error) {
	w = wf.New(o.Neq)
	for _, f := range o.Jac {
		if err = w.AddMatrixForm(f); err != nil {
			return nil, err
		}
	}
	for _, f := range o.Res {
		if err = w.AddVectorForm(f); err != nil {
			return nil, err
		}
	}
	return
}

// rho returns the coefficient of field k
func (o *Problem) rho(k int) float64 {
	if o.Rho == nil {
		return 1
	}
	return o.Rho[k]
}

// Stepper advances the solution of a Problem in time with a diagonally implicit Runge-Kutta
// method. Each stage i solves, for the stage value Y_i,
//
//      M・(Y_i - u_n)/Δt + Σ_{j≤i} a_ij・F(Y_j, t_n + c_j・Δt) = 0
//
//  and the new solution is u_{n+1} = u_n + Σ_j d_j・(Y_j - u_n) with dᵀ = bᵀA⁻¹
type Stepper struct {
	Spc      *Space    // space
	Prob     *Problem  // problem
	Tab      *rk.Table // Butcher table
	Ls       LinSolver // linear solver
	Tol      float64   // tolerance of Newton iterations
	MaxIt    int       // max number of Newton corrections per stage
	MaxRes   float64   // divergence threshold of the residual norm; 0 = none
	CteTg    bool      // constant tangent within each stage
	ShowR    bool      // print residuals
	Cache    bool      // reuse F of converged stages instead of re-integrating them
	Nworkers int       // number of goroutines for assembly
	Verbose  bool      // show messages

	T   float64   // current time
	Y   []float64 // [ndof] current solution
	Its []int     // [nstages] Newton corrections of the last step

	d []float64 // [nstages] combination weights
}

// NewStepper returns a new stepper
func NewStepper(spc *Space, prob *Problem, tab *rk.Table, ls LinSolver) (o *Stepper, err error) {
	if prob.Neq != len(spc.Keys) {
		return nil, configErr("problem has %d equations but space has %d fields", prob.Neq, len(spc.Keys))
	}
	if prob.Rho != nil && len(prob.Rho) != prob.Neq {
		return nil, configErr("problem has %d coefficients of ∂u/∂t; %d expected", len(prob.Rho), prob.Neq)
	}
	if err = tab.Check(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	o = &Stepper{Spc: spc, Prob: prob, Tab: tab, Ls: ls, Tol: 1e-6, MaxIt: 20, Nworkers: 1}
	o.d, err = tab.Weights()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	o.Y = make([]float64, spc.Ndof)
	return
}

// SetState sets the current time and solution
//  y -- [ndof] full vector; prescribed values are replaced by their values at time t
func (o *Stepper) SetState(t float64, y []float64) (err error) {
	if len(y) != o.Spc.Ndof {
		return configErr("state has length %d; %d expected", len(y), o.Spc.Ndof)
	}
	o.T = t
	copy(o.Y, y)
	o.Spc.EssenBcs.Values(o.Y, t)
	return
}

// Step advances the solution by dt.
//  On error, T and Y are left unchanged.
func (o *Stepper) Step(dt float64) (err error) {
	if dt <= 0 {
		return configErr("time step must be positive; dt = %g", dt)
	}
	tab := o.Tab
	s := tab.Nstages()
	spc := o.Spc
	un := o.Y
	stages := make([][]float64, s) // stage values; full vectors
	var fs [][]float64             // F(Y_j, t_j) on free equations; only with Cache
	if o.Cache {
		fs = make([][]float64, s)
	}
	x := make([]float64, spc.Nfree)
	spc.Gather(x, un)
	o.Its = make([]int, s)

	// stages
	for i := 0; i < s; i++ {
		ti := o.T + tab.C[i]*dt
		asm, err := o.stageAssembler(i, dt, un, stages, fs)
		if err != nil {
			return err
		}
		nwt := &Newton{Asm: asm, Ls: o.Ls, Tol: o.Tol, MaxIt: o.MaxIt, MaxRes: o.MaxRes, CteTg: o.CteTg, ShowR: o.ShowR}
		res, err := nwt.Solve(x, ti)
		if res != nil {
			o.Its[i] = res.It
		}
		if err != nil {
			return fmt.Errorf("stage %d of step from t = %g with dt = %g:\n%w", i, o.T, dt, err)
		}
		stages[i] = make([]float64, spc.Ndof)
		spc.Scatter(stages[i], x, ti)
		if o.Cache {
			fs[i], err = o.spatialResidual(x, ti)
			if err != nil {
				return err
			}
		}
	}

	// combine
	ynew := make([]float64, spc.Ndof)
	for _, eq := range spc.Free2eq {
		ynew[eq] = un[eq]
		for j := 0; j < s; j++ {
			if o.d[j] != 0 {
				ynew[eq] += o.d[j] * (stages[j][eq] - un[eq])
			}
		}
	}
	spc.EssenBcs.Values(ynew, o.T+dt)
	o.Y = ynew
	o.T += dt
	if o.Verbose {
		io.Pf("t = %g: Newton iterations = %v\n", o.T, o.Its)
	}
	return
}

// stageAssembler returns the assembler of stage i
func (o *Stepper) stageAssembler(i int, dt float64, un []float64, stages, fs [][]float64) (asm *Assembler, err error) {
	tab := o.Tab
	prob := o.Prob
	ti := o.T + tab.C[i]*dt
	aii := tab.A[i][i]
	w := wf.New(prob.Neq)

	// M・(Y_i - u_n)/Δt
	prev := make([]float64, len(un))
	copy(prev, un)
	for k := 0; k < prob.Neq; k++ {
		c := prob.rho(k) / dt
		mm := wf.NewMatrixForm(k, k, wf.Anywhere, wf.Sym, massMat[wf.Real](c), massMat[wf.Ord](c))
		mm.Name = "mass"
		if err = w.AddMatrixForm(mm); err != nil {
			return
		}
		mv := wf.NewVectorForm(k, wf.Anywhere, massVec[wf.Real](k, c), massVec[wf.Ord](k, c))
		mv.Name = "mass"
		mv.Ext = []*wf.Ext{{Name: "previous", Field: k, Y: prev}}
		if err = w.AddVectorForm(mv); err != nil {
			return
		}
	}

	// a_ii・F(Y_i, t_i)
	if aii != 0 {
		for _, f := range prob.Jac {
			if err = w.AddMatrixForm(f.Scaled(aii, ti)); err != nil {
				return
			}
		}
		for _, f := range prob.Res {
			if err = w.AddVectorForm(f.Scaled(aii, ti)); err != nil {
				return
			}
		}
	}

	// Σ_{j<i} a_ij・F(Y_j, t_j)
	var rconst []float64
	for j := 0; j < i; j++ {
		aij := tab.A[i][j]
		if aij == 0 {
			continue
		}
		tj := o.T + tab.C[j]*dt
		if o.Cache {
			if rconst == nil {
				rconst = make([]float64, o.Spc.Nfree)
			}
			for k, v := range fs[j] {
				rconst[k] += aij * v
			}
			continue
		}
		for _, f := range prob.Res {
			if err = w.AddVectorForm(f.Lagged(aij, tj, prob.Neq, stages[j])); err != nil {
				return
			}
		}
	}

	// assembler
	asm, err = NewAssembler(o.Spc, w)
	if err != nil {
		return
	}
	asm.Nworkers = o.Nworkers
	asm.Rconst = rconst
	return
}

// spatialResidual returns F(x, t) on free equations
func (o *Stepper) spatialResidual(x []float64, t float64) (r []float64, err error) {
	w := wf.New(o.Prob.Neq)
	for _, f := range o.Prob.Res {
		if err = w.AddVectorForm(f); err != nil {
			return
		}
	}
	asm, err := NewAssembler(o.Spc, w)
	if err != nil {
		return
	}
	asm.Nworkers = o.Nworkers
	r = make([]float64, o.Spc.Nfree)
	rep, err := asm.Assemble(nil, r, x, t)
	if err != nil {
		return
	}
	if !rep.Reliable() {
		return nil, &NewtonError{Status: Diverged, Norm: 0, Cause: fmt.Errorf("residual of converged stage:\n%v", rep)}
	}
	for k := range r {
		r[k] = -r[k]
	}
	return
}

// massMat returns the integrand of c・∫ u・v
func massMat[T wf.Num[T]](c float64) wf.MatrixFn[T] {
	return func(a *wf.MatArgs[T]) T {
		return wf.IntUV(a.N, a.Wt, a.U, a.V).Scale(c)
	}
}

// massVec returns the integrand of c・∫ (u_k - u_prev)・v
func massVec[T wf.Num[T]](k int, c float64) wf.VectorFn[T] {
	return func(a *wf.VecArgs[T]) (res T) {
		u, prev := a.Uext[k], a.Ext[0]
		for i := 0; i < a.N; i++ {
			res = res.Add(u.Val[i].Sub(prev.Val[i]).Mul(a.V.Val[i]).Scale(a.Wt[i] * c))
		}
		return
	}
}
