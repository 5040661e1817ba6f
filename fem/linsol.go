// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"

	"github.com/blackvladimir/hermes/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// LinSolver solves the linear systems of Newton iterations
type LinSolver interface {
	// Solve solves kb・x = b; reuse tells that kb has not changed since the previous call and
	// its factorisation can be reused
	Solve(x []float64, kb *la.Triplet, b []float64, reuse bool) error

	// Free releases resources
	Free()
}

// lsallocators holds all available linear solvers
var lsallocators = make(map[string]func(symmetric bool) LinSolver)

// NewLinSolver returns a new linear solver
//  name -- "dense" or "umfpack"
func NewLinSolver(name string, symmetric bool) (LinSolver, error) {
	allocator, ok := lsallocators[name]
	if !ok {
		return nil, chk.Err("cannot find linear solver named %q. options are %v", name, LinSolvers())
	}
	return allocator(symmetric), nil
}

// newLinSolver allocates the linear solver described in the simulation file
func newLinSolver(dat *inp.LinSolData) (LinSolver, error) {
	ls, err := NewLinSolver(dat.Name, dat.Symmetric)
	if err != nil {
		return nil, configErr("%v", err)
	}
	if u, ok := ls.(*UmfpackSolver); ok {
		u.Verbose = dat.Verbose
	}
	return ls, nil
}

// LinSolvers returns the names of available linear solvers
func LinSolvers() (names []string) {
	for name := range lsallocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// DenseSolver solves linear systems with the LU decomposition of a dense copy of the matrix
type DenseSolver struct {
	lu mat.LU     // factorisation
	a  *mat.Dense // dense copy of kb
	n  int        // dimension of factorised matrix
	ok bool       // factorisation is available
}

// Solve implements LinSolver
func (o *DenseSolver) Solve(x []float64, kb *la.Triplet, b []float64, reuse bool) (err error) {
	n := len(b)
	if !reuse || !o.ok || n != o.n {
		d := kb.ToDense()
		o.a = mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				o.a.Set(i, j, d.Get(i, j))
			}
		}
		o.lu.Factorize(o.a)
		o.n = n
		cond := o.lu.Cond()
		o.ok = !math.IsInf(cond, 0) && !math.IsNaN(cond) && cond < mat.ConditionTolerance
		if !o.ok {
			return chk.Err("dense: matrix is singular. cond = %g", cond)
		}
	}
	xv := mat.NewVecDense(n, x)
	err = o.lu.SolveVecTo(xv, false, mat.NewVecDense(n, b))
	if err != nil {
		return chk.Err("dense: %v", err)
	}
	return
}

// Free implements LinSolver
func (o *DenseSolver) Free() {
	o.a, o.ok = nil, false
}

// UmfpackSolver solves linear systems with UMFPACK through gosl
type UmfpackSolver struct {
	Symmetric bool            // matrix is symmetric
	Verbose   bool            // show UMFPACK messages
	ls        la.SparseSolver // sparse solver
	kb        *la.Triplet     // matrix given to Init
}

// Solve implements LinSolver
func (o *UmfpackSolver) Solve(x []float64, kb *la.Triplet, b []float64, reuse bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("umfpack: %v", r)
			o.Free()
		}
	}()
	if o.ls == nil || o.kb != kb {
		o.Free()
		o.ls = la.NewSparseSolver("umfpack")
		o.ls.Init(kb, &la.SpArgs{Symmetric: o.Symmetric, Verbose: o.Verbose})
		o.kb = kb
		reuse = false
	}
	if !reuse {
		o.ls.Fact()
	}
	o.ls.Solve(x, b, false)
	return
}

// Free implements LinSolver
func (o *UmfpackSolver) Free() {
	if o.ls != nil {
		o.ls.Free()
	}
	o.ls, o.kb = nil, nil
}

// register linear solvers
func init() {
	lsallocators["dense"] = func(symmetric bool) LinSolver { return new(DenseSolver) }
	lsallocators["umfpack"] = func(symmetric bool) LinSolver { return &UmfpackSolver{Symmetric: symmetric} }
}
