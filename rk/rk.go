// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rk implements Butcher tables of diagonally implicit Runge-Kutta methods
package rk

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Table holds the coefficients of a Runge-Kutta method
//
//      c | A
//      --+---
//        | bᵀ
type Table struct {
	Name  string      // name of method
	A     [][]float64 // [nstages][nstages] coefficients; lower triangular for diagonally implicit methods
	B     []float64   // [nstages] weights
	C     []float64   // [nstages] nodes; c_i = Σ_j a_ij
	Order int         // order of accuracy
}

// tables holds all available tables
var tables = make(map[string]func() *Table)

// New returns a new table
//  name -- "BE", "MID", "CN22", "SDIRK22" or "SDIRK33"
func New(name string) (*Table, error) {
	allocator, ok := tables[name]
	if !ok {
		return nil, chk.Err("cannot find Butcher table named %q. options are %v", name, Names())
	}
	return allocator(), nil
}

// Names returns the names of available tables
func Names() (names []string) {
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Nstages returns the number of stages
func (o *Table) Nstages() int { return len(o.B) }

// Check checks dimensions and consistency of coefficients.
//  Only diagonally implicit tables (a_ij = 0 for j > i) are accepted
func (o *Table) Check() (err error) {
	s := len(o.B)
	if s == 0 {
		return chk.Err("table %q: no stages", o.Name)
	}
	if len(o.A) != s || len(o.C) != s {
		return chk.Err("table %q: A, b and c must have the same number of stages", o.Name)
	}
	var sumb float64
	for i := 0; i < s; i++ {
		if len(o.A[i]) != s {
			return chk.Err("table %q: A must be square", o.Name)
		}
		var sumA float64
		for j := 0; j < s; j++ {
			if j > i && o.A[i][j] != 0 {
				return chk.Err("table %q: A is not lower triangular; a[%d][%d] = %g", o.Name, i, j, o.A[i][j])
			}
			sumA += o.A[i][j]
		}
		if math.Abs(sumA-o.C[i]) > 1e-14 {
			return chk.Err("table %q: c[%d] = %g must be equal to the sum of row %d of A = %g", o.Name, i, o.C[i], i, sumA)
		}
		sumb += o.B[i]
	}
	if math.Abs(sumb-1) > 1e-14 {
		return chk.Err("table %q: the sum of b must be 1; sum = %g", o.Name, sumb)
	}
	return
}

// StifflyAccurate tells whether the last row of A equals bᵀ
func (o *Table) StifflyAccurate() bool {
	s := len(o.B)
	for j := 0; j < s; j++ {
		if math.Abs(o.A[s-1][j]-o.B[j]) > 1e-14 {
			return false
		}
	}
	return true
}

// Weights returns the coefficients d = bᵀA⁻¹ that combine the stage increments:
//
//      u_{n+1} = u_n + Σ_j d_j (Y_j - u_n)
//
//  If A is singular (some a_ii = 0), the method must be stiffly accurate; then d = e_s
func (o *Table) Weights() (d []float64, err error) {
	s := len(o.B)
	singular := false
	for i := 0; i < s; i++ {
		if o.A[i][i] == 0 {
			singular = true
		}
	}
	if singular {
		if !o.StifflyAccurate() {
			return nil, chk.Err("table %q: A is singular and the method is not stiffly accurate", o.Name)
		}
		d = make([]float64, s)
		d[s-1] = 1
		return
	}
	a := mat.NewDense(s, s, nil)
	for i := 0; i < s; i++ {
		for j := 0; j < s; j++ {
			a.Set(i, j, o.A[i][j])
		}
	}
	var x mat.VecDense
	err = x.SolveVec(a.T(), mat.NewVecDense(s, append([]float64{}, o.B...)))
	if err != nil {
		return nil, chk.Err("table %q: cannot compute weights: %v", o.Name, err)
	}
	d = make([]float64, s)
	for i := 0; i < s; i++ {
		d[i] = x.AtVec(i)
	}
	return
}

// register tables
func init() {

	// backward Euler
	tables["BE"] = func() *Table {
		return &Table{Name: "BE", A: [][]float64{{1}}, B: []float64{1}, C: []float64{1}, Order: 1}
	}

	// implicit midpoint
	tables["MID"] = func() *Table {
		return &Table{Name: "MID", A: [][]float64{{0.5}}, B: []float64{1}, C: []float64{0.5}, Order: 2}
	}

	// Crank-Nicolson; explicit first stage
	tables["CN22"] = func() *Table {
		return &Table{
			Name:  "CN22",
			A:     [][]float64{{0, 0}, {0.5, 0.5}},
			B:     []float64{0.5, 0.5},
			C:     []float64{0, 1},
			Order: 2,
		}
	}

	// L-stable two-stage SDIRK
	tables["SDIRK22"] = func() *Table {
		γ := 1.0 - math.Sqrt2/2.0
		return &Table{
			Name:  "SDIRK22",
			A:     [][]float64{{γ, 0}, {1 - γ, γ}},
			B:     []float64{1 - γ, γ},
			C:     []float64{γ, 1},
			Order: 2,
		}
	}

	// Alexander's L-stable three-stage SDIRK
	tables["SDIRK33"] = func() *Table {
		γ := 0.4358665215084590
		b1 := -1.5*γ*γ + 4.0*γ - 0.25
		b2 := 1.5*γ*γ - 5.0*γ + 1.25
		return &Table{
			Name: "SDIRK33",
			A: [][]float64{
				{γ, 0, 0},
				{(1 - γ) / 2, γ, 0},
				{b1, b2, γ},
			},
			B:     []float64{b1, b2, γ},
			C:     []float64{γ, (1 + γ) / 2, 1},
			Order: 3,
		}
	}
}
