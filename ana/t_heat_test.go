// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/stretchr/testify/require"
)

func verbose() {
	chk.Verbose = true
}

func Test_heat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("heat01. decaying sine")

	var sol DecayingSine
	require.NoError(tst, sol.Init(dbf.Params{&dbf.P{N: "k", V: 0.5}, &dbf.P{N: "rho", V: 2}}))
	chk.Float64(tst, "rate", 1e-15, sol.Rate(), math.Pi*math.Pi/2)

	// ∂u/∂t = k/ρ・∇²u with ∂²u/∂x² = ∂²u/∂y² = -π²u
	t, x := 0.1, []float64{0.3, 0.6}
	u := sol.F(t, x)
	chk.DerivScaSca(tst, "∂u/∂t", 1e-8, 0.25*(-2*math.Pi*math.Pi*u), t, 1e-3, chk.Verbose, func(τ float64) float64 {
		return sol.F(τ, x)
	})
	dudx := func(s float64) float64 {
		return sol.A * math.Exp(-sol.Rate()*t) * math.Pi * math.Cos(math.Pi*s) * math.Sin(math.Pi*x[1])
	}
	chk.DerivScaSca(tst, "∂u/∂x", 1e-8, dudx(x[0]), x[0], 1e-3, chk.Verbose, func(s float64) float64 {
		return sol.F(t, []float64{s, x[1]})
	})
	chk.DerivScaSca(tst, "∂²u/∂x²", 1e-8, -math.Pi*math.Pi*u, x[0], 1e-3, chk.Verbose, dudx)
	chk.Float64(tst, "u(boundary)", 1e-15, sol.F(t, []float64{1, 0.5}), 0)

	require.Error(tst, sol.Init(dbf.Params{&dbf.P{N: "rho", V: 0}}))
	require.Error(tst, sol.Init(dbf.Params{&dbf.P{N: "wrong", V: 0}}))
}

func Test_heat02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("heat02. steady sine")

	sol := SteadySine{A: 2, K: 3}
	x := []float64{0.2, 0.7}

	// -k∇²u = f with ∂²u/∂x² = ∂²u/∂y²
	dudx := func(s float64) float64 {
		return sol.A * math.Pi * math.Cos(math.Pi*s) * math.Sin(math.Pi*x[1])
	}
	dudy := func(s float64) float64 {
		return sol.A * math.Pi * math.Sin(math.Pi*x[0]) * math.Cos(math.Pi*s)
	}
	uxx := -sol.Src(0, x) / (2 * sol.K)
	chk.DerivScaSca(tst, "∂u/∂x", 1e-8, dudx(x[0]), x[0], 1e-3, chk.Verbose, func(s float64) float64 {
		return sol.F(0, []float64{s, x[1]})
	})
	chk.DerivScaSca(tst, "∂u/∂y", 1e-8, dudy(x[1]), x[1], 1e-3, chk.Verbose, func(s float64) float64 {
		return sol.F(0, []float64{x[0], s})
	})
	chk.DerivScaSca(tst, "∂²u/∂x²", 1e-7, uxx, x[0], 1e-3, chk.Verbose, dudx)
	chk.DerivScaSca(tst, "∂²u/∂y²", 1e-7, uxx, x[1], 1e-3, chk.Verbose, dudy)
}

func Test_heat03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("heat03. Kirchhoff transformation")

	var sol Kirchhoff
	require.NoError(tst, sol.Init(dbf.Params{&dbf.P{N: "c", V: 2}, &dbf.P{N: "L", V: 2}, &dbf.P{N: "uL", V: 1.5}}))
	chk.Float64(tst, "u(0)", 1e-15, sol.F(0, []float64{0, 0}), 0)
	chk.Float64(tst, "u(L)", 1e-14, sol.F(0, []float64{2, 0}), 1.5)

	// flux λ(u)・∂u/∂x = d G(u(x))/dx is constant
	q := (sol.G(sol.UL) - sol.G(sol.U0)) / sol.L
	for _, x := range []float64{0.1, 0.5, 1.0, 1.7} {
		chk.DerivScaSca(tst, "flux", 1e-8, q, x, 1e-3, chk.Verbose, func(s float64) float64 {
			return sol.G(sol.F(0, []float64{s, 0}))
		})
	}
}
