// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// DecayingSine computes the solution of transient linear heat conduction in the unit square
// with zero temperature on the boundary
//
//      ρ・∂u/∂t = k・∇²u
//      u(t,x,y) = A・exp(-2π²k/ρ・t)・sin(πx)・sin(πy)
type DecayingSine struct {
	A   float64 // amplitude
	K   float64 // conductivity
	Rho float64 // heat capacity
}

// Init initialises this structure
func (o *DecayingSine) Init(prms dbf.Params) (err error) {
	o.A, o.K, o.Rho = 1, 1, 1
	for _, p := range prms {
		switch p.N {
		case "a":
			o.A = p.V
		case "k":
			o.K = p.V
		case "rho":
			o.Rho = p.V
		default:
			return chk.Err("DecayingSine: parameter named %q is incorrect", p.N)
		}
	}
	if o.Rho <= 0 {
		return chk.Err("DecayingSine: heat capacity must be positive; rho = %g", o.Rho)
	}
	return
}

// Rate returns the decay rate 2π²k/ρ
func (o DecayingSine) Rate() float64 {
	return 2 * math.Pi * math.Pi * o.K / o.Rho
}

// F returns u(t,x)
func (o DecayingSine) F(t float64, x []float64) float64 {
	return o.A * math.Exp(-o.Rate()*t) * math.Sin(math.Pi*x[0]) * math.Sin(math.Pi*x[1])
}

// SteadySine computes the solution of the Poisson equation in the unit square with zero
// temperature on the boundary
//
//      -k・∇²u = f
//      u(x,y) = A・sin(πx)・sin(πy)   with   f = 2π²k・u
type SteadySine struct {
	A float64 // amplitude
	K float64 // conductivity
}

// F returns u(x)
func (o SteadySine) F(t float64, x []float64) float64 {
	return o.A * math.Sin(math.Pi*x[0]) * math.Sin(math.Pi*x[1])
}

// Src returns the source term f(x)
func (o SteadySine) Src(t float64, x []float64) float64 {
	return 2 * math.Pi * math.Pi * o.K * o.F(t, x)
}

// Kirchhoff computes the solution of steady nonlinear heat conduction in a bar (or a
// rectangle with insulated top and bottom) with prescribed temperatures at both ends
//
//      ∂/∂x (λ(u)・∂u/∂x) = 0,   λ(u) = 1 + C・u²
//      u(0) = U0,  u(L) = UL
//
//  The Kirchhoff transformation G(u) = u + C・u³/3 is linear in x
type Kirchhoff struct {
	C  float64 // coefficient of conductivity
	L  float64 // length
	U0 float64 // temperature at x = 0
	UL float64 // temperature at x = L
}

// Init initialises this structure
func (o *Kirchhoff) Init(prms dbf.Params) (err error) {
	o.C, o.L, o.U0, o.UL = 1, 1, 0, 1
	for _, p := range prms {
		switch p.N {
		case "c":
			o.C = p.V
		case "L":
			o.L = p.V
		case "u0":
			o.U0 = p.V
		case "uL":
			o.UL = p.V
		default:
			return chk.Err("Kirchhoff: parameter named %q is incorrect", p.N)
		}
	}
	if o.C < 0 || o.L <= 0 {
		return chk.Err("Kirchhoff: c must be non-negative and L positive; c = %g, L = %g", o.C, o.L)
	}
	return
}

// G returns the Kirchhoff transformation of u
func (o Kirchhoff) G(u float64) float64 {
	return u + o.C*u*u*u/3.0
}

// F returns u(x)
func (o Kirchhoff) F(t float64, x []float64) float64 {
	g0, gL := o.G(o.U0), o.G(o.UL)
	g := g0 + (gL-g0)*x[0]/o.L
	u := o.U0 + (o.UL-o.U0)*x[0]/o.L
	for it := 0; it < 50; it++ {
		δu := (o.G(u) - g) / (1 + o.C*u*u)
		u -= δu
		if math.Abs(δu) < 1e-15*(1+math.Abs(u)) {
			break
		}
	}
	return u
}
