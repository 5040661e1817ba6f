// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package wf implements weak forms: integrands evaluated in several numeric domains and the
// registry that holds them
package wf

import "math"

// Num defines the arithmetic available to integrands. The same generic integrand is
// instantiated with Real (values), Ord (polynomial degree estimates) and Cplx (complex-step)
type Num[T any] interface {
	Add(b T) T
	Sub(b T) T
	Mul(b T) T
	Div(b T) T
	Neg() T
	Scale(c float64) T // multiplies by a constant
	Shift(c float64) T // adds a constant
	Pow(p float64) T

	// Apply applies a scalar function f with derivative df; deg is the polynomial degree that
	// approximates f (used by Ord only). df may be nil if the derivative is not available
	Apply(f, df func(float64) float64, deg int) T

	// Const returns a constant in the same domain as the receiver
	Const(c float64) T
}

// Real is the numeric domain of actual values //////////////////////////////////////////////

// Real holds a value
type Real float64

func (a Real) Add(b Real) Real      { return a + b }
func (a Real) Sub(b Real) Real      { return a - b }
func (a Real) Mul(b Real) Real      { return a * b }
func (a Real) Div(b Real) Real      { return a / b }
func (a Real) Neg() Real            { return -a }
func (a Real) Scale(c float64) Real { return a * Real(c) }
func (a Real) Shift(c float64) Real { return a + Real(c) }
func (a Real) Pow(p float64) Real   { return Real(math.Pow(float64(a), p)) }
func (a Real) Const(c float64) Real { return Real(c) }
func (a Real) Apply(f, df func(float64) float64, deg int) Real {
	return Real(f(float64(a)))
}

// Cplx is the complex-step domain ///////////////////////////////////////////////////////////

// Cplx holds a complex value. With a small imaginary perturbation h, Im(F(u + ih))/h
// approximates the directional derivative of F
type Cplx complex128

func (a Cplx) Add(b Cplx) Cplx      { return a + b }
func (a Cplx) Sub(b Cplx) Cplx      { return a - b }
func (a Cplx) Mul(b Cplx) Cplx      { return a * b }
func (a Cplx) Div(b Cplx) Cplx      { return a / b }
func (a Cplx) Neg() Cplx            { return -a }
func (a Cplx) Scale(c float64) Cplx { return a * Cplx(complex(c, 0)) }
func (a Cplx) Shift(c float64) Cplx { return a + Cplx(complex(c, 0)) }
func (a Cplx) Const(c float64) Cplx { return Cplx(complex(c, 0)) }

// Pow differentiates the real part; negative bases are allowed
func (a Cplx) Pow(p float64) Cplx {
	if imag(a) == 0 {
		return Cplx(complex(math.Pow(real(a), p), 0))
	}
	return a.Apply(func(x float64) float64 { return math.Pow(x, p) },
		func(x float64) float64 { return p * math.Pow(x, p-1) }, 0)
}

// Apply computes f(re) + i·im·df(re), exact to first order in the imaginary part
func (a Cplx) Apply(f, df func(float64) float64, deg int) Cplx {
	re, im := real(a), imag(a)
	if df == nil {
		return Cplx(complex(f(re), 0))
	}
	return Cplx(complex(f(re), im*df(re)))
}

// Ord is the domain of polynomial degrees ///////////////////////////////////////////////////

// Ord holds the polynomial degree of a quantity
type Ord int

func (a Ord) Add(b Ord) Ord       { return maxOrd(a, b) }
func (a Ord) Sub(b Ord) Ord       { return maxOrd(a, b) }
func (a Ord) Mul(b Ord) Ord       { return a + b }
func (a Ord) Div(b Ord) Ord       { return a + b }
func (a Ord) Neg() Ord            { return a }
func (a Ord) Scale(c float64) Ord { return a }
func (a Ord) Shift(c float64) Ord { return a }
func (a Ord) Const(c float64) Ord { return 0 }
func (a Ord) Pow(p float64) Ord {
	if p == 0 {
		return 0
	}
	return Ord(math.Ceil(math.Abs(p))) * a
}
func (a Ord) Apply(f, df func(float64) float64, deg int) Ord {
	return Ord(deg) * a
}

func maxOrd(a, b Ord) Ord {
	if a > b {
		return a
	}
	return b
}
