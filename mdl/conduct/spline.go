// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"gonum.org/v1/gonum/interp"
)

// Spline implements λ given by a natural cubic spline through tabulated points. Beyond the
// first and last points, λ is extended linearly with the slope of the spline at the ends
type Spline struct {
	Xs, Ys []float64 // tabulated points
	Scale  float64   // multiplier of tabulated values

	fit    interp.NaturalCubic
	xa, xb float64 // ends
	ya, yb float64 // values at ends
	da, db float64 // derivatives at ends
}

// add model to factory
func init() {
	allocators["spline"] = func() Model { return new(Spline) }
}

// SetPoints sets the tabulated points
func (o *Spline) SetPoints(xs, ys []float64) (err error) {
	if len(xs) != len(ys) {
		return chk.Err("spline: number of x (%d) and y (%d) values must be equal", len(xs), len(ys))
	}
	if len(xs) < 3 {
		return chk.Err("spline: at least 3 points are required; %d given", len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return chk.Err("spline: x values must be strictly increasing; x[%d]=%g <= x[%d]=%g", i, xs[i], i-1, xs[i-1])
		}
	}
	o.Xs = append([]float64{}, xs...)
	o.Ys = append([]float64{}, ys...)
	return
}

// Init initialises this structure
func (o *Spline) Init(prms dbf.Params) (err error) {
	o.Scale = 1
	for _, p := range prms {
		switch p.N {
		case "scale":
			o.Scale = p.V
		default:
			return chk.Err("spline: parameter named %q is incorrect\n", p.N)
		}
	}
	if len(o.Xs) == 0 {
		return chk.Err("spline: points must be set before initialisation")
	}
	ys := make([]float64, len(o.Ys))
	for i, y := range o.Ys {
		ys[i] = o.Scale * y
	}
	err = o.fit.Fit(o.Xs, ys)
	if err != nil {
		return chk.Err("spline: fitting failed: %v", err)
	}
	n := len(o.Xs) - 1
	o.xa, o.xb = o.Xs[0], o.Xs[n]
	o.ya, o.yb = ys[0], ys[n]
	o.da, o.db = o.fit.PredictDerivative(o.xa), o.fit.PredictDerivative(o.xb)
	return
}

// GetPrms gets (an example) of parameters
func (o Spline) GetPrms(example bool) dbf.Params {
	return dbf.Params{&dbf.P{N: "scale", V: 1}}
}

// K returns λ
func (o *Spline) K(u float64) float64 {
	switch {
	case u < o.xa:
		return o.ya + o.da*(u-o.xa)
	case u > o.xb:
		return o.yb + o.db*(u-o.xb)
	}
	return o.fit.Predict(u)
}

// DkDu returns ∂λ/∂u
func (o *Spline) DkDu(u float64) float64 {
	switch {
	case u < o.xa:
		return o.da
	case u > o.xb:
		return o.db
	}
	return o.fit.PredictDerivative(u)
}

// Degree returns the polynomial degree approximating λ
func (o *Spline) Degree() int {
	return 3
}
