// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	chk.Verbose = true
}

// checkDeriv compares DkDu with numerical derivatives
func checkDeriv(tst *testing.T, mdl Model, us []float64, tol float64) {
	for _, u := range us {
		chk.DerivScaSca(tst, io.Sf("dkdu @ %g", u), tol, mdl.DkDu(u), u, 1e-3, chk.Verbose, func(x float64) float64 {
			return mdl.K(x)
		})
	}
}

func Test_conduct01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("conduct01. constant and power models")

	if _, err := New("nonexistent"); err == nil {
		tst.Errorf("unknown model must fail")
	}

	mdl, err := New("cte")
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	err = mdl.Init(dbf.Params{&dbf.P{N: "k", V: 2.5}})
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Float64(tst, "k", 1e-17, mdl.K(123), 2.5)
	chk.Float64(tst, "dkdu", 1e-17, mdl.DkDu(123), 0)
	chk.Int(tst, "deg", mdl.Degree(), 0)
	if err = mdl.Init(dbf.Params{&dbf.P{N: "kk", V: 2.5}}); err == nil {
		tst.Errorf("wrong parameter must fail")
	}

	pow, _ := New("pow")
	err = pow.Init(pow.GetPrms(true))
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Float64(tst, "λ(2)", 1e-15, pow.K(2), 17)
	chk.Int(tst, "deg", pow.Degree(), 4)
	checkDeriv(tst, pow, []float64{-1.5, 0, 0.5, 2, 3}, 1e-7)

	if err = pow.Init(dbf.Params{&dbf.P{N: "c", V: 2}}); err == nil {
		tst.Errorf("missing exponent must fail")
	}
	pow.Init(dbf.Params{&dbf.P{N: "alp", V: 0.5}})
	if !math.IsNaN(pow.K(-1)) {
		tst.Errorf("λ(-1) with α=0.5 must be NaN")
	}
}

func Test_conduct02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("conduct02. cubic spline")

	// λ(u) = 1 + u⁴ sampled at integers
	var xs, ys []float64
	for i := -2; i <= 5; i++ {
		x := float64(i)
		xs = append(xs, x)
		ys = append(ys, 1+math.Pow(x, 4))
	}

	mdl, _ := New("spline")
	if err := mdl.Init(nil); err == nil {
		tst.Errorf("spline without points must fail")
	}
	spl := mdl.(PointsSetter)
	if err := spl.SetPoints(xs, ys[:3]); err == nil {
		tst.Errorf("mismatched points must fail")
	}
	if err := spl.SetPoints([]float64{0, 2, 1}, []float64{0, 1, 2}); err == nil {
		tst.Errorf("unsorted points must fail")
	}
	if err := spl.SetPoints(xs, ys); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := mdl.Init(nil); err != nil {
		tst.Errorf("%v", err)
		return
	}

	// interpolation
	for i, x := range xs {
		chk.Float64(tst, io.Sf("λ(%g)", x), 1e-12, mdl.K(x), ys[i])
	}
	chk.Int(tst, "deg", mdl.Degree(), 3)

	// derivatives; inside and beyond the ends
	checkDeriv(tst, mdl, []float64{-1.7, -0.3, 0.5, 2.2, 4.6}, 1e-6)
	checkDeriv(tst, mdl, []float64{-3, 6, 10}, 1e-6)

	// linear extrapolation
	d := mdl.DkDu(5)
	chk.Float64(tst, "λ(6)", 1e-12, mdl.K(6), ys[7]+d)
	chk.Float64(tst, "λ(7)", 1e-12, mdl.K(7), ys[7]+2*d)
	chk.Float64(tst, "dλ(7)", 1e-15, mdl.DkDu(7), d)

	// scaling
	mdl.Init(dbf.Params{&dbf.P{N: "scale", V: 2}})
	chk.Float64(tst, "2λ(1)", 1e-12, mdl.K(1), 2*ys[3])
}
