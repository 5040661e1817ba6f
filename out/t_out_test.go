// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"testing"

	"github.com/blackvladimir/hermes/fem"
	"github.com/blackvladimir/hermes/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/require"
)

func verbose() {
	chk.Verbose = true
}

func Test_out01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out01. probes and series")

	msh, err := inp.RectMesh("qua9", 4, 3, 0, 2, 0, 1, -1, [4]int{-10, -11, -12, -13})
	require.NoError(tst, err)
	spc, err := fem.NewSpace(msh, "u")
	require.NoError(tst, err)

	f := fem.TsFunc(func(t float64, x []float64) float64 {
		return 1 + 2*x[0] + 3*x[1] + x[0]*x[1]*(1+t) + x[0]*x[0]
	})
	sum := new(fem.Summary)
	for _, t := range []float64{0, 0.5, 1} {
		y := make([]float64, spc.Ndof)
		require.NoError(tst, spc.Interpolate(y, "u", f, t))
		sum.Save(t, y)
	}

	x := []float64{0.77, 0.31}
	p, err := NewProbe(spc, x)
	require.NoError(tst, err)
	T, U, err := p.Series(sum, "u")
	require.NoError(tst, err)
	chk.Array(tst, "T", 1e-15, T, []float64{0, 0.5, 1})
	for i, t := range T {
		chk.Float64(tst, "u", 1e-13, U[i], f(t, x))
	}

	// corner and boundary points
	for _, x := range [][]float64{{0, 0}, {2, 1}, {1, 0.5}, {2, 0.3}} {
		p, err := NewProbe(spc, x)
		require.NoError(tst, err)
		val, err := p.Value(sum.Ys[2], "u")
		require.NoError(tst, err)
		chk.Float64(tst, "u", 1e-13, val, f(1, x))
	}

	_, err = NewProbe(spc, []float64{2.5, 0.5})
	require.Error(tst, err)
	_, err = p.Value(sum.Ys[0], "w")
	require.Error(tst, err)

	idx, err := sum.Nearest(0.3)
	require.NoError(tst, err)
	chk.Int(tst, "nearest", idx, 1)
}

func Test_out02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out02. errors")

	quad := fem.TsFunc(func(t float64, x []float64) float64 { return x[0]*x[0] + x[1] })
	for _, typ := range []string{"qua9", "tri6", "tri3"} {
		msh, err := inp.RectMesh(typ, 3, 3, 0, 1, 0, 1, -1, [4]int{-10, -11, -12, -13})
		require.NoError(tst, err)
		spc, err := fem.NewSpace(msh, "u")
		require.NoError(tst, err)
		y := make([]float64, spc.Ndof)
		require.NoError(tst, spc.Interpolate(y, "u", quad, 0))

		emax, err := MaxNodalError(spc, y, "u", quad, 0)
		require.NoError(tst, err)
		chk.Float64(tst, "max nodal error", 1e-15, emax, 0)

		e2, err := ErrorL2(spc, y, "u", quad, 0, 6)
		require.NoError(tst, err)
		if typ == "tri3" {
			if e2 < 1e-3 {
				tst.Errorf("linear interpolation of x² must have a noticeable error: %g", e2)
			}
		} else {
			chk.Float64(tst, typ+": L2 error", 1e-13, e2, 0)
		}
	}
}
