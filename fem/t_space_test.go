// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/blackvladimir/hermes/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func Test_space01(tst *testing.T) {

	/*  Vertices / Equations
	 *
	 *    3 o---------o 4 -------o 5        3 o---------o 2 -------o 5
	 *      |         |          |            |         |          |
	 *      |    0    |    1     |            |         |          |
	 *      |         |          |            |         |          |
	 *    0 o---------o 1 -------o 2        0 o---------o 1 -------o 4
	 */

	//verbose()
	chk.PrintTitle("space01. equations and essential conditions")

	msh, err := inp.RectMesh("qua4", 2, 1, 0, 2, 0, 1, -1, ftags)
	require.NoError(tst, err)
	spc, err := NewSpace(msh, "u")
	require.NoError(tst, err)
	chk.Int(tst, "ndof", spc.Ndof, 6)
	chk.Int(tst, "nfree", spc.Nfree, 6)
	chk.Ints(tst, "umap[0]", spc.Umap[0][0], []int{0, 1, 2, 3})
	chk.Ints(tst, "umap[1]", spc.Umap[1][0], []int{1, 4, 5, 2})
	chk.Int(tst, "eq of vertex 5", spc.Vid2node[5].GetEq("u"), 5)
	chk.Int(tst, "eq of unknown key", spc.Vid2node[5].GetEq("w"), -1)

	// prescribed values on left side
	fcn := TsFunc(func(t float64, x []float64) float64 { return t + x[1] })
	require.NoError(tst, spc.SetEssential("u", -13, fcn))
	require.Panics(tst, func() { spc.Scatter(make([]float64, 6), make([]float64, 4), 0) })
	spc.Build()
	chk.Int(tst, "nfree", spc.Nfree, 4)
	chk.Ints(tst, "free", spc.Free, []int{-1, 0, 1, -1, 2, 3})
	chk.Ints(tst, "free2eq", spc.Free2eq, []int{1, 2, 4, 5})

	// scatter and gather
	y, x := spc.NewVectors()
	copy(x, []float64{10, 20, 30, 40})
	spc.Scatter(y, x, 2)
	chk.Array(tst, "y", 1e-15, y, []float64{2, 10, 20, 3, 30, 40})
	xx := make([]float64, spc.Nfree)
	spc.Gather(xx, y)
	chk.Array(tst, "x", 1e-15, xx, x)
	io.Pforan("%v", spc.EssenBcs.List(2))

	// vertices on top side; vertex 3 is replaced
	one := TsFunc(func(t float64, x []float64) float64 { return 1 })
	require.NoError(tst, spc.SetEssentialVert("u", -12, one))
	spc.Build()
	chk.Int(tst, "nfree", spc.Nfree, 2)
	chk.Ints(tst, "free2eq", spc.Free2eq, []int{1, 4})
	chk.Int(tst, "nbcs", len(spc.EssenBcs.Bcs), 4)
	spc.Scatter(y, []float64{7, 8}, 0)
	chk.Array(tst, "y", 1e-15, y, []float64{0, 7, 1, 1, 8, 1})

	// interpolate
	lin := TsFunc(func(t float64, x []float64) float64 { return x[0] + 10*x[1] })
	require.NoError(tst, spc.Interpolate(y, "u", lin, 0))
	chk.Array(tst, "y", 1e-15, y, []float64{0, 1, 11, 10, 2, 12})

	// errors
	require.Error(tst, spc.SetEssential("u", -99, one))
	require.Error(tst, spc.SetEssential("w", -13, one))
	require.Error(tst, spc.SetEssential("u", -13, nil))
	require.Error(tst, spc.SetEssentialVert("u", -11, one))
	require.Error(tst, spc.Interpolate(y, "w", one, 0))
	_, err = NewSpace(msh)
	require.Error(tst, err)
}

func Test_space02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("space02. two fields")

	msh, err := inp.RectMesh("tri6", 1, 1, 0, 1, 0, 1, -1, ftags)
	require.NoError(tst, err)
	spc, err := NewSpace(msh, "u", "w")
	require.NoError(tst, err)
	chk.Int(tst, "ndof", spc.Ndof, 18)
	chk.Int(tst, "key index", spc.KeyIndex("w"), 1)
	for _, nod := range spc.Nodes {
		chk.Int(tst, "eq(w) = eq(u) + 1", nod.GetEq("w"), nod.GetEq("u")+1)
	}

	// bottom side: 3 vertices
	zero := TsFunc(func(t float64, x []float64) float64 { return 0 })
	require.NoError(tst, spc.SetEssential("w", -10, zero))
	spc.Build()
	chk.Int(tst, "nfree", spc.Nfree, 15)
	for _, bc := range spc.EssenBcs.Bcs {
		if bc.Key != "w" || bc.X[1] != 0 {
			tst.Errorf("wrong bc: %+v", bc)
		}
	}
}
