// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements FE simulation output handling for analyses
package out

import (
	"math"

	"github.com/blackvladimir/hermes/fem"
	"github.com/blackvladimir/hermes/shp"
	"github.com/cpmech/gosl/chk"
)

// constants
var (
	TolC = 1e-8 // tolerance to decide whether a point is inside a cell (natural coordinates)
)

// Probe interpolates fields at a fixed point
type Probe struct {
	Spc *fem.Space // space
	X   []float64  // coordinates of point
	Cid int        // id of cell containing point
	S   []float64  // [nverts] shape functions at point
}

// NewProbe finds the cell containing x and computes the shape functions at x
func NewProbe(spc *fem.Space, x []float64) (o *Probe, err error) {
	msh := spc.Msh
	if x[0] < msh.Xmin-TolC || x[0] > msh.Xmax+TolC || x[1] < msh.Ymin-TolC || x[1] > msh.Ymax+TolC {
		return nil, chk.Err("point (%g,%g) is outside the mesh", x[0], x[1])
	}
	shapes := make(map[string]*shp.Shape)
	r := []float64{0, 0}
	for _, c := range msh.Cells {
		s, ok := shapes[c.Type]
		if !ok {
			s, err = shp.New(c.Type)
			if err != nil {
				return
			}
			shapes[c.Type] = s
		}
		xc := msh.ExtractCellCoords(c.Id)
		if !inBox(x, xc) {
			continue
		}
		if s.InvMap(r, x, xc) != nil {
			continue
		}
		if !s.IsInside(r, TolC) {
			continue
		}
		s.Func(s.S, nil, r, false)
		o = &Probe{Spc: spc, X: x, Cid: c.Id, S: append([]float64{}, s.S...)}
		return
	}
	return nil, chk.Err("cannot find cell containing point (%g,%g)", x[0], x[1])
}

// Value returns the value of field key at the probe
//  y -- [ndof] full vector
func (o *Probe) Value(y []float64, key string) (val float64, err error) {
	k := o.Spc.KeyIndex(key)
	if k < 0 {
		return 0, chk.Err("cannot find field %q", key)
	}
	for m, eq := range o.Spc.Umap[o.Cid][k] {
		val += o.S[m] * y[eq]
	}
	return
}

// Series returns the time series of field key at the probe
func (o *Probe) Series(sum *fem.Summary, key string) (T, U []float64, err error) {
	T = append([]float64{}, sum.Times...)
	U = make([]float64, len(sum.Ys))
	for i, y := range sum.Ys {
		U[i], err = o.Value(y, key)
		if err != nil {
			return
		}
	}
	return
}

// MaxNodalError returns the largest difference between the nodal values of field key and the
// function exact at time t
func MaxNodalError(spc *fem.Space, y []float64, key string, exact fem.TimeSpace, t float64) (res float64, err error) {
	k := spc.KeyIndex(key)
	if k < 0 {
		return 0, chk.Err("cannot find field %q", key)
	}
	for _, nod := range spc.Nodes {
		res = math.Max(res, math.Abs(y[nod.Dofs[k].Eq]-exact.F(t, nod.Vert.C)))
	}
	return
}

// ErrorL2 returns the L2 norm of the difference between field key and the function exact at
// time t; integration points are exact for polynomials of the given degree
func ErrorL2(spc *fem.Space, y []float64, key string, exact fem.TimeSpace, t float64, degree int) (res float64, err error) {
	k := spc.KeyIndex(key)
	if k < 0 {
		return 0, chk.Err("cannot find field %q", key)
	}
	ev := fem.NewShapeEvaluator(spc.Msh)
	x := []float64{0, 0}
	for _, c := range spc.Msh.Cells {
		pd, err := ev.Volume(c, degree)
		if err != nil {
			return 0, err
		}
		for i := 0; i < pd.N; i++ {
			var uh float64
			for m, eq := range spc.Umap[c.Id][k] {
				uh += pd.S[i][m] * y[eq]
			}
			x[0], x[1] = pd.Geo.Xc[i], pd.Geo.Yc[i]
			e := uh - exact.F(t, x)
			res += e * e * pd.Wt[i]
		}
	}
	return math.Sqrt(res), nil
}

// inBox tells whether x is inside the bounding box of cell coordinates xc
func inBox(x []float64, xc [][]float64) bool {
	for i := 0; i < 2; i++ {
		min, max := xc[i][0], xc[i][0]
		for _, v := range xc[i] {
			min, max = math.Min(min, v), math.Max(max, v)
		}
		if x[i] < min-TolC || x[i] > max+TolC {
			return false
		}
	}
	return true
}
