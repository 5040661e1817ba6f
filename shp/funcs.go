// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// lagrange evaluates the 1D quadratic (or linear) Lagrange polynomial associated with node xi
func lagrange(linear bool, xi, r float64) (s, ds float64) {
	if linear {
		return (1.0 + xi*r) / 2.0, xi / 2.0
	}
	switch {
	case xi < 0:
		return r * (r - 1.0) / 2.0, r - 0.5
	case xi > 0:
		return r * (r + 1.0) / 2.0, r + 0.5
	}
	return 1.0 - r*r, -2.0 * r
}

// Lin2 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin2
// elements at {r} natural coordinates
//
//	-1     0    +1
//	 0-----------1-->r
func Lin2(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = 0.5 * (1.0 - r[0])
	S[1] = 0.5 * (1.0 + r[0])
	if !derivs {
		return
	}
	dSdR[0][0] = -0.5
	dSdR[1][0] = 0.5
}

// Lin3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin3
// elements at {r} natural coordinates
//
//	-1     0    +1
//	 0-----2-----1-->r
func Lin3(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0], S[1], S[2] = r[0]*(r[0]-1.0)/2.0, r[0]*(r[0]+1.0)/2.0, 1.0-r[0]*r[0]
	if !derivs {
		return
	}
	dSdR[0][0] = r[0] - 0.5
	dSdR[1][0] = r[0] + 0.5
	dSdR[2][0] = -2.0 * r[0]
}

// Tri3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri3
// elements at {r,s} natural coordinates
//
//	s
//	|
//	2, (0,1)
//	| ',
//	|   ',
//	|     ',
//	|       ',
//	0---------1 ---- r
//	(0,0)     (1,0)
func Tri3(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = 1.0 - r[0] - r[1]
	S[1] = r[0]
	S[2] = r[1]
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -1.0, -1.0
	dSdR[1][0], dSdR[1][1] = 1.0, 0.0
	dSdR[2][0], dSdR[2][1] = 0.0, 1.0
}

// Tri6 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri6
// elements at {r,s} natural coordinates
//
//	s
//	|
//	2, (0,1)
//	| ',
//	|   ',
//	5     4,
//	|       ',
//	|         ',
//	0-----3-----1 ---- r
//	(0,0)       (1,0)
func Tri6(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	l0, l1, l2 := 1.0-r[0]-r[1], r[0], r[1]
	S[0] = l0 * (2.0*l0 - 1.0)
	S[1] = l1 * (2.0*l1 - 1.0)
	S[2] = l2 * (2.0*l2 - 1.0)
	S[3] = 4.0 * l0 * l1
	S[4] = 4.0 * l1 * l2
	S[5] = 4.0 * l2 * l0
	if !derivs {
		return
	}
	d0 := 1.0 - 4.0*l0
	dSdR[0][0], dSdR[0][1] = d0, d0
	dSdR[1][0], dSdR[1][1] = 4.0*l1-1.0, 0.0
	dSdR[2][0], dSdR[2][1] = 0.0, 4.0*l2-1.0
	dSdR[3][0], dSdR[3][1] = 4.0*(l0-l1), -4.0*l1
	dSdR[4][0], dSdR[4][1] = 4.0*l2, 4.0*l1
	dSdR[5][0], dSdR[5][1] = -4.0*l2, 4.0*(l0-l2)
}

// Qua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements at {r,s} natural coordinates
//
//	3-----------2
//	|     s     |
//	|     |     |
//	|     +--r  |
//	|           |
//	|           |
//	0-----------1
func Qua4(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	tensor(S, dSdR, r, derivs, true, qua9coords, 4)
}

// Qua8 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua8
// (serendipity) elements at {r,s} natural coordinates
//
//	3-----6-----2
//	|     s     |
//	|     |     |
//	7     +--r  5
//	|           |
//	|           |
//	0-----4-----1
func Qua8(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	for m := 0; m < 8; m++ {
		ri, si := qua9coords[0][m], qua9coords[1][m]
		a, b := 1.0+ri*r[0], 1.0+si*r[1]
		switch {
		case m < 4:
			S[m] = a * b * (ri*r[0] + si*r[1] - 1.0) / 4.0
			if derivs {
				dSdR[m][0] = ri * b * (2.0*ri*r[0] + si*r[1]) / 4.0
				dSdR[m][1] = si * a * (ri*r[0] + 2.0*si*r[1]) / 4.0
			}
		case ri == 0:
			S[m] = (1.0 - r[0]*r[0]) * b / 2.0
			if derivs {
				dSdR[m][0] = -r[0] * b
				dSdR[m][1] = si * (1.0 - r[0]*r[0]) / 2.0
			}
		default:
			S[m] = a * (1.0 - r[1]*r[1]) / 2.0
			if derivs {
				dSdR[m][0] = ri * (1.0 - r[1]*r[1]) / 2.0
				dSdR[m][1] = -r[1] * a
			}
		}
	}
}

// Qua9 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua9
// (Lagrange) elements at {r,s} natural coordinates
//
//	3-----6-----2
//	|     s     |
//	|     |     |
//	7     8--r  5
//	|           |
//	|           |
//	0-----4-----1
func Qua9(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	tensor(S, dSdR, r, derivs, false, qua9coords, 9)
}

// tensor computes tensor-product Lagrange functions
func tensor(S []float64, dSdR [][]float64, r []float64, derivs, linear bool, nat [][]float64, n int) {
	for m := 0; m < n; m++ {
		a, da := lagrange(linear, nat[0][m], r[0])
		b, db := lagrange(linear, nat[1][m], r[1])
		S[m] = a * b
		if derivs {
			dSdR[m][0] = da * b
			dSdR[m][1] = a * db
		}
	}
}

// natural coordinates of quadrilaterals; qua4 and qua8 use the first 4 and 8 columns
var qua9coords = [][]float64{
	{-1, 1, 1, -1, 0, 1, 0, -1, 0},
	{-1, -1, 1, 1, -1, 0, 1, 0, 0},
}

// register shapes
func init() {
	factory["lin2"] = &Shape{
		Type:      "lin2",
		Func:      Lin2,
		Gndim:     1,
		Nverts:    2,
		NatCoords: [][]float64{{-1, 1}},
		Degree:    1,
	}
	factory["lin3"] = &Shape{
		Type:      "lin3",
		Func:      Lin3,
		Gndim:     1,
		Nverts:    3,
		NatCoords: [][]float64{{-1, 1, 0}},
		Degree:    2,
	}
	factory["tri3"] = &Shape{
		Type:           "tri3",
		Func:           Tri3,
		FaceFunc:       Lin2,
		FaceType:       "lin2",
		Gndim:          2,
		Nverts:         3,
		FaceNverts:     2,
		FaceLocalVerts: [][]int{{0, 1}, {1, 2}, {2, 0}},
		NatCoords:      [][]float64{{0, 1, 0}, {0, 0, 1}},
		Simplex:        true,
		Degree:         1,
	}
	factory["tri6"] = &Shape{
		Type:           "tri6",
		Func:           Tri6,
		FaceFunc:       Lin3,
		FaceType:       "lin3",
		Gndim:          2,
		Nverts:         6,
		FaceNverts:     3,
		FaceLocalVerts: [][]int{{0, 1, 3}, {1, 2, 4}, {2, 0, 5}},
		NatCoords:      [][]float64{{0, 1, 0, 0.5, 0.5, 0}, {0, 0, 1, 0, 0.5, 0.5}},
		Simplex:        true,
		Degree:         2,
	}
	factory["qua4"] = &Shape{
		Type:           "qua4",
		Func:           Qua4,
		FaceFunc:       Lin2,
		FaceType:       "lin2",
		Gndim:          2,
		Nverts:         4,
		FaceNverts:     2,
		FaceLocalVerts: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
		NatCoords:      [][]float64{qua9coords[0][:4], qua9coords[1][:4]},
		Degree:         1,
		GeoOrder:       1,
	}
	factory["qua8"] = &Shape{
		Type:           "qua8",
		Func:           Qua8,
		FaceFunc:       Lin3,
		FaceType:       "lin3",
		Gndim:          2,
		Nverts:         8,
		FaceNverts:     3,
		FaceLocalVerts: [][]int{{0, 1, 4}, {1, 2, 5}, {2, 3, 6}, {3, 0, 7}},
		NatCoords:      [][]float64{qua9coords[0][:8], qua9coords[1][:8]},
		Degree:         2,
		GeoOrder:       1,
	}
	factory["qua9"] = &Shape{
		Type:           "qua9",
		Func:           Qua9,
		FaceFunc:       Lin3,
		FaceType:       "lin3",
		Gndim:          2,
		Nverts:         9,
		FaceNverts:     3,
		FaceLocalVerts: [][]int{{0, 1, 4}, {1, 2, 5}, {2, 3, 6}, {3, 0, 7}},
		NatCoords:      qua9coords,
		Degree:         2,
		GeoOrder:       1,
	}
}
