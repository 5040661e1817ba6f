// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	r := []float64{0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(shape.S, shape.DSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckShapeFace checks that functions of vertices not on a face vanish along that face
func CheckShapeFace(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// skip 1D shapes
	nfaces := len(shape.FaceLocalVerts)
	if nfaces == 0 {
		return
	}

	// loop over faces and points along faces
	errS := 0.0
	for k := 0; k < nfaces; k++ {
		onface := make(map[int]bool)
		for _, n := range shape.FaceLocalVerts[k] {
			onface[n] = true
		}
		for _, rf := range []float64{-1, -0.3, 0.5, 1} {
			ip := shape.FaceIpToElem(Ipoint{R: rf}, k)
			shape.Func(shape.S, shape.DSdR, []float64{ip.R, ip.S}, false)
			if verbose {
				io.Pforan("face %d: S = %v\n", k, shape.S)
			}
			sum := 0.0
			for m := 0; m < shape.Nverts; m++ {
				sum += shape.S[m]
				if !onface[m] {
					errS += math.Abs(shape.S[m])
				}
			}
			errS += math.Abs(sum - 1.0)
		}
	}

	// error
	if verbose {
		io.Pforan("%g\n", errS)
	}
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckDSdR checks dSdR derivatives of shape structures
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// analytical
	shape.Func(shape.S, shape.DSdR, r, true)

	// numerical
	n := shape.Gndim
	chk.DerivVecVec(tst, shape.Type+": dS/dR", tol, shape.DSdR, r[:n], 1e-1, verbose, func(f, x []float64) {
		shape.Func(f, nil, x, false) // f := S
	})
}

// CheckIps checks that integration points of the given kind integrate the polynomial
// r^p s^q exactly for p+q <= degree (per direction on quadrilaterals)
func CheckIps(tst *testing.T, kind string, degree int, tol float64) {
	pts, err := IpsByDegree(kind, degree)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	for p := 0; p <= degree; p++ {
		for q := 0; q <= degree; q++ {
			var ana float64
			switch kind {
			case "tri":
				if p+q > degree {
					continue
				}
				ana = factorial(p) * factorial(q) / factorial(p+q+2)
			case "qua":
				ana = monoLin(p) * monoLin(q)
			case "lin":
				if q > 0 {
					continue
				}
				ana = monoLin(p)
			}
			num := 0.0
			for _, ip := range pts {
				num += ip.W * math.Pow(ip.R, float64(p)) * math.Pow(ip.S, float64(q))
			}
			chk.Float64(tst, io.Sf("%s(%d): ∫ r^%d s^%d", kind, degree, p, q), tol, num, ana)
		}
	}
}

// monoLin returns ∫_{-1}^{1} r^p dr
func monoLin(p int) float64 {
	if p%2 == 1 {
		return 0
	}
	return 2.0 / float64(p+1)
}

func factorial(n int) float64 {
	res := 1.0
	for i := 2; i <= n; i++ {
		res *= float64(i)
	}
	return res
}
