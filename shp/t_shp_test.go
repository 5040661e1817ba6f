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

func verbose() {
	chk.Verbose = true
}

func Test_shp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp01. shape functions at vertices and faces")

	for _, typ := range Types() {
		s, err := New(typ)
		if err != nil {
			tst.Errorf("%v", err)
			return
		}
		io.Pforan("%s\n", typ)
		CheckShape(tst, s, 1e-15, chk.Verbose)
		CheckShapeFace(tst, s, 1e-14, chk.Verbose)
		r := []float64{0.15, 0.2}
		if s.Gndim == 1 {
			r = []float64{0.15}
		}
		CheckDSdR(tst, s, r, 1e-9, chk.Verbose)
	}

	if _, err := New("hex8"); err == nil {
		tst.Errorf("unknown shape must fail")
	}
}

func Test_shp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp02. integration points")

	for deg := 0; deg <= 12; deg++ {
		CheckIps(tst, "lin", deg, 1e-14)
		CheckIps(tst, "qua", deg, 1e-14)
		CheckIps(tst, "tri", deg, 1e-14)
	}

	// clamping
	a, _ := IpsByDegree("qua", 100)
	b, _ := IpsByDegree("qua", MaxDegree)
	chk.Int(tst, "clamped", len(a), len(b))
	c, _ := IpsByDegree("tri", -3)
	chk.Int(tst, "negative", len(c), 1)

	if _, err := IpsByDegree("hex", 2); err == nil {
		tst.Errorf("unknown kind must fail")
	}
}

func Test_shp03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp03. mapping, area and normals")

	// distorted quadrilateral
	//    (0.5,2)  3-------2 (2.5,2.5)
	//             |       |
	//      (0,0)  0-------1 (2,0)
	x := [][]float64{
		{0, 2, 2.5, 0.5, 1, 2.25, 1.5, 0.25, 1.25},
		{0, 0, 2.5, 2, 0, 1.25, 2.25, 1, 1.125},
	}
	area := 0.5 * math.Abs((x[0][0]*x[1][1]-x[0][1]*x[1][0])+(x[0][1]*x[1][2]-x[0][2]*x[1][1])+
		(x[0][2]*x[1][3]-x[0][3]*x[1][2])+(x[0][3]*x[1][0]-x[0][0]*x[1][3]))
	for _, typ := range []string{"qua4", "qua8", "qua9"} {
		s, _ := New(typ)
		pts, _ := IpsByDegree("qua", 2*s.Degree+s.GeoOrder)
		sum := 0.0
		for _, ip := range pts {
			if err := s.CalcAtIp(x, ip, true); err != nil {
				tst.Errorf("%v", err)
				return
			}
			sum += ip.W * s.J
		}
		chk.Float64(tst, typ+": area", 1e-13, sum, area)

		// perimeter and outward normals
		dirs := [][]float64{{0, -1}, {5, -1}, {-0.5, 2}, {-2, 0.5}}
		perim := 0.0
		ipf, _ := IpsByDegree("lin", 2)
		for k := 0; k < s.Nfaces(); k++ {
			for _, ip := range ipf {
				if err := s.CalcAtFaceIp(x, ip, k); err != nil {
					tst.Errorf("%v", err)
					return
				}
				nrm := math.Hypot(s.Fnvec[0], s.Fnvec[1])
				perim += ip.W * nrm
				cos := (s.Fnvec[0]*dirs[k][0] + s.Fnvec[1]*dirs[k][1]) / nrm / math.Hypot(dirs[k][0], dirs[k][1])
				chk.Float64(tst, io.Sf("%s: face %d normal", typ, k), 1e-14, cos, 1)
			}
		}
		ana := math.Hypot(2, 0) + math.Hypot(0.5, 2.5) + math.Hypot(2, 0.5) + math.Hypot(0.5, 2)
		chk.Float64(tst, typ+": perimeter", 1e-13, perim, ana)
	}
}

func Test_shp04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp04. inverse mapping and gradients")

	// triangle with midside nodes
	x := [][]float64{
		{1, 3, 1.5, 2, 2.25, 1.25},
		{1, 1.5, 3, 1.25, 2.25, 2},
	}
	s, _ := New("tri6")
	r := []float64{0, 0}
	y := []float64{1.8, 1.7}
	if err := s.InvMap(r, y, x); err != nil {
		tst.Errorf("%v", err)
		return
	}
	s.CalcAtIp(x, Ipoint{R: r[0], S: r[1]}, true)
	xx, yy := 0.0, 0.0
	for n := 0; n < s.Nverts; n++ {
		xx += s.S[n] * x[0][n]
		yy += s.S[n] * x[1][n]
	}
	chk.Float64(tst, "x", 1e-13, xx, y[0])
	chk.Float64(tst, "y", 1e-13, yy, y[1])
	if !s.IsInside(r, 1e-10) {
		tst.Errorf("point must be inside")
	}

	// gradients of a linear field are exact
	for _, p := range [][]float64{{0.2, 0.3}, {0.6, 0.1}} {
		s.CalcAtIp(x, Ipoint{R: p[0], S: p[1]}, true)
		gx, gy := 0.0, 0.0
		for n := 0; n < s.Nverts; n++ {
			u := 3*x[0][n] - 2*x[1][n] + 1
			gx += s.G[n][0] * u
			gy += s.G[n][1] * u
		}
		chk.Float64(tst, "du/dx", 1e-13, gx, 3)
		chk.Float64(tst, "du/dy", 1e-13, gy, -2)
	}

	// inverted element
	bad := [][]float64{{0, 0, 1}, {0, 1, 0}}
	t3, _ := New("tri3")
	if err := t3.CalcAtIp(bad, Ipoint{R: 0.2, S: 0.2}, true); err == nil {
		tst.Errorf("clockwise triangle must fail")
	}
}
