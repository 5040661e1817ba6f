// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/integrate/quad"
)

// Ipoint holds integration point data
type Ipoint struct {
	R, S float64 // natural coordinates
	W    float64 // weight
}

// MaxDegree is the maximum polynomial degree integrated exactly; higher requests are clamped
const MaxDegree = 24

// ipsdb caches integration points
var ipsdb = struct {
	sync.Mutex
	pts map[ipskey][]Ipoint
}{pts: make(map[ipskey][]Ipoint)}

type ipskey struct {
	kind   string
	degree int
}

// IpsByDegree returns integration points exact for polynomials of the given degree
//  kind -- "lin", "tri" or "qua"
//  Note: the returned slice is shared and must not be modified
func IpsByDegree(kind string, degree int) (pts []Ipoint, err error) {
	if degree < 0 {
		degree = 0
	}
	if degree > MaxDegree {
		degree = MaxDegree
	}
	key := ipskey{kind, degree}
	ipsdb.Lock()
	defer ipsdb.Unlock()
	if pts, ok := ipsdb.pts[key]; ok {
		return pts, nil
	}
	switch kind {
	case "lin":
		pts = ipsLin(degree)
	case "qua":
		pts = ipsQua(degree)
	case "tri":
		pts = ipsTri(degree)
	default:
		return nil, chk.Err("cannot find integration points for %q geometry", kind)
	}
	ipsdb.pts[key] = pts
	return
}

// IpsKind returns the kind of integration points of a shape
func IpsKind(s *Shape) string {
	switch {
	case s.Gndim == 1:
		return "lin"
	case s.Simplex:
		return "tri"
	}
	return "qua"
}

// Gauss-Legendre points and weights over [min,max]
func legendre(n int, min, max float64) (x, w []float64) {
	x = make([]float64, n)
	w = make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, min, max)
	return
}

// npoints returns the number of Gauss points integrating exactly degree p
func npoints(p int) int {
	return int(math.Ceil(float64(p+1) / 2.0))
}

func ipsLin(degree int) (pts []Ipoint) {
	x, w := legendre(npoints(degree), -1, 1)
	pts = make([]Ipoint, len(x))
	for i := range x {
		pts[i] = Ipoint{R: x[i], W: w[i]}
	}
	return
}

func ipsQua(degree int) (pts []Ipoint) {
	x, w := legendre(npoints(degree), -1, 1)
	for j := range x {
		for i := range x {
			pts = append(pts, Ipoint{R: x[i], S: x[j], W: w[i] * w[j]})
		}
	}
	return
}

// ipsTri collapses the square [0,1]² onto the reference triangle: r = ξ(1-η), s = η
func ipsTri(degree int) (pts []Ipoint) {
	x, w := legendre(npoints(degree+1), 0, 1)
	for j := range x {
		for i := range x {
			pts = append(pts, Ipoint{
				R: x[i] * (1.0 - x[j]),
				S: x[j],
				W: w[i] * w[j] * (1.0 - x[j]),
			})
		}
	}
	return
}
