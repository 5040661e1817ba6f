// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/functions and integration points
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type           string      // name; e.g. "lin2"
	Func           ShpFunc     // shape/derivs function callback function
	FaceFunc       ShpFunc     // face shape/derivs function callback function
	FaceType       string      // geometry of face; e.g. "qua8" => "lin3"
	Gndim          int         // geometry of shape; space dimension (1 or 2)
	Nverts         int         // number of vertices in cell; e.g. 6
	FaceNverts     int         // number of vertices on face
	FaceLocalVerts [][]int     // face local vertices [nfaces][FaceNverts]
	NatCoords      [][]float64 // natural coordinates [gndim][nverts]
	Simplex        bool        // triangle
	Degree         int         // polynomial degree of basis functions (per direction for quads)
	GeoOrder       int         // extra quadrature degree for non-affine mapping

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] dRdx == inverse(dxdR)

	// scratchpad: face
	Sf     []float64   // [FaceNverts] shape functions values
	Fnvec  []float64   // [gndim] face normal vector multiplied by Jf
	DSfdRf [][]float64 // [FaceNverts][gndim-1] derivatives of Sf w.r.t natural coordinates
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// New returns a new Shape structure with its own scratchpad
func New(geoType string) (*Shape, error) {
	s, ok := factory[geoType]
	if !ok {
		return nil, chk.Err("cannot find shape type == %q", geoType)
	}
	o := new(Shape)
	o.Type = s.Type
	o.Func = s.Func
	o.FaceFunc = s.FaceFunc
	o.FaceType = s.FaceType
	o.Gndim = s.Gndim
	o.Nverts = s.Nverts
	o.FaceNverts = s.FaceNverts
	o.FaceLocalVerts = s.FaceLocalVerts
	o.NatCoords = s.NatCoords
	o.Simplex = s.Simplex
	o.Degree = s.Degree
	o.GeoOrder = s.GeoOrder
	o.S = make([]float64, o.Nverts)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.DxdR = utl.Alloc(o.Gndim, o.Gndim)
	o.DRdx = utl.Alloc(o.Gndim, o.Gndim)
	if o.FaceNverts > 0 {
		o.Sf = make([]float64, o.FaceNverts)
		o.Fnvec = make([]float64, o.Gndim)
		o.DSfdRf = utl.Alloc(o.FaceNverts, o.Gndim-1)
	}
	return o, nil
}

// Types returns the names of all available shapes
func Types() (res []string) {
	for _, key := range []string{"lin2", "lin3", "tri3", "tri6", "qua4", "qua8", "qua9"} {
		if _, ok := factory[key]; ok {
			res = append(res, key)
		}
	}
	return
}

// Nfaces returns the number of faces
func (o *Shape) Nfaces() int {
	return len(o.FaceLocalVerts)
}

// CalcAtIp calculates volume data such as S and G at natural coordinate r
//  Input:
//   x[gndim][nverts] -- coordinates matrix of solid element
//   ip               -- integration point
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// S and dSdR
	r := []float64{ip.R, ip.S}
	o.Func(o.S, o.DSdR, r, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// dRdx := inv(dxdR)
	switch o.Gndim {
	case 1:
		o.J = o.DxdR[0][0]
		if o.J > 0 {
			o.DRdx[0][0] = 1.0 / o.J
		}
	case 2:
		o.J = o.DxdR[0][0]*o.DxdR[1][1] - o.DxdR[0][1]*o.DxdR[1][0]
		if o.J > 0 {
			o.DRdx[0][0] = o.DxdR[1][1] / o.J
			o.DRdx[0][1] = -o.DxdR[0][1] / o.J
			o.DRdx[1][0] = -o.DxdR[1][0] / o.J
			o.DRdx[1][1] = o.DxdR[0][0] / o.J
		}
	}
	if o.J <= 0 || math.IsNaN(o.J) {
		return chk.Err("%s: Jacobian determinant is not positive: J = %v", o.Type, o.J)
	}

	// G == dSdx := dSdR * dRdx  =>  dS^n/dx_i := sum_j dS^n/dR_j * dR_j/dx_i
	for n := 0; n < o.Nverts; n++ {
		for i := 0; i < o.Gndim; i++ {
			o.G[n][i] = 0.0
			for j := 0; j < o.Gndim; j++ {
				o.G[n][i] += o.DSdR[n][j] * o.DRdx[j][i]
			}
		}
	}
	return
}

// CalcAtFaceIp calculates face data such as Sf and Fnvec
//  Input:
//   x[gndim][nverts] -- coordinates matrix of solid element
//   ipf              -- local/natural coordinates of face
//   idxface          -- local index of face
//  Output:
//   Sf and Fnvec
//  Note: Fnvec points outwards for counter-clockwise numbering of vertices
func (o *Shape) CalcAtFaceIp(x [][]float64, ipf Ipoint, idxface int) (err error) {
	if o.Gndim != 2 {
		return chk.Err("%s: face data is available for 2D shapes only", o.Type)
	}
	o.FaceFunc(o.Sf, o.DSfdRf, []float64{ipf.R}, true)
	var tx, ty float64
	for i, n := range o.FaceLocalVerts[idxface] {
		tx += x[0][n] * o.DSfdRf[i][0]
		ty += x[1][n] * o.DSfdRf[i][0]
	}
	o.Fnvec[0] = ty
	o.Fnvec[1] = -tx
	if tx == 0 && ty == 0 {
		return chk.Err("%s: face %d has zero length", o.Type, idxface)
	}
	return
}

// FaceIpToElem converts the natural coordinate of a face integration point into natural
// coordinates of the cell
func (o *Shape) FaceIpToElem(ipf Ipoint, idxface int) (ip Ipoint) {
	o.FaceFunc(o.Sf, nil, []float64{ipf.R}, false)
	for i, n := range o.FaceLocalVerts[idxface] {
		ip.R += o.Sf[i] * o.NatCoords[0][n]
		ip.S += o.Sf[i] * o.NatCoords[1][n]
	}
	ip.W = ipf.W
	return
}

// InvMap computes the natural coordinates r, given the real coordinate y
//  Input:
//   y[gndim]         -- are the 'x' coordinates of a point for which the 'r' coordinates are sought
//   x[gndim][nverts] -- coordinates matrix of solid element
//  Output:
//   r[2] -- are the natural coordinates of given point 'y'
func (o *Shape) InvMap(r, y []float64, x [][]float64) (err error) {

	// initial trial
	r[0], r[1] = 0, 0
	if o.Simplex {
		r[0], r[1] = 1.0/3.0, 1.0/3.0
	}

	// Newton iterations
	res := make([]float64, o.Gndim)
	for it := 0; it < InvMapNit; it++ {
		err = o.CalcAtIp(x, Ipoint{R: r[0], S: r[1]}, true)
		if err != nil {
			return
		}
		for i := 0; i < o.Gndim; i++ {
			res[i] = -y[i]
			for n := 0; n < o.Nverts; n++ {
				res[i] += o.S[n] * x[i][n]
			}
		}
		var nrm float64
		for j := 0; j < o.Gndim; j++ {
			dr := 0.0
			for i := 0; i < o.Gndim; i++ {
				dr += o.DRdx[j][i] * res[i]
			}
			r[j] -= dr
			nrm += dr * dr
		}
		if math.Sqrt(nrm) < InvMapTol {
			return
		}
	}
	return chk.Err("%s: InvMap did not converge after %d iterations", o.Type, InvMapNit)
}

// IsInside tells whether natural coordinates r are inside the reference shape
func (o *Shape) IsInside(r []float64, tol float64) bool {
	if o.Simplex {
		return r[0] >= -tol && r[1] >= -tol && r[0]+r[1] <= 1+tol
	}
	return math.Abs(r[0]) <= 1+tol && math.Abs(r[1]) <= 1+tol
}

// constants for inverse mapping
var (
	InvMapNit = 25
	InvMapTol = 1e-13
)
