// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/blackvladimir/hermes/inp"
	"github.com/blackvladimir/hermes/shp"
	"github.com/blackvladimir/hermes/wf"
	"github.com/cpmech/gosl/chk"
)

// PointData holds values of all basis functions of one cell at the integration points of the
// cell (volume) or of one of its faces (surface)
type PointData struct {
	N     int                 // number of integration points
	Wt    []float64           // [N] weights times the Jacobian (or face length) determinant
	Basis []*wf.Func[wf.Real] // [nverts] basis functions and their gradients
	Geo   *wf.Geom[wf.Real]   // coordinates and normals
	S     [][]float64         // [N][nverts] basis values; same as Basis.Val (point-major)
}

// Interp interpolates the coefficients y (full vector) of a field with equations eqs
func (o *PointData) Interp(res *wf.Func[wf.Real], y []float64, eqs []int) {
	for i := 0; i < o.N; i++ {
		var u, dx, dy float64
		for m, eq := range eqs {
			b := o.Basis[m]
			u += float64(b.Val[i]) * y[eq]
			dx += float64(b.Dx[i]) * y[eq]
			dy += float64(b.Dy[i]) * y[eq]
		}
		res.Val[i], res.Dx[i], res.Dy[i] = wf.Real(u), wf.Real(dx), wf.Real(dy)
	}
}

// Evaluator computes integration point data on cells and faces.
//  Note: implementations need not be safe for concurrent use; allocate one per goroutine
type Evaluator interface {
	Volume(c *inp.Cell, degree int) (*PointData, error)      // data at points exact for degree
	Face(c *inp.Cell, iface, degree int) (*PointData, error) // data at points on face iface
}

// ShapeEvaluator implements Evaluator with isoparametric shape functions
type ShapeEvaluator struct {
	Msh    *inp.Mesh
	shapes map[string]*shp.Shape // scratch shapes
	cid    int                   // cell in cache
	x      [][]float64           // coordinates of cell in cache
	vol    map[int]*PointData    // degree => volume data of cell in cache
	face   map[[2]int]*PointData // {face,degree} => face data of cell in cache
}

// NewShapeEvaluator returns a new evaluator
func NewShapeEvaluator(msh *inp.Mesh) *ShapeEvaluator {
	return &ShapeEvaluator{Msh: msh, shapes: make(map[string]*shp.Shape), cid: -1}
}

// Volume implements Evaluator
func (o *ShapeEvaluator) Volume(c *inp.Cell, degree int) (pd *PointData, err error) {
	s, err := o.load(c)
	if err != nil {
		return
	}
	if pd, ok := o.vol[degree]; ok {
		return pd, nil
	}
	ips, err := shp.IpsByDegree(shp.IpsKind(s), degree)
	if err != nil {
		return
	}
	pd = newPointData(len(ips), s.Nverts)
	for i, ip := range ips {
		err = s.CalcAtIp(o.x, ip, true)
		if err != nil {
			return nil, chk.Err("cell %d: %v", c.Id, err)
		}
		pd.Wt[i] = ip.W * s.J
		pd.set(i, s, o.x, c.Tag)
	}
	pd.Geo.Id = c.Id
	o.vol[degree] = pd
	return
}

// Face implements Evaluator
func (o *ShapeEvaluator) Face(c *inp.Cell, iface, degree int) (pd *PointData, err error) {
	s, err := o.load(c)
	if err != nil {
		return
	}
	key := [2]int{iface, degree}
	if pd, ok := o.face[key]; ok {
		return pd, nil
	}
	ips, err := shp.IpsByDegree("lin", degree)
	if err != nil {
		return
	}
	pd = newPointData(len(ips), s.Nverts)
	for i, ipf := range ips {
		err = s.CalcAtFaceIp(o.x, ipf, iface)
		if err != nil {
			return nil, chk.Err("cell %d: %v", c.Id, err)
		}
		jf := math.Hypot(s.Fnvec[0], s.Fnvec[1])
		nx, ny := s.Fnvec[0]/jf, s.Fnvec[1]/jf
		err = s.CalcAtIp(o.x, s.FaceIpToElem(ipf, iface), true)
		if err != nil {
			return nil, chk.Err("cell %d: %v", c.Id, err)
		}
		pd.Wt[i] = ipf.W * jf
		pd.set(i, s, o.x, c.FTags[iface])
		pd.Geo.Nx[i], pd.Geo.Ny[i] = nx, ny
	}
	pd.Geo.Id = c.Id
	o.face[key] = pd
	return
}

// load sets the cell in cache
func (o *ShapeEvaluator) load(c *inp.Cell) (s *shp.Shape, err error) {
	s, ok := o.shapes[c.Type]
	if !ok {
		s, err = shp.New(c.Type)
		if err != nil {
			return
		}
		o.shapes[c.Type] = s
	}
	if c.Id != o.cid {
		o.cid = c.Id
		o.x = o.Msh.ExtractCellCoords(c.Id)
		o.vol = make(map[int]*PointData)
		o.face = make(map[[2]int]*PointData)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func newPointData(nip, nverts int) (o *PointData) {
	o = &PointData{N: nip, Wt: make([]float64, nip)}
	o.Basis = make([]*wf.Func[wf.Real], nverts)
	for m := 0; m < nverts; m++ {
		o.Basis[m] = wf.NewFunc[wf.Real](nip)
	}
	o.Geo = wf.NewGeom[wf.Real](nip)
	o.S = make([][]float64, nip)
	for i := 0; i < nip; i++ {
		o.S[i] = make([]float64, nverts)
	}
	return
}

// set copies shape data at point i
func (o *PointData) set(i int, s *shp.Shape, x [][]float64, tag int) {
	var xi, yi float64
	for m := 0; m < s.Nverts; m++ {
		b := o.Basis[m]
		b.Val[i] = wf.Real(s.S[m])
		b.Dx[i] = wf.Real(s.G[m][0])
		b.Dy[i] = wf.Real(s.G[m][1])
		o.S[i][m] = s.S[m]
		xi += s.S[m] * x[0][m]
		yi += s.S[m] * x[1][m]
	}
	o.Geo.X[i], o.Geo.Y[i] = wf.Real(xi), wf.Real(yi)
	o.Geo.Xc[i], o.Geo.Yc[i] = xi, yi
	o.Geo.Tag = tag
}
