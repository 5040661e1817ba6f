// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/blackvladimir/hermes/inp"
	"github.com/cpmech/gosl/chk"
)

// TimeSpace defines functions of time and space such as prescribed values
type TimeSpace interface {
	F(t float64, x []float64) float64
}

// TsFunc wraps a Go function as a TimeSpace
type TsFunc func(t float64, x []float64) float64

// F evaluates the function
func (o TsFunc) F(t float64, x []float64) float64 { return o(t, x) }

// Dof holds information about a degree-of-freedom == solution variable
type Dof struct {
	Key string // primary variable key. e.g. "u"
	Eq  int    // equation number
}

// Node holds node dofs information
type Node struct {
	Dofs []*Dof    // degrees-of-freedom == solution variables
	Vert *inp.Vert // pointer to Vertex
}

// GetEq returns the equation number corresponding to key or -1 if not found
func (o *Node) GetEq(key string) int {
	for _, dof := range o.Dofs {
		if dof.Key == key {
			return dof.Eq
		}
	}
	return -1
}

// Space holds the mapping of nodal degrees-of-freedom to equation numbers.
//  Equations are numbered node-by-node in the order vertices are first found in cells.
//  Equations constrained by essential conditions are eliminated from the linear systems;
//  the remaining "free" equations are numbered again in increasing order.
type Space struct {
	Msh      *inp.Mesh    // the mesh
	Keys     []string     // names of fields; index in Keys == field index
	Nodes    []*Node      // nodes with dofs. Note: indices in Nodes do NOT correspond to vertex Ids
	Vid2node []*Node      // [nverts] VertexId => node; nil if vertex is not used by any cell
	Umap     [][][]int    // [ncells][nfields][nverts in cell] equation numbers
	EssenBcs EssentialBcs // essential boundary conditions
	Ndof     int          // total number of equations
	Nfree    int          // number of free equations
	Free     []int        // [ndof] equation => index of free equation or -1 if prescribed
	Free2eq  []int        // [nfree] free index => equation
	built    bool         // Build has been called after the last change
}

// NewSpace allocates a new space for fields with given keys on all cells of mesh
func NewSpace(msh *inp.Mesh, keys ...string) (o *Space, err error) {
	if len(keys) == 0 {
		return nil, chk.Err("NewSpace: at least one field key must be given")
	}
	o = &Space{Msh: msh, Keys: keys}
	o.Vid2node = make([]*Node, len(msh.Verts))
	o.Umap = make([][][]int, len(msh.Cells))
	for _, c := range msh.Cells {
		for _, vid := range c.Verts {
			if o.Vid2node[vid] != nil {
				continue
			}
			nod := &Node{Vert: msh.Verts[vid]}
			for _, key := range keys {
				nod.Dofs = append(nod.Dofs, &Dof{key, o.Ndof})
				o.Ndof++
			}
			o.Vid2node[vid] = nod
			o.Nodes = append(o.Nodes, nod)
		}
		o.Umap[c.Id] = make([][]int, len(keys))
		for k := range keys {
			o.Umap[c.Id][k] = make([]int, len(c.Verts))
			for m, vid := range c.Verts {
				o.Umap[c.Id][k][m] = o.Vid2node[vid].Dofs[k].Eq
			}
		}
	}
	o.EssenBcs.Init()
	o.Build()
	return
}

// KeyIndex returns the field index corresponding to key or -1 if not found
func (o *Space) KeyIndex(key string) int {
	for i, k := range o.Keys {
		if k == key {
			return i
		}
	}
	return -1
}

// SetEssential prescribes values of field key on all vertices of faces tagged with facetag
func (o *Space) SetEssential(key string, facetag int, fcn TimeSpace) (err error) {
	cells, ok := o.Msh.FaceTag2cells[facetag]
	if !ok {
		return chk.Err("SetEssential: cannot find faces with tag = %d", facetag)
	}
	var nodes []*Node
	for _, cf := range cells {
		for _, l := range cf.C.Shp.FaceLocalVerts[cf.Fid] {
			nodes = append(nodes, o.Vid2node[cf.C.Verts[l]])
		}
	}
	return o.setEssential(key, nodes, fcn)
}

// SetEssentialVert prescribes values of field key on all vertices tagged with verttag
func (o *Space) SetEssentialVert(key string, verttag int, fcn TimeSpace) (err error) {
	verts, ok := o.Msh.VertTag2verts[verttag]
	if !ok {
		return chk.Err("SetEssentialVert: cannot find vertices with tag = %d", verttag)
	}
	var nodes []*Node
	for _, v := range verts {
		if o.Vid2node[v.Id] != nil {
			nodes = append(nodes, o.Vid2node[v.Id])
		}
	}
	return o.setEssential(key, nodes, fcn)
}

// Build numbers free equations after essential conditions have been set
func (o *Space) Build() {
	o.EssenBcs.Build()
	o.Free = make([]int, o.Ndof)
	o.Free2eq = make([]int, 0, o.Ndof)
	for eq := 0; eq < o.Ndof; eq++ {
		if o.EssenBcs.Has(eq) {
			o.Free[eq] = -1
			continue
		}
		o.Free[eq] = len(o.Free2eq)
		o.Free2eq = append(o.Free2eq, eq)
	}
	o.Nfree = len(o.Free2eq)
	o.built = true
}

// Scatter sets the full vector y from free values x and prescribed values at time t
//  y -- [ndof] output
//  x -- [nfree] free values
func (o *Space) Scatter(y, x []float64, t float64) {
	o.checkBuilt()
	for i, eq := range o.Free2eq {
		y[eq] = x[i]
	}
	o.EssenBcs.Values(y, t)
}

// Gather extracts the free values x from the full vector y
//  x -- [nfree] output
//  y -- [ndof] full vector
func (o *Space) Gather(x, y []float64) {
	o.checkBuilt()
	for i, eq := range o.Free2eq {
		x[i] = y[eq]
	}
}

// Interpolate sets the nodal values of field key in the full vector y with fcn at time t
func (o *Space) Interpolate(y []float64, key string, fcn TimeSpace, t float64) (err error) {
	k := o.KeyIndex(key)
	if k < 0 {
		return chk.Err("Interpolate: cannot find field %q", key)
	}
	for _, nod := range o.Nodes {
		y[nod.Dofs[k].Eq] = fcn.F(t, nod.Vert.C)
	}
	return
}

// NewVectors allocates the full and free vectors
func (o *Space) NewVectors() (y, x []float64) {
	return make([]float64, o.Ndof), make([]float64, o.Nfree)
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Space) setEssential(key string, nodes []*Node, fcn TimeSpace) (err error) {
	if fcn == nil {
		return chk.Err("essential condition on %q requires a function", key)
	}
	k := o.KeyIndex(key)
	if k < 0 {
		return chk.Err("cannot find field %q", key)
	}
	for _, nod := range nodes {
		o.EssenBcs.Set(key, nod.Dofs[k].Eq, nod.Vert.C, fcn)
	}
	o.built = false
	return
}

func (o *Space) checkBuilt() {
	if !o.built {
		chk.Panic("Space: Build must be called after setting essential conditions")
	}
}
