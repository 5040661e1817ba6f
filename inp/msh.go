// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"path/filepath"

	"github.com/blackvladimir/hermes/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Vert holds vertex data
type Vert struct {
	Id  int       `json:"i"` // id
	Tag int       `json:"t"` // tag
	C   []float64 `json:"c"` // coordinates (size==2)

	// derived
	SharedBy []int `json:"-"` // cells sharing this vertex
}

// Cell holds cell data
type Cell struct {
	Id    int    `json:"i"`  // id
	Tag   int    `json:"t"`  // tag
	Type  string `json:"y"`  // geometry type; e.g. "qua8"
	Verts []int  `json:"v"`  // vertices
	FTags []int  `json:"ft"` // edge (2D) tags; 0 means no tag

	// derived
	Shp *shp.Shape `json:"-"` // shape structure (prototype; not for concurrent calculations)
}

// CellFaceId structure
type CellFaceId struct {
	C   *Cell // cell
	Fid int   // face id
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from JSON
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells

	// derived
	FnamePath  string  // complete filename path
	Ndim       int     // space dimension
	Xmin, Xmax float64 // min and max x-coordinate
	Ymin, Ymax float64 // min and max y-coordinate

	// derived: maps
	VertTag2verts  map[int][]*Vert      // vertex tag => set of vertices
	CellTag2cells  map[int][]*Cell      // cell tag => set of cells
	FaceTag2cells  map[int][]CellFaceId // face tag => set of cells
	CellType2cells map[string][]int     // cell type => set of cells
}

// ReadMsh reads a mesh for FE analyses
//  Note: returns nil on errors
func ReadMsh(dir, fn string) (o *Mesh, err error) {

	// new mesh
	o = new(Mesh)

	// read file
	o.FnamePath = filepath.Join(dir, fn)
	b, err := readFile(o.FnamePath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", o.FnamePath, err)
	}

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot decode mesh file %q:\n%v", o.FnamePath, err)
	}

	// derived data
	err = o.Init()
	if err != nil {
		return nil, err
	}
	return
}

// Init checks the mesh and computes derived data
func (o *Mesh) Init() (err error) {

	// check
	if len(o.Verts) < 2 {
		return chk.Err("mesh must have at least 2 vertices")
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh must have at least 1 cell")
	}

	// vertex related derived data
	o.Ndim = 2
	o.Xmin, o.Xmax = math.Inf(1), math.Inf(-1)
	o.Ymin, o.Ymax = math.Inf(1), math.Inf(-1)
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {
		if v.Id != i {
			return chk.Err("vertices ids must coincide with order in \"verts\" list. %d != %d\n", v.Id, i)
		}
		if len(v.C) != o.Ndim {
			return chk.Err("vertex %d must have exactly %d coordinates", i, o.Ndim)
		}
		if v.Tag != 0 {
			o.VertTag2verts[v.Tag] = append(o.VertTag2verts[v.Tag], v)
		}
		v.SharedBy = nil
		o.Xmin = math.Min(o.Xmin, v.C[0])
		o.Xmax = math.Max(o.Xmax, v.C[0])
		o.Ymin = math.Min(o.Ymin, v.C[1])
		o.Ymax = math.Max(o.Ymax, v.C[1])
	}

	// cell related derived data
	o.CellTag2cells = make(map[int][]*Cell)
	o.FaceTag2cells = make(map[int][]CellFaceId)
	o.CellType2cells = make(map[string][]int)
	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("cells ids must coincide with order in \"cells\" list. %d != %d\n", c.Id, i)
		}
		c.Shp, err = shp.New(c.Type)
		if err != nil {
			return chk.Err("cell %d: %v", i, err)
		}
		if c.Shp.Gndim != o.Ndim {
			return chk.Err("cell %d: geometry %q cannot be used in %dD meshes", i, c.Type, o.Ndim)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return chk.Err("cell %d: number of vertices (%d) is incorrect for %q (%d)", i, len(c.Verts), c.Type, c.Shp.Nverts)
		}
		for _, vid := range c.Verts {
			if vid < 0 || vid >= len(o.Verts) {
				return chk.Err("cell %d: vertex id %d is out of range", i, vid)
			}
			o.Verts[vid].SharedBy = append(o.Verts[vid].SharedBy, c.Id)
		}
		if len(c.FTags) > 0 && len(c.FTags) != c.Shp.Nfaces() {
			return chk.Err("cell %d: number of face tags (%d) is incorrect for %q (%d)", i, len(c.FTags), c.Type, c.Shp.Nfaces())
		}
		for j, ftag := range c.FTags {
			if ftag != 0 {
				o.FaceTag2cells[ftag] = append(o.FaceTag2cells[ftag], CellFaceId{c, j})
			}
		}
		o.CellTag2cells[c.Tag] = append(o.CellTag2cells[c.Tag], c)
		o.CellType2cells[c.Type] = append(o.CellType2cells[c.Type], c.Id)
	}
	return
}

// ExtractCellCoords extracts cell coordinates
//  X -- matrix with coordinates [ndim][nverts]
func (o *Mesh) ExtractCellCoords(cid int) (X [][]float64) {
	c := o.Cells[cid]
	X = make([][]float64, o.Ndim)
	for i := 0; i < o.Ndim; i++ {
		X[i] = make([]float64, len(c.Verts))
		for j, v := range c.Verts {
			X[i][j] = o.Verts[v].C[i]
		}
	}
	return
}

// String returns a JSON representation of *Vert
func (o *Vert) String() string {
	l := io.Sf("{\"i\":%4d, \"t\":%3d, \"c\":[", o.Id, o.Tag)
	for i, x := range o.C {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%8g", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Cell
func (o *Cell) String() string {
	l := io.Sf("{\"i\":%d, \"t\":%d, \"y\":%q, \"v\":[", o.Id, o.Tag, o.Type)
	for i, x := range o.Verts {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "]"
	if len(o.FTags) > 0 {
		l += ", \"ft\":["
		for i, x := range o.FTags {
			if i > 0 {
				l += ", "
			}
			l += io.Sf("%d", x)
		}
		l += "]"
	}
	l += "}"
	return l
}

// String returns a JSON representation of *Mesh
func (o Mesh) String() string {
	l := "{\n  \"verts\" : [\n"
	for i, x := range o.Verts {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ],\n  \"cells\" : [\n"
	for i, x := range o.Cells {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ]\n}"
	return l
}
