// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import "github.com/cpmech/gosl/chk"

// RectMesh builds a structured mesh of a rectangle
//  typ  -- "tri3", "tri6", "qua4", "qua8" or "qua9"
//  nx   -- number of divisions along x
//  ny   -- number of divisions along y
//  ctag -- tag of cells
//  ftags -- tags of the bottom, right, top and left sides; also given to boundary vertices
func RectMesh(typ string, nx, ny int, xmin, xmax, ymin, ymax float64, ctag int, ftags [4]int) (o *Mesh, err error) {

	// check
	if nx < 1 || ny < 1 {
		return nil, chk.Err("number of divisions must be positive: nx=%d ny=%d", nx, ny)
	}
	order := 1
	switch typ {
	case "tri3", "qua4":
	case "tri6", "qua8", "qua9":
		order = 2
	default:
		return nil, chk.Err("cannot generate rectangular mesh with %q cells", typ)
	}

	// vertices
	o = new(Mesh)
	npx, npy := order*nx+1, order*ny+1
	grid := make([][]int, npx)
	for i := 0; i < npx; i++ {
		grid[i] = make([]int, npy)
	}
	for j := 0; j < npy; j++ {
		for i := 0; i < npx; i++ {
			grid[i][j] = -1
			if typ == "qua8" && i%2 == 1 && j%2 == 1 {
				continue
			}
			tag := 0
			switch {
			case j == 0:
				tag = ftags[0]
			case j == npy-1:
				tag = ftags[2]
			case i == npx-1:
				tag = ftags[1]
			case i == 0:
				tag = ftags[3]
			}
			x := xmin + (xmax-xmin)*float64(i)/float64(npx-1)
			y := ymin + (ymax-ymin)*float64(j)/float64(npy-1)
			grid[i][j] = len(o.Verts)
			o.Verts = append(o.Verts, &Vert{Id: len(o.Verts), Tag: tag, C: []float64{x, y}})
		}
	}

	// cells
	add := func(verts []int, ft []int) {
		o.Cells = append(o.Cells, &Cell{Id: len(o.Cells), Tag: ctag, Type: typ, Verts: verts, FTags: ft})
	}
	for ey := 0; ey < ny; ey++ {
		for ex := 0; ex < nx; ex++ {
			var bot, rgt, top, lft int
			if ey == 0 {
				bot = ftags[0]
			}
			if ex == nx-1 {
				rgt = ftags[1]
			}
			if ey == ny-1 {
				top = ftags[2]
			}
			if ex == 0 {
				lft = ftags[3]
			}
			i, j := order*ex, order*ey
			g := func(a, b int) int { return grid[i+a][j+b] }
			switch typ {
			case "qua4":
				add([]int{g(0, 0), g(1, 0), g(1, 1), g(0, 1)}, []int{bot, rgt, top, lft})
			case "qua8":
				add([]int{g(0, 0), g(2, 0), g(2, 2), g(0, 2), g(1, 0), g(2, 1), g(1, 2), g(0, 1)}, []int{bot, rgt, top, lft})
			case "qua9":
				add([]int{g(0, 0), g(2, 0), g(2, 2), g(0, 2), g(1, 0), g(2, 1), g(1, 2), g(0, 1), g(1, 1)}, []int{bot, rgt, top, lft})
			case "tri3":
				add([]int{g(0, 0), g(1, 0), g(1, 1)}, []int{bot, rgt, 0})
				add([]int{g(0, 0), g(1, 1), g(0, 1)}, []int{0, top, lft})
			case "tri6":
				add([]int{g(0, 0), g(2, 0), g(2, 2), g(1, 0), g(2, 1), g(1, 1)}, []int{bot, rgt, 0})
				add([]int{g(0, 0), g(2, 2), g(0, 2), g(1, 1), g(1, 2), g(0, 1)}, []int{0, top, lft})
			}
		}
	}

	// derived data
	err = o.Init()
	if err != nil {
		return nil, err
	}
	return
}
