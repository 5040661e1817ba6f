// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Summary records the solution at output times
type Summary struct {
	Times   []float64   // [nout] output times
	Ys      [][]float64 // [nout][ndof] solutions at output times
	Its     [][]int     // [nsteps][nstages] Newton corrections of accepted steps
	Nsteps  int         // number of accepted steps
	Ndiverg int         // number of rejected steps
}

// Save records a copy of y at time t
func (o *Summary) Save(t float64, y []float64) {
	o.Times = append(o.Times, t)
	o.Ys = append(o.Ys, append([]float64{}, y...))
}

// Nearest returns the index of the output time nearest to t
func (o *Summary) Nearest(t float64) (idx int, err error) {
	n := len(o.Times)
	if n == 0 {
		return -1, chk.Err("summary has no output")
	}
	idx = sort.SearchFloat64s(o.Times, t)
	if idx == n {
		return n - 1, nil
	}
	if idx > 0 && t-o.Times[idx-1] < o.Times[idx]-t {
		idx--
	}
	return
}
