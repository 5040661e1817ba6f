// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/io"
)

// EssentialBc holds information about one prescribed equation.
// Prescribed equations are eliminated from the linear systems:
//
//      y[Eq] = Fcn(t, X)
type EssentialBc struct {
	Key string    // key of field; e.g. "u"
	Eq  int       // equation number
	X   []float64 // coordinates of node
	Fcn TimeSpace // function that gives the prescribed value
}

// EbcArray is an array of EssentialBc's
type EbcArray []*EssentialBc

// EssentialBcs implements a structure to record the definition of essential bcs
type EssentialBcs struct {
	Bcs    EbcArray    // active essential bcs
	eq2idx map[int]int // equation => index in Bcs
}

// Init initialises this structure
func (o *EssentialBcs) Init() {
	o.Bcs = make([]*EssentialBc, 0)
	o.eq2idx = make(map[int]int)
}

// Set sets or replaces the constraint on equation eq
func (o *EssentialBcs) Set(key string, eq int, x []float64, fcn TimeSpace) {
	if idx, ok := o.eq2idx[eq]; ok {
		bc := o.Bcs[idx]
		bc.Key, bc.X, bc.Fcn = key, x, fcn
		return
	}
	o.eq2idx[eq] = len(o.Bcs)
	o.Bcs = append(o.Bcs, &EssentialBc{key, eq, x, fcn})
}

// Build sorts bcs by equation number
func (o *EssentialBcs) Build() {
	sort.Sort(o.Bcs)
	for i, bc := range o.Bcs {
		o.eq2idx[bc.Eq] = i
	}
}

// Has tells whether equation eq is prescribed
func (o *EssentialBcs) Has(eq int) bool {
	_, ok := o.eq2idx[eq]
	return ok
}

// Values sets the prescribed values at time t into the full vector y
func (o *EssentialBcs) Values(y []float64, t float64) {
	for _, bc := range o.Bcs {
		y[bc.Eq] = bc.Fcn.F(t, bc.X)
	}
}

// List returns a simple list logging bcs at time t
func (o *EssentialBcs) List(t float64) (l string) {
	l = "\n==================================================================\n"
	l += io.Sf("%8s%8s%25s%25s\n", "eq", "key", "value @ t=0", io.Sf("value @ t=%g", t))
	l += "------------------------------------------------------------------\n"
	for _, bc := range o.Bcs {
		l += io.Sf("%8d%8s%25.13f%25.13f\n", bc.Eq, bc.Key, bc.Fcn.F(0, bc.X), bc.Fcn.F(t, bc.X))
	}
	l += "==================================================================\n"
	return
}

// functions to implement Sort interface
func (o EbcArray) Len() int           { return len(o) }
func (o EbcArray) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o EbcArray) Less(i, j int) bool { return o[i].Eq < o[j].Eq }
