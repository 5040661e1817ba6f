// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package conduct implements models for thermal conductivity depending on temperature
package conduct

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines conductivity models λ(u)
type Model interface {
	Init(prms dbf.Params) error      // Init initialises this structure
	GetPrms(example bool) dbf.Params // gets (an example) of parameters
	K(u float64) float64             // K returns λ
	DkDu(u float64) float64          // DkDu returns ∂λ/∂u
	Degree() int                     // Degree returns the polynomial degree approximating λ
}

// PointsSetter is implemented by models defined by tabulated points
type PointsSetter interface {
	SetPoints(xs, ys []float64) error
}

// New conductivity model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'conduct' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}
