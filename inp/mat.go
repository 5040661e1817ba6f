// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/blackvladimir/hermes/mdl/conduct"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Material holds material data
type Material struct {

	// input
	Name  string     `json:"name"`  // name of material
	Model string     `json:"model"` // name of conductivity model; e.g. "cte", "pow", "spline"
	Extra string     `json:"extra"` // extra information about this material
	Prms  dbf.Params `json:"prms"`  // prms holds all model parameters for this material
	Xs    []float64  `json:"xs"`    // tabulated arguments (spline models)
	Ys    []float64  `json:"ys"`    // tabulated values (spline models)

	// derived
	Conduct conduct.Model `json:"-" yaml:"-"` // pointer to actual conductivity model
}

// MatsData holds materials
type MatsData []*Material

// Init allocates and initialises the conductivity model
func (o *Material) Init() (err error) {
	o.Conduct, err = conduct.New(o.Model)
	if err != nil {
		return chk.Err("material %q: %v", o.Name, err)
	}
	if len(o.Xs) > 0 || len(o.Ys) > 0 {
		setter, ok := o.Conduct.(conduct.PointsSetter)
		if !ok {
			return chk.Err("material %q: model %q does not accept tabulated points", o.Name, o.Model)
		}
		err = setter.SetPoints(o.Xs, o.Ys)
		if err != nil {
			return chk.Err("material %q: %v", o.Name, err)
		}
	}
	err = o.Conduct.Init(o.Prms)
	if err != nil {
		return chk.Err("material %q: %v", o.Name, err)
	}
	return
}

// Get returns material by name
//  Note: returns nil if not found
func (o MatsData) Get(name string) *Material {
	for _, mat := range o {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// String prints materials
func (o MatsData) String() string {
	l := "  \"materials\" : [\n"
	for i, m := range o {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    {\"name\":%q, \"model\":%q, \"nprms\":%d, \"npoints\":%d}", m.Name, m.Model, len(m.Prms), len(m.Xs))
	}
	l += "\n  ]"
	return l
}
