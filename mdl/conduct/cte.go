// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Cte implements a constant conductivity
type Cte struct {
	Kval float64
}

// add model to factory
func init() {
	allocators["cte"] = func() Model { return new(Cte) }
}

// Init initialises this structure
func (o *Cte) Init(prms dbf.Params) (err error) {
	found := false
	for _, p := range prms {
		switch p.N {
		case "k":
			o.Kval, found = p.V, true
		default:
			return chk.Err("cte: parameter named %q is incorrect\n", p.N)
		}
	}
	if !found {
		return chk.Err("cte: parameter 'k' must be given")
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Cte) GetPrms(example bool) dbf.Params {
	return dbf.Params{&dbf.P{N: "k", V: 1}}
}

func (o Cte) K(u float64) float64    { return o.Kval }
func (o Cte) DkDu(u float64) float64 { return 0 }
func (o Cte) Degree() int            { return 0 }
