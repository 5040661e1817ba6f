// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Pow implements λ = k0・(1 + c・u^α)
type Pow struct {
	K0  float64 // reference conductivity
	C   float64 // coefficient
	Alp float64 // exponent
}

// add model to factory
func init() {
	allocators["pow"] = func() Model { return new(Pow) }
}

// Init initialises this structure
func (o *Pow) Init(prms dbf.Params) (err error) {
	o.K0, o.C = 1, 1
	found := false
	for _, p := range prms {
		switch p.N {
		case "k0":
			o.K0 = p.V
		case "c":
			o.C = p.V
		case "alp":
			o.Alp, found = p.V, true
		default:
			return chk.Err("pow: parameter named %q is incorrect\n", p.N)
		}
	}
	if !found {
		return chk.Err("pow: parameter 'alp' must be given")
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Pow) GetPrms(example bool) dbf.Params {
	return dbf.Params{
		&dbf.P{N: "k0", V: 1},
		&dbf.P{N: "c", V: 1},
		&dbf.P{N: "alp", V: 4},
	}
}

// K returns λ
func (o Pow) K(u float64) float64 {
	return o.K0 * (1 + o.C*math.Pow(u, o.Alp))
}

// DkDu returns ∂λ/∂u
func (o Pow) DkDu(u float64) float64 {
	if o.Alp == 0 {
		return 0
	}
	return o.K0 * o.C * o.Alp * math.Pow(u, o.Alp-1)
}

// Degree returns the polynomial degree approximating λ
func (o Pow) Degree() int {
	return int(math.Ceil(math.Abs(o.Alp)))
}
