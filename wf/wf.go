// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wf

import "github.com/cpmech/gosl/chk"

// WeakForm holds all forms of a system with Neq fields.
//
//	Note: forms must not be added while an assembly is running
type WeakForm struct {
	Neq    int           // number of fields (equations per node)
	Mfvol  []*MatrixForm // volumetric matrix forms
	Mfsurf []*MatrixForm // surface matrix forms
	Vfvol  []*VectorForm // volumetric vector forms
	Vfsurf []*VectorForm // surface vector forms
}

// New returns a new empty weak form
func New(neq int) *WeakForm {
	return &WeakForm{Neq: neq}
}

// AddMatrixForm adds a matrix form
func (o *WeakForm) AddMatrixForm(f *MatrixForm) error {
	if f.I < 0 || f.I >= o.Neq || f.J < 0 || f.J >= o.Neq {
		return chk.Err("matrix form (%d,%d) is out of range; the number of fields is %d", f.I, f.J, o.Neq)
	}
	if f.Real == nil || f.Ord == nil {
		return chk.Err("matrix form (%d,%d) requires both value and order integrands", f.I, f.J)
	}
	if f.Surf {
		if f.Sym != NonSym {
			return chk.Err("surface matrix form (%d,%d) cannot be symmetric", f.I, f.J)
		}
		o.Mfsurf = append(o.Mfsurf, f)
		return nil
	}
	o.Mfvol = append(o.Mfvol, f)
	return nil
}

// AddVectorForm adds a vector form
func (o *WeakForm) AddVectorForm(f *VectorForm) error {
	if f.I < 0 || f.I >= o.Neq {
		return chk.Err("vector form %d is out of range; the number of fields is %d", f.I, o.Neq)
	}
	if f.Real == nil || f.Ord == nil {
		return chk.Err("vector form %d requires both value and order integrands", f.I)
	}
	if f.Surf {
		o.Vfsurf = append(o.Vfsurf, f)
		return nil
	}
	o.Vfvol = append(o.Vfvol, f)
	return nil
}

// RegisterMatrixForm adds a volumetric matrix form given by its integrands
func (o *WeakForm) RegisterMatrixForm(row, col, tag int, sym Symmetry, real MatrixFn[Real], ord MatrixFn[Ord]) error {
	return o.AddMatrixForm(NewMatrixForm(row, col, tag, sym, real, ord))
}

// RegisterMatrixFormSurf adds a surface matrix form given by its integrands
func (o *WeakForm) RegisterMatrixFormSurf(row, col, tag int, real MatrixFn[Real], ord MatrixFn[Ord]) error {
	return o.AddMatrixForm(NewMatrixFormSurf(row, col, tag, real, ord))
}

// RegisterVectorForm adds a volumetric vector form given by its integrands
func (o *WeakForm) RegisterVectorForm(row, tag int, real VectorFn[Real], ord VectorFn[Ord]) error {
	return o.AddVectorForm(NewVectorForm(row, tag, real, ord))
}

// RegisterVectorFormSurf adds a surface vector form given by its integrands
func (o *WeakForm) RegisterVectorFormSurf(row, tag int, real VectorFn[Real], ord VectorFn[Ord]) error {
	return o.AddVectorForm(NewVectorFormSurf(row, tag, real, ord))
}

// MatrixForms returns all matrix forms; volumetric first
func (o *WeakForm) MatrixForms() (res []*MatrixForm) {
	res = append(res, o.Mfvol...)
	return append(res, o.Mfsurf...)
}

// VectorForms returns all vector forms; volumetric first
func (o *WeakForm) VectorForms() (res []*VectorForm) {
	res = append(res, o.Vfvol...)
	return append(res, o.Vfsurf...)
}

// Forms returns all forms through the common interface
func (o *WeakForm) Forms() (res []Form) {
	for _, f := range o.MatrixForms() {
		res = append(res, f)
	}
	for _, f := range o.VectorForms() {
		res = append(res, f)
	}
	return
}

// Externals returns all distinct external fields
func (o *WeakForm) Externals() (res []*Ext) {
	seen := make(map[*Ext]bool)
	for _, f := range o.Forms() {
		for _, e := range f.Externals() {
			if !seen[e] {
				seen[e] = true
				res = append(res, e)
			}
		}
	}
	return
}
