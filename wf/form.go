// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wf

// Kind tags the variant of a form
type Kind int

const (
	MatrixVol  Kind = iota // volumetric Jacobian block
	MatrixSurf             // surface Jacobian block
	VectorVol              // volumetric residual
	VectorSurf             // surface residual
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case MatrixVol:
		return "matrix-vol"
	case MatrixSurf:
		return "matrix-surf"
	case VectorVol:
		return "vector-vol"
	case VectorSurf:
		return "vector-surf"
	}
	return "unknown"
}

// Symmetry flags the structure of a matrix form
type Symmetry int

const (
	NonSym  Symmetry = iota // block (i,j) only
	Sym                     // block (j,i) equals the transpose of (i,j)
	AntiSym                 // block (j,i) equals minus the transpose of (i,j)
)

// Anywhere is the area tag matching every cell (volume forms) or every tagged face (surface forms)
const Anywhere = 0

// Ext is a read-only snapshot of a full coefficient vector used as an external field.
// Y must have one entry per equation of the space the form is assembled on
type Ext struct {
	Name  string    // name for messages
	Field int       // index of the field (key) the values are interpolated with
	Y     []float64 // [ndof] coefficients
}

// Form is implemented by all variants
type Form interface {
	Kind() Kind
	Row() int
	Tag() int
	Externals() []*Ext
}

// MatrixForm holds a Jacobian block integrand
type MatrixForm struct {
	Name string
	I, J int      // row (test field) and column (trial field)
	Area int      // cell tag (volume) or face tag (surface); Anywhere = all
	Sym  Symmetry // only volume forms may be symmetric
	Surf bool     // surface form
	Ext  []*Ext   // external fields

	Real MatrixFn[Real] // values
	Ord  MatrixFn[Ord]  // polynomial degree
	Cplx MatrixFn[Cplx] // complex-step; optional
}

// VectorForm holds a residual integrand
type VectorForm struct {
	Name string
	I    int    // row (test field)
	Area int    // cell tag (volume) or face tag (surface); Anywhere = all
	Surf bool   // surface form
	Ext  []*Ext // external fields

	Real VectorFn[Real] // values
	Ord  VectorFn[Ord]  // polynomial degree
	Cplx VectorFn[Cplx] // complex-step; optional
}

// NewMatrixForm returns a volumetric matrix form
func NewMatrixForm(i, j, area int, sym Symmetry, real MatrixFn[Real], ord MatrixFn[Ord]) *MatrixForm {
	return &MatrixForm{I: i, J: j, Area: area, Sym: sym, Real: real, Ord: ord}
}

// NewMatrixFormSurf returns a surface matrix form
func NewMatrixFormSurf(i, j, area int, real MatrixFn[Real], ord MatrixFn[Ord]) *MatrixForm {
	return &MatrixForm{I: i, J: j, Area: area, Surf: true, Real: real, Ord: ord}
}

// NewVectorForm returns a volumetric vector form
func NewVectorForm(i, area int, real VectorFn[Real], ord VectorFn[Ord]) *VectorForm {
	return &VectorForm{I: i, Area: area, Real: real, Ord: ord}
}

// NewVectorFormSurf returns a surface vector form
func NewVectorFormSurf(i, area int, real VectorFn[Real], ord VectorFn[Ord]) *VectorForm {
	return &VectorForm{I: i, Area: area, Surf: true, Real: real, Ord: ord}
}

// matrix form methods ///////////////////////////////////////////////////////////////////////////

func (o *MatrixForm) Kind() Kind {
	if o.Surf {
		return MatrixSurf
	}
	return MatrixVol
}

func (o *MatrixForm) Row() int          { return o.I }
func (o *MatrixForm) Tag() int          { return o.Area }
func (o *MatrixForm) Externals() []*Ext { return o.Ext }

// Applies tells whether the form acts on an entity with the given tag
func (o *MatrixForm) Applies(tag int) bool {
	return o.Area == Anywhere || o.Area == tag
}

// WithCplx sets the complex-step instantiation
func (o *MatrixForm) WithCplx(fn MatrixFn[Cplx]) *MatrixForm {
	o.Cplx = fn
	return o
}

// WithExt appends external fields
func (o *MatrixForm) WithExt(ext ...*Ext) *MatrixForm {
	o.Ext = append(o.Ext, ext...)
	return o
}

// Scaled returns a copy of this form multiplied by c and always evaluated at time t
func (o *MatrixForm) Scaled(c, t float64) *MatrixForm {
	res := *o
	res.Ext = append([]*Ext{}, o.Ext...)
	res.Real = scaleMat(o.Real, c, t)
	res.Ord = scaleMat(o.Ord, c, t)
	if o.Cplx != nil {
		res.Cplx = scaleMat(o.Cplx, c, t)
	}
	return &res
}

// vector form methods ///////////////////////////////////////////////////////////////////////////

func (o *VectorForm) Kind() Kind {
	if o.Surf {
		return VectorSurf
	}
	return VectorVol
}

func (o *VectorForm) Row() int          { return o.I }
func (o *VectorForm) Tag() int          { return o.Area }
func (o *VectorForm) Externals() []*Ext { return o.Ext }

// Applies tells whether the form acts on an entity with the given tag
func (o *VectorForm) Applies(tag int) bool {
	return o.Area == Anywhere || o.Area == tag
}

// WithCplx sets the complex-step instantiation
func (o *VectorForm) WithCplx(fn VectorFn[Cplx]) *VectorForm {
	o.Cplx = fn
	return o
}

// WithExt appends external fields
func (o *VectorForm) WithExt(ext ...*Ext) *VectorForm {
	o.Ext = append(o.Ext, ext...)
	return o
}

// Scaled returns a copy of this form multiplied by c and always evaluated at time t
func (o *VectorForm) Scaled(c, t float64) *VectorForm {
	res := *o
	res.Ext = append([]*Ext{}, o.Ext...)
	res.Real = scaleVec(o.Real, c, t)
	res.Ord = scaleVec(o.Ord, c, t)
	if o.Cplx != nil {
		res.Cplx = scaleVec(o.Cplx, c, t)
	}
	return &res
}

// Lagged returns a copy of this form multiplied by c, evaluated at time t, and with the
// unknowns of all neq fields replaced by the snapshot y. The result does not depend on the
// current iterate, thus it has no Jacobian counterpart
func (o *VectorForm) Lagged(c, t float64, neq int, y []float64) *VectorForm {
	res := *o
	next := len(o.Ext)
	res.Ext = append([]*Ext{}, o.Ext...)
	for k := 0; k < neq; k++ {
		res.Ext = append(res.Ext, &Ext{Name: "lagged", Field: k, Y: y})
	}
	res.Real = lagVec(o.Real, c, t, next)
	res.Ord = lagVec(o.Ord, c, t, next)
	if o.Cplx != nil {
		res.Cplx = lagVec(o.Cplx, c, t, next)
	}
	return &res
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////

func scaleMat[T Num[T]](fn MatrixFn[T], c, t float64) MatrixFn[T] {
	return func(a *MatArgs[T]) T {
		b := *a
		b.Time = t
		return fn(&b).Scale(c)
	}
}

func scaleVec[T Num[T]](fn VectorFn[T], c, t float64) VectorFn[T] {
	return func(a *VecArgs[T]) T {
		b := *a
		b.Time = t
		return fn(&b).Scale(c)
	}
}

func lagVec[T Num[T]](fn VectorFn[T], c, t float64, next int) VectorFn[T] {
	return func(a *VecArgs[T]) T {
		b := *a
		b.Time = t
		b.Ext = a.Ext[:next]
		b.Uext = a.Ext[next:]
		return fn(&b).Scale(c)
	}
}
