// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wf

// Func holds values and first derivatives of a field (or of a basis function) at the
// integration points of one element
type Func[T any] struct {
	Val []T // [nip] values
	Dx  []T // [nip] ∂/∂x
	Dy  []T // [nip] ∂/∂y
}

// NewFunc allocates a new Func with n points
func NewFunc[T any](n int) *Func[T] {
	return &Func[T]{make([]T, n), make([]T, n), make([]T, n)}
}

// Grad returns the gradient at point i
func (o *Func[T]) Grad(i int) (dx, dy T) {
	return o.Dx[i], o.Dy[i]
}

// Geom holds geometric data at integration points
type Geom[T any] struct {
	X, Y   []T       // [nip] coordinates in the numeric domain of the integrand
	Xc, Yc []float64 // [nip] coordinates as plain numbers; zero when estimating orders
	Nx, Ny []float64 // [nip] unit outward normal (surface forms only)
	Tag    int       // tag of cell (volume) or face (surface)
	Id     int       // id of cell
}

// NewGeom allocates a new Geom with n points
func NewGeom[T any](n int) *Geom[T] {
	return &Geom[T]{
		X: make([]T, n), Y: make([]T, n),
		Xc: make([]float64, n), Yc: make([]float64, n),
		Nx: make([]float64, n), Ny: make([]float64, n),
	}
}

// MatArgs holds the arguments of matrix form integrands
type MatArgs[T any] struct {
	N    int        // number of integration points
	Wt   []float64  // [N] weights times the Jacobian determinant
	Uext []*Func[T] // [neq] current iterate of all fields
	U    *Func[T]   // trial (basis) function
	V    *Func[T]   // test (basis) function
	E    *Geom[T]   // geometry
	Ext  []*Func[T] // external fields, in the order the form declared them
	Time float64    // current time
}

// VecArgs holds the arguments of vector form integrands
type VecArgs[T any] struct {
	N    int        // number of integration points
	Wt   []float64  // [N] weights times the Jacobian determinant
	Uext []*Func[T] // [neq] current iterate of all fields
	V    *Func[T]   // test (basis) function
	E    *Geom[T]   // geometry
	Ext  []*Func[T] // external fields, in the order the form declared them
	Time float64    // current time
}

// MatrixFn defines the integrand of a matrix form
type MatrixFn[T any] func(a *MatArgs[T]) T

// VectorFn defines the integrand of a vector form
type VectorFn[T any] func(a *VecArgs[T]) T

// helpers ///////////////////////////////////////////////////////////////////////////////////////

// IntUV computes ∫ u v
func IntUV[T Num[T]](n int, wt []float64, u, v *Func[T]) (res T) {
	for i := 0; i < n; i++ {
		res = res.Add(u.Val[i].Mul(v.Val[i]).Scale(wt[i]))
	}
	return
}

// IntV computes ∫ v
func IntV[T Num[T]](n int, wt []float64, v *Func[T]) (res T) {
	for i := 0; i < n; i++ {
		res = res.Add(v.Val[i].Scale(wt[i]))
	}
	return
}

// IntGradUGradV computes ∫ ∇u・∇v
func IntGradUGradV[T Num[T]](n int, wt []float64, u, v *Func[T]) (res T) {
	for i := 0; i < n; i++ {
		res = res.Add(Dot(u, v, i).Scale(wt[i]))
	}
	return
}

// Dot returns ∇u・∇v at point i
func Dot[T Num[T]](u, v *Func[T], i int) T {
	return u.Dx[i].Mul(v.Dx[i]).Add(u.Dy[i].Mul(v.Dy[i]))
}
