// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package heat implements the weak forms of nonlinear heat conduction
//
//      ρ・∂u/∂t - ∇・(λ(u)・∇u) = f    in Ω
//      λ(u)・∂u/∂n = q                 on Γq
//      λ(u)・∂u/∂n = α・(Text - u)      on Γc
//
//  written as M・∂u/∂t + F(u, t) = 0 with
//
//      F(u, t)・v = ∫ λ(u)・∇u・∇v - ∫ f・v - ∫_Γq q・v + ∫_Γc α・(u - Text)・v
package heat

import (
	"sort"

	"github.com/blackvladimir/hermes/mdl/conduct"
	"github.com/blackvladimir/hermes/wf"
	"github.com/cpmech/gosl/chk"
)

// TimeSpace defines functions of time and space such as sources and fluxes
type TimeSpace interface {
	F(t float64, x []float64) float64
}

// Params holds the data of the heat conduction problem
type Params struct {
	Field int                 // index of temperature field
	Area  int                 // cell tag; wf.Anywhere = all cells
	Lam   conduct.Model       // conductivity model
	Src   TimeSpace           // heat source; may be nil
	Flux  map[int]TimeSpace   // face tag => prescribed flux q = λ・∂u/∂n
	Conv  map[int]*Convection // face tag => convective (Newton) boundary
}

// Convection holds the data of the boundary condition λ・∂u/∂n = α・(Text - u)
type Convection struct {
	Alpha float64   // heat transfer coefficient
	Text  TimeSpace // exterior temperature
}

// Eval returns λ(u)
func Eval[T wf.Num[T]](m conduct.Model, u T) T {
	return u.Apply(m.K, m.DkDu, m.Degree())
}

// Deriv returns ∂λ/∂u(u)
func Deriv[T wf.Num[T]](m conduct.Model, u T) T {
	deg := m.Degree() - 1
	if deg < 0 {
		deg = 0
	}
	return u.Apply(m.DkDu, nil, deg)
}

// Jacobian returns the integrand of ∂F/∂u; the first term is skipped if λ is constant:
//
//      ∫ (∂λ/∂u・δu・∇u・∇v + λ(u)・∇δu・∇v)
func Jacobian[T wf.Num[T]](p *Params) wf.MatrixFn[T] {
	return func(a *wf.MatArgs[T]) (res T) {
		u := a.Uext[p.Field]
		cte := p.Lam.Degree() == 0
		for i := 0; i < a.N; i++ {
			val := Eval(p.Lam, u.Val[i]).Mul(wf.Dot(a.U, a.V, i))
			if !cte {
				val = val.Add(Deriv(p.Lam, u.Val[i]).Mul(a.U.Val[i]).Mul(wf.Dot(u, a.V, i)))
			}
			res = res.Add(val.Scale(a.Wt[i]))
		}
		return
	}
}

// Diffusion returns the integrand of ∫ λ(u)・∇u・∇v
func Diffusion[T wf.Num[T]](p *Params) wf.VectorFn[T] {
	return func(a *wf.VecArgs[T]) (res T) {
		u := a.Uext[p.Field]
		for i := 0; i < a.N; i++ {
			res = res.Add(Eval(p.Lam, u.Val[i]).Mul(wf.Dot(u, a.V, i)).Scale(a.Wt[i]))
		}
		return
	}
}

// Source returns the integrand of -∫ f・v
func Source[T wf.Num[T]](p *Params) wf.VectorFn[T] {
	return func(a *wf.VecArgs[T]) (res T) {
		x := []float64{0, 0}
		for i := 0; i < a.N; i++ {
			x[0], x[1] = a.E.Xc[i], a.E.Yc[i]
			f := a.V.Val[i].Const(p.Src.F(a.Time, x))
			res = res.Sub(f.Mul(a.V.Val[i]).Scale(a.Wt[i]))
		}
		return
	}
}

// Flux returns the integrand of -∫_Γq q・v
func Flux[T wf.Num[T]](q TimeSpace) wf.VectorFn[T] {
	return func(a *wf.VecArgs[T]) (res T) {
		x := []float64{0, 0}
		for i := 0; i < a.N; i++ {
			x[0], x[1] = a.E.Xc[i], a.E.Yc[i]
			res = res.Sub(a.V.Val[i].Scale(q.F(a.Time, x) * a.Wt[i]))
		}
		return
	}
}

// ConvJacobian returns the integrand of ∫_Γc α・δu・v
func ConvJacobian[T wf.Num[T]](c *Convection) wf.MatrixFn[T] {
	return func(a *wf.MatArgs[T]) (res T) {
		for i := 0; i < a.N; i++ {
			res = res.Add(a.U.Val[i].Mul(a.V.Val[i]).Scale(c.Alpha * a.Wt[i]))
		}
		return
	}
}

// ConvResidual returns the integrand of ∫_Γc α・(u - Text)・v
func ConvResidual[T wf.Num[T]](p *Params, c *Convection) wf.VectorFn[T] {
	return func(a *wf.VecArgs[T]) (res T) {
		u := a.Uext[p.Field]
		x := []float64{0, 0}
		for i := 0; i < a.N; i++ {
			x[0], x[1] = a.E.Xc[i], a.E.Yc[i]
			du := u.Val[i].Shift(-c.Text.F(a.Time, x))
			res = res.Add(du.Mul(a.V.Val[i]).Scale(c.Alpha * a.Wt[i]))
		}
		return
	}
}

// Forms returns the Jacobian and residual forms of F(u, t)
func Forms(p *Params) (jac []*wf.MatrixForm, res []*wf.VectorForm, err error) {
	if p.Lam == nil {
		return nil, nil, chk.Err("heat: conductivity model must be given")
	}
	sym := wf.NonSym
	if _, ok := p.Lam.(*conduct.Cte); ok {
		sym = wf.Sym
	}
	k := p.Field
	jac = append(jac, wf.NewMatrixForm(k, k, p.Area, sym, Jacobian[wf.Real](p), Jacobian[wf.Ord](p)).WithCplx(Jacobian[wf.Cplx](p)))
	jac[0].Name = "heat-jacobian"
	res = append(res, wf.NewVectorForm(k, p.Area, Diffusion[wf.Real](p), Diffusion[wf.Ord](p)).WithCplx(Diffusion[wf.Cplx](p)))
	res[0].Name = "heat-diffusion"
	if p.Src != nil {
		f := wf.NewVectorForm(k, p.Area, Source[wf.Real](p), Source[wf.Ord](p)).WithCplx(Source[wf.Cplx](p))
		f.Name = "heat-source"
		res = append(res, f)
	}
	for _, tag := range sortedTags(p.Flux) {
		q := p.Flux[tag]
		f := wf.NewVectorFormSurf(k, tag, Flux[wf.Real](q), Flux[wf.Ord](q)).WithCplx(Flux[wf.Cplx](q))
		f.Name = "heat-flux"
		res = append(res, f)
	}
	for _, tag := range sortedTags(p.Conv) {
		c := p.Conv[tag]
		if c == nil || c.Text == nil || c.Alpha < 0 {
			return nil, nil, chk.Err("heat: convection on face %d needs α ≥ 0 and the exterior temperature", tag)
		}
		m := wf.NewMatrixFormSurf(k, k, tag, ConvJacobian[wf.Real](c), ConvJacobian[wf.Ord](c)).WithCplx(ConvJacobian[wf.Cplx](c))
		m.Name = "heat-convection"
		jac = append(jac, m)
		f := wf.NewVectorFormSurf(k, tag, ConvResidual[wf.Real](p, c), ConvResidual[wf.Ord](p, c)).WithCplx(ConvResidual[wf.Cplx](p, c))
		f.Name = "heat-convection"
		res = append(res, f)
	}
	return
}

// Steady returns the weak form of F(u) = 0
func Steady(p *Params, neq int) (w *wf.WeakForm, err error) {
	jac, res, err := Forms(p)
	if err != nil {
		return
	}
	w = wf.New(neq)
	for _, f := range jac {
		if err = w.AddMatrixForm(f); err != nil {
			return nil, err
		}
	}
	for _, f := range res {
		if err = w.AddVectorForm(f); err != nil {
			return nil, err
		}
	}
	return
}

func sortedTags[V any](m map[int]V) (tags []int) {
	for tag := range m {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	return
}
