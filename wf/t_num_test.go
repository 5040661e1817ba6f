// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wf

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// lam computes 1 + u³ in any domain
func lam[T Num[T]](u T) T {
	return u.Pow(3).Shift(1)
}

// integrand computes Σ wt·λ(u)·v
func integrand[T Num[T]](a *VecArgs[T]) (res T) {
	for i := 0; i < a.N; i++ {
		res = res.Add(lam(a.Uext[0].Val[i]).Mul(a.V.Val[i]).Scale(a.Wt[i]))
	}
	return
}

func Test_num01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("num01. order arithmetic")

	p := Ord(2)
	chk.Int(tst, "p+p", int(p.Add(Ord(1))), 2)
	chk.Int(tst, "p-p", int(p.Sub(Ord(3))), 3)
	chk.Int(tst, "p*p", int(p.Mul(p)), 4)
	chk.Int(tst, "p/p", int(p.Div(Ord(1))), 3)
	chk.Int(tst, "-p", int(p.Neg()), 2)
	chk.Int(tst, "2p", int(p.Scale(2)), 2)
	chk.Int(tst, "p+1", int(p.Shift(1)), 2)
	chk.Int(tst, "p^3", int(p.Pow(3)), 6)
	chk.Int(tst, "p^2.5", int(p.Pow(2.5)), 6)
	chk.Int(tst, "p^0", int(p.Pow(0)), 0)
	chk.Int(tst, "cte", int(p.Const(123)), 0)
	chk.Int(tst, "f(p)", int(p.Apply(math.Sin, math.Cos, 3)), 6)

	// the same generic function in two domains
	chk.Float64(tst, "λ(2)", 1e-15, float64(lam(Real(2))), 9)
	chk.Int(tst, "ord λ(p)", int(lam(Ord(2))), 6)
}

func Test_num02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("num02. complex step")

	h := 1e-30
	for _, u := range []float64{-1.5, 0, 0.3, 2} {
		v := lam(Cplx(complex(u, h)))
		chk.Float64(tst, "Re λ", 1e-14, real(v), 1+u*u*u)
		chk.Float64(tst, "dλ/du", 1e-13, imag(v)/h, 3*u*u)

		w := Cplx(complex(u, h)).Apply(math.Exp, math.Exp, 1)
		chk.Float64(tst, "d exp", 1e-13, imag(w)/h, math.Exp(u))
	}

	// missing derivative drops the perturbation
	w := Cplx(complex(1, h)).Apply(math.Exp, nil, 1)
	chk.Float64(tst, "no deriv", 1e-17, imag(w), 0)

	// powers of negative bases
	for _, u := range []float64{-1.5, -0.5, 0.7} {
		v := Cplx(complex(u, h)).Pow(3)
		chk.Float64(tst, "Re u³", 1e-15, real(v), u*u*u)
		chk.Float64(tst, "d u³", 1e-15, imag(v)/h, 3*u*u)
		v = Cplx(complex(u, h)).Pow(-2)
		chk.Float64(tst, "d u⁻²", 1e-13, imag(v)/h, -2/(u*u*u))
	}

	// constants stay real
	v := Cplx(complex(0, 0)).Pow(0.5)
	chk.Float64(tst, "√0", 1e-17, real(v), 0)
	chk.Float64(tst, "no perturbation", 1e-17, imag(v), 0)
}

func Test_num03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("num03. integrand in all domains")

	n := 2
	ur := NewFunc[Real](n)
	vr := NewFunc[Real](n)
	ur.Val[0], ur.Val[1] = 1, 2
	vr.Val[0], vr.Val[1] = 0.5, 0.25
	ar := &VecArgs[Real]{N: n, Wt: []float64{1, 2}, Uext: []*Func[Real]{ur}, V: vr}
	chk.Float64(tst, "real", 1e-15, float64(integrand(ar)), 2*0.5+9*0.25*2)

	uo := &Func[Ord]{Val: []Ord{2}, Dx: []Ord{1}, Dy: []Ord{1}}
	vo := &Func[Ord]{Val: []Ord{2}, Dx: []Ord{1}, Dy: []Ord{1}}
	ao := &VecArgs[Ord]{N: 1, Wt: []float64{1}, Uext: []*Func[Ord]{uo}, V: vo}
	chk.Int(tst, "ord", int(integrand(ao)), 8)

	chk.Float64(tst, "∫uv", 1e-15, float64(IntUV(n, ar.Wt, ur, vr)), 0.5+2*2*0.25)
	chk.Float64(tst, "∫v", 1e-15, float64(IntV(n, ar.Wt, vr)), 0.5+2*0.25)
	chk.Int(tst, "ord ∫∇u∇v", int(IntGradUGradV(1, ao.Wt, uo, vo)), 2)
}
