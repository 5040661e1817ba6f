// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wf

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func uv[T Num[T]](a *MatArgs[T]) T {
	return IntUV(a.N, a.Wt, a.U, a.V)
}

func uext[T Num[T]](a *VecArgs[T]) T {
	return IntUV(a.N, a.Wt, a.Uext[0], a.V).Shift(a.Time)
}

func Test_wf01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("wf01. registration")

	w := New(2)
	if err := w.RegisterMatrixForm(0, 1, Anywhere, Sym, uv[Real], uv[Ord]); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := w.RegisterMatrixFormSurf(1, 1, -10, uv[Real], uv[Ord]); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := w.RegisterVectorForm(1, 3, uext[Real], uext[Ord]); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := w.RegisterVectorFormSurf(0, -10, uext[Real], uext[Ord]); err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Int(tst, "nmat", len(w.MatrixForms()), 2)
	chk.Int(tst, "nvec", len(w.VectorForms()), 2)
	kinds := []int{}
	for _, f := range w.Forms() {
		kinds = append(kinds, int(f.Kind()))
	}
	chk.Ints(tst, "kinds", kinds, []int{int(MatrixVol), int(MatrixSurf), int(VectorVol), int(VectorSurf)})

	f := w.Vfvol[0]
	if !f.Applies(3) || f.Applies(4) {
		tst.Errorf("tag 3 form must apply to cells with tag 3 only")
	}
	if !w.Mfvol[0].Applies(123) {
		tst.Errorf("form defined anywhere must apply to all tags")
	}

	// errors
	if err := w.RegisterMatrixForm(0, 2, Anywhere, NonSym, uv[Real], uv[Ord]); err == nil {
		tst.Errorf("column out of range must fail")
	}
	if err := w.RegisterVectorForm(-1, Anywhere, uext[Real], uext[Ord]); err == nil {
		tst.Errorf("row out of range must fail")
	}
	if err := w.RegisterVectorForm(0, Anywhere, uext[Real], nil); err == nil {
		tst.Errorf("missing order integrand must fail")
	}
	sf := NewMatrixFormSurf(0, 0, -1, uv[Real], uv[Ord])
	sf.Sym = Sym
	if err := w.AddMatrixForm(sf); err == nil {
		tst.Errorf("symmetric surface form must fail")
	}
}

func Test_wf02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("wf02. derived forms")

	u := &Func[Real]{Val: []Real{2}, Dx: []Real{0}, Dy: []Real{0}}
	v := &Func[Real]{Val: []Real{3}, Dx: []Real{0}, Dy: []Real{0}}
	a := &VecArgs[Real]{N: 1, Wt: []float64{0.5}, Uext: []*Func[Real]{u}, V: v, Time: 100}

	f := NewVectorForm(0, Anywhere, uext[Real], uext[Ord])
	chk.Float64(tst, "f", 1e-15, float64(f.Real(a)), 3+100)

	g := f.Scaled(2, 7)
	chk.Float64(tst, "2f(t=7)", 1e-15, float64(g.Real(a)), 2*(3+7))
	chk.Float64(tst, "time unchanged", 1e-15, a.Time, 100)

	// lagged: unknowns taken from the trailing external fields
	y := []float64{1, 2, 3}
	h := f.Lagged(-1, 5, 1, y)
	chk.Int(tst, "next", len(h.Ext), 1)
	chk.Int(tst, "orig next", len(f.Ext), 0)
	lag := &Func[Real]{Val: []Real{10}, Dx: []Real{0}, Dy: []Real{0}}
	a.Ext = []*Func[Real]{lag}
	chk.Float64(tst, "lagged", 1e-15, float64(h.Real(a)), -(0.5*10*3 + 5))

	m := NewMatrixForm(0, 0, Anywhere, Sym, uv[Real], uv[Ord])
	ma := &MatArgs[Real]{N: 1, Wt: []float64{0.5}, U: u, V: v}
	chk.Float64(tst, "m", 1e-15, float64(m.Scaled(-4, 0).Real(ma)), -4*0.5*2*3)
	chk.Int(tst, "ord", int(m.Scaled(-4, 0).Ord(&MatArgs[Ord]{N: 1, Wt: []float64{1},
		U: &Func[Ord]{Val: []Ord{2}}, V: &Func[Ord]{Val: []Ord{2}}})), 4)
}
