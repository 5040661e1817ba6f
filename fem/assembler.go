// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/blackvladimir/hermes/inp"
	"github.com/blackvladimir/hermes/shp"
	"github.com/blackvladimir/hermes/wf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
	"golang.org/x/sync/errgroup"
)

// Assembler assembles the Jacobian and residual of a weak form over all cells of a space.
//  The residual is returned with the opposite sign, fb = -R, and the Jacobian Kb = dR/dx,
//  such that Kb・δx = fb gives the Newton correction. Only free equations are assembled.
type Assembler struct {
	Spc      *Space                        // space with equation numbers
	Wf       *wf.WeakForm                  // weak form
	Nworkers int                           // number of goroutines computing cell contributions; ≤ 1 means serial
	Rconst   []float64                     // [nfree] constant added to R; may be nil
	NewEval  func(msh *inp.Mesh) Evaluator // allocates evaluators; default = NewShapeEvaluator
	y        []float64                     // [ndof] full vector
}

// NewAssembler returns a new assembler
func NewAssembler(spc *Space, w *wf.WeakForm) (o *Assembler, err error) {
	if w.Neq != len(spc.Keys) {
		return nil, configErr("weak form has %d equations but space has %d fields", w.Neq, len(spc.Keys))
	}
	o = &Assembler{Spc: spc, Wf: w, Nworkers: 1}
	o.y = make([]float64, spc.Ndof)
	return
}

// Nnz returns the maximum number of non-zeros put into the Jacobian
func (o *Assembler) Nnz() (nnz int) {
	for _, c := range o.Spc.Msh.Cells {
		nb := len(c.Verts)
		for _, f := range o.Wf.Mfvol {
			if f.Applies(c.Tag) {
				nnz += nb * nb
				if f.Sym != wf.NonSym && f.I != f.J {
					nnz += nb * nb
				}
			}
		}
		for _, f := range o.Wf.Mfsurf {
			for _, ft := range c.FTags {
				if ft != 0 && f.Applies(ft) {
					nnz += nb * nb
				}
			}
		}
	}
	return
}

// Alloc allocates the Jacobian and residual
func (o *Assembler) Alloc() (kb *la.Triplet, fb []float64) {
	nnz := o.Nnz()
	if nnz < 1 {
		nnz = 1
	}
	kb = new(la.Triplet)
	kb.Init(o.Spc.Nfree, o.Spc.Nfree, nnz)
	fb = make([]float64, o.Spc.Nfree)
	return
}

// Assemble computes Kb and fb at the free values x and time t
//  kb -- Jacobian allocated with Alloc; nil means skip matrix forms
//  fb -- [nfree] minus residual; nil means skip vector forms
//  x  -- [nfree] free values of the current iterate
//  Note: non-finite local values do not stop assembly; they are listed in the report
func (o *Assembler) Assemble(kb *la.Triplet, fb, x []float64, t float64) (rep *Report, err error) {

	// check
	err = o.check(len(x))
	if err != nil {
		return
	}

	// current iterate
	o.Spc.Scatter(o.y, x, t)

	// cell contributions
	cells := o.Spc.Msh.Cells
	locals := make([]*local, len(cells))
	nw := o.Nworkers
	if nw > len(cells) {
		nw = len(cells)
	}
	if nw <= 1 {
		w := o.newWorker(t, kb != nil, fb != nil)
		for i, c := range cells {
			locals[i], err = w.cell(c)
			if err != nil {
				return
			}
		}
	} else {
		var g errgroup.Group
		for k := 0; k < nw; k++ {
			w := o.newWorker(t, kb != nil, fb != nil)
			i0, i1 := k*len(cells)/nw, (k+1)*len(cells)/nw
			g.Go(func() (err error) {
				for i := i0; i < i1; i++ {
					locals[i], err = w.cell(cells[i])
					if err != nil {
						return
					}
				}
				return
			})
		}
		err = g.Wait()
		if err != nil {
			return
		}
	}

	// merge in cell order
	rep = new(Report)
	if kb != nil {
		kb.Start()
	}
	if fb != nil {
		for i := range fb {
			fb[i] = 0
		}
	}
	for _, l := range locals {
		rep.Warnings = append(rep.Warnings, l.warns...)
		if kb != nil {
			for k, r := range l.kr {
				kb.Put(r, l.kc[k], l.kv[k])
			}
		}
		if fb != nil {
			for k, r := range l.fr {
				fb[r] -= l.fv[k]
			}
		}
	}
	if fb != nil && o.Rconst != nil {
		for i := range fb {
			fb[i] -= o.Rconst[i]
		}
	}
	return
}

// check checks dimensions
func (o *Assembler) check(nx int) (err error) {
	if nx != o.Spc.Nfree {
		return configErr("vector of free values has length %d; %d expected", nx, o.Spc.Nfree)
	}
	if o.Rconst != nil && len(o.Rconst) != o.Spc.Nfree {
		return configErr("constant residual has length %d; %d expected", len(o.Rconst), o.Spc.Nfree)
	}
	for _, f := range o.Wf.Forms() {
		for _, e := range f.Externals() {
			if e.Field < 0 || e.Field >= o.Wf.Neq {
				return configErr("form %s: external %q refers to field %d", formName(f), e.Name, e.Field)
			}
			if len(e.Y) != o.Spc.Ndof {
				return configErr("form %s: external %q has %d coefficients; %d expected", formName(f), e.Name, len(e.Y), o.Spc.Ndof)
			}
		}
	}
	return
}

func (o *Assembler) newWorker(t float64, doK, doF bool) *worker {
	newEval := o.NewEval
	if newEval == nil {
		newEval = func(msh *inp.Mesh) Evaluator { return NewShapeEvaluator(msh) }
	}
	return &worker{asm: o, ev: newEval(o.Spc.Msh), t: t, doK: doK, doF: doF, degs: make(map[degKey]int)}
}

// local holds the contributions of one cell
type local struct {
	kr, kc []int     // free row and column of Jacobian entries
	kv     []float64 // values of Jacobian entries
	fr     []int     // free rows of residual entries
	fv     []float64 // values of residual entries
	warns  []Warning // non-fatal problems
}

func (o *local) putK(r, c int, v float64) {
	if r < 0 || c < 0 {
		return
	}
	o.kr, o.kc, o.kv = append(o.kr, r), append(o.kc, c), append(o.kv, v)
}

func (o *local) putF(r int, v float64) {
	if r < 0 {
		return
	}
	o.fr, o.fv = append(o.fr, r), append(o.fv, v)
}

// worker computes cell contributions; one per goroutine
type worker struct {
	asm  *Assembler
	ev   Evaluator
	t    float64
	doK  bool
	doF  bool
	degs map[degKey]int                     // quadrature degrees
	flds map[*PointData][]*wf.Func[wf.Real] // fields at points of the current cell
	exts map[extKey]*wf.Func[wf.Real]       // external fields at points of the current cell
}

type degKey struct {
	form    wf.Form
	celltyp string
}

type extKey struct {
	pd    *PointData
	y     *float64
	field int
}

// cell computes the contributions of cell c
func (o *worker) cell(c *inp.Cell) (l *local, err error) {
	l = new(local)
	o.flds = make(map[*PointData][]*wf.Func[wf.Real])
	o.exts = make(map[extKey]*wf.Func[wf.Real])
	w := o.asm.Wf
	if o.doK {
		for _, f := range w.Mfvol {
			if !f.Applies(c.Tag) {
				continue
			}
			pd, err := o.ev.Volume(c, o.degree(f, c))
			if err != nil {
				return nil, err
			}
			o.matrix(l, f, c, pd)
		}
		for _, f := range w.Mfsurf {
			for iface, ft := range c.FTags {
				if ft == 0 || !f.Applies(ft) {
					continue
				}
				pd, err := o.ev.Face(c, iface, o.degree(f, c))
				if err != nil {
					return nil, err
				}
				o.matrix(l, f, c, pd)
			}
		}
	}
	if o.doF {
		for _, f := range w.Vfvol {
			if !f.Applies(c.Tag) {
				continue
			}
			pd, err := o.ev.Volume(c, o.degree(f, c))
			if err != nil {
				return nil, err
			}
			o.vector(l, f, c, pd)
		}
		for _, f := range w.Vfsurf {
			for iface, ft := range c.FTags {
				if ft == 0 || !f.Applies(ft) {
					continue
				}
				pd, err := o.ev.Face(c, iface, o.degree(f, c))
				if err != nil {
					return nil, err
				}
				o.vector(l, f, c, pd)
			}
		}
	}
	return
}

// matrix computes the local matrix of form f
func (o *worker) matrix(l *local, f *wf.MatrixForm, c *inp.Cell, pd *PointData) {
	umap := o.asm.Spc.Umap[c.Id]
	free := o.asm.Spc.Free
	a := &wf.MatArgs[wf.Real]{N: pd.N, Wt: pd.Wt, Uext: o.fields(pd, umap), E: pd.Geo, Time: o.t}
	a.Ext = o.externals(f.Ext, pd, umap)
	rows, cols := umap[f.I], umap[f.J]
	sgn := 1.0
	if f.Sym == wf.AntiSym {
		sgn = -1.0
	}
	mirror := f.Sym != wf.NonSym && f.I == f.J
	transp := f.Sym != wf.NonSym && f.I != f.J
	nb := len(pd.Basis)
	var K [][]float64
	if mirror {
		K = utl.Alloc(nb, nb)
	}
	ok := true
	for m := 0; m < nb; m++ {
		a.V = pd.Basis[m]
		for n := 0; n < nb; n++ {
			var val float64
			if mirror && n < m {
				val = sgn * K[n][m]
			} else {
				a.U = pd.Basis[n]
				val = float64(f.Real(a))
				if mirror {
					K[m][n] = val
				}
			}
			if math.IsNaN(val) || math.IsInf(val, 0) {
				ok = false
			}
			l.putK(free[rows[m]], free[cols[n]], val)
			if transp {
				l.putK(free[cols[n]], free[rows[m]], sgn*val)
			}
		}
	}
	if !ok {
		l.warns = append(l.warns, Warning{c.Id, formName(f), "non-finite value in local matrix"})
	}
}

// vector computes the local vector of form f
func (o *worker) vector(l *local, f *wf.VectorForm, c *inp.Cell, pd *PointData) {
	umap := o.asm.Spc.Umap[c.Id]
	free := o.asm.Spc.Free
	a := &wf.VecArgs[wf.Real]{N: pd.N, Wt: pd.Wt, Uext: o.fields(pd, umap), E: pd.Geo, Time: o.t}
	a.Ext = o.externals(f.Ext, pd, umap)
	rows := umap[f.I]
	ok := true
	for m := range pd.Basis {
		a.V = pd.Basis[m]
		val := float64(f.Real(a))
		if math.IsNaN(val) || math.IsInf(val, 0) {
			ok = false
		}
		l.putF(free[rows[m]], val)
	}
	if !ok {
		l.warns = append(l.warns, Warning{c.Id, formName(f), "non-finite value in local vector"})
	}
}

// fields returns the current iterate of all fields at points pd
func (o *worker) fields(pd *PointData, umap [][]int) []*wf.Func[wf.Real] {
	if res, ok := o.flds[pd]; ok {
		return res
	}
	res := make([]*wf.Func[wf.Real], len(umap))
	for k, eqs := range umap {
		res[k] = wf.NewFunc[wf.Real](pd.N)
		pd.Interp(res[k], o.asm.y, eqs)
	}
	o.flds[pd] = res
	return res
}

// externals returns external fields at points pd
func (o *worker) externals(exts []*wf.Ext, pd *PointData, umap [][]int) []*wf.Func[wf.Real] {
	if len(exts) == 0 {
		return nil
	}
	res := make([]*wf.Func[wf.Real], len(exts))
	for i, e := range exts {
		key := extKey{pd, &e.Y[0], e.Field}
		if fn, ok := o.exts[key]; ok {
			res[i] = fn
			continue
		}
		res[i] = wf.NewFunc[wf.Real](pd.N)
		pd.Interp(res[i], e.Y, umap[e.Field])
		o.exts[key] = res[i]
	}
	return res
}

// degree returns the quadrature degree of form f on cell c: the polynomial degree estimated by
// the Ord instantiation of the integrand plus the extra order of the geometric mapping
func (o *worker) degree(f wf.Form, c *inp.Cell) (deg int) {
	key := degKey{f, c.Type}
	if deg, ok := o.degs[key]; ok {
		return deg
	}
	p := wf.Ord(c.Shp.Degree)
	basis := func() *wf.Func[wf.Ord] {
		return &wf.Func[wf.Ord]{Val: []wf.Ord{p}, Dx: []wf.Ord{p}, Dy: []wf.Ord{p}}
	}
	geo := wf.NewGeom[wf.Ord](1)
	geo.X[0], geo.Y[0], geo.Tag, geo.Id = 1, 1, c.Tag, c.Id
	uext := make([]*wf.Func[wf.Ord], o.asm.Wf.Neq)
	for k := range uext {
		uext[k] = basis()
	}
	ext := make([]*wf.Func[wf.Ord], len(f.Externals()))
	for k := range ext {
		ext[k] = basis()
	}
	wt := []float64{1}
	var ord wf.Ord
	switch g := f.(type) {
	case *wf.MatrixForm:
		ord = g.Ord(&wf.MatArgs[wf.Ord]{N: 1, Wt: wt, Uext: uext, U: basis(), V: basis(), E: geo, Ext: ext, Time: o.t})
	case *wf.VectorForm:
		ord = g.Ord(&wf.VecArgs[wf.Ord]{N: 1, Wt: wt, Uext: uext, V: basis(), E: geo, Ext: ext, Time: o.t})
	}
	deg = int(ord) + c.Shp.GeoOrder
	if deg > shp.MaxDegree {
		deg = shp.MaxDegree
	}
	o.degs[key] = deg
	return
}

// formName returns a description of form f for messages
func formName(f wf.Form) string {
	switch g := f.(type) {
	case *wf.MatrixForm:
		if g.Name != "" {
			return g.Name
		}
		return io.Sf("%v(%d,%d)", g.Kind(), g.I, g.J)
	case *wf.VectorForm:
		if g.Name != "" {
			return g.Name
		}
		return io.Sf("%v(%d)", g.Kind(), g.I)
	}
	return "unknown"
}
