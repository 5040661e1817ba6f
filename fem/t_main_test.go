// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/blackvladimir/hermes/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func Test_main01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main01. transient nonlinear heat conduction")

	main, err := NewMain("../inp/data/heat01.sim", chk.Verbose)
	require.NoError(tst, err)
	_, ok := main.Solver.(*SolverImplicit)
	require.True(tst, ok)
	require.NoError(tst, main.Run())

	sum := main.Summary
	io.Pforan("times = %v\n", sum.Times)
	chk.Array(tst, "times", 1e-14, sum.Times, []float64{0, 0.1, 0.2})
	chk.Int(tst, "nsteps", sum.Nsteps, 4)
	chk.Int(tst, "ndiverg", sum.Ndiverg, 0)

	// prescribed and interior values
	spc := main.Spc
	yf := sum.Ys[len(sum.Ys)-1]
	for _, nod := range spc.Nodes {
		eq := nod.GetEq("u")
		x := nod.Vert.C
		if spc.EssenBcs.Has(eq) {
			chk.Float64(tst, io.Sf("u(%g,%g)", x[0], x[1]), 1e-15, yf[eq], 0)
			continue
		}
		if yf[eq] <= 0 {
			tst.Errorf("temperature must be positive at (%g,%g): %g", x[0], x[1], yf[eq])
		}
	}

	// temperature rises
	i, err := sum.Nearest(0.1)
	require.NoError(tst, err)
	chk.Int(tst, "index of t = 0.1", i, 1)
	for _, eq := range spc.Free2eq {
		if yf[eq] <= sum.Ys[i][eq] {
			tst.Errorf("temperature must rise at eq = %d: %g <= %g", eq, yf[eq], sum.Ys[i][eq])
		}
	}

	// same simulation given in YAML
	other, err := NewMain("../inp/data/heat01.yaml", false)
	require.NoError(tst, err)
	require.NoError(tst, other.Run())
	if diff := cmp.Diff(sum, other.Summary, cmpopts.EquateApprox(0, 1e-15)); diff != "" {
		tst.Errorf("JSON and YAML summaries differ (-json +yaml):\n%s", diff)
	}
}

func Test_main02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main02. steady heat conduction with spline conductivity")

	main, err := NewMain("../inp/data/spline01.sim", chk.Verbose)
	require.NoError(tst, err)
	stdy, ok := main.Solver.(*SolverSteady)
	require.True(tst, ok)
	require.NoError(tst, main.Run())
	require.Equal(tst, Converged, stdy.Nwt.Status)
	io.Pforan("iterations = %d\n", stdy.Res.It)

	chk.Int(tst, "number of outputs", len(main.Summary.Times), 1)
	y := main.Summary.Ys[0]
	for _, eq := range main.Spc.Free2eq {
		if y[eq] < 1 {
			tst.Errorf("temperature must be at least 1 at eq = %d: %g", eq, y[eq])
		}
	}
	for _, bc := range main.Spc.EssenBcs.Bcs {
		chk.Float64(tst, "prescribed u", 1e-15, y[bc.Eq], 1)
	}
}

func Test_main03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main03. invalid input")

	_, err := NewMain("../inp/data/nonexistent.sim", false)
	require.Error(tst, err)
}

func Test_main04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main04. messages follow the run flag")

	for _, verb := range []bool{false, true} {
		main, err := NewMain("../inp/data/heat01.sim", verb)
		require.NoError(tst, err)
		imp, ok := main.Solver.(*SolverImplicit)
		require.True(tst, ok)
		require.Equal(tst, verb, imp.Stp.Verbose)
	}

	// linear solver messages come from the linsol section
	ls, err := newLinSolver(&inp.LinSolData{Name: "umfpack", Symmetric: true, Verbose: true})
	require.NoError(tst, err)
	u, ok := ls.(*UmfpackSolver)
	require.True(tst, ok)
	require.True(tst, u.Symmetric)
	require.True(tst, u.Verbose)
	_, err = newLinSolver(&inp.LinSolData{Name: "nonexistent"})
	require.ErrorIs(tst, err, ErrConfig)
}

func Test_main05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main05. convective boundary")

	main, err := NewMain("../inp/data/conv01.sim", chk.Verbose)
	require.NoError(tst, err)
	stdy, ok := main.Solver.(*SolverSteady)
	require.True(tst, ok)
	require.NoError(tst, main.Run())
	require.Equal(tst, Converged, stdy.Nwt.Status)

	// k・∂u/∂x = α・(Text - u) at x = 1 gives u = s・x with s = α・Text/(k + α)
	k, alp, text := 2.0, 3.0, 5.0
	s := alp * text / (k + alp)
	y := main.Summary.Ys[0]
	for _, nod := range main.Spc.Nodes {
		x := nod.Vert.C
		chk.Float64(tst, io.Sf("u(%g,%g)", x[0], x[1]), 1e-12, y[nod.GetEq("u")], s*x[0])
	}
}
