// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/blackvladimir/hermes/fem"
	"github.com/blackvladimir/hermes/inp"
	"github.com/blackvladimir/hermes/rk"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		io.Pfred("\nERROR: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd returns the command line interface
func newRootCmd() *cobra.Command {
	var verbose bool
	var summary string

	root := &cobra.Command{
		Use:           "hermes [file.sim]",
		Short:         "Hermes -- heat conduction with finite elements and implicit Runge-Kutta methods",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], summary, verbose)
		},
	}
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "show messages")
	root.Flags().StringVarP(&summary, "summary", "s", "", "write summary of results to this JSON file")

	root.AddCommand(&cobra.Command{
		Use:   "methods",
		Short: "List Butcher tables and linear solvers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-10s%-6s%-8s%s\n", "method", "order", "stages", "stiffly accurate")
			for _, name := range rk.Names() {
				tab, _ := rk.New(name)
				fmt.Fprintf(out, "%-10s%-6d%-8d%v\n", name, tab.Order, tab.Nstages(), tab.StifflyAccurate())
			}
			fmt.Fprintf(out, "\nlinear solvers: %v\n", fem.LinSolvers())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "info [file.sim]",
		Short: "Print simulation data as read from the input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := inp.ReadSim(args[0])
			if err != nil {
				return err
			}
			if err = sim.GetInfo(cmd.OutOrStdout()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d cells, %d vertices\n", len(sim.Msh.Cells), len(sim.Msh.Verts))
			return nil
		},
	})
	var umin, umax float64
	var npts int
	conductCmd := &cobra.Command{
		Use:   "conduct [file.sim] [material]",
		Short: "Tabulate the conductivity λ(u) and ∂λ/∂u of a material",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := inp.ReadSim(args[0])
			if err != nil {
				return err
			}
			mat := sim.Materials.Get(args[1])
			if mat == nil {
				return chk.Err("cannot find material %q", args[1])
			}
			if npts < 2 {
				return chk.Err("number of points must be at least 2; npts = %d", npts)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%23s%23s%23s\n", "u", "λ", "∂λ/∂u")
			for _, u := range utl.LinSpace(umin, umax, npts) {
				fmt.Fprintf(out, "%23.15e%23.15e%23.15e\n", u, mat.Conduct.K(u), mat.Conduct.DkDu(u))
			}
			return nil
		},
	}
	conductCmd.Flags().Float64Var(&umin, "umin", 0, "min temperature")
	conductCmd.Flags().Float64Var(&umax, "umax", 1, "max temperature")
	conductCmd.Flags().IntVarP(&npts, "npts", "n", 11, "number of points")
	root.AddCommand(conductCmd)
	return root
}

// run runs the simulation in fnamepath and saves the summary if sumpath is given
func run(fnamepath, sumpath string, verbose bool) (err error) {
	if verbose {
		io.Pf("\nHermes -- heat conduction with finite elements\n")
		io.Pf("Copyright 2016 The Gofem Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
	}
	m, err := fem.NewMain(fnamepath, verbose)
	if err != nil {
		return
	}
	err = m.Run()
	if err != nil {
		return
	}
	if sumpath == "" {
		return
	}
	b, err := json.MarshalIndent(m.Summary, "", "  ")
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	if err = os.WriteFile(sumpath, b, 0644); err != nil {
		return chk.Err("cannot write summary:\n%v", err)
	}
	if verbose {
		io.Pf("> summary written to %s\n", sumpath)
	}
	return
}
