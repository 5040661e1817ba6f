// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON or YAML file
package inp

import (
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Data holds global data for simulations
type Data struct {
	Desc    string   `json:"desc"`    // description of simulation
	Keys    []string `json:"keys"`    // names of fields (unknowns); default = ["u"]
	Steady  bool     `json:"steady"`  // steady simulation
	ListBcs bool     `json:"listbcs"` // list boundary conditions
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string `json:"name"`      // "dense" or "umfpack"
	Symmetric bool   `json:"symmetric"` // use symmetric solver
	Verbose   bool   `json:"verbose"`   // verbose?
}

// SolverData holds FEM solver data
type SolverData struct {

	// nonlinear solver
	NmaxIt int     `json:"nmaxit"` // number of max iterations
	Tol    float64 `json:"tol"`    // tolerance on the Euclidean norm of the residual
	MaxRes float64 `json:"maxres"` // residual norm beyond which iterations diverge; 0 = no limit
	CteTg  bool    `json:"ctetg"`  // use constant tangent (modified Newton) during iterations
	ShowR  bool    `json:"showr"`  // show residual

	// time integration
	Method  string  `json:"method"`  // Butcher table; e.g. "BE", "SDIRK22"
	Cache   bool    `json:"cache"`   // cache residuals of converged stages
	DvgCtrl bool    `json:"dvgctrl"` // use divergence control
	NdvgMax int     `json:"ndvgmax"` // max number of continued divergence
	DtMin   float64 `json:"dtmin"`   // minium value of Dt

	// assembly
	Nworkers int `json:"nworkers"` // number of goroutines integrating elements; 0 or 1 = serial
}

// ProblemData holds data defining the heat conduction problem
type ProblemData struct {
	Mat string  `json:"mat"` // name of material with the conductivity model
	Src string  `json:"src"` // name of function with the heat source; "zero" = none
	Ini string  `json:"ini"` // name of function with initial values; "zero" = none
	Rho float64 `json:"rho"` // heat capacity multiplying ∂u/∂t; default = 1
}

// FaceBc holds face boundary condition
type FaceBc struct {
	Tag   int      `json:"tag"`   // tag of face
	Keys  []string `json:"keys"`  // key indicating type of bcs. ex: "u" (essential), "qn" (flux), "conv" (convection)
	Funcs []string `json:"funcs"` // name of function. ex: zero, load, myfunction1, etc. exterior temperature if "conv"
	Alpha float64  `json:"alpha"` // heat transfer coefficient of "conv"
}

// NodeBc holds node boundary condition
type NodeBc struct {
	Tag   int      `json:"tag"`   // tag of node
	Keys  []string `json:"keys"`  // key of field; ex: "u"
	Funcs []string `json:"funcs"` // name of function. ex: zero, load, myfunction1, etc.
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	Tf     float64 `json:"tf"`     // final time
	Dt     float64 `json:"dt"`     // time step size (if constant)
	DtOut  float64 `json:"dtout"`  // time step size for output
	DtFcn  string  `json:"dtfcn"`  // time step size (function name)
	DtoFcn string  `json:"dtofcn"` // time step size for output (function name)

	// derived
	DtFunc  dbf.T `json:"-" yaml:"-"` // time step function
	DtoFunc dbf.T `json:"-" yaml:"-"` // output time step function
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data        `json:"data"`      // stores global simulation data
	Mshfile   string      `json:"mshfile"`   // file path of file with mesh data
	Functions FuncsData   `json:"functions"` // stores all boundary condition functions
	Materials MatsData    `json:"materials"` // stores all materials
	LinSol    LinSolData  `json:"linsol"`    // linear solver data
	Solver    SolverData  `json:"solver"`    // FEM solver data
	Problem   ProblemData `json:"problem"`   // problem definition
	FaceBcs   []*FaceBc   `json:"facebcs"`   // face boundary conditions
	NodeBcs   []*NodeBc   `json:"nodebcs"`   // node boundary conditions
	Control   TimeControl `json:"control"`   // time control

	// derived
	Key string `json:"-" yaml:"-"` // simulation key; e.g. mysim01.sim => mysim01
	Msh *Mesh  `json:"-" yaml:"-"` // the mesh
}

// ReadSim reads all simulation data from a .sim JSON file or a .yaml/.yml YAML file
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// new sim
	o = new(Simulation)

	// read file
	b, err := readFile(simfilepath)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// set default values
	o.Solver.SetDefault()
	o.LinSol.SetDefault()
	o.Problem.SetDefault()

	// decode
	ext := strings.ToLower(filepath.Ext(simfilepath))
	if ext == ".yaml" || ext == ".yml" {
		err = yaml.Unmarshal(b, o)
	} else {
		err = json.Unmarshal(b, o)
	}
	if err != nil {
		return nil, chk.Err("ReadSim: cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	dir := os.ExpandEnv(filepath.Dir(simfilepath))
	o.Key = io.FnKey(filepath.Base(simfilepath))

	// default fields
	if len(o.Data.Keys) == 0 {
		o.Data.Keys = []string{"u"}
	}

	// set solver constants
	o.Solver.PostProcess()

	// read mesh
	o.Msh, err = ReadMsh(dir, o.Mshfile)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read mesh file:\n%v", err)
	}

	// time control
	err = o.Control.PostProcess(o.Functions)
	if err != nil {
		return nil, err
	}

	// materials
	for _, mat := range o.Materials {
		err = mat.Init()
		if err != nil {
			return nil, chk.Err("ReadSim: cannot initialise material:\n%v", err)
		}
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// GetFaceBc returns face boundary condition structure by giving a face tag
//  Note: returns nil if not found
func (o *Simulation) GetFaceBc(facetag int) *FaceBc {
	for _, fbc := range o.FaceBcs {
		if facetag == fbc.Tag {
			return fbc
		}
	}
	return nil
}

// KeyIndex returns the index of a field key or -1
func (o *Simulation) KeyIndex(key string) int {
	for i, k := range o.Data.Keys {
		if k == key {
			return i
		}
	}
	return -1
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets defaults values
func (o *LinSolData) SetDefault() {
	o.Name = "umfpack"
}

// SetDefault set defaults values
func (o *SolverData) SetDefault() {
	o.NmaxIt = 20
	o.Tol = 1e-6
	o.Method = "SDIRK22"
	o.NdvgMax = 20
	o.DtMin = 1e-8
}

// PostProcess performs a post-processing of the just read file
func (o *SolverData) PostProcess() {
	if o.Nworkers < 1 {
		o.Nworkers = 1
	}
}

// SetDefault set defaults values
func (o *ProblemData) SetDefault() {
	o.Src = "zero"
	o.Ini = "zero"
	o.Rho = 1
}

// PostProcess sets the time step functions
func (o *TimeControl) PostProcess(funcs FuncsData) (err error) {

	// fix Tf
	if o.Tf < 1e-14 {
		o.Tf = 1
	}

	// fix Dt
	if o.DtFcn == "" {
		if o.Dt < 1e-14 {
			o.Dt = 1
		}
		o.DtFunc = &dbf.Cte{C: o.Dt}
	} else {
		o.DtFunc, err = funcs.Get(o.DtFcn)
		if err != nil {
			return
		}
		o.Dt = o.DtFunc.F(0, nil)
	}

	// fix DtOut
	if o.DtoFcn == "" {
		if o.DtOut < o.Dt {
			o.DtOut = o.Dt
		}
		o.DtoFunc = &dbf.Cte{C: o.DtOut}
	} else {
		o.DtoFunc, err = funcs.Get(o.DtoFcn)
		if err != nil {
			return
		}
		o.DtOut = o.DtoFunc.F(0, nil)
	}
	return
}
