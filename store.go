/*
Copyright © 2026 the oceanmetrics authors.
This file is part of oceanmetrics.

oceanmetrics is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

oceanmetrics is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with oceanmetrics.  If not, see <http://www.gnu.org/licenses/>.
*/

package oceanmetrics

import (
	"fmt"
	"strings"

	"github.com/ctessum/sparse"
)

// Store retrieves model output for a model run.
type Store interface {
	// Grid returns the coordinates of the grid the run was performed on.
	Grid(runID string) (*Grid, error)
	// Field returns the named variable from the run output.
	Field(runID, name string) (*Field, error)
}

// Variables holds the names of the model output variables and
// dimensions that are used to calculate diagnostics.
type Variables struct {
	U, W, B        string // velocity components and buoyancy
	XC, XF, ZC, ZF string // coordinate variables, which double as dimension names
	Time           string
}

// DefaultVariables are the variable names used by Oceananigans.jl
// NetCDF output.
var DefaultVariables = Variables{
	U: "u", W: "w", B: "b",
	XC: "xC", XF: "xF", ZC: "zC", ZF: "zF",
	Time: "time",
}

// Format is a model output file format.
type Format string

// Supported model output file formats.
const (
	// FormatCDF is the classic NetCDF format.
	FormatCDF Format = "cdf"
	// FormatNetCDF4 is the HDF5-based NetCDF-4 format. Classic files
	// can also be read with this format.
	FormatNetCDF4 Format = "netcdf4"
)

// RunIDWildcard is replaced by the run identifier in file templates.
const RunIDWildcard = "[RUNID]"

// variableReader reads variables from one model output file.
type variableReader interface {
	// read returns the dimension names, shape and flattened values
	// of the named variable.
	read(name string) (dims []string, shape []int, vals []float64, err error)
	Close() error
}

// NetCDFStore reads model output from one NetCDF file per run.
type NetCDFStore struct {
	// Template is the output file location, where RunIDWildcard is
	// replaced by the run identifier.
	Template string

	// Vars holds the variable names to read.
	Vars Variables

	open func(path string) (variableReader, error)
}

// NewStore returns a Store that reads files of the given format from
// locations given by template.
func NewStore(format Format, template string) (*NetCDFStore, error) {
	if !strings.Contains(template, RunIDWildcard) {
		return nil, fmt.Errorf("oceanmetrics: run file template %q does not contain %s", template, RunIDWildcard)
	}
	s := &NetCDFStore{Template: template, Vars: DefaultVariables}
	switch format {
	case FormatCDF:
		s.open = openCDF
	case FormatNetCDF4:
		s.open = openNative
	default:
		return nil, fmt.Errorf("oceanmetrics: invalid model output format %q; valid options are %q and %q",
			format, FormatCDF, FormatNetCDF4)
	}
	return s, nil
}

// Path returns the location of the output file for runID.
func (s *NetCDFStore) Path(runID string) string {
	return strings.Replace(s.Template, RunIDWildcard, runID, -1)
}

// Grid returns the grid coordinates stored in the output of runID.
func (s *NetCDFStore) Grid(runID string) (*Grid, error) {
	r, err := s.open(s.Path(runID))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	coord := func(name string) ([]float64, error) {
		_, shape, vals, err := r.read(name)
		if err != nil {
			return nil, err
		}
		if len(shape) != 1 {
			return nil, fmt.Errorf("oceanmetrics: coordinate %s should be 1-d but has shape %v", name, shape)
		}
		return vals, nil
	}
	g := new(Grid)
	if g.XC, err = coord(s.Vars.XC); err != nil {
		return nil, err
	}
	if g.XF, err = coord(s.Vars.XF); err != nil {
		return nil, err
	}
	if g.ZC, err = coord(s.Vars.ZC); err != nil {
		return nil, err
	}
	if g.ZF, err = coord(s.Vars.ZF); err != nil {
		return nil, err
	}
	if err := g.Check(); err != nil {
		return nil, fmt.Errorf("oceanmetrics: run %s: %w", runID, err)
	}
	return g, nil
}

// Field returns the named variable from the output of runID.
func (s *NetCDFStore) Field(runID, name string) (*Field, error) {
	r, err := s.open(s.Path(runID))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	dims, shape, vals, err := r.read(name)
	if err != nil {
		return nil, err
	}
	f, err := s.Vars.field(name, dims, shape, vals)
	if err != nil {
		return nil, fmt.Errorf("oceanmetrics: run %s: %w", runID, err)
	}
	return f, nil
}

// field works out the staggering of a variable from its dimension names.
// Singleton dimensions other than z and x are dropped; a time dimension
// may only come first.
func (v Variables) field(name string, dims []string, shape []int, vals []float64) (*Field, error) {
	if len(dims) != len(shape) {
		return nil, fmt.Errorf("variable %s has %d dimension names but %d dimensions", name, len(dims), len(shape))
	}
	var (
		outShape []int
		z, x     Stagger
		haveZ    bool
		haveX    bool
	)
	for i, d := range dims {
		switch d {
		case v.Time:
			if i != 0 {
				return nil, fmt.Errorf("variable %s: time must be the first dimension, but dimensions are %v", name, dims)
			}
			outShape = append(outShape, shape[i])
		case v.ZC, v.ZF:
			if haveX {
				return nil, fmt.Errorf("variable %s: z must come before x, but dimensions are %v", name, dims)
			}
			z, haveZ = Center, true
			if d == v.ZF {
				z = Face
			}
			outShape = append(outShape, shape[i])
		case v.XC, v.XF:
			x, haveX = Center, true
			if d == v.XF {
				x = Face
			}
			outShape = append(outShape, shape[i])
		default:
			if shape[i] != 1 {
				return nil, fmt.Errorf("variable %s: unsupported dimension %s with length %d", name, d, shape[i])
			}
		}
	}
	if !haveZ || !haveX {
		return nil, fmt.Errorf("variable %s: dimensions %v do not include both z and x", name, dims)
	}
	data := sparse.ZerosDense(outShape...)
	if len(data.Elements) != len(vals) {
		return nil, fmt.Errorf("variable %s: shape %v needs %d values but have %d", name, outShape, len(data.Elements), len(vals))
	}
	copy(data.Elements, vals)
	return NewFieldFrom(data, z, x), nil
}
