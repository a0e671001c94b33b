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
	"os"
	"sort"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// DiagnosticsVersion is written to diagnostics output files.
const DiagnosticsVersion = "1.0.0"

// DiagnosticVariable holds a diagnostic field and its metadata.
type DiagnosticVariable struct {
	Field       *Field
	Description string
	Units       string
}

// Diagnostics holds the derived fields calculated for one model run.
type Diagnostics struct {
	RunID string
	Grid  *Grid
	Rhow  float64
	Data  map[string]DiagnosticVariable
}

// Diagnose calculates vorticity, kinetic energy and potential energy for
// the model run identified by runID. rhow is the reference density [kg/m3].
func Diagnose(s Store, v Variables, runID string, rhow float64) (*Diagnostics, error) {
	g, err := s.Grid(runID)
	if err != nil {
		return nil, err
	}
	u, err := s.Field(runID, v.U)
	if err != nil {
		return nil, err
	}
	w, err := s.Field(runID, v.W)
	if err != nil {
		return nil, err
	}
	b, err := s.Field(runID, v.B)
	if err != nil {
		return nil, err
	}

	vort, err := Vorticity(u, w, g)
	if err != nil {
		return nil, err
	}
	ke, err := KineticEnergy(u, w, g, rhow)
	if err != nil {
		return nil, err
	}
	pe, err := PotentialEnergy(b, g, rhow)
	if err != nil {
		return nil, err
	}
	return &Diagnostics{
		RunID: runID,
		Grid:  g,
		Rhow:  rhow,
		Data: map[string]DiagnosticVariable{
			"Vorticity": {
				Field:       vort,
				Description: "Spanwise vorticity dw/dx - du/dz",
				Units:       "1/s",
			},
			"KineticEnergy": {
				Field:       ke,
				Description: "Kinetic energy per unit width in each grid cell",
				Units:       "J/m",
			},
			"PotentialEnergy": {
				Field:       pe,
				Description: "Potential energy per unit width in each grid cell relative to the ambient buoyancy profile",
				Units:       "J/m",
			},
		},
	}, nil
}

// Write writes d to w in NetCDF format.
func (d *Diagnostics) Write(w *os.File) error {
	g := d.Grid
	dims := []string{"zC", "zF", "xC", "xF"}
	lengths := []int{len(g.ZC), len(g.ZF), len(g.XC), len(g.XF)}
	nt := -1
	for _, dv := range d.Data {
		if dv.Field.HasTime() {
			nt = dv.Field.Nt()
			break
		}
	}
	if nt >= 0 {
		dims = append([]string{"time"}, dims...)
		lengths = append([]int{nt}, lengths...)
	}
	h := cdf.NewHeader(dims, lengths)
	h.AddAttribute("", "comment", "oceanmetrics diagnostics file")
	h.AddAttribute("", "run_id", d.RunID)
	h.AddAttribute("", "rhow", []float64{d.Rhow})
	h.AddAttribute("", "data_version", DiagnosticsVersion)

	coords := map[string][]float64{"xC": g.XC, "xF": g.XF, "zC": g.ZC, "zF": g.ZF}
	for _, name := range []string{"xC", "xF", "zC", "zF"} {
		h.AddVariable(name, []string{name}, []float64{0})
		h.AddAttribute(name, "units", "m")
	}

	// Sort the names so they write in the same order every time.
	names := make([]string, 0, len(d.Data))
	for n := range d.Data {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		dv := d.Data[name]
		if dv.Field.HasTime() && dv.Field.Nt() != nt {
			return fmt.Errorf("oceanmetrics: diagnostic %s has %d time steps but others have %d", name, dv.Field.Nt(), nt)
		}
		h.AddVariable(name, dv.Field.Dims(), []float64{0})
		h.AddAttribute(name, "description", dv.Description)
		h.AddAttribute(name, "units", dv.Units)
	}
	h.Define()

	f, err := cdf.Create(w, h) // writes the header to w
	if err != nil {
		return err
	}
	for _, name := range []string{"xC", "xF", "zC", "zF"} {
		c := coords[name]
		a := sparse.ZerosDense(len(c))
		copy(a.Elements, c)
		if err = writeNCF(f, name, a); err != nil {
			return fmt.Errorf("oceanmetrics: writing coordinate %s to netcdf file: %v", name, err)
		}
	}
	for _, name := range names {
		if err = writeNCF(f, name, d.Data[name].Field.Data); err != nil {
			return fmt.Errorf("oceanmetrics: writing variable %s to netcdf file: %v", name, err)
		}
	}
	return cdf.UpdateNumRecs(w)
}

func writeNCF(f *cdf.File, name string, data *sparse.DenseArray) error {
	// Check that data matches dimensions.
	n := 1
	for _, v := range data.Shape {
		n *= v
	}
	if len(data.Elements) != n {
		return fmt.Errorf("dims are %d but array length is %d", n, len(data.Elements))
	}
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	w := f.Writer(name, start, end)
	_, err := w.Write(data.Elements)
	return err
}
