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

	"github.com/ctessum/sparse"
)

// VortyZX calculates the spanwise vorticity dw/dx - du/dz on a single
// (z, x) plane. u must be sampled at (zC, xF) and w at (zF, xC); the result
// is sampled at (zF, xF).
//
// dw/dx is only defined at the interior x-faces and du/dz only at the
// interior z-faces, so the outermost rows of the result hold only the
// dw/dx term, the outermost columns hold only the -du/dz term and the four
// corners are zero.
func VortyZX(u, w *Field, g *Grid) (*Field, error) {
	if err := checkVorticityInputs(u, w, g); err != nil {
		return nil, err
	}
	if u.HasTime() || w.HasTime() {
		return nil, fmt.Errorf("oceanmetrics: VortyZX needs (z, x) fields; use VortyTZX for fields with a time dimension")
	}
	out := NewField(Face, Face, len(g.ZF), len(g.XF))
	vortyStep(u.Data, w.Data, out.Data, g)
	return out, nil
}

// VortyTZX is the same as VortyZX, but for fields with a leading time
// dimension. Each time step is handled independently.
func VortyTZX(u, w *Field, g *Grid) (*Field, error) {
	if err := checkVorticityInputs(u, w, g); err != nil {
		return nil, err
	}
	if !u.HasTime() || !w.HasTime() {
		return nil, fmt.Errorf("oceanmetrics: VortyTZX needs (time, z, x) fields")
	}
	nt := u.Nt()
	if w.Nt() != nt {
		return nil, fmt.Errorf("oceanmetrics: u has %d time steps but w has %d", nt, w.Nt())
	}
	out := NewField(Face, Face, nt, len(g.ZF), len(g.XF))
	for t := 0; t < nt; t++ {
		vortyStep(u.Step(t), w.Step(t), out.Step(t), g)
	}
	return out, nil
}

func checkVorticityInputs(u, w *Field, g *Grid) error {
	if err := g.Check(); err != nil {
		return err
	}
	if err := u.CheckOn(g, Center, Face); err != nil {
		return fmt.Errorf("oceanmetrics: vorticity u: %w", err)
	}
	if err := w.CheckOn(g, Face, Center); err != nil {
		return fmt.Errorf("oceanmetrics: vorticity w: %w", err)
	}
	return nil
}

// vortyStep adds dw/dx - du/dz for one (z, x) plane into out, which must
// be zero-valued and shaped (len(ZF), len(XF)).
func vortyStep(u, w, out *sparse.DenseArray, g *Grid) {
	nzF, nxF := out.Shape[0], out.Shape[1]
	dxC, dzC := diff(g.XC), diff(g.ZC)

	// dw/dx on the interior x-faces, all z-faces.
	for k := 0; k < nzF; k++ {
		for i := 1; i < nxF-1; i++ {
			out.AddVal((w.Get(k, i)-w.Get(k, i-1))/dxC[i-1], k, i)
		}
	}
	// du/dz on the interior z-faces, all x-faces.
	for k := 1; k < nzF-1; k++ {
		for i := 0; i < nxF; i++ {
			out.AddVal(-(u.Get(k, i)-u.Get(k-1, i))/dzC[k-1], k, i)
		}
	}
}

// Vorticity calls VortyTZX if u has a time dimension and VortyZX otherwise.
func Vorticity(u, w *Field, g *Grid) (*Field, error) {
	if u.HasTime() {
		return VortyTZX(u, w, g)
	}
	return VortyZX(u, w, g)
}
