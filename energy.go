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
)

// DefaultRhow is the reference density of sea water [kg/m3].
const DefaultRhow = 1025.0

// newCenterField allocates a cell-centered output shaped like in,
// with or without a time dimension.
func newCenterField(in *Field, g *Grid) *Field {
	if in.HasTime() {
		return NewField(Center, Center, in.Nt(), g.Nz(), g.Nx())
	}
	return NewField(Center, Center, g.Nz(), g.Nx())
}

// KineticEnergy calculates the kinetic energy per unit width in each grid
// cell [J/m]. u must be sampled at (zC, xF) and w at (zF, xC); both are
// averaged onto cell centers before squaring. rhow is the reference
// density [kg/m3].
func KineticEnergy(u, w *Field, g *Grid, rhow float64) (*Field, error) {
	if err := g.Check(); err != nil {
		return nil, err
	}
	if err := u.CheckOn(g, Center, Face); err != nil {
		return nil, fmt.Errorf("oceanmetrics: kinetic energy u: %w", err)
	}
	if err := w.CheckOn(g, Face, Center); err != nil {
		return nil, fmt.Errorf("oceanmetrics: kinetic energy w: %w", err)
	}
	if u.HasTime() != w.HasTime() || u.Nt() != w.Nt() {
		return nil, fmt.Errorf("oceanmetrics: kinetic energy: u and w have different time dimensions (%v vs. %v)",
			u.Data.Shape, w.Data.Shape)
	}
	areas := g.Areas()
	nz, nx := g.Nz(), g.Nx()
	out := newCenterField(u, g)
	for t := 0; t < u.Nt(); t++ {
		uu, ww, o := u.Step(t), w.Step(t), out.Step(t)
		for k := 0; k < nz; k++ {
			for i := 0; i < nx; i++ {
				ucenter := (uu.Get(k, i) + uu.Get(k, i+1)) / 2
				wcenter := (ww.Get(k, i) + ww.Get(k+1, i)) / 2
				o.Elements[k*nx+i] = 0.5 * rhow * (ucenter*ucenter + wcenter*wcenter) * areas.Get(k, i)
			}
		}
	}
	return out, nil
}

// PotentialEnergy calculates the potential energy per unit width in each
// grid cell [J/m] relative to an ambient buoyancy profile. b is buoyancy
// [m/s2] sampled at (zC, xC). The ambient profile is always the column
// at the last x index of the first time step, whatever the grid layout.
// rhow is the reference density [kg/m3].
func PotentialEnergy(b *Field, g *Grid, rhow float64) (*Field, error) {
	if err := g.Check(); err != nil {
		return nil, err
	}
	if err := b.CheckOn(g, Center, Center); err != nil {
		return nil, fmt.Errorf("oceanmetrics: potential energy b: %w", err)
	}
	areas := g.Areas()
	nz, nx := g.Nz(), g.Nx()

	if b.Nt() == 0 {
		return nil, fmt.Errorf("oceanmetrics: potential energy b has no time steps")
	}
	b0 := make([]float64, nz)
	first := b.Step(0)
	for k := range b0 {
		b0[k] = first.Get(k, nx-1)
	}

	out := newCenterField(b, g)
	for t := 0; t < b.Nt(); t++ {
		bb, o := b.Step(t), out.Step(t)
		for k := 0; k < nz; k++ {
			for i := 0; i < nx; i++ {
				Δb := b0[k] - bb.Get(k, i)
				o.Elements[k*nx+i] = rhow * Δb * g.ZC[k] * areas.Get(k, i)
			}
		}
	}
	return out, nil
}
