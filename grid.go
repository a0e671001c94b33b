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

// Stagger specifies where along an axis a variable is sampled.
type Stagger int

const (
	// Center means the variable is sampled at cell midpoints.
	Center Stagger = iota
	// Face means the variable is sampled at cell boundaries.
	Face
)

func (s Stagger) String() string {
	switch s {
	case Center:
		return "C"
	case Face:
		return "F"
	default:
		return fmt.Sprintf("Stagger(%d)", int(s))
	}
}

// Grid holds the coordinates of a staggered two-dimensional (x, z) grid.
// For an axis with N cell centers there are N+1 cell faces.
type Grid struct {
	XC, XF []float64 // horizontal cell centers and faces
	ZC, ZF []float64 // vertical cell centers and faces
}

// Check makes sure the face coordinates bound the center coordinates
// along both axes.
func (g *Grid) Check() error {
	if len(g.XC) == 0 || len(g.ZC) == 0 {
		return fmt.Errorf("oceanmetrics: grid has no cell centers (nx=%d, nz=%d)", len(g.XC), len(g.ZC))
	}
	if len(g.XF) != len(g.XC)+1 {
		return fmt.Errorf("oceanmetrics: grid has %d x-faces for %d x-centers; want %d",
			len(g.XF), len(g.XC), len(g.XC)+1)
	}
	if len(g.ZF) != len(g.ZC)+1 {
		return fmt.Errorf("oceanmetrics: grid has %d z-faces for %d z-centers; want %d",
			len(g.ZF), len(g.ZC), len(g.ZC)+1)
	}
	return nil
}

// Nx is the number of cells in the horizontal direction.
func (g *Grid) Nx() int { return len(g.XC) }

// Nz is the number of cells in the vertical direction.
func (g *Grid) Nz() int { return len(g.ZC) }

// X returns the horizontal coordinates at the given staggering.
func (g *Grid) X(s Stagger) []float64 {
	if s == Face {
		return g.XF
	}
	return g.XC
}

// Z returns the vertical coordinates at the given staggering.
func (g *Grid) Z(s Stagger) []float64 {
	if s == Face {
		return g.ZF
	}
	return g.ZC
}

// Dx returns the horizontal cell widths.
func (g *Grid) Dx() []float64 { return diff(g.XF) }

// Dz returns the vertical cell thicknesses.
func (g *Grid) Dz() []float64 { return diff(g.ZF) }

// Areas returns the (z, x) cross-sectional area of each grid cell.
func (g *Grid) Areas() *sparse.DenseArray {
	dx, dz := g.Dx(), g.Dz()
	a := sparse.ZerosDense(len(dz), len(dx))
	for k, dzk := range dz {
		for i, dxi := range dx {
			a.Elements[k*len(dx)+i] = dzk * dxi
		}
	}
	return a
}

// diff returns the differences between adjacent elements of v.
func diff(v []float64) []float64 {
	if len(v) < 2 {
		return []float64{}
	}
	d := make([]float64, len(v)-1)
	for i := range d {
		d[i] = v[i+1] - v[i]
	}
	return d
}
