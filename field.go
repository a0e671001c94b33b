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

// Field is a physical variable sampled on a staggered grid. Data has
// dimensions (z, x) or (time, z, x); Z and X record where along each
// spatial axis the samples sit.
type Field struct {
	Data *sparse.DenseArray
	Z, X Stagger
}

// NewField returns a zero-valued field with the given staggering and shape.
func NewField(z, x Stagger, dims ...int) *Field {
	return &Field{Data: sparse.ZerosDense(dims...), Z: z, X: x}
}

// NewFieldFrom wraps data with the given staggering. The data is not copied.
func NewFieldFrom(data *sparse.DenseArray, z, x Stagger) *Field {
	return &Field{Data: data, Z: z, X: x}
}

// HasTime reports whether the field has a leading time dimension.
func (f *Field) HasTime() bool { return len(f.Data.Shape) == 3 }

// Nt returns the number of time steps, which is 1 for a field without
// a time dimension.
func (f *Field) Nt() int {
	if f.HasTime() {
		return f.Data.Shape[0]
	}
	return 1
}

// SpatialShape returns the lengths of the z and x dimensions.
func (f *Field) SpatialShape() (nz, nx int) {
	s := f.Data.Shape
	return s[len(s)-2], s[len(s)-1]
}

// Dims returns the dimension names of the field, e.g. [time zC xF].
func (f *Field) Dims() []string {
	dims := []string{"z" + f.Z.String(), "x" + f.X.String()}
	if f.HasTime() {
		return append([]string{"time"}, dims...)
	}
	return dims
}

// CheckOn makes sure that f is sampled at the given staggering of g.
func (f *Field) CheckOn(g *Grid, z, x Stagger) error {
	if n := len(f.Data.Shape); n != 2 && n != 3 {
		return fmt.Errorf("oceanmetrics: field must have 2 or 3 dimensions but has %d", n)
	}
	if f.Z != z || f.X != x {
		return fmt.Errorf("oceanmetrics: field is at (z%v, x%v) but should be at (z%v, x%v)",
			f.Z, f.X, z, x)
	}
	nz, nx := f.SpatialShape()
	wantZ, wantX := len(g.Z(z)), len(g.X(x))
	if nz != wantZ || nx != wantX {
		return fmt.Errorf("oceanmetrics: field at (z%v, x%v) has spatial shape (%d, %d) but grid requires (%d, %d)",
			z, x, nz, nx, wantZ, wantX)
	}
	return nil
}

// Step returns the (z, x) slice of f at time index t. The returned
// array shares its elements with f.
func (f *Field) Step(t int) *sparse.DenseArray {
	nz, nx := f.SpatialShape()
	if !f.HasTime() {
		if t != 0 {
			panic(fmt.Errorf("oceanmetrics: time index %d out of range for field without time dimension", t))
		}
		return f.Data
	}
	if t < 0 || t >= f.Data.Shape[0] {
		panic(fmt.Errorf("oceanmetrics: time index %d out of range [0, %d)", t, f.Data.Shape[0]))
	}
	out := sparse.ZerosDense(nz, nx)
	n := nz * nx
	out.Elements = f.Data.Elements[t*n : (t+1)*n]
	return out
}
