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
	"math"
	"reflect"
	"testing"
)

// vortyTestInputs returns a 4 z-center by 3 x-center grid with
// u[k,i] = k²(i+1) and w[k,i] = (k+1)i², so that on the interior faces
// dw/dx = (k+1)(2i-1) and du/dz = (2k-1)(i+1).
func vortyTestInputs() (u, w *Field, g *Grid) {
	g = uniformGrid(3, 4, 1, 1)
	u = NewField(Center, Face, 4, 4)
	for k := 0; k < 4; k++ {
		for i := 0; i < 4; i++ {
			u.Data.Set(float64(k*k*(i+1)), k, i)
		}
	}
	w = NewField(Face, Center, 5, 3)
	for k := 0; k < 5; k++ {
		for i := 0; i < 3; i++ {
			w.Data.Set(float64((k+1)*i*i), k, i)
		}
	}
	return
}

func TestVortyZX(t *testing.T) {
	u, w, g := vortyTestInputs()
	have, err := VortyZX(u, w, g)
	if err != nil {
		t.Fatal(err)
	}
	if have.Z != Face || have.X != Face {
		t.Errorf("vorticity should be at (zF, xF) but is at (z%v, x%v)", have.Z, have.X)
	}
	// Rows 0 and 4 only have +dw/dx, columns 0 and 3 only have -du/dz,
	// and the corners have neither.
	want := field2d(Face, Face, [][]float64{
		{0, 1, 3, 0},
		{-1, 0, 3, -4},
		{-3, -3, 0, -12},
		{-5, -6, -3, -20},
		{0, 5, 15, 0},
	})
	compareArrays(t, "vorticity", have.Data, want.Data, 1e-12)
}

func TestVortyZXShape(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {2, 5}, {7, 3}} {
		nx, nz := size[0], size[1]
		g := uniformGrid(nx, nz, 0.5, 2)
		u := NewField(Center, Face, nz, nx+1)
		w := NewField(Face, Center, nz+1, nx)
		v, err := VortyZX(u, w, g)
		if err != nil {
			t.Fatalf("nx=%d, nz=%d: %v", nx, nz, err)
		}
		if want := []int{len(g.ZF), len(g.XF)}; !reflect.DeepEqual(v.Data.Shape, want) {
			t.Errorf("nx=%d, nz=%d: want shape %v but have %v", nx, nz, want, v.Data.Shape)
		}
	}
}

func TestVortyZXMismatch(t *testing.T) {
	u, w, g := vortyTestInputs()

	t.Run("swapped", func(t *testing.T) {
		if _, err := VortyZX(w, u, g); err == nil {
			t.Error("expected an error")
		}
	})
	t.Run("truncated grid", func(t *testing.T) {
		g2 := *g
		g2.XF = g2.XF[:len(g2.XF)-1]
		if _, err := VortyZX(u, w, &g2); err == nil {
			t.Error("expected an error")
		}
	})
	t.Run("wrong shape", func(t *testing.T) {
		w2 := NewField(Face, Center, 4, 3)
		if _, err := VortyZX(u, w2, g); err == nil {
			t.Error("expected an error")
		}
	})
	t.Run("time dimension", func(t *testing.T) {
		u3 := NewField(Center, Face, 2, 4, 4)
		w3 := NewField(Face, Center, 2, 5, 3)
		if _, err := VortyZX(u3, w3, g); err == nil {
			t.Error("expected an error")
		}
	})
}

// TestVortyZXConvergence checks that the interior vorticity approaches
// the analytic value for u = sin(z), w = sin(x), where
// dw/dx - du/dz = cos(x) - cos(z), as the grid is refined.
func TestVortyZXConvergence(t *testing.T) {
	maxErr := func(n int) float64 {
		h := 1 / float64(n)
		g := uniformGrid(n, n, h, h)
		u := NewField(Center, Face, n, n+1)
		for k, z := range g.ZC {
			for i := range g.XF {
				u.Data.Set(math.Sin(z), k, i)
			}
		}
		w := NewField(Face, Center, n+1, n)
		for k := range g.ZF {
			for i, x := range g.XC {
				w.Data.Set(math.Sin(x), k, i)
			}
		}
		v, err := VortyZX(u, w, g)
		if err != nil {
			t.Fatal(err)
		}
		var e float64
		for k := 1; k < n; k++ {
			for i := 1; i < n; i++ {
				want := math.Cos(g.XF[i]) - math.Cos(g.ZF[k])
				e = math.Max(e, math.Abs(v.Data.Get(k, i)-want))
			}
		}
		return e
	}
	prev := maxErr(8)
	for _, n := range []int{16, 32, 64} {
		e := maxErr(n)
		if !(e < prev/3) {
			t.Errorf("n=%d: error %g did not decrease enough from %g", n, e, prev)
		}
		prev = e
	}
	if prev > 1e-4 {
		t.Errorf("error at finest grid is too large: %g", prev)
	}
}

func TestVortyTZX(t *testing.T) {
	u, w, g := vortyTestInputs()
	nz, nx := u.SpatialShape()
	u3 := NewField(Center, Face, 2, nz, nx)
	copy(u3.Data.Elements, u.Data.Elements)
	for i, v := range u.Data.Elements {
		u3.Data.Elements[nz*nx+i] = 2 * v
	}
	nz, nx = w.SpatialShape()
	w3 := NewField(Face, Center, 2, nz, nx)
	copy(w3.Data.Elements, w.Data.Elements)
	for i, v := range w.Data.Elements {
		w3.Data.Elements[nz*nx+i] = 2 * v
	}

	have, err := VortyTZX(u3, w3, g)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{2, 5, 4}; !reflect.DeepEqual(have.Data.Shape, want) {
		t.Fatalf("want shape %v but have %v", want, have.Data.Shape)
	}
	want2d, err := VortyZX(u, w, g)
	if err != nil {
		t.Fatal(err)
	}
	compareArrays(t, "time 0", have.Step(0), want2d.Data, 1e-12)
	compareArrays(t, "time 1", have.Step(1), want2d.Data.ScaleCopy(2), 1e-12)

	if _, err := VortyTZX(u, w, g); err == nil {
		t.Error("expected an error for fields without a time dimension")
	}
	w3short := NewField(Face, Center, 1, nz, nx)
	if _, err := VortyTZX(u3, w3short, g); err == nil {
		t.Error("expected an error for mismatched time dimensions")
	}
}
