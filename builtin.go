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
	"math"
	"sort"

	"github.com/spf13/cast"
	"gonum.org/v1/gonum/floats"
)

// Metrics returns the built-in metrics, keyed by name, that read model
// output from s. Each takes an optional argument: the reference density
// rhow [kg/m3], which defaults to DefaultRhow.
func Metrics(s Store, v Variables) map[string]MetricFunc {
	return map[string]MetricFunc{
		"TotalKineticEnergy":   TotalKineticEnergy(s, v),
		"TotalPotentialEnergy": TotalPotentialEnergy(s, v),
		"MaxAbsVorticity":      MaxAbsVorticity(s, v),
	}
}

// MetricNames returns the names of the built-in metrics in sorted order.
func MetricNames() []string {
	m := Metrics(nil, DefaultVariables)
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// rhowArg returns the reference density from the optional metric arguments.
func rhowArg(args []interface{}) (float64, error) {
	switch len(args) {
	case 0:
		return DefaultRhow, nil
	case 1:
		rhow, err := cast.ToFloat64E(args[0])
		if err != nil {
			return math.NaN(), fmt.Errorf("oceanmetrics: invalid rhow argument: %w", err)
		}
		return rhow, nil
	default:
		return math.NaN(), fmt.Errorf("oceanmetrics: metric takes at most 1 argument (rhow) but got %d", len(args))
	}
}

// lastStep returns the elements of the final time step of f.
func lastStep(f *Field) ([]float64, error) {
	if f.Nt() == 0 {
		return nil, fmt.Errorf("oceanmetrics: field %v has no time steps", f.Dims())
	}
	return f.Step(f.Nt() - 1).Elements, nil
}

// TotalKineticEnergy returns a metric that sums the kinetic energy over
// the model domain at the final time step [J/m].
func TotalKineticEnergy(s Store, v Variables) MetricFunc {
	return func(runID string, args ...interface{}) (float64, error) {
		rhow, err := rhowArg(args)
		if err != nil {
			return math.NaN(), err
		}
		g, err := s.Grid(runID)
		if err != nil {
			return math.NaN(), err
		}
		u, err := s.Field(runID, v.U)
		if err != nil {
			return math.NaN(), err
		}
		w, err := s.Field(runID, v.W)
		if err != nil {
			return math.NaN(), err
		}
		ke, err := KineticEnergy(u, w, g, rhow)
		if err != nil {
			return math.NaN(), err
		}
		last, err := lastStep(ke)
		if err != nil {
			return math.NaN(), err
		}
		return floats.Sum(last), nil
	}
}

// TotalPotentialEnergy returns a metric that sums the potential energy
// over the model domain at the final time step [J/m].
func TotalPotentialEnergy(s Store, v Variables) MetricFunc {
	return func(runID string, args ...interface{}) (float64, error) {
		rhow, err := rhowArg(args)
		if err != nil {
			return math.NaN(), err
		}
		g, err := s.Grid(runID)
		if err != nil {
			return math.NaN(), err
		}
		b, err := s.Field(runID, v.B)
		if err != nil {
			return math.NaN(), err
		}
		pe, err := PotentialEnergy(b, g, rhow)
		if err != nil {
			return math.NaN(), err
		}
		last, err := lastStep(pe)
		if err != nil {
			return math.NaN(), err
		}
		return floats.Sum(last), nil
	}
}

// MaxAbsVorticity returns a metric that finds the largest vorticity
// magnitude at the final time step [1/s]. rhow is accepted but unused.
func MaxAbsVorticity(s Store, v Variables) MetricFunc {
	return func(runID string, args ...interface{}) (float64, error) {
		if _, err := rhowArg(args); err != nil {
			return math.NaN(), err
		}
		g, err := s.Grid(runID)
		if err != nil {
			return math.NaN(), err
		}
		u, err := s.Field(runID, v.U)
		if err != nil {
			return math.NaN(), err
		}
		w, err := s.Field(runID, v.W)
		if err != nil {
			return math.NaN(), err
		}
		vort, err := Vorticity(u, w, g)
		if err != nil {
			return math.NaN(), err
		}
		last, err := lastStep(vort)
		if err != nil {
			return math.NaN(), err
		}
		return floats.Norm(last, math.Inf(1)), nil
	}
}
