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
	"reflect"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// nativeReader reads variables from NetCDF-4 (HDF5) or classic files.
type nativeReader struct {
	path string
	nc   api.Group
}

func openNative(path string) (variableReader, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("oceanmetrics: opening model output %s: %w", path, err)
	}
	return &nativeReader{path: path, nc: nc}, nil
}

func (r *nativeReader) Close() error {
	r.nc.Close()
	return nil
}

func (r *nativeReader) read(name string) ([]string, []int, []float64, error) {
	v, err := r.nc.GetVariable(name)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("oceanmetrics: read netcdf: variable %v in file %s: %w", name, r.path, err)
	}
	vals, shape, err := flatten(v.Values)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("oceanmetrics: read netcdf variable %s: %w", name, err)
	}
	if len(shape) != len(v.Dimensions) {
		return nil, nil, nil, fmt.Errorf("oceanmetrics: read netcdf variable %s: %d dimensions but values are %d-d",
			name, len(v.Dimensions), len(shape))
	}
	return v.Dimensions, shape, vals, nil
}

// flatten converts the nested slices returned by the NetCDF reader into
// a row-major slice and its shape.
func flatten(values interface{}) ([]float64, []int, error) {
	var (
		shape []int
		out   []float64
	)
	var walk func(rv reflect.Value, depth int) error
	walk = func(rv reflect.Value, depth int) error {
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			if depth == len(shape) {
				shape = append(shape, rv.Len())
			} else if shape[depth] != rv.Len() {
				return fmt.Errorf("ragged array at depth %d: %d vs. %d elements", depth, rv.Len(), shape[depth])
			}
			for i := 0; i < rv.Len(); i++ {
				if err := walk(rv.Index(i), depth+1); err != nil {
					return err
				}
			}
		case reflect.Float32, reflect.Float64:
			out = append(out, rv.Float())
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
			out = append(out, float64(rv.Int()))
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
			out = append(out, float64(rv.Uint()))
		default:
			return fmt.Errorf("unsupported value type %v", rv.Type())
		}
		return nil
	}
	if values == nil {
		return nil, nil, fmt.Errorf("no values")
	}
	if err := walk(reflect.ValueOf(values), 0); err != nil {
		return nil, nil, err
	}
	return out, shape, nil
}
