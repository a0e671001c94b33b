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

	"github.com/ctessum/cdf"
)

// cdfReader reads variables from a classic NetCDF file.
type cdfReader struct {
	f     *os.File
	ff    *cdf.File
	fsize int64
}

func openCDF(path string) (variableReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("oceanmetrics: opening model output: %w", err)
	}
	ff, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("oceanmetrics: reading netcdf header of %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &cdfReader{f: f, ff: ff, fsize: fi.Size()}, nil
}

func (r *cdfReader) Close() error { return r.f.Close() }

func (r *cdfReader) read(name string) ([]string, []int, []float64, error) {
	lengths := r.ff.Header.Lengths(name)
	if lengths == nil {
		return nil, nil, nil, fmt.Errorf("oceanmetrics: read netcdf: variable %v not in file %s", name, r.f.Name())
	}
	dims := r.ff.Header.Dimensions(name)
	shape := make([]int, len(lengths))
	copy(shape, lengths)
	if r.ff.Header.IsRecordVariable(name) {
		shape[0] = int(r.ff.Header.NumRecs(r.fsize))
	}
	n := 1
	for _, l := range shape {
		n *= l
	}
	if n == 0 {
		return dims, shape, []float64{}, nil
	}
	start, end := make([]int, len(shape)), make([]int, len(shape))
	for i, l := range shape {
		end[i] = l - 1
	}
	rr := r.ff.Reader(name, start, end)
	buf := rr.Zero(n)
	if _, err := rr.Read(buf); err != nil {
		return nil, nil, nil, fmt.Errorf("oceanmetrics: read netcdf variable %s: %w", name, err)
	}
	vals := make([]float64, n)
	switch b := buf.(type) {
	case []float32:
		for i, v := range b {
			vals[i] = float64(v)
		}
	case []float64:
		copy(vals, b)
	default:
		return nil, nil, nil, fmt.Errorf("oceanmetrics: read netcdf variable %s: unsupported type %T", name, buf)
	}
	return dims, shape, vals, nil
}
