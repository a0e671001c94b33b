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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultParameterFile is where the parameter table is read from
// when no other location is given.
const DefaultParameterFile = "./parameters.txt"

// RunIDColumn is the parameter table column holding run identifiers.
const RunIDColumn = "id"

// ErrMissingColumn is returned when a parameter table lacks a requested column.
var ErrMissingColumn = errors.New("oceanmetrics: parameter table column not found")

// ParameterTable holds the parameters of a set of model runs, one run
// per row.
type ParameterTable struct {
	Header []string
	Rows   [][]string
}

// ReadParameterTable reads a comma-separated parameter table. The first
// record is the header.
func ReadParameterTable(r io.Reader) (*ParameterTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("oceanmetrics: parameter table is empty")
		}
		return nil, fmt.Errorf("oceanmetrics: reading parameter table header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	p := &ParameterTable{Header: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("oceanmetrics: reading parameter table: %w", err)
		}
		p.Rows = append(p.Rows, rec)
	}
	return p, nil
}

// OpenParameterTable reads the parameter table in the named file.
func OpenParameterTable(filename string) (*ParameterTable, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("oceanmetrics: opening parameter file: %w", err)
	}
	defer f.Close()
	p, err := ReadParameterTable(f)
	if err != nil {
		return nil, fmt.Errorf("oceanmetrics: parameter file %s: %w", filename, err)
	}
	return p, nil
}

// Column returns the values in the named column, in row order.
func (p *ParameterTable) Column(name string) ([]string, error) {
	col := -1
	for i, h := range p.Header {
		if h == name {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrMissingColumn, name, p.Header)
	}
	o := make([]string, len(p.Rows))
	for i, row := range p.Rows {
		o[i] = strings.TrimSpace(row[col])
	}
	return o, nil
}

// RunIDs returns the run identifiers in the table, in row order.
func (p *ParameterTable) RunIDs() ([]string, error) {
	return p.Column(RunIDColumn)
}
