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
	"github.com/sirupsen/logrus"
)

// Log receives progress messages from the metric dispatcher.
var Log logrus.FieldLogger = logrus.StandardLogger()

// RunFunc calculates a scalar value for the model run identified by runID.
type RunFunc func(runID string) (float64, error)

// MetricFunc calculates a scalar value for the model run identified by
// runID, with any additional arguments the metric requires.
type MetricFunc func(runID string, args ...interface{}) (float64, error)

// ApplyFunc returns the result of f for runID. Any error from f is
// returned unchanged.
func ApplyFunc(f RunFunc, runID string) (float64, error) {
	return f(runID)
}

// ApplyFuncs applies each of fs to runID and returns the results in the
// same order as fs. It stops at the first error.
func ApplyFuncs(fs []RunFunc, runID string) ([]float64, error) {
	o := make([]float64, len(fs))
	for i, f := range fs {
		v, err := ApplyFunc(f, runID)
		if err != nil {
			return nil, err
		}
		o[i] = v
	}
	return o, nil
}

// ApplyMetric applies f, with the additional arguments args, to every
// run listed in the "id" column of parameterFile. If parameterFile is
// empty, DefaultParameterFile is used. The results are in the same order
// as the table rows. Any failure aborts the whole batch and no partial
// results are returned.
func ApplyMetric(f MetricFunc, parameterFile string, args ...interface{}) ([]float64, error) {
	if parameterFile == "" {
		parameterFile = DefaultParameterFile
	}
	p, err := OpenParameterTable(parameterFile)
	if err != nil {
		return nil, err
	}
	runIDs, err := p.RunIDs()
	if err != nil {
		return nil, err
	}
	return ApplyMetricRuns(f, runIDs, args...)
}

// ApplyMetricRuns applies f, with the additional arguments args, to each
// of runIDs in order. Any failure aborts the whole batch and no partial
// results are returned.
func ApplyMetricRuns(f MetricFunc, runIDs []string, args ...interface{}) ([]float64, error) {
	o := make([]float64, len(runIDs))
	for i, runID := range runIDs {
		v, err := f(runID, args...)
		if err != nil {
			return nil, err
		}
		Log.WithFields(logrus.Fields{
			"run":   runID,
			"value": v,
		}).Debug("applied metric")
		o[i] = v
	}
	return o, nil
}
