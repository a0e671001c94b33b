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

package oceanmetricsutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/oceanmetrics"
)

// RunMetrics calculates each of the named built-in metrics for every run
// listed in parameterFile and writes a comma-separated table to w with
// one row per run: the run identifier followed by the metric values.
// The parameter table is read once, so every metric sees the same runs in
// the same order.
func RunMetrics(w io.Writer, parameterFile string, store oceanmetrics.Store, vars oceanmetrics.Variables, metricNames []string, rhow float64) error {
	if len(metricNames) == 0 {
		return fmt.Errorf("there are no metrics specified. Please fill in " +
			"the Metrics configuration and try again.")
	}
	available := oceanmetrics.Metrics(store, vars)
	funcs := make([]oceanmetrics.MetricFunc, len(metricNames))
	for i, name := range metricNames {
		f, ok := available[name]
		if !ok {
			return fmt.Errorf("oceanmetrics: unknown metric %q; valid options are %v", name, oceanmetrics.MetricNames())
		}
		funcs[i] = f
	}

	p, err := oceanmetrics.OpenParameterTable(parameterFile)
	if err != nil {
		return err
	}
	runIDs, err := p.RunIDs()
	if err != nil {
		return err
	}

	values := make([][]float64, len(metricNames))
	for i, f := range funcs {
		Log.WithFields(logrus.Fields{
			"metric": metricNames[i],
			"runs":   len(runIDs),
		}).Info("calculating metric")
		values[i], err = oceanmetrics.ApplyMetricRuns(f, runIDs, rhow)
		if err != nil {
			return fmt.Errorf("oceanmetrics: calculating %s: %w", metricNames[i], err)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{oceanmetrics.RunIDColumn}, metricNames...)); err != nil {
		return err
	}
	for r, runID := range runIDs {
		row := make([]string, len(metricNames)+1)
		row[0] = runID
		for i := range metricNames {
			row[i+1] = strconv.FormatFloat(values[i][r], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Diagnose calculates the diagnostic fields for runID and writes them to
// outputFile in NetCDF format.
func Diagnose(store oceanmetrics.Store, vars oceanmetrics.Variables, runID string, rhow float64, outputFile string) error {
	Log.WithField("run", runID).Info("calculating diagnostics")
	d, err := oceanmetrics.Diagnose(store, vars, runID, rhow)
	if err != nil {
		return err
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("oceanmetrics: creating diagnostics file: %v", err)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("oceanmetrics: writing diagnostics file: %v", err)
	}
	Log.WithFields(logrus.Fields{
		"run":  runID,
		"file": outputFile,
	}).Info("wrote diagnostics")
	return f.Close()
}
