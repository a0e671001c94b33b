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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/oceanmetrics"
)

// storeConfig returns the model output store specified by cfg.
func storeConfig(cfg *viper.Viper) (*oceanmetrics.NetCDFStore, error) {
	template := os.ExpandEnv(cfg.GetString("RunTemplate"))
	if template == "" {
		return nil, fmt.Errorf("you need to specify the location of the model output in the " +
			"'RunTemplate' configuration variable.")
	}
	format := oceanmetrics.Format(strings.ToLower(os.ExpandEnv(cfg.GetString("StoreFormat"))))
	s, err := oceanmetrics.NewStore(format, template)
	if err != nil {
		return nil, err
	}
	s.Vars.U = cfg.GetString("Variables.U")
	s.Vars.W = cfg.GetString("Variables.W")
	s.Vars.B = cfg.GetString("Variables.B")
	if !(cfg.GetFloat64("Rhow") > 0) {
		return nil, fmt.Errorf("oceanmetrics: Rhow=%g but should be >0", cfg.GetFloat64("Rhow"))
	}
	return s, nil
}

// runPath replaces the run identifier wildcard in the given file
// template and expands any environment variables.
func runPath(template, runID string) string {
	return strings.Replace(os.ExpandEnv(template), oceanmetrics.RunIDWildcard, runID, -1)
}

// checkOutputFile makes sure that the directory of the output file
// exists, and expands any environment variables. An empty f is
// returned unchanged.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return f, nil
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("oceanmetrics: the output file directory doesn't exist: %v", err)
	}
	return f, nil
}
