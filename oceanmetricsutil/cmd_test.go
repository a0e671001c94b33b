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
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/oceanmetrics"
)

// writeTestRun writes a classic NetCDF file with two time steps on a
// 2x2 cell grid. At the final step u is 1 in the bottom row and w is 0.
func writeTestRun(t *testing.T, path string) {
	t.Helper()
	vars := map[string]struct {
		dims []string
		vals []float64
	}{
		"xC": {[]string{"xC"}, []float64{0.5, 1.5}},
		"xF": {[]string{"xF"}, []float64{0, 1, 2}},
		"zC": {[]string{"zC"}, []float64{-1.5, -0.5}},
		"zF": {[]string{"zF"}, []float64{-2, -1, 0}},
		"u": {[]string{"time", "zC", "xF"}, []float64{
			0, 0, 0, 0, 0, 0,
			1, 1, 1, 0, 0, 0,
		}},
		"w": {[]string{"time", "zF", "xC"}, make([]float64, 12)},
		"b": {[]string{"time", "zC", "xC"}, []float64{
			1, 2, 3, 4,
			0, 2, 4, 5,
		}},
	}
	names := []string{"xC", "xF", "zC", "zF", "u", "w", "b"}
	h := cdf.NewHeader([]string{"time", "zC", "zF", "xC", "xF"}, []int{2, 2, 3, 2, 3})
	for _, name := range names {
		h.AddVariable(name, vars[name].dims, []float64{0})
	}
	h.Define()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	ff, err := cdf.Create(f, h)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		end := h.Lengths(name)
		if _, err := ff.Writer(name, make([]int, len(end)), end).Write(vars[name].vals); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := cdf.UpdateNumRecs(f); err != nil {
		t.Fatal(err)
	}
}

// setupRun writes a parameter file listing run r1 and its model output
// to a temporary directory and points the configuration at them.
func setupRun(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestRun(t, filepath.Join(dir, "r1.nc"))
	paramFile := filepath.Join(dir, "parameters.txt")
	if err := os.WriteFile(paramFile, []byte("id,amplitude\nr1,0.1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	Cfg.Set("RunTemplate", filepath.Join(dir, "[RUNID].nc"))
	Cfg.Set("StoreFormat", "cdf")
	Cfg.Set("ParameterFile", paramFile)
	Cfg.Set("Rhow", 1000.0)
	Cfg.Set("Metrics", oceanmetrics.MetricNames())
	Cfg.Set("OutputFile", "")
	return dir
}

func TestVersion(t *testing.T) {
	var buf bytes.Buffer
	Root.SetOutput(&buf)
	defer Root.SetOutput(nil)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if want := "oceanmetrics v" + oceanmetrics.Version; !strings.Contains(buf.String(), want) {
		t.Errorf("want %q but have %q", want, buf.String())
	}
}

func TestLogFormatter(t *testing.T) {
	f, ok := Log.Formatter.(*logrus.TextFormatter)
	if !ok {
		t.Fatalf("want a text formatter but have %T", Log.Formatter)
	}
	if !f.FullTimestamp {
		t.Error("log timestamps should be full")
	}
	if oceanmetrics.Log != logrus.FieldLogger(Log) {
		t.Error("the library should log through the command logger")
	}
}

const wantMetrics = "id,MaxAbsVorticity,TotalKineticEnergy,TotalPotentialEnergy\nr1,1,1000,-2500\n"

func TestMetricCmd(t *testing.T) {
	setupRun(t)
	var buf bytes.Buffer
	Root.SetOutput(&buf)
	defer Root.SetOutput(nil)
	Root.SetArgs([]string{"metric"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != wantMetrics {
		t.Errorf("want %q but have %q", wantMetrics, buf.String())
	}
}

func TestMetricCmdOutputFile(t *testing.T) {
	dir := setupRun(t)
	out := filepath.Join(dir, "metrics.csv")
	Cfg.Set("OutputFile", out)
	defer Cfg.Set("OutputFile", "")
	Root.SetArgs([]string{"metric"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != wantMetrics {
		t.Errorf("want %q but have %q", wantMetrics, string(b))
	}
}

func TestDiagnoseCmd(t *testing.T) {
	dir := setupRun(t)
	Cfg.Set("DiagnosticsFile", filepath.Join(dir, "diagnostics_[RUNID].nc"))
	Root.SetArgs([]string{"diagnose", "r1"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	s, err := oceanmetrics.NewStore(oceanmetrics.FormatCDF, filepath.Join(dir, "diagnostics_[RUNID].nc"))
	if err != nil {
		t.Fatal(err)
	}
	ke, err := s.Field("r1", "KineticEnergy")
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{2, 2, 2}; !reflect.DeepEqual(ke.Data.Shape, want) {
		t.Errorf("want shape %v but have shape %v", want, ke.Data.Shape)
	}
	if have := ke.Data.Sum(); have != 1000 {
		t.Errorf("total kinetic energy: want 1000 but have %g", have)
	}
}

func TestRunMetricsErrors(t *testing.T) {
	dir := setupRun(t)
	s, err := storeConfig(Cfg)
	if err != nil {
		t.Fatal(err)
	}
	paramFile := Cfg.GetString("ParameterFile")
	var buf bytes.Buffer
	t.Run("no metrics", func(t *testing.T) {
		if err := RunMetrics(&buf, paramFile, s, s.Vars, nil, 1000); err == nil {
			t.Error("expected an error")
		}
	})
	t.Run("unknown metric", func(t *testing.T) {
		if err := RunMetrics(&buf, paramFile, s, s.Vars, []string{"Enstrophy"}, 1000); err == nil {
			t.Error("expected an error")
		}
	})
	t.Run("same order for every metric", func(t *testing.T) {
		ordered := filepath.Join(dir, "ordered.txt")
		if err := os.WriteFile(ordered, []byte("id\nr1\nr1\n"), 0644); err != nil {
			t.Fatal(err)
		}
		var out bytes.Buffer
		if err := RunMetrics(&out, ordered, s, s.Vars, []string{"TotalKineticEnergy", "MaxAbsVorticity"}, 1000); err != nil {
			t.Fatal(err)
		}
		want := "id,TotalKineticEnergy,MaxAbsVorticity\nr1,1000,1\nr1,1000,1\n"
		if out.String() != want {
			t.Errorf("want %q but have %q", want, out.String())
		}
	})
	t.Run("missing run", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.txt")
		if err := os.WriteFile(bad, []byte("id\nr1\nr2\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := RunMetrics(&buf, bad, s, s.Vars, []string{"TotalKineticEnergy"}, 1000); err == nil {
			t.Error("expected an error")
		}
	})
	if buf.Len() != 0 {
		t.Errorf("nothing should be written after a failure but have %q", buf.String())
	}
}

func TestStoreConfig(t *testing.T) {
	newCfg := func() *viper.Viper {
		cfg := viper.New()
		cfg.Set("RunTemplate", "output/[RUNID].nc")
		cfg.Set("StoreFormat", "CDF")
		cfg.Set("Rhow", 1025.0)
		cfg.Set("Variables.U", "uvel")
		cfg.Set("Variables.W", "w")
		cfg.Set("Variables.B", "b")
		return cfg
	}
	s, err := storeConfig(newCfg())
	if err != nil {
		t.Fatal(err)
	}
	if s.Vars.U != "uvel" {
		t.Errorf("want uvel but have %s", s.Vars.U)
	}

	for name, change := range map[string]func(*viper.Viper){
		"no template":  func(c *viper.Viper) { c.Set("RunTemplate", "") },
		"no wildcard":  func(c *viper.Viper) { c.Set("RunTemplate", "output/run.nc") },
		"bad format":   func(c *viper.Viper) { c.Set("StoreFormat", "grib") },
		"zero density": func(c *viper.Viper) { c.Set("Rhow", 0.0) },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := newCfg()
			change(cfg)
			if _, err := storeConfig(cfg); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRunPath(t *testing.T) {
	os.Setenv("OCEANMETRICS_TEST_DIR", "/data")
	defer os.Unsetenv("OCEANMETRICS_TEST_DIR")
	if have, want := runPath("${OCEANMETRICS_TEST_DIR}/[RUNID]/out_[RUNID].nc", "r3"), "/data/r3/out_r3.nc"; have != want {
		t.Errorf("want %s but have %s", want, have)
	}
}

func TestCheckOutputFile(t *testing.T) {
	if f, err := checkOutputFile(""); err != nil || f != "" {
		t.Errorf("empty file: have %q, %v", f, err)
	}
	dir := t.TempDir()
	if _, err := checkOutputFile(filepath.Join(dir, "out.csv")); err != nil {
		t.Error(err)
	}
	if _, err := checkOutputFile(filepath.Join(dir, "missing", "out.csv")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
