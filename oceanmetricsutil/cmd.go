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
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/oceanmetrics"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log is the logger used by the commands.
var Log = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to oceanmetrics.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum severity of log messages to print.
              Valid options are "debug", "info", "warning", and "error".`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "RunTemplate",
			usage: `
              RunTemplate is the location of the model output file for
              each run. [RUNID] is replaced by the run identifier. It can
              include environment variables.`,
			defaultVal: "./output/[RUNID].nc",
			flagsets:   []*pflag.FlagSet{metricCmd.Flags(), diagnoseCmd.Flags()},
		},
		{
			name: "StoreFormat",
			usage: `
              StoreFormat is the format of the model output files. Valid
              options are "cdf" (classic NetCDF) and "netcdf4" (NetCDF-4/HDF5,
              which can also read classic files).`,
			defaultVal: string(oceanmetrics.FormatNetCDF4),
			flagsets:   []*pflag.FlagSet{metricCmd.Flags(), diagnoseCmd.Flags()},
		},
		{
			name: "Rhow",
			usage: `
              Rhow is the reference density of sea water in kg/m³.`,
			defaultVal: oceanmetrics.DefaultRhow,
			flagsets:   []*pflag.FlagSet{metricCmd.Flags(), diagnoseCmd.Flags()},
		},
		{
			name: "Variables.U",
			usage: `
              Variables.U is the name of the horizontal velocity variable
              in the model output.`,
			defaultVal: oceanmetrics.DefaultVariables.U,
			flagsets:   []*pflag.FlagSet{metricCmd.Flags(), diagnoseCmd.Flags()},
		},
		{
			name: "Variables.W",
			usage: `
              Variables.W is the name of the vertical velocity variable
              in the model output.`,
			defaultVal: oceanmetrics.DefaultVariables.W,
			flagsets:   []*pflag.FlagSet{metricCmd.Flags(), diagnoseCmd.Flags()},
		},
		{
			name: "Variables.B",
			usage: `
              Variables.B is the name of the buoyancy variable in the
              model output.`,
			defaultVal: oceanmetrics.DefaultVariables.B,
			flagsets:   []*pflag.FlagSet{metricCmd.Flags(), diagnoseCmd.Flags()},
		},
		{
			name: "ParameterFile",
			usage: `
              ParameterFile is the path to the comma-separated table of
              model runs. It must have a column named "id" holding the
              run identifiers. It can include environment variables.`,
			defaultVal: oceanmetrics.DefaultParameterFile,
			flagsets:   []*pflag.FlagSet{metricCmd.Flags()},
		},
		{
			name: "Metrics",
			usage: `
              Metrics is the list of metrics to calculate for each run.`,
			defaultVal: oceanmetrics.MetricNames(),
			flagsets:   []*pflag.FlagSet{metricCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the comma-separated metric
              values should be written. If it is empty, the values are
              written to standard output. It can include environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{metricCmd.Flags()},
		},
		{
			name: "DiagnosticsFile",
			usage: `
              DiagnosticsFile is the path where the NetCDF diagnostics file
              should be written. [RUNID] is replaced by the run identifier.
              It can include environment variables.`,
			defaultVal: "./diagnostics_[RUNID].nc",
			flagsets:   []*pflag.FlagSet{diagnoseCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("OCEANMETRICS")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(metricCmd)
	Root.AddCommand(diagnoseCmd)

	Log.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	}
	oceanmetrics.Log = Log
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("oceanmetrics: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("oceanmetrics: invalid LogLevel: %v", err)
	}
	Log.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "oceanmetrics",
	Short: "Diagnostics and metrics for ocean model output.",
	Long: `oceanmetrics calculates vorticity, kinetic energy, and potential energy
from two-dimensional ocean model output on a staggered grid, and applies
scalar metrics to every model run listed in a parameter table.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'OCEANMETRICS_var' where 'var' is the
name of the variable to be set. Many configuration variables are additionally
allowed to contain environment variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of oceanmetrics.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("oceanmetrics v%s\n", oceanmetrics.Version)
	},
	DisableAutoGenTag: true,
}

// metricCmd is a command that applies metrics to every run in the
// parameter table.
var metricCmd = &cobra.Command{
	Use:   "metric",
	Short: "Calculate metrics for a set of model runs.",
	Long: `metric calculates the metrics specified in the Metrics configuration
variable for every model run listed in the "id" column of the ParameterFile
and writes the results as a comma-separated table.

	Available metrics:
	TotalKineticEnergy: Kinetic energy summed over the domain at the final time step [J/m]
	TotalPotentialEnergy: Potential energy summed over the domain at the final time step [J/m]
	MaxAbsVorticity: Largest vorticity magnitude at the final time step [1/s]`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storeConfig(Cfg)
		if err != nil {
			return err
		}
		out, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("oceanmetrics: creating output file: %v", err)
			}
			defer f.Close()
			w = f
		}
		return RunMetrics(w,
			os.ExpandEnv(Cfg.GetString("ParameterFile")),
			store, store.Vars,
			Cfg.GetStringSlice("Metrics"),
			Cfg.GetFloat64("Rhow"),
		)
	},
	DisableAutoGenTag: true,
}

// diagnoseCmd is a command that writes the diagnostic fields for one run.
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose RUNID",
	Short: "Calculate diagnostic fields for a model run.",
	Long: `diagnose calculates vorticity, kinetic energy, and potential energy for
every time step of the model run identified by RUNID and writes them to the
NetCDF file specified by the DiagnosticsFile configuration variable.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storeConfig(Cfg)
		if err != nil {
			return err
		}
		out, err := checkOutputFile(runPath(Cfg.GetString("DiagnosticsFile"), args[0]))
		if err != nil {
			return err
		}
		return Diagnose(store, store.Vars, args[0], Cfg.GetFloat64("Rhow"), out)
	},
	DisableAutoGenTag: true,
}
