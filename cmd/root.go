/*
   Copyright 2024-2026 The ERS authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cmd implements the ers command line tool.
package cmd

import (
	"github.com/spf13/cobra"
	v "github.com/spf13/viper"

	"github.com/ltans/evidence/log"
)

// Root is the base command of the ers tool.
var Root = &cobra.Command{
	Use:   "ers",
	Short: "RFC 4998 evidence record toolkit",
	Long: "Ers implements renewable long-term evidence records over hash trees: " +
		"tree construction, inclusion-proof reduction, record creation, " +
		"cross-algorithm renewal and chain verification.",
	// SilenceUsage is set to true -> https://github.com/spf13/cobra/issues/340
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetLogger("Ers", v.GetString("log"))
	},
}

func init() {
	f := Root.PersistentFlags()
	f.StringP("log", "l", "error", "Verbosity: silent, error, info, debug")
	_ = v.BindPFlag("log", f.Lookup("log"))

	v.SetEnvPrefix("ERS")
	v.AutomaticEnv()

	Root.AddCommand(newDemoCommand())
	Root.AddCommand(newVersionCommand())
}
