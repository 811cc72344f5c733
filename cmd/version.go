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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version, commit, date string

// SetReleaseInfo receives the build-time release information from main.
func SetReleaseInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ers release information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ers version %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
