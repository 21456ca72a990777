/*
Copyright © 2025 The anuvad authors

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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/minilingo/anuvad/internal/language"
	"github.com/minilingo/anuvad/internal/marian"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show the pretrained model used for each translation direction",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DIRECTION\tMODEL")
		for _, src := range language.Supported() {
			for _, tgt := range language.Supported() {
				if src == tgt {
					continue
				}
				pair := language.Pair{Source: src, Target: tgt}
				fmt.Fprintf(w, "%s\t%s\n", pair, marian.ModelName(pair))
			}
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
