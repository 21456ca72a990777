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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minilingo/anuvad/internal/detector"
	"github.com/minilingo/anuvad/internal/language"
)

var (
	inputFile  string
	outputFile string
	sourceLang string
	targetLang string
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate text between English and Hindi",
	Long: `Translate text between English and Hindi using MarianMT.

Text is taken from the command line arguments or from --input. When
--source is "auto" the source language is detected; when --target is
omitted it is inferred as the other supported language.

Examples:
  anuvad translate "Hello, how are you?"
  anuvad translate --source hi --target en "नमस्ते"
  anuvad translate --input letter.txt --output letter.hi.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if inputFile != "" {
			if text != "" {
				return fmt.Errorf("pass text as arguments or via --input, not both")
			}
			data, err := os.ReadFile(inputFile)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}
			text = string(data)
		}

		src := sourceLang
		if src == "" || src == "auto" {
			det := detector.New()
			code, ok := det.Detect(text)
			if !ok {
				return fmt.Errorf("could not detect the source language; pass --source")
			}
			src = string(code)
			fmt.Fprintf(os.Stderr, "Detected source language: %s\n", src)
		}

		tgt := targetLang
		if tgt == "" {
			code, err := language.Normalize(src)
			if err != nil {
				return err
			}
			tgt = string(language.Opposite(code))
		}

		tr, err := newTranslator()
		if err != nil {
			return err
		}

		out, err := tr.Translate(context.Background(), text, src, tgt)
		if err != nil {
			return err
		}

		if strings.TrimSpace(out) == "" && strings.TrimSpace(text) != "" {
			fmt.Fprintln(os.Stderr, "Translation is empty. Try a different sentence.")
		}

		if outputFile != "" {
			if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(outputFile, []byte(out), 0644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			fmt.Printf("Successfully translated %s to %s\n", src, tgt)
			return nil
		}

		fmt.Println(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "auto", "Source language code (en, hi, or auto)")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (default: the other language)")
	translateCmd.Flags().Int("max-new-tokens", 128, "Generation limit to keep outputs bounded")

	viper.BindPFlag("generation.max_new_tokens", translateCmd.Flags().Lookup("max-new-tokens"))
}
