package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexhholmes/abilayout/internal/codegen"
	"github.com/alexhholmes/abilayout/internal/logger"
)

func newGenCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "gen <file.go>",
		Short: "Generate MarshalLayout/UnmarshalLayout for every @layout record in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			log := logger.Named("gen")

			loaded, err := loadFile(input)
			if err != nil {
				return err
			}
			if len(loaded.layouts) == 0 {
				return fmt.Errorf("%s: no @layout records", input)
			}

			gens := make([]*codegen.Generator, 0, len(loaded.layouts))
			for _, a := range loaded.layouts {
				gens = append(gens, codegen.NewGenerator(a, loaded.registry, ""))
			}

			src, err := codegen.GenerateFile(loaded.file.Package, filepath.Base(input), gens...)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(src)
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(input, ".go") + "_layout.go"
			}
			if err := os.WriteFile(output, src, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			log.Info("generated codecs",
				zap.String("input", input),
				zap.String("output", output),
				zap.Int("types", len(gens)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default <input>_layout.go, - for stdout)")
	return cmd
}
