package main

import (
	"github.com/spf13/cobra"

	"github.com/alexhholmes/abilayout/internal/report"
)

func newDumpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file.go>",
		Short: "Print the layout of every @layout record in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadFile(args[0])
			if err != nil {
				return err
			}

			dump := make(report.Layouts, 0, len(loaded.layouts))
			for _, a := range loaded.layouts {
				dump = append(dump, report.FromAnalyzed(a))
			}
			return report.Write(cmd.OutOrStdout(), opts.format, dump)
		},
	}
}
