package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexhholmes/abilayout/internal/analyzer"
	"github.com/alexhholmes/abilayout/internal/logger"
	"github.com/alexhholmes/abilayout/internal/report"
)

var errIncompatible = errors.New("layouts are not binary compatible")

type comparisons []*analyzer.Comparison

func (c comparisons) String() string {
	var b strings.Builder
	for _, comp := range c {
		b.WriteString(comp.String())
	}
	return b.String()
}

func newDiffCmd(opts *options) *cobra.Command {
	var (
		typeName    string
		allowBreaks bool
	)

	cmd := &cobra.Command{
		Use:   "diff <old.go> <new.go>",
		Short: "Report binary-compatibility breaks between two revisions of a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.Named("diff")

			prev, err := loadFile(args[0])
			if err != nil {
				return err
			}
			next, err := loadFile(args[1])
			if err != nil {
				return err
			}

			var result comparisons
			for _, before := range prev.layouts {
				if typeName != "" && before.TypeName != typeName {
					continue
				}
				after, ok := next.lookup(before.TypeName)
				if !ok {
					log.Debug("type only in old file", zap.String("type", before.TypeName))
					result = append(result, analyzer.Removed(before))
					continue
				}
				result = append(result, analyzer.Compare(before, after))
			}

			if len(result) == 0 {
				if typeName != "" {
					return fmt.Errorf("type %s not declared in both files", typeName)
				}
				return fmt.Errorf("no @layout records shared by both files")
			}

			if err := report.Write(cmd.OutOrStdout(), opts.format, result); err != nil {
				return err
			}

			breaks := 0
			for _, c := range result {
				breaks += len(c.Breaks)
			}
			if breaks > 0 && !allowBreaks {
				return fmt.Errorf("%w: %d breaks", errIncompatible, breaks)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "Only compare this record type")
	cmd.Flags().BoolVar(&allowBreaks, "allow-breaks", false, "Exit zero even when the layouts are incompatible")
	return cmd
}
