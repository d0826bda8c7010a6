package main

import (
	"github.com/spf13/cobra"

	"github.com/alexhholmes/abilayout/internal/abi"
	"github.com/alexhholmes/abilayout/internal/logger"
	"github.com/alexhholmes/abilayout/internal/report"
	"github.com/alexhholmes/abilayout/lib"
	"github.com/alexhholmes/abilayout/lib/rev2"
)

func newSimulateCmd(opts *options) *cobra.Command {
	var (
		caller, callee int
		minor, major   uint8
		guard          int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Hand a record built for one library revision to another revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := lib.Lookup(caller)
			if err != nil {
				return err
			}
			to, err := lib.Lookup(callee)
			if err != nil {
				return err
			}

			// Revision 2 reports its calls; keep structured output parseable
			if opts.format == report.Text {
				defer rev2.SetOutput(rev2.SetOutput(cmd.OutOrStdout()))
			} else {
				defer rev2.SetOutput(rev2.SetOutput(cmd.ErrOrStderr()))
			}

			sim := abi.NewSimulator(logger.Named("abi"))
			sim.GuardBytes = guard

			res, err := sim.Run(from, to, minor, major)
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), opts.format, res)
		},
	}

	cmd.Flags().IntVar(&caller, "caller", 1, "Revision the caller was built against")
	cmd.Flags().IntVar(&callee, "callee", 2, "Revision of the library being called")
	cmd.Flags().Uint8Var(&minor, "minor", 0xCD, "Minor version byte")
	cmd.Flags().Uint8Var(&major, "major", 0xAB, "Major version byte")
	cmd.Flags().IntVar(&guard, "guard", abi.DefaultGuardBytes, "Bytes of neighbouring memory after the caller's record")
	return cmd
}
