package main

import (
	"github.com/spf13/cobra"

	"github.com/robmorgan/showtape/config"
)

// defaultOladAddress is where a locally running olad listens.
const defaultOladAddress = "localhost:9010"

func newRootCommand() *cobra.Command {
	var oladFlag string

	rootCmd := &cobra.Command{
		Use:           "showtape",
		Short:         "Record and play back OLA shows",
		Long:          "Record a series of universes, or playback or verify a previously recorded show.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Help()
			return config.NewUsageError("one of record, playback or verify must be provided")
		},
	}

	rootCmd.PersistentFlags().StringVar(&oladFlag, "olad", defaultOladAddress, "Address of the olad instance to talk to")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return config.NewUsageError("%s", err)
	})

	rootCmd.AddCommand(newRecordCommand(&oladFlag))
	rootCmd.AddCommand(newPlaybackCommand(&oladFlag))
	rootCmd.AddCommand(newVerifyCommand())

	return rootCmd
}

// exactArgs is cobra.ExactArgs with the failure reported as a usage error
// so it maps to the right exit status.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return config.NewUsageError("%s", err)
		}
		return nil
	}
}
