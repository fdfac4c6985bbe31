package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/robmorgan/showtape/config"
	"github.com/robmorgan/showtape/playback"
)

func newVerifyCommand() *cobra.Command {
	cfg := config.VerifyConfig{}

	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Verify a show file without driving any hardware",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ShowFile = args[0]
			if err := cfg.Validate(); err != nil {
				return err
			}

			verifier := playback.NewVerifier(cfg.ShowFile)
			summary, err := verifier.Verify(cmd.Context(), cfg.Window())
			// The summary covers whatever was readable, so print it even
			// when the scan stopped on corrupt data.
			printSummary(cmd.OutOrStdout(), cfg, summary)
			return err
		},
	}

	cmd.Flags().Uint64Var(&cfg.StartMS, "start", 0, "Time (milliseconds) in the show file to start from")
	cmd.Flags().Uint64Var(&cfg.StopMS, "stop", 0, "Time (milliseconds) in the show file to stop at")

	return cmd
}

func printSummary(w io.Writer, cfg config.VerifyConfig, summary playback.Summary) {
	fmt.Fprintln(w, "------------ Summary ----------")
	if cfg.StartMS > 0 {
		fmt.Fprintf(w, "Starting at: %g second(s)\n", float64(cfg.StartMS)/1000.0)
	}
	if cfg.StopMS > 0 {
		fmt.Fprintf(w, "Stopping at: %g second(s)\n", float64(cfg.StopMS)/1000.0)
	}
	for _, universe := range summary.Counts.Universes() {
		fmt.Fprintf(w, "Universe %d: %d frames\n", universe, summary.Counts.Frames(universe))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total frames: %d\n", summary.Counts.Total())
	fmt.Fprintf(w, "Playback time: %g second(s)\n", float64(summary.PlaybackTimeMS)/1000.0)
}
