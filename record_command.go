package main

import (
	"context"
	"fmt"

	"github.com/nickysemenza/gola"
	"github.com/spf13/cobra"
	"k8s.io/utils/clock"

	"github.com/robmorgan/showtape/config"
	"github.com/robmorgan/showtape/ola"
	"github.com/robmorgan/showtape/recorder"
)

func newRecordCommand(oladFlag *string) *cobra.Command {
	var universesFlag string

	cmd := &cobra.Command{
		Use:   "record <file>",
		Short: "Record a series of universes to a show file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			universes, err := config.ParseUniverses(universesFlag)
			if err != nil {
				return err
			}
			cfg := config.RecordConfig{ShowFile: args[0], Universes: universes}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runRecord(cmd.Context(), *oladFlag, cfg)
		},
	}

	cmd.Flags().StringVarP(&universesFlag, "universes", "u", "", "A comma separated list of universes to record")

	return cmd
}

func runRecord(ctx context.Context, oladAddress string, cfg config.RecordConfig) error {
	client, err := gola.New(oladAddress)
	if err != nil {
		return fmt.Errorf("could not connect to OLA at %s: %w", oladAddress, err)
	}
	defer client.Close()

	fetch := func(universe int) ([]byte, error) {
		resp, err := client.GetDmx(universe)
		if err != nil {
			return nil, err
		}
		return resp.Data, nil
	}
	source := ola.NewSource(fetch, clock.RealClock{}, 0)

	rec := recorder.New(cfg.ShowFile, cfg.Universes, source, clock.RealClock{})
	if err := rec.Init(); err != nil {
		return err
	}

	// The interrupt-driven stop path. Even if the surrounding context is
	// never cancelled, an explicit rec.Stop() still ends the capture.
	go func() {
		<-ctx.Done()
		rec.Stop()
	}()

	fmt.Println("Recording, hit Control-C to end")
	if err := rec.Record(); err != nil {
		return err
	}
	fmt.Printf("Saved %d frames\n", rec.FrameCount())
	return nil
}
