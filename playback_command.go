package main

import (
	"context"
	"fmt"

	"github.com/nickysemenza/gola"
	"github.com/spf13/cobra"
	"k8s.io/utils/clock"

	"github.com/robmorgan/showtape/config"
	"github.com/robmorgan/showtape/ola"
	"github.com/robmorgan/showtape/playback"
)

func newPlaybackCommand(oladFlag *string) *cobra.Command {
	cfg := config.PlaybackConfig{}

	cmd := &cobra.Command{
		Use:   "playback <file>",
		Short: "Play back a previously recorded show",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ShowFile = args[0]
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runPlayback(cmd.Context(), *oladFlag, cfg)
		},
	}

	cmd.Flags().UintVarP(&cfg.Iterations, "iterations", "i", 1, "The number of times to repeat the show, 0 means unlimited")
	cmd.Flags().UintVarP(&cfg.DelayMS, "delay", "d", 0, "The delay in ms between successive iterations")
	cmd.Flags().UintVar(&cfg.DurationS, "duration", 0, "The length of time (seconds) to run for")
	cmd.Flags().Uint64Var(&cfg.StartMS, "start", 0, "Time (milliseconds) in the show file to start playback from")
	cmd.Flags().Uint64Var(&cfg.StopMS, "stop", 0, "Time (milliseconds) in the show file to stop playback at")

	return cmd
}

func runPlayback(ctx context.Context, oladAddress string, cfg config.PlaybackConfig) error {
	client, err := gola.New(oladAddress)
	if err != nil {
		return fmt.Errorf("could not connect to OLA at %s: %w", oladAddress, err)
	}
	defer client.Close()

	player := playback.NewPlayer(cfg.ShowFile, ola.NewTransport(client), clock.RealClock{})
	_, err = player.Playback(ctx, cfg.Window())
	return err
}
