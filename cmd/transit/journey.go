package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	earliest "transit.dev/earliest"
	"transit.dev/earliest/graph"
)

var journeyCmd = &cobra.Command{
	Use:   "journey <dir> <dep> <dest> <RFC3339 datetime>",
	Short: "Find the earliest-arrival journey between two named stops",
	Args:  cobra.ExactArgs(4),
	RunE:  journey,
}

func journey(cmd *cobra.Command, args []string) error {
	dir, dep, dest, whenStr := args[0], args[1], args[2], args[3]

	when, err := time.Parse(time.RFC3339, whenStr)
	if err != nil {
		return fmt.Errorf("invalid datetime %q: %w", whenStr, err)
	}

	store, err := openStorage()
	if err != nil {
		return err
	}

	network, err := earliest.NewNetwork(dir, store, earliest.DefaultConfig())
	if err != nil {
		return err
	}

	j, err := network.FindJourney(dep, dest, when)
	if err != nil {
		return err
	}

	for _, step := range j.Steps {
		fmt.Println(renderStep(step))
	}

	return nil
}

func renderStep(step earliest.Step) string {
	h, m, s := step.Time/3600, (step.Time/60)%60, step.Time%60
	clock := fmt.Sprintf("%02d:%02d:%02d", h, m, s)

	switch step.Location.Kind {
	case graph.AtStop:
		return fmt.Sprintf("%s  at stop %s", clock, step.Location.StopID)
	case graph.OnTrip:
		return fmt.Sprintf("%s  on trip %s", clock, step.Location.TripID)
	default:
		return clock
	}
}
