package main

import (
	"fmt"

	"github.com/spf13/cobra"

	earliest "transit.dev/earliest"
)

var groupsCmd = &cobra.Command{
	Use:   "groups <dir> <name>",
	Short: "Resolve a stop name to its group and list member stops",
	Args:  cobra.ExactArgs(2),
	RunE:  groups,
}

func groups(cmd *cobra.Command, args []string) error {
	dir, name := args[0], args[1]

	store, err := openStorage()
	if err != nil {
		return err
	}

	network, err := earliest.NewNetwork(dir, store, earliest.DefaultConfig())
	if err != nil {
		return err
	}

	group, err := network.Stations.Resolve(name)
	if err != nil {
		return err
	}

	fmt.Printf("group: %s\n", group.RootID)
	for _, stopID := range group.Stops {
		stop, _ := network.GetStop(stopID)
		fmt.Printf("  %s: %s\n", stopID, stop.Name)
	}

	return nil
}
