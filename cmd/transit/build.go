package main

import (
	"fmt"

	"github.com/spf13/cobra"

	earliest "transit.dev/earliest"
)

var buildCmd = &cobra.Command{
	Use:   "build <dir>",
	Short: "Load and compile a network from a GTFS feed directory",
	Args:  cobra.ExactArgs(1),
	RunE:  build,
}

func build(cmd *cobra.Command, args []string) error {
	dir := args[0]

	store, err := openStorage()
	if err != nil {
		return err
	}

	network, err := earliest.NewNetwork(dir, store, earliest.DefaultConfig())
	if err != nil {
		return err
	}

	fmt.Printf("stops:  %d\n", len(network.Stops))
	fmt.Printf("trips:  %d\n", len(network.Trips))
	fmt.Printf("routes: %d\n", len(network.Routes))
	fmt.Printf("nodes:  %d\n", len(network.Graph.Nodes))

	return nil
}
