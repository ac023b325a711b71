package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"transit.dev/earliest/storage"
)

var rootCmd = &cobra.Command{
	Use:          "transit",
	Short:        "Earliest-arrival transit journey planner",
	Long:         "Builds and queries a time-expanded transit graph from a GTFS feed directory",
	SilenceUsage: true,
}

var cacheBackend string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cacheBackend, "cache", "c", "memory", "Record cache backend: memory|sqlite")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(journeyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func openStorage() (storage.Storage, error) {
	switch cacheBackend {
	case "memory":
		return storage.NewMemoryStorage(), nil
	case "sqlite":
		return storage.NewSQLiteStorage(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cacheBackend)
	}
}
