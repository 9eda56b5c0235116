package cmd

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "planner",
	Short: "itinerary and geospatial planning engine",
	Long:  `Plans multi-day trips: day-grouped itinerary points, accommodation resolution by date and radius search over a POI catalog.`,
}

func init() {
	RootCmd.AddCommand(serverCommand())
	RootCmd.AddCommand(migrateCommand())
}
