// Package cli implements the miqat terminal front end. It drives the
// location resolver and prayer-time provider directly, without the server.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miqat-labs/miqat/internal/geo"
	"github.com/miqat-labs/miqat/internal/model"
)

// Global flags shared across all subcommands.
var (
	FlagLatitude   float64
	FlagLongitude  float64
	FlagQuery      string
	FlagConvention string
	FlagJSON       bool
)

// NewRootCmd creates the root command for the miqat CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "miqat",
		Short:   "Islamic prayer times CLI",
		Long:    "Prayer times in the terminal: resolves your location, fetches the day's schedule, and shows the next upcoming prayer.",
		Version: version,
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Use a fixed latitude instead of detection")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Use a fixed longitude instead of detection")
	pf.StringVar(&FlagQuery, "query", "", "Resolve location from free text instead of the sensor")
	pf.StringVar(&FlagConvention, "convention", string(model.DefaultConvention), "Calculation convention (ISNA, MWL, Egyptian, Karachi, Umm al-Qura, Tehran, France, Turkey)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newNextCmd())

	return rootCmd
}

// resolvePlace picks the location source from the flags: fixed coordinates
// win, then a free-text query, then the sensor.
func resolvePlace(ctx context.Context, cmd *cobra.Command) (model.Place, error) {
	resolver := geo.NewResolver(geo.NewIPSensor(), geo.NewNominatimClient())

	if cmd.Flags().Changed("latitude") || cmd.Flags().Changed("longitude") {
		coord := model.Coordinate{Latitude: FlagLatitude, Longitude: FlagLongitude}
		if !coord.Valid() {
			return model.Place{}, fmt.Errorf("coordinate out of range: %v", coord)
		}
		return model.Place{Coordinate: coord, Label: coord.NumericLabel()}, nil
	}

	if FlagQuery != "" {
		return resolver.ResolveFromQuery(ctx, FlagQuery)
	}

	return resolver.ResolveFromSensor(ctx)
}

// convention parses the --convention flag.
func convention() (model.Convention, error) {
	return model.ParseConvention(FlagConvention)
}
