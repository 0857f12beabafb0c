package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/miqat-labs/miqat/internal/aladhan"
	"github.com/miqat-labs/miqat/internal/prayer"
)

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's prayer schedule",
		RunE:  runToday,
	}
}

func runToday(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	place, err := resolvePlace(ctx, cmd)
	if err != nil {
		return err
	}

	conv, err := convention()
	if err != nil {
		return err
	}

	provider := prayer.NewProvider(aladhan.NewClient())
	schedule, err := provider.FetchSchedule(ctx, place.Coordinate, time.Now(), conv)
	if err != nil && !errors.Is(err, prayer.ErrScheduleFetchFailed) {
		return err
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: prayer times service unavailable, showing default times")
	}

	if FlagJSON {
		return json.NewEncoder(os.Stdout).Encode(schedule)
	}

	fmt.Printf("%s  (%s)\n", place.Label, conv)
	for _, ev := range schedule.Events {
		display := ev.Display
		if !ev.Known() {
			display = "--"
		}
		fmt.Printf("  %-8s %s\n", ev.Name, display)
	}
	return nil
}
