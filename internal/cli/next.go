package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/miqat-labs/miqat/internal/aladhan"
	"github.com/miqat-labs/miqat/internal/model"
	"github.com/miqat-labs/miqat/internal/prayer"
)

func newNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		RunE:  runNext,
	}
}

func runNext(cmd *cobra.Command, args []string) error {
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

	now := time.Now()
	ev := nextEvent(schedule, now)
	if ev == nil {
		return fmt.Errorf("no upcoming event available")
	}

	current := prayer.MinuteOfDay(now)
	until := (ev.Minutes - current + 24*60) % (24 * 60)

	if FlagJSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"name":          ev.Name,
			"display":       ev.Display,
			"minutes_until": until,
		})
	}

	fmt.Printf("%s %s (%s)\n", ev.Name, ev.Display, formatRemaining(until))
	return nil
}

// nextEvent scans the canonical order for the first event strictly after
// now, wrapping to the first known event when the day is over.
func nextEvent(schedule model.DailySchedule, now time.Time) *model.PrayerEvent {
	current := prayer.MinuteOfDay(now)
	for i := range schedule.Events {
		ev := &schedule.Events[i]
		if ev.Known() && ev.Minutes > current {
			return ev
		}
	}
	for i := range schedule.Events {
		if schedule.Events[i].Known() {
			return &schedule.Events[i]
		}
	}
	return nil
}

// formatRemaining formats a minute count as "Xh Ym" or "Ym".
func formatRemaining(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
