package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raksonibs/waffle/internal/core/domain"
)

var (
	syncAccount string
	syncFrom    string
	syncTo      string
	syncFull    bool
	syncNoTrack bool
)

// dateLayout is the format accepted by --from and --to.
const dateLayout = "2006-01-02"

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch calendar events for a connected account",
	Long: `Fetch calendar events for a connected account.

By default the stored delta checkpoint is presented so only changes since the
last sync are fetched, and change tracking is requested so a new checkpoint is
captured. Use --full to ignore the stored checkpoint.`,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, _ []string) error {
	username := syncAccount
	if username == "" {
		accounts, err := calendarService.Accounts(cmd.Context())
		if err != nil {
			return err
		}
		switch len(accounts) {
		case 0:
			return fmt.Errorf("no accounts connected. Run 'waffle account add' first")
		case 1:
			username = accounts[0].Username
		default:
			return fmt.Errorf("multiple accounts connected, pick one with --account")
		}
	}

	start, end, err := resolveWindow(syncFrom, syncTo)
	if err != nil {
		return err
	}

	opts := domain.SyncOptions{
		UseDelta:     !syncFull,
		TrackChanges: !syncNoTrack,
	}

	result, err := calendarService.CalendarView(cmd.Context(), start, end, username, opts)
	if err != nil {
		return err
	}

	for _, ev := range result.Events {
		marker := " "
		if ev.IsAllDay {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, ev.Start, ev.Title)
	}

	fmt.Printf("%d events", len(result.Events))
	if result.DeltaToken != "" {
		fmt.Printf(", delta checkpoint stored")
	}
	fmt.Println()
	return nil
}

// resolveWindow turns the --from/--to flags into a concrete window.
// Defaults to today through 30 days out.
func resolveWindow(from, to string) (start, end time.Time, err error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)

	start = now
	if from != "" {
		start, err = time.Parse(dateLayout, from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date %q (want YYYY-MM-DD)", from)
		}
	}

	end = start.AddDate(0, 0, 30)
	if to != "" {
		end, err = time.Parse(dateLayout, to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date %q (want YYYY-MM-DD)", to)
		}
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to must be after --from")
	}
	return start, end, nil
}

func init() {
	syncCmd.Flags().StringVarP(&syncAccount, "account", "a", "", "account username to sync")
	syncCmd.Flags().StringVar(&syncFrom, "from", "", "window start date (YYYY-MM-DD, default today)")
	syncCmd.Flags().StringVar(&syncTo, "to", "", "window end date (YYYY-MM-DD, default start+30d)")
	syncCmd.Flags().BoolVar(&syncFull, "full", false, "ignore the stored delta checkpoint")
	syncCmd.Flags().BoolVar(&syncNoTrack, "no-track", false, "do not request change tracking")
	rootCmd.AddCommand(syncCmd)
}
