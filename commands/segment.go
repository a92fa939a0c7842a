package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mwestrom/tally/internal/util"
)

var (
	segmentDate  string
	segmentForce bool
)

var deleteSegmentCmd = &cobra.Command{
	Use:   "delete-segment <index>",
	Short: "Remove one timeline segment from the log",
	Long: `Remove the recorded span behind one timeline segment. Indexes refer to
the numbered list printed by "tally timeline" for the same day.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeleteSegment,
}

func init() {
	deleteSegmentCmd.Flags().StringVar(&segmentDate, "date", "",
		"Day the segment belongs to (YYYY-MM-DD); defaults to today")
	deleteSegmentCmd.Flags().BoolVarP(&segmentForce, "force", "f", false,
		"Skip the confirmation prompt")
	rootCmd.AddCommand(deleteSegmentCmd)
}

func runDeleteSegment(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 {
		return fmt.Errorf("invalid segment index %q", args[0])
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	date, err := parseDateFlag(segmentDate)
	if err != nil {
		return err
	}

	data, err := eng.Timeline(date)
	if err != nil {
		return err
	}
	if index > len(data.Segments) {
		return fmt.Errorf("segment %d does not exist, the day has %d segments", index, len(data.Segments))
	}
	seg := data.Segments[index-1]

	loc := util.GetTimeProvider().Location()
	desc := fmt.Sprintf("%s %s - %s", seg.DisplayName,
		util.FormatClock(seg.Start, loc), util.FormatClock(seg.End, loc))
	if !segmentForce && !confirm(fmt.Sprintf("Remove segment %s?", desc)) {
		fmt.Println("canceled")
		return nil
	}

	if _, err := eng.DeleteSegment(seg.Timer, seg.Start, seg.End); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", desc)
	return nil
}
