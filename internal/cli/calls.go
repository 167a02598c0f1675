package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jasperquin/heartlog/internal/model"
	"github.com/jasperquin/heartlog/internal/store"
)

func init() {
	callCmd := &cobra.Command{
		Use:   "call",
		Short: "Track night calls",
	}

	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log a call",
		Run:   runCallLog,
	}
	logCmd.Flags().String("date", time.Now().Format(model.DateOnly), "Date (YYYY-MM-DD)")
	logCmd.Flags().String("start", "", "Start time (HH:MM)")
	logCmd.Flags().String("duration", "00:00", "Duration (HH:MM)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List calls",
		Run:   runCallList,
	}
	listCmd.Flags().Int("year", 0, "Filter by year")
	listCmd.Flags().Int("month", 0, "Filter by month (1-12)")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show call statistics for a month",
		Run:   runCallStats,
	}
	statsCmd.Flags().Int("year", time.Now().Year(), "Year")
	statsCmd.Flags().Int("month", int(time.Now().Month()), "Month (1-12)")

	callCmd.AddCommand(logCmd, listCmd, statsCmd)
	RootCmd.AddCommand(callCmd)
}

func runCallLog(cmd *cobra.Command, args []string) {
	dateStr, _ := cmd.Flags().GetString("date")
	start, _ := cmd.Flags().GetString("start")
	duration, _ := cmd.Flags().GetString("duration")

	date, err := model.ParseDate(dateStr)
	if err != nil {
		exitErr("log call", fmt.Errorf("invalid date %q: %w", dateStr, err))
	}
	if _, err := parseHHMM(duration); err != nil {
		exitErr("log call", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	saved, err := s.SaveCall(cmd.Context(), model.NewCall(date, start, duration))
	if err != nil {
		exitErr("log call", err)
	}
	printJSON(saved)
}

func runCallList(cmd *cobra.Command, args []string) {
	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	calls, err := s.ListCalls(cmd.Context(), store.MonthFilter{Year: year, Month: month})
	if err != nil {
		exitErr("list calls", err)
	}

	if formatFlag == "text" {
		for _, c := range calls {
			fmt.Printf("%s  %s for %s\n", c.Date.Format(model.DateOnly), c.StartTime, c.Duration)
		}
		return
	}
	printJSON(calls)
}

func runCallStats(cmd *cobra.Command, args []string) {
	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	calls, err := s.ListCalls(cmd.Context(), store.MonthFilter{Year: year, Month: month})
	if err != nil {
		exitErr("call stats", err)
	}

	var total time.Duration
	var longest time.Duration
	for _, c := range calls {
		d, err := parseHHMM(c.Duration)
		if err != nil {
			continue
		}
		total += d
		if d > longest {
			longest = d
		}
	}

	stats := struct {
		TotalCalls     int    `json:"totalCalls"`
		TotalTime      string `json:"totalTime"`
		LongestCall    string `json:"longestCall"`
		AveragePerCall string `json:"averagePerCall"`
	}{
		TotalCalls:  len(calls),
		TotalTime:   formatHHMM(total),
		LongestCall: formatHHMM(longest),
	}
	if len(calls) > 0 {
		stats.AveragePerCall = formatHHMM(total / time.Duration(len(calls)))
	} else {
		stats.AveragePerCall = "00:00"
	}

	if formatFlag == "text" {
		fmt.Printf("calls this month: %d\n", stats.TotalCalls)
		fmt.Printf("total time: %s\n", stats.TotalTime)
		fmt.Printf("longest call: %s\n", stats.LongestCall)
		return
	}
	printJSON(stats)
}

// parseHHMM parses a "HH:MM" duration string.
func parseHHMM(s string) (time.Duration, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid duration %q (use HH:MM)", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q (use HH:MM)", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid duration %q (use HH:MM)", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

func formatHHMM(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
