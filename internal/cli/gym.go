package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jasperquin/heartlog/internal/gym"
	"github.com/jasperquin/heartlog/internal/model"
	"github.com/jasperquin/heartlog/internal/store"
)

func init() {
	gymCmd := &cobra.Command{
		Use:   "gym",
		Short: "Track gym sessions",
	}

	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log a gym day",
		Run:   runGymLog,
	}
	logCmd.Flags().String("date", time.Now().Format(model.DateOnly), "Date (YYYY-MM-DD)")
	logCmd.Flags().String("status", model.GymCompleted, "Status: completed, missed or rest")
	logCmd.Flags().String("workout", "", "Workout name")
	logCmd.Flags().String("photo", "", "Progress photo reference")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List gym sessions",
		Run:   runGymList,
	}
	listCmd.Flags().Int("year", 0, "Filter by year")
	listCmd.Flags().Int("month", 0, "Filter by month (1-12)")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show attendance statistics",
		Run:   runGymStats,
	}
	statsCmd.Flags().Int("year", 0, "Limit to a year")
	statsCmd.Flags().Int("month", 0, "Limit to a month (1-12)")

	gymCmd.AddCommand(logCmd, listCmd, statsCmd)
	RootCmd.AddCommand(gymCmd)
}

func runGymLog(cmd *cobra.Command, args []string) {
	dateStr, _ := cmd.Flags().GetString("date")
	status, _ := cmd.Flags().GetString("status")
	workout, _ := cmd.Flags().GetString("workout")
	photo, _ := cmd.Flags().GetString("photo")

	date, err := model.ParseDate(dateStr)
	if err != nil {
		exitErr("log gym session", fmt.Errorf("invalid date %q: %w", dateStr, err))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	session := model.NewGymSession(date, status, workout)
	session.ProgressPhoto = photo
	saved, err := s.SaveGymSession(cmd.Context(), session)
	if err != nil {
		exitErr("log gym session", err)
	}
	printJSON(saved)
}

func runGymList(cmd *cobra.Command, args []string) {
	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sessions, err := s.ListGymSessions(cmd.Context(), store.MonthFilter{Year: year, Month: month})
	if err != nil {
		exitErr("list gym sessions", err)
	}

	if formatFlag == "text" {
		for _, sess := range sessions {
			line := fmt.Sprintf("%s  %s", sess.Date.Format(model.DateOnly), sess.Status)
			if sess.WorkoutName != "" {
				line += "  " + sess.WorkoutName
			}
			fmt.Println(line)
		}
		return
	}
	printJSON(sessions)
}

func runGymStats(cmd *cobra.Command, args []string) {
	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	summary, err := s.GymSummary(cmd.Context(), store.MonthFilter{Year: year, Month: month})
	if err != nil {
		exitErr("gym stats", err)
	}

	out := struct {
		gym.Summary
		Motivation string `json:"motivation,omitempty"`
		PhotoDay   bool   `json:"photoDay"`
	}{Summary: *summary, PhotoDay: gym.IsPhotoDay(summary.TotalSessions)}
	if _, msg, ok := gym.Motivation(summary.RecentMisses); ok {
		out.Motivation = msg
	}

	if formatFlag == "text" {
		fmt.Printf("sessions: %d  missed: %d  streak: %d\n",
			summary.TotalSessions, summary.MissedDays, summary.CurrentStreak)
		if out.Motivation != "" {
			fmt.Println(out.Motivation)
		}
		if out.PhotoDay {
			fmt.Println("Progress photo day! 📸")
		}
		return
	}
	printJSON(out)
}
