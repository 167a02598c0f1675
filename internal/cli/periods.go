package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jasperquin/heartlog/internal/cycle"
	"github.com/jasperquin/heartlog/internal/model"
	"github.com/jasperquin/heartlog/internal/store"
)

func init() {
	periodCmd := &cobra.Command{
		Use:   "period",
		Short: "Track periods and cycle statistics",
	}

	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log a period",
		Run:   runPeriodLog,
	}
	logCmd.Flags().String("start", "", "Start date (YYYY-MM-DD, required)")
	logCmd.Flags().String("end", "", "End date (YYYY-MM-DD); omit while ongoing")
	logCmd.Flags().String("notes", "", "Free-form notes")
	logCmd.Flags().String("mood", "", "Mood: happy, tired, emotional, energetic, crampy")
	logCmd.MarkFlagRequired("start")

	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a period",
		Long:  "Replace a period's fields. Omitting --end marks it as still ongoing.",
		Args:  cobra.ExactArgs(1),
		Run:   runPeriodEdit,
	}
	editCmd.Flags().String("start", "", "Start date (YYYY-MM-DD, required)")
	editCmd.Flags().String("end", "", "End date (YYYY-MM-DD); omit while ongoing")
	editCmd.Flags().String("notes", "", "Free-form notes")
	editCmd.Flags().String("mood", "", "Mood")
	editCmd.MarkFlagRequired("start")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List logged periods",
		Run:   runPeriodList,
	}
	listCmd.Flags().Int("year", 0, "Filter by year")
	listCmd.Flags().Int("month", 0, "Filter by month (1-12)")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cycle statistics and the next-period prediction",
		Run:   runPeriodStats,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "Show the estimated current cycle phase",
		Run:   runPeriodPhase,
	}

	insightCmd := &cobra.Command{
		Use:   "insight",
		Short: "Describe one month's cycle against the average",
		Run:   runPeriodInsight,
	}
	insightCmd.Flags().Int("year", time.Now().Year(), "Year")
	insightCmd.Flags().Int("month", int(time.Now().Month()), "Month (1-12)")

	periodCmd.AddCommand(logCmd, editCmd, listCmd, statsCmd, phaseCmd, insightCmd)
	RootCmd.AddCommand(periodCmd)
}

func periodParamsFromFlags(cmd *cobra.Command) (store.PeriodParams, error) {
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	notes, _ := cmd.Flags().GetString("notes")
	mood, _ := cmd.Flags().GetString("mood")

	start, err := model.ParseDate(startStr)
	if err != nil {
		return store.PeriodParams{}, fmt.Errorf("invalid start date %q: %w", startStr, err)
	}
	p := store.PeriodParams{StartDate: start, Notes: notes, Mood: mood}
	if endStr != "" {
		end, err := model.ParseDate(endStr)
		if err != nil {
			return store.PeriodParams{}, fmt.Errorf("invalid end date %q: %w", endStr, err)
		}
		p.EndDate = &end
	}
	return p, nil
}

func runPeriodLog(cmd *cobra.Command, args []string) {
	p, err := periodParamsFromFlags(cmd)
	if err != nil {
		exitErr("log period", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.CreatePeriod(cmd.Context(), p)
	if err != nil {
		exitErr("log period", err)
	}
	printJSON(rec)
}

func runPeriodEdit(cmd *cobra.Command, args []string) {
	p, err := periodParamsFromFlags(cmd)
	if err != nil {
		exitErr("edit period", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.UpdatePeriod(cmd.Context(), args[0], p)
	if err != nil {
		exitErr("edit period", err)
	}
	printJSON(rec)
}

func runPeriodList(cmd *cobra.Command, args []string) {
	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	periods, err := s.ListPeriods(cmd.Context(), store.MonthFilter{Year: year, Month: month})
	if err != nil {
		exitErr("list periods", err)
	}

	if formatFlag == "text" {
		for _, p := range periods {
			end := "ongoing"
			if p.EndDate != nil {
				end = p.EndDate.Format(model.DateOnly)
			}
			fmt.Printf("%s → %s  %s  (%s)\n", p.StartDate.Format(model.DateOnly), end, p.Mood, p.ID)
		}
		return
	}
	printJSON(periods)
}

func runPeriodStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	summary, err := s.PeriodSummary(cmd.Context())
	if err != nil {
		exitErr("period stats", err)
	}

	out := struct {
		cycle.Summary
		NextPeriod *cycle.Prediction `json:"nextPeriod,omitempty"`
	}{Summary: *summary}
	if p, ok := cycle.PredictNext(*summary); ok {
		out.NextPeriod = &p
	}

	if formatFlag == "text" {
		fmt.Printf("average cycle: %.1f days (%s)\n", summary.AverageCycleLength, summary.CycleRegularity)
		fmt.Printf("average period: %.1f days\n", summary.AveragePeriodDays)
		if out.NextPeriod != nil {
			fmt.Printf("next period: %s – %s (%s confidence)\n",
				out.NextPeriod.MinDate.Format(model.DateOnly),
				out.NextPeriod.MaxDate.Format(model.DateOnly),
				out.NextPeriod.Confidence)
		}
		return
	}
	printJSON(out)
}

func runPeriodPhase(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	summary, err := s.PeriodSummary(cmd.Context())
	if err != nil {
		exitErr("period phase", err)
	}

	phase := cycle.Phase(summary.LastPeriodDate, summary.AverageCycleLength, time.Now().UTC())
	if formatFlag == "text" {
		fmt.Printf("%s: %s\n", phase.Name, phase.Description)
		return
	}
	printJSON(phase)
}

func runPeriodInsight(cmd *cobra.Command, args []string) {
	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	periods, err := s.ListPeriods(ctx, store.MonthFilter{})
	if err != nil {
		exitErr("period insight", err)
	}
	summary, err := s.PeriodSummary(ctx)
	if err != nil {
		exitErr("period insight", err)
	}

	fmt.Println(cycle.MonthInsight(periods, year, month, summary.AverageCycleLength))
}
