package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jasperquin/heartlog/internal/model"
	"github.com/jasperquin/heartlog/internal/store"
)

func init() {
	movieCmd := &cobra.Command{
		Use:   "movie",
		Short: "Track movie nights",
	}

	logCmd := &cobra.Command{
		Use:   "log [title]",
		Short: "Log a movie night",
		Long:  "Log a movie night. Logging a second movie on the same date replaces that day's entry.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runMovieLog,
	}
	logCmd.Flags().String("date", time.Now().Format(model.DateOnly), "Date (YYYY-MM-DD)")
	logCmd.Flags().Int("mine", 5, "My rating (1-10)")
	logCmd.Flags().Int("partner", 5, "Partner's rating (1-10)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List movie nights",
		Run:   runMovieList,
	}
	listCmd.Flags().Int("year", 0, "Filter by year")
	listCmd.Flags().Int("month", 0, "Filter by month (1-12)")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show movie-night statistics for a month",
		Run:   runMovieStats,
	}
	statsCmd.Flags().Int("year", time.Now().Year(), "Year")
	statsCmd.Flags().Int("month", int(time.Now().Month()), "Month (1-12)")

	movieCmd.AddCommand(logCmd, listCmd, statsCmd)
	RootCmd.AddCommand(movieCmd)
}

func runMovieLog(cmd *cobra.Command, args []string) {
	dateStr, _ := cmd.Flags().GetString("date")
	mine, _ := cmd.Flags().GetInt("mine")
	partner, _ := cmd.Flags().GetInt("partner")

	date, err := model.ParseDate(dateStr)
	if err != nil {
		exitErr("log movie", fmt.Errorf("invalid date %q: %w", dateStr, err))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	title := args[0]
	for _, a := range args[1:] {
		title += " " + a
	}
	saved, err := s.SaveMovieNight(cmd.Context(), model.NewMovieNight(date, title, mine, partner))
	if err != nil {
		exitErr("log movie", err)
	}
	printJSON(saved)
}

func runMovieList(cmd *cobra.Command, args []string) {
	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	movies, err := s.ListMovieNights(cmd.Context(), store.MonthFilter{Year: year, Month: month})
	if err != nil {
		exitErr("list movies", err)
	}

	if formatFlag == "text" {
		for _, m := range movies {
			fmt.Printf("%s  %-30s %d/%d\n", m.Date.Format(model.DateOnly), m.Title, m.MyRating, m.PartnerRating)
		}
		return
	}
	printJSON(movies)
}

func runMovieStats(cmd *cobra.Command, args []string) {
	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	movies, err := s.ListMovieNights(cmd.Context(), store.MonthFilter{Year: year, Month: month})
	if err != nil {
		exitErr("movie stats", err)
	}

	stats := struct {
		TotalMovies   int               `json:"totalMovies"`
		MostCommonDay string            `json:"mostCommonDay"`
		BestMovie     *model.MovieNight `json:"bestMovie,omitempty"`
	}{
		TotalMovies:   len(movies),
		MostCommonDay: mostCommonDay(movies),
		BestMovie:     bestMovie(movies),
	}

	if formatFlag == "text" {
		fmt.Printf("movies this month: %d\n", stats.TotalMovies)
		fmt.Printf("most common day: %s\n", stats.MostCommonDay)
		if stats.BestMovie != nil {
			fmt.Printf("best movie: %s (%d/%d)\n", stats.BestMovie.Title, stats.BestMovie.MyRating, stats.BestMovie.PartnerRating)
		}
		return
	}
	printJSON(stats)
}

func mostCommonDay(movies []model.MovieNight) string {
	if len(movies) == 0 {
		return "N/A"
	}
	counts := map[string]int{}
	for _, m := range movies {
		counts[m.Date.Weekday().String()]++
	}
	best, bestN := "N/A", 0
	for day, n := range counts {
		if n > bestN {
			best, bestN = day, n
		}
	}
	return best
}

// bestMovie is the night with the highest combined rating.
func bestMovie(movies []model.MovieNight) *model.MovieNight {
	if len(movies) == 0 {
		return nil
	}
	best := movies[0]
	for _, m := range movies[1:] {
		if m.MyRating+m.PartnerRating > best.MyRating+best.PartnerRating {
			best = m
		}
	}
	return &best
}
