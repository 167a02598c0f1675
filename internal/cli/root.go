// Package cli implements the heartlog CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jasperquin/heartlog/internal/config"
	"github.com/jasperquin/heartlog/internal/remote"
	"github.com/jasperquin/heartlog/internal/store"
)

var (
	dbPath     string
	formatFlag string
	useRemote  bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "heartlog",
	Short: "A shared relationship tracker",
	Long:  "Shared lists, cycle tracking, movie nights, calls and gym sessions. SQLite-backed, single binary, with an optional remote API backend.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $HEARTLOG_DB or ~/.heartlog/heartlog.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVar(&useRemote, "remote", false, "Use the remote API instead of the local database")
}

// openStore returns the local SQLite store, or the remote client when
// --remote is set. Both satisfy the same contract.
func openStore() (store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if useRemote {
		return remote.NewClient(cfg.APIURL()), nil
	}
	path := dbPath
	if path == "" {
		path, err = cfg.DatabasePath()
		if err != nil {
			return nil, err
		}
	}
	return store.NewSQLiteStore(path)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}
