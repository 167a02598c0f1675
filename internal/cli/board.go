package cli

import (
	"github.com/spf13/cobra"

	"github.com/jasperquin/heartlog/internal/tui"
)

func init() {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the shared lists board",
		Long:  "Interactive two-panel board. Grab an item with space and drop it on the other panel to move it between todo and done.",
		Run:   runBoard,
	}

	RootCmd.AddCommand(cmd)
}

func runBoard(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := tui.Run(cmd.Context(), s); err != nil {
		exitErr("board", err)
	}
}
