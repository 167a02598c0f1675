package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jasperquin/heartlog/internal/chat"
)

func init() {
	chatCmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the companion bot",
		Long:  "With a message argument, prints a single reply. Without one, starts an interactive session; quit with 'bye' or Ctrl-D.",
		Run:   runChat,
	}
	RootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) {
	bot := chat.NewBot(time.Now().UnixNano())

	if len(args) > 0 {
		fmt.Println(bot.Reply(strings.Join(args, " ")))
		return
	}

	fmt.Println(chat.Greeting)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		reply := bot.Reply(line)
		fmt.Println(reply)
		if strings.EqualFold(line, "bye") {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		exitErr("read input", err)
	}
}
