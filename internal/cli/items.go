package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jasperquin/heartlog/internal/board"
	"github.com/jasperquin/heartlog/internal/model"
	"github.com/jasperquin/heartlog/internal/store"
)

func init() {
	itemCmd := &cobra.Command{
		Use:   "item",
		Short: "Manage shared list items",
	}

	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an item to a list",
		Args:  cobra.MinimumNArgs(1),
		Run:   runItemAdd,
	}
	addCmd.Flags().StringP("category", "c", "movies", "Category: movies, places, things")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		Run:   runItemList,
	}
	listCmd.Flags().StringP("category", "c", "", "Filter by category")
	listCmd.Flags().StringP("status", "s", "", "Filter by status: todo or done")

	editCmd := &cobra.Command{
		Use:   "edit [id] [title]",
		Short: "Rename an item",
		Args:  cobra.MinimumNArgs(2),
		Run:   runItemEdit,
	}

	doneCmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Move an item to the done list",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runItemMove(cmd, args[0], model.StatusDone)
		},
	}

	todoCmd := &cobra.Command{
		Use:   "todo [id]",
		Short: "Move an item back to the todo list",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runItemMove(cmd, args[0], model.StatusTodo)
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		Run:   runItemRm,
	}

	itemCmd.AddCommand(addCmd, listCmd, editCmd, doneCmd, todoCmd, rmCmd)
	RootCmd.AddCommand(itemCmd)
}

func runItemAdd(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")
	title := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	it, err := s.CreateItem(cmd.Context(), title, category)
	if err != nil {
		exitErr("add item", err)
	}
	printJSON(it)
}

func runItemList(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")
	status, _ := cmd.Flags().GetString("status")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	items, err := s.ListItems(cmd.Context(), store.ItemFilter{Category: category, Status: status})
	if err != nil {
		exitErr("list items", err)
	}

	if formatFlag == "text" {
		for _, it := range items {
			box := "☐"
			if it.Status == model.StatusDone {
				box = "☑"
			}
			fmt.Printf("%s %-8s %s  (%s)\n", box, it.Category, it.Title, it.ID)
		}
		return
	}
	printJSON(items)
}

func runItemEdit(cmd *cobra.Command, args []string) {
	id := args[0]
	title := strings.Join(args[1:], " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	it, err := s.PatchItem(cmd.Context(), id, store.ItemPatch{Title: &title})
	if err != nil {
		exitErr("edit item", err)
	}
	printJSON(it)
}

// runItemMove applies the board's move rule: moving an item to the
// partition it is already in issues no store call.
func runItemMove(cmd *cobra.Command, id, target string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	items, err := s.ListItems(ctx, store.ItemFilter{})
	if err != nil {
		exitErr("list items", err)
	}
	category := ""
	for _, it := range items {
		if it.ID == id {
			category = it.Category
			break
		}
	}
	if category == "" {
		exitErr("move item", fmt.Errorf("no item with id %s", id))
	}

	b, err := board.New(s, category)
	if err != nil {
		exitErr("move item", err)
	}
	if err := b.Refresh(ctx); err != nil {
		exitErr("move item", err)
	}
	if err := b.Move(ctx, id, target); err != nil {
		exitErr("move item", err)
	}

	it, _ := b.Find(id)
	printJSON(it)
}

func runItemRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.DeleteItem(cmd.Context(), args[0]); err != nil {
		exitErr("delete item", err)
	}
	fmt.Println("deleted", args[0])
}
