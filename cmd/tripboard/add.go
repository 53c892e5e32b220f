// The add command creates a card and places it on the board.
package main

import (
	"github.com/spf13/cobra"

	"github.com/outframe/tripboard/pkg/types"
)

var (
	addColumn string
	addIndex  int
	addDate   string
	addNote   string
)

var addCmd = &cobra.Command{
	Use:   "add <category> <title>",
	Short: "Create a card and place it in a column",
	Long: `Create a user card of the given category and place it in a column.
The placement runs through the same validation as a move, so a category
that the target column does not admit is rejected.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, done, err := openEngine()
		if err != nil {
			return err
		}
		defer done()

		card := &types.Card{
			Category: args[0],
			Title:    args[1],
			Note:     addNote,
		}
		if addDate != "" {
			card.Schedule = &types.Schedule{Date: addDate}
		}

		var index *int
		if cmd.Flags().Changed("index") {
			index = &addIndex
		}
		outcome, err := engine.CreateCard(mayEdit(), card, addColumn, index)
		if err != nil {
			return err
		}
		return printOutcome(outcome)
	},
}

func init() {
	addCmd.Flags().StringVar(&addColumn, "to", types.ColumnInbox, "target column id")
	addCmd.Flags().IntVar(&addIndex, "index", 0, "position within the target column (default: append)")
	addCmd.Flags().StringVar(&addDate, "date", "", "scheduled date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addNote, "note", "", "free-form note text")
}
