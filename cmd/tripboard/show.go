// The show command renders the board snapshot.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the board: columns in display order with their cards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, done, err := openEngine()
		if err != nil {
			return err
		}
		defer done()

		snap, err := engine.Snapshot()
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		if flagJSON {
			return printJSON(snap)
		}

		for _, view := range snap.Columns {
			fmt.Printf("%s (%s)\n", view.Column.Title, view.Column.ColumnID)
			for _, card := range view.Cards {
				votes := ""
				if n := len(card.Votes); n > 0 {
					votes = fmt.Sprintf("  +%d", n)
				}
				fmt.Printf("  [%s] %s  (%s)%s\n", card.Category, card.Title, card.CardID, votes)
			}
		}
		if snap.Flights != nil {
			fmt.Printf("flights: %s -> %s, %d days\n",
				snap.Flights.Outbound.FromAirport,
				snap.Flights.Outbound.ToAirport,
				snap.Flights.TripLengthDays())
		}
		return nil
	},
}
