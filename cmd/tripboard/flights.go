// The flights commands manage the trip flight record.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/outframe/tripboard/pkg/types"
)

var (
	flightsAirline   string
	flightsFrom      string
	flightsTo        string
	flightsDepart    string
	flightsReturnDep string
)

var flightsCmd = &cobra.Command{
	Use:   "flights",
	Short: "Manage the trip flight record",
}

var flightsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save trip flights and build the day-by-day itinerary",
	Long: `Save the trip's outbound and return flights. The itinerary day
columns are derived from the flight dates and the generated flight cards
are placed on the first and last day. While flights are saved, changing
the destination requires confirmation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		depart, err := time.Parse(time.RFC3339, flightsDepart)
		if err != nil {
			return fmt.Errorf("parse --depart: %w", err)
		}
		ret, err := time.Parse(time.RFC3339, flightsReturnDep)
		if err != nil {
			return fmt.Errorf("parse --return: %w", err)
		}

		engine, done, err := openEngine()
		if err != nil {
			return err
		}
		defer done()

		info := &types.FlightInfo{
			Outbound: types.FlightSegment{
				Airline:       flightsAirline,
				FromAirport:   flightsFrom,
				ToAirport:     flightsTo,
				DepartureTime: depart,
				ArrivalTime:   depart,
			},
			Return: types.FlightSegment{
				Airline:       flightsAirline,
				FromAirport:   flightsTo,
				ToAirport:     flightsFrom,
				DepartureTime: ret,
				ArrivalTime:   ret,
			},
		}
		outcome, err := engine.SaveFlights(mayEdit(), info)
		if err != nil {
			return err
		}
		return printOutcome(outcome)
	},
}

var flightsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the trip flight record (keeps the itinerary)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, done, err := openEngine()
		if err != nil {
			return err
		}
		defer done()

		outcome, err := engine.ClearFlights(mayEdit())
		if err != nil {
			return err
		}
		return printOutcome(outcome)
	},
}

func init() {
	flightsSetCmd.Flags().StringVar(&flightsAirline, "airline", "", "airline name")
	flightsSetCmd.Flags().StringVar(&flightsFrom, "from", "", "origin airport code")
	flightsSetCmd.Flags().StringVar(&flightsTo, "to", "", "destination airport code")
	flightsSetCmd.Flags().StringVar(&flightsDepart, "depart", "", "outbound departure time (RFC 3339)")
	flightsSetCmd.Flags().StringVar(&flightsReturnDep, "return", "", "return departure time (RFC 3339)")
	_ = flightsSetCmd.MarkFlagRequired("from")
	_ = flightsSetCmd.MarkFlagRequired("to")
	_ = flightsSetCmd.MarkFlagRequired("depart")
	_ = flightsSetCmd.MarkFlagRequired("return")

	flightsCmd.AddCommand(flightsSetCmd)
	flightsCmd.AddCommand(flightsClearCmd)
}
