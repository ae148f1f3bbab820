package main

import (
	"fmt"

	"github.com/jrsteele09/go-travel-client/api"
	"github.com/jrsteele09/go-travel-client/trips"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newTripsCmd(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "Manage trip plans",
	}
	cmd.AddCommand(
		newTripsListCmd(d),
		newTripsCreateCmd(d),
		newTripsShowCmd(d),
		newTripsDeleteCmd(d),
	)
	return cmd
}

func newTripsListCmd(d *deps) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trip plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(d, cmd); err != nil {
				return err
			}
			state, err := d.trips.List(cmd.Context(), limit, offset)
			if err != nil {
				return errors.Wrap(err, "listing trips")
			}
			if len(state.Trips) == 0 {
				fmt.Println("No trips")
				return nil
			}
			for _, trip := range state.Trips {
				fmt.Printf("%s  %-24s %s to %s  budget %.2f\n",
					trip.ID, trip.Title, trip.StartDate, trip.EndDate, trip.Budget)
			}
			fmt.Printf("%d of %d trips\n", len(state.Trips), state.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	return cmd
}

func newTripsCreateCmd(d *deps) *cobra.Command {
	var (
		destination, start, end string
		budget                  float64
		travelers               int
		hasChildren             bool
		preferences             []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a new trip plan (may take a while)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(d, cmd); err != nil {
				return err
			}

			prefs := make([]api.TravelPreference, 0, len(preferences))
			for _, p := range preferences {
				prefs = append(prefs, api.TravelPreference(p))
			}

			fmt.Println("Generating itinerary...")
			plan, err := d.trips.Create(cmd.Context(), api.TripPlanRequest{
				Destination: destination,
				StartDate:   start,
				EndDate:     end,
				Budget:      budget,
				Travelers:   travelers,
				Preferences: prefs,
				HasChildren: hasChildren,
			})
			if err != nil {
				return errors.Wrap(err, "creating trip")
			}
			fmt.Printf("Created %q (%s), %d days, estimated cost %.2f\n",
				plan.Title, plan.ID, plan.TotalDays, plan.TotalEstimatedCost)
			return nil
		},
	}

	cmd.Flags().StringVar(&destination, "destination", "", "where to go")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&budget, "budget", 0, "total budget")
	cmd.Flags().IntVar(&travelers, "travelers", 1, "number of travelers")
	cmd.Flags().BoolVar(&hasChildren, "children", false, "traveling with children")
	cmd.Flags().StringSliceVar(&preferences, "prefs", nil, "travel preferences (food, culture, nature, ...)")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newTripsShowCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trip-id>",
		Short: "Show one trip plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(d, cmd); err != nil {
				return err
			}
			plan, err := d.trips.Get(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrap(err, "fetching trip")
			}

			fmt.Printf("%s (%s), %s to %s\n", plan.Title, plan.Destination, plan.StartDate, plan.EndDate)
			for _, day := range plan.DailyItineraries {
				fmt.Printf("  Day %d (%s): %d attractions, %d restaurants, day cost %.2f\n",
					day.Day, day.Date, len(day.Attractions), len(day.Restaurants), day.TotalCost)
			}
			markers := trips.Coordinates(*plan)
			fmt.Printf("Estimated total %.2f, %d map markers\n", plan.TotalEstimatedCost, len(markers))
			return nil
		},
	}
}

func newTripsDeleteCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trip-id>",
		Short: "Delete a trip plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(d, cmd); err != nil {
				return err
			}
			if err := d.trips.Delete(cmd.Context(), args[0]); err != nil {
				return errors.Wrap(err, "deleting trip")
			}
			fmt.Println("Deleted")
			return nil
		},
	}
}
