package main

import (
	"fmt"

	"github.com/jrsteele09/go-travel-client/api"
	"github.com/jrsteele09/go-travel-client/internal/utils"
	"github.com/jrsteele09/go-travel-client/speech"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newExpensesCmd(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Track actual spend against budget",
	}
	cmd.AddCommand(
		newExpensesListCmd(d),
		newExpensesAddCmd(d),
		newExpensesSummaryCmd(d),
		newExpensesAnalyzeCmd(d),
	)
	return cmd
}

func newExpensesListCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list <trip-id>",
		Short: "List expenses for a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(d, cmd); err != nil {
				return err
			}
			state, err := d.expenses.List(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrap(err, "listing expenses")
			}
			if len(state.Expenses) == 0 {
				fmt.Println("No expenses")
				return nil
			}
			for _, e := range state.Expenses {
				fmt.Printf("%s  %s  %-12s %8.2f  %s\n", e.ID, e.Date, e.Category, e.Amount, e.Description)
			}
			return nil
		},
	}
}

func newExpensesAddCmd(d *deps) *cobra.Command {
	var (
		tripID, category, description, date, location string
		amount                                        float64
		dictate                                       bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(d, cmd); err != nil {
				return err
			}

			if dictate {
				text, err := speech.Dictate(cmd.Context(), d.recognizer)
				if err != nil {
					return errors.Wrap(err, "dictating description")
				}
				description = text
			}
			if description == "" {
				return errors.New("a description is required (--description or --dictate)")
			}

			var locPtr *string
			if location != "" {
				locPtr = utils.Ptr(location)
			}
			expense, err := d.expenses.Create(cmd.Context(), api.ExpenseCreate{
				TripID:      tripID,
				Category:    category,
				Amount:      amount,
				Description: description,
				Date:        date,
				Location:    locPtr,
			})
			if err != nil {
				return errors.Wrap(err, "creating expense")
			}
			fmt.Printf("Recorded %.2f (%s), id %s\n", expense.Amount, expense.Category, expense.ID)
			fmt.Println("Run 'travelctl expenses summary' to refresh the budget summary")
			return nil
		},
	}

	cmd.Flags().StringVar(&tripID, "trip", "", "trip id")
	cmd.Flags().StringVar(&category, "category", "", "expense category")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount spent")
	cmd.Flags().StringVar(&description, "description", "", "what the money went on")
	cmd.Flags().StringVar(&date, "date", "", "expense date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&location, "location", "", "where (optional)")
	cmd.Flags().BoolVar(&dictate, "dictate", false, "capture the description by voice")
	_ = cmd.MarkFlagRequired("trip")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newExpensesSummaryCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <trip-id>",
		Short: "Show the server-computed budget summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(d, cmd); err != nil {
				return err
			}
			summary, err := d.expenses.FetchSummary(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrap(err, "fetching summary")
			}

			fmt.Printf("Spent %.2f of %.2f (%.2f remaining), daily average %.2f\n",
				summary.TotalSpent, summary.Budget, summary.Remaining, summary.DailyAverage)
			for category, amount := range summary.ByCategory {
				fmt.Printf("  %-12s %8.2f\n", category, amount)
			}
			return nil
		},
	}
}

func newExpensesAnalyzeCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <trip-id>",
		Short: "Run the AI budget analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(d, cmd); err != nil {
				return err
			}
			analysis, err := d.expenses.AnalyzeBudget(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrap(err, "analyzing budget")
			}

			fmt.Println(analysis.Analysis)
			for _, suggestion := range analysis.Suggestions {
				fmt.Printf("  - %s\n", suggestion)
			}
			return nil
		},
	}
}
