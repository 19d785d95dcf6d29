package maint

import (
	"fmt"

	"github.com/guardsys/guardsys/cmd/cli/client"
	"github.com/guardsys/guardsys/cmd/cli/output"
	"github.com/spf13/cobra"
)

// InitMaintenance registers maintenance schedule commands on the root command.
func InitMaintenance(rootCmd *cobra.Command) {
	maintCmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Work with the maintenance schedule",
	}

	maintCmd.AddCommand(listEventsCmd(), markDoneCmd(), sweepCmd(), reportCmd())

	rootCmd.AddCommand(maintCmd)
}

func listEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List maintenance events with due dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			var events []struct {
				EventID     int    `json:"event_id"`
				Asset       string `json:"asset"`
				Responsible string `json:"responsible"`
				LastDoneAt  string `json:"last_done_at"`
				NextDueAt   string `json:"next_due_at"`
				IsOverdue   bool   `json:"is_overdue"`
			}
			if err := client.Do("GET", "/maintenance", nil, &events); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(events))
			for _, e := range events {
				overdue := ""
				if e.IsOverdue {
					overdue = "OVERDUE"
				}
				rows = append(rows, []interface{}{e.EventID, e.Asset, e.Responsible, e.LastDoneAt, e.NextDueAt, overdue})
			}
			output.RenderTable([]string{"ID", "Asset", "Responsible", "Last done", "Next due", ""}, rows)
			return nil
		},
	}
}

func markDoneCmd() *cobra.Command {
	var when string

	cmd := &cobra.Command{
		Use:   "done [asset-id]",
		Short: "Record a completed maintenance pass for an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload any
			if when != "" {
				payload = map[string]string{"when": when}
			}

			var event struct {
				NextDueAt string `json:"next_due_at"`
			}
			if err := client.Do("POST", "/assets/"+args[0]+"/maintenance/done", payload, &event); err != nil {
				return err
			}
			fmt.Printf("Maintenance recorded, next due %s\n", event.NextDueAt)
			return nil
		},
	}

	cmd.Flags().StringVar(&when, "when", "", "completion date YYYY-MM-DD (defaults to today)")
	return cmd
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Trigger the overdue sweep now (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result struct {
				Total     int `json:"total"`
				Overdue   int `json:"overdue"`
				Notified  int `json:"notified"`
				Failed    int `json:"failed"`
				Escalated int `json:"escalated"`
			}
			if err := client.Do("POST", "/jobs/sweep", nil, &result); err != nil {
				return err
			}
			fmt.Printf("Sweep done: %d events, %d overdue, %d notified, %d failed, %d escalated\n",
				result.Total, result.Overdue, result.Notified, result.Failed, result.Escalated)
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the maintenance CSV report",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client.Raw(fmt.Sprintf("/reports/maintenance.csv?year=%d&month=%d", year, month))
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 2026, "report year")
	cmd.Flags().IntVar(&month, "month", 1, "report month")
	return cmd
}
