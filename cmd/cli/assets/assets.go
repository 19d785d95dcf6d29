package assets

import (
	"fmt"

	"github.com/guardsys/guardsys/cmd/cli/client"
	"github.com/guardsys/guardsys/cmd/cli/output"
	"github.com/spf13/cobra"
)

// InitAssets registers asset commands on the root command.
func InitAssets(rootCmd *cobra.Command) {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage guarded assets",
	}

	assetsCmd.AddCommand(
		listAssetsCmd(),
		createAssetCmd(),
		archiveAssetCmd(),
		restoreAssetCmd(),
	)

	rootCmd.AddCommand(assetsCmd)
}

func listAssetsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List guarded assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/assets"
			if search != "" {
				path += "?q=" + search
			}

			var assets []struct {
				ID      int    `json:"id"`
				Name    string `json:"name"`
				Address string `json:"address"`
				Status  string `json:"status"`
			}
			if err := client.Do("GET", path, nil, &assets); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(assets))
			for _, a := range assets {
				rows = append(rows, []interface{}{a.ID, a.Name, a.Address, a.Status})
			}
			output.RenderTable([]string{"ID", "Name", "Address", "Status"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "search by name, address, or notes")
	return cmd
}

func createAssetCmd() *cobra.Command {
	var (
		name          string
		address       string
		orgID         int
		equipment     string
		mainID        int
		deputyID      int
		periodicityID int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a guarded asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"name":                name,
				"address":             address,
				"organization_id":     orgID,
				"equipment":           equipment,
				"main_responsible_id": mainID,
			}
			if deputyID > 0 {
				payload["deputy_responsible_id"] = deputyID
			}
			if periodicityID > 0 {
				payload["periodicity_id"] = periodicityID
			}

			var out struct {
				Asset struct {
					ID int `json:"id"`
				} `json:"asset"`
			}
			if err := client.Do("POST", "/assets", payload, &out); err != nil {
				return err
			}
			fmt.Printf("Asset created with id %d\n", out.Asset.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "asset name")
	cmd.Flags().StringVar(&address, "address", "", "asset address")
	cmd.Flags().IntVar(&orgID, "org", 0, "owning organization id")
	cmd.Flags().StringVar(&equipment, "equipment", "", "equipment description")
	cmd.Flags().IntVar(&mainID, "main", 0, "main responsible user id")
	cmd.Flags().IntVar(&deputyID, "deputy", 0, "deputy responsible user id (optional)")
	cmd.Flags().IntVar(&periodicityID, "periodicity", 0, "periodicity id for the maintenance schedule (optional)")

	return cmd
}

func archiveAssetCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "archive [id]",
		Short: "Archive (soft-delete) an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Do("POST", "/assets/"+args[0]+"/archive", map[string]string{"reason": reason}, nil); err != nil {
				return err
			}
			fmt.Println("Asset archived")
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "archive reason")
	return cmd
}

func restoreAssetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [id]",
		Short: "Restore an archived asset (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Do("POST", "/assets/"+args[0]+"/restore", nil, nil); err != nil {
				return err
			}
			fmt.Println("Asset restored")
			return nil
		},
	}
}
