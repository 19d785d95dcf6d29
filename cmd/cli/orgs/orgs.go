package orgs

import (
	"fmt"

	"github.com/guardsys/guardsys/cmd/cli/client"
	"github.com/guardsys/guardsys/cmd/cli/output"
	"github.com/spf13/cobra"
)

// InitOrgs registers organization commands on the root command.
func InitOrgs(rootCmd *cobra.Command) {
	orgsCmd := &cobra.Command{
		Use:   "orgs",
		Short: "Manage owning organizations",
	}

	orgsCmd.AddCommand(listOrgsCmd(), createOrgCmd(), deleteOrgCmd())

	rootCmd.AddCommand(orgsCmd)
}

func listOrgsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			var orgs []struct {
				ID       int    `json:"id"`
				Name     string `json:"name"`
				INN      string `json:"inn"`
				Contacts string `json:"contacts"`
			}
			if err := client.Do("GET", "/orgs", nil, &orgs); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(orgs))
			for _, o := range orgs {
				rows = append(rows, []interface{}{o.ID, o.Name, o.INN, o.Contacts})
			}
			output.RenderTable([]string{"ID", "Name", "INN", "Contacts"}, rows)
			return nil
		},
	}
}

func createOrgCmd() *cobra.Command {
	var (
		name       string
		inn        string
		kpp        string
		requisites string
		contacts   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"name":       name,
				"inn":        inn,
				"kpp":        kpp,
				"requisites": requisites,
				"contacts":   contacts,
			}

			var out struct {
				ID int `json:"id"`
			}
			if err := client.Do("POST", "/orgs", payload, &out); err != nil {
				return err
			}
			fmt.Printf("Organization created with id %d\n", out.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "organization name")
	cmd.Flags().StringVar(&inn, "inn", "", "taxpayer number")
	cmd.Flags().StringVar(&kpp, "kpp", "", "registration code")
	cmd.Flags().StringVar(&requisites, "requisites", "", "bank requisites")
	cmd.Flags().StringVar(&contacts, "contacts", "", "contact details")

	return cmd
}

func deleteOrgCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an organization (fails while assets reference it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Do("DELETE", "/orgs/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Println("Organization deleted")
			return nil
		},
	}
}
