package users

import (
	"fmt"

	"github.com/guardsys/guardsys/cmd/cli/client"
	"github.com/guardsys/guardsys/cmd/cli/output"
	"github.com/spf13/cobra"
)

// InitUsers registers user management commands on the root command.
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users (admin only)",
	}

	usersCmd.AddCommand(listUsersCmd(), createUserCmd())

	rootCmd.AddCommand(usersCmd)
}

func listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			var users []struct {
				ID       int    `json:"id"`
				Username string `json:"username"`
				FullName string `json:"full_name"`
				Role     string `json:"role"`
				Email    string `json:"email"`
			}
			if err := client.Do("GET", "/users", nil, &users); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{u.ID, u.Username, u.FullName, u.Role, u.Email})
			}
			output.RenderTable([]string{"ID", "Username", "Full name", "Role", "Email"}, rows)
			return nil
		},
	}
}

func createUserCmd() *cobra.Command {
	var (
		username string
		password string
		fullName string
		email    string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"username":  username,
				"password":  password,
				"full_name": fullName,
				"email":     email,
				"role":      role,
			}

			var out struct {
				ID int `json:"id"`
			}
			if err := client.Do("POST", "/users", payload, &out); err != nil {
				return err
			}
			fmt.Printf("User created with id %d\n", out.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&fullName, "full-name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "notification email")
	cmd.Flags().StringVar(&role, "role", "OBSERVER", "role: ADMIN, RESPONSIBLE, or OBSERVER")

	return cmd
}
