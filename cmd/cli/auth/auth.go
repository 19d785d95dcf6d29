package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/guardsys/guardsys/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitAuth registers login/logout on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd(), logoutCmd())
}

func loginCmd() *cobra.Command {
	var username string
	var password string
	var register bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the guardsys API",
		Long:  "Authenticate with the guardsys API and store a JWT token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("username is required")
			}

			if register {
				if err := postJSON("/auth/register", map[string]string{"username": username, "password": password}, nil); err != nil {
					return fmt.Errorf("failed to register user: %w", err)
				}
			}

			var loginResp struct {
				Token string `json:"token"`
			}
			if err := postJSON("/auth/login", map[string]string{"username": username, "password": password}, &loginResp); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if loginResp.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(loginResp.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password (omit for passwordless accounts)")
	cmd.Flags().BoolVar(&register, "register", false, "Register the user before logging in")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.RemoveToken(); err != nil {
				fmt.Println("No user logged in.")
				return nil
			}
			fmt.Println("Logged out successfully.")
			return nil
		},
	}
}

func postJSON(path string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := http.Post(config.APIURL()+path, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}
