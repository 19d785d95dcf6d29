package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the top-level CLI command.
var RootCmd = &cobra.Command{
	Use:   "guardctl",
	Short: "Guardsys CLI",
	Long:  "Command line interface for the guarded-asset maintenance API",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the root command.
func GetRoot() *cobra.Command {
	return RootCmd
}
