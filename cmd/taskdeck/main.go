// taskdeck is the terminal client for the taskdeck API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/pkg/apiclient"
	"github.com/taskdeck/taskdeck/pkg/controller"
)

var (
	apiURL string
	token  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "Personal task tracking from the terminal",
	Long: `taskdeck manages your to-do list against a taskdeck server.

The server URL and bearer token come from --api/--token or the
TASKDECK_API and TASKDECK_TOKEN environment variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "base URL of the taskdeck server")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "bearer token for authentication")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(reopenCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(exportCmd)
}

func client() (*apiclient.Client, error) {
	base := apiURL
	if base == "" {
		base = os.Getenv("TASKDECK_API")
	}
	tok := token
	if tok == "" {
		tok = os.Getenv("TASKDECK_TOKEN")
	}
	if base == "" {
		return nil, fmt.Errorf("no server configured: set --api or TASKDECK_API")
	}
	if tok == "" {
		return nil, fmt.Errorf("no token configured: set --token or TASKDECK_TOKEN")
	}
	return apiclient.New(base, tok), nil
}

func newController() (*controller.Controller, error) {
	api, err := client()
	if err != nil {
		return nil, err
	}
	return controller.New(api), nil
}
