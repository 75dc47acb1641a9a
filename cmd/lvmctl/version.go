package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lvmctl and lvm versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("lvmctl %s\n", version)
		client, err := newClient()
		if err != nil {
			return err
		}
		lvmVersion, err := client.Version(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(lvmVersion)
		return nil
	},
}
