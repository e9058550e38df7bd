package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slic3r/slicer-core/config"
)

// configCmd writes a default YAML settings file, following
// arl-go-detour/cmd/recast/cmd/config.go's configCmd.
var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "write a settings file prefilled with default values",
	Long: `Write a settings file in YAML format, prefilled with default values.

If FILE is not provided, 'slicecore.yml' is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "slicecore.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("file '%s' already exists, not overwriting\n", path)
			return
		}
		if err := config.Save(path, config.Default()); err != nil {
			fmt.Println("error,", err)
			os.Exit(1)
		}
		fmt.Printf("settings written to '%s'\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
