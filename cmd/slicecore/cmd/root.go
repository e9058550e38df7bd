package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands,
// following arl-go-detour/cmd/recast/cmd's RootCmd + Execute() convention.
var RootCmd = &cobra.Command{
	Use:   "slicecore",
	Short: "run medial-axis, perimeter, and infill toolpath synthesis",
	Long: `slicecore is the command-line driver for the core toolpath pipeline:
	- medial axis extraction for thin and irregular regions,
	- perimeter generation (onion shells, thin walls, gap fill),
	- infill region classification (top/bottom, vertical shells, bridges).

It is a standalone driver over the core packages; mesh slicing, G-code
emission, and support generation are expected to be supplied externally.`,
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
