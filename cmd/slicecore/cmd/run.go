package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slic3r/slicer-core/config"
	"github.com/slic3r/slicer-core/geom"
	"github.com/slic3r/slicer-core/infill"
	"github.com/slic3r/slicer-core/perimeter"
)

var runSettingsFile string

// runCmd drives the core pipeline end-to-end over a synthetic square
// island (or a settings-provided one, once a Slicer collaborator is
// wired) and prints a one-line summary per stage -- the ambient CLI
// surface standing in for a full slicer's interactive preview.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run PG and IRC over a synthetic layer stack and print a summary",
	Run: func(cmd *cobra.Command, args []string) {
		opts := config.Default()
		if runSettingsFile != "" {
			loaded, err := config.Load(runSettingsFile)
			if err != nil {
				fmt.Println("error,", err)
				os.Exit(1)
			}
			opts = loaded
		}

		island := syntheticIsland()
		pgIn := perimeter.Input{
			Island:           island,
			Perimeters:       opts.Perimeters,
			ExtSpacing:       opts.NozzleDiameter + geom.MMToCoord(0.05),
			Spacing:          opts.NozzleDiameter + geom.MMToCoord(0.05),
			ExtWidth:         opts.NozzleDiameter,
			ExtMinSpacing:    opts.NozzleDiameter,
			MinInfillSpacing: opts.NozzleDiameter,
			Overlap:          opts.InfillOverlap,
			DetectThinWalls:  opts.ThinWalls,
			GapFill:          opts.GapFill,
			ExtraPerimeters:  opts.ExtraPerimeters,
			Overhangs:        opts.Overhangs,
			NozzleDiameter:   opts.NozzleDiameter,
			LayerHeight:      opts.LayerHeight,
		}

		out, err := perimeter.Run(context.Background(), pgIn)
		if err != nil {
			fmt.Println("perimeter generation error,", err)
			os.Exit(1)
		}
		fmt.Printf("perimeter: %d root loop(s), %d thin wall(s), %d gap fill(s)\n",
			len(out.Contours), len(out.ThinWalls), len(out.GapFill))

		layer := infill.LayerView{Slices: out.InfillSeed, Height: opts.LayerHeight}
		sfs, err := infill.DetectSurfaceTypes(layer, nil, nil, opts.NozzleDiameter, false)
		if err != nil {
			fmt.Println("infill classification error,", err)
			os.Exit(1)
		}
		fmt.Printf("infill: %d surface(s) (%d top, %d bottom, %d internal)\n",
			len(sfs), len(sfs.ByPosition(infill.PositionTop)),
			len(sfs.ByPosition(infill.PositionBottom)), len(sfs.ByPosition(infill.PositionInternal)))
	},
}

func syntheticIsland() geom.ExPoly {
	const side = 20 * geom.Scale
	return geom.ExPoly{Outer: geom.Polygon{
		{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side},
	}}
}

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runSettingsFile, "settings", "s", "", "path to a YAML settings file (defaults built in if omitted)")
}
