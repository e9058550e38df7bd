package main

import "github.com/slic3r/slicer-core/cmd/slicecore/cmd"

func main() {
	cmd.Execute()
}
