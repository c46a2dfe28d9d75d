// Command pbrmaps packs PBR source textures into detail maps and mask maps.
//
//	pbrmaps detail --diffuse albedo.png --normal normal.png --roughness-value 0.5
//	pbrmaps mask --ao ao.png --detail-mask mask.png --metallic-value 0 --roughness rough.png
//	pbrmaps inspect --palette 6 detail_map.png
//
// Every flag can also be set through a PBRMAPS_ environment variable
// (PBRMAPS_OUT, PBRMAPS_ROUGHNESS_VALUE, ...) or a --config file.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "pbrmaps:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if args == nil {
		args = []string{}
	}
	root := newRootCmd()
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	return root.Execute()
}
