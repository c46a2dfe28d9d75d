package main

import (
	"fmt"

	"github.com/setanarut/pbrmaps"
	"github.com/setanarut/pbrmaps/utils"
	"github.com/spf13/cobra"
)

func newInspectCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <texture>",
		Short: "Print channel statistics and dominant values of a texture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.load(cmd); err != nil {
				return err
			}
			channels := []pbrmaps.Channel{pbrmaps.Red, pbrmaps.Green, pbrmaps.Blue, pbrmaps.Alpha}
			if name := cfg.v.GetString("channel"); name != "" {
				ch, err := pbrmaps.ParseChannel(name)
				if err != nil {
					return err
				}
				channels = []pbrmaps.Channel{ch}
			}
			method, err := utils.ParsePaletteMethod(cfg.v.GetString("method"))
			if err != nil {
				return err
			}
			img, err := utils.LoadImage(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %dx%d\n", args[0], img.W, img.H)
			stats := utils.ChannelStats(img)
			for _, ch := range channels {
				fmt.Fprintf(out, "%-5s %s\n", ch, stats[ch])
			}

			k := cfg.v.GetInt("palette")
			if k <= 0 {
				return nil
			}
			palette := utils.ExtractPalette(img, k, method)
			utils.SortPaletteByBrightness(palette)
			for _, c := range palette {
				fmt.Fprintf(out, "palette %s\n", c.Hex())
			}
			if dir := cfg.v.GetString("swatch"); dir != "" {
				if _, err := utils.SavePalette(palette, 64, dir, "palette"); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.String("channel", "", "report only this channel (r, g, b, a)")
	f.Int("palette", 0, "number of dominant values to report (0 disables)")
	f.String("method", "dominantcolor", "palette method: dominantcolor or kmeans")
	f.String("swatch", "", "write the palette swatch to this directory")
	return cmd
}
