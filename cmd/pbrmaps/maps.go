package main

import (
	"github.com/setanarut/pbrmaps"
	"github.com/spf13/cobra"
)

func newDetailCmd(cfg *config) *cobra.Command {
	def := pbrmaps.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "detail",
		Short: "Pack diffuse, normal and roughness into a detail map",
		Long: `Pack a detail map:
  R  desaturated diffuse
  G  normal map green
  B  smoothness (1 - roughness)
  A  normal map red`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.load(cmd); err != nil {
				return err
			}
			var (
				recipe pbrmaps.DetailRecipe
				err    error
			)
			if recipe.Diffuse, err = cfg.required("diffuse"); err != nil {
				return err
			}
			if recipe.Normal, err = cfg.required("normal"); err != nil {
				return err
			}
			if recipe.Roughness, err = cfg.input("roughness", "roughness-value"); err != nil {
				return err
			}
			img, err := pbrmaps.DetailMap(recipe)
			if err != nil {
				return err
			}
			return cfg.save(cmd, cfg.v.GetString("name"), img)
		},
	}
	f := cmd.Flags()
	f.String("diffuse", "", "diffuse (albedo) texture")
	f.String("normal", "", "normal map texture, raw RGB")
	f.String("roughness", "", "roughness texture; overrides --roughness-value")
	f.Float64("roughness-value", 0, "uniform roughness in [0,1]")
	f.String("out", def.OutputDir, "output directory")
	f.String("name", def.DetailMapName, "output file name without extension")
	return cmd
}

func newMaskCmd(cfg *config) *cobra.Command {
	def := pbrmaps.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "mask",
		Short: "Pack metallic, ambient occlusion, detail mask and roughness into a mask map",
		Long: `Pack a mask map:
  R  metallic
  G  ambient occlusion
  B  detail mask
  A  roughness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.load(cmd); err != nil {
				return err
			}
			var (
				recipe pbrmaps.MaskRecipe
				err    error
			)
			if recipe.AmbientOcclusion, err = cfg.required("ao"); err != nil {
				return err
			}
			if recipe.DetailMask, err = cfg.required("detail-mask"); err != nil {
				return err
			}
			if recipe.Metallic, err = cfg.input("metallic", "metallic-value"); err != nil {
				return err
			}
			if recipe.Roughness, err = cfg.input("roughness", "roughness-value"); err != nil {
				return err
			}
			img, err := pbrmaps.MaskMap(recipe)
			if err != nil {
				return err
			}
			return cfg.save(cmd, cfg.v.GetString("name"), img)
		},
	}
	f := cmd.Flags()
	f.String("metallic", "", "metallic texture; overrides --metallic-value")
	f.Float64("metallic-value", 0, "uniform metallic in [0,1]")
	f.String("ao", "", "ambient occlusion texture")
	f.String("detail-mask", "", "detail mask texture")
	f.String("roughness", "", "roughness texture; overrides --roughness-value")
	f.Float64("roughness-value", 0, "uniform roughness in [0,1]")
	f.String("out", def.OutputDir, "output directory")
	f.String("name", def.MaskMapName, "output file name without extension")
	return cmd
}
