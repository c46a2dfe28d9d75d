package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/setanarut/pbrmaps"
	"github.com/setanarut/pbrmaps/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// config resolves flag values with environment and config file fallbacks.
// Flags are bound when the selected command runs, so subcommands sharing a
// flag name do not shadow each other.
type config struct {
	v *viper.Viper
}

func newConfig() *config {
	v := viper.New()
	v.SetEnvPrefix("pbrmaps")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &config{v: v}
}

// load binds cmd's flags and reads the --config file when one is given.
func (c *config) load(cmd *cobra.Command) error {
	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if file := c.v.GetString("config"); file != "" {
		c.v.SetConfigFile(file)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w: config %s: %w", utils.ErrIO, file, err)
		}
	}
	level := slog.LevelInfo
	if c.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	pbrmaps.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

func newRootCmd() *cobra.Command {
	cfg := newConfig()
	root := &cobra.Command{
		Use:           "pbrmaps",
		Short:         "Pack PBR textures into detail maps and mask maps",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New("missing command")
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	root.PersistentFlags().String("config", "", "config file (yaml, json or toml) with flag defaults")

	root.AddCommand(newDetailCmd(cfg), newMaskCmd(cfg), newInspectCmd(cfg))
	return root
}

// input returns an ImageInput when the texture key is set, a ScalarInput
// from the value key otherwise.
func (c *config) input(textureKey, valueKey string) (pbrmaps.Input, error) {
	path := c.v.GetString(textureKey)
	if path == "" {
		return pbrmaps.ScalarInput(c.v.GetFloat64(valueKey)), nil
	}
	img, err := utils.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return pbrmaps.ImageInput{Image: img}, nil
}

// required loads a mandatory texture.
func (c *config) required(key string) (*pbrmaps.Image, error) {
	path := c.v.GetString(key)
	if path == "" {
		return nil, fmt.Errorf("--%s: %w", key, pbrmaps.ErrMissingInput)
	}
	return utils.LoadImage(path)
}

func (c *config) save(cmd *cobra.Command, name string, img *pbrmaps.Image) error {
	path, err := utils.SaveImage(c.v.GetString("out"), name, img)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
