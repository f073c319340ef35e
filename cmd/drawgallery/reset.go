package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/drawgallery"
)

func newResetCmd(configPath *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every file in the image directory and clear the metadata index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete every drawing without --yes")
			}
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			g, err := drawgallery.OpenGallery(cfg)
			if err != nil {
				return err
			}
			defer g.Close()

			if err := g.DeleteAll(); err != nil {
				return err
			}
			logger.Warn().Str("image_dir", cfg.ImageDir).Msg("gallery wiped")
			fmt.Fprintln(cmd.OutOrStdout(), "All images deleted successfully")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	return cmd
}
