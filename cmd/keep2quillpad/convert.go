// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/keep2quillpad/internal/convert"
	"github.com/pdiddy/keep2quillpad/internal/pipeline"
	"github.com/pdiddy/keep2quillpad/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <takeout>",
	Short: "Convert a Takeout export into a Quillpad backup",
	Long: `Convert reads the Keep notes of a Google Takeout export (a .zip, .tar,
.tar.gz or .tgz archive, or an extracted directory) and writes a Quillpad
backup. Notes are numbered in file name order; labels from Labels.txt become
tags.

The backup is a zip bundle holding backup.json and a media/ directory of
attachments, named quillpad-<takeout>.zip unless --output is given. An
output ending in .json writes only the backup document.

A note missing a required field, or referencing a label that is not in the
label list, aborts the conversion without writing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output path: .zip bundle or .json document (default quillpad-<takeout>.zip)")
	convertCmd.Flags().BoolP("disable-extra-colors", "c", false, "drop Keep colors Quillpad lacks instead of using the closest match")
	convertCmd.Flags().Bool("no-attachments", false, "leave attachments out of the backup")
	convertCmd.Flags().String("title-policy", string(types.TitleUntitled), "note titles: untitled (skip timestamp-named notes) or filename (always)")
	convertCmd.Flags().String("labels", "", "label list to use instead of the one found in the export")
	convertCmd.Flags().String("color-map", "", "TOML or YAML file with extra Keep to Quillpad color mappings")

	viper.SetDefault("extra_colors", true)
	viper.SetDefault("attachments", true)
	viper.BindPFlag("output", convertCmd.Flags().Lookup("output"))
	viper.BindPFlag("title_policy", convertCmd.Flags().Lookup("title-policy"))
	viper.BindPFlag("labels", convertCmd.Flags().Lookup("labels"))
	viper.BindPFlag("color_map", convertCmd.Flags().Lookup("color-map"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := convertConfig(cmd, args[0])
	if err != nil {
		return err
	}

	summary, err := pipeline.Run(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Created Quillpad backup: "+summary.Output))
	return nil
}

// convertConfig merges flags, environment and config file into a run config.
// The disable flags win over whatever the config file says.
func convertConfig(cmd *cobra.Command, input string) (types.ConvertConfig, error) {
	extraColors := viper.GetBool("extra_colors")
	if disabled, _ := cmd.Flags().GetBool("disable-extra-colors"); disabled {
		extraColors = false
	}
	attachments := viper.GetBool("attachments")
	if disabled, _ := cmd.Flags().GetBool("no-attachments"); disabled {
		attachments = false
	}

	cfg := types.ConvertConfig{
		ConversionConfig: types.ConversionConfig{
			ExtraColors: extraColors,
			Attachments: attachments,
			TitlePolicy: types.TitlePolicy(viper.GetString("title_policy")),
		},
		Input:      input,
		Output:     viper.GetString("output"),
		LabelsFile: viper.GetString("labels"),
	}

	if path := viper.GetString("color_map"); path != "" {
		overlay, err := convert.LoadColorMap(path)
		if err != nil {
			return cfg, err
		}
		cfg.ColorMap = overlay
	}

	return cfg, nil
}
