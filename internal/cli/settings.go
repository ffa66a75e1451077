package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessera-shell/tessera/internal/config"
	"github.com/tessera-shell/tessera/internal/models"
)

var flagForce bool

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Show or initialize ~/.tessera/settings.yaml",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings, defaults included",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		return printValue(cmd.OutOrStdout(), settings)
	},
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file",
	Long: `Write the default settings file. An existing file is left alone
unless --force is given. A running daemon picks the change up on its own.`,
	RunE: runSettingsInit,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GlobalSettingsFile()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	settingsInitCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite an existing settings file")

	settingsCmd.AddCommand(settingsInitCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}

func runSettingsInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path, err := config.GlobalSettingsFile()
	if err != nil {
		return err
	}

	if config.FileExists(path) && !flagForce {
		fmt.Fprintf(out, "%s already exists %s\n", path, styleHint.Render("(use --force to overwrite)"))
		return nil
	}

	if err := config.SaveSettings(models.NewSettings()); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	fmt.Fprintf(out, "%s %s\n", styleSuccess.Render("Wrote"), path)
	return nil
}
