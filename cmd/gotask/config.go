// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gotask-cli/internal/config"
)

// configCmd manages the gotask configuration file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gotask configuration",
	Long: `Manage gotask configuration.

Configuration is stored in:
  - Linux: ~/.config/gotask/config.cue
  - macOS: ~/Library/Application Support/gotask/config.cue
  - Windows: %APPDATA%\gotask\config.cue`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE:  runConfigShow,
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE:  runConfigInit,
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE:  runConfigPath,
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1])
		},
	})
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}

	cfgPath := cfgFile
	if cfgPath == "" {
		if cfgDir, dirErr := config.ConfigDir(); dirErr == nil {
			cfgPath = filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
		}
	}

	cmd.Print(renderConfigShow(cfg, cfgPath))
	return nil
}

// renderConfigShow formats the effective configuration for terminal output.
func renderConfigShow(cfg *config.Config, cfgPath string) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("Current Configuration"))
	sb.WriteString("\n\n")

	if cfgPath != "" {
		sb.WriteString(fmt.Sprintf("%s: %s\n\n", TaskStyle.Render("Config file"), cfgPath))
	}

	sb.WriteString(fmt.Sprintf("%s: %s\n", TaskStyle.Render("task_dir"), SuccessStyle.Render(cfg.TaskDir)))
	sb.WriteString(fmt.Sprintf("%s: %s\n", TaskStyle.Render("go_tool"), SuccessStyle.Render(cfg.GoTool)))
	sb.WriteString(fmt.Sprintf("%s:\n", TaskStyle.Render("ui")))
	sb.WriteString(fmt.Sprintf("  color_scheme: %s\n", SuccessStyle.Render(string(cfg.UI.ColorScheme))))
	sb.WriteString(fmt.Sprintf("  verbose: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose))))

	return sb.String()
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	cmd.Printf("%s Created default configuration at %s\n",
		SuccessStyle.Render("✓"),
		filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	cmd.Printf("Config directory: %s\n", cfgDir)
	cmd.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	cfg, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}

	if err := applyConfigValue(cfg, key, value); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	cmd.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// applyConfigValue mutates cfg for one `config set` key, then re-validates the
// whole config so a bad value never reaches the saved file.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "task_dir":
		cfg.TaskDir = value

	case "go_tool":
		cfg.GoTool = value

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: task_dir, go_tool, ui.verbose, ui.color_scheme", key)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return errs[0]
	}
	return nil
}
