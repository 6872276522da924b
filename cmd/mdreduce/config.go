package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/oss-mdreduce/mdreduce/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit mdreduce configuration",
	Long: `View or edit mdreduce's configuration.

Examples:
  mdreduce config            # show effective configuration
  mdreduce config path       # print the config file path
  mdreduce config edit       # edit in $EDITOR
  mdreduce config reset      # reset to defaults`,
	RunE: configShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  configPathRun,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the configuration file in $EDITOR",
	RunE:  configEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the configuration file to defaults",
	RunE:  configReset,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
}

func configShow(cmd *cobra.Command, args []string) error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("mdreduce: %w", err)
	}
	if config.Exists() {
		fmt.Printf("# %s\n\n", path)
	} else {
		fmt.Printf("# no config file (using defaults)\n# create one at: %s\n\n", path)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("mdreduce: %w", err)
	}
	fmt.Printf("theme:\n  heading: %s\n  code: %s\n  list: %s\n  muted: %s\n",
		cfg.Theme.Heading, cfg.Theme.Code, cfg.Theme.List, cfg.Theme.Muted)
	fmt.Printf("render:\n  chunk_size: %d\n  partial: %t\n", cfg.Render.ChunkSize, cfg.Render.Partial)
	fmt.Printf("highlight:\n  style: %s\n", cfg.Highlight.Style)
	return nil
}

func configPathRun(cmd *cobra.Command, args []string) error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("mdreduce: %w", err)
	}
	fmt.Println(path)
	return nil
}

func configEdit(cmd *cobra.Command, args []string) error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("mdreduce: %w", err)
	}
	if !config.Exists() {
		if err := config.Save(); err != nil {
			return fmt.Errorf("mdreduce: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}

	editorCmd := exec.Command(editor, path)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	return editorCmd.Run()
}

func configReset(cmd *cobra.Command, args []string) error {
	if err := config.Save(); err != nil {
		return fmt.Errorf("mdreduce: %w", err)
	}
	path, _ := config.ConfigPath()
	fmt.Printf("Config reset to defaults: %s\n", path)
	return nil
}
