package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gitoutofhours/internal/config"
	"gitoutofhours/internal/ui"
	"gitoutofhours/pkg/errors"
	"gitoutofhours/pkg/models"
)

// newWizard is replaced in tests
var newWizard = func() configWizard { return ui.NewConfigWizard() }

type configWizard interface {
	Run(base *models.Config) (*models.Config, error)
}

func newConfigCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the gitoutofhours configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(configFile), newConfigShowCmd(configFile))
	return cmd
}

func newConfigInitCmd(configFile *string) *cobra.Command {
	var (
		force       bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(*configFile)
			printer := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())

			if config.Exists(path) && !force && !interactive {
				return errors.New(errors.ErrCodeConfigInvalid, "Configuration file already exists").
					WithContext("path", path).
					WithSuggestions("Pass --force to overwrite it or --interactive to edit it")
			}

			defaults := models.DefaultConfig()
			cfg := &defaults
			if interactive && !force {
				loaded, err := config.LoadFrom(path)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			if interactive {
				edited, err := newWizard().Run(cfg)
				if err != nil {
					return err
				}
				cfg = edited
			}

			if err := config.SaveTo(path, cfg); err != nil {
				return err
			}
			printer.Success("Configuration written to " + path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask for each setting")
	return cmd
}

func newConfigShowCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the configuration in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(*configFile)
			cfg, err := config.LoadFrom(path)
			if err != nil {
				return err
			}

			source := path
			if !config.Exists(path) {
				source = path + " (not found, using defaults)"
			}
			ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr()).KeyValue("file", source)

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "Failed to encode configuration")
			}
			return enc.Close()
		},
	}
}
