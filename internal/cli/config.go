package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxroute/pkg/config"
)

// configCommand creates the config command and its subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
		Long: `Inspect the configuration file.

Settings are read from $XDG_CONFIG_HOME/boxroute/config.toml (or
~/.config/boxroute/config.toml), or from the file given with --config.
Missing keys keep their defaults and command-line flags override both.`,
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configValidateCommand())

	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := c.loadConfig()
			if err != nil {
				return err
			}
			data, err := file.Encode()
			if err != nil {
				return err
			}
			_, err = c.Stdout.Write(data)
			return err
		},
	}
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.ConfigPath
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			_, err := c.Stdout.Write([]byte(path + "\n"))
			return err
		},
	}
}

func (c *CLI) configValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.ConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			if _, err := config.Load(path); err != nil {
				printError("%s", path)
				return err
			}
			printSuccess("Configuration valid")
			printFile(path)
			return nil
		},
	}
}
