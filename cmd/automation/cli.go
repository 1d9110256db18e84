package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"automation/internal/config"
	"automation/internal/domain/capability"
	"automation/internal/domain/task"
	"automation/internal/infra/capabilities/fileops"
	jsonx "automation/internal/shared/json"

	"github.com/spf13/cobra"
)

// CLI holds state shared by all subcommands.
type CLI struct {
	out    io.Writer
	errOut io.Writer

	configFile string
	basePath   string
	strict     bool
	logLevel   string
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	cli := &CLI{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:           "automation",
		Short:         "Run sandboxed automation tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringVarP(&cli.configFile, "config", "c", "", "Config file (default: ./automation.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&cli.basePath, "base-path", "", "Sandbox root directory")
	rootCmd.PersistentFlags().BoolVar(&cli.strict, "strict", false, "Reject resolved paths outside the sandbox root")
	rootCmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newRunCommand(cli))
	rootCmd.AddCommand(newOpsCommand(cli))
	rootCmd.AddCommand(newConfigCommand(cli))
	return rootCmd
}

func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	opts := []config.Option{config.WithConfigFile(c.configFile)}
	if c.basePath != "" {
		opts = append(opts, config.WithOverride("base_path", c.basePath))
	}
	if cmd.Flags().Changed("strict") {
		opts = append(opts, config.WithOverride("sandbox.strict", c.strict))
	}
	if c.logLevel != "" {
		opts = append(opts, config.WithOverride("logging.level", c.logLevel))
	}
	return config.Load(opts...)
}

func (c *CLI) container(cmd *cobra.Command) (*Container, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return buildContainer(cfg, c.errOut)
}

func newRunCommand(cli *CLI) *cobra.Command {
	var (
		executor  string
		operation string
		params    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one task and print its result",
		Long: `Execute one task and print its result as JSON.

Examples:
  automation run --op write --params '{"path":"notes.txt","content":"hello"}'
  automation run --op read_csv --params '{"path":"data.csv"}' --base-path ./work`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			container, err := cli.container(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if cleanupErr := container.Cleanup(); cleanupErr != nil && err == nil {
					err = cleanupErr
				}
			}()

			raw := strings.TrimSpace(params)
			if _, decodeErr := jsonx.DecodeValue([]byte(raw)); decodeErr != nil {
				return &ExitCodeError{Code: 2, Err: fmt.Errorf("--params is not valid JSON: %w", decodeErr)}
			}

			t := task.NewRaw(executor, operation, jsonx.RawMessage(raw))
			result, err := container.Dispatcher.Submit(context.Background(), t)

			if container.Metrics != nil {
				defer func() { _ = writeMetrics(cli.errOut, container.Metrics) }()
			}
			if err != nil {
				return err
			}

			if err := writeJSON(cli.out, result, isTerminal(cli.out)); err != nil {
				return err
			}
			fmt.Fprintln(cli.errOut, success(fmt.Sprintf("%s/%s %s (%s)", executor, operation, t.Status, t.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&executor, "executor", "e", fileops.Name, "Capability to address")
	cmd.Flags().StringVarP(&operation, "op", "o", "", "Operation name")
	cmd.Flags().StringVarP(&params, "params", "p", "{}", "Operation parameters as JSON")
	_ = cmd.MarkFlagRequired("op")
	return cmd
}

func newOpsCommand(cli *CLI) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List supported operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			container, err := cli.container(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if cleanupErr := container.Cleanup(); cleanupErr != nil && err == nil {
					err = cleanupErr
				}
			}()

			catalog := map[string][]capability.OperationDefinition{}
			for _, name := range container.Registry.Names() {
				c, err := container.Registry.Get(name)
				if err != nil {
					return err
				}
				if d, ok := c.(capability.Describer); ok {
					catalog[name] = d.Operations()
				}
			}

			if asJSON {
				return writeJSON(cli.out, catalog, true)
			}

			w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, bold("EXECUTOR")+"\t"+bold("OPERATION")+"\t"+bold("SAFETY")+"\t"+bold("PARAMS")+"\t"+bold("DESCRIPTION"))
			for _, name := range container.Registry.Names() {
				for _, def := range catalog[name] {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						name, def.Name, safetyLabel(def.SafetyLevel),
						strings.Join(def.Parameters.Required, ","), def.Description)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print operation definitions as JSON")
	return cmd
}

func newConfigCommand(cli *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.loadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cli.out.Write(out)
			return err
		},
	})
	return cmd
}
