package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/nanotable/formats"
	"github.com/arthur-debert/nanotable/internal/admin"
	"github.com/arthur-debert/nanotable/internal/finance"
	"github.com/arthur-debert/nanotable/internal/vetting"
	"github.com/arthur-debert/nanotable/nanotable/collection"
	"github.com/arthur-debert/nanotable/nanotable/query"
	"github.com/arthur-debert/nanotable/nanotable/storage"
	"github.com/arthur-debert/nanotable/nanotable/storage/backend"
	"github.com/arthur-debert/nanotable/nanotable/storage/s3"
)

// CLI is the Viper-driven command line over the admin console, the finance
// hub and the vetting center. Every invocation opens the configured store,
// hydrates all three from it and persists each change back.
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper

	// now stamps created and resolved records
	now func() time.Time

	logger  *slog.Logger
	logFile io.Closer
	blob    storage.Blob
	adapter *storage.Adapter
	console *admin.Console
	hub     *finance.Hub
	center  *vetting.Center
}

// NewCLI creates a new Viper-powered CLI
func NewCLI() *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		now:       time.Now,
	}

	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()

	return cli
}

// Execute runs the root command and releases the store whether or not the
// command succeeded
func (cli *CLI) Execute(ctx context.Context) error {
	err := cli.rootCmd.ExecuteContext(ctx)
	if closeErr := cli.close(); err == nil {
		err = closeErr
	}
	return err
}

// setupViperConfig configures Viper with environment variables and config files
func (cli *CLI) setupViperConfig() {
	v := cli.viperInst

	// NANOTABLE_CONFIG points at an explicit config file
	if configFile := os.Getenv("NANOTABLE_CONFIG"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("nanotable")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.nanotable")
		v.AddConfigPath("/etc/nanotable")
	}

	v.SetDefault("store.driver", string(backend.DriverMemory))
	v.SetDefault("store.path", "nanotable-data")
	v.SetDefault("format", "table")
	v.SetDefault("page-size", query.DefaultPageSize)
	v.SetDefault("log-level", "warn")

	// store.path-style -> NANOTABLE_STORE_PATH_STYLE
	v.SetEnvPrefix("NANOTABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// a missing config file is fine
	_ = v.ReadInConfig()
}

// createRootCommand creates the root Cobra command with Viper integration
func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "nanotable",
		Short: "nanotable - admin console for operator accounts and escrow payments",
		Long: `nanotable manages the admin console collections: operator accounts,
API keys, the audit trail, notification and system settings, the finance
hub's escrows, milestones, failed transactions and disputes, and the
vetting center's auditors and client requests.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (NANOTABLE_*)
3. Configuration files (custom path or default locations)

Configuration File Discovery:
  NANOTABLE_CONFIG=/path/to/config.yaml   # Custom config file path
  ./nanotable.yaml                        # Current directory
  ~/.nanotable/nanotable.yaml             # User directory
  /etc/nanotable/nanotable.yaml           # System directory

Examples:
  # Keep state in a local directory
  nanotable --store-driver file --store-path ./data users list

  # Environment variables
  export NANOTABLE_STORE_DRIVER=sqlite NANOTABLE_STORE_PATH=admin.db
  nanotable escrow list --status pending

  # Resolve a dispute in favour of the freelancer
  nanotable disputes resolve DISP-001 --action release --notes "work accepted"`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = cli.viperInst.BindPFlags(cmd.Flags())
			return cli.open(cmd)
		},
	}

	cli.addGlobalFlags()
}

// addGlobalFlags adds persistent flags that apply to all commands
func (cli *CLI) addGlobalFlags() {
	flags := cli.rootCmd.PersistentFlags()

	// Storage
	flags.String("store-driver", "", fmt.Sprintf("Storage driver (%s)", strings.Join(backend.Drivers(), "|")))
	flags.String("store-path", "", "Data directory (file) or database file (sqlite)")
	flags.String("store-dsn", "", "Postgres connection string")
	flags.String("store-bucket", "", "S3 bucket")
	flags.String("store-prefix", "", "S3 key prefix")
	flags.String("store-region", "", "S3 region")
	flags.String("store-endpoint", "", "S3 endpoint for S3-compatible servers")
	flags.Bool("store-path-style", false, "Use path-style S3 addressing")

	// Output
	flags.StringP("format", "f", "table", fmt.Sprintf("Output format (%s)", strings.Join(formats.List(), "|")))
	flags.Int("page-size", query.DefaultPageSize, "Records per page in list output")

	// Logging
	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")
	flags.BoolP("verbose", "v", false, "Mirror log output to stderr")

	for _, key := range []string{"driver", "path", "dsn", "bucket", "prefix", "region", "endpoint", "path-style"} {
		_ = cli.viperInst.BindPFlag("store."+key, flags.Lookup("store-"+key))
	}
	for _, key := range []string{"format", "page-size", "log-level", "verbose"} {
		_ = cli.viperInst.BindPFlag(key, flags.Lookup(key))
	}
}

// addCommands registers every command group
func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.usersCommand(),
		cli.keysCommand(),
		cli.logsCommand(),
		cli.sysLogsCommand(),
		cli.settingsCommand(),
		cli.notifyCommand(),
		cli.escrowCommand(),
		cli.milestonesCommand(),
		cli.failedCommand(),
		cli.disputesCommand(),
		cli.financeCommand(),
		cli.auditorsCommand(),
		cli.requestsCommand(),
		cli.exportCommand(),
		cli.storeCommand(),
	)
}

// storeConfig reads the backend configuration from flags, env and files
func (cli *CLI) storeConfig() (backend.Config, error) {
	v := cli.viperInst
	driver, err := backend.ParseDriver(v.GetString("store.driver"))
	if err != nil {
		return backend.Config{}, NewConfigError("open store", err.Error(),
			fmt.Sprintf("Set --store-driver to one of: %s", strings.Join(backend.Drivers(), ", ")),
			CommonSuggestions.CheckConfig)
	}
	return backend.Config{
		Driver: driver,
		Path:   v.GetString("store.path"),
		DSN:    v.GetString("store.dsn"),
		S3: s3.Config{
			Region:          v.GetString("store.region"),
			Bucket:          v.GetString("store.bucket"),
			Prefix:          v.GetString("store.prefix"),
			Endpoint:        v.GetString("store.endpoint"),
			AccessKeyID:     v.GetString("store.access-key-id"),
			SecretAccessKey: v.GetString("store.secret-access-key"),
			PathStyle:       v.GetBool("store.path-style"),
		},
	}, nil
}

// open initializes logging, opens the store and hydrates the console, the
// hub and the vetting center from it
func (cli *CLI) open(cmd *cobra.Command) error {
	v := cli.viperInst

	logger, logFile, err := initLogging(v.GetString("log-level"), v.GetBool("verbose"), cmd.ErrOrStderr())
	if err != nil {
		return NewConfigError("initialize logging", err.Error(), CommonSuggestions.CheckPerms)
	}
	cli.logger, cli.logFile = logger, logFile

	cfg, err := cli.storeConfig()
	if err != nil {
		return err
	}
	blob, err := backend.Open(cmd.Context(), cfg)
	if err != nil {
		return NewStoreError("open store", err, CommonSuggestions.CheckConfig)
	}
	cli.blob = blob
	logger.Debug("store opened", "driver", cfg.Driver, "command", cmd.CommandPath())

	adapter := storage.NewAdapter(blob, storage.WithLogger(logger))
	cli.adapter = adapter
	if cli.console, err = admin.New(logger, cli.now, collection.WithAdapter(adapter)); err != nil {
		return WrapError("create admin console", err)
	}
	if cli.hub, err = finance.New(logger, collection.WithAdapter(adapter), collection.WithTimeFunc(cli.now)); err != nil {
		return WrapError("create finance hub", err)
	}
	if cli.center, err = vetting.New(logger, cli.now, collection.WithAdapter(adapter)); err != nil {
		return WrapError("create vetting center", err)
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error { return cli.console.Refresh(ctx) })
	g.Go(func() error { return cli.hub.Refresh(ctx) })
	g.Go(func() error { return cli.center.Refresh(ctx) })
	if err := g.Wait(); err != nil {
		return WrapError("load data", err)
	}
	return nil
}

// close releases the store and the log file
func (cli *CLI) close() error {
	var err error
	if cli.blob != nil {
		err = cli.blob.Close()
		cli.blob = nil
	}
	if cli.logFile != nil {
		_ = cli.logFile.Close()
		cli.logFile = nil
	}
	if err != nil {
		return NewStoreError("close store", err)
	}
	return nil
}

// render writes v in the configured output format
func (cli *CLI) render(cmd *cobra.Command, v any) error {
	name := cli.viperInst.GetString("format")
	format, err := formats.Get(name)
	if err != nil {
		return NewValidationError("render output", "format", name,
			fmt.Sprintf("Available formats: %s", strings.Join(formats.List(), ", ")))
	}
	if err := format.Render(cmd.OutOrStdout(), v); err != nil {
		return &CLIError{Operation: "render output", Cause: "cannot format result", Details: err.Error(), Underlying: err}
	}
	return nil
}
