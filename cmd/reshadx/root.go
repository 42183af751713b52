package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reshadx/reshadx-go"
)

var (
	errUsage            = errors.New("usage error")
	errInvalidSignature = errors.New("invalid webhook signature")
)

// env holds the process dependencies of the commands.
type env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
}

func defaultEnv() *env {
	return &env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	apiKey     string
	env        string
	baseURL    string
	logLevel   string
}

func newRootCmd(e *env) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:     "reshadx",
		Short:   "Command-line client for the ReshADX API",
		Version: reshadx.Version,
		Long: `Command-line client for the ReshADX API.

Settings are read from the --config YAML file, then RESHADX_* environment
variables, then flags. RESHADX_ACCESS_TOKEN supplies a bearer token for
commands that need a logged-in user.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetIn(e.Stdin)
	root.SetOut(e.Stdout)
	root.SetErr(e.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&flags.apiKey, "api-key", "", "API key (env: RESHADX_API_KEY)")
	pf.StringVar(&flags.env, "env", "", "environment: production or sandbox (env: RESHADX_ENVIRONMENT)")
	pf.StringVar(&flags.baseURL, "base-url", "", "override the API base URL (env: RESHADX_BASE_URL)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (env: RESHADX_LOG_LEVEL)")

	app := &app{env: e, flags: flags}
	root.AddCommand(loginCmd(app))
	root.AddCommand(accountsCmd(app))
	root.AddCommand(transactionsCmd(app))
	root.AddCommand(creditScoreCmd(app))
	root.AddCommand(webhooksCmd(app))

	return root
}

// app builds clients from the merged configuration.
type app struct {
	env   *env
	flags *globalFlags
}

func (a *app) config(cmd *cobra.Command) (reshadx.Config, error) {
	cfg, err := reshadx.LoadConfig(a.flags.configPath)
	if err != nil {
		return reshadx.Config{}, err
	}

	pf := cmd.Flags()
	if pf.Changed("api-key") {
		cfg.APIKey = a.flags.apiKey
	}
	if pf.Changed("env") {
		cfg.Environment = reshadx.Environment(a.flags.env)
	}
	if pf.Changed("base-url") {
		cfg.BaseURL = a.flags.baseURL
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	return cfg, nil
}

func (a *app) client(cmd *cobra.Command) (*reshadx.Client, error) {
	cfg, err := a.config(cmd)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.LogLevel, cfg.LogPretty, a.env.Stderr)
	client, err := reshadx.NewFromConfig(cfg, reshadx.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if token := a.env.Getenv("RESHADX_ACCESS_TOKEN"); token != "" {
		client.SetAccessToken(token)
	}
	return client, nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.env.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newLogger builds the CLI logger. Unknown levels fall back to info.
func newLogger(level string, pretty bool, w io.Writer) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(w).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return l.Level(lvl)
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}
