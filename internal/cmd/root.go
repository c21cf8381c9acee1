// Package cmd wires the merchdesk command tree.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/merchdesk/internal/config"
	"github.com/felixgeelhaar/merchdesk/internal/errors"
	"github.com/felixgeelhaar/merchdesk/internal/log"
	"github.com/felixgeelhaar/merchdesk/internal/platform"
	"github.com/felixgeelhaar/merchdesk/internal/session"
	"github.com/felixgeelhaar/merchdesk/internal/ux"
	"github.com/felixgeelhaar/merchdesk/internal/version"
)

var (
	flagConfigPath string
	flagOutput     string
	flagNoColor    bool
	flagVerbose    bool
)

// app holds the shared state built once per invocation.
type appState struct {
	config  *config.Config
	logger  *log.Logger
	api     *platform.Client
	session *session.Manager
	styles  ux.Styles
}

var app *appState

var rootCmd = &cobra.Command{
	Use:   "merchdesk",
	Short: "Back-office client for the merch commerce platform",
	Long: `merchdesk is the command-line back office for a multi-tenant commerce
platform. It manages products, brands, marketplaces, shipping platforms,
users and their access grants.

Sessions are handled silently: tokens are renewed in the background and
you are only asked to log in again when renewal is no longer possible.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	defer closeApp()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file (default is $HOME/.merchdesk/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// initApp builds the config, logger, API client and session manager
// shared by every command.
func initApp() error {
	configPath := flagConfigPath
	if configPath == "" {
		var err error
		configPath, err = config.Path()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logLevel := cfg.Log.Level
	if flagVerbose {
		logLevel = "debug"
	}
	logger := log.New(log.Config{
		Level:          log.ParseLevel(logLevel),
		Format:         log.ParseFormat(cfg.Log.Format),
		Output:         log.OutputStderr(),
		ServiceName:    "merchdesk",
		ServiceVersion: version.Version,
	})
	log.SetDefaultLogger(logger)

	api := platform.NewClient(cfg.API.BaseURL, platform.WithTimeout(cfg.APITimeout()))

	credsPath, err := config.CredentialsPath()
	if err != nil {
		return err
	}

	mgr := session.NewManager(api, session.NewFileStore(credsPath), logger, session.Options{
		SafetyBuffer:    cfg.SafetyBuffer(),
		RefreshInterval: cfg.RefreshInterval(),
		NetworkType:     cfg.Session.NetworkType,
	})

	styles := ux.DefaultStyles()
	if flagNoColor {
		styles = ux.PlainStyles()
	}

	app = &appState{
		config:  cfg,
		logger:  logger,
		api:     api,
		session: mgr,
		styles:  styles,
	}

	return nil
}

func closeApp() {
	if app != nil {
		app.session.Close()
	}
}

// requireSession restores the persisted session and returns a token
// valid for at least the safety buffer. Commands that talk to protected
// endpoints call this first.
func requireSession(ctx context.Context) error {
	if err := app.session.Initialize(ctx); err != nil {
		return err
	}

	if app.session.EnsureValidToken(ctx) == "" {
		snap := app.session.Snapshot()
		if snap.Err != "" {
			return errors.NewSessionExpiredError()
		}
		return errors.NewNotLoggedInError()
	}

	return nil
}

// outputFormatter builds the formatter selected by --output.
func outputFormatter() (ux.Formatter, error) {
	return ux.NewFormatter(flagOutput, &ux.FormatterOptions{NoColor: flagNoColor})
}

// textOutput reports whether the table renderer should be used instead
// of a structured formatter.
func textOutput() bool {
	return flagOutput == "" || flagOutput == "text"
}

func printTable(headers []string, rows [][]string) {
	fmt.Print(ux.Table(app.styles, headers, rows))
}
