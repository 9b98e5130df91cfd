// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tpadmin CLI, which publishes
// TypingChild lessons and client configuration to Firestore.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tpadmin/internal/console"
	"github.com/pdiddy/tpadmin/internal/docstore"
	"github.com/pdiddy/tpadmin/internal/logging"
	"github.com/pdiddy/tpadmin/internal/runcount"
	"github.com/pdiddy/tpadmin/internal/secrets"
	"github.com/pdiddy/tpadmin/pkg/types"
)

// appName keys the per-user state file and the config search path.
const appName = "tpadmin"

// version is set at build time via ldflags.
var version = "1.0.0"

var (
	// loadedCredentials holds the service account loaded at startup.
	loadedCredentials types.Credentials

	// diag is the diagnostic logger configured from --verbose and --log-file.
	diag = logging.Nop()

	// setupErr is the failure, if any, of loading credentials before a
	// command runs. Commands report it instead of running.
	setupErr error
)

// rootCmd is the base command for the tpadmin CLI.
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "TypingChild Admin app to upload data to firestore.",
	Long: `tpadmin publishes TypingChild content to Firestore. It parses the lesson
text file, replaces the lessons collection, and maintains the config document
clients read to decide what to download.

Credentials come from PROJECT_ID, PRIVATE_KEY and CLIENT_EMAIL, optionally set
in a .env file or as files in .secrets/.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupErr = setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		diag.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./tpadmin.yaml or ~/.config/tpadmin/config.yaml)")
	pf.String("env-file", ".env", "dotenv file with credential variables")
	pf.String("secrets-dir", ".secrets/", "directory of credential files (project-id, private-key, client-email)")
	pf.String("backend", string(types.BackendFirestore), "document store backend: firestore or sqlite")
	pf.String("sqlite-path", "data/tpadmin.db", "database file for the sqlite backend")
	pf.String("emulator-host", docstore.DefaultEmulatorHost, "firestore emulator address used with --emulator")
	pf.Bool("no-color", false, "disable colored output")
	pf.Bool("verbose", false, "write diagnostic logs to stderr")
	pf.String("log-file", "", "also write diagnostic logs to this rotating file")

	for _, name := range []string{"backend", "sqlite-path", "emulator-host", "no-color", "verbose", "log-file"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
}

// setup configures output and logging, then loads .env, .secrets/ and the
// service account credentials.
func setup(cmd *cobra.Command) error {
	if viper.GetBool("no-color") {
		console.DisableColor()
	}

	diag = logging.New(logging.Options{
		Verbose: viper.GetBool("verbose"),
		File:    viper.GetString("log-file"),
	}).With("command", cmd.Name())

	envFile, _ := cmd.Flags().GetString("env-file")
	if err := secrets.LoadDotEnv(envFile); err != nil {
		return err
	}

	secretsDir, _ := cmd.Flags().GetString("secrets-dir")
	s, err := secrets.Load(secretsDir)
	if err != nil {
		return err
	}
	if len(s) > 0 {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		diag.Debug("loaded secrets", "keys", keys)
	}

	creds, err := secrets.LoadCredentials(s)
	if err != nil {
		return err
	}
	loadedCredentials = creds
	return nil
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(appName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", appName))
		}
	}

	viper.SetEnvPrefix("TPADMIN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// runEnv carries what a command needs besides its flags.
type runEnv struct {
	out    *console.Printer
	log    *logging.Logger
	counts *runcount.Store
}

// newRunEnv always returns a usable printer and logger, even with an error.
func newRunEnv() (runEnv, error) {
	env := runEnv{out: console.Stdout, log: diag}
	counts, err := runcount.New(appName)
	if err != nil {
		return env, err
	}
	env.counts = counts
	return env, nil
}

// action wraps a command body so that every failure, startup ones included,
// goes through reportFailure.
func action(fn func(cmd *cobra.Command, env runEnv) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := newRunEnv()
		if err == nil {
			err = setupErr
		}
		if err == nil {
			err = fn(cmd, env)
		}
		if err != nil {
			return reportFailure(env, err)
		}
		return nil
	}
}

// storeConfig collects the backend settings shared by every remote command.
func storeConfig(emulator bool) types.StoreConfig {
	return types.StoreConfig{
		Backend:      types.Backend(viper.GetString("backend")),
		Emulator:     emulator,
		EmulatorHost: viper.GetString("emulator-host"),
		SQLitePath:   viper.GetString("sqlite-path"),
		Credentials:  loadedCredentials,
	}
}

// reportFailure prints err the way every command reports a failed action.
// The command itself still exits normally.
func reportFailure(env runEnv, err error) error {
	env.log.Error("command failed", "error", err)
	env.out.Error(err)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
