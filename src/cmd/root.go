// Package cmd implements the moviesaver command line
package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apimgr/moviesaver/src/paths"
	"github.com/apimgr/moviesaver/src/store"
)

var (
	ProjectName = "moviesaver"

	cfgFile     string
	dataDir     string
	storeFormat string
	noColor     bool
	debug       bool

	// set by initConfig, reported once logging is up
	configErr error

	// one per process run, stamped on log records and journal entries
	sessionID string
	logger    = slog.Default()
)

// defaults are registered with viper and written by config init
var defaults = []struct {
	key   string
	value any
}{
	{"storage.dir", store.DefaultDir},
	{"storage.format", string(store.FormatText)},
	{"storage.file", ""},
	{"storage.delimiter", store.DefaultDelimiter},
	{"storage.backups", 0},
	{"logging.level", "warn"},
	{"logging.file", ""},
	{"logging.max_size", 10},
	{"logging.max_files", 5},
	{"journal.enabled", true},
	{"output.format", "table"},
	{"output.color", "auto"},
}

var rootCmd = &cobra.Command{
	Use:   getBinaryName(),
	Short: "Manage a personal movie catalog",
	Long: `moviesaver keeps a small catalog of movies (title, release year, price)
in a local file. Run it without a command for the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		sessionID = uuid.NewString()
		logger = initLogging(cmd.ErrOrStderr()).With("session", sessionID)
		slog.SetDefault(logger)

		if configErr != nil {
			logger.Warn("could not read config", "file", viper.ConfigFileUsed(), "error", configErr)
		}
		logger.Debug("command start", "command", cmd.CommandPath(), "args", args)
		return nil
	},
	RunE: runMenu,
}

// Execute runs the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path or name")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "storage directory (default MovieData)")
	rootCmd.PersistentFlags().StringVarP(&storeFormat, "format", "f", "", "storage format: text, json, yaml, sqlite")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	configErr = nil
	viper.SetConfigFile(getConfigPath())
	viper.SetConfigType("yaml")

	for _, d := range defaults {
		viper.SetDefault(d.key, d.value)
	}

	viper.SetEnvPrefix("MOVIESAVER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			configErr = err
		}
	}
}

func getConfigPath() string {
	return paths.ResolveConfigPath(cfgFile)
}

func getBinaryName() string {
	return filepath.Base(os.Args[0])
}
