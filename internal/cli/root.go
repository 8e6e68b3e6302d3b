package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"yyoom/internal/adapters"
	"yyoom/internal/app"
	"yyoom/internal/shared"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "YYOOM"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
	Verbose    bool
	CacheDir   string
	LockFile   string
	RpmPath    string
	ReposFile  string
}

func Execute() {
	setupLogging(os.Stderr, "info", false)
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		reportError(err, viper.GetBool("verbose"))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "yyoom",
		Short:         "Transactional RPM package management with JSON reports",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(cmd.ErrOrStderr(), viper.GetString("log_level"), viper.GetBool("verbose"))
			cmd.SetContext(log.Logger.WithContext(cmd.Context()))
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Debug logging and full error details")
	flags.StringVar(&cfg.CacheDir, "cache-dir", adapters.DefaultCacheDir, "Package engine cache directory")
	flags.StringVar(&cfg.LockFile, "lock-file", adapters.DefaultLockFile, "Package database lock file")
	flags.StringVar(&cfg.RpmPath, "rpm", "rpm", "rpm executable")
	flags.StringVar(&cfg.ReposFile, "repos-file", "", "Repository definitions file (yaml)")
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("cache_dir", flags.Lookup("cache-dir"))
	_ = viper.BindPFlag("lock_file", flags.Lookup("lock-file"))
	_ = viper.BindPFlag("rpm_path", flags.Lookup("rpm"))
	_ = viper.BindPFlag("repos_file", flags.Lookup("repos-file"))

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newTransactionCommand())
	cmd.AddCommand(newBuildDependenciesCommand())
	cmd.AddCommand(newCleanCachesCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("yyoom")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/yyoom")
	viper.AddConfigPath("/etc/yyoom")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

// setupLogging sends all logs to out; stdout carries only the report.
func setupLogging(out io.Writer, level string, verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out})
	zerolog.DefaultContextLogger = &log.Logger
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func newAppService(cmd *cobra.Command) app.Service {
	return app.NewService(app.Config{
		Engine: adapters.YumEngineConfig{
			CacheDir:         viper.GetString("cache_dir"),
			LockFile:         viper.GetString("lock_file"),
			RpmPath:          viper.GetString("rpm_path"),
			ReposFile:        viper.GetString("repos_file"),
			HTTPTimeoutSec:   viper.GetInt("http_timeout"),
			HTTPRetries:      viper.GetInt("http_retries"),
			HTTPRetryDelayMs: viper.GetInt("http_retry_delay_ms"),
			SkipHeaderCheck:  viper.GetBool("skip_header_check"),
		},
		Out: cmd.OutOrStdout(),
	})
}

// reportError logs the failure summary, or the whole error chain when
// verbose.
func reportError(err error, verbose bool) {
	event := log.Error()
	if kind := shared.KindOf(err); kind != "" {
		event = event.Str("kind", string(kind))
	}
	if verbose {
		event.Err(err).Msg("command failed")
		return
	}
	event.Msg(errorMessage(err))
}

func exitCodeForError(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
