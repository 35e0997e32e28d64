package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitoutofhours/internal/config"
	"gitoutofhours/internal/ui"
	"gitoutofhours/pkg/errors"
	"gitoutofhours/pkg/models"
)

// EnvPrefix prefixes environment overrides, e.g. GITOUTOFHOURS_SCAN_DAYS
const EnvPrefix = "GITOUTOFHOURS"

var (
	// now and pickAuthor are replaced in tests
	now        = time.Now
	pickAuthor = ui.PickAuthor

	rootCmd = newRootCmd()
)

// flag name to config key
var flagKeys = map[string]string{
	"days":        "scan.days",
	"author":      "scan.author",
	"match":       "scan.match",
	"branch":      "scan.branch",
	"repo":        "scan.repo",
	"source":      "scan.source",
	"concurrency": "scan.concurrency",
	"start":       "hours.start",
	"end":         "hours.end",
	"anytime":     "hours.anytime",
	"format":      "output.format",
	"log-level":   "output.log_level",
	"log-format":  "output.log_format",
}

func newRootCmd() *cobra.Command {
	var (
		configFile  string
		pick        bool
		failOnFound bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "gitoutofhours",
		Short: "Report commits made outside working hours",
		Long: `gitoutofhours scans the git history of a repository one day at a time and
reports the commits made outside working hours, together with the hour
those commits were most often made.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadSettings(cmd, configFile)
			if err != nil {
				return err
			}
			return runScan(cmd, v, scanFlags{
				pickAuthor:  pick,
				failOnFound: failOnFound,
				verbose:     verbose,
			})
		},
	}

	defaults := models.DefaultConfig()
	flags := cmd.Flags()
	flags.StringP("days", "d", "30", "Number of days to search")
	flags.StringP("author", "a", "", "Only report commits by this author")
	flags.Var(newEnum(defaults.Scan.Match, string(models.MatchExact), string(models.MatchContains)),
		"match", "Author matching: exact or contains")
	flags.Bool("anytime", false, "Report commits made at any time of day")
	flags.StringP("branch", "b", defaults.Scan.Branch, "Branch to scan")
	flags.StringP("start", "s", "17", "Hour the working day ends (HH or HH:MM)")
	flags.StringP("end", "e", "08", "Hour the working day starts (HH or HH:MM)")
	flags.StringP("repo", "r", defaults.Scan.Repo, "Path to the repository")
	flags.Var(newEnum(defaults.Scan.Source, "exec", "gogit").withAlias("go-git", "gogit"),
		"source", "History source: exec (git binary) or gogit")
	flags.IntP("concurrency", "c", defaults.Scan.Concurrency, "Maximum concurrent day retrievals")
	flags.VarP(newEnum(defaults.Output.Format, "table", "json", "yaml").withAlias("yml", "yaml"),
		"format", "f", "Output format: table, json or yaml")
	flags.String("log-level", defaults.Output.LogLevel, "Log level: debug, info, warn, error, off")
	flags.Var(newEnum(defaults.Output.LogFormat, "text", "json"), "log-format", "Log format: text or json")
	flags.BoolVar(&pick, "pick-author", false, "Choose the author interactively from the commits found")
	flags.BoolVar(&failOnFound, "fail-on-found", false, "Exit with status 3 when out-of-hours commits are found")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Show debug logs and detailed errors")

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.gitoutofhours/config.yaml)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd(&configFile))

	return cmd
}

// configPath returns the --config value or the default location
func configPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return config.GetConfigFile()
}

// loadSettings layers flags over environment over the config file over the
// built-in defaults.
func loadSettings(cmd *cobra.Command, configFile string) (*viper.Viper, error) {
	fileCfg, err := config.LoadFrom(configPath(configFile))
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("scan.days", fileCfg.Scan.Days)
	v.SetDefault("scan.author", fileCfg.Scan.Author)
	v.SetDefault("scan.match", fileCfg.Scan.Match)
	v.SetDefault("scan.branch", fileCfg.Scan.Branch)
	v.SetDefault("scan.repo", fileCfg.Scan.Repo)
	v.SetDefault("scan.source", fileCfg.Scan.Source)
	v.SetDefault("scan.concurrency", fileCfg.Scan.Concurrency)
	v.SetDefault("hours.start", fileCfg.Hours.Start)
	v.SetDefault("hours.end", fileCfg.Hours.End)
	v.SetDefault("hours.anytime", fileCfg.Hours.Anytime)
	v.SetDefault("output.format", fileCfg.Output.Format)
	v.SetDefault("output.log_level", fileCfg.Output.LogLevel)
	v.SetDefault("output.log_format", fileCfg.Output.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeInternal, "Failed to bind flag").WithContext("flag", name)
			}
		}
	}

	return v, nil
}

// Execute runs the root command and exits with its status
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := errors.ExitCodeOf(err)
		if code != errors.ExitCommitsFound {
			printer := ui.NewPrinter(os.Stdout, os.Stderr)
			printer.Color = ui.IsTerminal(os.Stderr)
			printer.Verbose = verboseRequested(os.Args[1:])
			printer.Error(err)
		}
		os.Exit(code)
	}
}

func verboseRequested(args []string) bool {
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
