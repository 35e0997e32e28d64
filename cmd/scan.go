package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitoutofhours/internal/collector"
	"gitoutofhours/internal/common"
	"gitoutofhours/internal/git"
	"gitoutofhours/internal/history"
	"gitoutofhours/internal/observability"
	"gitoutofhours/internal/report"
	"gitoutofhours/internal/schedule"
	"gitoutofhours/internal/ui"
	"gitoutofhours/pkg/errors"
	"gitoutofhours/pkg/models"
)

type scanFlags struct {
	pickAuthor  bool
	failOnFound bool
	verbose     bool
}

func runScan(cmd *cobra.Command, v *viper.Viper, flags scanFlags) error {
	days, err := models.ParseDayCount(v.GetString("scan.days"))
	if err != nil {
		return err
	}

	match, err := models.ParseAuthorMatch(v.GetString("scan.match"))
	if err != nil {
		return errors.ValidationError("match", v.GetString("scan.match"), err.Error())
	}

	format, err := report.ParseFormat(v.GetString("output.format"))
	if err != nil {
		return err
	}

	start, err := schedule.ParseClock(v.GetString("hours.start"), schedule.DefaultStart)
	if err != nil {
		return errors.ValidationError("start", v.GetString("hours.start"), err.Error())
	}
	end, err := schedule.ParseClock(v.GetString("hours.end"), schedule.DefaultEnd)
	if err != nil {
		return errors.ValidationError("end", v.GetString("hours.end"), err.Error())
	}

	repoDir, err := common.ResolveDir(v.GetString("scan.repo"))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeRepoNotFound, "Repository path is not usable").
			WithContext("repo", v.GetString("scan.repo"))
	}

	opts := models.Options{
		DayCount:      days,
		Author:        v.GetString("scan.author"),
		AuthorMatch:   match,
		SkipTimeCheck: v.GetBool("hours.anytime"),
		Branch:        v.GetString("scan.branch"),
		StartClock:    start.String(),
		EndClock:      end.String(),
		Concurrency:   v.GetInt("scan.concurrency"),
		RepoPath:      repoDir,
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	if flags.pickAuthor {
		opts.Author = ""
	}

	level := observability.LogLevelFromString(v.GetString("output.log_level"))
	if flags.verbose {
		level = observability.DebugLevel
	}
	encoder, ok := observability.EncoderFromString(v.GetString("output.log_format"))
	if !ok {
		return errors.ValidationError("log-format", v.GetString("output.log_format"), "must be text or json")
	}
	logger := observability.NewLogger(observability.LoggerConfig{
		Level:   level,
		Output:  cmd.ErrOrStderr(),
		Version: Version,
		Encoder: encoder,
	})

	source, err := git.NewSource(v.GetString("scan.source"), repoDir)
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	printer.Verbose = flags.verbose
	printer.Quiet = format != report.FormatTable
	printer.Info(ui.IntroLine(opts.DayCount, opts.Author, opts.SkipTimeCheck, start.Label(), end.Label()))

	sched := schedule.New(start, end)
	sched.Now = now

	progress := ui.NewWindowProgress(cmd.ErrOrStderr(), opts.DayCount,
		format == report.FormatTable && logger.Level() > observability.DebugLevel && ui.IsTerminal(cmd.ErrOrStderr()))

	c := collector.New(source, sched)
	c.Logger = logger.WithField("repo", repoDir)
	c.Progress = progress.Update

	logger.DebugWithFields("scan starting", map[string]interface{}{
		"days":        opts.DayCount,
		"branch":      opts.Branch,
		"start":       opts.StartClock,
		"end":         opts.EndClock,
		"anytime":     opts.SkipTimeCheck,
		"source":      v.GetString("scan.source"),
		"concurrency": opts.Concurrency,
	})

	h, err := c.Collect(cmd.Context(), opts)
	progress.Finish()
	if err != nil {
		logger.WithError(err).WithField("code", errors.GetErrorCode(err)).Error("scan failed")
		return err
	}
	logger.Infof("collected %d commits over %d days", h.Len(), opts.DayCount)
	if failed := c.Metrics.Failures.Value(); failed > 0 {
		printer.Warning(fmt.Sprintf("%d of %d days could not be read and were skipped", failed, opts.DayCount))
	}

	if flags.pickAuthor && h.Len() > 0 {
		author, err := pickAuthor(h.Authors())
		if err != nil {
			return err
		}
		opts.Author = author
		keep := history.MatchAuthor(author, models.MatchExact)
		h = h.Filter(func(rec models.CommitRecord) bool { return keep(rec.Author) })
	}

	reporter := report.New(cmd.OutOrStdout())
	reporter.Format = format
	reporter.Color = printer.Color

	found, err := reporter.Report(h, opts)
	if err != nil {
		return err
	}

	if found && flags.failOnFound {
		return errors.NewExit(errors.ExitCommitsFound, "out-of-hours commits found")
	}
	return nil
}
