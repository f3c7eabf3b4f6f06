package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/olickqc/hardlinkcheck/pkg/logger"
	"github.com/olickqc/hardlinkcheck/pkg/notification"
	"github.com/olickqc/hardlinkcheck/pkg/report"
	"github.com/olickqc/hardlinkcheck/pkg/scanner"
)

func CheckCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "check",
		Short: "Check a directory tree for files that are not hardlinked",
		Long:  `This command can be used to scan the configured folder and report every regular file whose hardlink count is one.`,
	}

	command.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()

		// init core
		if err := initCore(); err != nil {
			return err
		}

		// set log
		log := logger.Prefixed(rootLog, "check")

		noti := notification.NewDiscordSender(log, cfg.Notifications)

		// run scan
		s, err := scanner.New(cfg, logger.Prefixed(rootLog, "scanner"))
		if err != nil {
			return err
		}

		result, err := s.Run(ctx)
		if err != nil {
			return err
		}

		summary := result.Summary

		// write report
		w := report.NewWriter(cfg.OutputPath, logger.Prefixed(rootLog, "report"))

		reportPath := w.Path(start)
		if FlagDryRun {
			log.Warnf("Dry-run enabled, skipping report write: %s", reportPath)
			reportPath = "(dry run, report not written)"
		} else {
			if reportPath, err = w.Write(result, start); err != nil {
				return err
			}
		}

		fmt.Print(report.ConsoleSummary(summary, reportPath))

		log.WithField("non_hardlinked_size", humanize.IBytes(summary.NonHardlinkedSizeBytes)).
			Infof("Found %d non-hardlinked files out of %d scanned (%d errors)",
				summary.NonHardlinkedCount, summary.TotalFiles, summary.ErrorCount)

		// send notification
		if noti.CanSend() {
			description := fmt.Sprintf("**%d** of **%d** files are not hardlinked | Total **%s**",
				summary.NonHardlinkedCount, summary.TotalFiles, humanize.IBytes(summary.NonHardlinkedSizeBytes))
			if summary.NonHardlinkedCount == 0 {
				description = "All files are properly hardlinked!"
			}

			fields := make([]notification.Field, 0, len(result.Files))
			for _, f := range result.Files {
				fields = append(fields, noti.BuildField(f))
			}

			if sendErr := noti.Send("Hardlink Check", description, time.Since(start), fields, FlagDryRun); sendErr != nil {
				log.WithError(sendErr).Error("Failed sending notification")
			}
		} else {
			log.Debug("Notifications disabled, skipping...")
		}

		if summary.NonHardlinkedCount > 0 {
			return scanner.ErrNonHardlinkedFound
		}

		return nil
	}

	return command
}
