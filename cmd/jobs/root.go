package main

import (
	"github.com/spf13/cobra"

	"github.com/snowRepo/LMS-sub006/library/features/command/expirereservations"
	"github.com/snowRepo/LMS-sub006/library/features/command/sendduereminders"
)

const (
	logMsgSweepFailures = "sweep finished with failures"
	logAttrJob          = "job"
	logAttrError        = "error"
)

// newRootCommand builds the CLI. Sweep failures of single records are logged and do not change the
// exit code, only a failing setup does.
func newRootCommand(open openFunc) *cobra.Command {
	root := &cobra.Command{
		Use:          "jobs",
		Short:        "Scheduled maintenance of the library management system",
		SilenceUsage: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "check-expired-reservations",
			Short: "Expire pending reservations whose expiry date has passed and release their copies",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				env, err := open(cmd.Context())
				if err != nil {
					return err
				}
				defer env.close()

				handler := expirereservations.NewCommandHandler(
					env.transactor,
					env.ledger,
					env.queue,
					expirereservations.WithLogger(env.logger),
				)

				if _, err = handler.Run(cmd.Context(), expirereservations.BuildCommand(env.now())); err != nil {
					env.logger.Error(logMsgSweepFailures, logAttrJob, cmd.Name(), logAttrError, err.Error())
				}

				return nil
			},
		},
		&cobra.Command{
			Use:   "check-due-books",
			Short: "Remind members of loans that are due soon",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				env, err := open(cmd.Context())
				if err != nil {
					return err
				}
				defer env.close()

				handler := sendduereminders.NewCommandHandler(
					env.transactor,
					env.queue,
					sendduereminders.WithLogger(env.logger),
				)

				command := sendduereminders.BuildCommand(env.now(), env.reminderWindow)
				if _, err = handler.Run(cmd.Context(), command); err != nil {
					env.logger.Error(logMsgSweepFailures, logAttrJob, cmd.Name(), logAttrError, err.Error())
				}

				return nil
			},
		},
	)

	return root
}
