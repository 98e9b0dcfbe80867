// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/app"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/config"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

const (
	flagSample = "sample"
	flagReport = "report"
)

func newRootCmd(info models.AppBuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:           "tamanu",
		Short:         "Tamanu to LIMS bridge",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		syncCmd(),
		tasksCmd(),
		notifyCmd(),
		migrateCmd(),
		versionCmd(info),
	)
	return root
}

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize Tamanu patients or lab requests into the LIMS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.GetSyncConfig(cmd.Flags())
			if err != nil {
				return err
			}

			logger.SetVerbose(cfg.Verbose)
			log := logger.NewLogger("sync")
			log.Debug().Str("resource", cfg.Resource).Str("host", cfg.Remote.Host).Msg("received configs")

			return app.RunSync(cmd.Context(), cfg, os.Stdout, log)
		},
	}

	config.RegisterCommonFlags(cmd.Flags())
	config.RegisterTamanuFlags(cmd.Flags())
	config.RegisterSyncFlags(cmd.Flags())
	return cmd
}

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Execute the queued Tamanu tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.GetTasksConfig(cmd.Flags())
			if err != nil {
				return err
			}

			logger.SetVerbose(cfg.Verbose)
			log := logger.NewLogger("tasks")
			log.Debug().Int("max_tasks", cfg.MaxTasks).Bool("remote", cfg.Remote != nil).Msg("received configs")

			return app.RunTasks(cmd.Context(), cfg, os.Stdout, log)
		},
	}

	config.RegisterCommonFlags(cmd.Flags())
	config.RegisterTamanuFlags(cmd.Flags())
	config.RegisterTasksFlags(cmd.Flags())
	return cmd
}

func notifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Queue the DiagnosticReport notification of a sample or a results report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.GetCommonConfig(cmd.Flags())
			if err != nil {
				return err
			}
			sample, _ := cmd.Flags().GetString(flagSample)
			report, _ := cmd.Flags().GetString(flagReport)

			logger.SetVerbose(cfg.Verbose)
			log := logger.NewLogger("notify")

			return app.RunNotify(cmd.Context(), cfg, sample, report, os.Stdout, log)
		},
	}

	config.RegisterCommonFlags(cmd.Flags())
	cmd.Flags().String(flagSample, "", "UID of the sample to notify")
	cmd.Flags().String(flagReport, "", "UID of the results report whose samples are notified")
	cmd.MarkFlagsMutuallyExclusive(flagSample, flagReport)
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the pending schema migrations of the local store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.GetCommonConfig(cmd.Flags())
			if err != nil {
				return err
			}

			logger.SetVerbose(cfg.Verbose)
			return app.RunMigrate(cmd.Context(), cfg, os.Stdout, logger.NewLogger("migrate"))
		},
	}

	config.RegisterCommonFlags(cmd.Flags())
	return cmd
}

func versionCmd(info models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			printBuildInfo(info)
		},
	}
}
