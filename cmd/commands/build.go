/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/numaproj/eventbuilder"
	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
	"github.com/numaproj/eventbuilder/pkg/config"
	"github.com/numaproj/eventbuilder/pkg/metrics"
	"github.com/numaproj/eventbuilder/pkg/scheduler"
	"github.com/numaproj/eventbuilder/pkg/shared/logging"
	"github.com/numaproj/eventbuilder/pkg/shared/util"
	"github.com/numaproj/eventbuilder/pkg/sinks"
	"github.com/numaproj/eventbuilder/pkg/sinks/blackhole"
	"github.com/numaproj/eventbuilder/pkg/sinks/jsonl"
	"github.com/numaproj/eventbuilder/pkg/sinks/logger"
	"github.com/numaproj/eventbuilder/pkg/sources/file"
)

func NewBuildCommand() *cobra.Command {
	var (
		configPath  string
		sourcePath  string
		sinkType    string
		outputPath  string
		parallelism int
		runID       string
	)

	command := &cobra.Command{
		Use:   "build",
		Short: "Build the events of a batch file",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("source") {
				conf.Source.Path = sourcePath
			}
			if flags.Changed("sink") {
				conf.Sink.Type = config.SinkType(sinkType)
			}
			if flags.Changed("output") {
				conf.Sink.Path = outputPath
			}
			if flags.Changed("parallelism") {
				conf.Parallelism = parallelism
			}
			if err := conf.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if runID == "" {
				runID = uuid.New().String()
			}

			log := logging.NewLogger().Named("builder").With("run", runID)
			version := eventbuilder.GetVersion()
			log.Infow("Starting event builder", "version", version)
			metrics.BuildInfo.WithLabelValues("builder", version.Version, version.Platform).Set(1)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = logging.WithLogger(ctx, log)
			return runBuild(ctx, cmd, conf, runID)
		},
	}
	command.Flags().StringVar(&configPath, "config", util.LookupEnvStringOr(dfv1.EnvConfigFile, ""), "Path of the configuration file, defaults to "+dfv1.DefaultConfigPath+"/"+dfv1.DefaultConfigName+".yaml")
	command.Flags().StringVar(&sourcePath, "source", "", "Path of the batch file, overrides the configuration")
	command.Flags().StringVar(&sinkType, "sink", "", "Sink type, 'log', 'jsonl' or 'blackhole'")
	command.Flags().StringVar(&outputPath, "output", "", "Output file of the jsonl sink")
	command.Flags().IntVar(&parallelism, "parallelism", util.LookupEnvIntOr(dfv1.EnvParallelism, dfv1.DefaultParallelism), "Number of batches built concurrently")
	command.Flags().StringVar(&runID, "run-id", "", "Run identifier used as metrics label, random by default")
	return command
}

func runBuild(ctx context.Context, cmd *cobra.Command, conf *config.Config, runID string) (err error) {
	log := logging.FromContext(ctx)
	src, err := file.New(conf.Source.Path, file.WithLogger(log))
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, src.Close())
	}()
	sink, err := newSink(ctx, conf.Sink, log)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, sink.Close())
	}()

	opts := []scheduler.Option{
		scheduler.WithLogger(log),
		scheduler.WithRunID(runID),
		scheduler.WithParallelism(conf.Parallelism),
	}
	if sf := conf.SeedFinder; sf != nil {
		opts = append(opts, scheduler.WithSeedFinder(sf.SlidingWindow, sf.Detectors...))
	}
	sched, err := scheduler.NewScheduler(conf.Builder, src, sink, opts...)
	if err != nil {
		return err
	}

	if conf.Metrics.Enabled {
		ms := metrics.NewMetricsServer(metrics.NewMetricsOptions(ctx, conf.Metrics.Port, []metrics.HealthChecker{sched})...)
		shutdown, err := ms.Start(ctx)
		if err != nil {
			return fmt.Errorf("failed to start metrics server, error: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warnw("Failed to shutdown metrics server", zap.Error(err))
			}
		}()
	}

	summary, err := sched.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), util.MustJSON(summary))
	return nil
}

func newSink(ctx context.Context, conf config.SinkConfig, log *zap.SugaredLogger) (sinks.Sinker, error) {
	switch conf.Type {
	case config.SinkTypeLog:
		return logger.NewToLog(string(conf.Type), logger.WithLogger(log))
	case config.SinkTypeJSONL:
		return jsonl.NewFile(string(conf.Type), conf.Path, jsonl.WithLogger(log))
	case config.SinkTypeBlackhole:
		return blackhole.NewBlackhole(ctx, string(conf.Type)), nil
	default:
		return nil, fmt.Errorf("unsupported sink type %q", conf.Type)
	}
}
