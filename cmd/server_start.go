// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/retr0h/osaudit/internal/api"
	"github.com/retr0h/osaudit/internal/audit"
	"github.com/retr0h/osaudit/internal/audit/sink"
	"github.com/retr0h/osaudit/internal/cli"
	"github.com/retr0h/osaudit/internal/node"
	"github.com/retr0h/osaudit/internal/telemetry"
)

// recordQueueSize bounds the records waiting for the sink.
const recordQueueSize = 1024

// serverStartCmd represents the serverStart command.
var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the server",
	Long: `Start the audited HTTP server.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		shutdownTracer, err := telemetry.InitTracer(
			ctx,
			"osaudit",
			appConfig.Telemetry.Tracing,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize tracer", err)
		}

		metricsHandler, metricsPath, shutdownMeter, err := telemetry.InitMeter(
			appConfig.Telemetry.Metrics,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize meter", err)
		}

		metrics, err := telemetry.NewAuditMetrics(otel.Meter("osaudit"))
		if err != nil {
			cli.LogFatal(logger, "failed to register audit metrics", err)
		}

		recordSink, err := sink.New(
			appFs,
			appConfig.Audit.Sink.Type,
			appConfig.Audit.Sink.Path,
			audit.Format(appConfig.Audit.Format),
		)
		if err != nil {
			cli.LogFatal(logger, "failed to create sink", err)
		}

		identity := node.Resolve(appConfig.Node)
		records := make(chan *audit.Snapshot, recordQueueSize)
		sinkDone := startSink(logger.With("component", "sink"), recordSink, records)

		sm, err := api.New(
			appConfig,
			logger.With("component", "api"),
			identity,
			api.WithRecords(records),
			api.WithMetrics(metrics),
			api.WithMetricsHandler(metricsHandler, metricsPath),
		)
		if err != nil {
			cli.LogFatal(logger, "failed to create server", err)
		}

		cli.RunServer(ctx, logger, sm, func() {
			close(records)
			<-sinkDone
			_ = shutdownMeter(context.Background())
			_ = shutdownTracer(context.Background())
		})
	},
}

// startSink drains records into s until the channel is closed. The
// returned channel is closed once every queued record is written.
func startSink(
	log *slog.Logger,
	s sink.Sink,
	records <-chan *audit.Snapshot,
) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		result, err := sink.Run(context.Background(), log, s, records)
		if err != nil {
			cli.LogFatal(log, "failed to run sink", err)

			return
		}

		log.Info(
			"sink drained",
			slog.Int("written", result.Written),
			slog.Int("failed", result.Failed),
		)
	}()

	return done
}

func init() {
	serverCmd.AddCommand(serverStartCmd)
}
