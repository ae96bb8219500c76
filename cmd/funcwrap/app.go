package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/jonwraymond/funcwrap/observe"
	"github.com/jonwraymond/funcwrap/textproc"
)

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "funcwrap",
		Usage:  "composable function decorators",
		Writer: out,
		Commands: []*cli.Command{
			demoCommand(out),
			textCommand(out),
		},
	}
}

func telemetryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level (debug, info, warn, error); warn and error hide elapsed time reports",
			Sources: cli.NewValueSourceChain(cli.EnvVar("FUNCWRAP_LOG_LEVEL")),
			Value:   "info",
		},
		&cli.StringFlag{
			Name:    "tracing",
			Usage:   "tracing exporter (stdout, otlp, jaeger, none)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("FUNCWRAP_TRACING")),
			Value:   "none",
		},
		&cli.StringFlag{
			Name:    "metrics",
			Usage:   "metrics exporter (stdout, otlp, prometheus, none)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("FUNCWRAP_METRICS")),
			Value:   "none",
		},
		&cli.StringFlag{
			Name:    "service-name",
			Usage:   "service name reported with telemetry",
			Sources: cli.NewValueSourceChain(cli.EnvVar("FUNCWRAP_SERVICE_NAME")),
			Value:   "funcwrap",
		},
	}
}

// observerConfig maps the telemetry flags onto an observe.Config.
func observerConfig(cmd *cli.Command, out io.Writer) observe.Config {
	tracing, metrics := cmd.String("tracing"), cmd.String("metrics")
	return observe.Config{
		ServiceName: cmd.String("service-name"),
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:   tracing != "none",
			Exporter:  tracing,
			SamplePct: 1.0,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  metrics != "none",
			Exporter: metrics,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   cmd.String("log-level"),
			Output:  out,
		},
	}
}

func demoCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "run every decorator against its reference scenario",
		Flags: append(telemetryFlags(),
			&cli.DurationFlag{
				Name:  "max-pause",
				Usage: "upper bound of each random pause in the timed task",
				Value: 500 * time.Millisecond,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			obs, err := observe.NewObserver(ctx, observerConfig(cmd, out))
			if err != nil {
				return err
			}
			defer func() {
				_ = obs.Shutdown(context.WithoutCancel(ctx))
			}()

			mw, err := observe.MiddlewareFromObserver(obs)
			if err != nil {
				return err
			}

			d := &demo{
				out:      out,
				logger:   obs.Logger(),
				mw:       mw,
				maxPause: cmd.Duration("max-pause"),
			}
			return d.run(ctx)
		},
	}
}

func textCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "text",
		Usage:     "strip punctuation and capitalize word edges in both orders",
		ArgsUsage: "TEXT...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return fmt.Errorf("text: missing argument")
			}
			s := strings.Join(cmd.Args().Slice(), " ")
			fmt.Fprintln(out, textproc.Apply(s, textproc.StripPunctuationStep, textproc.CapitalizeEdgesStep))
			fmt.Fprintln(out, textproc.Apply(s, textproc.CapitalizeEdgesStep, textproc.StripPunctuationStep))
			return nil
		},
	}
}

// version is reported as the service version.
var version = "dev"
