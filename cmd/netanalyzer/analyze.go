package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-netanalyzer/pkg/analysis"
	"github.com/dd0wney/cluso-netanalyzer/pkg/config"
	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
	"github.com/dd0wney/cluso-netanalyzer/pkg/metrics"
	"github.com/dd0wney/cluso-netanalyzer/pkg/netio"
	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
	"github.com/dd0wney/cluso-netanalyzer/pkg/server"
	"github.com/dd0wney/cluso-netanalyzer/pkg/telemetry"
)

// errCancelled is returned when the run ends in the Cancelled state.
var errCancelled = errors.New("analysis cancelled")

type analyzeOptions struct {
	inputFormat       string
	directed          bool
	ignoreSelfLoops   bool
	separatePaired    bool
	workers           int
	noBetweenness     bool
	noStrong          bool
	nodes             []string
	output            string
	outputFormat      string
	metricsAddr       string
	trace             string
	tui               bool
	systemMetricsTick time.Duration
}

func newAnalyzeCmd(global *globalOptions) *cobra.Command {
	opts := &analyzeOptions{systemMetricsTick: 5 * time.Second}

	cmd := &cobra.Command{
		Use:   "analyze <network-file>",
		Short: "Compute the topological statistics of a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.load()
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), cfg, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.inputFormat, "format", "", "Input format: sif, edgelist, json (default: from extension)")
	f.BoolVar(&opts.directed, "directed", false, "Treat edges as directed")
	f.BoolVar(&opts.ignoreSelfLoops, "ignore-self-loops", false, "Drop self-loops")
	f.BoolVar(&opts.separatePaired, "separate-paired", false, "Keep reciprocal edges as two undirected edges")
	f.IntVar(&opts.workers, "workers", 0, "Shortest path sweep goroutines")
	f.BoolVar(&opts.noBetweenness, "no-betweenness", false, "Skip betweenness and stress centrality")
	f.BoolVar(&opts.noStrong, "no-strong-components", false, "Skip strongly connected components")
	f.StringSliceVar(&opts.nodes, "nodes", nil, "Report only these nodes (comma separated names)")
	f.StringVarP(&opts.output, "output", "o", "", "Results file (default: stdout); .sz compresses")
	f.StringVar(&opts.outputFormat, "output-format", "", "Results format: json, yaml")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	f.StringVar(&opts.trace, "trace", telemetry.ExporterNone, "Trace exporter: none, stdout")
	f.BoolVar(&opts.tui, "tui", false, "Show an interactive progress view")
	return cmd
}

// apply overrides cfg with the flags that were set explicitly.
func (o *analyzeOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("directed") {
		cfg.Interpretation.Directed = o.directed
	}
	if changed("ignore-self-loops") {
		cfg.Interpretation.IgnoreSelfLoops = o.ignoreSelfLoops
	}
	if changed("separate-paired") {
		cfg.Interpretation.CombinePaired = !o.separatePaired
	}
	if changed("workers") {
		cfg.Analysis.Workers = o.workers
	}
	if changed("no-betweenness") {
		cfg.Analysis.ComputeBetweenness = !o.noBetweenness
	}
	if changed("no-strong-components") {
		cfg.Analysis.ComputeStrongComponents = !o.noStrong
	}
	if changed("output") {
		cfg.Output.Path = o.output
	}
	if changed("output-format") {
		cfg.Output.Format = o.outputFormat
	}
	if changed("metrics-addr") {
		cfg.Metrics.Addr = o.metricsAddr
	}
}

func runAnalyze(ctx context.Context, stdout io.Writer, cfg *config.Config, opts *analyzeOptions, path string) error {
	var logger logging.Logger = logging.NewNopLogger()
	if !opts.tui {
		// The progress view owns the terminal.
		logger = newLogger(cfg).With(logging.Component("cli"))
	}
	started := time.Now()

	shutdown, err := telemetry.Init(telemetry.Config{
		ServiceName:    "netanalyzer",
		ServiceVersion: version,
		Exporter:       opts.trace,
		Writer:         os.Stderr,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("trace shutdown failed", logging.Error(err))
		}
	}()

	host, err := netio.ReadFile(path, opts.inputFormat)
	if err != nil {
		return err
	}
	logger.Info("network loaded",
		logging.Path(path),
		logging.Nodes(len(host.Names)),
		logging.Edges(len(host.Edges.List)),
	)

	reg := metrics.NewRegistry()
	buildStart := time.Now()
	g, err := network.Build(host.View(), cfg.Interpretation)
	if err != nil {
		return err
	}
	reg.RecordGraphBuild(time.Since(buildStart))

	acfg := cfg.ToAnalysis()
	if len(opts.nodes) > 0 {
		if acfg.Subset, err = host.Resolve(opts.nodes); err != nil {
			return err
		}
	}

	run, err := analysis.NewRun(g, acfg,
		analysis.WithLogger(logger),
		analysis.WithMetrics(reg),
	)
	if err != nil {
		return err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	if err := run.Start(egCtx); err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		srv := server.NewMetricsServer(cfg.Metrics.Addr, reg.Handler(), logger)
		eg.Go(func() error {
			if err := srv.Serve(egCtx); err != nil {
				run.Cancel()
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		eg.Go(func() error {
			ticker := time.NewTicker(opts.systemMetricsTick)
			defer ticker.Stop()
			for {
				reg.UpdateSystemMetrics(started)
				select {
				case <-run.Done():
					return srv.Shutdown()
				case <-ticker.C:
				}
			}
		})
	}

	if opts.tui {
		eg.Go(func() error {
			p := tea.NewProgram(newProgressModel(run, path), tea.WithContext(egCtx), tea.WithOutput(os.Stderr))
			if _, err := p.Run(); err != nil && egCtx.Err() == nil {
				run.Cancel()
				return fmt.Errorf("progress view: %w", err)
			}
			return nil
		})
	}

	outcome := run.Wait()
	if err := eg.Wait(); err != nil {
		return err
	}

	switch outcome.State {
	case analysis.StateCancelled:
		return errCancelled
	case analysis.StateFailed:
		return outcome.Err
	}

	doc := netio.NewDocument(outcome.Results, host.Names, cfg.Filters)
	if cfg.Output.Path == "" {
		n, err := netio.Write(stdout, doc, cfg.Output.Format)
		reg.RecordExport(cfg.Output.Format, n, err)
		return err
	}
	if err := netio.WriteFile(cfg.Output.Path, doc, cfg.Output.Format, reg); err != nil {
		return err
	}
	logger.Info("results written", logging.Path(cfg.Output.Path))
	return nil
}
