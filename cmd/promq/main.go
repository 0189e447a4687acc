package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/slok/promquery"
	"github.com/slok/promquery/internal/render"
	"github.com/slok/promquery/model"
)

// Version is the promq version, set at build time.
var Version = "dev"

func main() {
	fl := newFlags()
	logger := newLogger(fl.logLevel)

	cli, err := promquery.NewClient(fl.server,
		promquery.WithLogger(logger),
		promquery.WithUserAgent("promq/"+Version),
	)
	if err != nil {
		fatal(err)
	}

	if fl.command == "watch" {
		if err := runWatch(cli, fl, logger); err != nil {
			fatal(err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), fl.timeout+10*time.Second)
	defer cancel()

	out := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	switch fl.command {
	case "query":
		err = runQuery(ctx, cli, fl, out)
	case "range":
		err = runRange(ctx, cli, fl, out)
	case "labels":
		err = runLabels(ctx, cli, fl, out)
	case "series":
		err = runSeries(ctx, cli, fl, out)
	case "targets":
		err = runTargets(ctx, cli, fl, out)
	case "rules":
		err = runRules(ctx, cli, fl, out)
	case "alerts":
		err = runAlerts(ctx, cli, out)
	case "metadata":
		err = runMetadata(ctx, cli, fl, out)
	case "buildinfo":
		err = runBuildInfo(ctx, cli, out)
	}
	if err != nil {
		fatal(err)
	}
	if err := out.Flush(); err != nil {
		fatal(err)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func fatal(err error) {
	var apiErr *promquery.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(os.Stderr, "promq: server error (%s): %s\n", apiErr.Type, apiErr.Msg)
	} else {
		fmt.Fprintf(os.Stderr, "promq: %v\n", err)
	}
	os.Exit(1)
}

func printWarnings(w promquery.Warnings) {
	for _, warn := range w {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warn)
	}
}

func runQuery(ctx context.Context, cli *promquery.Client, fl *flags, out *tabwriter.Writer) error {
	q := cli.Query(fl.queryExpr).Timeout(fl.timeout)
	if fl.queryTime != "" {
		ts, err := time.Parse(time.RFC3339, fl.queryTime)
		if err != nil {
			return errors.Wrap(err, "parsing --time")
		}
		q = q.At(ts)
	}
	if fl.queryStats {
		q = q.Stats()
	}

	data, warns, err := q.Do(ctx)
	if err != nil {
		return err
	}
	printWarnings(warns)
	return printData(out, data)
}

func runRange(ctx context.Context, cli *promquery.Client, fl *flags, out *tabwriter.Writer) error {
	now := time.Now()
	r := promquery.Range{Start: now.Add(-fl.rangeWindow), End: now, Step: fl.rangeStep}
	data, warns, err := cli.QueryRange(fl.rangeExpr, r).Timeout(fl.timeout).Do(ctx)
	if err != nil {
		return err
	}
	printWarnings(warns)
	return printData(out, data)
}

// printData renders any of the result variants as a table.
func printData(out *tabwriter.Writer, data *model.QueryData) error {
	switch {
	case data.Result.IsVector():
		v, _ := data.Result.Vector()
		for _, s := range v {
			fmt.Fprintf(out, "%s\t%s\t@ %s\n", s.Metric, s.Value.Value, s.Value.Timestamp)
		}
	case data.Result.IsMatrix():
		m, _ := data.Result.Matrix()
		for _, stream := range m {
			fmt.Fprintf(out, "%s\n", stream.Metric)
			for _, p := range stream.Values {
				fmt.Fprintf(out, "\t%s\t@ %s\n", p.Value, p.Timestamp)
			}
		}
	case data.Result.IsScalar():
		s, _ := data.Result.Scalar()
		fmt.Fprintf(out, "%s\t@ %s\n", s.Value, s.Timestamp)
	default:
		return errors.New("empty query result")
	}

	if data.Stats != nil {
		t := data.Stats.Timings
		fmt.Fprintf(out, "\neval\t%gs\ttotal\t%gs\tsamples\t%d\n",
			t.EvalTotalTime, t.ExecTotalTime, data.Stats.Samples.Total)
	}
	return nil
}

func runLabels(ctx context.Context, cli *promquery.Client, fl *flags, out *tabwriter.Writer) error {
	var (
		values []string
		warns  promquery.Warnings
		err    error
	)
	if fl.labelName != "" {
		values, warns, err = cli.LabelValues(ctx, fl.labelName, fl.labelSelectors, time.Time{}, time.Time{})
	} else {
		values, warns, err = cli.LabelNames(ctx, fl.labelSelectors, time.Time{}, time.Time{})
	}
	if err != nil {
		return err
	}
	printWarnings(warns)
	for _, v := range values {
		fmt.Fprintln(out, v)
	}
	return nil
}

func runSeries(ctx context.Context, cli *promquery.Client, fl *flags, out *tabwriter.Writer) error {
	series, warns, err := cli.Series(ctx, fl.seriesSelectors, time.Time{}, time.Time{})
	if err != nil {
		return err
	}
	printWarnings(warns)
	for _, s := range series {
		fmt.Fprintln(out, s)
	}
	return nil
}

func runTargets(ctx context.Context, cli *promquery.Client, fl *flags, out *tabwriter.Writer) error {
	targets, err := cli.Targets(ctx, promquery.TargetState(fl.targetState))
	if err != nil {
		return err
	}
	for _, t := range targets.Active {
		lastErr := t.LastError
		if lastErr == "" {
			lastErr = "-"
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", t.ScrapePool, t.ScrapeURL, t.Health, lastErr)
	}
	for _, t := range targets.Dropped {
		fmt.Fprintf(out, "%s\tdropped\n", t.DiscoveredLabels)
	}
	return nil
}

func runRules(ctx context.Context, cli *promquery.Client, fl *flags, out *tabwriter.Writer) error {
	kind := model.RuleKind(fl.ruleKind)
	if fl.ruleKind == "any" {
		kind = ""
	}
	groups, err := cli.Rules(ctx, kind)
	if err != nil {
		return err
	}
	for _, g := range groups {
		fmt.Fprintf(out, "%s (%s)\n", g.Name, g.File)
		for _, r := range g.Rules {
			fmt.Fprintf(out, "\t%s\t%s\t%s\n", r.Kind(), r.Name(), r.Health())
		}
	}
	return nil
}

func runAlerts(ctx context.Context, cli *promquery.Client, out *tabwriter.Writer) error {
	alerts, err := cli.Alerts(ctx)
	if err != nil {
		return err
	}
	for _, a := range alerts {
		fmt.Fprintf(out, "%s\t%s\t%s\tsince %s\n", a.State, a.Labels, a.Value, a.ActiveAt.Format(time.RFC3339))
	}
	return nil
}

func runMetadata(ctx context.Context, cli *promquery.Client, fl *flags, out *tabwriter.Writer) error {
	md, err := cli.MetricMetadata(ctx, fl.metadataMetric, fl.metadataLimit)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(md))
	for name := range md {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, m := range md[name] {
			fmt.Fprintf(out, "%s\t%s\t%s\n", name, m.Type, m.Help)
		}
	}
	return nil
}

func runBuildInfo(ctx context.Context, cli *promquery.Client, out *tabwriter.Writer) error {
	info, err := cli.BuildInformation(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "version\t%s\n", info.Version)
	fmt.Fprintf(out, "revision\t%s\n", info.Revision)
	fmt.Fprintf(out, "branch\t%s\n", info.Branch)
	fmt.Fprintf(out, "go\t%s\n", info.GoVersion)
	fmt.Fprintf(out, "date\t%s\n", info.BuildDate.Format(time.RFC3339))
	return nil
}

// runWatch reruns a range query on an interval and charts it until the
// user quits or the process is signalled.
func runWatch(cli *promquery.Client, fl *flags, logger zerolog.Logger) error {
	dash, err := render.NewDashboard(" " + fl.watchExpr + " ")
	if err != nil {
		return errors.Wrap(err, "creating dashboard")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group

	// OS signals.
	{
		sigC := make(chan os.Signal, 1)
		signal.Notify(sigC, syscall.SIGINT, syscall.SIGTERM)
		g.Add(
			func() error {
				select {
				case <-sigC:
				case <-ctx.Done():
				}
				return nil
			},
			func(error) { cancel() },
		)
	}

	// Terminal drawing loop.
	{
		g.Add(
			func() error { return dash.Run(ctx, cancel) },
			func(error) { cancel() },
		)
	}

	// Query refresh loop.
	{
		g.Add(
			func() error { return watchLoop(ctx, cli, fl, dash, logger) },
			func(error) { cancel() },
		)
	}

	return g.Run()
}

func watchLoop(ctx context.Context, cli *promquery.Client, fl *flags, dash *render.Dashboard, logger zerolog.Logger) error {
	tick := time.NewTicker(fl.watchRefresh)
	defer tick.Stop()

	for {
		now := time.Now()
		r := promquery.Range{Start: now.Add(-fl.watchWindow), End: now, Step: fl.watchStep}
		data, _, err := cli.QueryRange(fl.watchExpr, r).Timeout(fl.timeout).Do(ctx)
		switch {
		case ctx.Err() != nil:
			return nil
		case err != nil:
			logger.Error().Err(err).Msg("range query failed")
		default:
			m, ok := data.Result.Matrix()
			if !ok {
				return errors.Errorf("expression did not evaluate to a range, got %q", data.Result.Type())
			}
			if err := dash.Sync(now, m); err != nil {
				logger.Error().Err(err).Msg("drawing results failed")
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}
}
