package main

import (
	"os"
	"time"

	"github.com/alecthomas/kingpin"
)

const defaultServer = "http://127.0.0.1:9090"

// flags are the CLI flags of all promq commands.
type flags struct {
	server   string
	timeout  time.Duration
	logLevel string
	debug    bool

	queryExpr  string
	queryTime  string
	queryStats bool

	rangeExpr   string
	rangeWindow time.Duration
	rangeStep   time.Duration

	labelName      string
	labelSelectors []string

	seriesSelectors []string

	targetState string
	ruleKind    string

	metadataMetric string
	metadataLimit  int

	watchExpr    string
	watchWindow  time.Duration
	watchStep    time.Duration
	watchRefresh time.Duration

	command string
}

func newFlags() *flags {
	f := &flags{}
	app := kingpin.New("promq", "Query and inspect a Prometheus server from the command line.")
	app.Version(Version)
	app.DefaultEnvars()

	app.Flag("server", "Base URL of the Prometheus server.").Default(defaultServer).StringVar(&f.server)
	app.Flag("timeout", "Server side evaluation timeout for expression queries.").Default("30s").DurationVar(&f.timeout)
	app.Flag("log-level", "Log level (debug, info, warn, error).").Default("info").EnumVar(&f.logLevel, "debug", "info", "warn", "error")
	app.Flag("debug", "Shorthand for --log-level=debug.").BoolVar(&f.debug)

	query := app.Command("query", "Run an instant expression query.")
	query.Arg("expr", "PromQL expression.").Required().StringVar(&f.queryExpr)
	query.Flag("time", "Evaluation time in RFC3339, defaults to now.").StringVar(&f.queryTime)
	query.Flag("stats", "Include execution statistics.").BoolVar(&f.queryStats)

	rng := app.Command("range", "Run a range expression query ending now.")
	rng.Arg("expr", "PromQL expression.").Required().StringVar(&f.rangeExpr)
	rng.Flag("window", "How far back the range reaches.").Default("1h").DurationVar(&f.rangeWindow)
	rng.Flag("step", "Resolution of the returned streams.").Default("1m").DurationVar(&f.rangeStep)

	labels := app.Command("labels", "List label names, or the values of one label.")
	labels.Arg("name", "Label name to list the values of.").StringVar(&f.labelName)
	labels.Flag("match", "Series selector restricting the search, repeatable.").StringsVar(&f.labelSelectors)

	series := app.Command("series", "Find series by selectors.")
	series.Arg("selector", "Series selectors, e.g. 'up{job=\"node\"}'.").Required().StringsVar(&f.seriesSelectors)

	targets := app.Command("targets", "Show the state of scrape target discovery.")
	targets.Flag("state", "Filter by target state.").Default("any").EnumVar(&f.targetState, "active", "dropped", "any")

	rules := app.Command("rules", "Show the currently loaded rule groups.")
	rules.Flag("kind", "Filter by rule kind.").Default("any").EnumVar(&f.ruleKind, "alerting", "recording", "any")

	app.Command("alerts", "List the currently active alerts.")

	metadata := app.Command("metadata", "Show metric metadata.")
	metadata.Flag("metric", "Restrict to one metric name.").StringVar(&f.metadataMetric)
	metadata.Flag("limit", "Maximum number of metrics to return.").IntVar(&f.metadataLimit)

	app.Command("buildinfo", "Show the server build information.")

	watch := app.Command("watch", "Continuously run a range query and chart it on the terminal.")
	watch.Arg("expr", "PromQL expression.").Required().StringVar(&f.watchExpr)
	watch.Flag("window", "How far back the chart reaches.").Default("15m").DurationVar(&f.watchWindow)
	watch.Flag("step", "Resolution of the charted streams.").Default("15s").DurationVar(&f.watchStep)
	watch.Flag("refresh", "How often the query is rerun.").Default("10s").DurationVar(&f.watchRefresh)

	f.command = kingpin.MustParse(app.Parse(os.Args[1:]))
	if f.debug {
		f.logLevel = "debug"
	}
	return f
}
