// Package render draws live query results on the terminal. It is the
// rendering half of the promq watch command: a line chart for the
// sample streams plus a header and a legend.
package render

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/mum4k/termdash"
	"github.com/mum4k/termdash/cell"
	"github.com/mum4k/termdash/container"
	"github.com/mum4k/termdash/keyboard"
	"github.com/mum4k/termdash/linestyle"
	"github.com/mum4k/termdash/terminal/termbox"
	"github.com/mum4k/termdash/terminal/terminalapi"
	"github.com/mum4k/termdash/widgets/linechart"
	"github.com/mum4k/termdash/widgets/text"
	"github.com/pkg/errors"

	"github.com/slok/promquery/model"
)

// maxSeries caps how many streams are drawn; more would be illegible
// on a terminal anyway.
const maxSeries = 8

// lineChart is the subset of the line chart widget Sync draws on.
type lineChart interface {
	Series(label string, values []float64, opts ...linechart.SeriesOption) error
}

// textWidget is the subset of the text widget Sync writes to.
type textWidget interface {
	Write(text string, opts ...text.WriteOption) error
	Reset()
}

// Dashboard is a terminal dashboard fed from range query results.
type Dashboard struct {
	term   *termbox.Terminal
	cont   *container.Container
	header textWidget
	chart  lineChart
	legend textWidget

	mu sync.Mutex
	// prevSeries is how many series the last Sync drew, so a smaller
	// result can blank the leftovers.
	prevSeries int
}

// NewDashboard creates the terminal and lays out the widgets. Close
// happens when Run returns.
func NewDashboard(title string) (*Dashboard, error) {
	term, err := termbox.New(termbox.ColorMode(terminalapi.ColorMode256))
	if err != nil {
		return nil, errors.Wrap(err, "creating terminal")
	}

	header, err := text.New()
	if err != nil {
		return nil, errors.Wrap(err, "creating header widget")
	}
	chart, err := linechart.New(
		linechart.AxesCellOpts(cell.FgColor(cell.ColorNumber(240))),
		linechart.YLabelCellOpts(cell.FgColor(cell.ColorNumber(250))),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating line chart")
	}
	legend, err := text.New(text.WrapAtWords())
	if err != nil {
		return nil, errors.Wrap(err, "creating legend widget")
	}

	cont, err := container.New(term,
		container.Border(linestyle.Light),
		container.BorderTitle(title),
		container.SplitHorizontal(
			container.Top(container.PlaceWidget(header)),
			container.Bottom(
				container.SplitHorizontal(
					container.Top(container.PlaceWidget(chart)),
					container.Bottom(container.PlaceWidget(legend)),
					container.SplitPercent(80),
				),
			),
			container.SplitPercent(10),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating layout")
	}

	return &Dashboard{
		term:   term,
		cont:   cont,
		header: header,
		chart:  chart,
		legend: legend,
	}, nil
}

// Run draws the dashboard until ctx is done. Pressing q, Esc or ctrl-c
// calls cancel. Blocks; run it from its own goroutine or run actor.
func (d *Dashboard) Run(ctx context.Context, cancel context.CancelFunc) error {
	defer d.term.Close()

	quitter := func(k *terminalapi.Keyboard) {
		switch k.Key {
		case 'q', 'Q', keyboard.KeyEsc, keyboard.KeyCtrlC:
			cancel()
		}
	}
	return termdash.Run(ctx, d.term, d.cont,
		termdash.KeyboardSubscriber(quitter),
		termdash.RedrawInterval(250*time.Millisecond),
	)
}

// Sync replaces the chart contents with the given range query result.
// Streams beyond the series cap are dropped.
func (d *Dashboard) Sync(at time.Time, m model.Matrix) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.header.Reset()
	if err := d.header.Write(fmt.Sprintf(" %d series, refreshed %s  (q to quit)", len(m), at.Format("15:04:05"))); err != nil {
		return errors.Wrap(err, "writing header")
	}

	d.legend.Reset()
	drawn := len(m)
	if drawn > maxSeries {
		drawn = maxSeries
	}
	for i, stream := range m[:drawn] {
		color := seriesColor(i)

		values := make([]float64, 0, len(stream.Values))
		for _, p := range stream.Values {
			f := float64(p.Value)
			// The chart cannot plot non-finite points.
			if math.IsNaN(f) || math.IsInf(f, 0) {
				continue
			}
			values = append(values, f)
		}

		err := d.chart.Series(seriesName(i), values,
			linechart.SeriesCellOpts(cell.FgColor(color)),
			linechart.SeriesXLabels(xLabels(stream.Values)),
		)
		if err != nil {
			return errors.Wrapf(err, "drawing series %d", i)
		}

		if err := d.legend.Write(fmt.Sprintf("■ %s\n", stream.Metric), text.WriteCellOpts(cell.FgColor(color))); err != nil {
			return errors.Wrap(err, "writing legend")
		}
	}

	// Blank the series the previous refresh drew beyond this one.
	for i := drawn; i < d.prevSeries; i++ {
		if err := d.chart.Series(seriesName(i), nil); err != nil {
			return errors.Wrapf(err, "clearing series %d", i)
		}
	}
	d.prevSeries = drawn
	return nil
}

func seriesName(i int) string {
	return fmt.Sprintf("series-%d", i)
}

// xLabels labels the first and last sample of a stream with their
// wall-clock time.
func xLabels(values []model.SamplePair) map[int]string {
	labels := map[int]string{}
	if len(values) > 0 {
		labels[0] = values[0].Timestamp.Time().Format("15:04:05")
	}
	if len(values) > 1 {
		labels[len(values)-1] = values[len(values)-1].Timestamp.Time().Format("15:04:05")
	}
	return labels
}
