package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	dto "github.com/prometheus/client_model/go"
)

// NetStats prints the request counters collected by the HTTP caller.
func (a *App) NetStats(ctx context.Context) error {
	if a.metrics == nil {
		fmt.Fprintln(a.out, "Metrics are disabled")
		return nil
	}
	families, err := a.metrics.Gather()
	if err != nil {
		a.printError("Failed to gather metrics: " + err.Error())
		return err
	}

	rows := counterRows(families)
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No requests yet")
		return nil
	}
	return a.renderTable(append([][]string{{"Metric", "Labels", "Value"}}, rows...))
}

func counterRows(families []*dto.MetricFamily) [][]string {
	var rows [][]string
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, m := range mf.GetMetric() {
			rows = append(rows, []string{
				mf.GetName(),
				labelString(m.GetLabel()),
				strconv.FormatFloat(m.GetCounter().GetValue(), 'f', -1, 64),
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i][0] != rows[j][0] {
			return rows[i][0] < rows[j][0]
		}
		return rows[i][1] < rows[j][1]
	})
	return rows
}

func labelString(labels []*dto.LabelPair) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, l.GetName()+"="+l.GetValue())
	}
	return strings.Join(parts, ",")
}
