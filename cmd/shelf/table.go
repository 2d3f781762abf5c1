package main

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"shelf/internal/api"
	"shelf/internal/catalog"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func statusLabel(value string) string {
	if status, ok := catalog.ParseStatus(value); ok {
		return status.Label()
	}
	return value
}

func buildEntryRows(entries []api.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.ID,
			entry.Name,
			formatScore(entry.Score),
			statusLabel(entry.Status),
			entry.Link,
		})
	}
	return rows
}

func renderEntryTable(entries []api.Entry) string {
	return renderTable(
		[]string{"ID", "Name", "Score", "Status", "Link"},
		buildEntryRows(entries),
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	)
}

func buildImageRows(images []api.ImageInfo) [][]string {
	rows := make([][]string, 0, len(images))
	for _, img := range images {
		rows = append(rows, []string{
			img.Link,
			img.ContentType,
			humanize.IBytes(uint64(img.Size)),
			img.FetchedAt,
		})
	}
	return rows
}

func buildSummaryRows(summary api.Summary) [][]string {
	rows := make([][]string, 0, len(summary.StatusCounts)+1)
	for _, status := range catalog.AllStatuses() {
		rows = append(rows, []string{status.Label(), strconv.Itoa(summary.StatusCounts[string(status)])})
	}
	rows = append(rows, []string{"Total", strconv.Itoa(summary.Entries)})
	return rows
}
