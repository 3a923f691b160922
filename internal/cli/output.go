package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sabq-ai/app-template-recommender/internal/models"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
}

func printRecommendations(w io.Writer, recs []models.Recommendation) error {
	rows := make([][]string, 0, len(recs))
	for i, r := range recs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.Template.ID,
			string(r.Template.Kind),
			fmt.Sprintf("%.0f", r.Score),
			strings.Join(r.Reasoning, "; "),
		})
	}

	table := newTable(w)
	table.Header([]string{"#", "TEMPLATE", "KIND", "SCORE", "REASONING"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func printTemplates(w io.Writer, m *models.Manifest) error {
	rows := make([][]string, 0, len(m.Templates))
	for _, t := range m.Templates {
		tags := make([]string, len(t.BestFor))
		for i, tag := range t.BestFor {
			tags[i] = string(tag)
		}
		rows = append(rows, []string{
			t.ID,
			string(t.Kind),
			strings.Join(tags, ","),
			fmt.Sprintf("%d", t.Performance.MaxItems),
		})
	}

	table := newTable(w)
	table.Header([]string{"ID", "KIND", "BEST FOR", "MAX ITEMS"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
