package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/erazemk/assetdesk/internal/model"
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "5", Dark: "5"})
	styleHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleNumber = styleCell.Align(lipgloss.Right)
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "8"})
)

func newReportCmd(a *app) *cobra.Command {
	var assetType string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print instance counts per asset family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if assetType != "" && !model.ValidAssetType(assetType) {
				return fmt.Errorf("unknown asset type %q", assetType)
			}

			d, database, err := a.openDesk(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			summaries, err := d.FamilySummaries(cmd.Context(), assetType)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderReport(summaries))
			return nil
		},
	}
	cmd.Flags().StringVarP(&assetType, "type", "t", "", "only this asset type (Hardware or License)")
	return cmd
}

// renderReport lays the summaries out as a bordered table with a totals row.
func renderReport(summaries []model.FamilySummary) string {
	if len(summaries) == 0 {
		return styleTitle.Render("Asset families") + "\n\nNo families."
	}

	var total, assigned, available int
	rows := make([][]string, 0, len(summaries)+1)
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Name,
			s.AssetType,
			s.ProductCode,
			s.AssignmentModel,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Assigned),
			strconv.Itoa(s.Available),
		})
		total += s.Total
		assigned += s.Assigned
		available += s.Available
	}
	rows = append(rows, []string{"Total", "", "", "", strconv.Itoa(total), strconv.Itoa(assigned), strconv.Itoa(available)})

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Family", "Type", "Code", "Model", "Total", "Assigned", "Available").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case row == len(rows)-1:
				return styleNumber.Bold(true)
			case col >= 4:
				return styleNumber
			default:
				return styleCell
			}
		})

	return styleTitle.Render("Asset families") + "\n\n" + t.String()
}
