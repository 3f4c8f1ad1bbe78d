package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/store"
)

func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect stored run reports",
	}
	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())
	return cmd
}

func (c *CLI) runsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:               "list [claim]",
		Short:             "List recent runs, newest first",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeClaimNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			claim := ""
			if len(args) == 1 {
				claim = args[0]
			}
			runs, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer runs.Close()

			reports, err := runs.ListByClaim(cmd.Context(), claim, limit)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				printInfo(c.Out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(c.Out, runsTable(reports))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs (0 = all)")
	return cmd
}

func runsTable(reports []*store.Report) string {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			r.ID,
			r.Claim,
			string(r.Status),
			strconv.Itoa(r.Branches),
			r.Duration.Round(time.Millisecond).String(),
			r.StartedAt.Local().Format(time.DateTime),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Claim", "Status", "Branches", "Duration", "Started").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 2 && row < len(reports) {
				return statusStyle(reports[row].Status).Padding(0, 1)
			}
			return cell
		}).
		String()
}

func statusStyle(s store.Status) lipgloss.Style {
	switch s {
	case store.StatusProved, store.StatusCached:
		return StyleSuccess
	case store.StatusIncomplete:
		return StyleWarning
	case store.StatusFailed:
		return StyleError
	}
	return StyleDim
}

func (c *CLI) runsShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one run report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer runs.Close()

			r, err := runs.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(c.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			printKeyValue(c.Out, "ID", r.ID)
			printKeyValue(c.Out, "Claim", r.Claim)
			printKeyValue(c.Out, "Status", statusStyle(r.Status).Render(string(r.Status)))
			printKeyValue(c.Out, "Started", r.StartedAt.Local().Format(time.DateTime))
			printKeyValue(c.Out, "Duration", r.Duration.Round(time.Millisecond).String())
			printKeyValue(c.Out, "Branches", fmt.Sprintf("%d / %d", r.Branches, r.ExpectedLeaves))
			printKeyValue(c.Out, "Shortcuts", strconv.Itoa(r.Shortcuts))
			printKeyValue(c.Out, "Patterns", strconv.Itoa(r.Patterns))
			printKeyValue(c.Out, "Deductions", strconv.Itoa(r.Deductions))
			printKeyValue(c.Out, "Contradictions", strconv.Itoa(r.Contradictions))
			if r.Error != "" {
				printKeyValue(c.Out, "Error", StyleError.Render(r.Error))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
