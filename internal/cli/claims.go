package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/claims"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/render"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

func (c *CLI) claimsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claims",
		Short: "List and describe the claim catalog",
	}
	cmd.AddCommand(c.claimsListCommand())
	cmd.AddCommand(c.claimsShowCommand())
	return cmd
}

func (c *CLI) claimsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the claims in proof order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.catalog()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.Out, claimsTable(cat.Ordered()))
			return nil
		},
	}
}

func claimsTable(list []*prover.Claim) string {
	rows := make([][]string, 0, len(list))
	for _, cl := range list {
		info := claims.Describe(cl)
		target := "-"
		if info.Target != "" {
			target = info.Target + " < " + info.Bound
		}
		rows = append(rows, []string{
			info.Name,
			info.Title,
			target,
			strconv.Itoa(info.ExpectedLeaves),
			strings.Join(info.Lemmas, " "),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Description", "Target", "Leaves", "Lemmas").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return StyleTitle.Padding(0, 1)
			case col == 3:
				return StyleNumber.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String()
}

func (c *CLI) claimsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show NAME",
		Short:             "Describe a claim and draw its seed",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeClaimNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.catalog()
			if err != nil {
				return err
			}
			cl, err := cat.Get(args[0])
			if err != nil {
				return err
			}
			c.showClaim(cl)
			return nil
		},
	}
}

func (c *CLI) showClaim(cl *prover.Claim) {
	info := claims.Describe(cl)
	fmt.Fprintln(c.Out, StyleTitle.Render(info.Name)+" "+StyleDim.Render(info.Title))
	fmt.Fprintln(c.Out)
	printKeyValue(c.Out, "Seed", info.Seed)
	if info.Target != "" {
		printKeyValue(c.Out, "Target", info.Target)
		printKeyValue(c.Out, "Bound", fmt.Sprintf("%s (≈ %.4f)", info.Bound, info.BoundApprox))
	}
	printKeyValue(c.Out, "Candidates", strconv.Itoa(len(info.Candidates)))
	printKeyValue(c.Out, "Leaves", strconv.Itoa(info.ExpectedLeaves))
	if len(info.Lemmas) > 0 {
		printKeyValue(c.Out, "Lemmas", strings.Join(info.Lemmas, ", "))
	}
	fmt.Fprintln(c.Out)
	fmt.Fprintln(c.Out, seedDrawing(cl))
}

// seedDrawing draws the seed path of cl with its target pair marked.
func seedDrawing(cl *prover.Claim) string {
	opts := seedOptions(cl)
	opts.Title = ""
	return render.ASCII(state.Snapshot{}, opts)
}
