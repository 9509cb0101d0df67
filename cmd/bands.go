package cmd

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/search5/openband/internal/cli"
)

var bandsOutput string

// bandsCmd lists the bands the authenticated user belongs to.
var bandsCmd = &cobra.Command{
	Use:   "bands",
	Short: "List your bands",
	Long: `List the bands the authenticated user belongs to.

Each band's key is what the other commands take as BAND_KEY.

Examples:
  openband bands                       # Table of your bands
  openband bands -o json               # Same, as JSON`,
	RunE: runBands,
}

func init() {
	bandsCmd.Flags().StringVarP(&bandsOutput, "output", "o", "table", "output format (table, json)")
	rootCmd.AddCommand(bandsCmd)
}

func runBands(cmd *cobra.Command, args []string) error {
	if err := cli.ValidateOutputFormat(bandsOutput); err != nil {
		return err
	}

	client, err := buildClient()
	if err != nil {
		return err
	}

	bands, err := client.Bands(cmd.Context())
	if err != nil {
		return err
	}

	if cli.OutputFormat(bandsOutput) == cli.OutputFormatJSON {
		type bandOut struct {
			Name        string `json:"name"`
			BandKey     string `json:"band_key"`
			Cover       string `json:"cover,omitempty"`
			MemberCount int    `json:"member_count"`
		}
		out := make([]bandOut, 0, len(bands))
		for _, b := range bands {
			out = append(out, bandOut{Name: b.Name, BandKey: b.Key, Cover: b.Cover, MemberCount: b.MemberCount})
		}
		return cli.PrintJSON(out)
	}

	if len(bands) == 0 {
		cli.EmptyMessage("No bands found")
		return nil
	}

	t := cli.NewTable(os.Stdout)
	t.AppendHeader(table.Row{"NAME", "BAND KEY", "MEMBERS"})
	for _, b := range bands {
		t.AppendRow(table.Row{b.Name, b.Key, strconv.Itoa(b.MemberCount)})
	}
	t.Render()
	return nil
}
