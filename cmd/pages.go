package cmd

import (
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/pipeline"
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/report"
	"github.com/spf13/cobra"
)

// pagesCmd represents the pages command
var pagesCmd = &cobra.Command{
	Use:   "pages <file>",
	Short: "Join volume and difficulty onto a page dataset",
	Long: `Fetches Google Ads metrics for the keyword column of an analytics export
(e.g. a Search Console dump with page, query, clicks, impressions and
position columns) and joins search volume and difficulty back onto it.
The Excel export gains a per-page summary sheet.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, ds, opts, err := fetchKeywords(cmd, args, pipeline.EndpointSearchVolume, false)
		if err != nil {
			return err
		}

		table := report.PagesTable(result.Rows, ds.AuxColumns)
		pages := report.SummarizePages(result.Rows, ds.AuxColumns)
		if err := writeReport(table, pages, opts); err != nil {
			return err
		}
		printRunSummary(summaryWriter(opts), result, true)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
	addFetchFlags(pagesCmd)
}
