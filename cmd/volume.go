package cmd

import (
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/pipeline"
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/report"
	"github.com/spf13/cobra"
)

// volumeCmd represents the volume command
var volumeCmd = &cobra.Command{
	Use:   "volume <file>",
	Short: "Google Ads search volume metrics",
	Long: `Fetches Google Ads search volume, competition, bid and CPC metrics for
every keyword in the input file (csv, tsv, txt or xlsx; use - for stdin).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, opts, err := fetchKeywords(cmd, args, pipeline.EndpointSearchVolume, false)
		if err != nil {
			return err
		}

		if err := writeReport(report.SearchVolumeTable(result.Rows), nil, opts); err != nil {
			return err
		}
		printRunSummary(summaryWriter(opts), result, true)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(volumeCmd)
	addFetchFlags(volumeCmd)
}
