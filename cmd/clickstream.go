package cmd

import (
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/pipeline"
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/report"
	"github.com/spf13/cobra"
)

// clickstreamCmd represents the clickstream command
var clickstreamCmd = &cobra.Command{
	Use:   "clickstream <file>",
	Short: "Clickstream global search volume",
	Long: `Fetches clickstream-based global and US search volume for every keyword
in the input file. With --competition, the Google Ads endpoint is also
queried and its competition tier merged into the report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		withCompetition, _ := cmd.Flags().GetBool("competition")

		result, _, opts, err := fetchKeywords(cmd, args, pipeline.EndpointClickstream, withCompetition)
		if err != nil {
			return err
		}

		if err := writeReport(report.ClickstreamTable(result.Rows, withCompetition), nil, opts); err != nil {
			return err
		}
		printRunSummary(summaryWriter(opts), result, false)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clickstreamCmd)
	addFetchFlags(clickstreamCmd)
	clickstreamCmd.Flags().BoolP("competition", "", false, "Also fetch the Google Ads competition tier and merge it in")
}
