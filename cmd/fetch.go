package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/internal/utils"
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/dataforseo"
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/input"
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/keywords"
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/pipeline"
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultCSVName  = "seo_keywords_results.csv"
	defaultXLSXName = "seo_keywords_results.xlsx"
)

// fetchOptions collects the flag values shared by the commands that hit the API.
type fetchOptions struct {
	column       string
	batchSize    int
	maxWords     int
	dedupe       bool
	locationCode int
	languageCode string
	delay        time.Duration
	apiURL       string

	out       string
	xlsxPath  string
	delimiter rune
}

// addValidationFlags registers the flags the normalizer needs. The offline
// check command uses these without the API flags.
func addValidationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("column", "c", "", "Keyword column name, or #N for a 1-based index (default: auto-detect)")
	cmd.Flags().IntP("max-words", "", keywords.DefaultMaxWords, "Skip keywords longer than this many words")
	cmd.Flags().BoolP("dedupe", "", true, "Drop case-insensitive duplicates after cleaning")
}

func addFetchFlags(cmd *cobra.Command) {
	addValidationFlags(cmd)
	cmd.Flags().IntP("batch-size", "b", dataforseo.DefaultBatchSize, fmt.Sprintf("Keywords per API request (max %d)", dataforseo.MaxKeywordsPerRequest))
	cmd.Flags().IntP("location-code", "", dataforseo.DefaultLocationCode, "DataForSEO location code")
	cmd.Flags().StringP("language-code", "", dataforseo.DefaultLanguageCode, "DataForSEO language code")
	cmd.Flags().DurationP("delay", "", time.Second, "Pause between consecutive API batches")
	cmd.Flags().StringP("api-url", "", "", "Override the DataForSEO API base URL")
}

func parseFetchFlags(cmd *cobra.Command) fetchOptions {
	var opts fetchOptions
	opts.column, _ = cmd.Flags().GetString("column")
	opts.batchSize, _ = cmd.Flags().GetInt("batch-size")
	opts.maxWords, _ = cmd.Flags().GetInt("max-words")
	opts.dedupe, _ = cmd.Flags().GetBool("dedupe")
	opts.locationCode, _ = cmd.Flags().GetInt("location-code")
	opts.languageCode, _ = cmd.Flags().GetString("language-code")
	opts.delay, _ = cmd.Flags().GetDuration("delay")
	opts.apiURL, _ = cmd.Flags().GetString("api-url")

	opts.out, _ = rootCmd.PersistentFlags().GetString("out")
	opts.xlsxPath, _ = rootCmd.PersistentFlags().GetString("xlsx")
	delimiter, _ := rootCmd.PersistentFlags().GetString("delimiter")
	opts.delimiter = ','
	if delimiter != "" {
		opts.delimiter = []rune(delimiter)[0]
	}
	return opts
}

// newAPIClient builds the DataForSEO client from the configured credentials.
func newAPIClient(opts fetchOptions) (*dataforseo.Client, error) {
	login := viper.GetString("dataforseo.login")
	password := viper.GetString("dataforseo.password")
	if login == "" || password == "" {
		return nil, errors.New("missing DataForSEO credentials: set dataforseo.login and dataforseo.password in ~/.kwresearch.yaml, or export DATAFORSEO_LOGIN and DATAFORSEO_PASSWORD")
	}

	client := dataforseo.NewClient(login, password)
	if opts.apiURL != "" {
		client.SetBaseURL(opts.apiURL)
	}
	return client, nil
}

// fetchKeywords runs the shared half of every research command: read the
// input file, validate and batch the keywords, query the API, join the
// auxiliary columns back on.
func fetchKeywords(cmd *cobra.Command, args []string, endpoint pipeline.Endpoint, withCompetition bool) (*pipeline.Result, *input.Dataset, fetchOptions, error) {
	opts := parseFetchFlags(cmd)

	ds, err := input.ReadFile(args[0], opts.column)
	if err != nil {
		return nil, nil, opts, err
	}

	client, err := newAPIClient(opts)
	if err != nil {
		return nil, nil, opts, err
	}

	result, err := pipeline.Run(cmd.Context(), pipeline.Config{
		Endpoint:        endpoint,
		Fetcher:         client,
		BatchSize:       opts.batchSize,
		MaxWords:        opts.maxWords,
		Dedupe:          opts.dedupe,
		LocationCode:    opts.locationCode,
		LanguageCode:    opts.languageCode,
		BatchDelay:      opts.delay,
		WithCompetition: withCompetition,
		Log:             utils.Log,
	}, ds.Keywords)
	if err != nil {
		return nil, nil, opts, err
	}

	report.JoinAux(result.Rows, ds)
	return result, ds, opts, nil
}

// writeReport writes the CSV (stdout when --out is -) and, when requested,
// the Excel workbook.
func writeReport(table report.Table, pages []report.PageStat, opts fetchOptions) error {
	if opts.out == "-" {
		if err := report.WriteCSV(os.Stdout, table, opts.delimiter); err != nil {
			return err
		}
	} else {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.out, err)
		}
		if err := report.WriteCSV(f, table, opts.delimiter); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		utils.Log.Info("Wrote ", opts.out)
	}

	if opts.xlsxPath != "" {
		if err := report.WriteXLSX(opts.xlsxPath, table, pages); err != nil {
			return err
		}
		utils.Log.Info("Wrote ", opts.xlsxPath)
	}
	return nil
}

// summaryWriter keeps the stats table off stdout when the CSV goes there.
func summaryWriter(opts fetchOptions) io.Writer {
	if opts.out == "-" {
		return os.Stderr
	}
	return os.Stdout
}

func printRunSummary(w io.Writer, result *pipeline.Result, withCPC bool) {
	v := result.Report
	submitted := len(v.Accepted) + len(v.Duplicates) + len(v.Skipped)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "SUBMITTED\tACCEPTED\tMODIFIED\tDUPLICATES\tSKIPPED\t")
	fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t\n", submitted, len(v.Accepted), v.ModifiedCount(), len(v.Duplicates), len(v.Skipped))
	tw.Flush()

	stats := report.ComputeStats(result.Rows)
	tw = tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.AlignRight)
	if withCPC {
		fmt.Fprintln(tw, "ROWS\tTOTAL VOLUME\tAVG VOLUME\tAVG CPC\t")
		fmt.Fprintf(tw, "%d\t%d\t%.0f\t%.2f\t\n", stats.Keywords, stats.TotalVolume, stats.AvgVolume, stats.AvgCPC)
	} else {
		fmt.Fprintln(tw, "ROWS\tTOTAL VOLUME\tAVG VOLUME\t")
		fmt.Fprintf(tw, "%d\t%d\t%.0f\t\n", stats.Keywords, stats.TotalVolume, stats.AvgVolume)
	}
	tw.Flush()

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "\n%d batch warnings (see log above)\n", len(result.Warnings))
	}
}
