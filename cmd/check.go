package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/input"
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/keywords"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a keyword list offline",
	Long: `Runs the keyword cleaning rules without calling the API and prints what
would be accepted, fixed, deduplicated or skipped. Needs no credentials.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		column, _ := cmd.Flags().GetString("column")
		maxWords, _ := cmd.Flags().GetInt("max-words")
		dedupe, _ := cmd.Flags().GetBool("dedupe")

		ds, err := input.ReadFile(args[0], column)
		if err != nil {
			return err
		}

		validated := keywords.Normalize(ds.Keywords, maxWords, dedupe)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "STATUS\tKEYWORD\tDETAIL")
		for _, a := range validated.Accepted {
			detail := ""
			if a.Modified {
				detail = fmt.Sprintf("cleaned to %q", a.Cleaned)
			}
			fmt.Fprintf(w, "ok\t%q\t%s\n", a.Original, detail)
		}
		for _, d := range validated.Duplicates {
			fmt.Fprintf(w, "duplicate\t%q\t%s\n", d.Original, d.Reason)
		}
		for _, s := range validated.Skipped {
			fmt.Fprintf(w, "skipped\t%q\t%s\n", s.Original, s.Reason)
		}
		w.Flush()

		fmt.Printf("\n%d accepted (%d modified), %d duplicates, %d skipped\n",
			len(validated.Accepted), validated.ModifiedCount(), len(validated.Duplicates), len(validated.Skipped))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addValidationFlags(checkCmd)
}
