package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/emrgen/doctrack"
	"github.com/emrgen/doctrack/internal/repository"
	"github.com/emrgen/doctrack/internal/stats"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd())
}

func statsCmd() *cobra.Command {
	var filter repository.Filter
	var top int

	command := &cobra.Command{
		Use:     "stats",
		Short:   "show document statistics",
		Example: "doctrack stats -c <category> -t <tag> --top 5",
		Run: func(cmd *cobra.Command, args []string) {
			summary, err := loadSummary(context.Background(), filter, top)
			if err != nil {
				color.Red("%v", err)
				return
			}

			printField("Documents", strconv.Itoa(summary.Documents))
			printDistribution("Category", summary.Categories)
			printDistribution("Status", summary.Statuses)
			printDistribution("Tag", summary.Tags)
			printTimeline(summary.Timeline)
			printCategoryStatus(summary.CategoryStatus)
		},
	}

	command.Flags().StringVarP(&filter.Category, "category", "c", "", "exact category")
	command.Flags().StringVarP(&filter.Tag, "tag", "t", "", "tag substring, case insensitive")
	command.Flags().StringVarP(&filter.Status, "status", "s", "", "exact status")
	command.Flags().IntVar(&top, "top", stats.DefaultTopTags, "number of tags to show")

	command.Flags().SortFlags = false

	return command
}

func loadSummary(ctx context.Context, filter repository.Filter, top int) (*stats.Summary, error) {
	if serverURL != "" {
		return doctrack.NewClient(serverURL).Summary(ctx, filter, top)
	}

	repo, err := openRepository()
	if err != nil {
		return nil, err
	}

	docs, err := repo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := stats.Summarize(docs, top)
	return &summary, nil
}

func printDistribution(label string, d stats.Distribution) {
	fmt.Println()
	if d.NoData {
		color.Yellow("%s: %s", label, d.Message)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{label, "Count", "Percent", "Caption"})
	for _, b := range d.Buckets {
		table.Append([]string{b.Label, strconv.Itoa(b.Count), strconv.FormatFloat(b.Percent, 'f', 1, 64), b.Caption()})
	}
	table.Render()
}

func printTimeline(tl stats.Timeline) {
	fmt.Println()
	if tl.NoData {
		color.Yellow("Timeline: %s", tl.Message)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Month", "Uploads"})
	for _, p := range tl.Points {
		table.Append([]string{p.Month, strconv.Itoa(p.Count)})
	}
	table.Render()
}

func printCategoryStatus(counts []stats.CrossCount) {
	if len(counts) == 0 {
		return
	}

	fmt.Println()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Category", "Status", "Count"})
	for _, c := range counts {
		table.Append([]string{c.Category, c.Status, strconv.Itoa(c.Count)})
	}
	table.Render()
}
