package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"review-sentiment/domain"
	"review-sentiment/repositories"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "runs.badger", "Path to badger DB")
	limit := flag.Int("limit", 20, "Maximum number of runs to show, 0 for all")
	flag.Parse()

	opts := badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	var limitRuns *int
	if *limit > 0 {
		limitRuns = limit
	}
	reports, err := repositories.NewRunRepository(db, slog.Default(), limitRuns).List()
	if err != nil {
		log.Fatal(err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Run", "At", "Duration", "Reviews", "Vocabulary", "Max len", "Batches", "Loss", "Accuracy", "RSS"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, report := range reports {
		table.Append(toRow(report))
	}
	table.Render()
}

func toRow(report domain.RunReport) []string {
	// First 8 characters of the id are enough to tell runs apart
	displayID := report.ID.String()[:8]

	return []string{
		displayID,
		report.At.Format("2006-01-02 15:04:05"),
		report.Duration.Round(time.Millisecond).String(),
		fmt.Sprint(report.Reviews),
		fmt.Sprint(report.VocabularySize),
		fmt.Sprint(report.MaxLen),
		fmt.Sprintf("%d x %d", report.Batches, report.BatchSize),
		fmt.Sprintf("%.4f", report.FinalLoss),
		accuracy(report.Accuracy),
		fmt.Sprintf("%.1f MiB", float64(report.RSSBytes)/(1<<20)),
	}
}

func accuracy(value float64) string {
	text := fmt.Sprintf("%.2f", value)
	switch {
	case value >= 0.75:
		return color.FgGreen.Render(text)
	case value >= 0.5:
		return color.FgYellow.Render(text)
	default:
		return color.FgRed.Render(text)
	}
}
