package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"repo-sweep/internal/database"
	"repo-sweep/internal/exitcodes"
)

func main() {
	// Parse command-line flags
	dbPath := flag.String("db", "/var/lib/repo-sweep/sweeps.db", "Path to sweep audit database")
	recent := flag.Int("recent", 0, "Show N most recent audit events")
	stats := flag.Bool("stats", false, "Show sweep statistics")
	action := flag.String("action", "", "Filter by action (DELETE, RETRY, WARN, SKIP, PURGE, DRY_RUN)")
	pathPattern := flag.String("path", "", "Filter by path pattern (SQL LIKE syntax)")
	days := flag.Int("days", 30, "Number of days for statistics (default: 30)")
	prune := flag.Int("prune", 0, "Delete audit events older than N days")
	jsonOutput := flag.Bool("json", false, "Output in JSON format")
	flag.Parse()

	// Open database
	db, err := database.NewSweepDB(*dbPath)
	if err != nil {
		log.Fatalf("ERROR: Failed to open database %s: %v", *dbPath, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("ERROR: Failed to close database: %v", err)
		}
	}()

	// Handle different query modes
	switch {
	case *stats:
		showStats(db, *days, *jsonOutput)
	case *recent > 0:
		showRecent(db, *recent, *jsonOutput)
	case *action != "":
		showByAction(db, *action, *jsonOutput)
	case *pathPattern != "":
		showByPath(db, *pathPattern, *jsonOutput)
	case *prune > 0:
		pruneOld(db, *prune)
	default:
		flag.Usage()
		fmt.Println("\nExamples:")
		fmt.Println("  repo-sweep-query --recent 10             # Show 10 most recent audit events")
		fmt.Println("  repo-sweep-query --stats                 # Show sweep statistics")
		fmt.Println("  repo-sweep-query --action RETRY          # Show permission-denied escalations")
		fmt.Println("  repo-sweep-query --path '/srv/%'         # Show events under /srv")
		fmt.Println("  repo-sweep-query --prune 90              # Drop events older than 90 days")
		os.Exit(exitcodes.InvalidConfig)
	}
}

func showStats(db *database.SweepDB, days int, jsonOutput bool) {
	stats, err := db.GetSweepStats(days)
	if err != nil {
		log.Fatalf("ERROR: Failed to get statistics: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Sweep Statistics (Last %d days)\n", days)
	fmt.Printf("Period: %s to %s\n\n", stats.StartDate.Format("2006-01-02"), stats.EndDate.Format("2006-01-02"))
	fmt.Printf("Entries Deleted:  %d\n", stats.TotalDeleted)
	fmt.Printf("Retries:          %d\n", stats.TotalRetries)
	fmt.Printf("Warnings:         %d\n", stats.TotalWarnings)
	fmt.Printf("Purges:           %d\n\n", stats.TotalPurges)

	if len(stats.ByAction) > 0 {
		fmt.Println("By Action:")
		for action, count := range stats.ByAction {
			fmt.Printf("  %-15s %d\n", action, count)
		}
		fmt.Println()
	}

	if len(stats.ByKind) > 0 {
		fmt.Println("Deleted By Kind:")
		for kind, count := range stats.ByKind {
			fmt.Printf("  %-15s %d\n", kind, count)
		}
	}
}

func showRecent(db *database.SweepDB, limit int, jsonOutput bool) {
	records, err := db.GetRecentEvents(limit)
	if err != nil {
		log.Fatalf("ERROR: Failed to get recent events: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	printRecords(records)
}

func showByAction(db *database.SweepDB, action string, jsonOutput bool) {
	records, err := db.GetEventsByAction(action)
	if err != nil {
		log.Fatalf("ERROR: Failed to query by action: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Events with action: %s\n\n", action)
	printRecords(records)
}

func showByPath(db *database.SweepDB, pathPattern string, jsonOutput bool) {
	records, err := db.GetEventsByPath(pathPattern)
	if err != nil {
		log.Fatalf("ERROR: Failed to query by path: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Events matching path pattern: %s\n\n", pathPattern)
	printRecords(records)
}

func pruneOld(db *database.SweepDB, days int) {
	n, err := db.DeleteOldRecords(days)
	if err != nil {
		log.Fatalf("ERROR: Failed to prune old events: %v", err)
	}
	fmt.Printf("Pruned %d events older than %d days\n", n, days)
}

func printRecords(records []database.EventRecord) {
	if len(records) == 0 {
		fmt.Println("No records found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTimestamp\tAction\tKind\tPhase\tPath")
	_, _ = fmt.Fprintln(w, "--\t---------\t------\t----\t-----\t----")

	for _, r := range records {
		timestamp := r.Timestamp.Format("2006-01-02 15:04:05")
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, timestamp, r.Action, r.Kind, r.Phase, r.Path)
	}
	_ = w.Flush()
}
