package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AnnaVal-na/finsight/internal/app"
	"github.com/AnnaVal-na/finsight/internal/common"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "home":
		runHome(os.Args[2:])
	case "cashback":
		runCashback(os.Args[2:])
	case "report":
		runReport(os.Args[2:])
	case "version":
		fmt.Println(common.GetFullVersion())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Finsight — bank statement analyzer")
	fmt.Println("\nUsage:")
	fmt.Println("  finsight <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  home \"YYYY-MM-DD HH:MM:SS\"        Home dashboard for a timestamp")
	fmt.Println("  cashback <year> <month>             Cashback totals per category for a month")
	fmt.Println("  report <category> [--date DATE]     Spending by month, trailing 3 months")
	fmt.Println("  version                             Print version info")
	fmt.Println("  help                                Show this help message")
	fmt.Println("\nConfig resolves from -config, FINSIGHT_CONFIG, then config/finsight.toml.")
}

// newApp initializes the application or exits with a printed message.
func newApp(configPath string) *app.App {
	a, err := app.NewApp(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return a
}

func runHome(args []string) {
	fs := flag.NewFlagSet("home", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	// The timestamp contains a space, so it may arrive as two arguments
	timestamp := strings.Join(fs.Args(), " ")
	if timestamp == "" {
		fmt.Fprintln(os.Stderr, "Usage: finsight home \"YYYY-MM-DD HH:MM:SS\"")
		os.Exit(1)
	}

	a := newApp(*configPath)
	page := a.Home.Build(context.Background(), timestamp)
	printJSON(page)
}

func runCashback(args []string) {
	fs := flag.NewFlagSet("cashback", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: finsight cashback <year> <month>")
		os.Exit(1)
	}

	year, err := strconv.Atoi(rest[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid year %q\n", rest[0])
		os.Exit(1)
	}
	month, err := strconv.Atoi(rest[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid month %q\n", rest[1])
		os.Exit(1)
	}

	a := newApp(*configPath)

	records, err := a.Source.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cashback analysis failed: %v\n", err)
		os.Exit(1)
	}

	summary := a.Cashback.Analyze(records, year, month)
	printJSON(summary)
}

func runReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	var date string
	fs.StringVar(&date, "date", "", "Reference date (YYYY-MM-DD), defaults to today")
	fs.StringVar(&date, "d", "", "Reference date (shorthand)")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: finsight report <category> [--date YYYY-MM-DD]")
		os.Exit(1)
	}
	category := rest[0]

	// Allow flags after the category as well
	if len(rest) > 1 {
		fs.Parse(rest[1:])
	}

	a := newApp(*configPath)

	ctx := context.Background()
	records, err := a.Source.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report generation failed: %v\n", err)
		os.Exit(1)
	}

	report, err := a.Spending.Report(ctx, records, category, date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report generation failed: %v\n", err)
		os.Exit(1)
	}

	printJSON(report)
}

// printJSON writes indented JSON to stdout without HTML escaping so
// non-ASCII text prints verbatim.
func printJSON(v interface{}) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(buf.Bytes())
}
