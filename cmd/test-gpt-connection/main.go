package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/infrastructure/external/openai"
)

func main() {
	// Parse command line flags
	apiKey := flag.String("key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
	model := flag.String("model", "gpt-4o-mini", "OpenAI model to use")
	promptsFile := flag.String("prompts", "configs/prompts.yaml", "Path to prompts.yaml")
	timeout := flag.Duration("timeout", 60*time.Second, "API call timeout")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	// Initialize logger
	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Get API key from flag or environment
	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
	}

	if *apiKey == "" {
		fmt.Fprintf(os.Stderr, "ERROR: OPENAI_API_KEY not set and no --key flag provided\n")
		fmt.Fprintf(os.Stderr, "Usage: test-gpt-connection --key sk-... [--prompts <path>] [--timeout 60s]\n")
		os.Exit(1)
	}

	fmt.Println("=== OpenAI Connection Test ===")

	// Diagnostic info
	fmt.Println("Configuration:")
	fmt.Printf("  Model: %s\n", *model)
	fmt.Printf("  Prompts file: %s\n", *promptsFile)
	fmt.Printf("  API key length: %d chars\n", len(*apiKey))
	if len(*apiKey) >= 4 {
		fmt.Printf("  API key prefix: %s...\n", (*apiKey)[:4])
	}
	fmt.Printf("  Timeout: %v\n", *timeout)
	fmt.Println()

	// Load prompts
	fmt.Println("Loading prompts...")
	prompts, err := openai.LoadPrompts(*promptsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to load prompts: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Prompts loaded")

	// Create report generator using infrastructure package
	reporter := openai.NewReporter(*apiKey, *model, prompts, logger)
	fmt.Println("✓ Reporter initialized")
	fmt.Println()

	// Fixed sample day
	input := port.ReportInput{
		Date:       time.Now().Format("2006-01-02"),
		Activities: "Pengecekan rutin APAR, kunjungan vendor AC, perbaikan lampu lobi.",
		AttendanceSummary: "Present: 12\n" +
			"Clocked Out: 3\n" +
			"On Leave: 1",
		WasteSummary: "Oli bekas: 20.00 liter dari Workshop (Disimpan)",
	}

	fmt.Println("Test Report Input:")
	fmt.Printf("  Date: %s\n", input.Date)
	fmt.Printf("  Activities: %s\n", input.Activities)
	fmt.Println()

	// Make API call with timeout
	fmt.Println("Sending request to OpenAI API...")
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	startTime := time.Now()
	report, err := reporter.GenerateDailyReport(ctx, input)
	duration := time.Since(startTime)

	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ ERROR: OpenAI API call failed\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		fmt.Fprintf(os.Stderr, "Possible causes:\n")
		fmt.Fprintf(os.Stderr, "  1. Invalid or expired OPENAI_API_KEY\n")
		fmt.Fprintf(os.Stderr, "  2. Network connectivity issue\n")
		fmt.Fprintf(os.Stderr, "  3. API quota exceeded\n")
		fmt.Fprintf(os.Stderr, "  4. API service unavailable\n")
		fmt.Fprintf(os.Stderr, "  5. Wrong API key format (should start with 'sk-')\n")
		os.Exit(1)
	}

	fmt.Println("✓ Received response!")
	fmt.Printf("API Response Time: %v\n", duration)
	fmt.Println()

	fmt.Println("=== Generated Daily Report ===")
	fmt.Println(report)

	fmt.Println("\n✅ OpenAI Connection Test PASSED!")
}

// Ensure reporter implements port.ReportGenerator (compile-time check)
var _ port.ReportGenerator = (*openai.Reporter)(nil)
