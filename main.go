package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/app"
	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/deployment"
	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/pagerduty"
	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/processing"
	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/sheets"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	mock := flag.Bool("mock", false, "Use synthetic data instead of real API calls")
	month := flag.String("month", "Jan", "Month column to update (Jan, Feb, etc.)")
	year := flag.Int("year", time.Now().Year(), "Year to get data for")
	force := flag.Bool("force", false, "Overwrite cells that already have a value")
	delay := flag.Duration("delay", 2500*time.Millisecond, "Delay between API requests (e.g., 2.5s)")
	startRow := flag.Int("start-row", 0, "Start processing from this row number (1-based, inclusive)")
	endRow := flag.Int("end-row", 0, "Stop processing at this row number (1-based, inclusive)")
	noVerifySSL := flag.Bool("no-verify-ssl", false, "Disable SSL certificate verification (testing only)")
	deployURL := flag.String("deploy", "", "Deploy the binary to user@host:path and exit")
	flag.Parse()

	if *deployURL != "" {
		deployBinary(*deployURL)
		return
	}

	log.Info().
		Str("month", *month).
		Int("year", *year).
		Bool("mock", *mock).
		Bool("force", *force).
		Dur("delay", *delay).
		Msg("Starting PagerDuty MTTA analysis")

	if *noVerifySSL {
		log.Warn().Msg("SSL certificate verification is disabled. This is insecure and should only be used for testing.")
	}

	// Load configuration
	config, err := app.LoadConfig(*mock)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	config.Month = *month
	config.Year = *year
	config.Force = *force
	config.Delay = *delay
	config.StartRow = *startRow
	config.EndRow = *endRow
	config.VerifySSL = !*noVerifySSL

	ctx := context.Background()

	// Initialize clients
	var analyticsClient *pagerduty.Client
	if config.Mock {
		log.Info().Msg("Running in mock mode - no actual API calls will be made")
		analyticsClient = pagerduty.NewMockClient(time.Now().UnixNano())
	} else {
		analyticsClient = pagerduty.NewClient(config.APIToken, config.VerifySSL)
	}

	sheetsClient, err := sheets.NewClient(ctx, config.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets client")
	}

	policySheet := sheets.NewPolicySheet(sheetsClient, config.SpreadsheetID, config.SheetName)
	processor := processing.NewReportProcessor(analyticsClient, policySheet, config)

	summary, err := processor.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("MTTA update run aborted")
	}

	for _, outcome := range summary.Outcomes {
		event := log.Info().
			Int("row", outcome.Row).
			Str("policy", outcome.Name).
			Str("status", outcome.Status.String())
		if outcome.Status == app.RowUpdated {
			event = event.Float64("minutes", outcome.Minutes)
		}
		if outcome.Reason != "" {
			event = event.Str("reason", outcome.Reason)
		}
		event.Msg("Row outcome")
	}

	// Partial failure is visible to cron/CI through the exit code; the
	// whole batch still ran and successful updates are persisted.
	if summary.Failed > 0 {
		log.Error().
			Int("failed", summary.Failed).
			Msg("Run completed with row failures")
		os.Exit(1)
	}
}

func deployBinary(deployURL string) {
	binaryPath, err := os.Executable()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to locate binary to deploy")
	}

	deployer := deployment.NewSSHDeployer(deployURL)
	if err := deployer.DeployBinary(binaryPath); err != nil {
		log.Fatal().Err(err).Str("target", deployURL).Msg("Deployment failed")
	}

	log.Info().Str("target", deployURL).Msg("Deployment complete")
}
