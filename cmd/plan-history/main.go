package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/subvista/subvista-backend/internal/billing"
	"github.com/subvista/subvista-backend/internal/insights"
	"github.com/subvista/subvista-backend/internal/planhistory"
	"github.com/subvista/subvista-backend/pkg/config"
	"github.com/subvista/subvista-backend/pkg/db"
	"github.com/subvista/subvista-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "plan-history"})

	_ = godotenv.Load()

	customer := flag.String("customer", "", "customer reference: cus_... id or email")
	asJSON := flag.Bool("json", false, "emit raw JSON instead of a formatted report")
	withAnalytics := flag.Bool("analytics", false, "include derived analytics in the report")
	flag.Parse()

	if *customer == "" {
		fmt.Fprintln(os.Stderr, "missing -customer")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "plan-history",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	repo := billing.NewRepository(dbClient.DB())

	historyService, err := planhistory.NewService(planhistory.ServiceParams{Repo: repo, Logger: logg})
	if err != nil {
		logg.Error(ctx, "failed to create plan history service", err)
		os.Exit(1)
	}

	history, err := historyService.GetPlanHistory(ctx, *customer)
	if err != nil {
		logg.Error(ctx, "failed to build plan history", err)
		os.Exit(1)
	}

	var analytics *insights.Analytics
	if *withAnalytics {
		insightsService, svcErr := insights.NewService(insights.ServiceParams{Repo: repo, Logger: logg})
		if svcErr != nil {
			logg.Error(ctx, "failed to create insights service", svcErr)
			os.Exit(1)
		}
		analytics, err = insightsService.GetAnalytics(ctx, *customer)
		if err != nil {
			logg.Error(ctx, "failed to derive analytics", err)
			os.Exit(1)
		}
	}

	if *asJSON {
		payload := map[string]any{"plan_history": history}
		if analytics != nil {
			payload["analytics"] = analytics
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(payload); err != nil {
			logg.Error(ctx, "failed to encode report", err)
			os.Exit(1)
		}
		return
	}

	printReport(history, analytics)
}

func printReport(history *planhistory.PlanHistory, analytics *insights.Analytics) {
	if !history.HasBillingAccount {
		fmt.Println("no billing account found for this customer")
		return
	}

	if history.Customer != nil {
		fmt.Printf("Customer: %s", history.Customer.StripeID)
		if history.Customer.Email != "" {
			fmt.Printf(" <%s>", history.Customer.Email)
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Println("Current plans:")
	if len(history.Summary.CurrentPlans) == 0 {
		fmt.Println("  (none)")
	}
	for _, plan := range history.Summary.CurrentPlans {
		fmt.Printf("  %s  %s/%s  [%s]\n", plan.ProductName, plan.Price, plan.Frequency, plan.Status)
	}

	fmt.Println()
	fmt.Println("Plan change timeline:")
	if len(history.Summary.PlanChangeTimeline) == 0 {
		fmt.Println("  (no plan changes)")
	}
	for _, event := range history.Summary.PlanChangeTimeline {
		fmt.Printf("  %s  %-12s  %s %s/%s\n",
			event.Timestamp.Format("2006-01-02"), event.Event, event.PlanName, event.Price, event.Frequency)
	}

	fmt.Println()
	fmt.Println("Prorations:")
	if len(history.Summary.ProrationHistory) == 0 {
		fmt.Println("  (none)")
	}
	for _, proration := range history.Summary.ProrationHistory {
		fmt.Printf("  %s  %s  %s\n", proration.Timestamp.Format("2006-01-02"), proration.Amount, proration.Description)
	}

	fmt.Println()
	fmt.Printf("Total paid: %s across %d invoices, %d plan changes\n",
		history.Summary.TotalAmountPaid, history.Summary.TotalInvoices, history.Summary.TotalPlanChanges)

	if analytics == nil {
		return
	}

	fmt.Println()
	fmt.Println("Analytics:")
	fmt.Printf("  Subscriber for %d days, average monthly cost %s, lifetime value %s\n",
		analytics.UsageMetrics.TotalSubscriptionDays,
		analytics.UsageMetrics.AverageMonthlyCost,
		analytics.UsageMetrics.TotalLifetimeValue)
	for _, entry := range analytics.MonthlySpend {
		fmt.Printf("  %s  %s\n", entry.Month, entry.Amount)
	}
	for _, rec := range analytics.Recommendations {
		fmt.Printf("  %s %s\n", rec.Icon, rec.Message)
	}
}
