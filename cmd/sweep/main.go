// Command sweep runs the roster compliance sweep once and exits, for cron
// setups that prefer an external schedule over the in-process housekeeper.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nugammasigma/chapter/internal/members/app"
	"github.com/nugammasigma/chapter/internal/members/notify"
	"github.com/nugammasigma/chapter/internal/members/service"
	"github.com/nugammasigma/chapter/internal/members/store/drivers/sqlite"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report removal candidates without deleting them")
	flag.Parse()

	cfg := app.LoadConfig()

	logger := slogx.New(slogx.Config{
		Service: "member-sweep",
		Version: app.BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  "text",
	})

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		log.Fatalf("failed to apply database migrations: %v", err)
	}

	compliance := &service.ComplianceService{Store: db}
	if mailer := notify.NewClient(cfg.PostmarkServerToken, cfg.FromEmail, cfg.SiteURL); mailer.Configured() {
		compliance.Mailer = mailer
	}

	ctx := slogx.WithContext(context.Background(), logger)
	result, err := compliance.SweepExpired(ctx, *dryRun)
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}

	logger.Info("sweep complete",
		"examined", result.Examined,
		"removed", len(result.Removed),
		"dry_run", result.DryRun,
	)
	os.Exit(0)
}
