package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// Admin CLI for moving a user between plan tiers, with an optional ledger
// reset so the new tier starts from a clean month.
//
//	userplan -email owner@example.com -plan starter -reset-usage
//	userplan -id 6f1f... -plan pro
func main() {
	_ = godotenv.Load()

	var (
		userID     = flag.String("id", "", "user id (uuid)")
		email      = flag.String("email", "", "user email, used when -id is not given")
		plan       = flag.String("plan", "", "target plan tier (freemium, starter, advanced, pro, admin)")
		resetUsage = flag.Bool("reset-usage", false, "zero the usage ledger for the current period")
	)
	flag.Parse()

	if *plan == "" {
		fmt.Fprintln(os.Stderr, "userplan: -plan is required")
		flag.Usage()
		os.Exit(2)
	}
	label := strings.ToLower(strings.TrimSpace(*plan))
	tier := domain.ParsePlanTier(label)
	if string(tier) != label {
		fmt.Fprintf(os.Stderr, "userplan: unknown plan %q\n", *plan)
		os.Exit(2)
	}
	if *userID == "" && *email == "" {
		fmt.Fprintln(os.Stderr, "userplan: one of -id or -email is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "userplan: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("cmd", "userplan").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	id := *userID
	if id == "" {
		var foundEmail, foundPlan string
		row := runner.QueryRow(ctx, sqlinline.QSelectUserPlanByEmail, *email)
		if err := row.Scan(&id, &foundEmail, &foundPlan); err != nil {
			logger.Fatal().Err(err).Str("email", *email).Msg("user not found")
		}
		logger.Info().Str("user_id", id).Str("plan", foundPlan).Msg("resolved user by email")
	}

	var updatedID, updatedEmail, updatedPlan string
	row := runner.QueryRow(ctx, sqlinline.QUpdateUserPlan, id, string(tier))
	if err := row.Scan(&updatedID, &updatedEmail, &updatedPlan); err != nil {
		logger.Fatal().Err(err).Str("user_id", id).Msg("plan update failed")
	}

	if *resetUsage {
		periodStart := monthStart(time.Now().UTC())
		var tasks, images int
		var ps, updatedAt time.Time
		row := runner.QueryRow(ctx, sqlinline.QResetUsageLedger, updatedID, periodStart)
		if err := row.Scan(&tasks, &images, &ps, &updatedAt); err != nil {
			logger.Fatal().Err(err).Str("user_id", updatedID).Msg("ledger reset failed")
		}
		logger.Info().Str("user_id", updatedID).Time("period_start", ps).Msg("usage ledger reset")
	}

	fmt.Printf("%s %s -> %s\n", updatedID, updatedEmail, updatedPlan)
}

func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
