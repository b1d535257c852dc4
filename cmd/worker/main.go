package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/infra"
)

// publisher flips scheduled calendar entries to published once their date and
// time slot have passed. Delivery to the social platforms happens elsewhere;
// this loop only advances entry state so the API reflects what is due.
type publisher struct {
	calendar domain.CalendarRepository
	logger   infra.Logger
	interval time.Duration
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("cmd", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)
	p := &publisher{
		calendar: repo.NewCalendarRepository(runner),
		logger:   logger,
		interval: cfg.WorkerInterval,
	}

	logger.Info().Dur("interval", p.interval).Msg("publisher started")
	p.run(ctx)
	logger.Info().Msg("publisher stopped")
}

func (p *publisher) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.tick(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *publisher) tick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := p.calendar.MarkPublished(tickCtx, time.Now())
	if err != nil {
		p.logger.Error().Err(err).Msg("publish pass failed")
		return
	}
	if n > 0 {
		p.logger.Info().Int("entries", n).Msg("entries published")
	}
}
