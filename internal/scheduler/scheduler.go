// Package scheduler runs the periodic watch task and serves Telegram
// commands against the latest cached report.
package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"StockAdvisor/internal/cache"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/notifier"
	"StockAdvisor/internal/portfolio"
	"StockAdvisor/internal/recorder"
)

// Scheduler manages the cron-driven watch loop.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer *portfolio.Analyzer
	Holdings []model.Holding
	Cache    *cache.Cache
	Notifier notifier.Notifier
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, an *portfolio.Analyzer, holdings []model.Holding, c *cache.Cache, n notifier.Notifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: an,
		Holdings: holdings,
		Cache:    c,
		Notifier: n,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// Register registers the watch task on the given cron expression.
func (s *Scheduler) Register(watchCron string) error {
	if _, err := s.Cron.AddFunc(watchCron, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	if _, err := s.Cron.AddFunc("0 0 0 * * *", s.Cache.Cleanup); err != nil {
		return fmt.Errorf("register cache cleanup: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info("scheduler stopped")
}

// RunNow executes the watch task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.watchTask()
}

func (s *Scheduler) watchTask() {
	log.Info("running watch task")
	report, err := s.Analyzer.Analyze(s.Ctx, s.Holdings)
	if err != nil {
		log.Errorf("watch analyze: %v", err)
		s.trySend(fmt.Sprintf("❌ watch run failed: %v", err))
		return
	}

	s.Cache.PutReport(report)
	s.trySend(notifier.FormatReport(report))

	for _, row := range report.Rows {
		if row.Signal.Opinion == model.OpinionStrongBuy || row.Signal.Opinion == model.OpinionStrongSell {
			s.trySend(notifier.FormatAlert(row))
		}
	}

	if err := s.Recorder.RecordAnalysis(recorder.AnalysisRecordsFromReport(report)); err != nil {
		log.Errorf("record analysis: %v", err)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch strings.TrimSpace(command) {
	case "/report":
		if report, ok := s.Cache.LastReport(); ok {
			return notifier.FormatReport(report)
		}
		return "No recent report. Use /analyze to run one now."
	case "/analyze":
		s.watchTask()
		return ""
	default:
		return "Commands:\n• /report — latest cached report\n• /analyze — run a fresh analysis"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Errorf("send notification: %v", err)
	}
}
