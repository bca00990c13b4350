package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/strategy"
)

// ErrEmptyReport signals that no ticker in the batch could be analyzed.
// Individual ticker failures only skip that row; this error is the
// batch-level failure.
var ErrEmptyReport = errors.New("no tickers could be analyzed")

const (
	defaultWorkers = 4
	defaultPeriod  = "6mo"
	defaultFXPair  = "KRW=X"
	// Rate assumed when the FX fetch fails; the report flags it.
	defaultFXFallback = 1400.0
)

// Analyzer runs batch portfolio analysis: per-ticker fetch, indicator
// computation, scoring and KRW valuation. Fetches are independent and
// idempotent, so they run on a bounded worker pool.
type Analyzer struct {
	Collector  *collector.Collector
	Names      *collector.NameResolver
	Scorer     strategy.Config
	Policy     string // strategy.PolicyWeighted or strategy.PolicyRSIOnly
	Period     string
	FXPair     string
	FXFallback float64
	Workers    int
}

// NewAnalyzer creates an Analyzer with default period, FX and worker
// settings.
func NewAnalyzer(col *collector.Collector, names *collector.NameResolver) *Analyzer {
	return &Analyzer{
		Collector:  col,
		Names:      names,
		Policy:     strategy.PolicyWeighted,
		Period:     defaultPeriod,
		FXPair:     defaultFXPair,
		FXFallback: defaultFXFallback,
		Workers:    defaultWorkers,
	}
}

type outcome struct {
	idx  int
	row  *model.AnalysisRow
	skip *model.SkippedRow
}

// Analyze processes every holding and assembles a report. Per-ticker
// failures are isolated into skipped rows; only a batch where nothing
// could be analyzed returns ErrEmptyReport.
func (a *Analyzer) Analyze(ctx context.Context, holdings []model.Holding) (*model.Report, error) {
	if len(holdings) == 0 {
		return nil, errors.New("no holdings to analyze")
	}

	report := &model.Report{
		ID:          uuid.New(),
		GeneratedAt: time.Now(),
	}
	report.FXRate, report.FXAssumed = a.fetchFX()

	workers := a.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(holdings) {
		workers = len(holdings)
	}

	jobs := make(chan int)
	results := make(chan outcome)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results <- a.analyzeOne(ctx, idx, holdings[idx], report.FXRate)
			}
		}()
	}
	go func() {
		defer close(jobs)
		for i := range holdings {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	rows := make([]*model.AnalysisRow, len(holdings))
	skips := make([]*model.SkippedRow, len(holdings))
	for out := range results {
		rows[out.idx] = out.row
		skips[out.idx] = out.skip
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Reassemble in input order.
	total := decimal.Zero
	for i := range holdings {
		if skips[i] != nil {
			report.Skipped = append(report.Skipped, *skips[i])
			continue
		}
		if rows[i] != nil {
			report.Rows = append(report.Rows, *rows[i])
			total = total.Add(rows[i].Value)
		}
	}
	report.TotalValue = total

	if len(report.Rows) == 0 {
		return nil, fmt.Errorf("%w (%d skipped)", ErrEmptyReport, len(report.Skipped))
	}

	log.Infof("analysis %s: %d rows, %d skipped, total %s KRW",
		report.ID, len(report.Rows), len(report.Skipped), report.TotalValue.StringFixed(0))
	return report, nil
}

func (a *Analyzer) analyzeOne(ctx context.Context, idx int, h model.Holding, fx float64) outcome {
	if err := ctx.Err(); err != nil {
		return outcome{idx: idx, skip: &model.SkippedRow{Code: h.Code, Reason: "cancelled"}}
	}
	if !ValidCode(h.Code) {
		return outcome{idx: idx, skip: &model.SkippedRow{Code: h.Code, Reason: "malformed ticker"}}
	}

	series, ind, err := a.Collector.Collect(h.Code, a.period())
	if err != nil {
		log.Warnf("skipping %s: %v", h.Code, err)
		reason := "fetch failed"
		if errors.Is(err, collector.ErrNoData) {
			reason = "no data"
		}
		return outcome{idx: idx, skip: &model.SkippedRow{Code: h.Code, Reason: reason}}
	}

	snap, ok := ind.Latest()
	if !ok {
		return outcome{idx: idx, skip: &model.SkippedRow{Code: h.Code, Reason: "no data"}}
	}
	price := series.LastClose()

	var sig *model.Signal
	if a.Policy == strategy.PolicyRSIOnly {
		sig = strategy.EvaluateRSIOnly(snap.RSI)
	} else {
		sig = strategy.Evaluate(snap, price, a.Scorer)
	}

	name := h.Name
	if name == "" && a.Names != nil {
		name = a.Names.Resolve(h.Code)
	}
	if name == "" {
		name = h.Code
	}

	currency := model.CurrencyUSD
	value := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(h.Quantity))
	if KRWListed(h.Code) {
		currency = model.CurrencyKRW
	} else {
		value = value.Mul(decimal.NewFromFloat(fx))
	}

	return outcome{idx: idx, row: &model.AnalysisRow{
		Code:     h.Code,
		Name:     name,
		Quantity: h.Quantity,
		Price:    price,
		Currency: currency,
		Value:    value,
		Snapshot: snap,
		Signal:   sig,
	}}
}

func (a *Analyzer) period() string {
	if a.Period == "" {
		return defaultPeriod
	}
	return a.Period
}

// fetchFX returns the USD conversion rate, falling back to the
// configured assumption when the provider cannot supply one.
func (a *Analyzer) fetchFX() (rate float64, assumed bool) {
	pair := a.FXPair
	if pair == "" {
		pair = defaultFXPair
	}
	rate, err := a.Collector.Fetcher.FetchExchangeRate(pair)
	if err != nil || rate <= 0 {
		fallback := a.FXFallback
		if fallback == 0 {
			fallback = defaultFXFallback
		}
		log.Warnf("fx fetch for %s failed (%v), assuming %.2f", pair, err, fallback)
		return fallback, true
	}
	return rate, false
}
