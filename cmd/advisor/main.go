package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"StockAdvisor/internal/api"
	"StockAdvisor/internal/backtest"
	"StockAdvisor/internal/cache"
	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/config"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/montecarlo"
	"StockAdvisor/internal/notifier"
	"StockAdvisor/internal/portfolio"
	"StockAdvisor/internal/recorder"
	"StockAdvisor/internal/report"
	"StockAdvisor/internal/scheduler"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Technical-indicator stock advisor",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		return cfg.Validate()
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [tickers...]",
	Short: "Analyze a portfolio and print the signal report",
	Run: func(cmd *cobra.Command, args []string) {
		holdings := holdingsFromArgs(cmd, args)
		if len(holdings) == 0 {
			log.Fatal("no holdings: pass tickers, --file, or configure a watchlist")
		}

		analyzer, rec := buildAnalyzer()
		defer rec.Close()

		rep, err := analyzer.Analyze(cmd.Context(), holdings)
		if err != nil {
			log.Fatalf("analyze: %v", err)
		}
		if len(rep.Rows) == 1 {
			row := rep.Rows[0]
			report.WriteSnapshot(os.Stdout, row.Code, row.Price, row.Snapshot, *row.Signal)
		} else {
			report.WriteTable(os.Stdout, rep)
		}

		if err := rec.RecordAnalysis(recorder.AnalysisRecordsFromReport(rep)); err != nil {
			log.Errorf("record analysis: %v", err)
		}
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <ticker>",
	Short: "Run a Monte Carlo price projection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		symbol := strings.ToUpper(args[0])
		days, _ := cmd.Flags().GetInt("days")
		sims, _ := cmd.Flags().GetInt("sims")
		seed, _ := cmd.Flags().GetInt64("seed")
		modeName, _ := cmd.Flags().GetString("mode")
		period, _ := cmd.Flags().GetString("period")

		if days == 0 {
			days = cfg.Simulation.DaysForecast
		}
		if sims == 0 {
			sims = cfg.Simulation.Simulations
		}
		if modeName == "" {
			modeName = cfg.Simulation.Mode
		}
		mode, err := montecarlo.ParseMode(modeName)
		if err != nil {
			log.Fatalf("simulate: %v", err)
		}

		series := fetchSeries(symbol, period)
		bundle, err := montecarlo.Project(series.Closes(), montecarlo.Config{
			DaysForecast: days,
			Simulations:  sims,
			Mode:         mode,
			Seed:         seed,
		})
		if err != nil {
			log.Fatalf("simulate: %v", err)
		}
		bundle.Symbol = symbol
		report.WriteSimulation(os.Stdout, bundle)

		rec := buildRecorder()
		defer rec.Close()
		summary := montecarlo.Summarize(bundle)
		if err := rec.RecordSimulation(&recorder.SimulationRecord{
			Symbol: symbol, Mode: bundle.Mode, LastClose: bundle.LastClose,
			Paths: len(bundle.Paths), Days: days,
			MeanTerminal: summary.MeanTerminal, ProbRise: summary.ProbRise,
			Timestamp: time.Now(),
		}); err != nil {
			log.Errorf("record simulation: %v", err)
		}
	},
}

var backtestCmd = &cobra.Command{
	Use:   "backtest <ticker>",
	Short: "Backtest the RSI threshold strategy over history",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		symbol := strings.ToUpper(args[0])
		period, _ := cmd.Flags().GetString("period")
		if period == "" {
			period = "1y"
		}

		series := fetchSeries(symbol, period)
		result, err := backtest.Run(series, backtest.Config{
			RSIWindow:      cfg.Backtest.RSIWindow,
			BuyThreshold:   cfg.Backtest.BuyThreshold,
			SellThreshold:  cfg.Backtest.SellThreshold,
			InitialCapital: cfg.Backtest.InitialCapital,
		})
		if err != nil {
			log.Fatalf("backtest: %v", err)
		}
		report.WriteBacktest(os.Stdout, symbol, result)

		rec := buildRecorder()
		defer rec.Close()
		if err := rec.RecordBacktest(&recorder.BacktestRecord{
			Symbol: symbol, Period: period, Trades: len(result.Trades),
			FinalValue: result.FinalValue, BuyHoldValue: result.BuyHoldValue,
			PositionOpen: result.PositionOpen, Timestamp: time.Now(),
		}); err != nil {
			log.Errorf("record backtest: %v", err)
		}
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the scheduled watch loop with Telegram notifications",
	Run: func(cmd *cobra.Command, args []string) {
		holdings := cfg.Holdings()
		if len(holdings) == 0 {
			log.Fatal("watch requires a configured watchlist")
		}

		analyzer, rec := buildAnalyzer()
		defer rec.Close()

		var n notifier.Notifier = notifier.NoopNotifier{}
		var tn *notifier.TelegramNotifier
		if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
			tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
			n = tn
		} else {
			log.Warn("telegram not configured, notifications disabled")
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sched := scheduler.NewScheduler(ctx, analyzer, holdings, cache.New(time.Hour), n, rec)
		if err := sched.Register(cfg.Schedule.WatchCron); err != nil {
			log.Fatalf("register watch task: %v", err)
		}
		sched.Start()
		defer sched.Stop()

		if tn != nil {
			go tn.StartPolling(ctx, sched.HandleCommand)
			log.Info("telegram polling started")
		}

		if os.Getenv("RUN_ON_START") == "true" {
			log.Info("RUN_ON_START enabled, running watch task now")
			go sched.RunNow()
		}

		log.Info("advisor is watching. Press Ctrl+C to stop.")
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info("shutdown signal received, stopping")
		cancel()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		analyzer, rec := buildAnalyzer()
		defer rec.Close()

		server := api.NewServer(cfg.Server.Addr, analyzer, analyzer.Collector, cache.New(10*time.Minute))

		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			log.Info("shutdown signal received, draining")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Errorf("shutdown: %v", err)
			}
		}()

		if err := server.ListenAndServe(); err != nil {
			log.Fatalf("serve: %v", err)
		}
	},
}

func buildFetcher() collector.Fetcher {
	switch cfg.Provider.Name {
	case "alphavantage":
		return collector.NewAlphaVantageFetcher(cfg.Provider.APIKey, cfg.Proxy)
	default:
		return collector.NewYahooFetcher(cfg.Proxy)
	}
}

func buildAnalyzer() (*portfolio.Analyzer, recorder.Recorder) {
	fetcher := buildFetcher()
	log.Infof("data source: %s", fetcher.Name())

	analyzer := portfolio.NewAnalyzer(
		collector.NewCollector(fetcher),
		collector.NewNameResolver(cfg.NameOverrides()),
	)
	analyzer.Policy = cfg.Scorer.Policy
	analyzer.Scorer.Indicators = cfg.Scorer.Indicators
	analyzer.Period = cfg.Provider.Period
	analyzer.FXPair = cfg.FX.Pair
	analyzer.FXFallback = cfg.FX.Fallback

	return analyzer, buildRecorder()
}

func buildRecorder() recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Warnf("init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return rec
}

func fetchSeries(symbol, period string) *model.PriceSeries {
	if period == "" {
		period = cfg.Provider.Period
	}
	if !collector.ValidPeriod(period) {
		log.Fatalf("invalid period %q", period)
	}
	fetcher := buildFetcher()
	series, err := fetcher.FetchHistory(symbol, period)
	if err != nil {
		log.Fatalf("fetch %s: %v", symbol, err)
	}
	return series
}

// holdingsFromArgs merges, in priority order: positional tickers, a
// holdings file, then the configured watchlist.
func holdingsFromArgs(cmd *cobra.Command, args []string) []model.Holding {
	if len(args) > 0 {
		holdings, skipped := portfolio.ParseHoldings(strings.Join(args, "\n"))
		for _, s := range skipped {
			log.Warnf("ignoring %s: %s", s.Code, s.Reason)
		}
		return holdings
	}

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		if strings.HasSuffix(file, ".csv") {
			holdings, skipped, err := portfolio.LoadHoldingsCSV(file)
			if err != nil {
				log.Fatalf("load holdings: %v", err)
			}
			for _, s := range skipped {
				log.Warnf("ignoring %s: %s", s.Code, s.Reason)
			}
			return holdings
		}
		data, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("load holdings: %v", err)
		}
		holdings, skipped := portfolio.ParseHoldings(string(data))
		for _, s := range skipped {
			log.Warnf("ignoring %s: %s", s.Code, s.Reason)
		}
		return holdings
	}

	return cfg.Holdings()
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "configs/config.yaml", "config file path")

	analyzeCmd.Flags().StringP("file", "f", "", "holdings file (.csv or free text)")

	simulateCmd.Flags().Int("days", 0, "forecast horizon in trading days")
	simulateCmd.Flags().Int("sims", 0, "number of simulated paths")
	simulateCmd.Flags().Int64("seed", 0, "RNG seed (0 = from clock)")
	simulateCmd.Flags().String("mode", "", "return model: simple or log")
	simulateCmd.Flags().String("period", "", "history period for drift estimation")

	backtestCmd.Flags().String("period", "1y", "history period to backtest over")

	rootCmd.AddCommand(analyzeCmd, simulateCmd, backtestCmd, watchCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("advisor: %v", err)
	}
}
