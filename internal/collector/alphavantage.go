package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"StockAdvisor/internal/model"
)

// AlphaVantageFetcher implements Fetcher against the Alpha Vantage API,
// as an alternative to Yahoo for deployments with an API key.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAlphaVantageFetcher creates an Alpha Vantage fetcher with optional
// proxy support.
func NewAlphaVantageFetcher(apiKey, proxyURL string) *AlphaVantageFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AlphaVantageFetcher{
		BaseURL: "https://www.alphavantage.co/query",
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

type alphaDailyResponse struct {
	TimeSeries map[string]struct {
		Open   string `json:"1. open"`
		High   string `json:"2. high"`
		Low    string `json:"3. low"`
		Close  string `json:"4. close"`
		Volume string `json:"5. volume"`
	} `json:"Time Series (Daily)"`
	Note         string `json:"Note"`
	ErrorMessage string `json:"Error Message"`
}

func (f *AlphaVantageFetcher) get(params url.Values) ([]byte, error) {
	params.Set("apikey", f.APIKey)
	resp, err := f.Client.Get(f.BaseURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alphavantage read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// FetchHistory returns daily bars, trimmed to the requested period.
func (f *AlphaVantageFetcher) FetchHistory(symbol, period string) (*model.PriceSeries, error) {
	days, ok := periodDays[period]
	if !ok {
		return nil, fmt.Errorf("invalid period %q", period)
	}

	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("outputsize", "full")
	body, err := f.get(params)
	if err != nil {
		return nil, err
	}

	var parsed alphaDailyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if parsed.ErrorMessage != "" {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}
	if parsed.Note != "" {
		return nil, fmt.Errorf("alphavantage throttled: %s", parsed.Note)
	}
	if len(parsed.TimeSeries) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}

	dates := make([]string, 0, len(parsed.TimeSeries))
	for d := range parsed.TimeSeries {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if len(dates) > days {
		dates = dates[len(dates)-days:]
	}

	bars := make([]model.PriceBar, 0, len(dates))
	for _, d := range dates {
		raw := parsed.TimeSeries[d]
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		o, err1 := strconv.ParseFloat(raw.Open, 64)
		h, err2 := strconv.ParseFloat(raw.High, 64)
		l, err3 := strconv.ParseFloat(raw.Low, 64)
		c, err4 := strconv.ParseFloat(raw.Close, 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		v, _ := strconv.ParseFloat(raw.Volume, 64)
		bars = append(bars, model.PriceBar{Date: date, Open: o, High: h, Low: l, Close: c, Volume: v})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}

	return &model.PriceSeries{
		Symbol:    symbol,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

// FetchExchangeRate resolves a Yahoo-style pair pseudo-ticker ("KRW=X"
// means USD/KRW) through the currency-exchange endpoint.
func (f *AlphaVantageFetcher) FetchExchangeRate(pair string) (float64, error) {
	to := strings.TrimSuffix(pair, "=X")
	if to == pair || len(to) != 3 {
		return 0, fmt.Errorf("invalid currency pair %q", pair)
	}

	params := url.Values{}
	params.Set("function", "CURRENCY_EXCHANGE_RATE")
	params.Set("from_currency", "USD")
	params.Set("to_currency", to)
	body, err := f.get(params)
	if err != nil {
		return 0, err
	}

	var parsed struct {
		Rate struct {
			ExchangeRate string `json:"5. Exchange Rate"`
		} `json:"Realtime Currency Exchange Rate"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("alphavantage decode: %w", err)
	}
	rate, err := strconv.ParseFloat(parsed.Rate.ExchangeRate, 64)
	if err != nil {
		return 0, fmt.Errorf("alphavantage rate parse: %w", err)
	}
	return rate, nil
}
