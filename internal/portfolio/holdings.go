package portfolio

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"StockAdvisor/internal/model"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9.^=-]{1,20}$`)

// ValidCode reports whether a ticker code looks usable.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// ParseHoldings reads free-text holdings, one per line: "CODE" or
// "CODE QUANTITY". Blank lines and #-comments are ignored. Malformed
// rows are skipped and reported, never fatal.
func ParseHoldings(text string) ([]model.Holding, []model.SkippedRow) {
	var holdings []model.Holding
	var skipped []model.SkippedRow

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		code := strings.ToUpper(fields[0])
		if !ValidCode(code) {
			skipped = append(skipped, model.SkippedRow{Code: fields[0], Reason: "malformed ticker"})
			continue
		}
		h := model.Holding{Code: code}
		if len(fields) > 1 {
			qty, err := strconv.ParseFloat(strings.ReplaceAll(fields[1], ",", ""), 64)
			if err != nil || qty < 0 {
				skipped = append(skipped, model.SkippedRow{Code: code, Reason: "invalid quantity"})
				continue
			}
			h.Quantity = qty
		}
		holdings = append(holdings, h)
	}
	return holdings, skipped
}

// csvHolding reads every column as text so one bad cell cannot reject
// the whole file; conversion happens per row.
type csvHolding struct {
	Code     string `csv:"code"`
	Name     string `csv:"name"`
	Quantity string `csv:"quantity"`
}

// LoadHoldingsCSV reads holdings from a CSV file with code, name and
// quantity columns. Malformed rows are skipped and reported, never
// fatal; only an unreadable file is an error.
func LoadHoldingsCSV(path string) ([]model.Holding, []model.SkippedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open holdings file: %w", err)
	}
	defer f.Close()

	var rows []csvHolding
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, nil, fmt.Errorf("parse holdings csv: %w", err)
	}

	var holdings []model.Holding
	var skipped []model.SkippedRow
	for _, row := range rows {
		code := strings.ToUpper(strings.TrimSpace(row.Code))
		if !ValidCode(code) {
			skipped = append(skipped, model.SkippedRow{Code: row.Code, Reason: "malformed ticker"})
			continue
		}
		h := model.Holding{Code: code, Name: strings.TrimSpace(row.Name)}
		if q := strings.TrimSpace(row.Quantity); q != "" {
			qty, err := strconv.ParseFloat(strings.ReplaceAll(q, ",", ""), 64)
			if err != nil || qty < 0 {
				skipped = append(skipped, model.SkippedRow{Code: code, Reason: "invalid quantity"})
				continue
			}
			h.Quantity = qty
		}
		holdings = append(holdings, h)
	}
	return holdings, skipped, nil
}

// KRWListed reports whether the code trades in KRW (KOSPI/KOSDAQ
// listings carry a .KS or .KQ suffix). Everything else is treated as
// USD-denominated.
func KRWListed(code string) bool {
	return strings.HasSuffix(code, ".KS") || strings.HasSuffix(code, ".KQ")
}
