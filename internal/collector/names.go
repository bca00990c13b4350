package collector

import (
	"github.com/piquette/finance-go/quote"
	log "github.com/sirupsen/logrus"
)

// NameResolver resolves a ticker code to a display name. Configured
// overrides win; otherwise a best-effort quote lookup is made, falling
// back silently to the raw code. Resolution failures are never fatal.
type NameResolver struct {
	overrides map[string]string
	lookup    func(symbol string) (string, error)
}

// NewNameResolver creates a resolver with the given code-to-name
// overrides, backed by Yahoo quote lookups.
func NewNameResolver(overrides map[string]string) *NameResolver {
	return &NameResolver{
		overrides: overrides,
		lookup:    quoteShortName,
	}
}

func quoteShortName(symbol string) (string, error) {
	q, err := quote.Get(symbol)
	if err != nil {
		return "", err
	}
	if q == nil || q.ShortName == "" {
		return symbol, nil
	}
	return q.ShortName, nil
}

// Resolve returns the display name for a ticker code.
func (r *NameResolver) Resolve(code string) string {
	if name, ok := r.overrides[code]; ok && name != "" {
		return name
	}
	if r.lookup == nil {
		return code
	}
	name, err := r.lookup(code)
	if err != nil {
		log.Debugf("name lookup failed for %s: %v", code, err)
		return code
	}
	return name
}
