// Package fx fetches exchange rates from JSON web services.
package fx

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/carlmjohnson/requests"
	"github.com/shopspring/decimal"
)

// Source locates a rate: the URL of a JSON document and the JSONPath of the
// rate in it.
type Source struct {
	URL  string
	Path string
}

// quotesURL serves the last quotes of a currency pair, like USD-BRL.
const quotesURL = "https://economia.awesomeapi.com.br/json/last/"

// BRLSource is the BRL per unit bid of currency, from a public quotes API.
func BRLSource(currency string) Source {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	return Source{
		URL:  quotesURL + currency + "-BRL",
		Path: "$." + currency + "BRL.bid",
	}
}

// DefaultSource is the BRL per USD bid.
var DefaultSource = BRLSource("USD")

// Fetcher gets rates over HTTP, caching the responses for the day.
type Fetcher struct {
	client *http.Client
}

// New returns a Fetcher caching responses in dir, the temp directory when empty.
func New(dir string) *Fetcher {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Fetcher{client: &http.Client{Transport: &diskCache{dir: dir, base: http.DefaultTransport}}}
}

// Rate fetches the rate of src.
func (f *Fetcher) Rate(ctx context.Context, src Source) (decimal.Decimal, error) {
	var doc any
	if err := requests.URL(src.URL).Client(f.client).ToJSON(&doc).Fetch(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("cannot get rate from %s: %w", src.URL, err)
	}
	v, err := jsonpath.Get(src.Path, doc)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot find rate %q in %s: %w", src.Path, src.URL, err)
	}
	// jsonpath returns a list for wildcard and slice expressions
	if list, ok := v.([]any); ok && len(list) > 0 {
		v = list[0]
	}
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero, fmt.Errorf("rate %q in %s is not a number: %w", src.Path, src.URL, err)
		}
		return d, nil
	}
	return decimal.Zero, fmt.Errorf("rate %q in %s is not a number: %v", src.Path, src.URL, v)
}

// Rate fetches a rate with a Fetcher caching in the temp directory.
func Rate(ctx context.Context, src Source) (decimal.Decimal, error) {
	return New("").Rate(ctx, src)
}
