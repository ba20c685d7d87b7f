package withholding

import (
	"fmt"
	"os"
	"strings"

	"github.com/etnz/royalty"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Group gathers the rows whose artist contains one of the keywords.
type Group struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"` // the name itself when empty
}

func (g Group) match(artist string) bool {
	artist = strings.ToLower(artist)
	keywords := g.Keywords
	if len(keywords) == 0 {
		keywords = []string{g.Name}
	}
	for _, k := range keywords {
		if k != "" && strings.Contains(artist, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// LoadGroups reads a YAML list of groups.
func LoadGroups(path string) ([]Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read artist groups: %w", err)
	}
	var groups []Group
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("invalid artist groups %q: %w", path, err)
	}
	for i, g := range groups {
		if strings.TrimSpace(g.Name) == "" {
			return nil, fmt.Errorf("artist group #%d has no name", i+1)
		}
	}
	return groups, nil
}

// ArtistTotal is the net amount of a group of artists.
type ArtistTotal struct {
	Artist string
	USD    royalty.Money
	BRL    royalty.Money
}

// Summary is the net amount by artist group, converted to BRL.
type Summary struct {
	Rate     decimal.Decimal // BRL per USD
	Artists  []ArtistTotal
	TotalUSD royalty.Money
	TotalBRL royalty.Money
}

// Summarize sums the net amount of a processed report by artist group.
// A row is counted in every group it matches; groups without rows are omitted.
// The totals cover every row of the report, matched or not.
// Amounts are rounded to the cent.
func Summarize(res *Result, groups []Group, rate decimal.Decimal) Summary {
	s := Summary{
		Rate:     rate,
		TotalUSD: res.NetAfter.Round(2),
		TotalBRL: royalty.M(res.NetAfter.Decimal().Mul(rate), "BRL").Round(2),
	}
	artists := res.Table.Col(ColumnArtist).Records()
	for _, g := range groups {
		total := decimal.Zero
		found := false
		for i, a := range artists {
			if g.match(a) {
				total = total.Add(res.net[i].Decimal())
				found = true
			}
		}
		if !found {
			continue
		}
		usd := royalty.M(total, Currency).Round(2)
		brl := royalty.M(total.Mul(rate), "BRL").Round(2)
		s.Artists = append(s.Artists, ArtistTotal{Artist: g.Name, USD: usd, BRL: brl})
	}
	return s
}

// Table returns the summary with a total line.
func (s Summary) Table() dataframe.DataFrame {
	n := len(s.Artists) + 1
	names := make([]string, 0, n)
	usd := make([]float64, 0, n)
	rates := make([]float64, 0, n)
	brl := make([]float64, 0, n)
	for _, a := range s.Artists {
		names = append(names, a.Artist)
		usd = append(usd, a.USD.AsFloat())
		rates = append(rates, s.Rate.InexactFloat64())
		brl = append(brl, a.BRL.AsFloat())
	}
	names = append(names, "Total Geral")
	usd = append(usd, s.TotalUSD.AsFloat())
	rates = append(rates, s.Rate.InexactFloat64())
	brl = append(brl, s.TotalBRL.AsFloat())
	return dataframe.New(
		series.New(names, series.String, "Artist"),
		series.New(usd, series.Float, "Total Net Dollars"),
		series.New(rates, series.Float, "FX Rate"),
		series.New(brl, series.Float, "Total BRL"),
	)
}
