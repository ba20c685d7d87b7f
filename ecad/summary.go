package ecad

import (
	"sort"

	"github.com/etnz/royalty"
	"github.com/shopspring/decimal"
)

// Currency of the amounts in a statement.
const Currency = "BRL"

// TypeCount is the number of records of one type.
type TypeCount struct {
	Type  string
	Count int
}

// Summary gives the totals of a parsed batch.
type Summary struct {
	Holder      string // title holder of the first header
	HolderCode  string
	Pseudonym   string
	PaymentDate string // MM-YYYY
	Records     int
	ByType      []TypeCount
	Total       royalty.Money // sum of VALOR TOTAL
	Share       royalty.Money // sum of RATEIO
	Dropped     int
	Skipped     int
}

// Summary computes the totals of the result. Amounts are summed exactly.
func (r *Result) Summary() Summary {
	s := Summary{
		Records: len(r.Records),
		Dropped: len(r.Dropped),
		Skipped: r.Skipped,
		Total:   royalty.M(0, Currency),
		Share:   royalty.M(0, Currency),
	}
	if len(r.Headers) > 0 {
		h := r.Headers[0]
		s.Holder = h["NOM_TITULAR"]
		s.HolderCode = h["COD_TITULARECAD"]
		s.Pseudonym = h["NOM_PSEUDOTITULAR"]
		s.PaymentDate = h["DAT_PAGAMENTO"]
	}
	counts := make(map[string]int)
	for _, rec := range r.Records {
		counts[rec.Fields[RecordTypeColumn]]++
		// amounts were validated when the line was sliced
		if v, err := decimal.NewFromString(rec.Fields["VLR_RENDOBRA"]); err == nil {
			s.Total = s.Total.Add(royalty.M(v, Currency))
		}
		if v, err := decimal.NewFromString(rec.Fields["VLR_NOMINALTITOBRA"]); err == nil {
			s.Share = s.Share.Add(royalty.M(v, Currency))
		}
	}
	for t, n := range counts {
		s.ByType = append(s.ByType, TypeCount{Type: t, Count: n})
	}
	sort.Slice(s.ByType, func(i, j int) bool { return s.ByType[i].Type < s.ByType[j].Type })
	return s
}
