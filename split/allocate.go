package split

import (
	"fmt"
	"sort"

	"github.com/etnz/royalty"
	"github.com/etnz/royalty/internal/logging"
	"github.com/sirupsen/logrus"
)

// Currency of the reports.
const Currency = "BRL"

// Work is a registered work with the total of its report rows.
type Work struct {
	Code       string
	Title      string
	Acquired   bool
	Controlled bool
	Bucket     Bucket
	Rows       int
	Total      royalty.Money
}

// Split is the amount of a work paid to a payee.
type Split struct {
	Code    string
	Title   string
	Bucket  Bucket
	Payee   string
	Percent royalty.Percent
	Amount  royalty.Money
}

// Unregistered is a reported work missing from the registry.
type Unregistered struct {
	Code   string
	Title  string
	Rows   int
	Amount royalty.Money
}

// PayeeTotal is the amount paid to a payee.
type PayeeTotal struct {
	Payee  string
	Amount royalty.Money
}

// Summary aggregates splits by payee.
type Summary struct {
	Bucket Bucket // empty for the overall summary
	Works  int
	Payees []PayeeTotal
	Total  royalty.Money
}

// Result is the outcome of an allocation.
type Result struct {
	Mode         Mode
	Works        []Work // by descending total
	Splits       []Split
	Buckets      []Summary // non empty buckets, in mode order
	Overall      Summary
	Unregistered []Unregistered

	GrandTotal  royalty.Money // all report rows
	Processed   royalty.Money // registered works
	Unprocessed royalty.Money // unregistered works

	Warnings []string
}

// Allocate splits the registered works of a report according to the
// configuration. Unregistered works are excluded and reported.
// Configuration inconsistencies are reported as warnings.
func Allocate(rows []Row, reg *Registry, cfg Config) *Result {
	res := &Result{
		Mode:        cfg.Mode,
		GrandTotal:  royalty.M(0, Currency),
		Processed:   royalty.M(0, Currency),
		Unprocessed: royalty.M(0, Currency),
	}
	for _, w := range cfg.Validate() {
		logging.Log.Warn(w.String())
		res.Warnings = append(res.Warnings, w.String())
	}
	res.Warnings = append(res.Warnings, reg.Warnings...)

	works := make(map[string]*Work)
	unregistered := make(map[string]*Unregistered)
	var unregisteredOrder []string
	for _, row := range rows {
		amount := royalty.M(row.Amount, Currency)
		res.GrandTotal = res.GrandTotal.Add(amount)

		entry, ok := reg.Lookup(row.Code)
		if !ok {
			u, seen := unregistered[row.Code]
			if !seen {
				u = &Unregistered{Code: row.Code, Title: row.Title, Amount: royalty.M(0, Currency)}
				unregistered[row.Code] = u
				unregisteredOrder = append(unregisteredOrder, row.Code)
			}
			u.Rows++
			u.Amount = u.Amount.Add(amount)
			res.Unprocessed = res.Unprocessed.Add(amount)
			continue
		}
		w, seen := works[entry.Code]
		if !seen {
			w = &Work{
				Code:       entry.Code,
				Acquired:   entry.Acquired,
				Controlled: entry.Controlled,
				Bucket:     cfg.Mode.Classify(entry.Acquired, entry.Controlled),
				Total:      royalty.M(0, Currency),
			}
			works[entry.Code] = w
		}
		if w.Title == "" {
			w.Title = row.Title
		}
		w.Rows++
		w.Total = w.Total.Add(amount)
		res.Processed = res.Processed.Add(amount)
	}

	for _, code := range unregisteredOrder {
		u := unregistered[code]
		res.Unregistered = append(res.Unregistered, *u)
		logging.Log.WithFields(logrus.Fields{"code": u.Code, "title": u.Title}).Warn("work not registered")
		res.Warnings = append(res.Warnings, fmt.Sprintf("work %s - %s is not registered", u.Code, u.Title))
	}

	for _, w := range works {
		res.Works = append(res.Works, *w)
	}
	sort.Slice(res.Works, func(i, j int) bool {
		a, b := res.Works[i], res.Works[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Code < b.Code
	})

	for _, w := range res.Works {
		for _, cut := range cfg.Table(w.Bucket) {
			res.Splits = append(res.Splits, Split{
				Code:    w.Code,
				Title:   w.Title,
				Bucket:  w.Bucket,
				Payee:   cut.Payee,
				Percent: cut.Percent,
				Amount:  w.Total.Share(cut.Percent),
			})
		}
	}

	for _, b := range cfg.Mode.Buckets() {
		if s := summarize(b, res.Works, res.Splits); s.Works > 0 {
			res.Buckets = append(res.Buckets, s)
		}
	}
	res.Overall = summarize("", res.Works, res.Splits)
	return res
}

// summarize aggregates the splits of a bucket by payee, all buckets when b is
// empty. Payees are listed in order of first appearance.
func summarize(b Bucket, works []Work, splits []Split) Summary {
	s := Summary{Bucket: b, Total: royalty.M(0, Currency)}
	for _, w := range works {
		if b == "" || w.Bucket == b {
			s.Works++
		}
	}
	index := make(map[string]int)
	for _, sp := range splits {
		if b != "" && sp.Bucket != b {
			continue
		}
		i, ok := index[sp.Payee]
		if !ok {
			i = len(s.Payees)
			index[sp.Payee] = i
			s.Payees = append(s.Payees, PayeeTotal{Payee: sp.Payee, Amount: royalty.M(0, Currency)})
		}
		s.Payees[i].Amount = s.Payees[i].Amount.Add(sp.Amount)
		s.Total = s.Total.Add(sp.Amount)
	}
	return s
}
