package split

import (
	"github.com/etnz/royalty"
	"github.com/etnz/royalty/sheet"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Output labels.
const (
	LabelPayee   = "TITULAR"
	LabelPercent = "PERCENTUAL"
	LabelAmount  = "TOTAL CALCULADO"
	LabelTotal   = "TOTAL"
	LabelBucket  = "CLASSIFICAÇÃO"
	LabelCode    = "CÓD. OBRA"
	LabelTitle   = "TÍTULO DA MUSICA"
	LabelRows    = "LINHAS"
	LabelShare   = "RATEIO"
)

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

func amounts(ms []royalty.Money) []float64 {
	fs := make([]float64, len(ms))
	for i, m := range ms {
		fs[i] = m.Round(2).AsFloat()
	}
	return fs
}

// Table returns the payee totals of s followed by a TOTAL row.
func (s Summary) Table() dataframe.DataFrame {
	var payees []string
	var values []royalty.Money
	for _, p := range s.Payees {
		payees = append(payees, p.Payee)
		values = append(values, p.Amount)
	}
	payees = append(payees, LabelTotal)
	values = append(values, s.Total)
	return dataframe.New(
		series.New(payees, series.String, LabelPayee),
		series.New(amounts(values), series.Float, LabelAmount),
	)
}

// Tables returns the sheets written for an allocation: the overall summary,
// the summary by bucket, the works, the splits and the unregistered works
// when there are some.
func (r *Result) Tables() []sheet.Sheet {
	sheets := []sheet.Sheet{{Name: "Resumo", Table: r.Overall.Table()}}

	var buckets, payees []string
	var values []royalty.Money
	for _, s := range r.Buckets {
		for _, p := range s.Payees {
			buckets = append(buckets, string(s.Bucket))
			payees = append(payees, p.Payee)
			values = append(values, p.Amount)
		}
		buckets = append(buckets, string(s.Bucket))
		payees = append(payees, LabelTotal)
		values = append(values, s.Total)
	}
	sheets = append(sheets, sheet.Sheet{Name: "Resumo por Classificação", Table: dataframe.New(
		series.New(buckets, series.String, LabelBucket),
		series.New(payees, series.String, LabelPayee),
		series.New(amounts(values), series.Float, LabelAmount),
	)})

	n := len(r.Works)
	codes, titles, acq, ctl, bs := make([]string, n), make([]string, n), make([]string, n), make([]string, n), make([]string, n)
	totals := make([]royalty.Money, n)
	for i, w := range r.Works {
		codes[i], titles[i], acq[i], ctl[i], bs[i], totals[i] = w.Code, w.Title, yesNo(w.Acquired), yesNo(w.Controlled), string(w.Bucket), w.Total
	}
	sheets = append(sheets, sheet.Sheet{Name: "Obras", Table: dataframe.New(
		series.New(codes, series.String, LabelCode),
		series.New(titles, series.String, LabelTitle),
		series.New(acq, series.String, ColumnAcquired),
		series.New(ctl, series.String, ColumnControlled),
		series.New(bs, series.String, LabelBucket),
		series.New(amounts(totals), series.Float, LabelTotal),
	)})

	n = len(r.Splits)
	codes, titles, bs, payees = make([]string, n), make([]string, n), make([]string, n), make([]string, n)
	percents := make([]float64, n)
	values = make([]royalty.Money, n)
	for i, s := range r.Splits {
		codes[i], titles[i], bs[i], payees[i], percents[i], values[i] = s.Code, s.Title, string(s.Bucket), s.Payee, float64(s.Percent), s.Amount
	}
	sheets = append(sheets, sheet.Sheet{Name: "Rateios", Table: dataframe.New(
		series.New(codes, series.String, LabelCode),
		series.New(titles, series.String, LabelTitle),
		series.New(bs, series.String, LabelBucket),
		series.New(payees, series.String, LabelPayee),
		series.New(percents, series.Float, LabelPercent),
		series.New(amounts(values), series.Float, LabelAmount),
	)})

	if len(r.Unregistered) == 0 {
		return sheets
	}
	n = len(r.Unregistered)
	codes, titles = make([]string, n), make([]string, n)
	rows := make([]int, n)
	values = make([]royalty.Money, n)
	for i, u := range r.Unregistered {
		codes[i], titles[i], rows[i], values[i] = u.Code, u.Title, u.Rows, u.Amount
	}
	return append(sheets, sheet.Sheet{Name: "Não Cadastradas", Table: dataframe.New(
		series.New(codes, series.String, LabelCode),
		series.New(titles, series.String, LabelTitle),
		series.New(rows, series.Int, LabelRows),
		series.New(amounts(values), series.Float, LabelShare),
	)})
}
