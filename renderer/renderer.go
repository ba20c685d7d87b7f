package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/royalty/concat"
	"github.com/etnz/royalty/discount"
	"github.com/etnz/royalty/ecad"
	"github.com/etnz/royalty/normalize"
	"github.com/etnz/royalty/split"
	"github.com/etnz/royalty/withholding"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

// RenderECAD renders the summary of a statement extraction.
func RenderECAD(r *ecad.Result) string {
	data := struct {
		Summary ecad.Summary
		Dropped []ecad.LineError
	}{r.Summary(), r.Dropped}
	return renderTemplate("ecad", "ecad.md", nil, data)
}

// RenderSplit renders an allocation: totals, summaries, unregistered works
// and warnings.
func RenderSplit(r *split.Result) string {
	partials := map[string]string{
		"payees": "split_payees.md",
	}
	return renderTemplate("split", "split.md", partials, r)
}

// RenderWithholding renders a withholding, with its artist summary when s is
// not nil.
func RenderWithholding(r *withholding.Result, s *withholding.Summary) string {
	data := struct {
		*withholding.Result
		Artists *withholding.Summary
	}{r, s}
	return renderTemplate("withholding", "withholding.md", nil, data)
}

// RenderDiscount renders the totals of a discount.
func RenderDiscount(r *discount.Result, column string) string {
	data := struct {
		*discount.Result
		Column string
	}{r, column}
	return renderTemplate("discount", "discount.md", nil, data)
}

// ConcatReport describes a concatenation.
type ConcatReport struct {
	Files       []concat.Input
	Rows        int
	Columns     []string
	Column      string // aggregated column, empty if none
	Aggregation concat.Aggregation
	Value       decimal.Decimal
	By          string // grouping column, empty if none
	Groups      []concat.Group
}

// GroupLabel is the header of the grouped values.
func (r ConcatReport) GroupLabel() string { return concat.Label(r.Aggregation, r.Column) }

// GroupTotal sums the grouped values.
func (r ConcatReport) GroupTotal() decimal.Decimal { return concat.Total(r.Groups) }

// GroupMean averages the grouped values.
func (r ConcatReport) GroupMean() decimal.Decimal {
	if len(r.Groups) == 0 {
		return decimal.Zero
	}
	return r.GroupTotal().Div(decimal.NewFromInt(int64(len(r.Groups))))
}

// RenderConcat renders a concatenation.
func RenderConcat(r ConcatReport) string {
	return renderTemplate("concat", "concat.md", nil, r)
}

// RenderNormalize renders the totals of a normalized workbook.
func RenderNormalize(r *normalize.Result) string {
	return renderTemplate("normalize", "normalize.md", nil, r)
}

var funcs = template.FuncMap{
	"fixed": func(places int32, d decimal.Decimal) string { return d.StringFixed(places) },
	"join":  strings.Join,
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
