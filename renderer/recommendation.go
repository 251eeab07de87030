package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/tharagrowth/allocation"
	"golang.org/x/text/language"
)

// Recommendation renders a portfolio recommendation as markdown.
func Recommendation(r *allocation.PortfolioResult, lang language.Tag) string {
	p := newPrinter(lang)
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(p.T("title.recommendation", r.ID))

	doc.H2(p.T("heading.summary"))
	s := r.Strategy
	doc.Table(md.TableSet{
		Header: []string{"", ""},
		Rows: [][]string{
			{p.T("label.strategy"), p.strategy(s.Name)},
			{p.T("label.segment"), r.Segment},
			{p.T("label.budget"), r.Budget.String()},
			{p.T("label.allocated"), r.TotalAllocated.String()},
			{p.T("label.remaining"), r.Remaining.String()},
			{p.T("label.return"), fmt.Sprintf("%s (%s)", r.ExpectedReturn, p.T("label.range", float64(s.MinReturn), float64(s.MaxReturn)))},
			{p.T("label.risk"), p.risk(r.Risk)},
		},
	})

	if !r.Feasible() {
		doc.PlainText(p.T("msg.infeasible"))
	}

	doc.H2(p.T("heading.allocation"))
	rows := [][]string{}
	for _, ca := range r.Categories {
		if ca.Weight == 0 {
			continue
		}
		rows = append(rows, []string{
			p.category(ca.Category),
			fmt.Sprintf("%d%%", ca.Weight),
			ca.SubBudget.String(),
			ca.Allocated.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{p.T("col.category"), p.T("col.weight"), p.T("col.subbudget"), p.T("label.allocated")},
		Rows:   rows,
	})

	if r.Feasible() {
		doc.H2(p.T("heading.items"))
		rows = [][]string{}
		for _, it := range r.Items {
			units := "-"
			if !it.Units.IsZero() {
				units = it.Units.String()
			}
			rows = append(rows, []string{
				p.category(it.Category),
				p.name(it.Instrument),
				units,
				it.Amount.String(),
				it.ExpectedReturn.String(),
				p.risk(it.Risk),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{p.T("col.category"), p.T("col.instrument"), p.T("col.units"), p.T("col.amount"), p.T("label.return"), p.T("label.risk")},
			Rows:   rows,
		})
		if r.Remaining.IsPositive() {
			doc.PlainText(p.T("msg.unallocated", r.Remaining.String(), r.Budget.String()))
		}

		var details []string
		for _, it := range r.Items {
			if d := it.Instrument.LocalDescription(p.code()); d != "" {
				details = append(details, fmt.Sprintf("%s: %s", md.Bold(p.name(it.Instrument)), d))
			}
		}
		if len(details) > 0 {
			doc.H2(p.T("heading.details"))
			doc.BulletList(details...)
		}
	}

	doc.H2(p.T("heading.rationale"))
	doc.PlainText(p.T("rationale." + string(s.Name)))

	doc.H2(p.T("heading.tips"))
	doc.BulletList(
		p.T("tip."+string(s.Name)),
		p.T("tip.review", s.ReviewMonths),
	)

	return doc.String()
}
