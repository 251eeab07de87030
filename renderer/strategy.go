package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/tharagrowth/allocation"
	"golang.org/x/text/language"
)

// Strategy renders the strategy selected for a profile, with the scores that
// led to it and the final weights.
func Strategy(s allocation.Strategy, w allocation.Weights, f allocation.Factors, lang language.Tag) string {
	p := newPrinter(lang)
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(p.T("title.strategy", p.strategy(s.Name)))
	doc.PlainText(p.T("rationale." + string(s.Name)))

	doc.H2(p.T("heading.allocation"))
	rows := [][]string{}
	for _, c := range allocation.Categories {
		if s.Weights.Of(c) == 0 && w.Of(c) == 0 {
			continue
		}
		rows = append(rows, []string{
			p.category(c),
			fmt.Sprintf("%d%%", s.Weights.Of(c)),
			fmt.Sprintf("%d%%", w.Of(c)),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{p.T("col.category"), p.strategy(s.Name), p.T("col.weight")},
		Rows:   rows,
	})

	doc.H2(p.T("heading.factors"))
	score := func(v float64) string { return fmt.Sprintf("%.2f", v) }
	doc.Table(md.TableSet{
		Header: []string{p.T("label.factor"), p.T("label.score")},
		Rows: [][]string{
			{p.T("label.age"), score(f.Age)},
			{p.T("label.risk"), score(f.Risk)},
			{p.T("label.goals"), score(f.Goals)},
			{p.T("label.income"), score(f.Income)},
			{p.T("label.budget"), score(f.Budget)},
			{p.T("label.combined"), score(f.Combined)},
			{p.T("label.capacity"), score(f.Capacity)},
		},
	})

	doc.BulletList(
		p.T("label.review", s.ReviewMonths),
		p.T("label.range", float64(s.MinReturn), float64(s.MaxReturn)),
	)
	return doc.String()
}
