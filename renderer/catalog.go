package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
	"github.com/tharagrowth/allocation"
	"golang.org/x/text/language"
)

// Catalog renders the instruments of a catalog, grouped by category.
func Catalog(c *allocation.Catalog, lang language.Tag) string {
	p := newPrinter(lang)
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(p.T("title.catalog"))
	if c.Len() == 0 {
		doc.PlainText(p.T("msg.empty"))
		return doc.String()
	}
	for _, cat := range allocation.Categories {
		list := c.Instruments(cat)
		if len(list) == 0 {
			continue
		}
		doc.H2(p.category(cat))
		rows := [][]string{}
		for _, in := range list {
			price := "-"
			if in.UnitPrice.IsPositive() {
				price = in.UnitPrice.String()
			}
			rows = append(rows, []string{
				in.ID,
				p.name(in),
				price,
				in.EntryPrice().String(),
				in.ExpectedReturn.String(),
				p.risk(in.RiskBucket()),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{p.T("col.id"), p.T("col.instrument"), p.T("col.price"), p.T("col.minimum"), p.T("label.return"), p.T("label.risk")},
			Rows:   rows,
		})
	}
	return doc.String()
}
