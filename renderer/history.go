package renderer

import (
	"bytes"
	"time"

	md "github.com/nao1215/markdown"
	"github.com/tharagrowth/allocation/store"
	"golang.org/x/text/language"
)

// History renders the list of saved recommendations, most recent first.
func History(list []store.Summary, lang language.Tag) string {
	p := newPrinter(lang)
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(p.T("title.history"))
	if len(list) == 0 {
		doc.PlainText(p.T("msg.empty"))
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{p.T("col.id"), p.T("col.date"), p.T("label.strategy"), p.T("label.segment"), p.T("label.budget"), p.T("label.allocated")},
		Rows:   [][]string{},
	}
	for _, s := range list {
		table.Rows = append(table.Rows, []string{
			s.ID,
			s.SavedAt.UTC().Format(time.DateTime),
			p.strategy(s.Strategy),
			s.Segment,
			s.Budget.String(),
			s.Allocated.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}
