package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/tharagrowth/allocation"
	"github.com/tharagrowth/allocation/docs"
)

// values completes the flags taking one of a known set of values.
var values = map[string]complete.Predictor{
	"age":      predict.Set{"18-25", "26-35", "36-45", "46-55", "56-65", "65+"},
	"income":   predict.Set{"low", "lower-middle", "middle", "upper-middle", "high"},
	"risk":     predict.Set{"low", "medium", "high"},
	"goals":    predict.Set{"retirement", "income", "growth", "education", "preservation", "emergency"},
	"lang":     predict.Set{"en", "ar", "fr"},
	"currency": predict.Set{"USD", "AED", "SAR", "EUR", "GBP"},
	"from":     predict.Set{"USD", "AED", "SAR", "EUR", "GBP"},
	"to":       predict.Set{"USD", "AED", "SAR", "EUR", "GBP"},
}

func init() {
	var cats predict.Set
	for _, c := range allocation.Categories {
		cats = append(cats, c.String())
	}
	values["category"] = cats
	values["prefs"] = cats
}

// flags returns the completion of every flag of fs.
func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	out := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case values[f.Name] != nil:
			out[f.Name] = values[f.Name]
		case isBool(f):
			out[f.Name] = predict.Nothing
		default:
			out[f.Name] = predict.Something
		}
	})
	return out
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// Completion describes the tgr command line for shell completion.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(global),
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: flags(fs)}
		if c.Name() == "topic" {
			if topics, err := docs.GetAllTopics(); err == nil {
				sub.Args = predict.Set(topics)
			}
		}
		root.Sub[c.Name()] = sub
	}
	return root
}
