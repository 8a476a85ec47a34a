package cmd

import (
	"flag"

	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var inputFiles = predict.Files("*")

// flagPredictors holds the predictors of the flags that are not free text.
var flagPredictors = map[string]complete.Predictor{
	"config": predict.Files("*.toml"),
	"o":      predict.Files("*.csv"),
	"status": statusPredictor(),
	"log-level": predict.Set{
		"debug", "info", "warn", "error",
	},
}

func statusPredictor() predict.Set {
	var set predict.Set
	for _, s := range clientbook.Statuses {
		set = append(set, s.String())
	}
	return set
}

// Completion returns the shell completion of cbk.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(flag.CommandLine),
	}
	for _, cmds := range Commands {
		for _, c := range cmds {
			f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(f)
			sub := &complete.Command{Flags: predictFlags(f), Args: inputFiles}
			if c.Name() == "topic" {
				topics, _ := docs.GetAllTopics()
				sub.Args = predict.Set(topics)
			}
			root.Sub[c.Name()] = sub
		}
	}
	return root
}

func predictFlags(f *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		if p, ok := flagPredictors[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}
