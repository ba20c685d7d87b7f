package cmd

import (
	"flag"

	"github.com/etnz/royalty/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors completes flag values by flag name.
var flagPredictors = map[string]complete.Predictor{
	"o":                  predict.Files("*"),
	"html":               predict.Files("*.html"),
	"registry":           predict.Files("*"),
	"config":             predict.Files("*.yaml"),
	"groups":             predict.Files("*.yaml"),
	"rates":              predict.Files("*.yaml"),
	"by":                 predict.Something,
	"env":                predict.Files("*.env"),
	"mode":               predict.Set{"writer", "publisher"},
	"format":             predict.Set{"domestic", "international", "ecad"},
	"agg":                predict.Set{"sum", "count", "mean", "min", "max"},
	"decimal":            predict.Set{".", ","},
	"encoding":           predict.Set{"auto", "utf-8", "latin1", "cp1252"},
	"log-level":          predict.Set{"debug", "info", "warn", "error"},
	"sep":                predict.Set{",", ";", `\t`, "|"},
	"column":             predict.Something,
	"description-column": predict.Something,
}

func flagPredictor(fl *flag.Flag) complete.Predictor {
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	if p, ok := flagPredictors[fl.Name]; ok {
		return p
	}
	return predict.Something
}

func flags(f *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) { m[fl.Name] = flagPredictor(fl) })
	return m
}

// Completion returns the shell completion of rbo, global flags being
// registered in global.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(global),
	}
	for _, c := range Commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{Flags: flags(f), Args: argsPredictor(c.Name())}
	}
	for _, help := range []string{"help", "flags", "commands"} {
		root.Sub[help] = &complete.Command{}
	}
	return root
}

func argsPredictor(command string) complete.Predictor {
	switch command {
	case "ecad":
		return predict.Files("*.txt")
	case "topic":
		return predict.Set(docs.Names())
	}
	return predict.Files("*")
}
