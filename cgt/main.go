package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/taxfolio/taxfolio/cmd"
)

func main() {
	// Shell completion, effective only when invoked by the completion
	// machinery (COMP_LINE set); a no-op otherwise.
	completer := &complete.Command{
		Sub: map[string]*complete.Command{
			"import": {Flags: map[string]complete.Predictor{
				"i": predict.Files("*.csv"),
			}},
			"gains": {Flags: map[string]complete.Predictor{
				"year": predict.Something,
				"o":    predict.Files("*.csv"),
			}},
			"summary": {Flags: map[string]complete.Predictor{
				"year": predict.Something,
			}},
		},
		Flags: map[string]complete.Predictor{
			"trades-file": predict.Files("*.csv"),
			"config":      predict.Files("*.yaml"),
		},
	}
	completer.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
