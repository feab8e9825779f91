/*
Weirgen builds an LR parser table from a rule file and prints it.

It reads a TOML weirfile describing a grammar (and, optionally, lexer scan
rules), builds the requested flavor of ACTION/GOTO table, and writes the
rendered table to stdout.

Usage:

	weirgen [flags]

The flags are:

	-r, --rules FILE
		The weirfile to load the grammar from. Required.

	-t, --table {slr1,lr1,lalr1}
		Which table construction to run. Defaults to "lalr1".

	-f, --format {text,dot}
		How to render the built table: an aligned ACTION/GOTO grid, or a
		Graphviz dot graph of the underlying state machine. Defaults to
		"text".

	-v, --verbose
		Log build progress (grammar size, state count) to stderr.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/weir/diag"
	"github.com/dekarrin/weir/lr"
	"github.com/dekarrin/weir/weirfile"
)

const (
	ExitSuccess = iota
	ExitUsageError
	ExitLoadError
	ExitBuildError
)

var (
	returnCode int = ExitSuccess

	flagRules   *string = pflag.StringP("rules", "r", "", "The weirfile to load the grammar from")
	flagTable   *string = pflag.StringP("table", "t", "lalr1", "Which table construction to run: slr1, lr1, or lalr1")
	flagFormat  *string = pflag.StringP("format", "f", "text", "How to render the table: text or dot")
	flagVerbose *bool   = pflag.BoolP("verbose", "v", false, "Log build progress to stderr")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagRules == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --rules is required")
		returnCode = ExitUsageError
		return
	}

	level := diag.LevelWarn
	if *flagVerbose {
		level = diag.LevelInfo
	}
	log := diag.New("weirgen: ").AtLevel(level).With(diag.Field{Key: "table", Value: *flagTable})
	build := log.BuildID()

	if *flagFormat != "text" && *flagFormat != "dot" {
		fmt.Fprintf(os.Stderr, "ERROR: unknown format %q\n", *flagFormat)
		returnCode = ExitUsageError
		return
	}

	log.Infof("loading rules from %s", *flagRules)
	doc, err := weirfile.Load(*flagRules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitLoadError
		return
	}

	g, err := doc.Grammar()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitLoadError
		return
	}

	log.Infof("grammar loaded: %d nonterminals, %d terminals", len(g.NonTerminals()), len(g.Terminals()))

	var tbl *lr.Table
	switch *flagTable {
	case "slr1":
		tbl, err = lr.SLR1Table(g)
	case "lr1":
		tbl, err = lr.LR1Table(g)
	case "lalr1":
		tbl, err = lr.LALR1Table(g)
	default:
		fmt.Fprintf(os.Stderr, "ERROR: unknown table kind %q\n", *flagTable)
		returnCode = ExitUsageError
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitBuildError
		return
	}

	log.Infof("built %s table with %d states", tbl.Kind, len(tbl.Action))
	fmt.Printf("# build %s\n", build)
	switch *flagFormat {
	case "dot":
		fmt.Print(tbl.DotString())
	default:
		fmt.Print(tbl.String())
	}
}
