// Command selectorfmt is a thin demonstration harness for the selector
// library: it parses a selector list, optionally resolves it against a
// parent and unifies it against a second selector, and prints the result.
// It is deliberately not a Sass compiler frontend — the evaluator,
// stylesheet scanner, and `@use`/`@forward` loader never lived here.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gosass/selector/internal/config"
	"github.com/gosass/selector/internal/exitcode"
	"github.com/gosass/selector/internal/logger"
	"github.com/gosass/selector/internal/sassfn"
	"github.com/gosass/selector/internal/selector"
	"github.com/gosass/selector/internal/selparse"
	"github.com/gosass/selector/internal/selprint"
)

var helpText = `
Usage:
  selectorfmt [options]

Reads a selector list from -e, or from stdin if -e is absent.

Options:
  -e TEXT           The selector list to format (e.g. ".a, .b > .c")
  -parent TEXT      Resolve the input's "&" references against this selector
  -unify TEXT       Unify the (possibly parent-resolved) result against this selector
  -compressed       Print with the compressed output style, no extra whitespace
  -quiet            Suppress warnings; hard errors are always reported

Examples:
  selectorfmt -e ".a, &.b" -parent ".root"
  echo ".a > .b" | selectorfmt -unify ".b.c"
`

func main() {
	exitcode.Exit(run(os.Args[1:]))
}

func run(args []string) error {
	fs := flag.NewFlagSet("selectorfmt", flag.ContinueOnError)
	exprFlag := fs.String("e", "", "selector list to format")
	parentFlag := fs.String("parent", "", "resolve & against this selector")
	unifyFlag := fs.String("unify", "", "unify the result against this selector")
	compressed := fs.Bool("compressed", false, "use the compressed output style")
	quiet := fs.Bool("quiet", false, "suppress warnings")
	fs.Usage = func() { fmt.Fprint(os.Stderr, helpText) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := config.DefaultOptions()
	opts.Quiet = *quiet
	if *compressed {
		opts.OutputStyle = config.OutputStyleCompressed
	}

	text := *exprFlag
	if text == "" {
		contents, err := io.ReadAll(os.Stdin)
		if err != nil {
			return exitcode.Set(err, 1)
		}
		text = string(contents)
	}

	list, err := parseList(text, "<selector>", opts)
	if err != nil {
		return reportError(err)
	}

	if *parentFlag != "" {
		parent, err := parseList(*parentFlag, "<parent>", opts)
		if err != nil {
			return reportError(err)
		}
		list, err = selector.ResolveParents(list, parent, false)
		if err != nil {
			return reportError(err)
		}
	}

	if *unifyFlag != "" {
		other, err := parseList(*unifyFlag, "<unify>", opts)
		if err != nil {
			return reportError(err)
		}
		list, err = sassfn.Unify(list, other)
		if err != nil {
			return reportError(err)
		}
	}

	printOpts := selprint.Options{MinifyWhitespace: opts.OutputStyle == config.OutputStyleCompressed}
	if list == nil {
		fmt.Println()
		return nil
	}
	fmt.Println(selprint.Print(list, printOpts))
	return nil
}

func parseList(text, path string, opts config.Options) (*selector.List, error) {
	log := logger.NewStderrLog(logger.OutputOptions{
		IncludeSource: true,
		Color:         logger.ColorIfTerminal,
		LogLevel:      logLevel(opts),
	})
	source := logger.Source{Contents: text, PrettyPath: path}
	list, err := selparse.ParseSelectorList(log, source)
	log.AlmostDone()
	if err != nil {
		return nil, err
	}
	if log.HasErrors() {
		return nil, &selector.Error{Kind: selector.InvalidSelectorArgument, Text: "failed to parse " + path}
	}
	return list, nil
}

func logLevel(opts config.Options) logger.LogLevel {
	if opts.Quiet {
		return logger.LevelError
	}
	return logger.LevelInfo
}

func reportError(err error) error {
	fmt.Fprintln(os.Stderr, err.Error())
	if selErr, ok := err.(*selector.Error); ok {
		return exitcode.Set(selErr, 1)
	}
	return exitcode.Set(err, 1)
}
