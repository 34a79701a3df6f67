// Command lexgen builds lexers from rule files and inspects the automata
// behind them.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/muesli/termenv"
)

type cli struct {
	LogLevel string `name:"log-level" enum:"debug,info,warn,error" default:"warn" env:"LEXGEN_LOG_LEVEL" help:"Diagnostic log level (${enum})"`

	Tokenize tokenizeCmd `cmd:"" help:"Split input into tokens using a rule file"`
	Dot      dotCmd      `cmd:"" help:"Write the automaton of a rule file as Graphviz"`
	Match    matchCmd    `cmd:"" help:"Test words against a single pattern"`
	Equiv    equivCmd    `cmd:"" help:"Check whether two patterns match the same words"`
}

// app carries what every command needs.
type app struct {
	stdin  io.Reader
	stdout *termenv.Output
	log    *slog.Logger
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...)
}

func (a *app) style(s, color string) string {
	return a.stdout.String(s).Foreground(a.stdout.Color(color)).String()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run parses args and executes the selected command, returning the
// process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, opts ...termenv.OutputOption) int {
	var params cli
	exit := -1
	parser, err := kong.New(&params,
		kong.Name("lexgen"),
		kong.Description("Maximal-munch lexer generator built on Thompson NFAs and minimized DFAs."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exit = code }),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	ctx, err := parser.Parse(args)
	if exit >= 0 {
		return exit
	}
	if err != nil {
		fmt.Fprintf(stderr, "lexgen: %v\n", err)
		return 2
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(params.LogLevel)); err != nil {
		fmt.Fprintf(stderr, "lexgen: %v\n", err)
		return 2
	}
	a := &app{
		stdin:  stdin,
		stdout: termenv.NewOutput(stdout, opts...),
		log:    slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}
	if err := ctx.Run(a); err != nil {
		fmt.Fprintf(stderr, "lexgen: %v\n", err)
		return 1
	}
	return 0
}
