// Command permtreectl is a demonstration CLI around pkg/permtree: goptions-
// based verb dispatch, ANSI/isatty-aware colorized output, and a dyff-
// backed structural diff subcommand.
//
// It is not part of the core evaluator's contract (see pkg/permtree's
// package doc): the core never imports this package.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"github.com/mattn/go-isatty"
	"github.com/starkandwayne/goutils/ansi"
	"github.com/voxelbrain/goptions"

	"github.com/ordermind/logical-permissions-go/internal/config"
	"github.com/ordermind/logical-permissions-go/internal/loader"
	"github.com/ordermind/logical-permissions-go/internal/log"
	"github.com/ordermind/logical-permissions-go/pkg/permtree"
)

var printfStdOut = func(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}

var getopts = func(o interface{}) {
	if err := goptions.Parse(o); err != nil {
		goptions.PrintHelp()
		os.Exit(1)
	}
}

var exit = func(code int) { os.Exit(code) }

type checkOpts struct {
	Context  string             `goptions:"--context, description='Path to a YAML/JSON context file'"`
	Config   string             `goptions:"--config, description='Path to a config YAML file naming examples/ backends to wire'"`
	NoBypass bool               `goptions:"--no-bypass, description='Evaluate with allow_bypass=false'"`
	Debug    bool               `goptions:"--debug, description='Enable dispatch-trace debug logging'"`
	Tree     goptions.Remainder `goptions:"description='Permission tree file to evaluate'"`
}

type validateOpts struct {
	Tree goptions.Remainder `goptions:"description='Permission tree file to validate'"`
}

type diffOpts struct {
	Files goptions.Remainder `goptions:"description='Two permission tree files to diff'"`
}

func main() {
	var options struct {
		Color    string `goptions:"--color, description='Control color output (on/off/auto, default: auto)'"`
		Action   goptions.Verbs
		Check    checkOpts    `goptions:"check"`
		Validate validateOpts `goptions:"validate"`
		Diff     diffOpts     `goptions:"diff"`
	}
	getopts(&options)

	shouldColor := isatty.IsTerminal(os.Stdout.Fd())
	switch options.Color {
	case "on":
		shouldColor = true
	case "off":
		shouldColor = false
	}
	ansi.Color(shouldColor)

	switch options.Action {
	case "check":
		runCheck(options.Check)
	case "validate":
		runValidate(options.Validate)
	case "diff":
		runDiff(options.Diff)
	default:
		goptions.PrintHelp()
		exit(1)
	}
}

func loadTreeFile(path string) (permtree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return permtree.Node{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if node, err := loader.ParseJSON(data); err == nil {
		return node, nil
	}
	return loader.ParseYAML(data)
}

func loadContextFile(path string) (permtree.Context, error) {
	if path == "" {
		return permtree.Context{}, nil
	}
	node, err := loadTreeFile(path)
	if err != nil {
		return nil, err
	}
	raw, ok := loader.ToInterface(node).(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: context document root must be a map", path)
	}
	return permtree.Context(raw), nil
}

func runCheck(opts checkOpts) {
	if len(opts.Tree) != 1 {
		printfStdOut(ansi.Sprintf("@R{error}: check requires exactly one tree file\n"))
		exit(2)
		return
	}
	if opts.Debug {
		log.DebugOn = true
	}

	tree, err := loadTreeFile(opts.Tree[0])
	if err != nil {
		printfStdOut(ansi.Sprintf("@R{error}: %s\n", err))
		exit(2)
		return
	}

	permCtx, err := loadContextFile(opts.Context)
	if err != nil {
		printfStdOut(ansi.Sprintf("@R{error}: %s\n", err))
		exit(2)
		return
	}

	cfg := config.Default()
	if opts.Config != "" {
		cfg, err = config.NewLoader().LoadFile(opts.Config)
		if err != nil {
			printfStdOut(ansi.Sprintf("@R{error}: %s\n", err))
			exit(2)
			return
		}
	}

	ev := permtree.NewEvaluator()
	registerStubTypes(ev, tree)
	if err := wireConfiguredBackends(ev, cfg); err != nil {
		printfStdOut(ansi.Sprintf("@R{error}: %s\n", err))
		exit(2)
		return
	}

	granted, err := checkAccess(ev, cfg, tree, permCtx, !opts.NoBypass)
	if err != nil {
		printfStdOut(ansi.Sprintf("@R{error}: %s\n", err))
		exit(2)
		return
	}

	if granted {
		printfStdOut(ansi.Sprintf("@G{granted}\n"))
	} else {
		printfStdOut(ansi.Sprintf("@R{denied}\n"))
		exit(1)
	}
}

func runValidate(opts validateOpts) {
	if len(opts.Tree) != 1 {
		printfStdOut(ansi.Sprintf("@R{error}: validate requires exactly one tree file\n"))
		exit(2)
		return
	}

	tree, err := loadTreeFile(opts.Tree[0])
	if err != nil {
		printfStdOut(ansi.Sprintf("@R{error}: %s\n", err))
		exit(2)
		return
	}

	violations := validateTree(tree)
	if len(violations) == 0 {
		printfStdOut(ansi.Sprintf("@G{valid}\n"))
		return
	}
	for _, v := range violations {
		printfStdOut(ansi.Sprintf("@R{violation}: %s\n", v))
	}
	exit(1)
}

func runDiff(opts diffOpts) {
	if len(opts.Files) != 2 {
		printfStdOut(ansi.Sprintf("@R{error}: diff requires exactly two files\n"))
		exit(2)
		return
	}

	from, to, err := ytbx.LoadFiles(opts.Files[0], opts.Files[1])
	if err != nil {
		printfStdOut(ansi.Sprintf("@R{error}: %s\n", err))
		exit(2)
		return
	}

	report, err := dyff.CompareInputFiles(from, to)
	if err != nil {
		printfStdOut(ansi.Sprintf("@R{error}: %s\n", err))
		exit(2)
		return
	}

	writer := &dyff.HumanReport{
		Report:       report,
		NoTableStyle: false,
		OmitHeader:   true,
	}

	var buf bytes.Buffer
	out := bufio.NewWriter(&buf)
	if err := writer.WriteReport(out); err != nil {
		printfStdOut(ansi.Sprintf("@R{error}: %s\n", err))
		exit(2)
		return
	}
	out.Flush()

	printfStdOut("%s", buf.String())
	if len(report.Diffs) > 0 {
		exit(1)
	}
}
