// Command jsonpatch applies, checks and generates RFC 6902 JSON Patch
// documents.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/brunoga/jsonpatch/internal/version"
)

type (
	cmd struct {
		Format  string `enum:"auto,json,yaml" default:"auto" env:"JSONPATCH_FORMAT" help:"Input and output format. auto picks YAML for .yaml and .yml files."`
		Verbose bool   `short:"v" env:"JSONPATCH_VERBOSE" help:"Log every applied operation."`

		Version struct{} `cmd:"" help:"Show version."`
		Apply   cmdApply `cmd:"" help:"Apply a patch to a document and write the result to stdout."`
		Test    cmdTest  `cmd:"" help:"Check that a patch applies to a document. Exits with status 1 if it does not."`
		Diff    cmdDiff  `cmd:"" help:"Write the patch that turns one document into another."`
	}
	cmdApply struct {
		Patch      string `required:"" short:"p" type:"existingfile" help:"Patch file."`
		Pretty     bool   `help:"Indent JSON output."`
		EndOfArray bool   `name:"end-of-array" help:"Accept the \"-\" token to append to arrays."`
		Document   string `arg:"" optional:"" type:"path" help:"Document to patch. Read from stdin when omitted."`
	}
	cmdTest struct {
		Patch      string `required:"" short:"p" type:"existingfile" help:"Patch file."`
		EndOfArray bool   `name:"end-of-array" help:"Accept the \"-\" token to append to arrays."`
		Document   string `arg:"" optional:"" type:"path" help:"Document to check. Read from stdin when omitted."`
	}
	cmdDiff struct {
		From        string `arg:"" type:"existingfile" help:"Source document."`
		To          string `arg:"" type:"existingfile" help:"Target document."`
		Pretty      bool   `help:"Indent JSON output."`
		Factorize   bool   `help:"Emit copy and move operations for values found elsewhere in the source."`
		Invertible  bool   `help:"Precede every remove and replace with a test of the old value."`
		Rationalize bool   `help:"Replace whole containers when that is shorter."`
		LCS         bool   `name:"lcs" help:"Compare arrays by longest common subsequence."`
	}
)

var errorPrefix = color.New(color.FgRed, color.Bold)

func main() {
	os.Exit(doMain(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]))
}

func doMain(stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	var c cmd
	parser, err := kong.New(&c,
		kong.Name("jsonpatch"),
		kong.Description("RFC 6902 JSON Patch tool"),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		log.Fatalf("Error creating parser: %v", err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		_, _ = errorPrefix.Fprint(stderr, "error: ")
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	e := &env{
		stdin:  stdin,
		stdout: stdout,
		format: c.Format,
		log:    newLogger(stderr, c.Verbose),
	}
	switch strings.Fields(ctx.Command())[0] {
	case "version":
		_, _ = fmt.Fprintf(stdout, "jsonpatch: %s\n", version.Version)
		return 0
	case "apply":
		err = e.apply(c.Apply)
	case "test":
		err = e.test(c.Test)
	case "diff":
		err = e.diff(c.Diff)
	default:
		panic("unreachable")
	}
	if err != nil {
		_, _ = errorPrefix.Fprint(stderr, "error: ")
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// newLogger returns the logger handed to the patcher. Failures are already
// reported on stderr, so without --verbose nothing is logged. Verbose mode
// uses a zap development logger at debug level, where the V(1) records of
// every applied operation land.
func newLogger(w io.Writer, verbose bool) logr.Logger {
	if !verbose {
		return logr.Discard()
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.DebugLevel)
	return zapr.NewLogger(zap.New(core))
}
