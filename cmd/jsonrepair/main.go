// Command jsonrepair repairs malformed or truncated JSON read from a
// file, stdin, or a whole directory of files, and optionally evaluates
// an expression or re-emits the result as MessagePack.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/expr-lang/expr"
	"github.com/mattn/go-isatty"
	"github.com/segmentio/ksuid"

	"github.com/bingoohuang/jsonrepair"
)

var (
	version = "0.1.0"
	tag     = "jsonrepair - JSON salvage tool " + version
	usage   = `usage: jsonrepair [options]
eg.: jsonrepair                        read and repair stdin, write to stdout
     jsonrepair -i infile              repair a file
     jsonrepair -i infile -o outfile   repair a file to another file
     jsonrepair -batch dir             repair every file in dir independently
     jsonrepair -e 'a.b' -i infile     repair, decode, then evaluate an expression
options:
     -i infile    read input from infile instead of stdin
     -o outfile   write output to outfile instead of stdout
     -batch dir   repair every regular file in dir, reporting one line per file
     -e expr      evaluate expr (github.com/expr-lang/expr syntax) against the
                  repaired, decoded document and print the result
     -m           print the repaired document re-encoded as MessagePack
     -ascii       keep \uXXXX escapes as written (default)
     -no-ascii    rewrite \uXXXX escapes of non-ASCII runes as literal UTF-8
     -omit-empty  delete keys that lost their value instead of writing ""
     -omit-incomplete-strings
                  delete keys whose string value is still open at EOF
     -log         write one diagnostic line per repair decision to stderr
     -n           disable coloured output even on a terminal
     -V           print version and exit
     -h           print this message and exit`
)

type cliArgs struct {
	infile, outfile, batchDir, exprStr string
	msgpack, ensureASCII, noColor      bool
	omitEmpty, omitIncomplete, logging bool
}

func parseArgs() cliArgs {
	a := cliArgs{ensureASCII: true}

	fail := func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, "%s\n", tag)
		if format != "" {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
		fmt.Fprintf(os.Stderr, "%s\n", usage)
		os.Exit(1)
	}

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-i":
			i++
			if i >= len(args) {
				fail("argument missing after -i")
			}
			a.infile = args[i]
		case "-o":
			i++
			if i >= len(args) {
				fail("argument missing after -o")
			}
			a.outfile = args[i]
		case "-batch":
			i++
			if i >= len(args) {
				fail("argument missing after -batch")
			}
			a.batchDir = args[i]
		case "-e":
			i++
			if i >= len(args) {
				fail("argument missing after -e")
			}
			a.exprStr = args[i]
		case "-m":
			a.msgpack = true
		case "-ascii":
			a.ensureASCII = true
		case "-no-ascii":
			a.ensureASCII = false
		case "-omit-empty":
			a.omitEmpty = true
		case "-omit-incomplete-strings":
			a.omitIncomplete = true
		case "-log":
			a.logging = true
		case "-n":
			a.noColor = true
		case "-V", "--version":
			fmt.Println(tag)
			os.Exit(0)
		case "-h", "--help", "-?":
			fmt.Println(tag)
			fmt.Println(usage)
			os.Exit(0)
		default:
			fail("unknown argument: %q", args[i])
		}
	}
	return a
}

func (a cliArgs) options() []jsonrepair.Option {
	var opts []jsonrepair.Option
	opts = append(opts, jsonrepair.WithEnsureASCII(a.ensureASCII))
	if a.omitEmpty {
		opts = append(opts, jsonrepair.WithOmitEmptyValues())
	}
	if a.omitIncomplete {
		opts = append(opts, jsonrepair.WithOmitIncompleteStrings())
	}
	return opts
}

func main() {
	a := parseArgs()

	if a.batchDir != "" {
		runBatch(a)
		return
	}

	input, err := readInput(a.infile)
	if err != nil {
		fail(err)
	}

	opts := a.options()
	if a.logging {
		opts = append(opts, jsonrepair.WithLogger(jsonrepair.NewStderrLogger()))
	}

	var output []byte
	switch {
	case a.msgpack:
		output, err = jsonrepair.EncodeMsgpack(string(input), opts...)
	case a.exprStr != "":
		output, err = runExpr(string(input), a.exprStr, opts)
	default:
		var repaired string
		repaired, err = jsonrepair.Repair(string(input), opts...)
		output = []byte(repaired)
	}
	if err != nil {
		fail(err)
	}

	writeOutput(a, output)
}

func runExpr(input, exprStr string, opts []jsonrepair.Option) ([]byte, error) {
	v, err := jsonrepair.Decode(input, opts...)
	if err != nil {
		return nil, err
	}
	env, _ := v.(map[string]any)
	program, err := expr.Compile(exprStr, expr.Env(env))
	if err != nil {
		return nil, err
	}
	result, err := expr.Run(program, env)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("%v", result)), nil
}

func runBatch(a cliArgs) {
	entries, err := os.ReadDir(a.batchDir)
	if err != nil {
		fail(err)
	}

	opts := a.options()
	failures := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(a.batchDir, entry.Name())
		id := ksuid.New()

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%s] %s read error: %v\n", id, entry.Name(), err)
			failures++
			continue
		}

		fileOpts := append([]jsonrepair.Option(nil), opts...)
		if a.logging {
			fileOpts = append(fileOpts, jsonrepair.WithLogger(batchLogger{id: id}))
		}

		repaired, err := jsonrepair.Repair(string(data), fileOpts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%s] %s repair error: %v\n", id, entry.Name(), err)
			failures++
			continue
		}
		fmt.Printf("[%s] %s: %d -> %d bytes\n", id, entry.Name(), len(data), len(repaired))
	}

	if failures > 0 {
		os.Exit(1)
	}
}

// batchLogger tags every event with the KSUID minted for one file in a
// batch run, so stderr output from different files of one run can be
// told apart.
type batchLogger struct{ id ksuid.KSUID }

func (b batchLogger) LogEvent(event jsonrepair.Event, position int, ctx string) {
	fmt.Fprintf(os.Stderr, "[%s] %-28s pos=%-6d %s\n", b.id, event, position, ctx)
}

func readInput(infile string) ([]byte, error) {
	if infile == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(infile)
}

func writeOutput(a cliArgs, data []byte) {
	f := os.Stdout
	if a.outfile != "" {
		var err error
		f, err = os.Create(a.outfile)
		if err != nil {
			fail(err)
		}
		defer f.Close()
	}

	if !a.noColor && !a.msgpack && isatty.IsTerminal(f.Fd()) {
		data = colorize(data)
	}
	f.Write(data)
	if len(data) == 0 || data[len(data)-1] != '\n' {
		fmt.Fprintln(f)
	}
}

// ANSI colour table, disabled on Windows exactly as the teacher's CLI
// disables its own.
var (
	colorReset  = "\033[0m"
	colorString = "\033[32m"
)

func init() {
	if runtime.GOOS == "windows" {
		colorReset = ""
		colorString = ""
	}
}

// colorize wraps the whole payload in the string colour: full syntax
// highlighting is out of scope for this CLI, but a single colour band
// still distinguishes jsonrepair output from surrounding shell noise.
func colorize(data []byte) []byte {
	if colorString == "" {
		return data
	}
	out := make([]byte, 0, len(data)+len(colorString)+len(colorReset))
	out = append(out, colorString...)
	out = append(out, data...)
	out = append(out, colorReset...)
	return out
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
