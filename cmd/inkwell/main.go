// Package main is the entry point for the inkwell document tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/cmathes/inkwell/internal/codec"
	"github.com/cmathes/inkwell/internal/config"
	"github.com/cmathes/inkwell/internal/engine"
	"github.com/cmathes/inkwell/internal/logging"
	"github.com/cmathes/inkwell/internal/search"
	"github.com/cmathes/inkwell/internal/watch"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	ConfigPath string
	LogLevel   string
	Command    string
	Args       []string
}

func run() int {
	opts := parseFlags()

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultFileName
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading configuration: %v\n", err)
		return 1
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logging.SetLevel(level)

	switch opts.Command {
	case "inspect":
		return runInspect(cfg, opts.Args)
	case "plain":
		return runPlain(cfg, opts.Args)
	case "find":
		return runFind(cfg, opts.Args)
	case "convert":
		return runConvert(cfg, opts.Args)
	case "watch":
		return runWatch(cfg, opts.Args)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", opts.Command)
		flag.Usage()
		return 2
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Inkwell - styled text document tool\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inkwell [options] <command> [command options] <args>\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  inspect   Show document length, line count, and style runs\n")
		fmt.Fprintf(os.Stderr, "  plain     Print the document text without styling\n")
		fmt.Fprintf(os.Stderr, "  find      Search the document and report match positions\n")
		fmt.Fprintf(os.Stderr, "  convert   Re-encode a document in canonical form\n")
		fmt.Fprintf(os.Stderr, "  watch     Report external changes to a document file\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  inkwell inspect -runs notes.iw      Summarize a document\n")
		fmt.Fprintf(os.Stderr, "  inkwell plain notes.iw              Print its text\n")
		fmt.Fprintf(os.Stderr, "  inkwell find -all needle notes.iw   List every match\n")
		fmt.Fprintf(os.Stderr, "  inkwell convert notes.iw out.iw     Rewrite canonically\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Inkwell %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		switch opts.LogLevel {
		case "debug", "info", "warn", "error":
			// Valid
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			os.Exit(1)
		}
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	opts.Command = args[0]
	opts.Args = args[1:]
	return opts
}

// loadDocument decodes the file at path with the configured baseline font.
// Malformed header lines have already been reported through the logger.
func loadDocument(cfg *config.Config, path string) (*engine.Document, error) {
	doc, _, err := codec.DecodeFile(path, codec.WithBaseline(cfg.BaselineFont()))
	if err != nil {
		return nil, err
	}
	doc.SetTabWidth(cfg.TabWidth)
	logging.Default().Debug("document loaded",
		logging.FieldPath, path,
		logging.FieldDocument, doc.ID(),
		logging.FieldChars, doc.Len(),
		logging.FieldLines, doc.LineCount())
	return doc, nil
}

func runInspect(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	showRuns := fs.Bool("runs", false, "List every style run")
	showLines := fs.Bool("lines", false, "List line lengths")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: inkwell inspect [options] <file>\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	doc, err := loadDocument(cfg, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	runs := doc.Runs()
	fmt.Printf("Path:  %s\n", doc.Path())
	fmt.Printf("Name:  %s\n", doc.Name())
	fmt.Printf("Chars: %d\n", doc.Len())
	fmt.Printf("Lines: %d\n", doc.LineCount())
	fmt.Printf("Runs:  %d\n", len(runs))

	if *showRuns {
		fmt.Println()
		for _, run := range runs {
			fmt.Printf("  %s\n", run)
		}
	}

	if *showLines {
		fmt.Println()
		for i := 0; i < doc.LineCount(); i++ {
			text, err := doc.LineText(i)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			fmt.Printf("  %4d: %d chars\n", i+1, utf8.RuneCountInString(text))
		}
	}
	return 0
}

func runPlain(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("plain", flag.ExitOnError)
	out := fs.String("o", "", "Write to a file instead of stdout")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: inkwell plain [options] <file>\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	doc, err := loadDocument(cfg, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *out != "" {
		if err := os.WriteFile(*out, []byte(doc.Text()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Print(doc.Text())
	return 0
}

func runFind(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	all := fs.Bool("all", false, "List every occurrence")
	countOnly := fs.Bool("count", false, "Print only the number of occurrences")
	from := fs.Int("from", -1, "Start searching after this char offset")
	n := fs.Int("n", 1, "Number of successive matches to report")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: inkwell find [options] <needle> <file>\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}

	needle := fs.Arg(0)
	doc, err := loadDocument(cfg, fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	text := doc.Text()

	if *countOnly {
		fmt.Println(search.Count(text, needle))
		return 0
	}

	if *all {
		matches := doc.FindAll(needle)
		logging.Default().Debug("search finished",
			logging.FieldNeedle, needle,
			logging.FieldMatches, len(matches))
		if len(matches) == 0 {
			fmt.Fprintln(os.Stderr, "no matches")
			return 1
		}
		for _, m := range matches {
			printMatch(doc, m)
		}
		return 0
	}

	// Successive searches cycle through occurrences with wraparound.
	sess := search.NewSession(needle)
	if *from >= 0 {
		sess.MoveTo(*from)
	}
	for i := 0; i < *n; i++ {
		m, ok := sess.Next(text)
		if !ok {
			if i == 0 {
				fmt.Fprintln(os.Stderr, "no matches")
				return 1
			}
			break
		}
		printMatch(doc, m)
	}
	return 0
}

// printMatch reports a match as line:column plus the char offset range.
// Lines and columns are shown 1-based.
func printMatch(doc *engine.Document, m engine.Match) {
	p := doc.OffsetToPoint(m.Start)
	suffix := ""
	if m.Wrapped {
		suffix = " (wrapped)"
	}
	fmt.Printf("%d:%d offset [%d,%d)%s\n", p.Line+1, p.Column+1, m.Start, m.End, suffix)
}

func runConvert(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: inkwell convert <file> [output]\n")
	}
	_ = fs.Parse(args)
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return 2
	}

	doc, err := loadDocument(cfg, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if fs.NArg() == 2 {
		if err := codec.EncodeFile(doc, fs.Arg(1)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	if err := codec.Encode(os.Stdout, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runWatch(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: inkwell watch <file>\n")
	}
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	w, err := watch.New(fs.Arg(0), watch.WithDebounce(cfg.Debounce()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Close()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("Watching %s (interrupt to stop)\n", w.Path())
	for {
		select {
		case event, ok := <-w.Events():
			if !ok {
				return 0
			}
			fmt.Printf("%s  %-20s %s\n",
				event.Timestamp.Format(time.TimeOnly), event.Op, event.Path)
		case err, ok := <-w.Errors():
			if !ok {
				return 0
			}
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		case <-signals:
			return 0
		}
	}
}
