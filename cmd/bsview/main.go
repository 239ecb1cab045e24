package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bytestruct/codec"
	"github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/field"
	"github.com/wippyai/bytestruct/schema"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))
)

type options struct {
	witFile  string
	typeName string
	dataFile string
	order    field.Order
	offset   int
	count    int
	workers  int
	list     bool
}

func main() {
	var (
		witFile     = flag.String("wit", "", "Path to WIT resolve JSON (wasm-tools component wit --json)")
		typeName    = flag.String("type", "", "Name of the WIT record to decode")
		dataFile    = flag.String("file", "", "Path to binary data file")
		orderStr    = flag.String("order", "le", "Byte order: le or be")
		offset      = flag.Int("offset", 0, "Byte offset of the first record")
		count       = flag.Int("count", 0, "Number of records to decode (0 = all whole records)")
		workers     = flag.Int("workers", runtime.NumCPU(), "Parallel decode workers")
		list        = flag.Bool("list", false, "List fixed-layout types and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *witFile == "" || (!*list && (*typeName == "" || *dataFile == "")) {
		fmt.Fprintln(os.Stderr, "Usage: bsview -wit <resolve.json> -type <name> -file <data.bin> [-order le|be] [-offset n] [-count n]")
		fmt.Fprintln(os.Stderr, "       bsview -wit <resolve.json> -list")
		fmt.Fprintln(os.Stderr, "       bsview -wit <resolve.json> -type <name> -file <data.bin> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer l.Sync()
		schema.SetLogger(l)
		codec.SetLogger(l)
	}

	order, err := field.ParseOrder(*orderStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := options{
		witFile:  *witFile,
		typeName: *typeName,
		dataFile: *dataFile,
		order:    order,
		offset:   *offset,
		count:    *count,
		workers:  *workers,
		list:     *list,
	}

	if err := run(opts, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, interactive bool) error {
	f, err := os.Open(opts.witFile)
	if err != nil {
		return errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "open WIT file")
	}
	res, err := schema.LoadWIT(f)
	f.Close()
	if err != nil {
		return err
	}

	if opts.list {
		for _, name := range schema.WITNames(res) {
			fmt.Println(name)
		}
		return nil
	}

	td, err := schema.LookupWIT(res, opts.typeName)
	if err != nil {
		return err
	}
	layout, err := layoutFor(td, opts.order)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.dataFile)
	if err != nil {
		return errors.Wrap(errors.PhaseDecode, errors.KindInvalidInput, err, "read data file")
	}
	if opts.offset < 0 || opts.offset > len(data) {
		return fmt.Errorf("offset %d outside %d-byte file", opts.offset, len(data))
	}
	data = data[opts.offset:]

	n, err := recordCount(len(data), layout.ByteLen(), opts.count)
	if err != nil {
		return err
	}
	records, err := decodeAll(context.Background(), layout, data, opts.offset, n, opts.workers)
	if err != nil {
		return err
	}

	if interactive {
		return runInteractive(opts.dataFile, layout, records)
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	printRecords(layout, records, styled)
	return nil
}

func printRecords(layout *schema.Struct, records []record, styled bool) {
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	fmt.Println(render(headerStyle, layout.Describe()))
	fmt.Println()

	names := columns(layout)
	for _, r := range records {
		fmt.Printf("%s %s\n",
			render(offsetStyle, fmt.Sprintf("#%d @%d", r.index, r.offset)),
			strings.Join(pairs(names, cells(layout, r.value), func(s string) string { return render(nameStyle, s) }), " "))
	}
}

func pairs(names, values []string, style func(string) string) []string {
	out := make([]string, len(names))
	for i := range names {
		out[i] = style(names[i]) + "=" + values[i]
	}
	return out
}
