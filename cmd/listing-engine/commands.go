package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"listing-engine/internal/config"
	"listing-engine/internal/engine"
	"listing-engine/internal/heuristic"
	"listing-engine/internal/record"
	"listing-engine/internal/schema"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitUsage      = 2
	exitUnresolved = 3
)

const usage = `usage: listing-engine <command> [flags]

commands:
  resolve     resolve a record and print its feed envelope
  check       lint a rule document against its schema
  classify    print the field formats of a schema document
  heuristics  list auto_generate rule types
`

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	logger := newLogger(cfg, stderr)

	switch args[0] {
	case "resolve":
		return runResolve(cfg, logger, args[1:], stdin, stdout, stderr)
	case "check":
		return runCheck(cfg, logger, args[1:], stdout, stderr)
	case "classify":
		return runClassify(args[1:], stdout, stderr)
	case "heuristics":
		return runHeuristics(stdout)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}
}

func runResolve(cfg *config.Config, logger *slog.Logger, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	rulesPath := fs.String("rules", "", "rule document (YAML or JSON)")
	schemaPath := fs.String("schema", "", "schema document; the configured schema directory or the default table otherwise")
	recordPath := fs.String("record", "-", "source record JSON file, - for stdin")
	category := fs.String("category", "", "category override")
	sku := fs.String("sku", "", "SKU")
	shop := fs.String("shop", "", "shop identifier")
	price := fs.Float64("price", 0, "base price")
	multiplier := fs.Float64("price-multiplier", 0, "price multiplier for calculate_price")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *rulesPath == "" {
		fmt.Fprintln(stderr, "resolve: -rules is required")
		return exitUsage
	}

	e, err := engine.New(cfg, logger)
	if err != nil {
		return fail(stderr, err)
	}

	data, err := os.ReadFile(*rulesPath)
	if err != nil {
		return fail(stderr, err)
	}

	rs, err := e.RegisterDocument(data)
	if err != nil {
		return fail(stderr, err)
	}

	key := rs.Key()
	if *category != "" {
		key.Category = *category
		e.Register(rs.WithKey(key))
	}

	if *schemaPath != "" {
		doc, err := schema.LoadFile(*schemaPath)
		if err != nil {
			return fail(stderr, err)
		}

		doc.Marketplace, doc.Country = key.Marketplace, key.Country
		e.ReplaceSchema(doc)
	}

	rec, err := readRecord(*recordPath, stdin)
	if err != nil {
		return fail(stderr, err)
	}

	rctx := heuristic.Context{SKU: *sku, ShopID: *shop, BasePrice: *price}
	if *multiplier != 0 {
		rctx.Values = map[string]any{heuristic.ValuePriceMultiplier: *multiplier}
	}

	res, err := e.Process(context.Background(), key, rec, rctx)
	if err != nil {
		return fail(stderr, err)
	}

	for _, d := range res.Diagnostics.Errors {
		logger.Error(d.Message, "code", d.Code, "attribute", d.AttributeID, "scope", d.Scope)
	}

	for _, d := range res.Diagnostics.Warnings {
		logger.Warn(d.Message, "code", d.Code, "attribute", d.AttributeID, "scope", d.Scope)
	}

	out, err := res.Envelope.JSON()
	if err != nil {
		return fail(stderr, err)
	}

	fmt.Fprintln(stdout, string(out))

	if !res.Success() {
		return exitUnresolved
	}

	return exitOK
}

func runCheck(cfg *config.Config, logger *slog.Logger, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)

	rulesPath := fs.String("rules", "", "rule document (YAML or JSON)")
	schemaPath := fs.String("schema", "", "schema document; the configured schema directory otherwise")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *rulesPath == "" {
		fmt.Fprintln(stderr, "check: -rules is required")
		return exitUsage
	}

	e, err := engine.New(cfg, logger)
	if err != nil {
		return fail(stderr, err)
	}

	data, err := os.ReadFile(*rulesPath)
	if err != nil {
		return fail(stderr, err)
	}

	rs, err := e.RegisterDocument(data)
	if err != nil {
		return fail(stderr, err)
	}

	if *schemaPath != "" {
		doc, err := schema.LoadFile(*schemaPath)
		if err != nil {
			return fail(stderr, err)
		}

		doc.Marketplace, doc.Country = rs.Key().Marketplace, rs.Key().Country
		e.ReplaceSchema(doc)
	}

	diags, err := e.Check(context.Background(), rs.Key())
	if err != nil {
		return fail(stderr, err)
	}

	for _, d := range diags.All() {
		fmt.Fprintln(stdout, d.String())
	}

	if err := diags.Err(); err != nil {
		return fail(stderr, err)
	}

	return exitOK
}

func readRecord(path string, stdin io.Reader) (record.Record, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	return record.Decode(data)
}

func runClassify(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	fs.SetOutput(stderr)

	schemaPath := fs.String("schema", "", "schema document (YAML or JSON)")
	category := fs.String("category", "", "category; all categories flattened when empty")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *schemaPath == "" {
		fmt.Fprintln(stderr, "classify: -schema is required")
		return exitUsage
	}

	doc, err := schema.LoadFile(*schemaPath)
	if err != nil {
		return fail(stderr, err)
	}

	cl := schema.Classify(doc)

	var table schema.Table

	switch {
	case *category == "":
		flat, diags := cl.Flatten()
		for _, w := range diags.Warnings {
			fmt.Fprintln(stderr, w.String())
		}

		table = flat
	case cl.HasCategory(*category):
		table = cl.ForCategory(*category)
	default:
		return fail(stderr, fmt.Errorf("schema has no category %q", *category))
	}

	out, err := json.MarshalIndent(table.Formats(), "", "  ")
	if err != nil {
		return fail(stderr, err)
	}

	fmt.Fprintln(stdout, string(out))

	return exitOK
}

func runHeuristics(stdout io.Writer) int {
	lib := heuristic.NewLibrary()

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTRATEGY\tDESCRIPTION")

	for _, name := range lib.Names() {
		entry, _ := lib.Entry(name)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, entry.Strategy, entry.Description)
	}

	if err := tw.Flush(); err != nil {
		return exitError
	}

	return exitOK
}

// newLogger writes text logs locally and JSON everywhere else.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsLocal() {
		return slog.New(slog.NewTextHandler(w, opts))
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, "error:", err)
	return exitError
}
