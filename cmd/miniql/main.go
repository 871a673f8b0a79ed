package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/miniql/miniql/executor"
	"github.com/miniql/miniql/internal/eventbus"
	"github.com/miniql/miniql/internal/otel"
	"github.com/miniql/miniql/language"
	"github.com/miniql/miniql/schema"
	"github.com/miniql/miniql/server"
)

const rootUsage = `miniql — minimal embeddable query engine & tools

USAGE:
  miniql <command> [flags]

COMMANDS:
  serve            Run the HTTP endpoint over an SDL schema and a JSON document
  exec             Execute one query against an SDL schema and a JSON document
  render           Print the normalized SDL of a schema
  help             Show help for any command
`

const serveUsage = `serve FLAGS:
  -schema <file>              SDL schema file (required)
  -data <file>                JSON document used as the root value
  -server.addr <addr>         HTTP listen address (default: :8080)
  -server.pretty              Pretty-print JSON responses
  -server.debug               Include debug blocks in error responses
  -server.timeout <duration>  Per-request timeout, e.g. 10s (default: 10s)
  -server.max-body <bytes>    Request body size limit (default: unlimited)
  -server.cors <origin>       Allowed CORS origin. Repeatable
  -otel.endpoint <addr>       OTLP collector endpoint
  -otel.service <name>        OpenTelemetry service name (default: miniql)
`

const execUsage = `exec FLAGS:
  -schema <file>  SDL schema file (required)
  -data <file>    JSON document used as the root value
  ARGS:
  <query>         Query text, e.g. '{ hello }'
`

const renderUsage = `render FLAGS:
  -schema <file>  SDL schema file (required)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("miniql", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "serve":
		return cmdServe(cmdArgs)
	case "exec":
		return cmdExec(cmdArgs)
	case "render":
		return cmdRender(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "serve":
		fmt.Print(serveUsage)
	case "exec":
		fmt.Print(execUsage)
	case "render":
		fmt.Print(renderUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdServe(args []string) error {
	schemaFile := ""
	dataFile := ""
	addr := ":8080"
	pretty := false
	debug := false
	timeout := 10 * time.Second
	maxBody := int64(0)
	otelEndpoint := ""
	otelService := "miniql"
	var corsOrigins stringListFlag

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "SDL schema file")
	fs.StringVar(&dataFile, "data", dataFile, "JSON document used as the root value")
	fs.StringVar(&addr, "server.addr", addr, "HTTP listen address")
	fs.BoolVar(&pretty, "server.pretty", pretty, "Pretty-print JSON responses")
	fs.BoolVar(&debug, "server.debug", debug, "Include debug blocks in error responses")
	fs.DurationVar(&timeout, "server.timeout", timeout, "Per-request timeout")
	fs.Int64Var(&maxBody, "server.max-body", maxBody, "Request body size limit")
	fs.Var(&corsOrigins, "server.cors", "Allowed CORS origin")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, serveUsage)
		return fmt.Errorf("-schema is required")
	}

	sch, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	root, err := loadData(dataFile)
	if err != nil {
		return err
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	var sopts []server.Option
	if pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if debug {
		sopts = append(sopts, server.WithDebug())
	}
	if timeout > 0 {
		sopts = append(sopts, server.WithTimeout(timeout))
	}
	if maxBody > 0 {
		sopts = append(sopts, server.WithMaxBodyBytes(maxBody))
	}
	if len(corsOrigins) > 0 {
		sopts = append(sopts, server.WithCORS(corsOrigins...))
	}
	h := server.New(sch, root, sopts...)

	mux := http.NewServeMux()
	mux.Handle("/query", h)

	log.Printf("miniql listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func cmdExec(args []string) error {
	schemaFile := ""
	dataFile := ""

	fs := flag.NewFlagSet("exec", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "SDL schema file")
	fs.StringVar(&dataFile, "data", dataFile, "JSON document used as the root value")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, execUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, execUsage)
		return fmt.Errorf("-schema is required")
	}
	if fs.NArg() != 1 {
		fmt.Fprint(os.Stderr, execUsage)
		return fmt.Errorf("exactly one query argument is required")
	}

	sch, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	root, err := loadData(dataFile)
	if err != nil {
		return err
	}

	op, selections, err := language.Parse(fs.Arg(0))
	if err != nil {
		return err
	}
	result, err := executor.NewExecutor(sch).Execute(context.Background(), op, selections, root)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func cmdRender(args []string) error {
	schemaFile := ""
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "SDL schema file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, renderUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, renderUsage)
		return fmt.Errorf("-schema is required")
	}
	sch, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	fmt.Print(schema.Render(sch))
	return nil
}

func loadSchema(path string) (*schema.Schema, error) {
	sdl, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	sch, err := schema.BuildFromSDL(string(sdl), nil)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return sch, nil
}

func loadData(path string) (any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("parse data: %w", err)
	}
	return root, nil
}
