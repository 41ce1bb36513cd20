package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmpexport"
	"github.com/benjaminschreck/go-dmpexport/pkg/lookup"
)

var version = "0.1.0"

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel string `help:"Log level: debug|info|warn|error|off (default from DMPEXPORT_LOG_LEVEL)"`
	Locale   string `help:"Narrative language, e.g. en or de (default from DMPEXPORT_LOCALE)"`
	Catalog  string `help:"YAML lookup catalog with projects, storage and repositories" type:"existingfile"`
	Lenient  bool   `help:"Allow known tokens to remain in the output"`
}

// streams carries the writers commands print to.
type streams struct {
	stdout io.Writer
	stderr io.Writer
}

// CLI is the command tree.
type CLI struct {
	Globals `embed:""`

	Version kong.VersionFlag `help:"Print version and exit"`

	Render     RenderCmd  `cmd:"" help:"Fill a template with one DMP"`
	Batch      BatchCmd   `cmd:"" help:"Fill a template with several DMPs concurrently"`
	Inspect    InspectCmd `cmd:"" help:"List the tokens and tables of a template"`
	VersionCmd VersionCmd `cmd:"" name:"version" help:"Print version"`
}

type exitPanic struct{ code int }

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func run(args []string, stdout, stderr io.Writer) (err error) {
	cli := &CLI{}

	parser, err := kong.New(
		cli,
		kong.Name("dmpexport"),
		kong.Description("Render data management plans into DOCX templates"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitPanic{code: code}) }),
	)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			ep, ok := r.(exitPanic)
			if !ok {
				panic(r)
			}
			if ep.code == 0 {
				err = nil
				return
			}
			err = &exitError{code: ep.code, err: fmt.Errorf("exited with code %d", ep.code)}
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "dmpexport: %v\n", err)
		return &exitError{code: 2, err: err}
	}

	ctx := context.Background()
	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.Bind(&cli.Globals)
	kctx.Bind(&streams{stdout: stdout, stderr: stderr})

	if err := kctx.Run(); err != nil {
		fmt.Fprintf(stderr, "dmpexport: %v\n", err)
		return err
	}
	return nil
}

// exporter builds an Exporter from the environment and the global flags.
func (g *Globals) exporter(logOut io.Writer) (*dmpexport.Exporter, error) {
	config, err := dmpexport.ConfigFromEnvironment()
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		config.LogLevel = g.LogLevel
	}
	if g.Locale != "" {
		config.Locale = g.Locale
	}
	if g.Lenient {
		config.Lenient = true
	}

	logger := dmpexport.NewConsoleLogger(logOut, dmpexport.ParseLogLevel(config.LogLevel))
	dmpexport.SetLogger(logger)

	opts := []dmpexport.Option{dmpexport.WithConfig(config), dmpexport.WithLogger(logger)}
	if g.Catalog != "" {
		catalog, err := lookup.LoadFile(g.Catalog)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dmpexport.WithLookups(catalog.Lookups()))
	}
	return dmpexport.NewWithOptions(opts...)
}
