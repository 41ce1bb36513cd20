package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmp"
	"github.com/benjaminschreck/go-dmpexport/pkg/dmpexport"
)

// RenderCmd fills one template with one DMP.
type RenderCmd struct {
	DMP      string `arg:"" name:"dmp" help:"DMP snapshot (JSON)" type:"existingfile"`
	Template string `help:"DOCX template" short:"t" required:"" type:"existingfile"`
	Out      string `help:"Output DOCX path" short:"o" required:""`
}

func (c *RenderCmd) Run(ctx context.Context, g *Globals, s *streams) error {
	e, err := g.exporter(s.stderr)
	if err != nil {
		return err
	}
	plan, err := loadDMP(c.DMP)
	if err != nil {
		return err
	}
	result, err := e.ExportFile(ctx, plan, c.Template, c.Out)
	if err != nil {
		return err
	}
	printWarnings(s, c.DMP, result)
	fmt.Fprintf(s.stdout, "%s: wrote %s (%d tables, %d replacements)\n", c.DMP, c.Out, len(result.Tables), result.Replaced)
	return nil
}

// BatchCmd fills one template with several DMPs, writing one document
// per DMP into OutDir.
type BatchCmd struct {
	DMPs     []string `arg:"" name:"dmp" help:"DMP snapshots (JSON)"`
	Template string   `help:"DOCX template" short:"t" required:"" type:"existingfile"`
	OutDir   string   `help:"Output directory" short:"o" default:"."`
	Jobs     int      `help:"Exports run in parallel" short:"j" default:"4"`
}

type batchItem struct {
	out    string
	result *dmpexport.Result
}

func (c *BatchCmd) Run(ctx context.Context, g *Globals, s *streams) error {
	e, err := g.exporter(s.stderr)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return err
	}
	if err := checkDistinctOutputs(c.DMPs); err != nil {
		return err
	}

	items := make([]batchItem, len(c.DMPs))
	var mu sync.Mutex
	failures := dmpexport.NewMultiError()

	eg, egCtx := errgroup.WithContext(ctx)
	if c.Jobs > 0 {
		eg.SetLimit(c.Jobs)
	}
	for i, path := range c.DMPs {
		i, path := i, path
		eg.Go(func() error {
			out := filepath.Join(c.OutDir, outputName(path))
			result, err := exportOne(egCtx, e, path, c.Template, out)
			if err != nil {
				mu.Lock()
				failures.Add(fmt.Errorf("%s: %w", path, err))
				mu.Unlock()
				return nil
			}
			items[i] = batchItem{out: out, result: result}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, item := range items {
		if item.result == nil {
			continue
		}
		printWarnings(s, c.DMPs[i], item.result)
		fmt.Fprintf(s.stdout, "%s: wrote %s (%d tables, %d replacements)\n", c.DMPs[i], item.out, len(item.result.Tables), item.result.Replaced)
	}
	return failures.Err()
}

func exportOne(ctx context.Context, e *dmpexport.Exporter, dmpPath, template, out string) (*dmpexport.Result, error) {
	plan, err := loadDMP(dmpPath)
	if err != nil {
		return nil, err
	}
	return e.ExportFile(ctx, plan, template, out)
}

// outputName derives the document name from a snapshot path.
func outputName(dmpPath string) string {
	base := filepath.Base(dmpPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".docx"
}

func checkDistinctOutputs(paths []string) error {
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		name := outputName(p)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%s and %s would both write %s", prev, p, name)
		}
		seen[name] = p
	}
	return nil
}

// InspectCmd lists what a template expects.
type InspectCmd struct {
	Template string `arg:"" help:"DOCX template" type:"existingfile"`
	JSON     bool   `help:"Print JSON" short:"j"`
}

type inspectOutput struct {
	Tokens       []string `json:"tokens"`
	Unknown      []string `json:"unknown"`
	Tables       []string `json:"tables"`
	StaticTables int      `json:"staticTables"`
}

func (c *InspectCmd) Run(s *streams) error {
	f, err := os.Open(c.Template)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := dmpexport.InspectTemplate(f)
	if info == nil {
		return err
	}

	out := inspectOutput{Tokens: info.Tokens, Unknown: info.Unknown, StaticTables: info.StaticTables}
	for _, kind := range info.Tables {
		out.Tables = append(out.Tables, kind.Sentinel())
	}

	if c.JSON {
		enc := json.NewEncoder(s.stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(out); encErr != nil {
			return encErr
		}
		return err
	}

	fmt.Fprintf(s.stdout, "tokens:        %s\n", strings.Join(out.Tokens, " "))
	fmt.Fprintf(s.stdout, "unknown:       %s\n", strings.Join(out.Unknown, " "))
	fmt.Fprintf(s.stdout, "tables:        %s\n", strings.Join(out.Tables, " "))
	fmt.Fprintf(s.stdout, "static tables: %d\n", out.StaticTables)
	return err
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(s *streams) error {
	fmt.Fprintf(s.stdout, "dmpexport version %s\n", version)
	return nil
}

func loadDMP(path string) (*dmp.DMP, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	plan, err := dmp.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return plan, nil
}

func printWarnings(s *streams, name string, result *dmpexport.Result) {
	for _, w := range result.Warnings {
		fmt.Fprintf(s.stderr, "%s: warning: %v\n", name, w)
	}
}
