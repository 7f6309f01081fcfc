package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/flowc/flow"
	"github.com/ardnew/flowc/log"
)

// Fmt parses a FlowDSL source file and renders its AST in the chosen
// format.
type Fmt struct {
	AST  AST  `cmd:"" default:"withargs" help:"Render as an indented AST dump (default)."`
	JSON JSON `cmd:""                    help:"Render as JSON."`
	YAML YAML `cmd:""                    help:"Render as YAML."`
}

// parseFile opens source (or stdin, for "-") and parses it without building
// a workflow graph — the fmt subcommands only need the AST.
func parseFile(ctx context.Context, source string) (*flow.Program, error) {
	var file *os.File

	if source == "-" {
		file = os.Stdin
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}

		defer f.Close()

		file = f
	}

	buf, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return flow.ParseBytes(ctx, source, buf, log.Default()), nil
}

// AST renders a FlowDSL source file as an indented AST dump.
type AST struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) error {
	prog, err := parseFile(ctx, a.Source)
	if err != nil {
		return err
	}

	flow.Dump(os.Stdout, prog)

	return nil
}

// JSON renders a FlowDSL source file's definitions as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	prog, err := parseFile(ctx, j.Source)
	if err != nil {
		return err
	}

	var data []byte

	if j.Indent > 0 {
		data, err = json.MarshalIndent(prog.Definitions, "", strings.Repeat(" ", j.Indent))
	} else {
		data, err = json.Marshal(prog.Definitions)
	}

	if err != nil {
		return ErrJSONMarshal.
			With(slog.Int("indent", j.Indent)).
			Wrap(err)
	}

	fmt.Println(string(data))

	return nil
}

// YAML renders a FlowDSL source file's definitions as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	prog, err := parseFile(ctx, y.Source)
	if err != nil {
		return err
	}

	var opts []yaml.EncodeOption
	if y.Indent > 0 {
		opts = append(opts, yaml.Indent(y.Indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, prog.Definitions, opts...)
	if err != nil {
		return ErrYAMLMarshal.
			With(slog.Int("indent", y.Indent)).
			Wrap(err)
	}

	fmt.Print(string(data))

	return nil
}
