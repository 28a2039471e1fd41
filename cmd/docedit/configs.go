package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/docedit/encode"
	"github.com/signadot/docedit/format"
	"github.com/signadot/docedit/model"
	"github.com/signadot/docedit/parse"
	"github.com/signadot/docedit/schema"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='encode with color'"`
	Compact bool   `cli:"name=c aliases=compact desc='output on a single line (json) or in flow style (yaml)'"`
	Schema  string `cli:"name=schema desc='data schema file (yaml or json)'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) ioFormat(override *format.Format) format.Format {
	fmat := format.JSONFormat
	if cfg.Y {
		fmat = format.YAMLFormat
	}
	if override != nil {
		fmat = *override
	}
	return fmat
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.ParseFormat(cfg.ioFormat(cfg.InFormat))}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.ioFormat(cfg.OutFormat)),
	}
	if cfg.Compact {
		res = append(res, encode.EncodeIndent(0))
	}
	if cfg.colors(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colors reports whether output to w is colored: -color when given,
// otherwise whether w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// readDoc reads and parses the document in path, or standard input for "-".
func (cfg *MainConfig) readDoc(cc *cli.Context, path string) (*model.Node, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	doc, err := parse.Parse(d, cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return doc, nil
}

func (cfg *MainConfig) writeDoc(w io.Writer, doc *model.Node) error {
	if err := encode.Encode(doc, w, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// loadSchema returns the schema named by -schema, or nil without one.
func (cfg *MainConfig) loadSchema() (*schema.Schema, error) {
	if cfg.Schema == "" {
		return nil, nil
	}
	d, err := os.ReadFile(cfg.Schema)
	if err != nil {
		return nil, err
	}
	sch, err := schema.DecodeYAML(d)
	if err != nil {
		return nil, fmt.Errorf("error loading schema %s: %w", cfg.Schema, err)
	}
	return sch, nil
}

// value parses a command line value in the input format, or takes it
// verbatim as a string.
func (cfg *MainConfig) value(arg string, asString bool) (*model.Node, error) {
	if asString {
		return model.FromString(arg), nil
	}
	v, err := parse.Parse([]byte(arg), cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: bad value %q: %w", cli.ErrUsage, arg, err)
	}
	return v, nil
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type CollectConfig struct {
	*MainConfig
	Paths bool `cli:"name=p aliases=paths desc='show the path of each result'"`

	Collect *cli.Command
}

type SetConfig struct {
	*MainConfig
	String bool `cli:"name=s desc='take the value as a string'"`

	Set *cli.Command
}

type InsertConfig struct {
	*MainConfig
	String bool   `cli:"name=s desc='take the value as a string'"`
	After  int    `cli:"name=after desc='index of the element to insert after, -1 for first'"`
	Key    string `cli:"name=k desc='key of the new map entry (default pending)'"`

	Insert *cli.Command
}

type PushConfig struct {
	*MainConfig
	String bool   `cli:"name=s desc='take the value as a string'"`
	Key    string `cli:"name=k desc='key of the new map entry (default pending)'"`

	Push *cli.Command
}

type DeleteConfig struct {
	*MainConfig
	At int `cli:"name=at desc='index of the element to delete from the collection at path'"`

	Delete *cli.Command
}

type SetKeyConfig struct {
	*MainConfig
	Null bool `cli:"name=null desc='make the key pending'"`

	SetKey *cli.Command
}

type FindConfig struct {
	*MainConfig
	Expr    string `cli:"name=e desc='expression over value, key and path'"`
	Literal string `cli:"name=v desc='value to look for'"`

	Find *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type CursorConfig struct {
	*MainConfig
	Decode string `cli:"name=d desc='serialized cursor to restore instead of a path'"`

	Cursor *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge  bool `cli:"name=m desc='the patch is a json merge patch'"`
	Create bool `cli:"name=create desc='print the merge patch between two documents'"`

	Patch *cli.Command
}
