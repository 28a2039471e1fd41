package main

import (
	"fmt"

	j "github.com/goccy/go-json"
	"github.com/signadot/docedit/cursor"
	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/query"

	"github.com/scott-cotton/cli"
)

func cursorCmd(cfg *CursorConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cursor.Parse(cc, args)
	if err != nil {
		cfg.Cursor.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	sch, err := cfg.loadSchema()
	if err != nil {
		return err
	}
	if cfg.Decode != "" {
		if len(args) > 1 {
			return fmt.Errorf("%w: cursor -d takes at most one file", cli.ErrUsage)
		}
		s := cursor.Serialized{}
		if err := j.Unmarshal([]byte(cfg.Decode), &s); err != nil {
			return fmt.Errorf("%w: bad serialized cursor: %w", cli.ErrUsage, err)
		}
		doc, err := cfg.readDoc(cc, fileArg(args))
		if err != nil {
			return err
		}
		c, err := cursor.Deserialize(doc, sch, s)
		if err != nil {
			return err
		}
		return writeResult(cfg.MainConfig, cc.Out, query.Result{Value: c.Current(), Context: c})
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: cursor requires a path and at most one file", cli.ErrUsage)
	}
	p, err := dpath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if p.IsMulti() {
		return fmt.Errorf("%w: cursor needs a single location, got %s", cli.ErrUsage, p)
	}
	doc, err := cfg.readDoc(cc, fileArg(args[1:]))
	if err != nil {
		return err
	}
	c := cursor.New(doc, sch).Follow(p)
	if c == nil {
		return fmt.Errorf("no position %s", p)
	}
	d, err := j.Marshal(c.Serialize())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cc.Out, "%s\n", d)
	return err
}

func fileArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
