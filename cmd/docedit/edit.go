package main

import (
	"fmt"
	"strconv"

	"github.com/signadot/docedit/cursor"
	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/edit"
	"github.com/signadot/docedit/model"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: set requires a path, a value and at most one file", cli.ErrUsage)
	}
	v, err := cfg.value(args[1], cfg.String)
	if err != nil {
		return err
	}
	return editDoc(cfg.MainConfig, cc, "set", args[0], args[2:], func(c *cursor.Context) (*model.Node, error) {
		return edit.Set(c, v)
	})
}

func insert(cfg *InsertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Insert.Parse(cc, args)
	if err != nil {
		cfg.Insert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: insert requires a path, a value and at most one file", cli.ErrUsage)
	}
	v, err := cfg.value(args[1], cfg.String)
	if err != nil {
		return err
	}
	return editDoc(cfg.MainConfig, cc, "insert", args[0], args[2:], func(c *cursor.Context) (*model.Node, error) {
		var after *model.Pointer
		if cfg.After >= 0 {
			ptr, err := pointerAt(c, cfg.After)
			if err != nil {
				return nil, err
			}
			after = &ptr
		}
		if cfg.Key != "" {
			return edit.InsertKey(c, after, model.Key(cfg.Key), v)
		}
		return edit.Insert(c, after, v)
	})
}

func push(cfg *PushConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Push.Parse(cc, args)
	if err != nil {
		cfg.Push.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: push requires a path, a value and at most one file", cli.ErrUsage)
	}
	v, err := cfg.value(args[1], cfg.String)
	if err != nil {
		return err
	}
	return editDoc(cfg.MainConfig, cc, "push", args[0], args[2:], func(c *cursor.Context) (*model.Node, error) {
		if cfg.Key != "" {
			return edit.PushKey(c, model.Key(cfg.Key), v)
		}
		return edit.Push(c, v)
	})
}

func del(cfg *DeleteConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Delete.Parse(cc, args)
	if err != nil {
		cfg.Delete.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: delete requires a path and at most one file", cli.ErrUsage)
	}
	return editDoc(cfg.MainConfig, cc, "delete", args[0], args[1:], func(c *cursor.Context) (*model.Node, error) {
		if cfg.At < 0 {
			return edit.Delete(c, nil)
		}
		ptr, err := pointerAt(c, cfg.At)
		if err != nil {
			return nil, err
		}
		return edit.Delete(c, &ptr)
	})
}

func setKey(cfg *SetKeyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.SetKey.Parse(cc, args)
	if err != nil {
		cfg.SetKey.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	nArgs := 3
	if cfg.Null {
		nArgs = 2
	}
	if len(args) < nArgs || len(args) > nArgs+1 {
		return fmt.Errorf("%w: setkey requires a path, an index, a key unless -null, and at most one file", cli.ErrUsage)
	}
	i, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: bad index %q", cli.ErrUsage, args[1])
	}
	var key *string
	if !cfg.Null {
		key = model.Key(args[2])
	}
	return editDoc(cfg.MainConfig, cc, "setkey", args[0], args[nArgs:], func(c *cursor.Context) (*model.Node, error) {
		ptr, err := pointerAt(c, i)
		if err != nil {
			return nil, err
		}
		return edit.SetKey(c, ptr, key)
	})
}

// editDoc applies f at the cursor for pathArg on the document in files,
// standard input when empty, and writes the result. An edit which changes
// nothing writes the document unchanged.
func editDoc(cfg *MainConfig, cc *cli.Context, op, pathArg string, files []string, f func(*cursor.Context) (*model.Node, error)) error {
	p, err := dpath.Parse(pathArg)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if p.IsMulti() {
		return fmt.Errorf("%w: %s needs a single location, got %s", cli.ErrUsage, op, p)
	}
	sch, err := cfg.loadSchema()
	if err != nil {
		return err
	}
	file := "-"
	if len(files) > 0 {
		file = files[0]
	}
	doc, err := cfg.readDoc(cc, file)
	if err != nil {
		return err
	}
	c := cursor.New(doc, sch).Follow(p)
	if c == nil {
		return fmt.Errorf("%s: no position %s in %s", op, p, file)
	}
	res, err := f(c)
	if err != nil {
		return fmt.Errorf("error editing %s: %w", file, err)
	}
	if res == nil {
		theLog.Info("unchanged", "op", op, "path", p.String())
		res = doc
	}
	return cfg.writeDoc(cc.Out, res)
}

func pointerAt(c *cursor.Context, i int) (model.Pointer, error) {
	ptr, ok := c.Current().PointerAt(i)
	if !ok {
		return model.Pointer{}, fmt.Errorf("%w: no element %d at %s", cli.ErrUsage, i, c.Path())
	}
	return ptr, nil
}

