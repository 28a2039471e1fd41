package main

import (
	"fmt"
	"io"

	"github.com/signadot/docedit/cursor"
	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/model"
	"github.com/signadot/docedit/query"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	p, err := dpath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	sch, err := cfg.loadSchema()
	if err != nil {
		return err
	}
	return eachDoc(cfg.MainConfig, cc, args[1:], func(arg string, doc *model.Node, sep bool) error {
		res, ok := query.GetSingle(p, cursor.New(doc, sch))
		if !ok || res.Value == nil {
			// nothing there, and that is not an error
			return nil
		}
		if sep {
			if err := writeSep(cc.Out, arg); err != nil {
				return err
			}
		}
		return cfg.writeDoc(cc.Out, res.Value)
	})
}

func collect(cfg *CollectConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Collect.Parse(cc, args)
	if err != nil {
		cfg.Collect.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: collect requires one argument, a path", cli.ErrUsage)
	}
	p, err := dpath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	sch, err := cfg.loadSchema()
	if err != nil {
		return err
	}
	return eachDoc(cfg.MainConfig, cc, args[1:], func(arg string, doc *model.Node, sep bool) error {
		if sep {
			if err := writeSep(cc.Out, arg); err != nil {
				return err
			}
		}
		if cfg.Paths {
			for r := range query.All(p, cursor.New(doc, sch)) {
				if err := writeResult(cfg.MainConfig, cc.Out, r); err != nil {
					return err
				}
			}
			return nil
		}
		vs := []*model.Node{}
		for _, r := range query.Collect(p, cursor.New(doc, sch)) {
			vs = append(vs, r.Value)
		}
		return cfg.writeDoc(cc.Out, model.FromSlice(vs))
	})
}

// eachDoc calls f on each document in args, standard input when there are
// none. sep is set for all but the first.
func eachDoc(cfg *MainConfig, cc *cli.Context, args []string, f func(arg string, doc *model.Node, sep bool) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		doc, err := cfg.readDoc(cc, arg)
		if err != nil {
			return err
		}
		if err := f(arg, doc, i > 0); err != nil {
			return fmt.Errorf("error querying %s: %w", arg, err)
		}
	}
	return nil
}

func writeSep(w io.Writer, arg string) error {
	_, err := fmt.Fprintf(w, "---\n# from %s\n", arg)
	return err
}

func writeResult(cfg *MainConfig, w io.Writer, r query.Result) error {
	if _, err := fmt.Fprintf(w, "%s: ", r.Context.Path()); err != nil {
		return err
	}
	if r.Value == nil {
		_, err := fmt.Fprintln(w, r.Value)
		return err
	}
	compact := *cfg
	compact.Compact = true
	return compact.writeDoc(w, r.Value)
}
