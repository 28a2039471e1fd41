package main

import (
	"fmt"

	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/model"
	"github.com/signadot/docedit/query"

	"github.com/scott-cotton/cli"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		cfg.Find.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: find requires one argument, a path", cli.ErrUsage)
	}
	if count(cfg.Expr != "", cfg.Literal != "") != 1 {
		return fmt.Errorf("%w: find requires exactly one of -e and -v", cli.ErrUsage)
	}
	p, err := dpath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	var m query.Matcher
	if cfg.Expr != "" {
		m, err = query.Expr(cfg.Expr)
	} else {
		var v *model.Node
		v, err = cfg.value(cfg.Literal, false)
		m = query.Literal{Value: v}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return eachDoc(cfg.MainConfig, cc, args[1:], func(arg string, doc *model.Node, sep bool) error {
		r, ok := query.Find(doc, p, m, nil)
		if !ok {
			theLog.Info("no match", "file", arg, "path", p.String())
			return nil
		}
		return writeResult(cfg.MainConfig, cc.Out, r)
	})
}
