package main

import (
	"fmt"
	"os"

	"github.com/signadot/docedit"
	"github.com/signadot/docedit/model"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Create {
		if len(args) != 2 {
			return fmt.Errorf("%w: patch -create requires 2 arguments", cli.ErrUsage)
		}
		from, err := cfg.readDoc(cc, args[0])
		if err != nil {
			return err
		}
		to, err := cfg.readDoc(cc, args[1])
		if err != nil {
			return err
		}
		p, err := docedit.MergePatch(from, to)
		if err != nil {
			return err
		}
		return cfg.writeDoc(cc.Out, p)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a patch file and at most one file", cli.ErrUsage)
	}
	doc, err := cfg.readDoc(cc, fileArg(args[1:]))
	if err != nil {
		return err
	}
	var res *model.Node
	if cfg.Merge {
		p, err := cfg.readDoc(cc, args[0])
		if err != nil {
			return err
		}
		res, err = docedit.ApplyMergePatch(doc, p)
		if err != nil {
			return err
		}
	} else {
		d, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		res, err = docedit.ApplyJSONPatch(doc, d)
		if err != nil {
			return err
		}
	}
	return cfg.writeDoc(cc.Out, res)
}
