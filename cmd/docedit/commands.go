package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "docedit").
		WithSynopsis("docedit [opts] command [opts]").
		WithDescription("docedit reads, queries and edits json and yaml documents by path.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return docEditMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			CollectCommand(cfg),
			SetCommand(cfg),
			InsertCommand(cfg),
			PushCommand(cfg),
			DeleteCommand(cfg),
			SetKeyCommand(cfg),
			FindCommand(cfg),
			DiffCommand(cfg),
			CursorCommand(cfg),
			PatchCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path> [files]").
		WithDescription("get the value at a path").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func CollectCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CollectConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Collect, "collect").
		WithAliases("c", "ls").
		WithSynopsis("collect [-p] <path> [files]").
		WithDescription("list every value a path with wildcards, unions and nested paths selects").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return collect(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Set, "set").
		WithAliases("s").
		WithSynopsis("set [-s] <path> <value> [file]").
		WithDescription("set the value at a path, creating missing map entries").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

func InsertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InsertConfig{MainConfig: mainCfg, After: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Insert, "insert").
		WithAliases("i", "ins").
		WithSynopsis("insert [-s] [-after i] [-k key] <path> <value> [file]").
		WithDescription("insert a value into the collection at a path").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return insert(cfg, cc, args)
		})
}

func PushCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PushConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Push, "push").
		WithAliases("p").
		WithSynopsis("push [-s] [-k key] <path> <value> [file]").
		WithDescription("append a value to the collection at a path").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return push(cfg, cc, args)
		})
}

func DeleteCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DeleteConfig{MainConfig: mainCfg, At: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Delete, "delete").
		WithAliases("d", "del", "rm").
		WithSynopsis("delete [-at i] <path> [file]").
		WithDescription("delete the element at a path").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return del(cfg, cc, args)
		})
}

func SetKeyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetKeyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.SetKey, "setkey").
		WithAliases("k", "rename").
		WithSynopsis("setkey <path> <index> <key> [file] | setkey -null <path> <index> [file]").
		WithDescription("rename an element of the map at a path").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return setKey(cfg, cc, args)
		})
}

func FindCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Find, "find").
		WithAliases("f").
		WithSynopsis("find (-e expr | -v value) <path> [files]").
		WithDescription("find the first value a path selects which matches").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("di").
		WithSynopsis("diff [-r] a b").
		WithDescription("list the structural differences between two documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func CursorCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CursorConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Cursor, "cursor").
		WithAliases("cur").
		WithSynopsis("cursor <path> [file] | cursor -d <serialized> [file]").
		WithDescription("serialize the cursor at a path, or restore a serialized cursor").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return cursorCmd(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("pa").
		WithSynopsis("patch [-m] <patchfile> [file] | patch -create a b").
		WithDescription("apply a json patch or json merge patch, or create a merge patch").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}
