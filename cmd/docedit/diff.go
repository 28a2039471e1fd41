package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/docedit/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 arguments", cli.ErrUsage)
	}
	if cfg.Reverse {
		args[0], args[1] = args[1], args[0]
	}
	from, err := cfg.readDoc(cc, args[0])
	if err != nil {
		return err
	}
	to, err := cfg.readDoc(cc, args[1])
	if err != nil {
		return err
	}
	changes := libdiff.Diff(from, to)
	colors := cfg.colors(cc.Out)
	for _, c := range changes {
		if err := writeChange(cc.Out, c, colors); err != nil {
			return err
		}
	}
	theLog.Info("diff", "from", args[0], "to", args[1], "changes", len(changes))
	return nil
}

func writeChange(w io.Writer, c libdiff.Change, colors bool) error {
	line := c.String()
	if colors {
		switch c.Kind {
		case libdiff.Added:
			line = color.GreenString(line)
		case libdiff.Removed:
			line = color.RedString(line)
		case libdiff.Rekeyed:
			line = color.CyanString(line)
		default:
			line = color.YellowString(line)
		}
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	if len(c.Hunks) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "    %s\n", hunkText(c.Hunks, colors))
	return err
}

// hunkText renders string hunks inline, deletions as [-x-] and insertions
// as {+x+}.
func hunkText(hunks []libdiff.Hunk, colors bool) string {
	buf := strings.Builder{}
	for _, h := range hunks {
		switch h.Op {
		case libdiff.Insert:
			s := "{+" + h.Text + "+}"
			if colors {
				s = color.GreenString(s)
			}
			buf.WriteString(s)
		case libdiff.Delete:
			s := "[-" + h.Text + "-]"
			if colors {
				s = color.RedString(s)
			}
			buf.WriteString(s)
		default:
			buf.WriteString(h.Text)
		}
	}
	return buf.String()
}
