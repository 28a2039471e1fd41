package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Edit   bool
	Query  bool
	Cursor bool
	Schema bool
}

var d *debug

func init() {
	d = &debug{}
	d.Edit = boolEnv("DOCEDIT_DEBUG_EDIT")
	d.Query = boolEnv("DOCEDIT_DEBUG_QUERY")
	d.Cursor = boolEnv("DOCEDIT_DEBUG_CURSOR")
	d.Schema = boolEnv("DOCEDIT_DEBUG_SCHEMA")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Edit() bool {
	return d.Edit
}
func Query() bool {
	return d.Query
}
func Cursor() bool {
	return d.Cursor
}
func Schema() bool {
	return d.Schema
}
