package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/docedit/encode"
	"github.com/signadot/docedit/format"
	"github.com/signadot/docedit/model"
)

// JSON renders v for a log line, falling back to %v.
func JSON(v any) string {
	if n, ok := v.(*model.Node); ok {
		return Doc{n}.String()
	}
	d, err := json.MarshalIndent(v, "   |", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(d)
}

type Doc struct{ *model.Node }

func (y Doc) String() string {
	if y.Node == nil {
		return "<undefined>"
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(y.Node, buf, encode.EncodeFormat(format.JSONFormat), encode.EncodeIndent(0)); err != nil {
		return fmt.Sprintf("[raw *model.Node] %v", y.Node)
	}
	return string(bytes.TrimSpace(buf.Bytes()))
}

func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case map[string]any, []any, json.Number:
			args[i] = JSON(x)
		case *model.Node:
			args[i] = Doc{x}.String()
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

// Key renders a Map key which may be pending.
func Key(k *string) string {
	if k == nil {
		return "<pending>"
	}
	return fmt.Sprintf("%q", *k)
}
