package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/docedit/model"
)

// MustString renders node as indented JSON and panics on error.
func MustString(node *model.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
