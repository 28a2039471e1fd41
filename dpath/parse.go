package dpath

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Parse parses a path. See the package documentation for the syntax.
// The empty string is the empty relative path, which addresses the context
// itself.
func Parse(s string) (Path, error) {
	p := &parser{src: s}
	res, err := p.path()
	if err != nil {
		return Path{}, err
	}
	if !p.eof() {
		return Path{}, p.errorf("unexpected %q", p.peek())
	}
	return res, nil
}

// MustParse is Parse but panics on error. It is meant for paths in code.
func MustParse(s string) Path {
	res, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return res
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) errorf(msg string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d in %q", ErrSyntax, fmt.Sprintf(msg, args...), p.pos, p.src)
}

// path parses an optional start followed by steps. It stops at the end of
// input or at a closing '}'.
func (p *parser) path() (Path, error) {
	res := Path{}
	if err := p.start(&res); err != nil {
		return Path{}, err
	}
	if p.eof() || p.peek() == '}' {
		return res, nil
	}
	cs, err := p.steps(false)
	if err != nil {
		return Path{}, err
	}
	res.Components = cs
	return res, nil
}

func (p *parser) start(res *Path) error {
	switch c := p.peek(); {
	case c == '/':
		p.pos++
		res.Absolute = true
	case c == '@':
		p.pos++
		begin := p.pos
		for !p.eof() && isNameByte(p.peek()) {
			p.pos++
		}
		if p.pos == begin {
			return p.errorf("empty anchor name")
		}
		name := p.src[begin:p.pos]
		if p.peek() != ':' {
			return p.errorf("expected ':' after anchor @%s", name)
		}
		p.pos++
		res.Anchor = name
	case c >= '0' && c <= '9':
		end := p.pos
		for end < len(p.src) && p.src[end] >= '0' && p.src[end] <= '9' {
			end++
		}
		if end >= len(p.src) || p.src[end] != ':' {
			return nil
		}
		n, err := strconv.Atoi(p.src[p.pos:end])
		if err != nil {
			return p.errorf("bad reverse count: %v", err)
		}
		p.pos = end + 1
		res.ReverseCount = n
	}
	return nil
}

func isNameByte(c byte) bool {
	return c == '_' || c == '-' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// steps parses step ('/' step)*. Within a group, '|' separates whole
// alternatives and so ends the steps.
func (p *parser) steps(inGroup bool) ([]Component, error) {
	var res []Component
	for {
		c, err := p.step(inGroup)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
		if p.peek() != '/' {
			return res, nil
		}
		if _, ok := c.(ParentKey); ok {
			return nil, p.errorf("nothing may follow $key")
		}
		p.pos++
	}
}

func (p *parser) step(inGroup bool) (Component, error) {
	first, err := p.alt()
	if err != nil {
		return nil, err
	}
	if inGroup || p.peek() != '|' {
		return first, nil
	}
	u := Union{}
	u.add(first)
	for p.peek() == '|' {
		p.pos++
		c, err := p.alt()
		if err != nil {
			return nil, err
		}
		u.add(c)
	}
	return u, nil
}

func (u *Union) add(c Component) {
	if inner, ok := c.(Union); ok {
		u.Alternatives = append(u.Alternatives, inner.Alternatives...)
		return
	}
	u.Alternatives = append(u.Alternatives, New(c))
}

func (p *parser) alt() (Component, error) {
	if p.eof() {
		return nil, p.errorf("empty step")
	}
	switch c := p.peek(); c {
	case '*':
		p.pos++
		return Wildcard{}, nil
	case '$':
		if len(p.src)-p.pos >= 4 && p.src[p.pos:p.pos+4] == "$key" {
			p.pos += 4
			if p.eof() || isDelim(rune(p.peek())) {
				return ParentKey{}, nil
			}
		}
		return nil, p.errorf("unknown variable, only $key is defined")
	case '[':
		p.pos++
		begin := p.pos
		for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
		if p.pos == begin || p.peek() != ']' {
			return nil, p.errorf("expected digits and ']' in list index")
		}
		n, err := strconv.Atoi(p.src[begin:p.pos])
		if err != nil {
			return nil, p.errorf("bad list index: %v", err)
		}
		p.pos++
		return ListIndex(n), nil
	case '{':
		p.pos++
		inner, err := p.path()
		if err != nil {
			return nil, err
		}
		if p.peek() != '}' {
			return nil, p.errorf("expected '}'")
		}
		if len(inner.Components) == 0 && !inner.HasStart() {
			return nil, p.errorf("empty nested path")
		}
		p.pos++
		return Nested{Path: inner}, nil
	case '(':
		p.pos++
		u := Union{}
		for {
			cs, err := p.steps(true)
			if err != nil {
				return nil, err
			}
			u.Alternatives = append(u.Alternatives, New(cs...))
			if p.peek() == '|' {
				p.pos++
				continue
			}
			if p.peek() != ')' {
				return nil, p.errorf("expected ')' or '|'")
			}
			p.pos++
			return u, nil
		}
	case '\'', '"':
		s, err := p.quoted(c)
		if err != nil {
			return nil, err
		}
		return MapKey(s), nil
	case '/', '|', ')', '}', ']':
		return nil, p.errorf("empty step")
	}
	begin := p.pos
	for !p.eof() {
		r, sz := utf8.DecodeRuneInString(p.src[p.pos:])
		if isDelim(r) {
			break
		}
		p.pos += sz
	}
	if p.pos == begin {
		return nil, p.errorf("unexpected %q", p.peek())
	}
	word := p.src[begin:p.pos]
	if allDigits(word) {
		n, err := strconv.Atoi(word)
		if err != nil {
			return nil, p.errorf("bad index: %v", err)
		}
		return IndexOrKey(n), nil
	}
	return MapKey(word), nil
}

func (p *parser) quoted(q byte) (string, error) {
	p.pos++
	buf := []byte{}
	for {
		if p.eof() {
			return "", p.errorf("unterminated quoted key")
		}
		c := p.src[p.pos]
		switch c {
		case q:
			p.pos++
			return string(buf), nil
		case '\\':
			p.pos++
			if p.eof() {
				return "", p.errorf("unterminated escape")
			}
			buf = append(buf, p.src[p.pos])
			p.pos++
		default:
			buf = append(buf, c)
			p.pos++
		}
	}
}

// ValidAnchor reports whether name can be used after '@' in a path.
func ValidAnchor(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return false
		}
	}
	return true
}
