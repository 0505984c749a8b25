package mazefile

import (
	"fmt"
	"strconv"
	"unicode"

	"qmaze/internal/engine"
)

// ronParser reads the subset of RON used by maze files: integers, lists,
// and (optionally named) structs with named fields. Comments are skipped.
type ronParser struct {
	src []rune
	pos int
}

func decodeRON(raw []byte) (document, error) {
	var doc document
	p := &ronParser{src: []rune(string(raw))}
	value, err := p.value()
	if err != nil {
		return doc, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return doc, p.errorf("unexpected %q after document", p.src[p.pos])
	}

	fields, ok := value.(map[string]any)
	if !ok {
		return doc, fmt.Errorf("%w: ron document is not a struct", engine.ErrMalformedInput)
	}
	for name, v := range fields {
		switch name {
		case "maze":
			doc.Maze, err = ronGrid(v)
		case "startpoint":
			doc.Startpoint, err = ronPosition(name, v)
		case "endpoint":
			doc.Endpoint, err = ronPosition(name, v)
		default:
			err = fmt.Errorf("%w: unknown field %q", engine.ErrMalformedInput, name)
		}
		if err != nil {
			return doc, err
		}
	}
	return doc, nil
}

func ronGrid(v any) ([][]int, error) {
	rows, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: maze is not a list", engine.ErrMalformedInput)
	}
	grid := make([][]int, len(rows))
	for y, r := range rows {
		cells, ok := r.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: maze row %d is not a list", engine.ErrMalformedInput, y)
		}
		grid[y] = make([]int, len(cells))
		for x, c := range cells {
			n, ok := c.(int)
			if !ok {
				return nil, fmt.Errorf("%w: maze cell (%d,%d) is not an integer", engine.ErrMalformedInput, x, y)
			}
			grid[y][x] = n
		}
	}
	return grid, nil
}

func ronPosition(name string, v any) (*engine.Position, error) {
	fields, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a struct", engine.ErrMalformedInput, name)
	}
	x, xok := fields["x"].(int)
	y, yok := fields["y"].(int)
	if !xok || !yok || len(fields) != 2 {
		return nil, fmt.Errorf("%w: %s needs integer x and y", engine.ErrMalformedInput, name)
	}
	return &engine.Position{X: x, Y: y}, nil
}

func (p *ronParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: ron offset %d: %s", engine.ErrMalformedInput, p.pos, fmt.Sprintf(format, args...))
}

func (p *ronParser) skipSpace() {
	for p.pos < len(p.src) {
		switch {
		case unicode.IsSpace(p.src[p.pos]):
			p.pos++
		case p.hasPrefix("//"):
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
		case p.hasPrefix("/*"):
			p.pos += 2
			for p.pos < len(p.src) && !p.hasPrefix("*/") {
				p.pos++
			}
			p.pos += 2
		default:
			return
		}
	}
}

func (p *ronParser) hasPrefix(s string) bool {
	for i, r := range s {
		if p.pos+i >= len(p.src) || p.src[p.pos+i] != r {
			return false
		}
	}
	return true
}

func (p *ronParser) peek() (rune, bool) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *ronParser) expect(r rune) error {
	c, ok := p.peek()
	if !ok {
		return p.errorf("expected %q, got end of input", r)
	}
	if c != r {
		return p.errorf("expected %q, got %q", r, c)
	}
	p.pos++
	return nil
}

func (p *ronParser) value() (any, error) {
	c, ok := p.peek()
	switch {
	case !ok:
		return nil, p.errorf("unexpected end of input")
	case c == '[':
		return p.list()
	case c == '(':
		return p.fields()
	case c == '-' || unicode.IsDigit(c):
		return p.integer()
	case isIdentStart(c):
		// struct name, e.g. Environment(...)
		p.ident()
		return p.fields()
	}
	return nil, p.errorf("unexpected %q", c)
}

func (p *ronParser) list() ([]any, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	items := []any{}
	for {
		if c, ok := p.peek(); ok && c == ']' {
			p.pos++
			return items, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if err := p.separator(']'); err != nil {
			return nil, err
		}
	}
}

func (p *ronParser) fields() (map[string]any, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	for {
		c, ok := p.peek()
		if ok && c == ')' {
			p.pos++
			return fields, nil
		}
		if !ok || !isIdentStart(c) {
			return nil, p.errorf("expected field name")
		}
		name := p.ident()
		if _, dup := fields[name]; dup {
			return nil, p.errorf("duplicate field %q", name)
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		fields[name] = v
		if err := p.separator(')'); err != nil {
			return nil, err
		}
	}
}

// separator consumes a comma, or leaves the closing delimiter for the caller.
func (p *ronParser) separator(closing rune) error {
	c, ok := p.peek()
	switch {
	case ok && c == ',':
		p.pos++
		return nil
	case ok && c == closing:
		return nil
	case !ok:
		return p.errorf("expected %q, got end of input", closing)
	}
	return p.errorf("expected ',' or %q, got %q", closing, c)
}

func (p *ronParser) integer() (int, error) {
	start := p.pos
	if p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && unicode.IsDigit(p.src[p.pos]) {
		p.pos++
	}
	n, err := strconv.Atoi(string(p.src[start:p.pos]))
	if err != nil {
		return 0, p.errorf("bad integer %q", string(p.src[start:p.pos]))
	}
	return n, nil
}

func (p *ronParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) && (isIdentStart(p.src[p.pos]) || unicode.IsDigit(p.src[p.pos])) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
