package bdf

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// fieldSet records which directives of a record have been seen.
type fieldSet uint16

const (
	fieldVersion fieldSet = 1 << iota
	fieldDescription
	fieldSize
	fieldFontBBox
	fieldChars

	fieldName
	fieldEncoding
	fieldSWidth
	fieldDWidth
	fieldBBX
)

const (
	requiredFont = fieldVersion | fieldDescription | fieldSize | fieldFontBBox | fieldChars
	requiredChar = fieldName | fieldEncoding | fieldSWidth | fieldDWidth | fieldBBX
)

var fieldDirectives = []struct {
	f    fieldSet
	name string
}{
	{fieldVersion, "STARTFONT"},
	{fieldDescription, "FONT"},
	{fieldSize, "SIZE"},
	{fieldFontBBox, "FONTBOUNDINGBOX"},
	{fieldChars, "CHARS"},
	{fieldName, "STARTCHAR"},
	{fieldEncoding, "ENCODING"},
	{fieldSWidth, "SWIDTH"},
	{fieldDWidth, "DWIDTH"},
	{fieldBBX, "BBX"},
}

// String lists the directive names in the set.
func (s fieldSet) String() string {
	var names []string
	for _, d := range fieldDirectives {
		if s&d.f != 0 {
			names = append(names, d.name)
		}
	}
	return strings.Join(names, ", ")
}

// charRecord is the scratch state of the character being read.
type charRecord struct {
	seen     fieldSet
	name     string
	r        rune
	encoding int
	swidth   Vec2
	dwidth   Vec2
	bbox     BoundingBox
	stride   int
	bitmap   []byte
}

// parser is the single-pass state machine behind Parse. It is local to one
// call and never escapes; finish turns it into an immutable GlyphTable.
type parser struct {
	cfg  parseConfig
	line int

	seen          fieldSet
	version       float64
	description   string
	size          Size
	bbox          BoundingBox
	properties    []Property
	strings       map[string]string
	declaredChars int

	inBitmap     bool
	inProperties bool
	char         charRecord
	committed    int
	glyphs       map[rune]Glyph
}

// Load reads the BDF file at path and parses it into a GlyphTable.
func Load(path string, opts ...Option) (*GlyphTable, error) {
	// #nosec G304 -- font path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	t, err := parse(string(data), opts)
	if err != nil {
		return nil, err
	}

	Logger().Info("bdf: font loaded",
		"path", path,
		"font", t.description,
		"glyphs", t.Len(),
		"declared", t.declaredChars)
	return t, nil
}

// Parse reads a complete BDF description from r and parses it into a
// GlyphTable. The whole input is read before parsing starts.
func Parse(r io.Reader, opts ...Option) (*GlyphTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	return parse(string(data), opts)
}

func parse(src string, opts []Option) (*GlyphTable, error) {
	cfg := defaultParseConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &parser{
		cfg:     cfg,
		strings: make(map[string]string),
		glyphs:  make(map[rune]Glyph),
	}

	for text := range strings.Lines(src) {
		p.line++
		if err := p.parseLine(strings.TrimRight(text, "\r\n")); err != nil {
			return nil, err
		}
	}
	return p.finish()
}

func (p *parser) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	directive := fields[0]

	if p.inProperties {
		if directive == "ENDPROPERTIES" {
			p.inProperties = false
			return nil
		}
		return p.parseProperty(fields, line)
	}

	switch directive {
	case "STARTFONT":
		if err := p.need(fields, 1); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return p.malformed(directive, "invalid version", err)
		}
		p.version = v
		p.seen |= fieldVersion

	case "FONT":
		if err := p.need(fields, 1); err != nil {
			return err
		}
		p.description = remainder(line, directive)
		p.seen |= fieldDescription

	case "SIZE":
		v, err := p.ints(fields, 3)
		if err != nil {
			return err
		}
		p.size = Size{Points: v[0], XRes: v[1], YRes: v[2]}
		p.seen |= fieldSize

	case "FONTBOUNDINGBOX":
		v, err := p.ints(fields, 4)
		if err != nil {
			return err
		}
		p.bbox = BoundingBox{W: v[0], H: v[1], X: v[2], Y: v[3]}
		p.seen |= fieldFontBBox

	case "FONT_ASCENT", "FONT_DESCENT":
		v, err := p.ints(fields, 1)
		if err != nil {
			return err
		}
		p.properties = append(p.properties, Property{Name: directive, Value: v[0]})

	case "STARTPROPERTIES":
		p.inProperties = true

	case "CHARS":
		v, err := p.ints(fields, 1)
		if err != nil {
			return err
		}
		p.declaredChars = v[0]
		p.seen |= fieldChars

	case "STARTCHAR":
		if err := p.need(fields, 1); err != nil {
			return err
		}
		if p.char.seen != 0 {
			Logger().Debug("bdf: dropping unterminated character", "line", p.line, "name", p.char.name)
		}
		p.inBitmap = false
		p.char = charRecord{
			seen: fieldName,
			name: fields[1],
			r:    DecodeCodePoint(fields[1]),
		}

	case "ENCODING":
		v, err := p.ints(fields, 1)
		if err != nil {
			return err
		}
		p.char.encoding = v[0]
		p.char.seen |= fieldEncoding

	case "SWIDTH":
		v, err := p.ints(fields, 2)
		if err != nil {
			return err
		}
		p.char.swidth = Vec2{X: v[0], Y: v[1]}
		p.char.seen |= fieldSWidth

	case "DWIDTH":
		v, err := p.ints(fields, 2)
		if err != nil {
			return err
		}
		p.char.dwidth = Vec2{X: v[0], Y: v[1]}
		p.char.seen |= fieldDWidth

	case "BBX":
		v, err := p.ints(fields, 4)
		if err != nil {
			return err
		}
		p.char.bbox = BoundingBox{W: v[0], H: v[1], X: v[2], Y: v[3]}
		p.char.seen |= fieldBBX

	case "BITMAP":
		p.inBitmap = true

	case "ENDCHAR":
		return p.endChar()

	case "COMMENT":

	default:
		if !p.inBitmap {
			Logger().Debug("bdf: ignoring directive", "line", p.line, "directive", directive)
			return nil
		}
		if len(fields) != 1 {
			return p.malformed("BITMAP", fmt.Sprintf("unexpected row %q", line), nil)
		}
		return p.appendRow(fields[0])
	}
	return nil
}

// parseProperty handles one line inside STARTPROPERTIES. Quoted values become
// string properties, integers become integer properties.
func (p *parser) parseProperty(fields []string, line string) error {
	name := fields[0]
	value := remainder(line, name)

	if strings.HasPrefix(value, `"`) {
		p.strings[name] = unquote(value)
		return nil
	}

	if name == "FONT_ASCENT" || name == "FONT_DESCENT" {
		v, err := p.ints(fields, 1)
		if err != nil {
			return err
		}
		p.properties = append(p.properties, Property{Name: name, Value: v[0]})
		return nil
	}

	if n, err := strconv.Atoi(value); err == nil {
		p.properties = append(p.properties, Property{Name: name, Value: n})
		return nil
	}
	p.strings[name] = value
	return nil
}

func (p *parser) appendRow(tok string) error {
	row, err := decodeRow(tok)
	if err != nil {
		return p.malformed("BITMAP", fmt.Sprintf("invalid hex row %q", tok), err)
	}

	if p.char.stride == 0 && len(p.char.bitmap) == 0 {
		p.char.stride = len(row)
	} else if len(row) != p.char.stride {
		return p.malformed("BITMAP",
			fmt.Sprintf("row has %d bytes, want %d", len(row), p.char.stride), nil)
	}
	p.char.bitmap = append(p.char.bitmap, row...)
	return nil
}

// decodeRow decodes one bitmap row. Rows of one or two digits are a single
// byte; longer rows must have an even number of digits.
func decodeRow(tok string) ([]byte, error) {
	if len(tok) <= 2 {
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return nil, err
		}
		return []byte{byte(v)}, nil
	}
	return hex.DecodeString(tok)
}

func (p *parser) endChar() error {
	p.inBitmap = false
	c := p.char
	p.char = charRecord{}

	if missing := requiredChar &^ c.seen; missing != 0 {
		return p.malformed("ENDCHAR",
			fmt.Sprintf("character %q closed before %s", c.name, missing), ErrMissingField)
	}

	g := Glyph{
		Rune:          c.r,
		Name:          c.name,
		Encoding:      c.encoding,
		ScalableWidth: c.swidth,
		DeviceWidth:   c.dwidth,
		BBox:          c.bbox,
		stride:        c.stride,
		bitmap:        c.bitmap,
	}

	if p.cfg.strict && g.Height() != c.bbox.H {
		return p.malformed("ENDCHAR",
			fmt.Sprintf("character %q has %d rows, BBX height is %d", c.name, g.Height(), c.bbox.H), nil)
	}

	if p.cfg.encodingKeys {
		if c.encoding < 0 {
			Logger().Debug("bdf: skipping unencoded glyph", "line", p.line, "name", c.name)
			p.committed++
			return nil
		}
		if c.encoding > unicode.MaxRune {
			return p.malformed("ENCODING",
				fmt.Sprintf("character %q has encoding %d beyond the Unicode range", c.name, c.encoding), nil)
		}
		g.Rune = rune(c.encoding)
	}

	p.glyphs[g.Rune] = g
	p.committed++
	return nil
}

func (p *parser) finish() (*GlyphTable, error) {
	if missing := requiredFont &^ p.seen; missing != 0 {
		return nil, &MalformedRecordError{
			Line:   p.line + 1,
			Reason: "end of input before " + missing.String(),
			Err:    ErrMissingField,
		}
	}
	if p.char.seen != 0 {
		Logger().Debug("bdf: dropping unterminated character", "name", p.char.name)
	}
	if p.cfg.strict && p.committed != p.declaredChars {
		return nil, &MalformedRecordError{
			Line:      p.line + 1,
			Directive: "CHARS",
			Reason:    fmt.Sprintf("declared %d characters, found %d", p.declaredChars, p.committed),
		}
	}

	return &GlyphTable{
		version:       p.version,
		description:   p.description,
		size:          p.size,
		bbox:          p.bbox,
		properties:    p.properties,
		strings:       p.strings,
		declaredChars: p.declaredChars,
		glyphs:        p.glyphs,
	}, nil
}

// need checks that the directive has at least n arguments.
func (p *parser) need(fields []string, n int) error {
	if len(fields)-1 < n {
		return p.malformed(fields[0], fmt.Sprintf("expected %d fields, got %d", n, len(fields)-1), nil)
	}
	return nil
}

// ints parses the first n arguments of the directive as decimal integers.
func (p *parser) ints(fields []string, n int) ([]int, error) {
	if err := p.need(fields, n); err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i := range n {
		v, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, p.malformed(fields[0], fmt.Sprintf("invalid integer in field %d", i+1), err)
		}
		out[i] = v
	}
	return out, nil
}

func (p *parser) malformed(directive, reason string, err error) error {
	return &MalformedRecordError{
		Line:      p.line,
		Directive: directive,
		Reason:    reason,
		Err:       err,
	}
}

// remainder returns everything on the line after the directive name.
func remainder(line, directive string) string {
	s := strings.TrimSpace(line)
	return strings.TrimSpace(strings.TrimPrefix(s, directive))
}

// unquote strips BDF string quoting, where "" stands for a literal quote.
func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.ReplaceAll(s, `""`, `"`)
}

// DecodeCodePoint turns a STARTCHAR token into a single-byte character.
// Every non-hexadecimal character is dropped and the rest is read as a base 16
// number; "U+0041", "uni0041" and "41" all decode to 'A'. Tokens that leave
// no digits or exceed 0xFF decode to 0.
func DecodeCodePoint(token string) rune {
	digits := strings.Map(func(r rune) rune {
		if isHexDigit(r) {
			return r
		}
		return -1
	}, token)

	v, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		return 0
	}
	return rune(v)
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}
