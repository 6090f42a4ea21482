package bdf

// Option configures Load and Parse.
type Option func(*parseConfig)

// parseConfig holds configuration for a single parse.
type parseConfig struct {
	strict       bool
	encodingKeys bool
}

// defaultParseConfig returns the permissive default configuration.
func defaultParseConfig() parseConfig {
	return parseConfig{
		strict:       false,
		encodingKeys: false,
	}
}

// WithStrict makes the parser reject glyphs whose row count differs from
// their BBX height, and fonts whose glyph count differs from CHARS.
func WithStrict() Option {
	return func(c *parseConfig) {
		c.strict = true
	}
}

// WithEncodingKeys keys glyphs by their ENCODING value instead of the code
// point decoded from the STARTCHAR name. Glyphs with a negative encoding are
// left out of the table.
func WithEncodingKeys() Option {
	return func(c *parseConfig) {
		c.encodingKeys = true
	}
}
