package loosecsv

// Option is a functional option for configuring readers and writers.
// Header and strip options only affect readers; NewWriter ignores them.
type Option func(*config)

type config struct {
	separator       byte
	strip           bool
	backslashEscape bool
	excelTricks     bool
	headerRow       bool     // consume the first record as a header
	headerNames     []string // caller-supplied names, merged over any discovered header
}

func defaultConfig() config {
	return config{
		separator:   ',',
		strip:       true,
		excelTricks: true,
	}
}

// WithSeparator sets the field separator. Default is ','.
// Quote and line-terminator bytes cannot delimit fields, so those panic.
func WithSeparator(sep byte) Option {
	if sep == '"' || sep == '\n' || sep == '\r' {
		panic("loosecsv: separator cannot be a quote or line terminator")
	}
	return func(c *config) {
		c.separator = sep
	}
}

// WithoutStrip disables trimming of leading/trailing whitespace around
// unquoted fields. Stripping is on by default.
func WithoutStrip() Option {
	return func(c *config) {
		c.strip = false
	}
}

// WithBackslashEscape enables MySQL-style backslash escapes inside quoted
// fields (\0 \b \n \r \t \Z, any other character stands for itself) and the
// matching escape form on write. Off by default.
func WithBackslashEscape() Option {
	return func(c *config) {
		c.backslashEscape = true
	}
}

// WithoutExcelTricks disables the spreadsheet conventions: the ="..."
// literal-preserving quote form and the "0 encoding of NUL bytes inside
// quoted fields. Both are recognized by default.
func WithoutExcelTricks() Option {
	return func(c *config) {
		c.excelTricks = false
	}
}

// WithHeaderRow makes NewReader consume the first record as the stream's
// header, seeding the reader's Header directory.
func WithHeaderRow() Option {
	return func(c *config) {
		c.headerRow = true
	}
}

// WithHeader supplies column names that take precedence, position by
// position, over names discovered in the stream's first record. Like
// WithHeaderRow, it makes NewReader consume the first record eagerly.
func WithHeader(names ...string) Option {
	return func(c *config) {
		c.headerNames = append([]string(nil), names...)
	}
}
