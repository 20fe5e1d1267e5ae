package ovalxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// TagParser is called by ParseTag for every child element. It receives the
// child's start element and may consume the child's content; whatever it
// leaves unread is skipped before the next child is dispatched.
//
// Returning a *Warning (see Context.Warnf) marks the child as failed but lets
// the parse continue, any other error aborts it.
type TagParser func(pc *Context, start xml.StartElement) error

// Context is the state shared by the tag parsers of one XML document: the
// token stream, the current element depth and the warnings collected so far.
// It is not safe for concurrent use.
type Context struct {
	dec      *xml.Decoder
	logger   kitlog.Logger
	depth    int
	warnings []Warning
}

// NewContext returns a parser context reading XML from r. Warnings are logged
// to logger, which may be nil.
func NewContext(r io.Reader, logger kitlog.Logger) *Context {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Context{
		dec:    xml.NewDecoder(r),
		logger: logger,
	}
}

// Logger returns the logger warnings are sent to.
func (c *Context) Logger() kitlog.Logger {
	return c.logger
}

// Warnings returns the warnings recorded so far, in document order.
func (c *Context) Warnings() []Warning {
	return c.warnings
}

// Warnf records and logs a warning about element el and returns it as an
// error, so tag parsers can simply return the result.
func (c *Context) Warnf(el xml.Name, format string, args ...interface{}) error {
	line, col := c.dec.InputPos()
	w := Warning{
		Element: el,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	}
	c.warnings = append(c.warnings, w)
	level.Warn(c.logger).Log("msg", w.Message, "element", FormatName(el), "line", line, "column", col)
	return &w
}

func (c *Context) token() (xml.Token, error) {
	tok, err := c.dec.Token()
	if err != nil {
		return nil, err
	}
	switch tok.(type) {
	case xml.StartElement:
		c.depth++
	case xml.EndElement:
		c.depth--
	}
	return tok, nil
}

// NextStartElement advances to the next start element at any depth. It
// returns io.EOF when the document has no more elements.
func (c *Context) NextStartElement() (xml.StartElement, error) {
	for {
		tok, err := c.token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if t, ok := tok.(xml.StartElement); ok {
			return t, nil
		}
	}
}

// FindElement advances to the next start element named name, skipping
// everything before it. It returns io.EOF if there is none.
func (c *Context) FindElement(name xml.Name) (xml.StartElement, error) {
	for {
		start, err := c.NextStartElement()
		if err != nil {
			return start, err
		}
		if start.Name == name {
			return start, nil
		}
	}
}

// ParseTag dispatches every child element of start, the element most recently
// returned to the caller, to fn, and consumes the input up to and including
// start's end element. Warnings returned by fn do not stop the loop; the first
// one is returned once all children were visited.
func (c *Context) ParseTag(start xml.StartElement, fn TagParser) error {
	depth := c.depth
	var firstWarning error
	for c.depth >= depth {
		tok, err := c.token()
		if err != nil {
			return unexpectedEOF(start, err)
		}
		child, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if err := fn(c, child); err != nil {
			if !IsWarning(err) {
				return err
			}
			if firstWarning == nil {
				firstWarning = err
			}
		}
		if err := c.skipTo(depth + 1); err != nil {
			return unexpectedEOF(child, err)
		}
	}
	return firstWarning
}

// SkipTag consumes the rest of the current element, including its end
// element.
func (c *Context) SkipTag() error {
	return c.skipTo(c.depth)
}

// skipTo consumes tokens until the element opened at depth is closed.
func (c *Context) skipTo(depth int) error {
	for c.depth >= depth {
		if _, err := c.token(); err != nil {
			return err
		}
	}
	return nil
}

// TextValue consumes the rest of the current element and hands its character
// data to consume. Text inside nested elements is ignored.
func (c *Context) TextValue(consume func(string)) error {
	depth := c.depth
	var sb strings.Builder
	for c.depth >= depth {
		tok, err := c.token()
		if err != nil {
			return err
		}
		if cd, ok := tok.(xml.CharData); ok && c.depth == depth {
			sb.Write(cd)
		}
	}
	consume(sb.String())
	return nil
}

func unexpectedEOF(start xml.StartElement, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("parsing <%s>: %w", start.Name.Local, err)
}
