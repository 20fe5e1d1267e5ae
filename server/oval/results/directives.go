// Package results binds the <directives> section of OVAL results documents:
// for every result type, whether definitions with that result are reported
// and with which level of detail.
package results

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"

	"github.com/Honny1/openscap/server/oval/ovalxml"
	"github.com/beevik/etree"
)

var (
	ErrInvalidResultType   = errors.New("invalid result type")
	ErrInvalidContentLevel = errors.New("invalid content level")
)

// Directive controls the reporting of one result type.
type Directive struct {
	Reported bool
	Content  ContentLevel
}

// Directives holds one Directive per result type. The zero value is ready to
// use: nothing is reported and every content level is unknown.
type Directives struct {
	directives [numResultTypes]Directive
}

// NewDirectives returns a table where no result type is reported.
func NewDirectives() *Directives {
	return &Directives{}
}

// Directive returns the directive for t. An invalid t yields the zero
// Directive.
func (d *Directives) Directive(t ResultType) Directive {
	if !t.Valid() {
		return Directive{}
	}
	return d.directives[t]
}

// Reported tells whether results of type t are reported.
func (d *Directives) Reported(t ResultType) bool {
	return d.Directive(t).Reported
}

// Content returns the content level of results of type t.
func (d *Directives) Content(t ResultType) ContentLevel {
	return d.Directive(t).Content
}

// SetReported sets whether results of type t are reported.
func (d *Directives) SetReported(t ResultType, reported bool) error {
	if !t.Valid() {
		return fmt.Errorf("set reported: %w: %d", ErrInvalidResultType, int(t))
	}
	d.directives[t].Reported = reported
	return nil
}

// SetContent sets the content level of results of type t.
func (d *Directives) SetContent(t ResultType, content ContentLevel) error {
	if !t.Valid() {
		return fmt.Errorf("set content: %w: %d", ErrInvalidResultType, int(t))
	}
	if !content.Valid() {
		return fmt.Errorf("set content: %w: %d", ErrInvalidContentLevel, int(content))
	}
	d.directives[t].Content = content
	return nil
}

// Each calls fn for every meaningful result type, in serialization order.
func (d *Directives) Each(fn func(ResultType, Directive)) {
	for _, t := range ResultTypes {
		fn(t, d.directives[t])
	}
}

// ParseDirectives reads the children of start, a <directives> element, into
// d. Unknown elements and content values are reported as warnings and the
// first one is returned after all children were read.
func ParseDirectives(pc *ovalxml.Context, start xml.StartElement, d *Directives) error {
	return pc.ParseTag(start, d.parseDirective)
}

func (d *Directives) parseDirective(pc *ovalxml.Context, start xml.StartElement) error {
	t, ok := ResultTypeFromTag(start.Name.Local)
	if !ok {
		return pc.Warnf(start.Name, "cannot resolve <%s>", start.Name.Local)
	}

	reported, _ := attr(start, "reported")
	d.directives[t].Reported = reported == "1" || reported == "true"

	val, ok := attr(start, "content")
	if !ok {
		d.directives[t].Content = ContentFull
		return nil
	}
	content, err := NewContentLevel(val)
	if err != nil {
		return pc.Warnf(start.Name, "cannot resolve @content=%q", val)
	}
	d.directives[t].Content = content
	return nil
}

func attr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// ToDOM appends a <directives> element describing d to parent and returns it.
func (d *Directives) ToDOM(parent *etree.Element) *etree.Element {
	node := ovalxml.NewChild(parent, ovalxml.NamespaceResults, "directives")
	d.Each(func(t ResultType, dir Directive) {
		child := ovalxml.NewChild(node, ovalxml.NamespaceResults, t.TagName())
		child.CreateAttr("reported", strconv.FormatBool(dir.Reported))
		child.CreateAttr("content", dir.Content.attrValue())
	})
	return node
}
