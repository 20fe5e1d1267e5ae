// Package oval reads and writes the sections of OVAL documents bound by the
// results and syschar packages.
package oval

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"

	"github.com/Honny1/openscap/server/contexts/ctxerr"
	"github.com/Honny1/openscap/server/oval/ovalxml"
	"github.com/Honny1/openscap/server/oval/results"
	"github.com/Honny1/openscap/server/oval/syschar"
	"github.com/beevik/etree"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// ErrSectionNotFound is returned when the document has no element to parse.
var ErrSectionNotFound = errors.New("section not found")

// Parser reads sections out of complete OVAL documents.
type Parser struct {
	Logger kitlog.Logger
	// SkipValidation disables the round-trip check run on the input before
	// parsing it.
	SkipValidation bool
}

// ParseDirectives returns the <directives> of the OVAL results document read
// from r. Warnings do not make it fail, they are returned alongside the
// directives.
func (p Parser) ParseDirectives(ctx context.Context, r io.Reader) (*results.Directives, []ovalxml.Warning, error) {
	pc, start, err := p.open(ctx, r, xml.Name{Space: ovalxml.NamespaceResults, Local: "directives"})
	if err != nil {
		return nil, nil, err
	}

	d := results.NewDirectives()
	if err := results.ParseDirectives(pc, start, d); err != nil && !ovalxml.IsWarning(err) {
		return nil, pc.Warnings(), ctxerr.Wrap(ctx, err, "parse directives")
	}
	level.Debug(pc.Logger()).Log("msg", "parsed directives", "warnings", len(pc.Warnings()))
	return d, pc.Warnings(), nil
}

// ParseSystemInfo returns the <system_info> of the OVAL system
// characteristics document read from r.
func (p Parser) ParseSystemInfo(ctx context.Context, r io.Reader) (*syschar.SystemInfo, []ovalxml.Warning, error) {
	pc, start, err := p.open(ctx, r, xml.Name{Space: ovalxml.NamespaceSyschar, Local: "system_info"})
	if err != nil {
		return nil, nil, err
	}

	si, err := syschar.ParseSystemInfo(pc, start)
	if err != nil && !ovalxml.IsWarning(err) {
		return nil, pc.Warnings(), ctxerr.Wrap(ctx, err, "parse system info")
	}
	level.Debug(pc.Logger()).Log("msg", "parsed system info", "interfaces", len(si.Interfaces), "warnings", len(pc.Warnings()))
	return si, pc.Warnings(), nil
}

func (p Parser) open(ctx context.Context, r io.Reader, section xml.Name) (*ovalxml.Context, xml.StartElement, error) {
	if !p.SkipValidation {
		buf, err := io.ReadAll(r)
		if err != nil {
			return nil, xml.StartElement{}, ctxerr.Wrap(ctx, err, "read document")
		}
		if err := ovalxml.Validate(bytes.NewReader(buf)); err != nil {
			return nil, xml.StartElement{}, ctxerr.Wrap(ctx, err, "validate document")
		}
		r = bytes.NewReader(buf)
	}

	pc := ovalxml.NewContext(r, p.Logger)
	start, err := pc.FindElement(section)
	switch {
	case errors.Is(err, io.EOF):
		return nil, start, ctxerr.Wrapf(ctx, ErrSectionNotFound, "find <%s>", section.Local)
	case err != nil:
		return nil, start, ctxerr.Wrapf(ctx, err, "find <%s>", section.Local)
	}
	return pc, start, nil
}

// WriteDirectives writes d as the only section of an OVAL results document.
// indent is the number of spaces per nesting level, 0 for none.
func WriteDirectives(w io.Writer, d *results.Directives, indent int) error {
	doc := ovalxml.NewDocument(ovalxml.NamespaceResults, ovalxml.PrefixResults, "oval_results")
	d.ToDOM(doc.Root())
	return writeDocument(w, doc, indent)
}

// WriteSystemInfo writes si as the only section of an OVAL system
// characteristics document.
func WriteSystemInfo(w io.Writer, si *syschar.SystemInfo, indent int) error {
	doc := ovalxml.NewDocument(ovalxml.NamespaceSyschar, ovalxml.PrefixSyschar, "oval_system_characteristics")
	si.ToDOM(doc.Root())
	return writeDocument(w, doc, indent)
}

func writeDocument(w io.Writer, doc *etree.Document, indent int) error {
	if indent > 0 {
		doc.Indent(indent)
	}
	_, err := doc.WriteTo(w)
	return err
}
