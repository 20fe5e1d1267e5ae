package ovalxml

import "github.com/beevik/etree"

// SearchNsByHref looks for a namespace declaration binding uri that is in
// scope at el, walking up through its ancestors. It returns the bound prefix
// ("" for a default namespace declaration) and whether one was found.
// Declarations shadowed by a closer one for the same prefix are ignored.
func SearchNsByHref(el *etree.Element, uri string) (string, bool) {
	seen := make(map[string]struct{})
	for e := el; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			var prefix string
			switch {
			case a.Space == "xmlns":
				prefix = a.Key
			case a.Space == "" && a.Key == "xmlns":
				prefix = ""
			default:
				continue
			}
			if _, ok := seen[prefix]; ok {
				continue
			}
			seen[prefix] = struct{}{}
			if a.Value == uri {
				return prefix, true
			}
		}
	}
	return "", false
}

// NewChild appends an element named tag in namespace uri to parent. The
// prefix already bound to uri is reused; when uri is not in scope it is
// declared as the default namespace of the new element.
func NewChild(parent *etree.Element, uri, tag string) *etree.Element {
	prefix, ok := SearchNsByHref(parent, uri)
	child := parent.CreateElement(tag)
	switch {
	case !ok:
		child.CreateAttr("xmlns", uri)
	case prefix != "":
		child.Space = prefix
	}
	return child
}

// NewTextChild is like NewChild and sets the element text to *text. A nil text
// leaves the element empty.
func NewTextChild(parent *etree.Element, uri, tag string, text *string) *etree.Element {
	child := NewChild(parent, uri, tag)
	if text != nil {
		child.SetText(*text)
	}
	return child
}

// NewDocument returns an etree document whose root element is named tag and
// binds prefix to uri.
func NewDocument(uri, prefix, tag string) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(prefix + ":" + tag)
	root.CreateAttr("xmlns:"+prefix, uri)
	return doc
}
