// Package ovalxml holds the pieces shared by the OVAL XML bindings: the
// streaming parser context that dispatches child elements to tag parsers, the
// DOM helpers used to serialize records into an etree document, and input
// validation.
package ovalxml

import "encoding/xml"

const (
	// NamespaceResults is the namespace of OVAL results documents.
	NamespaceResults = "http://oval.mitre.org/XMLSchema/oval-results-5"
	// NamespaceSyschar is the namespace of OVAL system characteristics documents.
	NamespaceSyschar = "http://oval.mitre.org/XMLSchema/oval-system-characteristics-5"
)

// Conventional prefixes used when writing standalone documents.
const (
	PrefixResults = "oval-res"
	PrefixSyschar = "oval-sc"
)

// FormatName renders n the way it appears in log messages, "ns:local".
func FormatName(n xml.Name) string {
	return n.Space + ":" + n.Local
}
