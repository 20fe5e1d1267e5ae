package syschar

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/Honny1/openscap/server/oval/ovalxml"
	"github.com/beevik/etree"
)

// SystemInfo describes the system the characteristics were collected on.
type SystemInfo struct {
	OSName          string
	OSVersion       string
	Architecture    string
	PrimaryHostName string
	Interfaces      []*Interface
}

// NewSystemInfo returns an empty SystemInfo.
func NewSystemInfo() *SystemInfo {
	return &SystemInfo{}
}

// AddInterface appends i to the interfaces of si.
func (si *SystemInfo) AddInterface(i *Interface) {
	si.Interfaces = append(si.Interfaces, i)
}

type textField struct {
	tag string
	val *string
}

func (si *SystemInfo) textFields() []textField {
	return []textField{
		{"os_name", &si.OSName},
		{"os_version", &si.OSVersion},
		{"architecture", &si.Architecture},
		{"primary_host_name", &si.PrimaryHostName},
	}
}

// ParseSystemInfo parses start, a system characteristics <system_info>
// element. Unknown children are skipped with a warning; the returned
// SystemInfo holds everything that could be read.
func ParseSystemInfo(pc *ovalxml.Context, start xml.StartElement) (*SystemInfo, error) {
	si := NewSystemInfo()
	if start.Name != (xml.Name{Space: ovalxml.NamespaceSyschar, Local: "system_info"}) {
		w := pc.Warnf(start.Name, "expecting <system_info> skipping <%s>", ovalxml.FormatName(start.Name))
		if err := pc.SkipTag(); err != nil {
			return nil, err
		}
		return si, w
	}
	err := pc.ParseTag(start, si.parseField)
	return si, err
}

func (si *SystemInfo) parseField(pc *ovalxml.Context, start xml.StartElement) error {
	if start.Name.Space == ovalxml.NamespaceSyschar {
		if start.Name.Local == "interfaces" {
			return pc.ParseTag(start, func(pc *ovalxml.Context, start xml.StartElement) error {
				return ParseInterface(pc, start, si.AddInterface)
			})
		}
		for _, f := range si.textFields() {
			if f.tag == start.Name.Local {
				val := f.val
				return pc.TextValue(func(text string) { *val = text })
			}
		}
	}
	return pc.Warnf(start.Name, "skipping <%s>", ovalxml.FormatName(start.Name))
}

// ToDOM appends a <system_info> element describing si to parent.
func (si *SystemInfo) ToDOM(parent *etree.Element) *etree.Element {
	node := ovalxml.NewChild(parent, ovalxml.NamespaceSyschar, "system_info")
	for _, f := range si.textFields() {
		ovalxml.NewTextChild(node, ovalxml.NamespaceSyschar, f.tag, f.val)
	}
	ifaces := ovalxml.NewChild(node, ovalxml.NamespaceSyschar, "interfaces")
	for _, i := range si.Interfaces {
		i.ToDOM(ifaces)
	}
	return node
}

// Print writes a debug dump of si and its interfaces to w.
func (si *SystemInfo) Print(w io.Writer, indent string) {
	prefix := nextIndent(indent, "SYSTEM_INFO", 0)

	fmt.Fprintf(w, "%sOS_NAME           = %s\n", prefix, si.OSName)
	fmt.Fprintf(w, "%sOS_VERSION        = %s\n", prefix, si.OSVersion)
	fmt.Fprintf(w, "%sARCHITECTURE      = %s\n", prefix, si.Architecture)
	fmt.Fprintf(w, "%sPRIMARY_HOST_NAME = %s\n", prefix, si.PrimaryHostName)
	for idx, i := range si.Interfaces {
		i.Print(w, prefix, idx+1)
	}
}
