// Package syschar binds the <system_info> section of OVAL system
// characteristics documents, and the network interfaces it lists.
package syschar

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/Honny1/openscap/server/oval/ovalxml"
	"github.com/Honny1/openscap/server/ptr"
	"github.com/beevik/etree"
)

// Interface is a network interface of the system the characteristics were
// collected on. Every field is optional.
type Interface struct {
	name       *string
	ipAddress  *string
	macAddress *string
}

// NewInterface returns an interface with no field set.
func NewInterface() *Interface {
	return &Interface{}
}

// Name returns the interface name, nil when unset.
func (i *Interface) Name() *string {
	return i.name
}

// SetName stores a copy of name; nil clears the field.
func (i *Interface) SetName(name *string) {
	i.name = ptr.CloneString(name)
}

// IPAddress returns the interface address, nil when unset.
func (i *Interface) IPAddress() *string {
	return i.ipAddress
}

// SetIPAddress stores a copy of ipAddress; nil clears the field.
func (i *Interface) SetIPAddress(ipAddress *string) {
	i.ipAddress = ptr.CloneString(ipAddress)
}

// MACAddress returns the hardware address, nil when unset.
func (i *Interface) MACAddress() *string {
	return i.macAddress
}

// SetMACAddress stores a copy of macAddress; nil clears the field.
func (i *Interface) SetMACAddress(macAddress *string) {
	i.macAddress = ptr.CloneString(macAddress)
}

var interfaceFields = map[string]func(*Interface, *string){
	"interface_name": (*Interface).SetName,
	"ip_address":     (*Interface).SetIPAddress,
	"mac_address":    (*Interface).SetMACAddress,
}

// ParseInterface parses start, which must be a system characteristics
// <interface> element, and passes the result to consumer. Any other element is
// skipped with a warning and consumer is not called.
func ParseInterface(pc *ovalxml.Context, start xml.StartElement, consumer func(*Interface)) error {
	if start.Name != (xml.Name{Space: ovalxml.NamespaceSyschar, Local: "interface"}) {
		w := pc.Warnf(start.Name, "expecting <interface> skipping <%s>", ovalxml.FormatName(start.Name))
		if err := pc.SkipTag(); err != nil {
			return err
		}
		return w
	}

	iface := NewInterface()
	err := pc.ParseTag(start, iface.parseField)
	consumer(iface)
	return err
}

func (i *Interface) parseField(pc *ovalxml.Context, start xml.StartElement) error {
	set, ok := interfaceFields[start.Name.Local]
	if !ok || start.Name.Space != ovalxml.NamespaceSyschar {
		return pc.Warnf(start.Name, "skipping <%s>", ovalxml.FormatName(start.Name))
	}
	return pc.TextValue(func(text string) {
		set(i, &text)
	})
}

// ToDOM appends an <interface> element describing i to parent. The three
// children are always written, unset fields as empty elements. A nil i writes
// nothing.
func (i *Interface) ToDOM(parent *etree.Element) *etree.Element {
	if i == nil {
		return nil
	}
	node := ovalxml.NewChild(parent, ovalxml.NamespaceSyschar, "interface")
	ovalxml.NewTextChild(node, ovalxml.NamespaceSyschar, "interface_name", i.name)
	ovalxml.NewTextChild(node, ovalxml.NamespaceSyschar, "ip_address", i.ipAddress)
	ovalxml.NewTextChild(node, ovalxml.NamespaceSyschar, "mac_address", i.macAddress)
	return node
}

// Print writes a debug dump of i to w. idx is the position of i in its list,
// 0 for a lone interface.
func (i *Interface) Print(w io.Writer, indent string, idx int) {
	prefix := nextIndent(indent, "INTERFACE", idx)

	fmt.Fprintf(w, "%sNAME           = %s\n", prefix, ptr.StringValueOrZero(i.name))
	if i.ipAddress != nil {
		fmt.Fprintf(w, "%sIP_ADDRESS      = %s\n", prefix, *i.ipAddress)
	}
	if i.macAddress != nil {
		fmt.Fprintf(w, "%sMAC_ADDRESS     = %s\n", prefix, *i.macAddress)
	}
}

func nextIndent(indent, label string, idx int) string {
	if len(indent) > 80 {
		indent = "...."
	}
	if idx == 0 {
		return indent + label + "."
	}
	return fmt.Sprintf("%s%s[%d].", indent, label, idx)
}
