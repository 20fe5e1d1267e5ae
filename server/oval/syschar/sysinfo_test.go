package syschar

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/Honny1/openscap/server/oval/ovalxml"
	"github.com/Honny1/openscap/server/ptr"
	"github.com/stretchr/testify/require"
)

const systemInfoXML = `<system_info xmlns="http://oval.mitre.org/XMLSchema/oval-system-characteristics-5">
	<os_name>Linux</os_name>
	<os_version>6.1.0-18-amd64</os_version>
	<architecture>x86_64</architecture>
	<primary_host_name>web01.example.com</primary_host_name>
	<interfaces>
		<interface>
			<interface_name>lo</interface_name>
			<ip_address>127.0.0.1</ip_address>
			<mac_address>00:00:00:00:00:00</mac_address>
		</interface>
		<interface>
			<interface_name>eth0</interface_name>
			<ip_address>192.168.122.10</ip_address>
			<mac_address>52:54:00:12:34:56</mac_address>
		</interface>
	</interfaces>
</system_info>`

func parseSystemInfoXML(t *testing.T, doc string) (*SystemInfo, *ovalxml.Context, error) {
	t.Helper()
	pc := ovalxml.NewContext(strings.NewReader(doc), nil)
	start, err := pc.NextStartElement()
	require.NoError(t, err)
	si, err := ParseSystemInfo(pc, start)
	return si, pc, err
}

func TestParseSystemInfo(t *testing.T) {
	si, pc, err := parseSystemInfoXML(t, systemInfoXML)
	require.NoError(t, err)
	require.Empty(t, pc.Warnings())

	require.Equal(t, "Linux", si.OSName)
	require.Equal(t, "6.1.0-18-amd64", si.OSVersion)
	require.Equal(t, "x86_64", si.Architecture)
	require.Equal(t, "web01.example.com", si.PrimaryHostName)
	require.Len(t, si.Interfaces, 2)
	require.Equal(t, "lo", *si.Interfaces[0].Name())
	require.Equal(t, "52:54:00:12:34:56", *si.Interfaces[1].MACAddress())
}

func TestParseSystemInfoWarnings(t *testing.T) {
	doc := strings.Replace(systemInfoXML, "<interfaces>", "<uptime>42</uptime><interfaces><route/>", 1)
	si, pc, err := parseSystemInfoXML(t, doc)
	require.True(t, ovalxml.IsWarning(err))
	require.Len(t, pc.Warnings(), 2)
	require.Equal(t, "skipping <"+ovalxml.NamespaceSyschar+":uptime>", pc.Warnings()[0].Message)
	require.Equal(t, "expecting <interface> skipping <"+ovalxml.NamespaceSyschar+":route>", pc.Warnings()[1].Message)

	// everything else was still read
	require.Equal(t, "web01.example.com", si.PrimaryHostName)
	require.Len(t, si.Interfaces, 2)

	_, _, err = parseSystemInfoXML(t, `<collected_objects `+scNS+`><object/></collected_objects>`)
	require.True(t, ovalxml.IsWarning(err))
}

func TestSystemInfoToDOMRoundTrip(t *testing.T) {
	si := NewSystemInfo()
	si.OSName = "Linux"
	si.Architecture = "aarch64"
	iface := NewInterface()
	iface.SetName(ptr.String("en0"))
	si.AddInterface(iface)

	doc := ovalxml.NewDocument(ovalxml.NamespaceSyschar, ovalxml.PrefixSyschar, "oval_system_characteristics")
	si.ToDOM(doc.Root())
	out, err := doc.WriteToString()
	require.NoError(t, err)
	require.Contains(t, out, "<oval-sc:os_version/>")
	require.Contains(t, out, "<oval-sc:interface_name>en0</oval-sc:interface_name>")

	pc := ovalxml.NewContext(strings.NewReader(out), nil)
	start, err := pc.FindElement(xml.Name{Space: ovalxml.NamespaceSyschar, Local: "system_info"})
	require.NoError(t, err)
	back, err := ParseSystemInfo(pc, start)
	require.NoError(t, err)
	require.Equal(t, "Linux", back.OSName)
	require.Equal(t, "", back.OSVersion)
	require.Equal(t, "aarch64", back.Architecture)
	require.Len(t, back.Interfaces, 1)
	require.Equal(t, "en0", *back.Interfaces[0].Name())
}

func TestSystemInfoPrint(t *testing.T) {
	si, _, err := parseSystemInfoXML(t, systemInfoXML)
	require.NoError(t, err)

	var buf bytes.Buffer
	si.Print(&buf, "")
	require.Equal(t, ""+
		"SYSTEM_INFO.OS_NAME           = Linux\n"+
		"SYSTEM_INFO.OS_VERSION        = 6.1.0-18-amd64\n"+
		"SYSTEM_INFO.ARCHITECTURE      = x86_64\n"+
		"SYSTEM_INFO.PRIMARY_HOST_NAME = web01.example.com\n"+
		"SYSTEM_INFO.INTERFACE[1].NAME           = lo\n"+
		"SYSTEM_INFO.INTERFACE[1].IP_ADDRESS      = 127.0.0.1\n"+
		"SYSTEM_INFO.INTERFACE[1].MAC_ADDRESS     = 00:00:00:00:00:00\n"+
		"SYSTEM_INFO.INTERFACE[2].NAME           = eth0\n"+
		"SYSTEM_INFO.INTERFACE[2].IP_ADDRESS      = 192.168.122.10\n"+
		"SYSTEM_INFO.INTERFACE[2].MAC_ADDRESS     = 52:54:00:12:34:56\n",
		buf.String())
}
