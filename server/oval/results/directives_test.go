package results

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/Honny1/openscap/server/oval/ovalxml"
	"github.com/antchfx/xmlquery"
	kitlog "github.com/go-kit/log"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parseDirectivesXML(t *testing.T, doc string) (*Directives, *ovalxml.Context, error) {
	t.Helper()
	pc := ovalxml.NewContext(strings.NewReader(doc), kitlog.NewNopLogger())
	start, err := pc.FindElement(xml.Name{Space: ovalxml.NamespaceResults, Local: "directives"})
	require.NoError(t, err)

	d := NewDirectives()
	err = ParseDirectives(pc, start, d)
	return d, pc, err
}

func directivesXML(children string) string {
	return `<directives xmlns="` + ovalxml.NamespaceResults + `">` + children + `</directives>`
}

func collect(d *Directives) map[ResultType]Directive {
	m := make(map[ResultType]Directive)
	d.Each(func(t ResultType, dir Directive) {
		m[t] = dir
	})
	return m
}

func TestNewDirectives(t *testing.T) {
	d := NewDirectives()
	for _, rt := range ResultTypes {
		require.False(t, d.Reported(rt), rt.String())
		require.Equal(t, ContentUnknown, d.Content(rt), rt.String())
	}
	require.Len(t, collect(d), 6)
}

func TestDirectivesSetters(t *testing.T) {
	d := NewDirectives()
	require.NoError(t, d.SetReported(ResultError, true))
	require.NoError(t, d.SetContent(ResultError, ContentThin))
	require.Equal(t, Directive{Reported: true, Content: ContentThin}, d.Directive(ResultError))

	// the other slots are untouched
	require.Equal(t, Directive{}, d.Directive(ResultTrue))

	for _, rt := range []ResultType{ResultInvalid, numResultTypes, -1, 42} {
		require.ErrorIs(t, d.SetReported(rt, true), ErrInvalidResultType)
		require.ErrorIs(t, d.SetContent(rt, ContentFull), ErrInvalidResultType)
		require.Equal(t, Directive{}, d.Directive(rt))
		require.False(t, d.Reported(rt))
		require.Equal(t, ContentUnknown, d.Content(rt))
	}

	require.ErrorIs(t, d.SetContent(ResultTrue, ContentLevel(7)), ErrInvalidContentLevel)
	require.Equal(t, ContentUnknown, d.Content(ResultTrue))
}

func TestParseDirectivesReported(t *testing.T) {
	cases := []struct {
		value    string
		expected bool
	}{
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
		{"TRUE", false},
		{"yes", false},
		{"", false},
	}
	for _, c := range cases {
		t.Run(c.value, func(t *testing.T) {
			d, pc, err := parseDirectivesXML(t, directivesXML(`<definition_false reported="`+c.value+`" content="thin"/>`))
			require.NoError(t, err)
			require.Empty(t, pc.Warnings())
			require.Equal(t, c.expected, d.Reported(ResultFalse))
			require.Equal(t, ContentThin, d.Content(ResultFalse))
		})
	}

	// a missing attribute reads as not reported
	d, _, err := parseDirectivesXML(t, directivesXML(`<definition_false content="full"/>`))
	require.NoError(t, err)
	require.False(t, d.Reported(ResultFalse))
}

func TestParseDirectivesContent(t *testing.T) {
	d, pc, err := parseDirectivesXML(t, directivesXML(`
		<definition_true reported="true" content="thin"/>
		<definition_false reported="true" content="full"/>
		<definition_unknown reported="true"/>
		<definition_error reported="false" content="bogus"/>
	`))
	require.Error(t, err)
	require.True(t, ovalxml.IsWarning(err))

	require.Equal(t, ContentThin, d.Content(ResultTrue))
	require.Equal(t, ContentFull, d.Content(ResultFalse))
	// no content attribute means full
	require.Equal(t, ContentFull, d.Content(ResultUnknown))
	// bogus content leaves the previous value
	require.Equal(t, ContentUnknown, d.Content(ResultError))
	require.False(t, d.Reported(ResultError))

	warnings := pc.Warnings()
	require.Len(t, warnings, 1)
	require.Equal(t, `cannot resolve @content="bogus"`, warnings[0].Message)
	require.Equal(t, "definition_error", warnings[0].Element.Local)
}

func TestParseDirectivesUnknownElement(t *testing.T) {
	d, pc, err := parseDirectivesXML(t, directivesXML(`
		<definition_maybe reported="true" content="full"><nested/></definition_maybe>
		<definition_not_applicable reported="1" content="full"/>
	`))
	require.Error(t, err)
	require.True(t, ovalxml.IsWarning(err))

	// parsing continued past the unknown element
	require.True(t, d.Reported(ResultNotApplicable))
	require.Equal(t, ContentFull, d.Content(ResultNotApplicable))

	warnings := pc.Warnings()
	require.Len(t, warnings, 1)
	require.Equal(t, "cannot resolve <definition_maybe>", warnings[0].Message)
}

func TestDirectivesToDOM(t *testing.T) {
	d := NewDirectives()
	require.NoError(t, d.SetReported(ResultTrue, true))
	require.NoError(t, d.SetContent(ResultTrue, ContentFull))
	require.NoError(t, d.SetReported(ResultNotEvaluated, true))
	require.NoError(t, d.SetContent(ResultNotEvaluated, ContentThin))

	doc := ovalxml.NewDocument(ovalxml.NamespaceResults, ovalxml.PrefixResults, "oval_results")
	node := d.ToDOM(doc.Root())
	require.Equal(t, ovalxml.PrefixResults, node.Space)
	require.Equal(t, "directives", node.Tag)

	out, err := doc.WriteToString()
	require.NoError(t, err)

	parsed, err := xmlquery.Parse(strings.NewReader(out))
	require.NoError(t, err)

	children := xmlquery.Find(parsed, "//*[local-name()='directives']/*")
	require.Len(t, children, 6)
	var names []string
	for _, c := range children {
		names = append(names, c.Data)
		require.Equal(t, ovalxml.PrefixResults, c.Prefix)
	}
	require.Equal(t, []string{
		"definition_true",
		"definition_false",
		"definition_unknown",
		"definition_error",
		"definition_not_evaluated",
		"definition_not_applicable",
	}, names)

	attrs := func(n *xmlquery.Node) [2]string {
		return [2]string{n.SelectAttr("reported"), n.SelectAttr("content")}
	}
	require.Equal(t, [2]string{"true", "full"}, attrs(children[0]))
	require.Equal(t, [2]string{"false", "thin"}, attrs(children[1])) // unknown is written as thin
	require.Equal(t, [2]string{"true", "thin"}, attrs(children[4]))
}

func TestDirectivesRoundTrip(t *testing.T) {
	orig := NewDirectives()
	require.NoError(t, orig.SetReported(ResultTrue, true))
	require.NoError(t, orig.SetContent(ResultTrue, ContentFull))
	require.NoError(t, orig.SetReported(ResultFalse, true))
	require.NoError(t, orig.SetContent(ResultFalse, ContentThin))
	require.NoError(t, orig.SetContent(ResultError, ContentFull))
	require.NoError(t, orig.SetReported(ResultNotApplicable, true))

	doc := ovalxml.NewDocument(ovalxml.NamespaceResults, ovalxml.PrefixResults, "oval_results")
	orig.ToDOM(doc.Root())
	out, err := doc.WriteToString()
	require.NoError(t, err)

	parsed, pc, err := parseDirectivesXML(t, out)
	require.NoError(t, err)
	require.Empty(t, pc.Warnings())

	expected := collect(orig)
	for rt, dir := range expected {
		if dir.Content == ContentUnknown {
			dir.Content = ContentThin
			expected[rt] = dir
		}
	}
	if diff := cmp.Diff(expected, collect(parsed)); diff != "" {
		t.Errorf("unexpected directives after round trip (-want +got):\n%s", diff)
	}
}
