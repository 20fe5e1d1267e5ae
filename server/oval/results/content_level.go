package results

import "fmt"

// ContentLevel is how much detail a reported result carries.
type ContentLevel int

const (
	ContentUnknown ContentLevel = iota
	ContentThin
	ContentFull
)

// NewContentLevel decodes a 'ContentEnumeration' value, "thin" or "full".
func NewContentLevel(val string) (ContentLevel, error) {
	switch val {
	case "thin":
		return ContentThin, nil
	case "full":
		return ContentFull, nil
	default:
		return ContentUnknown, fmt.Errorf("invalid content level %q", val)
	}
}

// Valid reports whether c is one of the declared content levels, including
// ContentUnknown.
func (c ContentLevel) Valid() bool {
	return c >= ContentUnknown && c <= ContentFull
}

func (c ContentLevel) String() string {
	switch c {
	case ContentUnknown:
		return "unknown"
	case ContentThin:
		return "thin"
	case ContentFull:
		return "full"
	default:
		return fmt.Sprintf("ContentLevel(%d)", int(c))
	}
}

// attrValue is the value written to the content attribute. The schema only
// knows thin and full, so anything but full is written as thin.
func (c ContentLevel) attrValue() string {
	if c == ContentFull {
		return "full"
	}
	return "thin"
}
