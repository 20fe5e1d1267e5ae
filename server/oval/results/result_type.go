package results

import "fmt"

// ResultType is the outcome of a definition evaluation.
type ResultType int

const (
	// ResultInvalid is the reserved zero value, it never carries a directive.
	ResultInvalid ResultType = iota
	ResultTrue
	ResultFalse
	ResultUnknown
	ResultError
	ResultNotEvaluated
	ResultNotApplicable

	numResultTypes
)

// ResultTypes lists the meaningful result types in the order they are
// serialized.
var ResultTypes = [...]ResultType{
	ResultTrue,
	ResultFalse,
	ResultUnknown,
	ResultError,
	ResultNotEvaluated,
	ResultNotApplicable,
}

var directiveTags = [numResultTypes]string{
	ResultTrue:          "definition_true",
	ResultFalse:         "definition_false",
	ResultUnknown:       "definition_unknown",
	ResultError:         "definition_error",
	ResultNotEvaluated:  "definition_not_evaluated",
	ResultNotApplicable: "definition_not_applicable",
}

var resultTypeByTag = func() map[string]ResultType {
	m := make(map[string]ResultType, len(ResultTypes))
	for _, t := range ResultTypes {
		m[directiveTags[t]] = t
	}
	return m
}()

// ResultTypeFromTag returns the result type whose directive is stored in the
// element named tag, e.g. "definition_true".
func ResultTypeFromTag(tag string) (ResultType, bool) {
	t, ok := resultTypeByTag[tag]
	return t, ok
}

// Valid reports whether t is one of the meaningful result types.
func (t ResultType) Valid() bool {
	return t > ResultInvalid && t < numResultTypes
}

// TagName returns the name of the directive element for t, or "" if t is not
// valid.
func (t ResultType) TagName() string {
	if !t.Valid() {
		return ""
	}
	return directiveTags[t]
}

// NewResultType decodes a 'ResultEnumeration' value.
// See https://oval.mitre.org/language/version5.11/ovalresults/documentation/oval-results-schema.html#ResultEnumeration
func NewResultType(val string) (ResultType, error) {
	switch val {
	case "true":
		return ResultTrue, nil
	case "false":
		return ResultFalse, nil
	case "unknown":
		return ResultUnknown, nil
	case "error":
		return ResultError, nil
	case "not evaluated":
		return ResultNotEvaluated, nil
	case "not applicable":
		return ResultNotApplicable, nil
	default:
		return ResultInvalid, fmt.Errorf("invalid result type %q", val)
	}
}

func (t ResultType) String() string {
	switch t {
	case ResultTrue:
		return "true"
	case ResultFalse:
		return "false"
	case ResultUnknown:
		return "unknown"
	case ResultError:
		return "error"
	case ResultNotEvaluated:
		return "not evaluated"
	case ResultNotApplicable:
		return "not applicable"
	default:
		return fmt.Sprintf("ResultType(%d)", int(t))
	}
}
