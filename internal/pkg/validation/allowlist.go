package validation

import (
	"fmt"
	"strings"
)

var sectionOrder = []Section{SectionBody, SectionQuery, SectionParams}

// CheckAllowed reports fields present in a section but absent from its
// allow-list. All extras for a section are grouped into a single error whose
// message joins them in wire-encounter order. A section with no allow-list
// entry permits nothing.
func CheckAllowed(req *Request, allowed map[Section][]string) []Error {
	errs := []Error{}
	for _, section := range sectionOrder {
		permitted := map[string]struct{}{}
		for _, field := range allowed[section] {
			permitted[field] = struct{}{}
		}
		_, keys := req.Section(section)
		extras := []string{}
		for _, key := range keys {
			if _, ok := permitted[key]; !ok {
				extras = append(extras, key)
			}
		}
		if len(extras) > 0 {
			joined := strings.Join(extras, ", ")
			errs = append(errs, Error{
				Location: string(section),
				Param:    joined,
				Msg:      fmt.Sprintf("The following fields are not allowed in %s: %s", section, joined),
			})
		}
	}
	return errs
}

// Evaluate is the aggregation gate: declared-rule failures first in
// declaration order, then allow-list violations per section. A non-empty
// result means the caller must answer 400 with the array as the body and
// must not touch the store.
func Evaluate(req *Request, rules []Rule, allowed map[Section][]string) []Error {
	return append(Validate(req, rules), CheckAllowed(req, allowed)...)
}
