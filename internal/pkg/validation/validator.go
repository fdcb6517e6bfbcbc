package validation

import (
	"regexp"
	"strconv"

	"github.com/asaskevich/govalidator"
)

var caipIDPattern = regexp.MustCompile(`^[-a-z0-9]+:[-a-zA-Z0-9]+$`)

// Validate evaluates every rule against the request and returns one error
// per failed rule, in rule declaration order. Type checks and emptiness
// checks are independent probes: a field that is both missing and declared
// isString+notEmpty reports both failures. Validate never rejects the
// request wholesale; malformed values only ever produce structured errors.
func Validate(req *Request, rules []Rule) []Error {
	errs := []Error{}
	for _, rule := range rules {
		values, _ := req.Section(rule.Section)
		value, present := values[rule.Field]
		if rule.Optional && !present {
			continue
		}
		if !check(rule, value, present) {
			errs = append(errs, Error{
				Location: string(rule.Section),
				Param:    rule.Field,
				Msg:      rule.message(),
			})
		}
	}
	return errs
}

func check(rule Rule, value interface{}, present bool) bool {
	switch rule.Kind {
	case IsString:
		_, ok := value.(string)
		return ok
	case IsNumeric:
		return isNumeric(value)
	case IsBoolean:
		return isBoolean(value)
	case IsArray:
		_, ok := value.([]interface{})
		return ok
	case IsArrayOfURL:
		return isArrayOfURL(value)
	case IsURL:
		s, ok := value.(string)
		return ok && govalidator.IsURL(s)
	case IsCaipID:
		s, ok := value.(string)
		return ok && caipIDPattern.MatchString(s)
	case IsMongoID:
		s, ok := value.(string)
		return ok && govalidator.IsMongoID(s)
	case MatchesPattern:
		s, ok := value.(string)
		return ok && rule.Pattern != nil && rule.Pattern.MatchString(s)
	case NotEmpty:
		return notEmpty(value, present)
	}
	return false
}

// isNumeric accepts JSON numbers and, for query/path values which always
// arrive as strings, anything that parses as a decimal number.
func isNumeric(value interface{}) bool {
	switch v := value.(type) {
	case float64, float32, int, int32, int64:
		return true
	case string:
		if v == "" {
			return false
		}
		_, err := strconv.ParseFloat(v, 64)
		return err == nil
	}
	return false
}

func isBoolean(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return true
	case string:
		return v == "true" || v == "false"
	}
	return false
}

// isArrayOfURL reports a single aggregate verdict: the value must be an
// array and every element must be a well-formed URL string. Individual bad
// elements are not reported separately.
func isArrayOfURL(value interface{}) bool {
	arr, ok := value.([]interface{})
	if !ok {
		return false
	}
	for _, element := range arr {
		s, ok := element.(string)
		if !ok || !govalidator.IsURL(s) {
			return false
		}
	}
	return true
}

func notEmpty(value interface{}, present bool) bool {
	if !present || value == nil {
		return false
	}
	switch v := value.(type) {
	case string:
		return v != ""
	case []interface{}:
		return len(v) > 0
	}
	return true
}
