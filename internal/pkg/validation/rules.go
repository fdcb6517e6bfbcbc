package validation

import "regexp"

// Section names a part of the incoming request a rule applies to. The
// values double as the wire-level "location" of reported errors.
type Section string

const (
	SectionBody   Section = "body"
	SectionQuery  Section = "query"
	SectionParams Section = "params"
)

// Kind selects the check a rule performs on its field.
type Kind string

const (
	IsString       Kind = "isString"
	IsNumeric      Kind = "isNumeric"
	IsBoolean      Kind = "isBoolean"
	IsArray        Kind = "isArray"
	IsArrayOfURL   Kind = "isArrayOfUrl"
	IsURL          Kind = "isUrl"
	IsCaipID       Kind = "isCaipId"
	IsMongoID      Kind = "isMongoId"
	MatchesPattern Kind = "matchesPattern"
	NotEmpty       Kind = "notEmpty"
)

// Rule is one immutable constraint on one field of one request section.
// Rules are declared per endpoint and evaluated in declaration order; every
// rule runs and every failure is reported.
type Rule struct {
	Field   string
	Section Section
	Kind    Kind
	// Pattern is required for MatchesPattern and ignored elsewhere.
	Pattern *regexp.Regexp
	// Message overrides the default failure message for the kind.
	Message string
	// Optional skips the rule when the field is absent from the section.
	Optional bool
}

// Error is the wire shape of a single validation failure.
type Error struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Msg      string `json:"msg"`
}

var defaultMessages = map[Kind]string{
	IsString:       "must be string value",
	IsNumeric:      "must be numeric value",
	IsBoolean:      "must be boolean value",
	IsArray:        "must be array value",
	IsArrayOfURL:   "must be an array of URL",
	IsURL:          "must be a valid URL",
	IsCaipID:       "must be a valid CAIP id",
	IsMongoID:      "must be a valid id",
	MatchesPattern: "invalid value",
	NotEmpty:       "must not be empty",
}

func (r Rule) message() string {
	if r.Message != "" {
		return r.Message
	}
	return defaultMessages[r.Kind]
}
