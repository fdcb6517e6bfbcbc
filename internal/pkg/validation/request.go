package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// Request is an ordered snapshot of the validatable parts of an incoming
// request. Key order is preserved as encountered on the wire so that error
// output is deterministic for a given request.
type Request struct {
	Body      map[string]interface{}
	BodyKeys  []string
	Query     map[string]interface{}
	QueryKeys []string
	Params    map[string]interface{}
	ParamKeys []string
	// RawBody keeps the body bytes so handlers can bind a typed struct
	// after validation has passed.
	RawBody []byte
}

// Section returns the value map and encounter-ordered keys for s.
func (r *Request) Section(s Section) (map[string]interface{}, []string) {
	switch s {
	case SectionBody:
		return r.Body, r.BodyKeys
	case SectionQuery:
		return r.Query, r.QueryKeys
	case SectionParams:
		return r.Params, r.ParamKeys
	}
	return nil, nil
}

// FromGin drains the request body and snapshots body, query string and path
// parameters. A missing body is treated as an empty object; a body that is
// not a JSON object is an error since every mutating endpoint takes one.
func FromGin(ctx *gin.Context) (*Request, error) {
	req := &Request{
		Body:   map[string]interface{}{},
		Query:  map[string]interface{}{},
		Params: map[string]interface{}{},
	}
	if ctx.Request.Body != nil {
		raw, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			return nil, err
		}
		req.RawBody = raw
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, &req.Body); err != nil {
				return nil, fmt.Errorf("request body is not a JSON object: %w", err)
			}
			keys, err := topLevelKeys(raw)
			if err != nil {
				return nil, err
			}
			req.BodyKeys = keys
		}
	}
	for _, pair := range strings.Split(ctx.Request.URL.RawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if unescaped, err := url.QueryUnescape(key); err == nil {
			key = unescaped
		}
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}
		if _, seen := req.Query[key]; !seen {
			req.QueryKeys = append(req.QueryKeys, key)
		}
		req.Query[key] = value
	}
	for _, param := range ctx.Params {
		if _, seen := req.Params[param.Key]; !seen {
			req.ParamKeys = append(req.ParamKeys, param.Key)
		}
		req.Params[param.Key] = param.Value
	}
	return req, nil
}

// topLevelKeys scans the raw JSON object and returns its keys in wire order,
// which json.Unmarshal into a map does not preserve.
func topLevelKeys(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("request body is not a JSON object")
	}
	keys := []string{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in request body", tok)
		}
		keys = append(keys, key)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
