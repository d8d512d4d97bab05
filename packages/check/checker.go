package check

import (
	"fmt"

	"github.com/geerlingguy/Request/packages/request"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// Checker evaluates checks against one request result. The body is parsed as
// JSON at most once.
type Checker struct {
	result   *request.Result
	bodyJSON gjson.Result
	isJSON   bool
}

func NewChecker(res *request.Result) *Checker {
	c := &Checker{result: res}
	if res != nil && gjson.ValidBytes(res.Body) {
		c.bodyJSON = gjson.ParseBytes(res.Body)
		c.isJSON = true
	}
	return c
}

// Contains reports whether the response had status 200, a non-empty body,
// and the body contains substr as a literal substring.
func (c *Checker) Contains(substr string) bool {
	if c.result == nil {
		return false
	}
	return c.result.Contains(substr)
}

// JSONPath extracts a value from the body by gjson path. The second return
// is false when the body is not JSON or the path does not exist.
func (c *Checker) JSONPath(path string) (any, bool) {
	if !c.isJSON {
		return nil, false
	}
	v := c.bodyJSON.Get(path)
	if !v.Exists() {
		return nil, false
	}
	return v.Value(), true
}

// JSONPathEquals reports whether the value at path string-compares equal to
// expected.
func (c *Checker) JSONPathEquals(path, expected string) bool {
	if !c.isJSON {
		return false
	}
	v := c.bodyJSON.Get(path)
	return v.Exists() && v.String() == expected
}

// MatchesSchema validates the response body against a JSON Schema document.
// It returns whether the body is valid plus human-readable violations.
func (c *Checker) MatchesSchema(schema []byte) (bool, []string, error) {
	if c.result == nil {
		return false, nil, fmt.Errorf("no result to validate")
	}

	schemaLoader := gojsonschema.NewBytesLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(c.result.Body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return false, nil, fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		return true, nil, nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}
	return false, violations, nil
}
