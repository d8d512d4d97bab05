package check

import (
	"testing"

	"github.com/geerlingguy/Request/packages/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonResult(status int, body string) *request.Result {
	return &request.Result{StatusCode: status, Body: []byte(body)}
}

func TestChecker_Contains(t *testing.T) {
	c := NewChecker(jsonResult(200, `{"status":"OK"}`))
	assert.True(t, c.Contains("OK"))
	assert.False(t, c.Contains("missing"))

	c = NewChecker(jsonResult(404, `{"status":"OK"}`))
	assert.False(t, c.Contains("OK"))

	c = NewChecker(nil)
	assert.False(t, c.Contains("OK"))
}

func TestChecker_JSONPath(t *testing.T) {
	c := NewChecker(jsonResult(200, `{"user":{"name":"alice","age":30},"tags":["a","b"]}`))

	v, ok := c.JSONPath("user.name")
	require.True(t, ok)
	assert.Equal(t, "alice", v)

	v, ok = c.JSONPath("tags.1")
	require.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = c.JSONPath("user.email")
	assert.False(t, ok)
}

func TestChecker_JSONPath_NonJSONBody(t *testing.T) {
	c := NewChecker(jsonResult(200, "plain text"))
	_, ok := c.JSONPath("anything")
	assert.False(t, ok)
}

func TestChecker_JSONPathEquals(t *testing.T) {
	c := NewChecker(jsonResult(200, `{"count":3,"name":"alice"}`))
	assert.True(t, c.JSONPathEquals("name", "alice"))
	assert.True(t, c.JSONPathEquals("count", "3"))
	assert.False(t, c.JSONPathEquals("name", "bob"))
	assert.False(t, c.JSONPathEquals("nope", ""))
}

func TestChecker_MatchesSchema(t *testing.T) {
	schema := []byte(`{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer"}
		},
		"required": ["name"]
	}`)

	c := NewChecker(jsonResult(200, `{"name":"alice","age":30}`))
	valid, violations, err := c.MatchesSchema(schema)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Empty(t, violations)

	c = NewChecker(jsonResult(200, `{"age":"thirty"}`))
	valid, violations, err = c.MatchesSchema(schema)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.NotEmpty(t, violations)
}

func TestChecker_MatchesSchema_NoResult(t *testing.T) {
	c := NewChecker(nil)
	_, _, err := c.MatchesSchema([]byte(`{}`))
	assert.Error(t, err)
}
