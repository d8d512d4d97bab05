package output

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/geerlingguy/Request/packages/history"
	"github.com/geerlingguy/Request/packages/request"
	"github.com/stretchr/testify/assert"
)

func TestFormatResult(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatResult("https://example.com", &request.Result{
		StatusCode: 200,
		Body:       []byte("hello"),
		Latency:    42 * time.Millisecond,
	})

	out := buf.String()
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "200")
	assert.Contains(t, out, "42ms")
	assert.Contains(t, out, "hello")
}

func TestFormatResult_TransportError(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatResult("https://example.com", &request.Result{
		Err: errors.New("connection refused"),
	})

	assert.Contains(t, buf.String(), "connection refused")
}

func TestFormatHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatHistory(nil)
	assert.Contains(t, buf.String(), "no history")

	buf.Reset()
	f.FormatHistory([]history.Entry{{
		Method:     "GET",
		Address:    "https://example.com",
		StatusCode: 200,
		LatencyMs:  10,
		CreatedAt:  time.Now(),
	}})
	assert.Contains(t, buf.String(), "https://example.com")
}
