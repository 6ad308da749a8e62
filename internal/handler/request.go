package handler

import (
	"encoding/json"
	"errors"
	"io"
	"math"

	"edge-shortener/internal/domain"
)

const maxBodyBytes = 1 << 20

var (
	errInvalidJSON = errors.New("invalid json")
	errURLRequired = errors.New("url required")
)

// createRequest is the decoded body of a Create-Link call.
type createRequest struct {
	URL            string
	ExpirationDays int64
}

// parseCreateRequest decodes body as a single JSON value.
//
// A body that is not valid JSON, or is JSON null, is errInvalidJSON. Any
// other value is read as an object: "url" must be a non-empty string,
// otherwise errURLRequired. "expiration" is used only when it is a non-zero
// whole number; everything else means the default.
//
// A non-string "url" such as 42 or true is refused rather than stringified
// (see "Non-string url" in DESIGN.md).
func parseCreateRequest(body io.Reader) (*createRequest, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, errInvalidJSON
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errInvalidJSON
	}
	if raw == nil {
		return nil, errInvalidJSON
	}

	req := &createRequest{ExpirationDays: domain.DefaultExpirationDays}

	fields, _ := raw.(map[string]interface{})
	if days, ok := integralDays(fields["expiration"]); ok {
		req.ExpirationDays = days
	}

	url, _ := fields["url"].(string)
	if url == "" {
		return nil, errURLRequired
	}
	req.URL = url

	return req, nil
}

// integralDays reports whether v is a non-zero JSON number with no
// fractional part. Magnitudes past float64 are not numbers at all; whole
// numbers past int64 saturate.
func integralDays(v interface{}) (int64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return i, i != 0
	}

	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	if f == 0 || f != math.Trunc(f) {
		return 0, false
	}
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64, true
	case f <= math.MinInt64:
		return math.MinInt64, true
	}
	return int64(f), true
}
