package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"whalecopy/whalegate/pkg/polymarket"
	"whalecopy/whalegate/pkg/validation"
)

const (
	// DefaultMaxBodyBytes bounds the JSON body read from a request.
	DefaultMaxBodyBytes = 64 << 10

	// EndpointParam names the operation to perform.
	EndpointParam = "endpoint"
)

// paramNames are the inbound parameters read from the query string and body.
// Anything else is ignored.
var paramNames = []string{EndpointParam, "limit", "query", "q", "id", "slug", "tokenId", "token_id", "user"}

// Call is the endpoint and raw parameters extracted from an inbound request.
type Call struct {
	// Endpoint is the requested operation, DefaultEndpoint when none was named.
	Endpoint string

	// Params holds the raw parameter values. Body fields override
	// query-string values of the same name.
	Params validation.Params
}

// ParseCall extracts the endpoint and parameters of r. Query-string values
// are read first; fields of a JSON object body then override them key by
// key. A body that is not a JSON object is treated as empty. String, number
// and boolean fields are accepted, null fields are skipped, and object or
// array values are rejected.
func ParseCall(r *http.Request, maxBodyBytes int64) (*Call, error) {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	params := validation.Params{}
	query := r.URL.Query()
	for _, name := range paramNames {
		if values, ok := query[name]; ok && len(values) > 0 {
			params[name] = values[0]
		}
	}

	if r.Body != nil && r.Method != http.MethodGet && r.Method != http.MethodHead {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		if int64(len(body)) > maxBodyBytes {
			return nil, &validation.Error{
				Field:   "body",
				Message: fmt.Sprintf("Request body exceeds %d bytes", maxBodyBytes),
			}
		}
		if err := mergeBody(params, body); err != nil {
			return nil, err
		}
	}

	call := &Call{Endpoint: string(polymarket.DefaultEndpoint), Params: params}
	if e, ok := params[EndpointParam]; ok {
		call.Endpoint = e
		delete(params, EndpointParam)
	}
	return call, nil
}

// mergeBody overlays the fields of a JSON object body onto params.
func mergeBody(params validation.Params, body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return nil
	}

	for _, name := range paramNames {
		v, ok := fields[name]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			params[name] = val
		case json.Number:
			params[name] = val.String()
		case bool:
			params[name] = strconv.FormatBool(val)
		default:
			if name == EndpointParam {
				return &validation.Error{Field: name, Message: "Invalid endpoint"}
			}
			return &validation.Error{Field: name, Message: fmt.Sprintf("Invalid %s parameter", name)}
		}
	}
	return nil
}
