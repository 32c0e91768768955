package handler

import (
	"encoding/json"
	"net/http"
)

// JSONResponse is the envelope every JSON response is written in.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j *jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption adjusts a JSON response.
type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(j *jsonResponse) { j.status = status }
}

func WithJSONMeta(meta map[string]any) JSONOption {
	return func(j *jsonResponse) { j.body.Meta = meta }
}

// JSON writes v as the data member with status 200. An error value is
// written as JSONError would; a JSONResponse is written as is.
func JSON(v any, opts ...JSONOption) Response {
	switch val := v.(type) {
	case error:
		return JSONError(val, opts...)
	case JSONResponse:
		return build(&jsonResponse{status: http.StatusOK, body: val}, opts)
	default:
		return build(&jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}, opts)
	}
}

// JSONError writes err in the error member with the status classify picks.
func JSONError(err error, opts ...JSONOption) Response {
	return build(classify(err).json(), opts)
}

func (p problem) json() *jsonResponse {
	return &jsonResponse{status: p.Status, body: JSONResponse{Error: &ErrorDetail{Code: p.Code, Message: p.Message}}}
}

func (p problem) response() Response { return p.json() }

func build(j *jsonResponse, opts []JSONOption) Response {
	for _, opt := range opts {
		opt(j)
	}
	return j
}
