package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"activitycast/internal/types"
)

// DefaultMaxBodyBytes bounds request bodies, after decompression.
const DefaultMaxBodyBytes = 2 << 20 // 2 MB

// APIResponse is the standard envelope for all successful API responses.
type APIResponse struct {
	Data interface{}   `json:"data,omitempty"`
	Meta *ResponseMeta `json:"meta,omitempty"`
}

// ResponseMeta carries non-blocking information about a response.
type ResponseMeta struct {
	RequestID string   `json:"request_id,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// APIErrorResponse is the standard envelope for all error API responses.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the structured error information returned to clients.
type ErrorDetail struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id"`
}

// JSON writes a JSON response with the given status code and data.
// If marshalling fails, it falls back to a 500 error response.
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fallback := APIErrorResponse{
			Error: ErrorDetail{
				Code:      string(types.ErrCodeInternalUnexpected),
				Message:   "failed to marshal response",
				RequestID: types.GetRequestID(r.Context()),
			},
		}
		_ = json.NewEncoder(w).Encode(fallback)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Data writes data in the APIResponse envelope with the request ID attached.
func Data(w http.ResponseWriter, r *http.Request, status int, data interface{}, warnings ...string) {
	JSON(w, r, status, APIResponse{
		Data: data,
		Meta: &ResponseMeta{
			RequestID: types.GetRequestID(r.Context()),
			Warnings:  warnings,
		},
	})
}

// Error writes an error response to the client. It inspects the error chain:
//   - If the error is (or wraps) a *types.AppError, it uses its Code to determine
//     the HTTP status and writes a structured APIErrorResponse.
//   - Any other error yields a 500 with "internal_unexpected_error".
//
// Wrapped error details are never exposed to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	requestID := types.GetRequestID(r.Context())

	var appErr *types.AppError
	if errors.As(err, &appErr) {
		JSON(w, r, appErr.HTTPStatus(), APIErrorResponse{
			Error: ErrorDetail{
				Code:      string(appErr.Code),
				Message:   appErr.Message,
				Details:   appErr.Details,
				RequestID: requestID,
			},
		})
		return
	}

	JSON(w, r, http.StatusInternalServerError, APIErrorResponse{
		Error: ErrorDetail{
			Code:      string(types.ErrCodeInternalUnexpected),
			Message:   "an unexpected error occurred",
			RequestID: requestID,
		},
	})
}

type decodeOptions struct {
	allowUnknown bool
}

// DecodeOption adjusts DecodeJSON behaviour.
type DecodeOption func(*decodeOptions)

// AllowUnknownFields accepts fields dst does not declare. Provider payloads
// forwarded verbatim carry many fields the engine ignores.
func AllowUnknownFields() DecodeOption {
	return func(o *decodeOptions) { o.allowUnknown = true }
}

// DecodeJSON reads the request body into dst with DefaultMaxBodyBytes.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, opts ...DecodeOption) error {
	return DecodeJSONWithLimit(w, r, dst, DefaultMaxBodyBytes, opts...)
}

// DecodeJSONWithLimit reads the request body into dst, enforcing:
//   - gzip or zstd Content-Encoding is decoded transparently.
//   - At most limit bytes, both on the wire and after decompression.
//   - DisallowUnknownFields unless AllowUnknownFields is given.
//   - Exactly one JSON value.
//
// Failures are returned as *types.AppError ("validation_invalid_json", or
// "unsupported_content_encoding" for other encodings).
func DecodeJSONWithLimit(w http.ResponseWriter, r *http.Request, dst interface{}, limit int64, opts ...DecodeOption) error {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit)

	body, closeBody, err := decodedBody(r, limit)
	if err != nil {
		return err
	}
	defer closeBody()

	dec := json.NewDecoder(body)
	if !o.allowUnknown {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(dst); err != nil {
		return mapDecodeError(err, limit)
	}

	if dec.More() {
		return types.NewAppError(
			types.ErrCodeValidationInvalidJSON,
			"request body must contain a single JSON object",
			nil,
		)
	}

	return nil
}

// decodedBody wraps r.Body according to Content-Encoding.
func decodedBody(r *http.Request, limit int64) (io.Reader, func(), error) {
	encoding := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Encoding")))
	switch encoding {
	case "", "identity":
		return r.Body, func() {}, nil
	case "gzip":
		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			return nil, nil, types.NewAppError(types.ErrCodeValidationInvalidJSON, "malformed gzip request body", err)
		}
		return &capReader{r: zr, remaining: limit}, func() { _ = zr.Close() }, nil
	case "zstd":
		zr, err := zstd.NewReader(r.Body,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(uint64(limit)),
		)
		if err != nil {
			return nil, nil, types.NewAppError(types.ErrCodeValidationInvalidJSON, "malformed zstd request body", err)
		}
		return &capReader{r: zr, remaining: limit}, zr.Close, nil
	}
	return nil, nil, types.NewAppErrorWithDetails(
		types.ErrCodeUnsupportedEncoding,
		"unsupported Content-Encoding",
		nil,
		map[string]any{"encoding": encoding, "supported": []string{"gzip", "zstd"}},
	)
}

// capReader fails once more than remaining bytes have been read, guarding
// against decompression bombs.
type capReader struct {
	r         io.Reader
	remaining int64
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		return 0, &http.MaxBytesError{}
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, &http.MaxBytesError{}
	}
	return n, err
}

// mapDecodeError translates a json.Decoder error into a structured AppError.
func mapDecodeError(err error, limit int64) *types.AppError {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return types.NewAppError(
			types.ErrCodeValidationInvalidJSON,
			fmt.Sprintf("request body must not exceed %d bytes", limit),
			err,
		)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return types.NewAppError(
			types.ErrCodeValidationInvalidJSON,
			"malformed JSON in request body",
			err,
		)
	}

	var unmarshalTypeErr *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeErr) {
		return types.NewAppErrorWithDetails(
			types.ErrCodeValidationInvalidJSON,
			"invalid value for field",
			err,
			map[string]any{
				"field":    unmarshalTypeErr.Field,
				"expected": unmarshalTypeErr.Type.String(),
			},
		)
	}

	if strings.HasPrefix(err.Error(), "json: unknown field") {
		return types.NewAppError(
			types.ErrCodeValidationInvalidJSON,
			"unknown field in request body: "+strings.TrimPrefix(err.Error(), "json: unknown field "),
			err,
		)
	}

	if errors.Is(err, io.EOF) {
		return types.NewAppError(
			types.ErrCodeValidationInvalidJSON,
			"request body must not be empty",
			err,
		)
	}

	return types.NewAppError(
		types.ErrCodeValidationInvalidJSON,
		"invalid JSON in request body",
		err,
	)
}
