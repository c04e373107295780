package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tripplanner/shared/constant"
	"tripplanner/shared/failure"
	"tripplanner/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends a response with an error message
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	response(writer, code, Error{Error: &errMsg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// StartEventStream writes the server-sent events headers. It returns false
// when the writer cannot flush, in which case an error response was sent.
func StartEventStream(writer http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := writer.(http.Flusher)
	if !ok {
		WithError(writer, failure.InternalError(fmt.Errorf("streaming is not supported")))

		return nil, false
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeEventStream)
	writer.Header().Set(constant.RequestHeaderCacheControl, "no-cache")
	writer.Header().Set(constant.RequestHeaderConnection, "keep-alive")
	writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	return flusher, true
}

// WithEvent writes one server-sent event carrying payload as JSON data.
func WithEvent(writer http.ResponseWriter, flusher http.Flusher, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to encode event: %w", err)
	}

	if _, err = fmt.Fprintf(writer, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	flusher.Flush()

	return nil
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
