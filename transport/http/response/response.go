package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"tourdesk/shared/constant"
	"tourdesk/shared/failure"
	"tourdesk/shared/logger"
)

const internalErrorMessage = "internal server error"

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

// WithJSON wraps payload in a data envelope.
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError answers with the failure code of err. Errors that are not a failure keep their
// text out of the response body.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	message := err.Error()
	if code == http.StatusInternalServerError && !failure.IsFailure(err) {
		message = internalErrorMessage
	}

	write(writer, code, Error{Error: &message})
}

// WithPDF streams a rendered document, inline or as an attachment named filename.
func WithPDF(writer http.ResponseWriter, filename string, content []byte, download bool) {
	disposition := "inline"
	if download {
		disposition = "attachment"
	}

	header := writer.Header()
	header.Set(constant.RequestHeaderContentType, constant.ContentTypePDF)
	header.Set(constant.RequestHeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, filename))
	header.Set(constant.RequestHeaderContentLength, strconv.Itoa(len(content)))
	writer.WriteHeader(http.StatusOK)

	if _, err := writer.Write(content); err != nil {
		logger.ErrorWithStack(err)
	}
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, internalErrorMessage, http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
