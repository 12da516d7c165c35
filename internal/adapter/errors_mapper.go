package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// errorBody is the union of the error shapes the backend emits.
type errorBody struct {
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"message"`
	Error            any    `json:"error"`
	ErrorCode        string `json:"error_code"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	perr := &ProviderError{Status: resp.StatusCode()}
	perr.Code, perr.Message = parseErrorBody(resp.Body())
	if perr.Message == "" {
		perr.Message = http.StatusText(resp.StatusCode())
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized, resp.StatusCode() == http.StatusForbidden:
		perr.kind = ErrInvalidToken
	case resp.StatusCode() == http.StatusNotFound:
		perr.kind = ErrNotFound
	case resp.StatusCode() == http.StatusTooManyRequests:
		perr.kind = ErrRateLimited
	case resp.StatusCode() >= http.StatusInternalServerError:
		perr.kind = ErrUnavailable
	default:
		perr.kind = ErrBadRequest
	}

	return perr
}

// parseErrorBody picks the message from msg, error_description, message and
// error, in that order. Non-JSON bodies are returned verbatim.
func parseErrorBody(body []byte) (code, message string) {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return "", ""
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return "", raw
	}

	errorString, _ := eb.Error.(string)

	code = eb.ErrorCode
	if code == "" && eb.ErrorDescription != "" {
		code = errorString
	}

	for _, m := range []string{eb.Msg, eb.ErrorDescription, eb.Message, errorString} {
		if m != "" {
			return code, m
		}
	}
	return code, ""
}

// unavailable wraps a transport failure.
func unavailable(err error) error {
	return &ProviderError{Message: err.Error(), kind: ErrUnavailable}
}
