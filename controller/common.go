package controller

import (
	"errors"
	"net/http"

	"github.com/DaUnderlord/monday-sippin-sub000/customerrors"
	"github.com/DaUnderlord/monday-sippin-sub000/model"
	"github.com/DaUnderlord/monday-sippin-sub000/validator"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

// NewResponse creates a success response with the given data and message.
func NewResponse(data any, message string) *model.DefaultResponse {
	return &model.DefaultResponse{
		Body: model.Response{
			Success: true,
			Message: message,
			Data:    data,
		},
	}
}

// ToHumaError turns service errors into problem responses. Unknown errors
// are logged and hidden behind a 500.
func ToHumaError(err error) error {
	var se *customerrors.StatusError
	if errors.As(err, &se) {
		return huma.NewError(se.Status, se.Message, detailErrors(se.Detail)...)
	}

	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return huma.NewError(http.StatusBadRequest, "Invalid Request", issueErrors(verr.Issues)...)
	}

	if status := customerrors.StatusOf(err); status != http.StatusInternalServerError {
		return huma.NewError(status, err.Error())
	}

	log.Error().Err(err).Msg("Unhandled service error")
	return huma.Error500InternalServerError("Unable to process request at this time")
}

func detailErrors(detail any) []error {
	switch d := detail.(type) {
	case nil:
		return nil
	case map[string]any:
		if issues, ok := d["issues"].([]string); ok {
			return issueErrors(issues)
		}
		return []error{&huma.ErrorDetail{Message: "upstream response", Location: "upstream", Value: d}}
	default:
		return []error{&huma.ErrorDetail{Message: "detail", Value: d}}
	}
}

func issueErrors(issues []string) []error {
	out := make([]error, 0, len(issues))
	for _, issue := range issues {
		out = append(out, &huma.ErrorDetail{Message: issue, Location: "body"})
	}
	return out
}
