package validator

import (
	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/Oudwins/zog"
)

var FilterIDShape = zog.Shape{
	"ID": zog.String().Trim().Required(),
}

var QueryShape = zog.Shape{
	"Query": zog.String().Max(4096),
}

// SelectionTargetTest requires an id for every action except clear.
func SelectionTargetTest(dataPtr any, ctx zog.Ctx) bool {
	req, ok := dataPtr.(*model.SelectionRequest)
	if !ok {
		return true
	}

	switch req.Action {
	case model.ActionClear:
		return true
	case model.ActionSelect, model.ActionDeselect:
		if req.ID == "" {
			ctx.AddIssue(&zog.ZogIssue{
				Path:    "id",
				Message: "id is required for " + string(req.Action),
			})
			return false
		}
		return true
	default:
		ctx.AddIssue(&zog.ZogIssue{
			Path:    "action",
			Message: "unknown action " + string(req.Action),
		})
		return false
	}
}

var selectionSchema = zog.Struct(QueryShape).TestFunc(SelectionTargetTest)

// ValidateSelection checks a selection request body.
func ValidateSelection(req *model.SelectionRequest) error {
	if issues := selectionSchema.Validate(req); issues != nil {
		return newValidationError(issues)
	}
	return nil
}

var reparentSchema = zog.Struct(FilterIDShape)

// ValidateFilterID checks the path id of filter admin operations.
func ValidateFilterID(input *model.FilterIDInput) error {
	if issues := reparentSchema.Validate(input); issues != nil {
		return newValidationError(issues)
	}
	return nil
}
