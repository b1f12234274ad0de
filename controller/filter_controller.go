package controller

import (
	"context"
	"net/http"

	"github.com/DaUnderlord/monday-sippin-sub000/middleware"
	"github.com/DaUnderlord/monday-sippin-sub000/model"
	"github.com/DaUnderlord/monday-sippin-sub000/service"
	"github.com/DaUnderlord/monday-sippin-sub000/validator"

	"github.com/danielgtaylor/huma/v2"
)

type FilterController struct {
	filterSvc    service.FilterService
	isProduction bool
}

func NewFilterController(filterSvc service.FilterService, isProduction bool) *FilterController {
	return &FilterController{
		filterSvc:    filterSvc,
		isProduction: isProduction,
	}
}

func (ctrl *FilterController) RegisterRoutes(api huma.API) {
	authMw := middleware.HumaAuthMiddleware(api, ctrl.isProduction)
	adminMw := middleware.HumaAdminOnly(api)

	huma.Register(api, huma.Operation{
		OperationID: "get-filter-tree",
		Method:      http.MethodGet,
		Path:        "/api/filters/tree",
		Summary:     "Get Filter Tree",
		Tags:        []string{"Filters"},
	}, ctrl.getTree)

	huma.Register(api, huma.Operation{
		OperationID: "apply-filter-selection",
		Method:      http.MethodPost,
		Path:        "/api/filters/selection",
		Summary:     "Apply a Select, Deselect or Clear to a Filter Selection",
		Tags:        []string{"Filters"},
	}, ctrl.applySelection)

	huma.Register(api, huma.Operation{
		OperationID: "get-filter-candidate-parents",
		Method:      http.MethodGet,
		Path:        "/api/filters/{id}/candidate-parents",
		Summary:     "List Valid New Parents for a Filter",
		Middlewares: huma.Middlewares{authMw, adminMw},
		Security:    []map[string][]string{{"bearer": {}}},
		Tags:        []string{"Filters"},
	}, ctrl.getCandidateParents)

	huma.Register(api, huma.Operation{
		OperationID: "reparent-filter",
		Method:      http.MethodPatch,
		Path:        "/api/filters/{id}/parent",
		Summary:     "Move a Filter Under a New Parent",
		Middlewares: huma.Middlewares{authMw, adminMw},
		Security:    []map[string][]string{{"bearer": {}}},
		Tags:        []string{"Filters"},
	}, ctrl.reparent)
}

func (ctrl *FilterController) getTree(ctx context.Context, input *model.FilterTreeInput) (*model.DefaultResponse, error) {
	tree, err := ctrl.filterSvc.Tree(ctx, input.Query)
	if err != nil {
		return nil, ToHumaError(err)
	}
	return NewResponse(tree, "Filter tree fetched"), nil
}

func (ctrl *FilterController) applySelection(ctx context.Context, input *model.SelectionInput) (*model.DefaultResponse, error) {
	if err := validator.ValidateSelection(&input.Body); err != nil {
		return nil, ToHumaError(err)
	}

	res, err := ctrl.filterSvc.ApplySelection(ctx, input.Body)
	if err != nil {
		return nil, ToHumaError(err)
	}
	return NewResponse(res, "Selection updated"), nil
}

func (ctrl *FilterController) getCandidateParents(ctx context.Context, input *model.FilterIDInput) (*model.DefaultResponse, error) {
	if err := validator.ValidateFilterID(input); err != nil {
		return nil, ToHumaError(err)
	}

	parents, err := ctrl.filterSvc.CandidateParents(ctx, input.ID)
	if err != nil {
		return nil, ToHumaError(err)
	}
	return NewResponse(parents, "Candidate parents fetched"), nil
}

func (ctrl *FilterController) reparent(ctx context.Context, input *model.ReparentInput) (*model.DefaultResponse, error) {
	if err := validator.ValidateFilterID(&model.FilterIDInput{ID: input.ID}); err != nil {
		return nil, ToHumaError(err)
	}

	moved, err := ctrl.filterSvc.Reparent(ctx, input.ID, input.Body.ParentID)
	if err != nil {
		return nil, ToHumaError(err)
	}
	return NewResponse(moved, "Filter moved"), nil
}
