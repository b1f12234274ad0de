package controller

import (
	"context"
	"net/http"

	"github.com/DaUnderlord/monday-sippin-sub000/model"
	"github.com/DaUnderlord/monday-sippin-sub000/service"

	"github.com/danielgtaylor/huma/v2"
)

type VisualizeController struct {
	visualizeSvc service.VisualizeService
}

func NewVisualizeController(visualizeSvc service.VisualizeService) *VisualizeController {
	return &VisualizeController{
		visualizeSvc: visualizeSvc,
	}
}

func (ctrl *VisualizeController) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "visualize-play",
		Method:      http.MethodPost,
		Path:        "/api/visualize-play",
		Summary:     "Extract a Trade Setup from Article Content",
		Description: "Reads labeled fields first and only calls the AI function when nothing chartable is found.",
		Tags:        []string{"Visualize"},
		Errors:      []int{http.StatusUnauthorized, http.StatusBadGateway, http.StatusGatewayTimeout},
	}, ctrl.visualize)
}

func (ctrl *VisualizeController) visualize(ctx context.Context, input *model.VisualizeInput) (*model.DefaultResponse, error) {
	spec, err := ctrl.visualizeSvc.Resolve(ctx, input.Body, model.Credentials{
		Authorization: input.Authorization,
		Cookie:        input.Cookie,
	})
	if err != nil {
		return nil, ToHumaError(err)
	}
	return NewResponse(spec, "Play extracted"), nil
}
