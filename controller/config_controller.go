package controller

import (
	"context"
	"net/http"

	"github.com/DaUnderlord/monday-sippin-sub000/middleware"
	"github.com/DaUnderlord/monday-sippin-sub000/model"
	"github.com/DaUnderlord/monday-sippin-sub000/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/mitchellh/mapstructure"
)

type ConfigController struct {
	cfgSvc       service.ConfigService
	isProduction bool
}

func NewConfigController(cfgSvc service.ConfigService, isProduction bool) *ConfigController {
	return &ConfigController{
		cfgSvc:       cfgSvc,
		isProduction: isProduction,
	}
}

func (ctrl *ConfigController) RegisterRoutes(api huma.API) {
	authMw := middleware.HumaAuthMiddleware(api, ctrl.isProduction)
	adminMw := middleware.HumaAdminOnly(api)

	huma.Register(api, huma.Operation{
		OperationID: "get-active-config",
		Method:      http.MethodGet,
		Path:        "/api/config/active",
		Summary:     "Get Active Runtime Settings",
		Middlewares: huma.Middlewares{authMw, adminMw},
		Security:    []map[string][]string{{"bearer": {}}},
		Tags:        []string{"Config"},
	}, ctrl.getActiveSettings)

	huma.Register(api, huma.Operation{
		OperationID: "update-config",
		Method:      http.MethodPatch,
		Path:        "/api/config/update",
		Summary:     "Update Runtime Settings",
		Middlewares: huma.Middlewares{authMw, adminMw},
		Security:    []map[string][]string{{"bearer": {}}},
		Tags:        []string{"Config"},
	}, ctrl.updateSettings)
}

func (ctrl *ConfigController) getActiveSettings(ctx context.Context, input *struct{}) (*model.DefaultResponse, error) {
	return NewResponse(ctrl.cfgSvc.GetRuntimeSettings(), "Active settings fetched"), nil
}

func (ctrl *ConfigController) updateSettings(ctx context.Context, input *model.SettingsPatchInput) (*model.DefaultResponse, error) {
	var patch model.RuntimeSettingsPatch

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &patch,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Internal Server Error")
	}
	if err := decoder.Decode(input.Body); err != nil {
		return nil, huma.Error400BadRequest("Invalid Request", err)
	}

	settings, err := ctrl.cfgSvc.UpdateRuntimeSettings(patch)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	return NewResponse(settings, "Settings updated"), nil
}
