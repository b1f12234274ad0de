package controller

import (
	"context"
	"net/http"
	"net/url"

	"github.com/DaUnderlord/monday-sippin-sub000/filter"
	"github.com/DaUnderlord/monday-sippin-sub000/model"
	"github.com/DaUnderlord/monday-sippin-sub000/service"

	"github.com/danielgtaylor/huma/v2"
)

type ArticleController struct {
	articleSvc service.ArticleService
}

func NewArticleController(articleSvc service.ArticleService) *ArticleController {
	return &ArticleController{
		articleSvc: articleSvc,
	}
}

func (ctrl *ArticleController) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-articles",
		Method:      http.MethodGet,
		Path:        "/api/articles",
		Summary:     "List Published Articles for a Filter Selection",
		Tags:        []string{"Articles"},
	}, ctrl.listArticles)
}

func (ctrl *ArticleController) listArticles(ctx context.Context, input *model.ListArticlesInput) (*model.DefaultResponse, error) {
	selected := filter.FromValues(url.Values{filter.QueryKey: input.Filters})

	articles, err := ctrl.articleSvc.ListByFilters(ctx, selected)
	if err != nil {
		return nil, ToHumaError(err)
	}
	return NewResponse(articles, "Articles fetched"), nil
}
