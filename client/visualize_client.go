package client

import (
	"context"
	"strings"
	"time"

	"github.com/DaUnderlord/monday-sippin-sub000/config"
	"github.com/DaUnderlord/monday-sippin-sub000/middleware"
	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/go-resty/resty/v2"
)

// VisualizePath is the AI function under the functions base URL.
const VisualizePath = "/visualize-play"

type VisualizeClient struct {
	RestyClient *resty.Client
	cfg         *config.ConfigManager
}

func NewVisualizeClient(cfg *config.ConfigManager) *VisualizeClient {
	c := resty.New().
		// the caller's context carries the real deadline
		SetTimeout(60*time.Second).
		SetHeaders(map[string]string{
			"Content-Type":    "application/json",
			"Accept":          "application/json",
			"Accept-Encoding": "gzip, br",
		})
	c.OnAfterResponse(middleware.DecompressMiddleware)

	return &VisualizeClient{RestyClient: c, cfg: cfg}
}

// Visualize posts payload to the AI function. A non-2xx reply is not an
// error here; the caller decides what to do with the status and body.
func (c *VisualizeClient) Visualize(ctx context.Context, token string, payload model.VisualizePayload) (*model.UpstreamResult, error) {
	envCfg := c.cfg.GetConfig()
	url := strings.TrimRight(envCfg.FunctionsUrl, "/") + VisualizePath

	req := c.RestyClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload)
	if envCfg.AnonKey != "" {
		req.SetHeader("apikey", envCfg.AnonKey)
	}

	resp, err := req.Post(url)
	if err != nil {
		return nil, err
	}

	return &model.UpstreamResult{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}
