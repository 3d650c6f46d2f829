package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gobrick/brickpool-backend/pkg/config"
	apperrors "github.com/gobrick/brickpool-backend/pkg/errors"
)

// Client is a thin Rebrickable API client. Only the read endpoints the
// marketplace proxies are implemented.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Part is one part record from the catalog.
type Part struct {
	PartNum    string  `json:"part_num"`
	Name       string  `json:"name"`
	PartImgURL *string `json:"part_img_url"`
}

// PartColor is one color variant of a part, carrying its own image.
type PartColor struct {
	ColorName  string  `json:"color_name"`
	PartImgURL *string `json:"part_img_url"`
}

type pagedParts struct {
	Results []Part `json:"results"`
}

type pagedPartColors struct {
	Results []PartColor `json:"results"`
}

// NewClient builds a catalog client from configuration.
func NewClient(cfg config.CatalogConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("rebrickable api key is required")
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		return nil, errors.New("rebrickable base url is required")
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}, nil
}

// SearchParts queries the catalog by free text.
func (c *Client) SearchParts(ctx context.Context, query string, pageSize int) ([]Part, error) {
	params := url.Values{}
	params.Set("search", query)
	if pageSize > 0 {
		params.Set("page_size", strconv.Itoa(pageSize))
	}
	var payload pagedParts
	if err := c.get(ctx, "/lego/parts/", params, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// PartsByNums fetches exact part records for a set of part numbers.
func (c *Client) PartsByNums(ctx context.Context, partNums []string) ([]Part, error) {
	if len(partNums) == 0 {
		return nil, nil
	}
	params := url.Values{}
	params.Set("part_nums", strings.Join(partNums, ","))
	params.Set("page_size", strconv.Itoa(len(partNums)))
	var payload pagedParts
	if err := c.get(ctx, "/lego/parts/", params, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// PartColors lists the color variants of one part.
func (c *Client) PartColors(ctx context.Context, partNum string) ([]PartColor, error) {
	path := fmt.Sprintf("/lego/parts/%s/colors/", url.PathEscape(partNum))
	var payload pagedPartColors
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building catalog request: %w", err)
	}
	req.Header.Set("Authorization", "key "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "catalog request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.New(apperrors.CodeNotFound, "catalog part not found")
	case resp.StatusCode == http.StatusTooManyRequests:
		return apperrors.New(apperrors.CodeRateLimit, "catalog rate limit exceeded")
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperrors.New(apperrors.CodeDependency,
			fmt.Sprintf("catalog responded with status %d", resp.StatusCode)).
			WithDetails(strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "decoding catalog response")
	}
	return nil
}
