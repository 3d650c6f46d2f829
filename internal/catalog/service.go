package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gobrick/brickpool-backend/pkg/config"
	apperrors "github.com/gobrick/brickpool-backend/pkg/errors"
	"github.com/gobrick/brickpool-backend/pkg/logger"
	"github.com/gobrick/brickpool-backend/pkg/redis"
)

const (
	minSearchLength = 2
	maxPartsPerCall = 100
)

// API is the catalog surface the service consumes.
type API interface {
	SearchParts(ctx context.Context, query string, pageSize int) ([]Part, error)
	PartsByNums(ctx context.Context, partNums []string) ([]Part, error)
	PartColors(ctx context.Context, partNum string) ([]PartColor, error)
}

// ImageCache is the read-through cache for resolved part images.
type ImageCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogImageKey(partNum, normalizedColor string) string
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	API    API
	Cache  ImageCache
	Logger *logger.Logger
	Config config.CatalogConfig
}

// Service proxies catalog reads and caches image lookups.
type Service struct {
	api   API
	cache ImageCache
	logg  *logger.Logger
	cfg   config.CatalogConfig
}

// NewService builds a catalog service.
func NewService(params ServiceParams) (*Service, error) {
	if params.API == nil {
		return nil, errors.New("catalog api is required")
	}
	if params.Cache == nil {
		return nil, errors.New("image cache is required")
	}
	return &Service{
		api:   params.API,
		cache: params.Cache,
		logg:  params.Logger,
		cfg:   params.Config,
	}, nil
}

// Search proxies a free-text part search. Queries shorter than two
// characters are rejected before hitting the upstream.
func (s *Service) Search(ctx context.Context, query string) ([]PartDTO, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minSearchLength {
		return nil, apperrors.New(apperrors.CodeValidation, "search query must be at least 2 characters")
	}
	pageSize := s.cfg.SearchPageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	parts, err := s.api.SearchParts(ctx, query, pageSize)
	if err != nil {
		return nil, err
	}
	return toPartDTOs(parts), nil
}

// PartsByNums fetches exact catalog records for a comma-separated set of
// part numbers.
func (s *Service) PartsByNums(ctx context.Context, rawNums string) ([]PartDTO, error) {
	nums := splitPartNums(rawNums)
	if len(nums) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "at least one part number is required")
	}
	if len(nums) > maxPartsPerCall {
		return nil, apperrors.New(apperrors.CodeValidation, "too many part numbers in one request")
	}
	parts, err := s.api.PartsByNums(ctx, nums)
	if err != nil {
		return nil, err
	}
	return toPartDTOs(parts), nil
}

// PartImages resolves an image URL per part/color pair, reading through the
// cache. Negative results are cached too so missing images do not hammer the
// upstream on every poll.
func (s *Service) PartImages(ctx context.Context, input PartImagesInput) (PartImagesResult, error) {
	if len(input.Parts) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "at least one part is required")
	}
	if len(input.Parts) > maxPartsPerCall {
		return nil, apperrors.New(apperrors.CodeValidation, "too many parts in one request")
	}

	result := make(PartImagesResult, len(input.Parts))
	for _, ref := range input.Parts {
		partNum := strings.TrimSpace(ref.PartNum)
		if partNum == "" {
			continue
		}
		key := ImageKeyPart(partNum, ref.ColorName)
		if _, done := result[key]; done {
			continue
		}
		result[key] = s.resolveImage(ctx, partNum, ref.ColorName)
	}
	return result, nil
}

func (s *Service) resolveImage(ctx context.Context, partNum, colorName string) *string {
	cacheKey := s.cache.CatalogImageKey(partNum, NormalizeColor(colorName))

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if cached == "" {
			return nil
		}
		return &cached
	} else if !errors.Is(err, redis.ErrCacheMiss) && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "part_num", partNum), "catalog image cache read failed")
	}

	imageURL := s.lookupImage(ctx, partNum, colorName)

	stored := ""
	if imageURL != nil {
		stored = *imageURL
	}
	if err := s.cache.Set(ctx, cacheKey, stored, s.cfg.ImageCacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "part_num", partNum), "catalog image cache write failed")
	}
	return imageURL
}

// lookupImage prefers the color-specific render and falls back to the part's
// default image. Upstream failures resolve to no image rather than failing
// the whole batch.
func (s *Service) lookupImage(ctx context.Context, partNum, colorName string) *string {
	wantColor := NormalizeColor(colorName)
	if wantColor != "any" {
		colors, err := s.api.PartColors(ctx, partNum)
		if err == nil {
			for _, color := range colors {
				if NormalizeColor(color.ColorName) == wantColor && color.PartImgURL != nil && *color.PartImgURL != "" {
					return color.PartImgURL
				}
			}
		} else if s.logg != nil && !apperrors.IsCode(err, apperrors.CodeNotFound) {
			s.logg.Warn(s.logg.WithField(ctx, "part_num", partNum), "catalog color lookup failed")
		}
	}

	parts, err := s.api.PartsByNums(ctx, []string{partNum})
	if err != nil {
		if s.logg != nil && !apperrors.IsCode(err, apperrors.CodeNotFound) {
			s.logg.Warn(s.logg.WithField(ctx, "part_num", partNum), "catalog part lookup failed")
		}
		return nil
	}
	for _, part := range parts {
		if part.PartNum == partNum && part.PartImgURL != nil && *part.PartImgURL != "" {
			return part.PartImgURL
		}
	}
	return nil
}

func toPartDTOs(parts []Part) []PartDTO {
	out := make([]PartDTO, 0, len(parts))
	for _, part := range parts {
		out = append(out, PartDTO{
			PartNum:  part.PartNum,
			Name:     part.Name,
			ImageURL: part.PartImgURL,
		})
	}
	return out
}

func splitPartNums(raw string) []string {
	fields := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		num := strings.TrimSpace(field)
		if num == "" {
			continue
		}
		if _, dup := seen[num]; dup {
			continue
		}
		seen[num] = struct{}{}
		out = append(out, num)
	}
	return out
}
