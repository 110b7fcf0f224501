package service

import (
	"context"
	"fmt"
	"net/http"

	"storeops.com/console/pkg/core/permission"
	"storeops.com/console/pkg/shared/client"
)

type PermissionService struct {
	client *client.Client
}

func NewPermissionService(c *client.Client) *PermissionService {
	return &PermissionService{client: c}
}

// Catalog fetches the global permission catalog used when creating a store.
func (s *PermissionService) Catalog(ctx context.Context) ([]permission.Entry, error) {
	env, err := s.client.Request(ctx, http.MethodGet, basePath+"/permissions", nil)
	if err != nil {
		return nil, err
	}
	return permission.LoadCatalog(env.Data), nil
}

// StoreCatalog fetches one store's permission catalog. A successful fetch
// with an empty result comes back as an empty non-nil slice; a failed fetch
// comes back as an error, so callers can tell the two apart.
func (s *PermissionService) StoreCatalog(ctx context.Context, storeID int64) ([]permission.Entry, error) {
	env, err := s.client.Request(ctx, http.MethodGet, fmt.Sprintf("%s/permissions/store/%d", basePath, storeID), nil)
	if err != nil {
		return nil, err
	}
	return permission.LoadCatalog(env.Data), nil
}

// UpdateStore replaces the store's enabled state for every permission in one
// call and returns the echoed catalog.
func (s *PermissionService) UpdateStore(ctx context.Context, storeID int64, req permission.UpdateRequest) ([]permission.Entry, error) {
	env, err := s.client.Request(ctx, http.MethodPut, fmt.Sprintf("%s/permissions/store/%d", basePath, storeID), req)
	if err != nil {
		return nil, err
	}
	return permission.LoadCatalog(env.Data), nil
}
