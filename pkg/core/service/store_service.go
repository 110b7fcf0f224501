package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"storeops.com/console/pkg/core/flagset"
	"storeops.com/console/pkg/shared/client"
)

var validate = validator.New()

// StoreDetail couples the strict store record with its loaded flag set; both
// come from the same GET /stores/{id} response.
type StoreDetail struct {
	Store Store
	Flags flagset.FlagSet
}

// CreateStoreRequest is the payload of POST /super-admin/stores: basic info
// plus the initial flag/limit/billing state and the pre-selected permission
// ids. The embedded UpdateRequest flattens into the JSON body.
type CreateStoreRequest struct {
	StoreName     string `json:"store_name" validate:"required"`
	OwnerName     string `json:"owner_name" validate:"required"`
	OwnerEmail    string `json:"owner_email" validate:"required,email"`
	OwnerPhone    string `json:"owner_phone" validate:"required"`
	OwnerPassword string `json:"owner_password" validate:"required"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Pincode       string `json:"pincode"`

	flagset.UpdateRequest

	Permissions []int64 `json:"permissions"`
}

// OwnerCredentials is echoed once on store creation so the operator can hand
// them to the store owner; the password is never retrievable again.
type OwnerCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreatedStore struct {
	Store            Store
	OwnerCredentials OwnerCredentials
}

type StoreService struct {
	client *client.Client
}

func NewStoreService(c *client.Client) *StoreService {
	return &StoreService{client: c}
}

func (s *StoreService) List(ctx context.Context) ([]Store, error) {
	var records []map[string]any
	if err := s.client.Get(ctx, basePath+"/stores", &records); err != nil {
		return nil, err
	}
	stores := make([]Store, 0, len(records))
	for _, record := range records {
		stores = append(stores, storeFromRecord(record))
	}
	return stores, nil
}

func (s *StoreService) Get(ctx context.Context, storeID int64) (*StoreDetail, error) {
	var record map[string]any
	if err := s.client.Get(ctx, fmt.Sprintf("%s/stores/%d", basePath, storeID), &record); err != nil {
		return nil, err
	}
	return &StoreDetail{
		Store: storeFromRecord(record),
		Flags: flagset.Load(storeID, record),
	}, nil
}

// UpdateFeatures replaces the store's whole feature record. When the server
// echoes the updated record it is loaded and returned as the new baseline;
// a nil result means the caller has to re-fetch.
func (s *StoreService) UpdateFeatures(ctx context.Context, storeID int64, payload flagset.UpdateRequest) (*flagset.FlagSet, error) {
	var record map[string]any
	if err := s.client.Put(ctx, fmt.Sprintf("%s/stores/%d/features", basePath, storeID), payload, &record); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	fs := flagset.Load(storeID, record)
	return &fs, nil
}

func (s *StoreService) Create(ctx context.Context, req CreateStoreRequest) (*CreatedStore, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid create store request: %w", err)
	}

	// The response data is the created store record with the one-time
	// owner_credentials object nested inside it.
	var record map[string]any
	if err := s.client.Post(ctx, basePath+"/stores", req, &record); err != nil {
		return nil, err
	}

	created := &CreatedStore{Store: storeFromRecord(record)}
	if creds, ok := record["owner_credentials"].(map[string]any); ok {
		created.OwnerCredentials = OwnerCredentials{
			Email:    stringField(creds, "email"),
			Password: stringField(creds, "password"),
		}
	}

	log.Info().Str("store_name", req.StoreName).Msg("Store created")
	return created, nil
}

func (s *StoreService) Delete(ctx context.Context, storeID int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("%s/stores/%d", basePath, storeID))
}
