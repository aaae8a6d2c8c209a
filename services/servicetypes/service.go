// Package servicetypes manages the duty catalog: the categories slots are
// created from, and the fixed helper rosters attached to them.
package servicetypes

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/sgruwertal/dienst-service/repos/postgres"
)

var ErrTypeNotFound = errors.New("service type not found")
var ErrMemberNotFound = errors.New("roster member not found")

// ValidationError rejects bad input before any store access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Store is the slice of the persistent store the catalog needs.
type Store interface {
	ListServiceTypes(ctx context.Context) ([]postgres.ServiceType, error)
	CreateServiceType(ctx context.Context, st *postgres.ServiceType) error
	UpdateServiceType(ctx context.Context, st *postgres.ServiceType) (bool, error)
	DeleteServiceType(ctx context.Context, id int64) (bool, error)
	ListServiceTypeMembers(ctx context.Context, serviceTypeID int64) ([]postgres.ServiceTypeMember, error)
	AddServiceTypeMember(ctx context.Context, member *postgres.ServiceTypeMember) error
	DeleteServiceTypeMember(ctx context.Context, id int64) (bool, error)
}

type CatalogService struct {
	store Store
	log   *zap.Logger
}

func NewCatalogService(store Store, log *zap.Logger) *CatalogService {
	return &CatalogService{store: store, log: log}
}

func (s *CatalogService) List(ctx context.Context) ([]postgres.ServiceType, error) {
	types, err := s.store.ListServiceTypes(ctx)
	if err != nil {
		return nil, xerrors.Errorf("list service types: %w", err)
	}
	return types, nil
}

func (s *CatalogService) Create(ctx context.Context, request TypeRequest) (*postgres.ServiceType, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, &ValidationError{Message: "Name fehlt"}
	}
	count := request.DefaultCount
	if count <= 0 {
		count = 1
	}

	st := postgres.ServiceType{Name: name, DefaultCount: count}
	if err := s.store.CreateServiceType(ctx, &st); err != nil {
		return nil, xerrors.Errorf("create service type: %w", err)
	}
	return &st, nil
}

func (s *CatalogService) Update(ctx context.Context, id int64, request TypeRequest) (*postgres.ServiceType, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, &ValidationError{Message: "Name fehlt"}
	}
	count := request.DefaultCount
	if count <= 0 {
		count = 1
	}

	st := postgres.ServiceType{ID: id, Name: name, DefaultCount: count}
	updated, err := s.store.UpdateServiceType(ctx, &st)
	if err != nil {
		return nil, xerrors.Errorf("update service type %d: %w", id, err)
	}
	if !updated {
		return nil, ErrTypeNotFound
	}
	return &st, nil
}

// Delete removes a category from the catalog. Existing slots keep their
// category string; the catalog only drives future slot creation.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteServiceType(ctx, id)
	if err != nil {
		return xerrors.Errorf("delete service type %d: %w", id, err)
	}
	if !deleted {
		return ErrTypeNotFound
	}
	return nil
}

func (s *CatalogService) ListMembers(ctx context.Context, serviceTypeID int64) ([]postgres.ServiceTypeMember, error) {
	members, err := s.store.ListServiceTypeMembers(ctx, serviceTypeID)
	if err != nil {
		return nil, xerrors.Errorf("list roster for service type %d: %w", serviceTypeID, err)
	}
	return members, nil
}

func (s *CatalogService) AddMember(ctx context.Context, serviceTypeID int64, request MemberRequest) (*postgres.ServiceTypeMember, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, &ValidationError{Message: "Name fehlt"}
	}

	member := postgres.ServiceTypeMember{
		ServiceTypeID: serviceTypeID,
		Name:          name,
		SortOrder:     request.SortOrder,
	}
	if err := s.store.AddServiceTypeMember(ctx, &member); err != nil {
		return nil, xerrors.Errorf("add roster member: %w", err)
	}
	return &member, nil
}

func (s *CatalogService) DeleteMember(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteServiceTypeMember(ctx, id)
	if err != nil {
		return xerrors.Errorf("delete roster member %d: %w", id, err)
	}
	if !deleted {
		return ErrMemberNotFound
	}
	return nil
}
