package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"golang.org/x/xerrors"
)

// ListServiceTypes returns the duty catalog ordered by name.
func (s *Store) ListServiceTypes(ctx context.Context) ([]ServiceType, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, default_count FROM service_types ORDER BY name`)
	if err != nil {
		return nil, xerrors.Errorf("failed to query service types: %w", err)
	}
	defer rows.Close()

	var types []ServiceType
	for rows.Next() {
		var st ServiceType
		if err := rows.Scan(&st.ID, &st.Name, &st.DefaultCount); err != nil {
			return nil, xerrors.Errorf("failed to scan service type: %w", err)
		}
		types = append(types, st)
	}
	return types, rows.Err()
}

// CreateServiceType inserts a new duty category. The name is unique.
func (s *Store) CreateServiceType(ctx context.Context, st *ServiceType) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO service_types (name, default_count)
		VALUES ($1, $2)
		RETURNING id`, st.Name, st.DefaultCount).Scan(&st.ID)
	if err != nil {
		return xerrors.Errorf("failed to insert service type: %w", err)
	}
	return nil
}

// UpdateServiceType renames a category or changes its default slot count.
func (s *Store) UpdateServiceType(ctx context.Context, st *ServiceType) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE service_types SET name = $2, default_count = $3 WHERE id = $1`,
		st.ID, st.Name, st.DefaultCount)
	if err != nil {
		return false, xerrors.Errorf("failed to update service type: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteServiceType removes a category; its roster cascades.
func (s *Store) DeleteServiceType(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM service_types WHERE id = $1`, id)
	if err != nil {
		return false, xerrors.Errorf("failed to delete service type: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListServiceTypeMembers returns the fixed roster of one category, ordered
// by the explicit sort order where present.
func (s *Store) ListServiceTypeMembers(ctx context.Context, serviceTypeID int64) ([]ServiceTypeMember, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, service_type_id, name, sort_order
		  FROM service_type_members
		 WHERE service_type_id = $1
		 ORDER BY sort_order NULLS LAST, name`, serviceTypeID)
	if err != nil {
		return nil, xerrors.Errorf("failed to query service type members: %w", err)
	}
	defer rows.Close()

	var members []ServiceTypeMember
	for rows.Next() {
		var m ServiceTypeMember
		if err := rows.Scan(&m.ID, &m.ServiceTypeID, &m.Name, &m.SortOrder); err != nil {
			return nil, xerrors.Errorf("failed to scan service type member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// AddServiceTypeMember adds a helper name to a category roster.
func (s *Store) AddServiceTypeMember(ctx context.Context, member *ServiceTypeMember) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO service_type_members (service_type_id, name, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id`, member.ServiceTypeID, member.Name, member.SortOrder).Scan(&member.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return xerrors.Errorf("failed to insert service type member: %w", err)
	}
	return nil
}

// DeleteServiceTypeMember removes one roster entry.
func (s *Store) DeleteServiceTypeMember(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM service_type_members WHERE id = $1`, id)
	if err != nil {
		return false, xerrors.Errorf("failed to delete service type member: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
