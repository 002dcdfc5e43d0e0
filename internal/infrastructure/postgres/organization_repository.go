package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador de persistencia para organizaciones.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

// CreateWithOwner inserta la organización y la membresía owner en una transacción.
// Nombre o NIT repetidos devuelven domain.ErrDuplicate.
func (r *OrganizationRepo) CreateWithOwner(ctx context.Context, org *entity.Organization, owner *entity.Membership) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO organizations (id, name, tax_id, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		org.ID, org.Name, nullable(org.TaxID), org.Address, org.Phone, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_organizations (id, user_id, organization_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		owner.ID, owner.UserID, owner.OrganizationID, owner.Role, owner.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	query := `
		SELECT id, name, tax_id, address, phone, created_at, updated_at
		FROM organizations WHERE id = $1`
	org, err := scanOrganization(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return org, nil
}

// Update actualiza nombre, NIT, dirección y teléfono.
func (r *OrganizationRepo) Update(ctx context.Context, org *entity.Organization) error {
	query := `
		UPDATE organizations SET name = $2, tax_id = $3, address = $4, phone = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		org.ID, org.Name, nullable(org.TaxID), org.Address, org.Phone, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update organization: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("organización", org.ID)
	}
	return nil
}

// ListByUser lista las organizaciones donde el usuario es miembro, por nombre.
func (r *OrganizationRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Organization, error) {
	query := `
		SELECT o.id, o.name, o.tax_id, o.address, o.phone, o.created_at, o.updated_at
		FROM organizations o
		JOIN user_organizations uo ON uo.organization_id = o.id
		WHERE uo.user_id = $1
		ORDER BY o.name`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, org)
	}
	return list, rows.Err()
}

// UserHasAccess indica si el usuario es miembro de la organización.
func (r *OrganizationRepo) UserHasAccess(ctx context.Context, userID, organizationID string) (bool, error) {
	role, err := r.MembershipRole(ctx, userID, organizationID)
	if err != nil {
		return false, err
	}
	return role != "", nil
}

// MembershipRole devuelve el rol del usuario en la organización, o "" si no es miembro.
func (r *OrganizationRepo) MembershipRole(ctx context.Context, userID, organizationID string) (string, error) {
	var role string
	err := r.q.QueryRow(ctx,
		`SELECT role FROM user_organizations WHERE user_id = $1 AND organization_id = $2`,
		userID, organizationID,
	).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get membership role: %w", err)
	}
	return role, nil
}

func scanOrganization(row pgx.Row) (*entity.Organization, error) {
	var o entity.Organization
	var taxID, address, phone *string
	if err := row.Scan(&o.ID, &o.Name, &taxID, &address, &phone, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.TaxID = fromNullable(taxID)
	o.Address = fromNullable(address)
	o.Phone = fromNullable(phone)
	return &o, nil
}
