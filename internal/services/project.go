package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jshn22/jira-clone/internal/database"
	"github.com/jshn22/jira-clone/internal/models"
)

type ProjectService struct {
	db *database.DB
}

func NewProjectService(db *database.DB) *ProjectService {
	return &ProjectService{db: db}
}

// Create inserts the project and its owner membership in one transaction,
// so the owner-is-always-a-member invariant holds from the start. The name
// is stored exactly as given.
func (s *ProjectService) Create(ctx context.Context, name, description string, ownerID uuid.UUID) (*models.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", models.ErrValidation)
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var project models.Project
	err = tx.QueryRow(ctx, `
		INSERT INTO projects (name, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, owner_id, created_at, updated_at
	`, name, description, ownerID).Scan(
		&project.ID, &project.Name, &project.Description,
		&project.OwnerID, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
	`, project.ID, ownerID, models.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to add owner as member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &project, nil
}

func (s *ProjectService) GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM projects WHERE id = $1
	`, projectID).Scan(
		&project.ID, &project.Name, &project.Description,
		&project.OwnerID, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: project %s", models.ErrNotFound, projectID)
		}
		return nil, err
	}
	return &project, nil
}

// GetUserProjects lists every project the user belongs to, most recently
// created first. Owners appear here through their membership row.
func (s *ProjectService) GetUserProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at
		FROM projects p
		JOIN project_members pm ON p.id = pm.project_id
		WHERE pm.user_id = $1
		ORDER BY p.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *ProjectService) Update(ctx context.Context, projectID uuid.UUID, name, description string) (*models.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", models.ErrValidation)
	}

	var project models.Project
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE projects SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, description, owner_id, created_at, updated_at
	`, name, description, projectID).Scan(
		&project.ID, &project.Name, &project.Description,
		&project.OwnerID, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: project %s", models.ErrNotFound, projectID)
		}
		return nil, err
	}
	return &project, nil
}

// Delete removes the project. Tasks referencing it are left in place; see
// the migration DDL.
func (s *ProjectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: project %s", models.ErrNotFound, projectID)
	}
	return nil
}

func (s *ProjectService) IsOwner(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var ownerID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT owner_id FROM projects WHERE id = $1`, projectID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%w: project %s", models.ErrNotFound, projectID)
		}
		return false, err
	}
	return ownerID == userID, nil
}

func (s *ProjectService) IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2)
	`, projectID, userID).Scan(&exists)
	return exists, err
}

func (s *ProjectService) GetMembers(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT pm.id, pm.project_id, pm.user_id, pm.role, pm.created_at,
		       u.id, u.name, u.email, u.created_at, u.updated_at
		FROM project_members pm
		JOIN users u ON pm.user_id = u.id
		WHERE pm.project_id = $1
		ORDER BY pm.created_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.ProjectMember
	for rows.Next() {
		var member models.ProjectMember
		var user models.User
		if err := rows.Scan(
			&member.ID, &member.ProjectID, &member.UserID, &member.Role, &member.CreatedAt,
			&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		member.User = &user
		members = append(members, member)
	}
	return members, rows.Err()
}

// AddMember is idempotent: adding an existing member changes nothing and
// reports no error.
func (s *ProjectService) AddMember(ctx context.Context, projectID, userID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id, user_id) DO NOTHING
	`, projectID, userID, models.RoleMember)
	return err
}
