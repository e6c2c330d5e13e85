package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/groupadmin/internal/models"
	"github.com/mmynk/groupadmin/internal/storage"
)

// CreateGroup persists a new group with its managers and members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, picture, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, nullable(group.Picture), group.CreatedAt.UnixNano(),
	)
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("group %s: %w", group.ID, storage.ErrConflict)
		}
		return fmt.Errorf("failed to insert group: %w", err)
	}

	if err := replaceUsers(ctx, tx, "group_managers", group.ID, group.Managers); err != nil {
		return err
	}
	if err := replaceUsers(ctx, tx, "group_members", group.ID, group.Members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID, including managers and members.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (models.Group, error) {
	return getGroup(ctx, s.db, groupID)
}

// ListGroups retrieves all groups in insertion order.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM groups ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := getGroup(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// UpdateGroup applies mutate to the stored group inside a transaction.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, groupID string, mutate storage.GroupMutator) (models.Group, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Group{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := getGroup(ctx, tx, groupID)
	if err != nil {
		return models.Group{}, err
	}

	updated := current.Clone()
	if err := mutate(&updated); err != nil {
		return models.Group{}, err
	}
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt

	_, err = tx.ExecContext(ctx,
		"UPDATE groups SET name = ?, picture = ? WHERE id = ?",
		updated.Name, nullable(updated.Picture), groupID,
	)
	if err != nil {
		return models.Group{}, fmt.Errorf("failed to update group: %w", err)
	}

	if err := replaceUsers(ctx, tx, "group_managers", groupID, updated.Managers); err != nil {
		return models.Group{}, err
	}
	if err := replaceUsers(ctx, tx, "group_members", groupID, updated.Members); err != nil {
		return models.Group{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Group{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return updated, nil
}

// DeleteGroup removes a group; managers and members cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return nil
}

func getGroup(ctx context.Context, q queryer, groupID string) (models.Group, error) {
	var (
		group     models.Group
		picture   sql.NullString
		createdAt int64
	)
	err := q.QueryRowContext(ctx,
		"SELECT id, name, picture, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &picture, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Group{}, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return models.Group{}, fmt.Errorf("failed to get group: %w", err)
	}
	group.Picture = picture.String
	group.CreatedAt = time.Unix(0, createdAt).UTC()

	if group.Managers, err = listGroupUsers(ctx, q, "group_managers", groupID); err != nil {
		return models.Group{}, err
	}
	if group.Members, err = listGroupUsers(ctx, q, "group_members", groupID); err != nil {
		return models.Group{}, err
	}
	return group, nil
}

// listGroupUsers loads the users linked to a group through table, in position order.
func listGroupUsers(ctx context.Context, q queryer, table, groupID string) ([]models.User, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT u.id, u.name, u.initials, u.avatar, u.role
		 FROM `+table+` gu JOIN users u ON u.id = gu.user_id
		 WHERE gu.group_id = ? ORDER BY gu.position`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", table, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}
	return users, nil
}

// replaceUsers rewrites the rows of table for a group. Duplicate user IDs
// keep their first position.
func replaceUsers(ctx context.Context, q queryer, table, groupID string, users []models.User) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM "+table+" WHERE group_id = ?", groupID); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	for i, u := range users {
		_, err := q.ExecContext(ctx,
			"INSERT OR IGNORE INTO "+table+" (group_id, user_id, position) VALUES (?, ?, ?)",
			groupID, u.ID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}
