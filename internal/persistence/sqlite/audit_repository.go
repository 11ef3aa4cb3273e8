package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/arena-booking/internal/audit"
)

// AuditRepository reads the append-only audit trail. Writes happen inside
// the session repository's mutation transactions.
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates an audit repository over db.
func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// ListByEntity returns the audit records for one entity, oldest first.
func (r *AuditRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]audit.Record, error) {
	rows, err := r.db.sql.QueryContext(ctx, `
	SELECT id, actor_id, entity_type, entity_id, action, changes, created_at
	FROM audit_logs
	WHERE entity_type = ? AND entity_id = ?
	ORDER BY created_at, id`,
		entityType, entityID,
	)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var records []audit.Record
	for rows.Next() {
		var (
			record    audit.Record
			changes   string
			createdAt string
		)
		err := rows.Scan(
			&record.ID, &record.ActorID, &record.EntityType, &record.EntityID,
			&record.Action, &changes, &createdAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(changes), &record.Changes); err != nil {
			return nil, fmt.Errorf("decode audit changes for %s: %w", record.ID, err)
		}
		if record.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
