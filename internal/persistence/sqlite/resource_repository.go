package sqlite

import (
	"context"

	"github.com/example/arena-booking/internal/application"
)

// ResourceRepository persists locations and the bookable resources inside
// them.
type ResourceRepository struct {
	db *DB
}

// NewResourceRepository creates a resource repository over db.
func NewResourceRepository(db *DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// CreateLocation inserts a location.
func (r *ResourceRepository) CreateLocation(ctx context.Context, location application.Location) (application.Location, error) {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO locations (id, name, created_at) VALUES (?, ?, ?)",
		location.ID, location.Name, formatTime(location.CreatedAt),
	)
	if err != nil {
		return application.Location{}, mapSQLiteError(err)
	}
	return location, nil
}

// GetLocationByName looks a location up by its unique name.
func (r *ResourceRepository) GetLocationByName(ctx context.Context, name string) (application.Location, error) {
	var (
		location  application.Location
		createdAt string
	)
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM locations WHERE name = ?", name,
	).Scan(&location.ID, &location.Name, &createdAt)
	if err != nil {
		return application.Location{}, mapSQLiteError(err)
	}
	if location.CreatedAt, err = parseTime(createdAt); err != nil {
		return application.Location{}, err
	}
	return location, nil
}

// CreateResource inserts a resource.
func (r *ResourceRepository) CreateResource(ctx context.Context, resource application.Resource) (application.Resource, error) {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO resources (id, location_id, name, created_at) VALUES (?, ?, ?, ?)",
		resource.ID, resource.LocationID, resource.Name, formatTime(resource.CreatedAt),
	)
	if err != nil {
		return application.Resource{}, mapSQLiteError(err)
	}
	return resource, nil
}

// GetResource loads one resource by id.
func (r *ResourceRepository) GetResource(ctx context.Context, id string) (application.Resource, error) {
	return r.scanResource(r.db.sql.QueryRowContext(ctx,
		"SELECT id, location_id, name, created_at FROM resources WHERE id = ?", id,
	))
}

// GetResourceByName looks a resource up by name within a location.
func (r *ResourceRepository) GetResourceByName(ctx context.Context, locationID, name string) (application.Resource, error) {
	return r.scanResource(r.db.sql.QueryRowContext(ctx,
		"SELECT id, location_id, name, created_at FROM resources WHERE location_id = ? AND name = ?",
		locationID, name,
	))
}

// ListResources enumerates resources, id ascending. A non-empty
// locationScope restricts the result to one location.
func (r *ResourceRepository) ListResources(ctx context.Context, locationScope string) ([]application.Resource, error) {
	rows, err := r.db.sql.QueryContext(ctx, `
	SELECT id, location_id, name, created_at FROM resources
	WHERE (? = '' OR location_id = ?)
	ORDER BY id`,
		locationScope, locationScope,
	)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var resources []application.Resource
	for rows.Next() {
		resource, err := r.scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, resource)
	}
	return resources, rows.Err()
}

func (r *ResourceRepository) scanResource(row rowScanner) (application.Resource, error) {
	var (
		resource  application.Resource
		createdAt string
	)
	if err := row.Scan(&resource.ID, &resource.LocationID, &resource.Name, &createdAt); err != nil {
		return application.Resource{}, mapSQLiteError(err)
	}
	var err error
	if resource.CreatedAt, err = parseTime(createdAt); err != nil {
		return application.Resource{}, err
	}
	return resource, nil
}
