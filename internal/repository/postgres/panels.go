package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/internal/repository"
	"github.com/erendoru/panobu-api/pkg/errors"
)

type panelRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPanelRepository creates a new panel repository
func NewPanelRepository(db *sql.DB, logger *zap.Logger) *panelRepository {
	return &panelRepository{
		db:     db,
		logger: logger,
	}
}

const panelColumns = `id, owner_id, name, type, owner_name, city, district, weekly_price, width_cm, height_cm, image_url, is_available, created_at, updated_at`

func (r *panelRepository) Create(ctx context.Context, panel *domain.Panel) error {
	query := `
		INSERT INTO panels (` + panelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	now := time.Now()
	if panel.ID == uuid.Nil {
		panel.ID = uuid.New()
	}
	if panel.CreatedAt.IsZero() {
		panel.CreatedAt = now
	}
	if panel.UpdatedAt.IsZero() {
		panel.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		panel.ID,
		panel.OwnerID,
		panel.Name,
		panel.Type,
		panel.OwnerName,
		panel.City,
		panel.District,
		panel.WeeklyPrice,
		panel.WidthCM,
		panel.HeightCM,
		panel.ImageURL,
		panel.IsAvailable,
		panel.CreatedAt,
		panel.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create panel", zap.Error(err))
		return err
	}

	return nil
}

func (r *panelRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Panel, error) {
	query := `SELECT ` + panelColumns + ` FROM panels WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	panel, err := scanPanel(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "panel", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get panel by ID", zap.Error(err))
		return nil, err
	}

	return panel, nil
}

func (r *panelRepository) List(ctx context.Context, filter repository.PanelFilter) ([]*domain.Panel, error) {
	query := `SELECT ` + panelColumns + ` FROM panels WHERE 1=1`
	args := []interface{}{}

	if filter.City != nil {
		args = append(args, *filter.City)
		query += fmt.Sprintf(" AND city = $%d", len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.OnlyAvailable {
		query += " AND is_available = true"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list panels", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectPanels(rows)
}

func (r *panelRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Panel, error) {
	query := `SELECT ` + panelColumns + ` FROM panels WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		r.logger.Error("Failed to list panels by owner", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectPanels(rows)
}

func (r *panelRepository) Update(ctx context.Context, panel *domain.Panel) error {
	query := `
		UPDATE panels
		SET name = $2, type = $3, owner_name = $4, city = $5, district = $6,
		    weekly_price = $7, width_cm = $8, height_cm = $9, image_url = $10,
		    is_available = $11, updated_at = $12
		WHERE id = $1
	`

	panel.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		panel.ID,
		panel.Name,
		panel.Type,
		panel.OwnerName,
		panel.City,
		panel.District,
		panel.WeeklyPrice,
		panel.WidthCM,
		panel.HeightCM,
		panel.ImageURL,
		panel.IsAvailable,
		panel.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to update panel", zap.Error(err))
		return err
	}

	return nil
}

func scanPanel(scan func(dest ...interface{}) error) (*domain.Panel, error) {
	var panel domain.Panel
	var ownerName, district, imageURL sql.NullString
	var widthCM, heightCM sql.NullInt64

	err := scan(
		&panel.ID,
		&panel.OwnerID,
		&panel.Name,
		&panel.Type,
		&ownerName,
		&panel.City,
		&district,
		&panel.WeeklyPrice,
		&widthCM,
		&heightCM,
		&imageURL,
		&panel.IsAvailable,
		&panel.CreatedAt,
		&panel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ownerName.Valid {
		panel.OwnerName = &ownerName.String
	}
	if district.Valid {
		panel.District = &district.String
	}
	if imageURL.Valid {
		panel.ImageURL = &imageURL.String
	}
	if widthCM.Valid {
		w := int(widthCM.Int64)
		panel.WidthCM = &w
	}
	if heightCM.Valid {
		h := int(heightCM.Int64)
		panel.HeightCM = &h
	}

	return &panel, nil
}

func collectPanels(rows *sql.Rows) ([]*domain.Panel, error) {
	var panels []*domain.Panel
	for rows.Next() {
		panel, err := scanPanel(rows.Scan)
		if err != nil {
			return nil, err
		}
		panels = append(panels, panel)
	}
	return panels, rows.Err()
}
