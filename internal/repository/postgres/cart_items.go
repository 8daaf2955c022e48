package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/pkg/errors"
)

type cartItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCartItemRepository creates a new cart item repository
func NewCartItemRepository(db *sql.DB, logger *zap.Logger) *cartItemRepository {
	return &cartItemRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cartItemRepository) Add(ctx context.Context, item *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (id, panel_id, user_id, session_id, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.PanelID,
		item.UserID,
		item.SessionID,
		item.StartDate,
		item.EndDate,
		item.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to add cart item", zap.Error(err))
		return err
	}

	return nil
}

func (r *cartItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CartItem, error) {
	query := `
		SELECT ci.id, ci.panel_id, ci.user_id, ci.session_id, ci.start_date, ci.end_date, ci.created_at
		FROM cart_items ci
		WHERE ci.id = $1
	`

	var item domain.CartItem
	var userID uuid.NullUUID
	var sessionID sql.NullString
	var startDate, endDate sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.PanelID,
		&userID,
		&sessionID,
		&startDate,
		&endDate,
		&item.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "cart item", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get cart item", zap.Error(err))
		return nil, err
	}

	if userID.Valid {
		item.UserID = &userID.UUID
	}
	if sessionID.Valid {
		item.SessionID = &sessionID.String
	}
	if startDate.Valid {
		item.StartDate = &startDate.Time
	}
	if endDate.Valid {
		item.EndDate = &endDate.Time
	}

	return &item, nil
}

// ListByOwner returns cart items with their panels joined in, ordered by
// insertion time so pricing groups come out in add-to-cart order.
func (r *cartItemRepository) ListByOwner(ctx context.Context, owner domain.CartOwner) ([]domain.CartItem, error) {
	query := `
		SELECT ci.id, ci.panel_id, ci.user_id, ci.session_id, ci.start_date, ci.end_date, ci.created_at,
		       ` + prefixedPanelColumns("p") + `
		FROM cart_items ci
		INNER JOIN panels p ON ci.panel_id = p.id
		WHERE ($1::uuid IS NOT NULL AND ci.user_id = $1)
		   OR ($2::text IS NOT NULL AND ci.session_id = $2)
		ORDER BY ci.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, owner.UserID, owner.SessionID)
	if err != nil {
		r.logger.Error("Failed to list cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		var userID uuid.NullUUID
		var sessionID sql.NullString
		var startDate, endDate sql.NullTime
		var panel domain.Panel
		var ownerName, district, imageURL sql.NullString
		var widthCM, heightCM sql.NullInt64

		err := rows.Scan(
			&item.ID,
			&item.PanelID,
			&userID,
			&sessionID,
			&startDate,
			&endDate,
			&item.CreatedAt,
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

		if userID.Valid {
			item.UserID = &userID.UUID
		}
		if sessionID.Valid {
			item.SessionID = &sessionID.String
		}
		if startDate.Valid {
			item.StartDate = &startDate.Time
		}
		if endDate.Valid {
			item.EndDate = &endDate.Time
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

		item.Panel = &panel
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *cartItemRepository) Remove(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to remove cart item", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "cart item", ID: id.String()}
	}

	return nil
}

func (r *cartItemRepository) Clear(ctx context.Context, owner domain.CartOwner) error {
	query := `
		DELETE FROM cart_items
		WHERE ($1::uuid IS NOT NULL AND user_id = $1)
		   OR ($2::text IS NOT NULL AND session_id = $2)
	`

	_, err := r.db.ExecContext(ctx, query, owner.UserID, owner.SessionID)
	if err != nil {
		r.logger.Error("Failed to clear cart", zap.Error(err))
		return err
	}

	return nil
}

func prefixedPanelColumns(alias string) string {
	return alias + `.id, ` + alias + `.owner_id, ` + alias + `.name, ` + alias + `.type, ` +
		alias + `.owner_name, ` + alias + `.city, ` + alias + `.district, ` + alias + `.weekly_price, ` +
		alias + `.width_cm, ` + alias + `.height_cm, ` + alias + `.image_url, ` + alias + `.is_available, ` +
		alias + `.created_at, ` + alias + `.updated_at`
}
