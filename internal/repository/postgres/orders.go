package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

const orderColumns = `id, user_id, status, subtotal, discount, total, payment_session_id, cancel_reason, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.UserID,
		order.Status,
		order.Subtotal,
		order.Discount,
		order.Total,
		order.PaymentSessionID,
		order.CancelReason,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	order, err := scanOrder(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list orders by user", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, reason *string) error {
	query := `
		UPDATE orders
		SET status = $2, cancel_reason = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, reason, time.Now())
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}

func (r *orderRepository) UpdatePaymentSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	query := `
		UPDATE orders
		SET payment_session_id = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, sessionID, time.Now())
	if err != nil {
		r.logger.Error("Failed to update order payment session", zap.Error(err))
		return err
	}

	return nil
}

func scanOrder(scan func(dest ...interface{}) error) (*domain.Order, error) {
	var order domain.Order
	var paymentSessionID, cancelReason sql.NullString

	err := scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.Subtotal,
		&order.Discount,
		&order.Total,
		&paymentSessionID,
		&cancelReason,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paymentSessionID.Valid {
		order.PaymentSessionID = &paymentSessionID.String
	}
	if cancelReason.Valid {
		order.CancelReason = &cancelReason.String
	}

	return &order, nil
}

func collectOrders(rows *sql.Rows) ([]*domain.Order, error) {
	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

type orderItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderItemRepository creates a new order item repository
func NewOrderItemRepository(db *sql.DB, logger *zap.Logger) *orderItemRepository {
	return &orderItemRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderItemRepository) CreateBatch(ctx context.Context, items []*domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now()
	valueStrings := make([]string, 0, len(items))
	valueArgs := make([]interface{}, 0, len(items)*12)

	for i, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}

		base := i * 12
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10, base+11, base+12,
		))
		valueArgs = append(valueArgs,
			item.ID,
			item.OrderID,
			item.PanelID,
			item.PanelName,
			item.PanelType,
			item.City,
			item.Weeks,
			item.OriginalPrice,
			item.DiscountedPrice,
			item.StartDate,
			item.EndDate,
			item.CreatedAt,
		)
	}

	query := `
		INSERT INTO order_items (id, order_id, panel_id, panel_name, panel_type, city, weeks, original_price, discounted_price, start_date, end_date, created_at)
		VALUES ` + strings.Join(valueStrings, ", ")

	_, err := r.db.ExecContext(ctx, query, valueArgs...)
	if err != nil {
		r.logger.Error("Failed to create order items", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	query := `
		SELECT id, order_id, panel_id, panel_name, panel_type, city, weeks, original_price, discounted_price, start_date, end_date, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to get order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		var startDate, endDate sql.NullTime

		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.PanelID,
			&item.PanelName,
			&item.PanelType,
			&item.City,
			&item.Weeks,
			&item.OriginalPrice,
			&item.DiscountedPrice,
			&startDate,
			&endDate,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if startDate.Valid {
			item.StartDate = &startDate.Time
		}
		if endDate.Valid {
			item.EndDate = &endDate.Time
		}

		items = append(items, &item)
	}

	return items, rows.Err()
}
