package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/duartesilva/plantshop/internal/database"
	"github.com/duartesilva/plantshop/internal/models"
)

type CartLine struct {
	ArticleID int64
	Quantity  int
}

// CreateOrder validates and prices every cart line against the catalog,
// decrements stock and persists the order with its items as one
// transaction. Each article row is locked before its stock is read, so
// concurrent placements against the same article serialize; conflicts are
// retried by the transaction helper. Returns the new order id.
//
// Unit prices are snapshots of the catalog price at this moment; nothing
// the caller supplies can influence them.
func (s *Store) CreateOrder(ctx context.Context, userID string, lines []CartLine) (int64, error) {
	var orderID int64

	err := database.WithRetry(ctx, s.db, database.TxOptions{
		IsolationLevel: sql.LevelSerializable,
		MaxRetries:     3,
	}, func(tx *sql.Tx) error {
		orderID = 0

		type pricedLine struct {
			articleID int64
			quantity  int
			unitPrice decimal.Decimal
		}

		var (
			priced []pricedLine
			total  decimal.Decimal
		)

		for _, line := range lines {
			var (
				name  string
				price decimal.Decimal
				stock int
			)

			err := tx.QueryRowContext(ctx,
				`SELECT name, price, stock_quantity
				 FROM articles
				 WHERE id = $1
				 FOR UPDATE NOWAIT`,
				line.ArticleID).Scan(&name, &price, &stock)
			if err != nil {
				if err == sql.ErrNoRows {
					return database.ErrArticleNotFound
				}
				return fmt.Errorf("lock article %d: %w", line.ArticleID, err)
			}

			if stock < line.Quantity {
				return &StockError{
					ArticleID:   line.ArticleID,
					ArticleName: name,
					Requested:   line.Quantity,
					Available:   stock,
				}
			}

			priced = append(priced, pricedLine{
				articleID: line.ArticleID,
				quantity:  line.Quantity,
				unitPrice: price,
			})
			total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		err := tx.QueryRowContext(ctx,
			`INSERT INTO orders (user_id, order_date, status, total_price)
			 VALUES ($1, NOW(), $2, $3)
			 RETURNING id`,
			userID, models.OrderStatusPending, total).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, line := range priced {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO order_items (order_id, article_id, quantity, unit_price)
				 VALUES ($1, $2, $3, $4)`,
				orderID, line.articleID, line.quantity, line.unitPrice)
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}

		for _, line := range priced {
			result, err := tx.ExecContext(ctx,
				`UPDATE articles
				 SET stock_quantity = stock_quantity - $1,
				     updated_at = NOW()
				 WHERE id = $2
				   AND stock_quantity >= $1`,
				line.quantity, line.articleID)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}

			rowsAffected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("get rows affected: %w", err)
			}
			if rowsAffected == 0 {
				return database.ErrInsufficientStock
			}
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return orderID, nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}

	query := `
		SELECT id, user_id, order_date, status, total_price
		FROM orders
		WHERE id = $1`

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.OrderDate,
		&order.Status,
		&order.TotalPrice,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, article_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ArticleID,
			&item.Quantity,
			&item.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	order.Items = items

	return order, nil
}

// GetOrderDetails joins the customer and, per item, the article catalog
// data used for display.
func (s *Store) GetOrderDetails(ctx context.Context, id int64) (*models.OrderDetail, error) {
	detail := &models.OrderDetail{}

	query := `
		SELECT o.id, o.user_id, u.full_name, u.address, o.order_date, o.status, o.total_price
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1`

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.UserID,
		&detail.FullName,
		&detail.Address,
		&detail.OrderDate,
		&detail.Status,
		&detail.TotalPrice,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order details: %w", err)
	}

	itemsQuery := `
		SELECT oi.article_id, a.name, a.image_url, oi.quantity, oi.unit_price
		FROM order_items oi
		JOIN articles a ON a.id = oi.article_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`

	rows, err := s.db.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get order item details: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItemDetail
	for rows.Next() {
		var item models.OrderItemDetail
		err := rows.Scan(
			&item.ArticleID,
			&item.ArticleName,
			&item.ImageURL,
			&item.Quantity,
			&item.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item detail: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	detail.Items = items

	return detail, nil
}

// ListOrdersByUser pages through one user's orders, newest first.
func (s *Store) ListOrdersByUser(ctx context.Context, userID string, cursor string, limit int) (*CursorPage, error) {
	cursorData, err := DecodeCursor(cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	query := `
		SELECT o.id, o.user_id, u.full_name, o.order_date, o.status, o.total_price
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.user_id = $1
		  AND (o.order_date, o.id) < ($2, $3)
		ORDER BY o.order_date DESC, o.id DESC
		LIMIT $4`

	rows, err := s.db.QueryContext(ctx, query, userID, cursorData.OrderDate, cursorData.ID, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrderSummaries(rows)
	if err != nil {
		return nil, err
	}

	hasMore := len(orders) > limit
	if hasMore {
		orders = orders[:limit]
	}

	var nextCursor string
	if hasMore && len(orders) > 0 {
		last := orders[len(orders)-1]
		nextCursor = EncodeCursor(OrderCursor{
			OrderDate: last.OrderDate,
			ID:        last.ID,
		})
	}

	return &CursorPage{
		Items:      orders,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

// ListAllOrders returns every order, newest first, for the back office.
func (s *Store) ListAllOrders(ctx context.Context) ([]models.OrderSummary, error) {
	query := `
		SELECT o.id, o.user_id, u.full_name, o.order_date, o.status, o.total_price
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.order_date DESC, o.id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}

func scanOrderSummaries(rows *sql.Rows) ([]models.OrderSummary, error) {
	var orders []models.OrderSummary
	for rows.Next() {
		var order models.OrderSummary
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.FullName,
			&order.OrderDate,
			&order.Status,
			&order.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}

// SetOrderStatus transitions an order from one status to another. The
// guard on the current status makes the read-check-write safe against a
// concurrent transition of the same order.
func (s *Store) SetOrderStatus(ctx context.Context, id int64, from, to string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE orders
		 SET status = $1
		 WHERE id = $2
		   AND status = $3`,
		to, id, from)
	if err != nil {
		return fmt.Errorf("set order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check order exists: %w", err)
		}
		if !exists {
			return database.ErrOrderNotFound
		}
		return database.ErrStatusConflict
	}

	return nil
}

// ItemExistsWithArticle guards article deletion: an article referenced by
// any historical order item must never be removed.
func (s *Store) ItemExistsWithArticle(ctx context.Context, articleID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM order_items WHERE article_id = $1)`,
		articleID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check article order items: %w", err)
	}
	return exists, nil
}
