package shop

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/duartesilva/plantshop/internal/apperr"
	"github.com/duartesilva/plantshop/internal/database"
	"github.com/duartesilva/plantshop/internal/messaging"
	"github.com/duartesilva/plantshop/internal/models"
	"github.com/duartesilva/plantshop/internal/store"
)

// OrderStore is the order persistence consumed by the workflows.
// CreateOrder commits the priced order, its items and the stock
// decrements as one atomic unit; see store.Store.CreateOrder.
type OrderStore interface {
	CreateOrder(ctx context.Context, userID string, lines []store.CartLine) (int64, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	GetOrderDetails(ctx context.Context, id int64) (*models.OrderDetail, error)
	ListOrdersByUser(ctx context.Context, userID, cursor string, limit int) (*store.CursorPage, error)
	ListAllOrders(ctx context.Context) ([]models.OrderSummary, error)
	SetOrderStatus(ctx context.Context, id int64, from, to string) error
}

type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// OrderService implements order placement and the fulfillment transition.
type OrderService struct {
	orders    OrderStore
	users     UserStore
	publisher messaging.Publisher
	logger    *zap.Logger
}

func NewOrderService(orders OrderStore, users UserStore, publisher messaging.Publisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// PlaceOrder checks the customer and cart, prices every line against the
// catalog, and commits the order together with the stock decrements.
// Validation failures abort before anything is written; the first failing
// cart line wins.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, lines []store.CartLine) (*models.OrderDetail, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, "user not found", err)
		}
		return nil, err
	}

	if user.Address == "" {
		s.logger.Warn("checkout without shipping address", zap.String("user_id", userID))
		return nil, apperr.New(apperr.KindPrecondition, "missing shipping address")
	}

	if len(lines) == 0 {
		return nil, apperr.New(apperr.KindPrecondition, "empty cart")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperr.New(apperr.KindPrecondition,
				fmt.Sprintf("invalid quantity %d for article %d", line.Quantity, line.ArticleID))
		}
	}

	orderID, err := s.orders.CreateOrder(ctx, userID, lines)
	if err != nil {
		var stockErr *store.StockError
		switch {
		case errors.Is(err, database.ErrArticleNotFound):
			return nil, apperr.Wrap(apperr.KindNotFound, "article no longer exists", err)
		case errors.As(err, &stockErr):
			return nil, apperr.Wrap(apperr.KindConflict, stockErr.Error(), err)
		}
		return nil, err
	}

	detail, err := s.orders.GetOrderDetails(ctx, orderID)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			return nil, apperr.Wrap(apperr.KindInternal, "order created but details unavailable", err)
		}
		return nil, err
	}

	s.logger.Info("order created",
		zap.Int64("order_id", orderID),
		zap.String("user_id", userID),
		zap.String("total_price", detail.TotalPrice.String()),
	)

	return detail, nil
}

// ShipOrder transitions a pending order to shipped and notifies the
// logistics queue. The status change is the source of truth: once it
// commits, a publish failure is logged and swallowed rather than rolled
// back, so the order stays shipped even if the downstream system was
// never informed.
func (s *OrderService) ShipOrder(ctx context.Context, orderID int64) error {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			return apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("order %d not found", orderID), err)
		}
		return err
	}

	user, err := s.users.GetUser(ctx, order.UserID)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			// Unreachable while the FK holds.
			return apperr.Wrap(apperr.KindInternal, "order has no associated user", err)
		}
		return err
	}

	if order.Status != models.OrderStatusPending {
		return apperr.New(apperr.KindConflict,
			fmt.Sprintf("cannot ship order in state %q", order.Status))
	}

	err = s.orders.SetOrderStatus(ctx, orderID, models.OrderStatusPending, models.OrderStatusShipped)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrOrderNotFound):
			return apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("order %d not found", orderID), err)
		case errors.Is(err, database.ErrStatusConflict):
			return apperr.Wrap(apperr.KindConflict, "order is no longer pending", err)
		}
		return err
	}

	s.logger.Info("order marked as shipped", zap.Int64("order_id", orderID))

	notification := messaging.ShippingNotification{
		OrderID:          orderID,
		CustomerFullName: user.FullName,
		ShippingAddress:  user.Address,
	}

	if err := s.publisher.PublishShippingNotification(ctx, notification); err != nil {
		// Status already committed; notification is advisory.
		s.logger.Error("failed to publish shipping notification",
			zap.Error(err),
			zap.Int64("order_id", orderID),
		)
	}

	return nil
}

func (s *OrderService) OrderDetails(ctx context.Context, orderID int64) (*models.OrderDetail, error) {
	detail, err := s.orders.GetOrderDetails(ctx, orderID)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("order %d not found", orderID), err)
		}
		return nil, err
	}
	return detail, nil
}

func (s *OrderService) OrdersForUser(ctx context.Context, userID, cursor string, limit int) (*store.CursorPage, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, "user not found", err)
		}
		return nil, err
	}
	return s.orders.ListOrdersByUser(ctx, userID, cursor, limit)
}

func (s *OrderService) AllOrders(ctx context.Context) ([]models.OrderSummary, error) {
	return s.orders.ListAllOrders(ctx)
}
