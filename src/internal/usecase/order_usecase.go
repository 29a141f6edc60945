package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tour-service/src/internal/entity"
	"tour-service/src/internal/model"
	"tour-service/src/internal/model/converter"
	"tour-service/src/internal/repository"
	"tour-service/src/pkg/log"
	"tour-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RatingCache keeps the last computed product rating close to readers.
type RatingCache interface {
	SetRating(ctx context.Context, productID string, rating float64) error
	GetRating(ctx context.Context, productID string) (float64, error)
}

type OrderUseCase struct {
	Log               log.Log
	Validate          *validator.Validate
	Tx                repository.Transactor
	OrderRepository   repository.Orders
	ReviewRepository  repository.Reviews
	ProductRepository repository.Products
	Notification      *NotificationDispatcher
	RatingCache       RatingCache
}

func NewOrderUseCase(
	logger log.Log,
	validate *validator.Validate,
	tx repository.Transactor,
	orderRepository repository.Orders,
	reviewRepository repository.Reviews,
	productRepository repository.Products,
	notification *NotificationDispatcher,
	ratingCache RatingCache,
) *OrderUseCase {
	return &OrderUseCase{
		Log:               logger,
		Validate:          validate,
		Tx:                tx,
		OrderRepository:   orderRepository,
		ReviewRepository:  reviewRepository,
		ProductRepository: productRepository,
		Notification:      notification,
		RatingCache:       ratingCache,
	}
}

func (c *OrderUseCase) ListOrders(ctx context.Context, request *model.ListUserOrdersRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "order-usecase", "ListOrders", err, request)
	}

	details, err := c.OrderRepository.ListByUser(ctx, request.UserID)
	if err != nil {
		return failure(c.Log, "order-usecase", "ListOrders", err, request.UserID)
	}
	return utils.Result{Data: converter.OrderDetailsToResponse(details, false)}
}

func (c *OrderUseCase) ListOrdersForAdmin(ctx context.Context) utils.Result {
	details, err := c.OrderRepository.ListAll(ctx)
	if err != nil {
		return failure(c.Log, "order-usecase", "ListOrdersForAdmin", err, "")
	}
	return utils.Result{Data: converter.OrderDetailsToResponse(details, true)}
}

// CancelOrder cancels an order that is still on journey. Every admin is told
// in parallel, and under the default policy a single failed delivery undoes
// the cancellation.
func (c *OrderUseCase) CancelOrder(ctx context.Context, request *model.CancelOrderRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "order-usecase", "CancelOrder", err, request)
	}

	order, err := c.OrderRepository.FindByID(ctx, request.OrderID)
	if err != nil {
		return failure(c.Log, "order-usecase", "CancelOrder",
			notFoundOr(err, fmt.Sprintf("order with id %s not found", request.OrderID)), request.OrderID)
	}
	if order.Status != entity.OrderOnJourney {
		return failure(c.Log, "order-usecase", "CancelOrder",
			newConflict(fmt.Sprintf("order in status %s cannot be canceled", order.Status)), order.ID)
	}

	notifyErr, err := commitAndNotify(ctx, c.Tx, c.Notification, model.NotifyOrderCanceled,
		func(ctx context.Context) error {
			ok, err := c.OrderRepository.UpdateStatus(ctx, order.ID, entity.OrderOnJourney, entity.OrderCanceled)
			if err != nil {
				return err
			}
			if !ok {
				return newConflict("order is no longer on journey")
			}
			return nil
		},
		func(ctx context.Context) error {
			data := map[string]interface{}{
				"orderId":    order.ID,
				"paymentId":  order.PaymentID,
				"productId":  order.ProductID,
				"customerId": order.UserID,
				"canceledAt": time.Now().UTC(),
			}
			if product, err := c.ProductRepository.FindByID(ctx, order.ProductID); err == nil {
				data["productTitle"] = product.Title
			}
			return c.Notification.ToAdmins(ctx, model.NotifyOrderCanceled, data)
		},
	)
	if err != nil {
		return failure(c.Log, "order-usecase", "CancelOrder", err, order.ID)
	}

	order.Status = entity.OrderCanceled
	response := converter.OrderToResponse(order)
	if notifyErr != nil {
		return committedWithNotifyError(c.Log, "order-usecase", "CancelOrder", notifyErr, response)
	}

	c.Log.Info("order-usecase", "order canceled", "CancelOrder", order.ID)
	return utils.Result{Data: response}
}

// SubmitReview records the customer's review and finishes the order in one
// transaction. The product rating is recomputed afterwards; it is a cache of
// the reviews, so a failure there is logged and the review stands.
func (c *OrderUseCase) SubmitReview(ctx context.Context, request *model.SubmitReviewRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "order-usecase", "SubmitReview", err, request)
	}

	order, err := c.OrderRepository.FindByID(ctx, request.OrderID)
	if err == nil && order.UserID != request.UserID {
		err = sql.ErrNoRows
	}
	if err != nil {
		return failure(c.Log, "order-usecase", "SubmitReview",
			notFoundOr(err, fmt.Sprintf("order with id %s not found", request.OrderID)), request.OrderID)
	}
	switch order.Status {
	case entity.OrderOnJourney:
	case entity.OrderFinished:
		return failure(c.Log, "order-usecase", "SubmitReview", newConflict("review already submitted for this order"), order.ID)
	default:
		return failure(c.Log, "order-usecase", "SubmitReview",
			newConflict(fmt.Sprintf("order in status %s cannot be reviewed", order.Status)), order.ID)
	}

	now := time.Now().UTC()
	review := &entity.Review{
		ID:            uuid.NewString(),
		OrderID:       order.ID,
		ProductID:     order.ProductID,
		UserID:        order.UserID,
		Rating:        *request.Rating,
		MessageReview: request.MessageReview,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = c.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := c.ReviewRepository.Create(ctx, review); err != nil {
			return conflictOnDuplicate(err, "review already submitted for this order")
		}
		ok, err := c.OrderRepository.UpdateStatus(ctx, order.ID, entity.OrderOnJourney, entity.OrderFinished)
		if err != nil {
			return err
		}
		if !ok {
			return newConflict("order is no longer on journey")
		}
		return nil
	})
	if err != nil {
		return failure(c.Log, "order-usecase", "SubmitReview", err, order.ID)
	}

	response := converter.ReviewToResponse(review, entity.OrderFinished)
	if rating, err := c.RecomputeRating(ctx, order.ProductID); err != nil {
		c.Log.Warn("order-usecase", fmt.Sprintf("rating recompute failed: %v", err), "SubmitReview", order.ProductID)
	} else {
		response.ProductRating = &rating
	}

	c.Log.Info("order-usecase", "review submitted", "SubmitReview", review.ID)
	return utils.Result{Data: response}
}

// RecomputeRating sets the product rating to the rounded mean of all its
// reviews and refreshes the cache.
func (c *OrderUseCase) RecomputeRating(ctx context.Context, productID string) (float64, error) {
	ratings, err := c.ReviewRepository.RatingsByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("load ratings: %w", err)
	}
	rating := entity.AverageRating(ratings)
	if err = c.ProductRepository.UpdateRating(ctx, productID, rating); err != nil {
		return 0, fmt.Errorf("update product rating: %w", err)
	}

	if c.RatingCache != nil {
		if err = c.RatingCache.SetRating(ctx, productID, rating); err != nil {
			c.Log.Warn("order-usecase", err.Error(), "RecomputeRating-cache", productID)
		}
	}
	return rating, nil
}

func (c *OrderUseCase) GetProductRating(ctx context.Context, request *model.GetProductRatingRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "order-usecase", "GetProductRating", err, request)
	}

	if c.RatingCache != nil {
		if rating, err := c.RatingCache.GetRating(ctx, request.ProductID); err == nil {
			return utils.Result{Data: &model.ProductRatingResponse{ProductID: request.ProductID, Rating: rating, Cached: true}}
		}
	}

	product, err := c.ProductRepository.FindByID(ctx, request.ProductID)
	if err != nil {
		return failure(c.Log, "order-usecase", "GetProductRating",
			notFoundOr(err, fmt.Sprintf("product with id %s not found", request.ProductID)), request.ProductID)
	}
	if c.RatingCache != nil {
		if err = c.RatingCache.SetRating(ctx, product.ID, product.Rating); err != nil {
			c.Log.Warn("order-usecase", err.Error(), "GetProductRating-cache", product.ID)
		}
	}
	return utils.Result{Data: &model.ProductRatingResponse{ProductID: product.ID, Rating: product.Rating}}
}
