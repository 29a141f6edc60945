package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tour-service/src/internal/model"
	"tour-service/src/internal/repository"
	"tour-service/src/pkg/databases/mysql"
	httpError "tour-service/src/pkg/http-error"
	"tour-service/src/pkg/log"
	"tour-service/src/pkg/utils"
)

// notifyFailure marks a required notification that failed inside a
// transaction, so nothing was saved.
type notifyFailure struct {
	err error
}

func (e *notifyFailure) Error() string { return e.err.Error() }
func (e *notifyFailure) Unwrap() error { return e.err }

// commitAndNotify runs write in one transaction and sends the notification
// according to the kind's policy. A non-nil notifyErr means write committed
// and only the best-effort notification failed.
func commitAndNotify(
	ctx context.Context,
	tx repository.Transactor,
	dispatcher *NotificationDispatcher,
	kind model.NotificationKind,
	write func(ctx context.Context) error,
	notify func(ctx context.Context) error,
) (notifyErr error, err error) {
	if dispatcher.Policy(kind) == NotifyRequired {
		err = tx.WithTransaction(ctx, func(ctx context.Context) error {
			if err := write(ctx); err != nil {
				return err
			}
			if err := notify(ctx); err != nil {
				return &notifyFailure{err: err}
			}
			return nil
		})
		return nil, err
	}

	if err = tx.WithTransaction(ctx, write); err != nil {
		return nil, err
	}
	return notify(ctx), nil
}

func newBadRequest(message string) *httpError.BadRequest {
	errObj := httpError.NewBadRequest()
	errObj.Message = message
	return errObj
}

func newNotFound(message string) *httpError.NotFound {
	errObj := httpError.NewNotFound()
	errObj.Message = message
	return errObj
}

func newConflict(message string) *httpError.Conflict {
	errObj := httpError.NewConflict()
	errObj.Message = message
	return errObj
}

// notFoundOr turns sql.ErrNoRows into a NotFound carrying message.
func notFoundOr(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return newNotFound(message)
	}
	return err
}

// conflictOnDuplicate turns a unique-key violation into a Conflict.
func conflictOnDuplicate(err error, message string) error {
	if errors.Is(err, mysql.ErrDuplicate) {
		return newConflict(message)
	}
	return err
}

func validationFailure(logger log.Log, component, scope string, err error, request interface{}) utils.Result {
	errObj := httpError.NewValidationError(utils.ValidationMessages(err))
	logger.Error(component, errObj.Message, scope, utils.ConvertString(request))
	return utils.Result{Error: errObj}
}

// failure logs err and converts it into the result returned to delivery.
// Typed errors pass through, anything else becomes an internal error.
func failure(logger log.Log, component, scope string, err error, meta string) utils.Result {
	var result utils.Result
	logger.Error(component, err.Error(), scope, meta)

	var notifyErr *notifyFailure
	if errors.As(err, &notifyErr) {
		errObj := httpError.NewNotifyError()
		errObj.Message = fmt.Sprintf("failed to send notification, nothing was saved: %v", notifyErr.err)
		result.Error = errObj
		return result
	}
	if typed, ok := httpError.As(err); ok {
		result.Error = typed
		return result
	}
	result.Error = httpError.NewInternalServerError()
	return result
}

// committedWithNotifyError reports a write that stands while its
// notification was lost.
func committedWithNotifyError(logger log.Log, component, scope string, notifyErr error, data interface{}) utils.Result {
	logger.Warn(component, fmt.Sprintf("saved, notification failed: %v", notifyErr), scope, "")
	errObj := httpError.NewCommittedNotifyError(data)
	errObj.Message = fmt.Sprintf("saved, but failed to send notification: %v", notifyErr)
	return utils.Result{Data: data, Error: errObj}
}
