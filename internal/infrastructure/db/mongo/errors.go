package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

// wrapErr keeps driver errors behind the repository boundary. Timeouts and
// connectivity failures become domain.ErrServiceUnavailable; the cause stays
// in the chain so callers can still tell a deadline from a refused dial.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrServiceUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
