package domain

import "context"

// Mailer delivers transactional mail. Implementations are best-effort; order
// submission never fails because of a mailer error.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, o *Order) error
	SendAdminNotification(ctx context.Context, o *Order) error
	SendTest(ctx context.Context, to string) error
}
