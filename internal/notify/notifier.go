package notify

import (
	"context"
	"log"

	"github.com/lumina-studio/gallery-api/internal/models"
)

// Notifier is the extension point for client notifications. It is invoked
// after a booking status change or a client cancellation has been persisted;
// implementations must never fail the surrounding request.
type Notifier interface {
	BookingStatusChanged(ctx context.Context, booking *models.Booking)
	BookingCancelled(ctx context.Context, booking *models.Booking)
}

// LogNotifier is the default implementation: it only logs. Wiring a real
// email sender here is a deployment concern.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) BookingStatusChanged(ctx context.Context, booking *models.Booking) {
	log.Printf(
		"notify %s: booking %s is now %s",
		booking.ClientEmail, booking.PublicID, booking.Status,
	)
}

func (n *LogNotifier) BookingCancelled(ctx context.Context, booking *models.Booking) {
	log.Printf(
		"notify %s: booking %s was cancelled",
		booking.ClientEmail, booking.PublicID,
	)
}
