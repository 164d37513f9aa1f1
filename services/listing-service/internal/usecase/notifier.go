package usecase

import (
	"context"
	"fmt"
	"html"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/model"
)

// RecommendationNotifier tells a user that someone recommended a property to them.
// Implementations must return once ctx is done.
type RecommendationNotifier interface {
	NotifyRecommendation(ctx context.Context, recipient, recommender *model.User, property *model.Property) error
}

// HTMLMailer is satisfied by *mailer.Mailer.
type HTMLMailer interface {
	SendHTML(to []string, subject, htmlBody, textBody string) error
}

type emailRecommendationNotifier struct {
	mailer HTMLMailer
}

func NewEmailRecommendationNotifier(mailer HTMLMailer) RecommendationNotifier {
	return &emailRecommendationNotifier{mailer: mailer}
}

func (n *emailRecommendationNotifier) NotifyRecommendation(
	ctx context.Context,
	recipient, recommender *model.User,
	property *model.Property,
) error {
	subject := fmt.Sprintf("%s recommended a property to you", recommender.Name)

	htmlBody := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>%s thinks you might like this property:</p>

		<p><strong>%s</strong><br>%s, %s, %s</p>
		<p>Price: %.2f</p>

		<p>Log in to see all of your recommendations.</p>
	`,
		html.EscapeString(recipient.Name),
		html.EscapeString(recommender.Name),
		html.EscapeString(property.Title),
		html.EscapeString(property.Address),
		html.EscapeString(property.City),
		html.EscapeString(property.State),
		property.Price,
	)

	textBody := fmt.Sprintf(
		"Hi %s,\n\n%s thinks you might like this property: %s (%s, %s, %s), price %.2f.\n",
		recipient.Name,
		recommender.Name,
		property.Title,
		property.Address,
		property.City,
		property.State,
		property.Price,
	)

	// gomail has no context support, so a stalled SMTP server is abandoned rather than
	// waited for.
	done := make(chan error, 1)
	go func() {
		done <- n.mailer.SendHTML([]string{recipient.Email}, subject, htmlBody, textBody)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("recommendation email to %s not sent: %w", recipient.Email, ctx.Err())
	}
}

type nopRecommendationNotifier struct{}

// NewNopRecommendationNotifier returns a notifier that does nothing. It is used when no
// SMTP server is configured.
func NewNopRecommendationNotifier() RecommendationNotifier {
	return nopRecommendationNotifier{}
}

func (nopRecommendationNotifier) NotifyRecommendation(context.Context, *model.User, *model.User, *model.Property) error {
	return nil
}
