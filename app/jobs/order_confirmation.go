// Package jobs holds the queued background jobs and their boot-time wiring.
package jobs

import (
	"fmt"

	"github.com/pethive/pethive/app/services"
	"github.com/pethive/pethive/config"
	"github.com/pethive/pethive/pkg/event"
	"github.com/pethive/pethive/pkg/logger"
	"github.com/pethive/pethive/pkg/notification"
	"github.com/pethive/pethive/pkg/queue"
)

// OrderConfirmationJob sends the checkout confirmation: mail to the buyer,
// plus a Slack ping when an ops webhook is configured.
type OrderConfirmationJob struct {
	OrderID uint    `json:"orderId"`
	UserID  uint    `json:"userId"`
	Email   string  `json:"email"`
	Total   float64 `json:"total"`
}

func (j *OrderConfirmationJob) Handle() error {
	if j.Email == "" {
		// Demo identities have no deliverable address; nothing to send.
		return nil
	}

	errs := notification.Send(j.Email, &orderConfirmed{job: j})
	if len(errs) > 0 {
		return fmt.Errorf("jobs: order confirmation: %v", errs[0])
	}
	return nil
}

// orderConfirmed is the notification payload built from the job.
type orderConfirmed struct {
	job *OrderConfirmationJob
}

func (n *orderConfirmed) Via() []string {
	channels := []string{"mail"}
	if config.Get("SLACK_WEBHOOK_URL", "") != "" {
		channels = append(channels, "slack")
	}
	return channels
}

func (n *orderConfirmed) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("Order #%d confirmed", n.job.OrderID),
		Body: fmt.Sprintf(
			"<h2>Thanks for your order!</h2><p>Order <b>#%d</b> for <b>$%.2f</b> is confirmed and will ship soon.</p>",
			n.job.OrderID, n.job.Total),
		Text: fmt.Sprintf("Thanks for your order! Order #%d for $%.2f is confirmed.",
			n.job.OrderID, n.job.Total),
	}
}

func (n *orderConfirmed) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("New order #%d: $%.2f (user %d)",
			n.job.OrderID, n.job.Total, n.job.UserID),
	}
}

// Boot registers the job types with the queue and wires the event listeners.
// Called once from the server boot sequence and the queue:work command.
func Boot() {
	queue.Register("*jobs.OrderConfirmationJob", func() queue.Job {
		return &OrderConfirmationJob{}
	})

	event.Listen(services.EventOrderCreated, func(payload interface{}) {
		created, ok := payload.(services.OrderCreatedPayload)
		if !ok {
			return
		}
		job := &OrderConfirmationJob{
			OrderID: created.OrderID,
			UserID:  created.UserID,
			Email:   created.Email,
			Total:   created.Total,
		}
		if err := queue.Dispatch(job); err != nil {
			logger.Error("jobs: dispatch order confirmation", "error", err)
		}
	})
}
