// Package services provides the business logic layer for the ProjectBoard
// application. This file implements the email notification dispatcher used
// on project, task and item lifecycle transitions.
package services

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/avissapr/projectboard/internal/config"
	"github.com/avissapr/projectboard/internal/logging"
)

// EventKind identifies a lifecycle transition that can trigger an email.
type EventKind string

// Notification event kinds. One per lifecycle transition that accepts a
// notify_email field on its request body.
const (
	EventProjectCreated EventKind = "project_created"
	EventProjectClosed  EventKind = "project_closed"
	EventTaskCreated    EventKind = "task_created"
	EventItemCreated    EventKind = "item_created"
	EventItemCompleted  EventKind = "item_completed"
)

// DefaultRecipientName is the salutation used when the recipient's real
// name is unknown, which is the common case since notify_email addresses
// are free-form and not required to match a registered user.
const DefaultRecipientName = "Team Member"

// Event carries everything the dispatcher needs to render and address one
// notification email. Name fields that a given EventKind does not use are
// left empty.
type Event struct {
	Kind      EventKind // Which lifecycle transition occurred
	Recipient string    // Destination email address (from notify_email)
	UserName  string    // Salutation name; DefaultRecipientName if empty

	ProjectName string // Set for all event kinds
	TaskName    string // Set for task and item events
	ItemName    string // Set for item events
}

// NotificationService sends lifecycle notification emails.
//
// Delivery is strictly best-effort: Dispatch reports success as a bool and
// never returns an error, so a broken SMTP setup can slow a request down
// but can never fail it. Callers log the outcome and move on.
//
// Modes (config.EmailMode):
//   - live: send through SMTP via gomail
//   - mock: log the rendered email instead of sending
type NotificationService struct {
	cfg    *config.Config
	logger *logging.Logger
}

// NewNotificationService creates a dispatcher bound to the given
// configuration and logger.
func NewNotificationService(cfg *config.Config, logger *logging.Logger) *NotificationService {
	return &NotificationService{cfg: cfg, logger: logger}
}

// Dispatch renders and delivers the email for the given event.
//
// Returns true only when the message was handed off successfully (or, in
// mock mode, logged). Every failure path degrades to a warning log and
// false; the entity mutation that triggered the event has already been
// committed and must not be rolled back over email trouble.
//
// Parameters:
//   - ctx: Checked for cancellation before the (blocking) SMTP dial
//   - event: Transition details; unknown kinds are rejected
func (s *NotificationService) Dispatch(ctx context.Context, event Event) bool {
	if event.Recipient == "" {
		return false
	}
	if event.UserName == "" {
		event.UserName = DefaultRecipientName
	}

	subject, body, err := renderEmail(event)
	if err != nil {
		s.logger.Warn("notification rejected", logging.Fields{
			"event": string(event.Kind),
		})
		return false
	}

	if s.cfg.EmailMode == config.EmailModeMock {
		s.logger.Info("notification (mock)", logging.Fields{
			"event":     string(event.Kind),
			"recipient": event.Recipient,
			"subject":   subject,
		})
		return true
	}

	if s.cfg.SMTPHost == "" || s.cfg.SMTPUser == "" {
		s.logger.Warn("notification skipped, SMTP not configured", logging.Fields{
			"event": string(event.Kind),
		})
		return false
	}

	if err := ctx.Err(); err != nil {
		s.logger.Warn("notification aborted", logging.Fields{
			"event": string(event.Kind),
		})
		return false
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.EmailFrom, s.cfg.EmailFromName)
	m.SetHeader("To", event.Recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		s.logger.Error("notification send failed", err, logging.Fields{
			"event":     string(event.Kind),
			"recipient": event.Recipient,
		})
		return false
	}

	s.logger.Info("notification sent", logging.Fields{
		"event":     string(event.Kind),
		"recipient": event.Recipient,
		"subject":   subject,
	})
	return true
}

// renderEmail produces the subject line and HTML body for an event.
// Entity names are user-supplied and get escaped before interpolation.
func renderEmail(event Event) (subject, body string, err error) {
	user := html.EscapeString(event.UserName)
	project := html.EscapeString(event.ProjectName)
	task := html.EscapeString(event.TaskName)
	item := html.EscapeString(event.ItemName)

	switch event.Kind {
	case EventProjectCreated:
		subject = fmt.Sprintf("New Project Created: %s", event.ProjectName)
		body = fmt.Sprintf(`<h2>New Project Created</h2>
<p>Hi %s,</p>
<p>A new project <strong>%s</strong> has been created.</p>
<p>Log in to ProjectBoard to view and manage your projects.</p>`, user, project)

	case EventProjectClosed:
		subject = fmt.Sprintf("Project Closed: %s", event.ProjectName)
		body = fmt.Sprintf(`<h2>Project Closed</h2>
<p>Hi %s,</p>
<p>Project <strong>%s</strong> has been closed.</p>
<p>View the project details in ProjectBoard.</p>`, user, project)

	case EventTaskCreated:
		subject = fmt.Sprintf("New Task Created: %s", event.TaskName)
		body = fmt.Sprintf(`<h2>New Task Created</h2>
<p>Hi %s,</p>
<p>A new task <strong>%s</strong> has been created in project <strong>%s</strong>.</p>`, user, task, project)

	case EventItemCreated:
		subject = fmt.Sprintf("New Item Created: %s", event.ItemName)
		body = fmt.Sprintf(`<h2>New Item Created</h2>
<p>Hi %s,</p>
<p>A new item <strong>%s</strong> has been added to task <strong>%s</strong> in project <strong>%s</strong>.</p>`, user, item, task, project)

	case EventItemCompleted:
		subject = fmt.Sprintf("Item Completed: %s", event.ItemName)
		body = fmt.Sprintf(`<h2>Item Marked as Done</h2>
<p>Hi %s,</p>
<p>Item <strong>%s</strong> in task <strong>%s</strong> (project <strong>%s</strong>) has been marked as done.</p>`, user, item, task, project)

	default:
		return "", "", fmt.Errorf("unknown notification event: %s", event.Kind)
	}

	return subject, body, nil
}
