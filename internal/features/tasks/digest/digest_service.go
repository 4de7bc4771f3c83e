package tasks_digest

import (
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"tasktracker/internal/mail"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const (
	// Tasks due within this window (plus anything already overdue) are
	// included in the digest.
	dueSoonWindow = 24 * time.Hour

	descriptionPreviewLength = 30

	digestCronSpec = "0 7 * * *"
)

type DigestService struct {
	digestRepository *DigestRepository
	mailer           mail.Sender
	logger           *slog.Logger

	cron *cron.Cron
}

type RecipientDigest struct {
	Email string
	Name  string
	Tasks []*DigestTaskRow
}

// SetMailer replaces the mail sender, used by tests.
func (s *DigestService) SetMailer(mailer mail.Sender) {
	s.mailer = mailer
}

// StartScheduler should only be called on ONE instance, concurrent
// schedulers would duplicate digests.
func (s *DigestService) StartScheduler() {
	s.cron = cron.New()

	if _, err := s.cron.AddFunc(digestCronSpec, func() {
		if err := s.SendDailyDigests(time.Now().UTC()); err != nil {
			s.logger.Error("Daily digest run failed", slog.String("error", err.Error()))
		}
	}); err != nil {
		panic(fmt.Sprintf("failed to schedule daily digest: %v", err))
	}

	s.cron.Start()

	s.logger.Info("Daily digest scheduler started", slog.String("spec", digestCronSpec))
}

func (s *DigestService) StopScheduler() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// ExecuteDigestForTest runs one digest pass synchronously.
func (s *DigestService) ExecuteDigestForTest(now time.Time) error {
	return s.SendDailyDigests(now)
}

func (s *DigestService) SendDailyDigests(now time.Time) error {
	rows, err := s.digestRepository.GetDueTaskRows(now.Add(dueSoonWindow))
	if err != nil {
		return fmt.Errorf("failed to query due tasks: %w", err)
	}

	digests := GroupByRecipient(rows)

	sent := 0
	failed := 0

	for _, digest := range digests {
		subject, body := RenderDigest(digest, now)

		// One recipient failing must not block the others
		if err := s.mailer.Send(digest.Email, subject, body); err != nil {
			failed++
			s.logger.Error("Failed to send digest email",
				slog.String("recipient", digest.Email),
				slog.String("error", err.Error()))
			continue
		}
		sent++
	}

	s.logger.Info("Daily digest run completed",
		slog.Int("recipients", len(digests)),
		slog.Int("sent", sent),
		slog.Int("failed", failed))

	return nil
}

// GroupByRecipient buckets due task rows per assignee, preserving the
// due-date ordering of the query.
func GroupByRecipient(rows []*DigestTaskRow) []*RecipientDigest {
	byAssignee := make(map[uuid.UUID]*RecipientDigest)
	order := make([]uuid.UUID, 0)

	for _, row := range rows {
		digest, ok := byAssignee[row.AssigneeID]
		if !ok {
			digest = &RecipientDigest{
				Email: row.AssigneeEmail,
				Name:  row.AssigneeName,
			}
			byAssignee[row.AssigneeID] = digest
			order = append(order, row.AssigneeID)
		}

		digest.Tasks = append(digest.Tasks, row)
	}

	digests := make([]*RecipientDigest, 0, len(byAssignee))
	for _, assigneeID := range order {
		digests = append(digests, byAssignee[assigneeID])
	}

	return digests
}

// RenderDigest builds the subject and HTML body for one recipient.
func RenderDigest(digest *RecipientDigest, now time.Time) (subject, body string) {
	subject = fmt.Sprintf("Task Tracker: %d task(s) need your attention", len(digest.Tasks))

	var b strings.Builder

	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(digest.Name))
	b.WriteString("<p>These tasks are overdue or due within the next 24 hours:</p><ul>")

	for _, task := range digest.Tasks {
		label := "due soon"
		if task.DueAt.Before(now) {
			label = "overdue"
		}

		fmt.Fprintf(&b, "<li><b>%s</b> (%s, %s): %s, due %s</li>",
			html.EscapeString(task.Title),
			html.EscapeString(task.ProjectName),
			task.Status,
			label,
			task.DueAt.Format("Jan 2 15:04"),
		)

		preview := TruncateDescription(task.Description)
		if preview != "" {
			fmt.Fprintf(&b, "<li style=\"list-style:none\"><i>%s</i></li>", html.EscapeString(preview))
		}
	}

	b.WriteString("</ul>")

	return subject, b.String()
}

// TruncateDescription shortens a description to a fixed preview length.
func TruncateDescription(description string) string {
	runes := []rune(description)
	if len(runes) <= descriptionPreviewLength {
		return description
	}

	return string(runes[:descriptionPreviewLength]) + "..."
}
