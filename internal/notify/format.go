package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const timeLayout = "2006-01-02 15:04 UTC"

func bookingKey(id uint) string {
	return fmt.Sprintf("booking:%d", id)
}

func clientLine(b *models.Booking) string {
	if b.Client == nil {
		return fmt.Sprintf("client #%d", b.ClientID)
	}

	parts := []string{b.Client.Name}
	if b.Client.Phone != "" {
		parts = append(parts, b.Client.Phone)
	}
	if b.Client.Email != "" {
		parts = append(parts, b.Client.Email)
	}
	return strings.Join(parts, " · ")
}

func serviceLine(b *models.Booking) string {
	if b.Service == nil {
		return "-"
	}
	if b.Service.TitleEn != "" && b.Service.TitleEn != b.Service.Title {
		return b.Service.Title + " / " + b.Service.TitleEn
	}
	return b.Service.Title
}

func whenLine(b *models.Booking) string {
	s := b.StartTime.UTC().Format(timeLayout)
	if b.EndTime != nil {
		s += " – " + b.EndTime.UTC().Format("15:04")
	}
	return s
}

// bookingHTML renders the chat message for a booking. The same text is used
// for the first post and for later edits.
func bookingHTML(title string, b *models.Booking) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<b>%s</b> #%d\n", html.EscapeString(title), b.ID)
	fmt.Fprintf(&sb, "Client: %s\n", html.EscapeString(clientLine(b)))
	fmt.Fprintf(&sb, "Service: %s\n", html.EscapeString(serviceLine(b)))
	fmt.Fprintf(&sb, "When: %s\n", html.EscapeString(whenLine(b)))
	fmt.Fprintf(&sb, "Status: <b>%s</b>", html.EscapeString(b.Status))

	if notes := strings.TrimSpace(b.Notes); notes != "" {
		fmt.Fprintf(&sb, "\nNotes: %s", html.EscapeString(notes))
	}
	return sb.String()
}

func bookingSMS(title string, b *models.Booking) string {
	return fmt.Sprintf("%s #%d: %s, %s, %s (%s)",
		title, b.ID, clientLine(b), serviceLine(b), whenLine(b), b.Status)
}

func messageHTML(m *models.ContactMessage) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<b>New message</b> #%d\n", m.ID)
	fmt.Fprintf(&sb, "From: %s", html.EscapeString(m.Name))
	if m.Phone != "" {
		fmt.Fprintf(&sb, " · %s", html.EscapeString(m.Phone))
	}
	if m.Email != "" {
		fmt.Fprintf(&sb, " · %s", html.EscapeString(m.Email))
	}
	if m.Subject != "" {
		fmt.Fprintf(&sb, "\nSubject: %s", html.EscapeString(m.Subject))
	}
	fmt.Fprintf(&sb, "\n\n%s", html.EscapeString(m.Body))
	return sb.String()
}

func messageSMS(m *models.ContactMessage) string {
	body := []rune(m.Body)
	if len(body) > 120 {
		body = append(body[:120], '…')
	}
	return fmt.Sprintf("New message from %s: %s", m.Name, string(body))
}
