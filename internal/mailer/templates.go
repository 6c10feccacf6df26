package mailer

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// OTPMessage builds the registration code email
func OTPMessage(email, code string, ttl time.Duration) Message {
	minutes := int(ttl.Minutes())
	return Message{
		To:       []string{email},
		FromName: "B Team Security",
		Subject:  fmt.Sprintf("[B Team] Your Verification Code: %s", code),
		Text: fmt.Sprintf("Use the following One-Time Password (OTP) to complete your registration: %s\n\nThis code will expire in %d minutes.",
			code, minutes),
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2 style="color: #333;">Verify Your Email</h2>
	<p>Use the following One-Time Password (OTP) to complete your registration:</p>
	<div style="background: #f4f4f5; padding: 20px; text-align: center; border-radius: 8px; margin: 20px 0;">
		<span style="font-size: 32px; font-weight: bold; letter-spacing: 5px; color: #000;">%s</span>
	</div>
	<p style="color: #666; font-size: 14px;">This code will expire in %d minutes.</p>
</div>`, code, minutes),
	}
}

// TicketEmail holds the fields shown in a new-ticket notification
type TicketEmail struct {
	TicketID      string
	Subject       string
	Category      string
	Description   string
	EmployeeName  string
	EmployeeEmail string
}

// TicketMessage builds the new-ticket notification for the support team
func TicketMessage(recipients []string, data TicketEmail, appURL string) Message {
	adminURL := strings.TrimRight(appURL, "/") + "/dashboard/admin/tickets"
	esc := html.EscapeString

	return Message{
		To:       recipients,
		FromName: "B Team Support",
		Subject:  fmt.Sprintf("[B Team] New Support Ticket: %s", data.Subject),
		Text: fmt.Sprintf("New Support Ticket #%s\nCategory: %s\nSubmitted By: %s (%s)\nSubject: %s\n\n%s\n\nView in Admin Panel: %s",
			data.TicketID, data.Category, data.EmployeeName, data.EmployeeEmail, data.Subject, data.Description, adminURL),
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<div style="background: linear-gradient(135deg, #3b82f6, #1d4ed8); padding: 24px; text-align: center;">
		<h1 style="color: white; margin: 0; font-size: 24px;">B TEAM Support</h1>
	</div>
	<div style="padding: 24px; background: #f9fafb; border: 1px solid #e5e7eb;">
		<h2 style="color: #1f2937; margin-top: 0;">New Support Ticket</h2>
		<table style="width: 100%%; border-collapse: collapse;">
			<tr><td style="padding: 8px 0; color: #6b7280; width: 120px;">Ticket ID:</td><td style="padding: 8px 0; font-weight: bold;">#%s</td></tr>
			<tr><td style="padding: 8px 0; color: #6b7280;">Category:</td><td style="padding: 8px 0; font-weight: bold;">%s</td></tr>
			<tr><td style="padding: 8px 0; color: #6b7280;">Submitted By:</td><td style="padding: 8px 0;">%s (%s)</td></tr>
			<tr><td style="padding: 8px 0; color: #6b7280;">Subject:</td><td style="padding: 8px 0; font-weight: bold;">%s</td></tr>
		</table>
		<div style="margin-top: 16px; padding: 16px; background: white; border: 1px solid #e5e7eb; border-radius: 8px;">
			<h3 style="margin-top: 0; color: #374151; font-size: 14px;">Description:</h3>
			<p style="color: #4b5563; line-height: 1.6; white-space: pre-wrap;">%s</p>
		</div>
		<div style="margin-top: 24px; text-align: center;">
			<a href="%s" style="display: inline-block; padding: 12px 24px; background: #3b82f6; color: white; text-decoration: none; border-radius: 6px; font-weight: bold;">View in Admin Panel</a>
		</div>
	</div>
	<div style="padding: 16px; text-align: center; color: #9ca3af; font-size: 12px;">This is an automated notification from B Team App.</div>
</div>`,
			esc(data.TicketID), esc(data.Category), esc(data.EmployeeName), esc(data.EmployeeEmail),
			esc(data.Subject), esc(data.Description), esc(adminURL)),
	}
}
