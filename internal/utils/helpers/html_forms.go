package helpers

import (
	"digiroots/internal/models"
	"fmt"
	"html"
	"strings"
	"time"
)

func orDefault(v, d string) string {
	if strings.TrimSpace(v) == "" {
		return d
	}
	return v
}

func BuildSimpleHTML(title, body string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
  <body style="font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;line-height:1.6;color:#333;max-width:600px;margin:0 auto;padding:20px;">
    <div style="background:linear-gradient(135deg,#667eea 0%%,#764ba2 100%%);padding:30px;text-align:center;border-radius:10px 10px 0 0;">
      <h1 style="color:white;margin:0;font-size:26px;">%s</h1>
    </div>
    <div style="background:#ffffff;padding:32px 28px;border:1px solid #e0e0e0;border-top:none;border-radius:0 0 10px 10px;">
      %s
    </div>
    <div style="text-align:center;padding:20px;color:#999;font-size:12px;">
      <p>&copy; %d DigiRoots. All rights reserved.</p>
    </div>
  </body>
</html>
`, title, body, time.Now().Year())
}

func BuildPasswordResetText(resetLink string, ttl time.Duration) string {
	return fmt.Sprintf(`You requested a password reset for your DigiRoots account.

Click the link below to reset your password:
%s

This link will expire in %d minutes.

If you did not request this password reset, please ignore this email and your password will remain unchanged.

- The DigiRoots Team`, resetLink, int(ttl.Minutes()))
}

func BuildPasswordResetHTML(resetLink string, ttl time.Duration) string {
	link := html.EscapeString(resetLink)
	body := fmt.Sprintf(`
      <h2 style="color:#333;margin-top:0;">Reset Your Password</h2>
      <p>You requested a password reset for your DigiRoots account.</p>
      <p>Click the button below to reset your password:</p>
      <div style="text-align:center;margin:30px 0;">
        <a href="%s" style="background:linear-gradient(135deg,#667eea 0%%,#764ba2 100%%);color:white;padding:14px 30px;text-decoration:none;border-radius:8px;font-weight:600;display:inline-block;">Reset Password</a>
      </div>
      <p style="color:#666;font-size:14px;">This link will expire in <strong>%d minutes</strong>.</p>
      <hr style="border:none;border-top:1px solid #e0e0e0;margin:30px 0;">
      <p style="color:#999;font-size:13px;">If you did not request this password reset, please ignore this email and your password will remain unchanged.</p>
      <p style="color:#999;font-size:13px;">If the button doesn't work, copy and paste this link into your browser:</p>
      <p style="color:#667eea;font-size:12px;word-break:break-all;">%s</p>
    `, link, int(ttl.Minutes()), link)
	return BuildSimpleHTML("Digi<span style=\"font-weight:300;\">Roots</span>", body)
}

func BuildLeadAdminText(l *models.Lead) string {
	return fmt.Sprintf(`New Lead Submission
====================

Name: %s
Company: %s
Email: %s
Phone: %s
Service Interested: %s

Message:
%s

---
Submitted on: %s`,
		l.Name,
		orDefault(l.CompanyName, "Not provided"),
		l.Email,
		orDefault(l.Phone, "Not provided"),
		orDefault(l.ServiceInterested, "Not specified"),
		orDefault(l.Message, "No message provided"),
		l.CreatedAt.Format("Monday, January 2, 2006 at 03:04 PM MST"),
	)
}

func BuildLeadAdminHTML(l *models.Lead) string {
	esc := html.EscapeString
	row := func(label, value string) string {
		return fmt.Sprintf(`<tr>
          <td style="padding:12px 0;border-bottom:1px solid #eee;font-weight:600;color:#555;width:140px;">%s:</td>
          <td style="padding:12px 0;border-bottom:1px solid #eee;color:#333;">%s</td>
        </tr>`, label, value)
	}
	missing := func(v, d string) string {
		if strings.TrimSpace(v) == "" {
			return `<span style="color:#999;">` + d + `</span>`
		}
		return esc(v)
	}

	body := fmt.Sprintf(`
      <h2 style="color:#333;margin-top:0;border-bottom:2px solid #667eea;padding-bottom:10px;">Contact Details</h2>
      <table style="width:100%%;border-collapse:collapse;">
        %s
        %s
        %s
        %s
        %s
      </table>
      <h3 style="color:#333;margin-top:25px;border-bottom:2px solid #667eea;padding-bottom:10px;">Message</h3>
      <div style="background:#f8f9fa;padding:15px;border-radius:8px;border-left:4px solid #667eea;">
        <p style="margin:0;color:#555;white-space:pre-wrap;">%s</p>
      </div>
      <p style="margin:24px 0 0 0;color:#666;font-size:13px;">Submitted on: %s</p>
    `,
		row("Name", esc(l.Name)),
		row("Company", missing(l.CompanyName, "Not provided")),
		row("Email", fmt.Sprintf(`<a href="mailto:%s" style="color:#667eea;text-decoration:none;">%s</a>`, esc(l.Email), esc(l.Email))),
		row("Phone", missing(l.Phone, "Not provided")),
		row("Service", missing(l.ServiceInterested, "Not specified")),
		missing(l.Message, "No message provided"),
		l.CreatedAt.Format("Monday, January 2, 2006 at 03:04 PM MST"),
	)
	return BuildSimpleHTML("New Lead Received!", body)
}

func BuildLeadAckText(l *models.Lead) string {
	return fmt.Sprintf(`Hi %s,

Thanks for reaching out! We received your details and will respond within one business day. If you need to add anything else, just reply to this email.

Summary:
- Name: %s
- Company: %s
- Service: %s
- Message: %s

Talk soon,
Team DigiRoots`,
		l.Name, l.Name,
		orDefault(l.CompanyName, "Not provided"),
		orDefault(l.ServiceInterested, "Not specified"),
		orDefault(l.Message, "No message provided"),
	)
}

func BuildLeadAckHTML(l *models.Lead) string {
	esc := html.EscapeString
	body := fmt.Sprintf(`
      <p>Hi %s,</p>
      <p>Thanks for reaching out to DigiRoots. We have your details and will reply within one business day.</p>
      <p style="margin-bottom:12px;font-weight:600;">Summary</p>
      <ul style="padding-left:18px;margin:0 0 16px 0;color:#4b5563;">
        <li><strong>Name:</strong> %s</li>
        <li><strong>Company:</strong> %s</li>
        <li><strong>Service:</strong> %s</li>
        <li><strong>Message:</strong> %s</li>
      </ul>
      <p style="margin:0;color:#6b7280;font-size:14px;">If you want to add anything, just reply to this email.</p>
    `,
		esc(l.Name), esc(l.Name),
		esc(orDefault(l.CompanyName, "Not provided")),
		esc(orDefault(l.ServiceInterested, "Not specified")),
		esc(orDefault(l.Message, "No message provided")),
	)
	return BuildSimpleHTML("We received your inquiry", body)
}
