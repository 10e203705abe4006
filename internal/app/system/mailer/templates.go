// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// Template data types mirror the placeholders the HR emails have always
// used. Every builder returns a ready-to-send Email with the recipient
// left for the caller to set.

// RegistrationData fills the application-accepted acknowledgement.
type RegistrationData struct {
	CandidateName string
}

// BuildRegistrationEmail creates the acknowledgement sent right after a
// candidate registers.
func BuildRegistrationEmail(d RegistrationData) Email {
	return Email{
		Subject: "Thanks for applying to TalentGate",
		TextBody: fmt.Sprintf(
			"Dear %s,\n\nYour application has been accepted. We will contact you soon with next steps.\n\n- TalentGate HR Team\n",
			d.CandidateName),
		HTMLBody: render("registration", registrationHTML, d),
	}
}

// InviteData fills the interview invitation templates for both the
// candidate and the interviewer.
type InviteData struct {
	CandidateName    string
	CandidateEmail   string
	CandidateMobile  string
	InterviewerName  string
	EventName        string
	OrganizationName string
	InterviewDate    time.Time
	MeetingLink      string
	FeedbackLink     string
	Year             int
}

// BuildCandidateInvite creates the invitation sent to the candidate.
// With a meeting link the body carries the join button; without one it
// tells the candidate the team will reach out.
func BuildCandidateInvite(d InviteData) Email {
	tmpl := candidateInviteHTML
	if d.MeetingLink == "" {
		tmpl = candidateInviteNoLinkHTML
	}
	return Email{
		Subject: fmt.Sprintf("Interview Scheduled for %s - %s Round", d.CandidateName, d.EventName),
		TextBody: fmt.Sprintf(
			"Dear %s,\n\nYour %s round with %s is scheduled for %s.\n\n- TalentGate HR Team\n",
			d.CandidateName, d.EventName, d.OrganizationName, d.InterviewDate.Format(time.RFC1123)),
		HTMLBody: render("candidate-invite", tmpl, d),
	}
}

// BuildInterviewerInvite creates the assignment notice sent to the
// interviewer. The without-link variant additionally carries the
// candidate's email and mobile so the interviewer can make contact.
func BuildInterviewerInvite(d InviteData) Email {
	tmpl := interviewerInviteHTML
	if d.MeetingLink == "" {
		tmpl = interviewerInviteNoLinkHTML
	}
	return Email{
		Subject: fmt.Sprintf("Interview Assignment for %s - %s Round", d.CandidateName, d.EventName),
		TextBody: fmt.Sprintf(
			"Dear %s,\n\nYou are assigned to the %s round for %s on %s.\n\n- TalentGate HR Team\n",
			d.InterviewerName, d.EventName, d.CandidateName, d.InterviewDate.Format(time.RFC1123)),
		HTMLBody: render("interviewer-invite", tmpl, d),
	}
}

// DecisionData fills the approval/rejection notices.
type DecisionData struct {
	CandidateName    string
	OrganizationName string
	EventName        string
	Year             int
}

// BuildRejectionEmail creates the notice sent when an event decision is
// rejected.
func BuildRejectionEmail(d DecisionData) Email {
	return Email{
		Subject: fmt.Sprintf("Interview Update for %s - %s Round", d.CandidateName, d.EventName),
		TextBody: fmt.Sprintf(
			"Dear %s,\n\nThank you for attending the %s round with %s. We will not be moving forward at this time.\n\n- TalentGate HR Team\n",
			d.CandidateName, d.EventName, d.OrganizationName),
		HTMLBody: render("rejection", rejectionHTML, d),
	}
}

// BuildApprovalEmail creates the notice sent when an event decision is
// approved.
func BuildApprovalEmail(d DecisionData) Email {
	return Email{
		Subject: fmt.Sprintf("Interview Update for %s - %s Round", d.CandidateName, d.EventName),
		TextBody: fmt.Sprintf(
			"Dear %s,\n\nCongratulations! You have cleared the %s round with %s. Our team will share the next steps shortly.\n\n- TalentGate HR Team\n",
			d.CandidateName, d.EventName, d.OrganizationName),
		HTMLBody: render("approval", approvalHTML, d),
	}
}

// InvoiceEmailData fills the invoice delivery email.
type InvoiceEmailData struct {
	InvoiceNo    string
	BuyerName    string
	BillingMonth string
	Total        float64
}

// BuildInvoiceEmail creates the message that accompanies an invoice.
func BuildInvoiceEmail(d InvoiceEmailData) Email {
	return Email{
		Subject: fmt.Sprintf("Invoice %s from TalentGate", d.InvoiceNo),
		TextBody: fmt.Sprintf(
			"Dear %s,\n\nPlease find invoice %s (%s) for a total of %.2f attached.\n\n- TalentGate Accounts\n",
			d.BuyerName, d.InvoiceNo, d.BillingMonth, d.Total),
		HTMLBody: render("invoice", invoiceHTML, d),
	}
}

func render(name, tmpl string, data any) string {
	t := template.Must(template.New(name).Parse(tmpl))
	var buf bytes.Buffer
	_ = t.Execute(&buf, data)
	return buf.String()
}

const registrationHTML = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Application Accepted</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">
  <div style="max-width:700px;margin:30px auto;background:#ffffff;padding:30px;border-radius:10px;">
    <div style="text-align:center;margin-bottom:20px;"><h2 style="color:#333;">Application Accepted</h2></div>
    <div style="color:#444;font-size:16px;line-height:1.6;">
      <p>Dear {{.CandidateName}},</p>
      <p>Your application has been accepted. Our HR team will contact you soon with the next steps.</p>
    </div>
    <div style="margin-top:30px;font-size:13px;color:#999;text-align:center;">&mdash; TalentGate HR Team</div>
  </div>
</body>
</html>`

const candidateInviteHTML = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Interview Scheduled</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">
  <div style="max-width:700px;margin:30px auto;background:#ffffff;padding:30px;border-radius:10px;">
    <h2 style="color:#333;text-align:center;">Interview Scheduled</h2>
    <div style="color:#444;font-size:16px;line-height:1.6;">
      <p>Dear {{.CandidateName}},</p>
      <p>Your <strong>{{.EventName}}</strong> round with <strong>{{.OrganizationName}}</strong> has been scheduled.</p>
      <p>Interviewer: {{.InterviewerName}}<br>Date: {{.InterviewDate.Format "Mon, 02 Jan 2006 15:04"}}</p>
      <p style="text-align:center;margin:24px 0;">
        <a href="{{.MeetingLink}}" style="display:inline-block;padding:12px 28px;background:#4f46e5;color:#ffffff;text-decoration:none;border-radius:6px;">Join Meeting</a>
      </p>
    </div>
    <div style="margin-top:30px;font-size:13px;color:#999;text-align:center;">&copy; {{.Year}} TalentGate HR Team</div>
  </div>
</body>
</html>`

const candidateInviteNoLinkHTML = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Interview Scheduled</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">
  <div style="max-width:700px;margin:30px auto;background:#ffffff;padding:30px;border-radius:10px;">
    <h2 style="color:#333;text-align:center;">Interview Scheduled</h2>
    <div style="color:#444;font-size:16px;line-height:1.6;">
      <p>Dear {{.CandidateName}},</p>
      <p>Your <strong>{{.EventName}}</strong> round with <strong>{{.OrganizationName}}</strong> has been scheduled.</p>
      <p>Interviewer: {{.InterviewerName}}<br>Date: {{.InterviewDate.Format "Mon, 02 Jan 2006 15:04"}}</p>
      <p>Our team will reach out to you with the meeting details before the interview.</p>
    </div>
    <div style="margin-top:30px;font-size:13px;color:#999;text-align:center;">&copy; {{.Year}} TalentGate HR Team</div>
  </div>
</body>
</html>`

const interviewerInviteHTML = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Interview Assignment</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">
  <div style="max-width:700px;margin:30px auto;background:#ffffff;padding:30px;border-radius:10px;">
    <h2 style="color:#333;text-align:center;">Interview Assignment</h2>
    <div style="color:#444;font-size:16px;line-height:1.6;">
      <p>Dear {{.InterviewerName}},</p>
      <p>You have been assigned the <strong>{{.EventName}}</strong> round for <strong>{{.CandidateName}}</strong>.</p>
      <p>Date: {{.InterviewDate.Format "Mon, 02 Jan 2006 15:04"}}<br>
        Meeting: <a href="{{.MeetingLink}}">{{.MeetingLink}}</a></p>
      <p>Please submit your evaluation after the round:
        <a href="{{.FeedbackLink}}">feedback form</a></p>
    </div>
    <div style="margin-top:30px;font-size:13px;color:#999;text-align:center;">&copy; {{.Year}} TalentGate HR Team</div>
  </div>
</body>
</html>`

const interviewerInviteNoLinkHTML = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Interview Assignment</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">
  <div style="max-width:700px;margin:30px auto;background:#ffffff;padding:30px;border-radius:10px;">
    <h2 style="color:#333;text-align:center;">Interview Assignment</h2>
    <div style="color:#444;font-size:16px;line-height:1.6;">
      <p>Dear {{.InterviewerName}},</p>
      <p>You have been assigned the <strong>{{.EventName}}</strong> round for <strong>{{.CandidateName}}</strong>.</p>
      <p>Date: {{.InterviewDate.Format "Mon, 02 Jan 2006 15:04"}}<br>
        Candidate email: {{.CandidateEmail}}<br>
        Candidate mobile: {{.CandidateMobile}}</p>
      <p>Please submit your evaluation after the round:
        <a href="{{.FeedbackLink}}">feedback form</a></p>
    </div>
    <div style="margin-top:30px;font-size:13px;color:#999;text-align:center;">&copy; {{.Year}} TalentGate HR Team</div>
  </div>
</body>
</html>`

const rejectionHTML = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Interview Update</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">
  <div style="max-width:700px;margin:30px auto;background:#ffffff;padding:30px;border-radius:10px;">
    <h2 style="color:#333;text-align:center;">Interview Update</h2>
    <div style="color:#444;font-size:16px;line-height:1.6;">
      <p>Dear {{.CandidateName}},</p>
      <p>Thank you for attending the <strong>{{.EventName}}</strong> round with
        <strong>{{.OrganizationName}}</strong>. After careful review, we will not be
        moving forward at this time.</p>
      <p>We appreciate the time you invested and encourage you to apply again in
        the future.</p>
    </div>
    <div style="margin-top:30px;font-size:13px;color:#999;text-align:center;">&copy; {{.Year}} TalentGate HR Team</div>
  </div>
</body>
</html>`

const approvalHTML = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Interview Update</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">
  <div style="max-width:700px;margin:30px auto;background:#ffffff;padding:30px;border-radius:10px;">
    <h2 style="color:#333;text-align:center;">Interview Update</h2>
    <div style="color:#444;font-size:16px;line-height:1.6;">
      <p>Dear {{.CandidateName}},</p>
      <p>Congratulations! You have cleared the <strong>{{.EventName}}</strong> round with
        <strong>{{.OrganizationName}}</strong>.</p>
      <p>Our team will share the next steps with you shortly.</p>
    </div>
    <div style="margin-top:30px;font-size:13px;color:#999;text-align:center;">&copy; {{.Year}} TalentGate HR Team</div>
  </div>
</body>
</html>`

const invoiceHTML = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Invoice</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">
  <div style="max-width:700px;margin:30px auto;background:#ffffff;padding:30px;border-radius:10px;">
    <h2 style="color:#333;text-align:center;">Invoice {{.InvoiceNo}}</h2>
    <div style="color:#444;font-size:16px;line-height:1.6;">
      <p>Dear {{.BuyerName}},</p>
      <p>Please find invoice <strong>{{.InvoiceNo}}</strong>{{if .BillingMonth}} for
        <strong>{{.BillingMonth}}</strong>{{end}} with a total of
        <strong>{{printf "%.2f" .Total}}</strong>.</p>
    </div>
    <div style="margin-top:30px;font-size:13px;color:#999;text-align:center;">TalentGate Accounts</div>
  </div>
</body>
</html>`
