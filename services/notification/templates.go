package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

const (
	tmplContactAdmin         = "contact_admin"
	tmplContactClient        = "contact_client"
	tmplConsultationAdmin    = "consultation_admin"
	tmplConsultationClient   = "consultation_client"
	tmplProjectAdmin         = "project_admin"
	tmplProjectClient        = "project_client"
	tmplNewsletterWelcome    = "newsletter_welcome"
	tmplNewsletterAdmin      = "newsletter_admin"
	tmplConsultationReminder = "consultation_reminder"
)

var funcs = map[string]any{
	"join": strings.Join,
	"when": func(t time.Time) string { return t.Format("Monday, January 2, 2006 at 3:04 PM MST") },
}

const htmlSource = `
{{define "meet"}}{{if .MeetLink}}<p>Join the call: <a href="{{.MeetLink}}">{{.MeetLink}}</a></p>{{else}}<p>We will send the meeting link separately.</p>{{end}}{{end}}

{{define "contact_admin"}}<h2>New contact message</h2>
<p><b>Name:</b> {{.Name}}<br><b>Email:</b> {{.Email}}<br><b>Service:</b> {{.Service}}</p>
<p>{{.Message}}</p>{{end}}

{{define "contact_client"}}<p>Hi {{.Name}},</p>
<p>Thanks for reaching out. We received your message and will get back to you shortly.</p>{{end}}

{{define "consultation_admin"}}<h2>New consultation booking</h2>
<p><b>Name:</b> {{.Booking.Name}}<br><b>Email:</b> {{.Booking.Email}}<br><b>Phone:</b> {{.Booking.Phone}}<br>
<b>When:</b> {{when .Start}}<br><b>Project:</b> {{.Booking.ProjectType}}<br><b>Budget:</b> {{.Booking.Budget}}<br>
<b>Booking ID:</b> {{.BookingID}}</p>
<p>{{.Booking.Message}}</p>{{template "meet" .}}{{end}}

{{define "consultation_client"}}<p>Hi {{.Booking.Name}},</p>
<p>Your consultation is booked for {{when .Start}}.</p>{{template "meet" .}}
<p>Reference: {{.BookingID}}</p>{{end}}

{{define "project_admin"}}<h2>New project request: {{.ProjectType}}</h2>
<h3>Business</h3>
<p>{{.BusinessInfo.Name}} ({{.BusinessInfo.Industry}}, {{.BusinessInfo.Size}}){{if .BusinessInfo.Website}}<br>{{.BusinessInfo.Website}}{{end}}</p>
<h3>Requirements</h3>
<p><b>Features:</b> {{join .Requirements.Features ", "}}<br><b>Design:</b> {{.Requirements.Design}}<br>
<b>Timeline:</b> {{.Requirements.Timeline}}<br><b>Budget:</b> {{.Requirements.Budget}}</p>
<h3>Technical</h3>
<p><b>Technologies:</b> {{join .Technical.Technologies ", "}}<br><b>Hosting:</b> {{.Technical.Hosting}}<br><b>Domain:</b> {{.Technical.Domain}}</p>
<h3>Consultation</h3>
<p>{{.Consultation.Name}} &lt;{{.Consultation.Email}}&gt; {{.Consultation.Phone}}<br>{{.Consultation.Date}} {{.Consultation.Time}}</p>
<p>{{.Consultation.Message}}</p>{{template "meet" .Consultation}}{{end}}

{{define "project_client"}}<p>Hi {{.Consultation.Name}},</p>
<p>Thanks for telling us about your {{.ProjectType}} project for {{.BusinessInfo.Name}}. We will review the details before our call.</p>
{{template "meet" .Consultation}}{{end}}

{{define "newsletter_welcome"}}<p>Welcome aboard!</p><p>You are now subscribed to our newsletter.</p>{{end}}

{{define "newsletter_admin"}}<p>New newsletter subscriber: {{.Email}}</p>{{end}}

{{define "consultation_reminder"}}<p>Hi {{.Name}},</p>
<p>A reminder that your consultation is on {{when .StartsAt}}.</p>{{template "meet" .}}{{end}}
`

const textSource = `
{{define "meet"}}{{if .MeetLink}}Join the call: {{.MeetLink}}{{else}}We will send the meeting link separately.{{end}}{{end}}

{{define "contact_admin"}}New contact message from {{.Name}} <{{.Email}}>
Service: {{.Service}}

{{.Message}}{{end}}

{{define "contact_client"}}Hi {{.Name}},

Thanks for reaching out. We received your message and will get back to you shortly.{{end}}

{{define "consultation_admin"}}New consultation booking {{.BookingID}}
{{.Booking.Name}} <{{.Booking.Email}}> {{.Booking.Phone}}
When: {{when .Start}}
Project: {{.Booking.ProjectType}}, budget {{.Booking.Budget}}

{{.Booking.Message}}

{{template "meet" .}}{{end}}

{{define "consultation_client"}}Hi {{.Booking.Name}},

Your consultation is booked for {{when .Start}}.
{{template "meet" .}}

Reference: {{.BookingID}}{{end}}

{{define "project_admin"}}New project request: {{.ProjectType}}
Business: {{.BusinessInfo.Name}} ({{.BusinessInfo.Industry}}, {{.BusinessInfo.Size}}) {{.BusinessInfo.Website}}
Features: {{join .Requirements.Features ", "}}
Design: {{.Requirements.Design}}
Timeline: {{.Requirements.Timeline}}
Budget: {{.Requirements.Budget}}
Technologies: {{join .Technical.Technologies ", "}}
Hosting: {{.Technical.Hosting}}
Domain: {{.Technical.Domain}}
Contact: {{.Consultation.Name}} <{{.Consultation.Email}}> {{.Consultation.Phone}}
Consultation: {{.Consultation.Date}} {{.Consultation.Time}}

{{.Consultation.Message}}

{{template "meet" .Consultation}}{{end}}

{{define "project_client"}}Hi {{.Consultation.Name}},

Thanks for telling us about your {{.ProjectType}} project for {{.BusinessInfo.Name}}. We will review the details before our call.
{{template "meet" .Consultation}}{{end}}

{{define "newsletter_welcome"}}Welcome aboard! You are now subscribed to our newsletter.{{end}}

{{define "newsletter_admin"}}New newsletter subscriber: {{.Email}}{{end}}

{{define "consultation_reminder"}}Hi {{.Name}},

A reminder that your consultation is on {{when .StartsAt}}.
{{template "meet" .}}{{end}}
`

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.New("email").Funcs(funcs).Parse(htmlSource))
	textTemplates = texttemplate.Must(texttemplate.New("email").Funcs(funcs).Parse(textSource))
)

// render executes the named template in both its HTML and plain text forms.
func render(name string, data any) (html, text string, err error) {
	var hb, tb bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&hb, name, data); err != nil {
		return "", "", fmt.Errorf("render %s: %w", name, err)
	}
	if err := textTemplates.ExecuteTemplate(&tb, name, data); err != nil {
		return "", "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(hb.String()), strings.TrimSpace(tb.String()), nil
}
