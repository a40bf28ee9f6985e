// Package validation holds the field rules shared by the client forms and
// the HTTP handlers. Every function is pure and total over its inputs.
package validation

import (
	"regexp"
	"sort"
	"strings"

	"webcraft/models"
)

// Unicode spaces and the BOM break an address too.
var emailRegex = regexp.MustCompile(`(?i)^[^\s\v\p{Z}\x{feff}@]+@[^\s\v\p{Z}\x{feff}@]+\.[^\s\v\p{Z}\x{feff}@]{2,}$`)

const (
	MsgInvalidEmail  = "Invalid email address"
	MsgEmailRequired = "Email is required"
	MsgSelectDate    = "Please select a date"
	MsgSelectTime    = "Please select a time slot"
)

var labels = map[string]string{
	"name":        "Name",
	"service":     "Service",
	"projectType": "Project type",
	"message":     "Message",
}

// Errors maps a field name to its error message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field unless msg is empty.
func (e Errors) Add(field, msg string) {
	if msg != "" {
		e[field] = msg
	}
}

// Empty reports whether no field failed.
func (e Errors) Empty() bool { return len(e) == 0 }

// Err returns e as an error, or nil when there is nothing to report.
func (e Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Required returns "<label> is required" when the trimmed value is empty.
func Required(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return label + " is required"
	}
	return ""
}

// Email checks presence and shape of an email address.
func Email(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgEmailRequired
	}
	if !emailRegex.MatchString(value) {
		return MsgInvalidEmail
	}
	return ""
}

// OptionalEmail only checks shape when a value is present.
func OptionalEmail(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return Email(value)
}

// Field validates one named form field. Unknown fields always pass.
func Field(name, value string) string {
	if name == "email" {
		return Email(value)
	}
	if label, ok := labels[name]; ok {
		return Required(label, value)
	}
	return ""
}

// Contact validates the contact form.
func Contact(m models.ContactMessage) Errors {
	errs := Errors{}
	errs.Add("name", Field("name", m.Name))
	errs.Add("email", Field("email", m.Email))
	errs.Add("service", Field("service", m.Service))
	errs.Add("message", Field("message", m.Message))
	return errs
}

// Newsletter validates a newsletter signup.
func Newsletter(n models.NewsletterSignup) Errors {
	errs := Errors{}
	errs.Add("email", Email(n.Email))
	return errs
}

// Booking validates the contact and scheduling fields of a booking form.
func Booking(b models.ConsultationBooking) Errors {
	errs := Errors{}
	errs.Add("name", Field("name", b.Name))
	errs.Add("email", Field("email", b.Email))
	if b.Date == nil {
		errs.Add("date", MsgSelectDate)
	}
	if !models.IsTimeSlot(b.Time) {
		errs.Add("time", MsgSelectTime)
	}
	return errs
}

// Consultation validates a booking in wire form.
func Consultation(r models.ConsultationRequest) Errors {
	errs := Errors{}
	errs.Add("name", Field("name", r.Name))
	errs.Add("email", Field("email", r.Email))
	if strings.TrimSpace(r.Date) == "" {
		errs.Add("date", MsgSelectDate)
	}
	if !models.IsTimeSlot(r.Time) {
		errs.Add("time", MsgSelectTime)
	}
	return errs
}

// ProjectType validates the first wizard step.
func ProjectType(t string) Errors {
	errs := Errors{}
	if msg := Field("projectType", t); msg != "" {
		errs.Add("projectType", msg)
	} else if !models.IsProjectType(t) {
		errs.Add("projectType", "Unknown project type")
	}
	return errs
}

// BusinessInfo validates the second wizard step. Email and website are optional.
func BusinessInfo(b models.BusinessInfo) Errors {
	errs := Errors{}
	errs.Add("businessInfo.name", Required("Business name", b.Name))
	errs.Add("businessInfo.email", OptionalEmail(b.Email))
	errs.Add("businessInfo.industry", Required("Industry", b.Industry))
	errs.Add("businessInfo.size", Required("Company size", b.Size))
	return errs
}

// Requirements validates the third wizard step. Features may be empty.
func Requirements(r models.Requirements) Errors {
	errs := Errors{}
	errs.Add("requirements.design", Required("Design preferences", r.Design))
	errs.Add("requirements.timeline", Required("Timeline", r.Timeline))
	errs.Add("requirements.budget", Required("Budget", r.Budget))
	return errs
}

// Technical validates the fourth wizard step. Technologies may be empty.
func Technical(t models.Technical) Errors {
	errs := Errors{}
	errs.Add("technical.hosting", Required("Hosting", t.Hosting))
	errs.Add("technical.domain", Required("Domain", t.Domain))
	return errs
}

// Project validates a complete intake submission as received by the server.
func Project(p models.ProjectRequest) Errors {
	errs := ProjectType(p.ProjectType)
	for _, step := range []Errors{
		BusinessInfo(p.BusinessInfo),
		Requirements(p.Requirements),
		Technical(p.Technical),
	} {
		for k, v := range step {
			errs[k] = v
		}
	}
	c := p.Consultation
	errs.Add("consultation.name", Required("Name", c.Name))
	errs.Add("consultation.email", Email(c.Email))
	if strings.TrimSpace(c.Date) == "" {
		errs.Add("consultation.date", MsgSelectDate)
	}
	if !models.IsTimeSlot(c.Time) {
		errs.Add("consultation.time", MsgSelectTime)
	}
	return errs
}
