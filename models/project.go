package models

// Project types offered in the first wizard step.
const (
	ProjectWebsite   = "website"
	ProjectEcommerce = "ecommerce"
	ProjectWebApp    = "webapp"
	ProjectPortal    = "portal"
)

// ProjectTypes is the catalog of project types in display order.
var ProjectTypes = []string{ProjectWebsite, ProjectEcommerce, ProjectWebApp, ProjectPortal}

// IsProjectType reports whether t is in the project type catalog.
func IsProjectType(t string) bool {
	for _, p := range ProjectTypes {
		if p == t {
			return true
		}
	}
	return false
}

type BusinessInfo struct {
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email,omitempty" yaml:"email"`
	Industry string `json:"industry" yaml:"industry"`
	Size     string `json:"size" yaml:"size"`
	Website  string `json:"website,omitempty" yaml:"website"`
}

type Requirements struct {
	Features StringSet `json:"features" yaml:"features"`
	Design   string    `json:"design" yaml:"design"`
	Timeline string    `json:"timeline" yaml:"timeline"`
	Budget   string    `json:"budget" yaml:"budget"`
}

type Technical struct {
	Technologies StringSet `json:"technologies" yaml:"technologies"`
	Hosting      string    `json:"hosting" yaml:"hosting"`
	Domain       string    `json:"domain" yaml:"domain"`
}

// ConsultationDetails is the scheduling part of a project request, filled in
// by the booking that precedes the final submission.
type ConsultationDetails struct {
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Message  string `json:"message,omitempty"`
	MeetLink string `json:"meetLink,omitempty"`
}

// ProjectRequest is the composite record accumulated by the intake wizard.
type ProjectRequest struct {
	ProjectType  string              `json:"projectType"`
	BusinessInfo BusinessInfo        `json:"businessInfo"`
	Requirements Requirements        `json:"requirements"`
	Technical    Technical           `json:"technical"`
	Consultation ConsultationDetails `json:"consultation"`
}
