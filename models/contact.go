package models

// ContactMessage is the body of the contact form.
type ContactMessage struct {
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Service string `json:"service" yaml:"service"`
	Message string `json:"message" yaml:"message"`
}

// NewsletterSignup is the body of the newsletter form.
type NewsletterSignup struct {
	Email string `json:"email" yaml:"email"`
}
