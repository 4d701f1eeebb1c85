package domain

// ContactEmail is the transactional email sent for a contact form submission.
type ContactEmail struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	ToEmail   string `json:"to_email"`
}
