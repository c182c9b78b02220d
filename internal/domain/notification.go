package domain

// Email is a rendered confirmation message ready for a provider.
type Email struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Announcement is the short message published when someone joins the waitlist.
type Announcement struct {
	Email        string `json:"email"`
	SubscribedAt string `json:"subscribed_at"`
}
