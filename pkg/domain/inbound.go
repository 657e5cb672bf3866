package domain

// Contact is the structured contact payload attached to a chat message.
type Contact struct {
	PhoneNumber string `json:"phone_number"`
}

// Inbound is one message received from a chat user.
// Text is nil for non-text messages; Contact is nil when nothing was shared.
type Inbound struct {
	UserID  string   `json:"user_id"`
	Text    *string  `json:"text,omitempty"`
	Contact *Contact `json:"contact,omitempty"`
}

// NewTextMessage builds a plain text inbound message.
func NewTextMessage(userID, text string) Inbound {
	return Inbound{UserID: userID, Text: &text}
}

// NewContactMessage builds an inbound message carrying a shared contact.
func NewContactMessage(userID, phone string) Inbound {
	return Inbound{UserID: userID, Contact: &Contact{PhoneNumber: phone}}
}
