package ports

import "context"

// Messenger is the outbound side of the chat transport.
type Messenger interface {
	// SendChoicePrompt sends text together with a keyboard of selectable choices, in order.
	SendChoicePrompt(ctx context.Context, userID, text string, choices []string) error

	// SendContactRequest sends text together with a share-contact button.
	SendContactRequest(ctx context.Context, userID, text string) error

	// SendText sends a plain message and removes any keyboard.
	SendText(ctx context.Context, userID, text string) error
}
