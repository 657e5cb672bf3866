package domain

// EffectType names a side-effect the controller asks the host to perform.
type EffectType string

// Standard Effect Types
const (
	// EffectChoicePrompt asks the messenger to send Text with a keyboard of Choices.
	EffectChoicePrompt EffectType = "choice_prompt"

	// EffectContactRequest asks the messenger to send Text with a share-contact button.
	EffectContactRequest EffectType = "contact_request"

	// EffectText asks the messenger to send plain Text.
	EffectText EffectType = "text"

	// EffectAppendRecord asks the record sink to append Record.
	EffectAppendRecord EffectType = "append_record"
)

// Effect represents a side-effect that the controller requests the host to perform.
type Effect struct {
	Type    EffectType `json:"type"`
	UserID  string     `json:"user_id"`
	Text    string     `json:"text,omitempty"`
	Choices []string   `json:"choices,omitempty"`
	Record  *Record    `json:"record,omitempty"`
}
