package core

type (
	// SMSMessage is a short text message to a single phone number.
	SMSMessage struct {
		To   string // E.164
		Body string
	}

	// SMSService is any service that can send text messages.
	SMSService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*SMSMessage)
	}
)

func (m *SMSMessage) HasRecipient() bool { return m.To != "" }
func (m *SMSMessage) HasContent() bool   { return m.Body != "" }
