package intake

// Envelope is the WhatsApp Cloud API webhook delivery body, narrowed to the
// fields the pipeline reads.
type Envelope struct {
	Entry []Entry `json:"entry"`
}

type Entry struct {
	Changes []Change `json:"changes"`
}

type Change struct {
	Value Value `json:"value"`
}

type Value struct {
	Messages []Message `json:"messages"`
}

type Message struct {
	Type string       `json:"type"`
	From string       `json:"from"`
	Text *MessageText `json:"text"`
}

type MessageText struct {
	Body string `json:"body"`
}

// InboundMessage is the extracted text message the pipeline operates on.
type InboundMessage struct {
	Phone string
	Text  string
}

// FirstTextMessage walks entry[0].changes[0].value.messages[0] and returns
// the message when it is text-typed with a sender. Delivery receipts, media
// messages, and truncated envelopes report ok=false; those events are a
// defined no-op, not an error.
func (e *Envelope) FirstTextMessage() (InboundMessage, bool) {
	if e == nil || len(e.Entry) == 0 {
		return InboundMessage{}, false
	}
	entry := e.Entry[0]
	if len(entry.Changes) == 0 {
		return InboundMessage{}, false
	}
	value := entry.Changes[0].Value
	if len(value.Messages) == 0 {
		return InboundMessage{}, false
	}
	msg := value.Messages[0]
	if msg.Type != "text" || msg.Text == nil || msg.From == "" {
		return InboundMessage{}, false
	}
	return InboundMessage{Phone: msg.From, Text: msg.Text.Body}, true
}
