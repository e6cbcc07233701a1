package notify

const (
	TemplateBookingAccepted = "booking_accepted"
	TemplateEventUpdated    = "event_updated"
)

// Params are the template variables every email template receives.
type Params struct {
	ToEmail          string `json:"to_email"`
	EventTitle       string `json:"event_title"`
	EventDescription string `json:"event_description"`
	EventTime        string `json:"event_time"`
	EventEnd         string `json:"event_end"`
	Status           string `json:"status"`
}

type Message struct {
	Template string `json:"template"`
	Params   Params `json:"params"`
}
