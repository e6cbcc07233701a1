package dto

// --------- Auth ---------

type SignUpRequest struct {
	FirstName   string `json:"firstName" form:"firstName"`
	LastName    string `json:"lastName" form:"lastName"`
	Username    string `json:"username" form:"username"`
	Email       string `json:"email" form:"email" binding:"required"`
	Password    string `json:"password" form:"password" binding:"required"`
	Role        string `json:"role" form:"role" binding:"required"`
	CompanyName string `json:"companyName" form:"companyName"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type ReauthenticateRequest struct {
	Password string `json:"password" binding:"required"`
}

type DeleteAccountRequest struct {
	Confirm  string `json:"confirm"`
	Password string `json:"password"`
}

// --------- Coach ---------

type EventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

type DecisionRequest struct {
	Status string `json:"status" binding:"required"`
}

// --------- Client ---------

type BookingRequest struct {
	Message string `json:"message"`
}

// StreamCommand is a message a client sends on its dashboard stream.
type StreamCommand struct {
	Type    string `json:"type"`
	Term    string `json:"term,omitempty"`
	CoachID string `json:"coachId,omitempty"`
	EventID string `json:"eventId,omitempty"`
}
