package contract

type LoginResponse struct {
	OK bool `json:"ok"`
}

type AuthMessageResponse struct {
	Message string `json:"message"`
}

type SendRequest struct {
	To      string `json:"to"`
	Content string `json:"content"`
}

type SendResponse struct {
	RoomID    string `json:"room_id"`
	MessageID string `json:"message_id"`
}

type PartnersResponse struct {
	Partners []Profile `json:"partners"`
	Degraded bool      `json:"degraded,omitempty"`
}

type SearchResponse struct {
	Results []Profile `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type RouteAlertResponse struct {
	Alert string `json:"alert"`
}
