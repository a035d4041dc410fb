package model

// ResponseApi is the JSON envelope every handler replies with.
type ResponseApi struct {
	ApiMessage string `json:"api_message"`
	Data       any    `json:"data,omitempty"`
}
