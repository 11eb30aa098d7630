package models

// Response is the envelope used by every API endpoint
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Stats holds the dashboard counters
type Stats struct {
	Blogs    int `json:"blogs"`
	News     int `json:"news"`
	Stories  int `json:"stories"`
	Tags     int `json:"tags"`
	Comments int `json:"comments"`
	Users    int `json:"users"`
}
