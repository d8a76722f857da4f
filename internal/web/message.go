package web

// Message types on the websocket.
const (
	TypeFrame    = "frame"
	TypeLocation = "location"
	TypeSubmit   = "submit"
	TypeError    = "error"
)

// Message is the single JSON envelope used in both directions.
type Message struct {
	Type  string            `json:"type"`
	SVG   string            `json:"svg,omitempty"`
	Frame int               `json:"frame,omitempty"`
	Angle float64           `json:"angle,omitempty"`
	Query string            `json:"query,omitempty"`
	Form  map[string]string `json:"form,omitempty"`
	Error string            `json:"error,omitempty"`
}

// formValues is a submitted form as the browser's FormData sends it.
type formValues map[string]string

func (f formValues) Get(key string) string { return f[key] }
