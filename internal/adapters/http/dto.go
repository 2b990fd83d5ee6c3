package http

// InfoResponse is the JSON shape returned by GET /.
type InfoResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
