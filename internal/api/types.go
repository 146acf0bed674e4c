package api

type evaluateRequest struct {
	URL string `json:"url"`
}

type batchRequest struct {
	URLs      []string `json:"urls"`
	Unordered bool     `json:"unordered"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
