package api

import "github.com/danielgtaylor/huma/v2"

// Envelope is the uniform JSON wrapper for every API response.
// Clients branch on success and read either data or error.
type Envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// EnvelopeTransformer wraps every response body in an Envelope.
// Registered as a huma transformer so handlers return plain DTOs.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &Envelope{Success: false, Error: apiErr}, nil
	}

	// Status arrives as a string like "200"; anything under 4xx is success.
	success := status == "" || status[0] == '2' || status[0] == '3'
	return &Envelope{Success: success, Data: v}, nil
}
