package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  []string    `json:"errors,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorStrings flattens errors for the response envelope; the error interface
// does not marshal to anything useful on its own.
func ErrorStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}
