package dto

import "strings"

// FieldError reports one rejected query parameter.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + " " + e.Message
}

// ValidationErrors collects every rejected parameter of a request.
type ValidationErrors []FieldError

func (v *ValidationErrors) add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.String()
	}
	return strings.Join(msgs, "; ")
}

// Fields indexes the messages by parameter name.
func (v ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(v))
	for _, e := range v {
		fields[e.Field] = e.Message
	}
	return fields
}

// ErrorResponse is the JSON body of a 400 reply.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (v ValidationErrors) Response() ErrorResponse {
	return ErrorResponse{Error: "invalid request", Fields: v.Fields()}
}
