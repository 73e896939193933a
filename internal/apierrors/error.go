package apierrors

import "fmt"

// JsonErr is the body of every non-2xx API response.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

type Err struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError builds a JsonErr with the message for msgKey in lang.
func (t *Translator) CreateError(code int, msgKey, lang string) JsonErr {
	return JsonErr{ErrDetails: Err{Code: code, Message: t.Message(msgKey, lang)}}
}
