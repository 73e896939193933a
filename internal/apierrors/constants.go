package apierrors

const (
	MsgInvalidPayload       = "invalidPayload"
	MsgInvalidCredentials   = "invalidCredentials"
	MsgEmailTaken           = "emailTaken"
	MsgUnauthorized         = "unauthorized"
	MsgNotOwner             = "notOwner"
	MsgTokenExpired         = "tokenExpired"
	MsgRefreshTokenExpired  = "refreshTokenExpired"
	MsgTaskNotFound         = "taskNotFound"
	MsgSubtaskNotFound      = "subtaskNotFound"
	MsgLabelNotFound        = "labelNotFound"
	MsgIDMismatch           = "idMismatch"
	MsgInvalidDueDate       = "invalidDueDate"
	MsgInvalidTaskOrLabel   = "invalidTaskOrLabel"
	MsgLabelAlreadyAttached = "labelAlreadyAttached"
	MsgLabelNotAttached     = "labelNotAttached"
	MsgNotFound             = "notFound"
	MsgInternal             = "internalError"
)
