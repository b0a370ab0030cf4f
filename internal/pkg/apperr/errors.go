package apperr

import "errors"

// Business Error Codes
const (
	CodeSuccess       = 0
	CodeBadRequest    = 400
	CodeForbidden     = 403
	CodeNotFound      = 404
	CodeInternalError = 500

	CodeDatabaseError = 1001
	CodeCacheError    = 1002

	CodeForumNotFound    = 2001
	CodeTopicNotFound    = 2002
	CodePostNotFound     = 2003
	CodeMemberNotFound   = 2004
	CodeCategoryNotFound = 2005
	CodeSessionNotFound  = 2006

	CodePollNotFound = 2101
	CodePollClosed   = 2102
	CodeAlreadyVoted = 2103

	CodeInvalidContentType = 2201
	CodeNoRedirect         = 2202
	CodeBadRecord          = 2203
)

// Business Errors
var (
	ErrForumNotFound    = errors.New("forum does not exist")
	ErrTopicNotFound    = errors.New("topic does not exist")
	ErrPostNotFound     = errors.New("post does not exist")
	ErrMemberNotFound   = errors.New("member does not exist")
	ErrCategoryNotFound = errors.New("category does not exist")
	ErrSessionNotFound  = errors.New("session does not exist")

	ErrPollNotFound = errors.New("topic has no poll")
	ErrPollClosed   = errors.New("topic is locked, poll is closed")
	ErrAlreadyVoted = errors.New("member has already voted in this poll")

	ErrInvalidContentType = errors.New("invalid content type")
	ErrNoRedirect         = errors.New("forum is not a redirect forum")
	ErrInvalidParams      = errors.New("invalid parameters")
	ErrForbidden          = errors.New("forbidden")
)

// AppError Application Error with code and message
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError Create new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError Wrap error with code
func WrapError(err error, code int) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
	}
}
