package staffing

import "errors"

type ErrorKind string

const (
	KindValidation          ErrorKind = "validation"
	KindWindowClosed        ErrorKind = "window_closed"
	KindCollaboratorFailure ErrorKind = "collaborator_failure"
	KindConcurrentOperation ErrorKind = "concurrent_operation"
)

// 供 errors.Is 使用的哨兵错误，与 ErrorKind 一一对应
var (
	ErrValidation          = errors.New("validation")
	ErrWindowClosed        = errors.New("window_closed")
	ErrCollaboratorFailure = errors.New("collaborator_failure")
	ErrConcurrentOperation = errors.New("concurrent_operation")
)

var kindSentinels = map[ErrorKind]error{
	KindValidation:          ErrValidation,
	KindWindowClosed:        ErrWindowClosed,
	KindCollaboratorFailure: ErrCollaboratorFailure,
	KindConcurrentOperation: ErrConcurrentOperation,
}

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func windowClosedError(msg string) *Error {
	return &Error{Kind: KindWindowClosed, Message: msg}
}

// 外部持久化层返回的错误信息原样透传给调用方
func collaboratorError(err error) *Error {
	return &Error{Kind: KindCollaboratorFailure, Message: err.Error(), Err: err}
}

func concurrentOperationError(key string) *Error {
	return &Error{Kind: KindConcurrentOperation, Message: "操作正在处理中: " + key}
}

// KindOf 返回错误的类别，非引擎错误返回空字符串
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// NewError 供引擎之外的回调（例如评分拦截）返回带类别的错误
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}
