package serviceerrors

import "errors"

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindConflict
	KindUnprocessableEntity
	KindInvalidRequest
	KindUnauthorized
	KindUpstreamPayment
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnprocessableEntity:
		return "unprocessable_entity"
	case KindInvalidRequest:
		return "invalid_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindUpstreamPayment:
		return "upstream_payment"
	default:
		return "unknown"
	}
}

func IsOfKind(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind == kind
	}
	return false
}

type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewUnprocessableEntityError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnprocessableEntity, Message: message}
}

func NewInvalidRequestError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidRequest, Message: message}
}

func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnauthorized, Message: message}
}

// NewUpstreamPaymentError reports a rejection or outage of the payment processor.
// The message is returned to the caller, so it must be safe to show.
func NewUpstreamPaymentError(message string) *ServiceError {
	return &ServiceError{Kind: KindUpstreamPayment, Message: message}
}
