package shared

// DomainError is an error with a stable machine-readable code. The
// HTTP layer maps codes to status codes; the message is safe to show
// to API clients.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError builds a DomainError with the given code and message
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinel errors shared across the billing domain
var (
	ErrNotFound       = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists  = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput   = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidPeriod  = NewDomainError("INVALID_PERIOD", "Period end cannot be before period start")
	ErrUnknownItem    = NewDomainError("UNKNOWN_ITEM", "Stock movement references an unknown item")
	ErrInvalidPricing = NewDomainError("INVALID_PRICING", "Pricing configuration is invalid")
)
