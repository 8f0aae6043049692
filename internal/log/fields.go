package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldErrorType  = "error_type"
	FieldOperation  = "operation"
	FieldResourceID = "resource_id"
	FieldFilter     = "filter"
	FieldItemCount  = "item_count"
	FieldName       = "name"
	FieldAmount     = "amount"
	FieldUsername   = "username"
	FieldScreen     = "screen"
	FieldStep       = "step"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentAPI      = "api"
	ComponentAuth     = "auth"
	ComponentResource = "resource"
	ComponentService  = "service"
	ComponentTUI      = "tui"
	ComponentConfig   = "config"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpDelete   = "delete"
	OpRefetch  = "refetch"
	OpLogin    = "login"
	OpRegister = "register"
	OpValidate = "validate"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeNetwork       = "network_error"
	ErrorTypeAuth          = "auth_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeConflict      = "conflict_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithRequestID(requestID string) LogFields {
	f[FieldRequestID] = requestID
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds one of the ErrorType categories. Empty is ignored.
func (f LogFields) WithErrorType(errorType string) LogFields {
	if errorType != "" {
		f[FieldErrorType] = errorType
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithResource adds the id of the resource an operation targets.
func (f LogFields) WithResource(id string) LogFields {
	if id != "" {
		f[FieldResourceID] = id
	}
	return f
}

// WithFilter adds the search filter and the number of items it produced.
func (f LogFields) WithFilter(filter string, count int) LogFields {
	f[FieldFilter] = filter
	f[FieldItemCount] = count
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(id, name, amount string) LogFields {
	f.WithResource(id)
	f[FieldName] = name
	f[FieldAmount] = amount
	return f
}

// WithHTTPRequest adds outgoing request fields
func (f LogFields) WithHTTPRequest(method, path, query string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	if query != "" {
		f[FieldQuery] = query
	}
	return f
}

// WithHTTPResponse adds HTTP response fields
func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64, success bool) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	f[FieldSuccess] = success
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
