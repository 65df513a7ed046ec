package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Handlers set the owner/slot under action once; every service and
// store log line below picks them up without re-plumbing arguments.
type LogFields struct {
	OwnerID   *int64  // Application or gate ID the command targets
	OwnerKind *string // "application" or "readiness_gate"
	SlotID    *int64  // Interview slot ID
	RequestID *int64  // Availability request ID
	ActorID   *int64  // User issuing the command
	ActorRole *string // Role of the acting user
	Component string  // Component name, e.g. "interviews.service.confirmation"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking
// precedence. Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.OwnerID != nil {
		result.OwnerID = next.OwnerID
	}
	if next.OwnerKind != nil {
		result.OwnerKind = next.OwnerKind
	}
	if next.SlotID != nil {
		result.SlotID = next.SlotID
	}
	if next.RequestID != nil {
		result.RequestID = next.RequestID
	}
	if next.ActorID != nil {
		result.ActorID = next.ActorID
	}
	if next.ActorRole != nil {
		result.ActorRole = next.ActorRole
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value, for setting LogFields
// inline: logger.WithLogFields(ctx, logger.LogFields{SlotID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
