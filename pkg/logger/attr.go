package logger

import (
	"log/slog"
	"strconv"
)

// Attribute keys shared by every package.
const (
	KeyError     = "error"
	KeyErrors    = "errors"
	KeyRequestID = "request_id"
	KeyComponent = "component"
	KeyBackend   = "backend"
	KeyStoreKey  = "store_key"
	KeyTier      = "tier"
	KeyReason    = "reason"
	KeyVersion   = "version"
	KeyEvent     = "event"
	KeyEventType = "event_type"
	KeyEventID   = "event_id"
	KeyReceiptID = "receipt_id"
)

// optional drops attributes whose value is empty, so callers can pass them
// unconditionally.
func optional(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}

// Error is empty for a nil err.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(KeyError, err)
}

// Errors groups the non-nil errs by argument position.
func Errors(errs ...error) slog.Attr {
	var group []slog.Attr
	for i, err := range errs {
		if err != nil {
			group = append(group, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(group) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: KeyErrors, Value: slog.GroupValue(group...)}
}

func RequestID(id string) slog.Attr { return optional(KeyRequestID, id) }

func Component(name string) slog.Attr { return slog.String(KeyComponent, name) }

// Backend names the record store driver, e.g. "redis" or "postgres".
func Backend(name string) slog.Attr { return slog.String(KeyBackend, name) }

func StoreKey(key string) slog.Attr { return slog.String(KeyStoreKey, key) }

func Tier(tier string) slog.Attr { return slog.String(KeyTier, tier) }

// Reason is the access decision reason; empty for granted access.
func Reason(reason string) slog.Attr { return optional(KeyReason, reason) }

func Version(v uint64) slog.Attr { return slog.Uint64(KeyVersion, v) }

// Event is a lifecycle transition such as "upgrade:pro".
func Event(name string) slog.Attr { return slog.String(KeyEvent, name) }

// EventType is a normalized billing notification type.
func EventType(t string) slog.Attr { return slog.String(KeyEventType, t) }

// EventID is the provider's notification ID, used for deduplication.
func EventID(id string) slog.Attr { return optional(KeyEventID, id) }

func ReceiptID(id string) slog.Attr { return optional(KeyReceiptID, id) }
