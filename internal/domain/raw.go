package domain

import "time"

// Helpers shared by the entity factories. Every factory accepts a raw record
// whose keys may follow any of the backend's historical naming conventions;
// aliases are reconciled with fixed precedence (the first non-empty value
// wins, in the order the factory lists them).

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstTimestamp(values ...*Timestamp) *Timestamp {
	for _, v := range values {
		if v != nil && !v.IsZero() {
			return v
		}
	}
	return nil
}

// timestampPair resolves the created/updated pair so that a record missing
// its updated_at still satisfies createdAt <= updatedAt. Server-supplied
// values are trusted as-is; the server owns the clock.
func timestampPair(created, updated *Timestamp) (time.Time, time.Time) {
	createdAt := created.OrElse(time.Time{})
	updatedAt := updated.OrElse(createdAt)
	return createdAt, updatedAt
}

// strOrNil turns an empty optional string into nil so downstream code can
// rely on presence meaning a real value.
func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
