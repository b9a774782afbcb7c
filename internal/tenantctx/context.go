// Package tenantctx carries the tenant (company) and member identity
// extracted from the session header through request contexts.
package tenantctx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// CompanyContextKey is the request context key for the active company ID.
type CompanyContextKey struct{}

// MemberContextKey is the request context key for the acting member ID.
type MemberContextKey struct{}

// WithCompanyID stores the company ID in the context.
func WithCompanyID(ctx context.Context, companyID snowflake.ID) context.Context {
	return context.WithValue(ctx, CompanyContextKey{}, companyID)
}

// WithMemberID stores the acting member ID in the context.
func WithMemberID(ctx context.Context, memberID snowflake.ID) context.Context {
	return context.WithValue(ctx, MemberContextKey{}, memberID)
}

// CompanyIDFromContext returns the company ID from context, if set.
func CompanyIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	return idFromContext(ctx, CompanyContextKey{})
}

// MemberIDFromContext returns the acting member ID from context, if set.
func MemberIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	return idFromContext(ctx, MemberContextKey{})
}

func idFromContext(ctx context.Context, key any) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}

	switch typed := ctx.Value(key).(type) {
	case snowflake.ID:
		if typed == 0 {
			return 0, false
		}
		return typed, true
	case int64:
		if typed == 0 {
			return 0, false
		}
		return snowflake.ID(typed), true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil && parsed != 0 {
			return parsed, true
		}
	}
	return 0, false
}
