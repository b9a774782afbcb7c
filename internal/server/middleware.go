package server

import (
	"github.com/gin-gonic/gin"
	obscontext "github.com/nextlab/researchdesk/internal/observability/context"
	"github.com/nextlab/researchdesk/internal/session"
	"github.com/nextlab/researchdesk/internal/tenantctx"
)

// SessionRequired decodes the caller's session header and scopes the request
// context to that company and member. Requests without a valid session never
// reach a handler.
func (s *Server) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := session.Decode(c.GetHeader(session.HeaderName))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := tenantctx.WithCompanyID(c.Request.Context(), sess.CompanyID)
		ctx = tenantctx.WithMemberID(ctx, sess.MemberID)
		ctx = obscontext.WithOrgID(ctx, sess.CompanyID.String())
		ctx = obscontext.WithActor(ctx, "member", sess.MemberID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
