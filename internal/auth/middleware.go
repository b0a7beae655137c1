package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Piyush-Inovation/ClassSnap/internal/model"
)

const teacherContextKey = "current_teacher"

var authResults = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "classsnap_auth_requests_total",
	Help: "Bearer-token authentication outcomes on protected routes.",
}, []string{"result"})

// TeacherLookup resolves a token subject to a stored teacher account.
type TeacherLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Teacher, error)
}

// TeacherAuth enforces bearer access tokens on protected routes. It verifies
// the signature and expiry, resolves the subject against the teacher store,
// and attaches the teacher to the request context. Refresh tokens are never
// accepted here.
func TeacherAuth(lookup TeacherLookup, signingKey, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			authResults.WithLabelValues("missing").Inc()
			abortUnauthorized(c, "Authentication required")
			return
		}
		tokenStr := strings.TrimSpace(authz[len("bearer "):])

		claims, err := Parse(tokenStr, signingKey, issuer, TypeAccess)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				authResults.WithLabelValues("expired").Inc()
				abortUnauthorized(c, "Token expired")
				return
			}
			authResults.WithLabelValues("invalid").Inc()
			abortUnauthorized(c, "Invalid token")
			return
		}

		id, err := claims.TeacherID()
		if err != nil {
			authResults.WithLabelValues("invalid").Inc()
			abortUnauthorized(c, "Invalid token")
			return
		}

		teacher, err := lookup.GetByID(c.Request.Context(), id)
		if err != nil {
			authResults.WithLabelValues("error").Inc()
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Authentication failed"})
			return
		}
		if teacher == nil {
			// Token refers to a deleted account.
			authResults.WithLabelValues("unknown").Inc()
			abortUnauthorized(c, "Invalid token")
			return
		}

		authResults.WithLabelValues("ok").Inc()
		c.Set(teacherContextKey, teacher)
		c.Next()
	}
}

// CurrentTeacher returns the teacher resolved by TeacherAuth, if any.
func CurrentTeacher(c *gin.Context) (*model.Teacher, bool) {
	val, ok := c.Get(teacherContextKey)
	if !ok {
		return nil, false
	}
	teacher, ok := val.(*model.Teacher)
	return teacher, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": msg})
}
