package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/apierrors"
	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxLang     = "lang"
	ctxUserID   = "userID"
	headerReqID = "X-Request-ID"
)

// RequestLogger stores a child logger carrying request_id, method and path
// in the request context and logs one line per request once it completes.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(headerReqID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(headerReqID, reqID)

		reqLog := log.With("request_id", reqID, "method", c.Request.Method, "path", c.Request.URL.Path)
		ctx := logging.NewContext(c.Request.Context(), reqLog)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		fields := []any{
			"status", c.Writer.Status(),
			"ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"latency", time.Since(start),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			reqLog.Error(ctx, "http request", fields...)
			return
		}
		reqLog.Info(ctx, "http request", fields...)
	}
}

// Language resolves Accept-Language to one of the bundled languages.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxLang, apierrors.MatchLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, ok := c.Get(ctxLang); ok {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return apierrors.LanguageEn
}

// Authenticate requires a valid bearer token and exposes its subject to
// handlers via UserID.
func Authenticate(tokens TokenParser, r responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeader)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			r.abort(c, http.StatusUnauthorized, apierrors.MsgUnauthorized, nil)
			return
		}

		claims, err := tokens.ParseAccessToken(strings.TrimPrefix(header, common.BearerPrefix))
		if err != nil {
			r.fail(c, err)
			return
		}

		c.Set(ctxUserID, claims.Subject)
		c.Next()
	}
}

// UserID is the authenticated subject; empty outside Authenticate.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// Recovery turns a panic into a generic 500.
func Recovery(r responder) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		ctx := c.Request.Context()
		logging.FromContext(ctx, r.log).Error(ctx, "panic recovered", "panic", rec)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			r.tr.CreateError(http.StatusInternalServerError, apierrors.MsgInternal, GetLang(c)))
	})
}
