package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rutasloja/rutas-backend/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// LoggingMiddleware tags every request with an id and logs its outcome
// with the caller and the resource ids taken from the matched route.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		log := logger.WithContext(map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"ip":         c.ClientIP(),
		})

		log.Debug("Incoming request", map[string]interface{}{
			"user_agent": c.Request.UserAgent(),
			"query":      c.Request.URL.RawQuery,
		})

		c.Set("logger", log)

		c.Next()

		latency := time.Since(startTime)
		statusCode := c.Writer.Status()

		fields := requestFields(c)
		fields["status_code"] = statusCode
		fields["latency_ms"] = latency.Milliseconds()
		fields["body_size"] = c.Writer.Size()
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		msg := "Request completed"
		if statusCode >= 500 {
			log.Error(msg, nil, fields)
		} else if statusCode >= 400 {
			log.Warn(msg, fields)
		} else {
			log.Info(msg, fields)
		}
	}
}

// requestFields collects the route template, the authenticated caller and
// one field per path id, e.g. /routes/:id/stops/:place_id gives route_id
// and place_id.
func requestFields(c *gin.Context) map[string]interface{} {
	fields := map[string]interface{}{}

	template := c.FullPath()
	if template != "" {
		fields["route"] = template
	}
	if userID, ok := GetUserID(c); ok {
		fields["user_id"] = userID
	}
	if username, ok := GetUsername(c); ok {
		fields["username"] = username
	}

	segments := strings.Split(strings.Trim(template, "/"), "/")
	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") {
			continue
		}
		name := strings.TrimPrefix(segment, ":")
		if name == "id" {
			if i == 0 {
				continue
			}
			name = singular(segments[i-1]) + "_id"
		}
		fields[name] = c.Param(strings.TrimPrefix(segment, ":"))
	}
	return fields
}

// singular turns a collection segment like "route-stops" into "route_stop".
func singular(collection string) string {
	name := strings.ReplaceAll(collection, "-", "_")
	switch {
	case strings.HasSuffix(name, "ies"):
		return strings.TrimSuffix(name, "ies") + "y"
	case strings.HasSuffix(name, "s"):
		return strings.TrimSuffix(name, "s")
	}
	return name
}

// GetLoggerFromContext retrieves the logger from gin context
func GetLoggerFromContext(c *gin.Context) *logger.Logger {
	if log, exists := c.Get("logger"); exists {
		if l, ok := log.(*logger.Logger); ok {
			return l
		}
	}
	return logger.Get()
}
