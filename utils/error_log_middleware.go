package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ecotravel/logger"
)

type errorLogWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w errorLogWriter) Write(b []byte) (int, error) {
	status := w.gc.Writer.Status()
	if status >= 400 {
		logger.Log.WithFields(logrus.Fields{
			"status": status,
			"path":   w.gc.Request.URL.Path,
			"body":   string(b),
		}).Debug("Error response")
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware doesn't work with GZIP
func ErrorLogMiddleware(c *gin.Context) {
	blw := &errorLogWriter{gc: c, ResponseWriter: c.Writer}
	c.Writer = blw
	c.Next()
}
