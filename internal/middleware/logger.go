package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tomasen/realip"
)

// Logger logs every handled request with its originating ip.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		logrus.WithFields(logrus.Fields{
			"ip":       realip.FromRequest(r),
			"method":   r.Method,
			"uri":      r.RequestURI,
			"duration": time.Since(start).String(),
		}).Debug("request handled")
	})
}
