package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	appsession "eshoplabs.dev/eshop-web/internal/admin/session"
)

type sessionContextKey string

const requestSessionKey sessionContextKey = "admin.session"

// SessionStore abstracts the session manager for middleware integration.
type SessionStore interface {
	Load(*http.Request) (*appsession.Session, error)
	New() *appsession.Session
	Save(http.ResponseWriter, *appsession.Session) error
	Destroy(http.ResponseWriter)
}

// Session attaches the decoded session to the request context and persists it
// back to the client. The cookie must land before the handler sends its first
// byte, so the save runs from a before-write hook on the response writer; a
// handler that never writes (HEAD, 304) gets a save after it returns.
func Session(store SessionStore, log *zap.Logger) func(http.Handler) http.Handler {
	if store == nil {
		panic("session store is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Load(r)
			if errors.Is(err, appsession.ErrExpired) {
				log.Info("admin session expired, resetting")
				store.Destroy(w)
				sess = store.New()
			} else if err != nil || sess == nil {
				if err != nil {
					log.Warn("admin session load failed", zap.Error(err))
				}
				sess = store.New()
			}

			sess.Touch(time.Now())
			ctx := context.WithValue(r.Context(), requestSessionKey, sess)

			sw := &sessionWriter{ResponseWriter: w}
			sw.beforeWrite = func() {
				if err := store.Save(w, sess); err != nil {
					log.Error("admin session save failed", zap.Error(err))
				}
			}

			next.ServeHTTP(sw, r.WithContext(ctx))

			if !sw.wrote {
				if err := store.Save(w, sess); err != nil {
					log.Error("admin session save failed", zap.Error(err))
				}
			}
		})
	}
}

// SessionFromContext retrieves the session attached to this request.
func SessionFromContext(ctx context.Context) (*appsession.Session, bool) {
	if ctx == nil {
		return nil, false
	}
	sess, ok := ctx.Value(requestSessionKey).(*appsession.Session)
	return sess, ok && sess != nil
}

// sessionWriter defers the session save until just before headers freeze.
type sessionWriter struct {
	http.ResponseWriter
	wrote       bool
	beforeWrite func()
}

func (sw *sessionWriter) WriteHeader(statusCode int) {
	sw.flush()
	sw.ResponseWriter.WriteHeader(statusCode)
}

func (sw *sessionWriter) Write(b []byte) (int, error) {
	sw.flush()
	return sw.ResponseWriter.Write(b)
}

func (sw *sessionWriter) flush() {
	if sw.wrote {
		return
	}
	sw.wrote = true
	if sw.beforeWrite != nil {
		sw.beforeWrite()
	}
}
