package auth

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ecotravel/logger"
)

const (
	SessionCookieName     = "ecotravel"
	SessionExpirationTime = 365 * 86400 // 1 year
	profileIdKey          = "profile"
)

// Session identifies one browser profile, the owner of a favorites list
type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

// ProfileID returns the profile of this browser, creating one on first use
func (s *Session) ProfileID() string {
	if id, ok := s.Get(profileIdKey).(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	s.Set(profileIdKey, id)
	s.Options(sessions.Options{Path: "/", MaxAge: SessionExpirationTime, HttpOnly: true})
	if err := s.Save(); err != nil {
		logger.Log.WithError(err).Warn("Cannot save session")
	}
	return id
}

// StoragePrefix is where the profile's values live in the durable store
func StoragePrefix(profileID string) string {
	return "profile/" + profileID + "/"
}
