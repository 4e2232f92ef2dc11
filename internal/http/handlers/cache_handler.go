// Cache mirror HTTP handlers.
//
// This file exposes the REST endpoints owned by the cache service:
//   - POST /cache/user  (store a user snapshot)
//   - GET  /cache/user  (fetch a user snapshot by username)
//   - POST /cache/call  (store a call snapshot)
//   - GET  /cache/call  (fetch a call snapshot by username and date)
//
// The mirror stores the submitted JSON object as-is, including any extra
// keys beyond the required ones, and serves it back verbatim on a hit.
// Writes are last-write-wins; nothing expires.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/telvoice/go-callcenter-backend/internal/cache"
)

// CacheHandlers groups the HTTP endpoints of the cache mirror.
type CacheHandlers struct {
	store cache.Store
}

// NewCacheHandlers constructs CacheHandlers bound to the given store.
func NewCacheHandlers(store cache.Store) *CacheHandlers {
	return &CacheHandlers{store: store}
}

// Home godoc
// @ID          cacheServiceHome
// @Summary     Cache service welcome page
// @Produce     plain
// @Success     200 {string} string
// @Router      / [get]
func (h *CacheHandlers) Home(c *gin.Context) {
	c.String(http.StatusOK, "Welcome by callcache_service!")
}

// CacheUser godoc
// @ID          cacheUser
// @Summary     Store a user snapshot
// @Description Caches the submitted user object under "user:<username>".
// @Tags        Cache
// @Accept      json
// @Produce     json
// @Success     201 {object} map[string]string
// @Failure     400 {object} handlers.ErrorResponse "Missing username or phone"
// @Failure     500 {object} handlers.ErrorResponse "Cache write failed"
// @Router      /cache/user [post]
func (h *CacheHandlers) CacheUser(c *gin.Context) {
	_, blob, username, okBody := snapshotBody(c, "username", "phone")
	if !okBody {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Username and phone are required!")
		return
	}

	if err := h.store.Set(c.Request.Context(), cache.UserKey(username), blob); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCacheFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, gin.H{"message": fmt.Sprintf("User %s cached successfully!", username)})
}

// UserFromCache godoc
// @ID          userFromCache
// @Summary     Fetch a user snapshot
// @Tags        Cache
// @Produce     json
// @Param       username query string true "Username"
// @Success     200 {object} map[string]any
// @Failure     400 {object} handlers.ErrorResponse "Missing username"
// @Failure     404 {object} handlers.ErrorResponse "Not cached"
// @Router      /cache/user [get]
func (h *CacheHandlers) UserFromCache(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Username is required to fetch user data!")
		return
	}

	blob, err := h.store.Get(c.Request.Context(), cache.UserKey(username))
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("User %s not found in cache!", username))
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCacheFailed, err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json", blob)
}

// CacheCall godoc
// @ID          cacheCall
// @Summary     Store a call snapshot
// @Description Caches the submitted call object under "call:<username>:<date>".
// @Tags        Cache
// @Accept      json
// @Produce     json
// @Success     201 {object} map[string]string
// @Failure     400 {object} handlers.ErrorResponse "Missing username, date, or status"
// @Failure     500 {object} handlers.ErrorResponse "Cache write failed"
// @Router      /cache/call [post]
func (h *CacheHandlers) CacheCall(c *gin.Context) {
	obj, blob, username, okBody := snapshotBody(c, "username", "date", "status")
	if !okBody {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Username, date, and status are required!")
		return
	}
	date, _ := obj["date"].(string)

	if err := h.store.Set(c.Request.Context(), cache.CallKey(username, date), blob); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCacheFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, gin.H{"message": fmt.Sprintf("Call data for %s cached successfully!", username)})
}

// CallFromCache godoc
// @ID          callFromCache
// @Summary     Fetch a call snapshot
// @Tags        Cache
// @Produce     json
// @Param       username query string true "Username"
// @Param       date     query string true "Call date, exactly as submitted"
// @Success     200 {object} map[string]any
// @Failure     400 {object} handlers.ErrorResponse "Missing username or date"
// @Failure     404 {object} handlers.ErrorResponse "Not cached"
// @Router      /cache/call [get]
func (h *CacheHandlers) CallFromCache(c *gin.Context) {
	username := c.Query("username")
	date := c.Query("date")
	if username == "" || date == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Username and date are required to fetch call data!")
		return
	}

	blob, err := h.store.Get(c.Request.Context(), cache.CallKey(username, date))
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			fail(c, http.StatusNotFound, ErrCodeNotFound,
				fmt.Sprintf("Call data for %s on %s not found in cache!", username, date))
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCacheFailed, err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json", blob)
}

// snapshotBody decodes the request body as a JSON object, verifies the
// required keys hold non-empty strings, and returns the object together
// with its re-serialized bytes for storage. The username key must be among
// required and is returned separately because every cache key embeds it.
func snapshotBody(c *gin.Context, required ...string) (obj map[string]any, blob []byte, username string, valid bool) {
	if err := c.ShouldBindJSON(&obj); err != nil {
		return nil, nil, "", false
	}
	for _, k := range required {
		s, isStr := obj[k].(string)
		if !isStr || s == "" {
			return nil, nil, "", false
		}
	}
	blob, err := json.Marshal(obj)
	if err != nil {
		return nil, nil, "", false
	}
	username, _ = obj["username"].(string)
	return obj, blob, username, true
}
