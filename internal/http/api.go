package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"socialmedia/internal/admin"
	"socialmedia/internal/domain"
	"socialmedia/internal/observability/metrics"
	"socialmedia/internal/repository"
	"socialmedia/internal/service"
	"socialmedia/internal/storage"
)

// appLabel is the module name staff need permission for.
const appLabel = "accounts"

// ArchiveStore lists and removes account snapshots.
type ArchiveStore interface {
	List(ctx context.Context) ([]storage.ObjectInfo, error)
	Purge(ctx context.Context, userID int64) error
}

// Handler wires HTTP routes to the account services.
type Handler struct {
	users    service.UserService
	profiles service.ProfileService
	archives ArchiveStore
	logger   logrus.FieldLogger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

// NewHandler builds the admin handler. archives may be nil when no archive
// bucket is configured.
func NewHandler(users service.UserService, profiles service.ProfileService, archives ArchiveStore, logger logrus.FieldLogger, m *metrics.Metrics, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		users:    users,
		profiles: profiles,
		archives: archives,
		logger:   logger,
		metrics:  m,
		gatherer: gatherer,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger), metricsMiddleware(h.metrics), corsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusAccepted, gin.H{"ok": "ok"})
		})
	}

	accounts := router.Group("/admin/"+appLabel, basicAuth(h.users))
	{
		accounts.GET("/users", h.listUsers)
		accounts.GET("/users/:id", h.getUser)
		accounts.DELETE("/users/:id", h.deleteUser)
		accounts.GET("/profiles", h.listProfiles)
		accounts.GET("/profiles/:userID", h.getProfile)
		accounts.GET("/archives", h.listArchives)
		accounts.DELETE("/archives/:userID", h.purgeArchives)
	}
}

type ListResponse struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Total   int      `json:"total"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Bio       string `json:"bio"`
	IsActive  bool   `json:"is_active"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ProfileResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	FullName   string `json:"full_name"`
	Avatar     string `json:"avatar"`
	Bio        string `json:"bio"`
	IsVerified bool   `json:"is_verified"`
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func (h *Handler) listUsers(c *gin.Context) {
	query, ok := listQuery(c, admin.Users)
	if !ok {
		return
	}

	users, total, err := h.users.ListUsers(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	rows := make([][]any, len(users))
	for i := range users {
		rows[i] = admin.Users.Row(admin.UserValues(users[i]))
	}
	c.JSON(http.StatusOK, ListResponse{Columns: admin.Users.Display, Rows: rows, Total: total})
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if current := currentUser(c); current != nil && current.ID == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete the signed-in account"})
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) listProfiles(c *gin.Context) {
	query, ok := listQuery(c, admin.Profiles)
	if !ok {
		return
	}

	entries, total, err := h.profiles.ListProfiles(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	rows := make([][]any, len(entries))
	for i := range entries {
		rows[i] = admin.Profiles.Row(admin.ProfileValues(entries[i]))
	}
	c.JSON(http.StatusOK, ListResponse{Columns: admin.Profiles.Display, Rows: rows, Total: total})
}

func (h *Handler) getProfile(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileToResponse(profile))
}

func (h *Handler) listArchives(c *gin.Context) {
	if h.archives == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "archive storage not configured"})
		return
	}

	objects, err := h.archives.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) purgeArchives(c *gin.Context) {
	if h.archives == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "archive storage not configured"})
		return
	}
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}

	if err := h.archives.Purge(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purged": userID})
}

// listQuery reads q, limit, offset and the remaining parameters as filters.
func listQuery(c *gin.Context, listing admin.Listing) (repository.ListQuery, bool) {
	values := c.Request.URL.Query()

	limit, err := intParam(values.Get("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return repository.ListQuery{}, false
	}
	offset, err := intParam(values.Get("offset"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return repository.ListQuery{}, false
	}

	filters := make(map[string]string)
	for key, vals := range values {
		switch key {
		case "q", "limit", "offset":
			continue
		}
		if len(vals) > 0 {
			filters[key] = vals[0]
		}
	}

	query, err := listing.Query(values.Get("q"), filters, limit, offset)
	if err != nil {
		writeError(c, err)
		return repository.ListQuery{}, false
	}
	return query, true
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func profileToResponse(profile *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:         profile.ID,
		UserID:     profile.UserID,
		FullName:   profile.FullName,
		Avatar:     profile.Avatar,
		Bio:        profile.Bio,
		IsVerified: profile.IsVerified,
	}
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}
