package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frienemy/social-api/internal/api/metrics"
	"github.com/frienemy/social-api/internal/core/domain"
	"github.com/frienemy/social-api/internal/core/ports"
)

// UserHandler handles HTTP requests for accounts and the relationship graph.
// Handlers return errors instead of responding locally; the centralized
// error handler renders the envelope.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetAll handles GET /users.
func (h *UserHandler) GetAll(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(http.StatusOK, resultsResponse{Results: users})
}

// Register handles POST /users/register. Responds 201 with the created
// record; the password hash is never serialized.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, resultsResponse{Results: []*domain.User{user}})
}

// Login handles POST /users/login. Responds 202 with the signed token.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, err := h.service.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusAccepted, tokenResponse{Token: token})
}

// AddFriend handles PATCH /users/add-friend.
func (h *UserHandler) AddFriend(c echo.Context) error {
	return h.mutateRelation(c, h.service.AddFriend, "add", "friends")
}

// AddEnemy handles PATCH /users/add-enemy.
func (h *UserHandler) AddEnemy(c echo.Context) error {
	return h.mutateRelation(c, h.service.AddEnemy, "add", "enemies")
}

// RemoveFriend handles PATCH /users/remove-friend.
func (h *UserHandler) RemoveFriend(c echo.Context) error {
	return h.mutateRelation(c, h.service.RemoveFriend, "remove", "friends")
}

// RemoveEnemy handles PATCH /users/remove-enemy.
func (h *UserHandler) RemoveEnemy(c echo.Context) error {
	return h.mutateRelation(c, h.service.RemoveEnemy, "remove", "enemies")
}

func (h *UserHandler) mutateRelation(
	c echo.Context,
	op func(ctx context.Context, in ports.RelationshipInput) (*domain.User, error),
	opLabel, setLabel string,
) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req relationshipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := op(c.Request().Context(), ports.RelationshipInput{
		CallerID: claim.ID,
		TargetID: req.ID,
	})
	if err != nil {
		return err
	}

	metrics.RelationshipMutationsTotal.WithLabelValues(opLabel, setLabel).Inc()
	return c.JSON(http.StatusOK, resultsResponse{Results: []*domain.User{updated}})
}

// EditProfile handles PATCH /users/edit-profile. The caller's own id always
// wins over whatever id the body carried.
func (h *UserHandler) EditProfile(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req editProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.service.EditProfile(c.Request().Context(), ports.EditProfileInput{
		CallerID: claim.ID,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resultsResponse{Results: []*domain.User{updated}})
}

// DeleteUser handles PATCH /users/delete-user. Only the caller's own record
// is ever erased.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), claim.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resultsResponse{Results: []*domain.User{}})
}
