package fakeapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

type addUserRequest struct {
	Name     string      `json:"name" validate:"required,min=20,max=60"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8,max=16,password_policy"`
	Role     domain.Role `json:"role" validate:"required,oneof=admin owner user"`
	Address  string      `json:"address" validate:"max=400"`
}

type addStoreRequest struct {
	Name    string `json:"name" validate:"required,min=20,max=60"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"max=400"`
	OwnerID int64  `json:"owner_id" validate:"gt=0" label:"owner"`
}

type createRatingRequest struct {
	StoreID int64 `json:"store_id" validate:"gt=0" label:"store"`
	Rating  int   `json:"rating" validate:"gte=1,lte=5"`
}

type updateRatingRequest struct {
	Rating int `json:"rating" validate:"gte=1,lte=5"`
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// ── Admin ─────────────────────────────────────────────────────────────────────

func (s *Server) adminDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, s.st.stats())
}

func (s *Server) adminUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, s.st.listUsers(domain.UserFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
		Role:    domain.Role(c.QueryParam("role")),
		SortBy:  c.QueryParam("sortBy"),
		Order:   c.QueryParam("order"),
	}))
}

func (s *Server) adminAddUser(c echo.Context) error {
	var req addUserRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := s.st.addUser(domain.NewUser{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Role:     req.Role,
		Address:  strings.TrimSpace(req.Address),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "User created successfully", "user": user})
}

func (s *Server) adminUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detail, err := s.st.userDetail(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

func (s *Server) adminStores(c echo.Context) error {
	return c.JSON(http.StatusOK, s.st.listStores(domain.StoreFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
		SortBy:  c.QueryParam("sortBy"),
		Order:   c.QueryParam("order"),
	}))
}

func (s *Server) adminAddStore(c echo.Context) error {
	var req addStoreRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	st, err := s.st.addStore(domain.NewStore{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Address: strings.TrimSpace(req.Address),
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, st)
}

// ── Owner ─────────────────────────────────────────────────────────────────────

func (s *Server) ownerDashboard(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	dash, err := s.st.ownerDashboard(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dash)
}

// ── User ──────────────────────────────────────────────────────────────────────

func (s *Server) userStores(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.st.userStores(id, strings.TrimSpace(c.QueryParam("search"))))
}

func (s *Server) createRating(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	var req createRatingRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := s.st.createRating(id, req.StoreID, req.Rating); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Rating submitted successfully"})
}

func (s *Server) updateRating(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	storeID, err := pathID(c, "storeId")
	if err != nil {
		return err
	}
	var req updateRatingRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := s.st.updateRating(id, storeID, req.Rating); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Rating updated successfully"})
}
