package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"

	"github.com/openmuseum/collections/internal/domain"
	"github.com/openmuseum/collections/internal/present/rest/middleware"
	"github.com/openmuseum/collections/internal/present/rest/presenter"
	"github.com/openmuseum/collections/internal/service"
	"github.com/openmuseum/collections/internal/usecase"
)

type Handler struct {
	search     *usecase.SearchUsecase
	item       *usecase.ItemUsecase
	person     *usecase.PersonUsecase
	image      *usecase.ImageUsecase
	favourite  *usecase.FavouriteUsecase
	user       *usecase.UserUsecase
	auth       *service.AuthService
	sessionTTL time.Duration
}

func NewHandler(
	search *usecase.SearchUsecase,
	item *usecase.ItemUsecase,
	person *usecase.PersonUsecase,
	image *usecase.ImageUsecase,
	favourite *usecase.FavouriteUsecase,
	user *usecase.UserUsecase,
	auth *service.AuthService,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		search:     search,
		item:       item,
		person:     person,
		image:      image,
		favourite:  favourite,
		user:       user,
		auth:       auth,
		sessionTTL: sessionTTL,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, auth *middleware.AuthMiddleware) {
	e.GET("/search", h.handleSearch)
	e.GET("/item/:itemId", h.handleItem)
	e.GET("/person/:personId", h.handlePerson)
	e.GET("/image/:itemId/thumb", h.handleThumbnail)
	e.GET("/image/:itemId/:imageIndex", h.handleImage)

	e.POST("/signup", h.handleSignup)
	e.POST("/login", h.handleLogin)
	e.GET("/logout", h.handleLogout, auth.RequireIdentity)
	e.GET("/user", h.handleUser, auth.RequireIdentity)

	e.GET("/favourite/item", h.handleListItemFavourites, auth.RequireIdentity)
	e.POST("/favourite/item/:itemId", h.handleFavouriteItem, auth.RequireIdentity)
	e.DELETE("/favourite/item/:itemId", h.handleUnfavouriteItem, auth.RequireIdentity)
	e.GET("/favourite/person", h.handleListPersonFavourites, auth.RequireIdentity)
	e.POST("/favourite/person/:personId", h.handleFavouritePerson, auth.RequireIdentity)
	e.DELETE("/favourite/person/:personId", h.handleUnfavouritePerson, auth.RequireIdentity)
}

// fail maps domain errors to their response shapes.
func fail(c echo.Context, err error) error {
	var validation domain.ValidationError
	if errors.As(err, &validation) {
		return presenter.BadRequestParam(c, validation.Param, validation.Detail)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return presenter.NotFound(c, err.Error())
	}
	if errors.Is(err, domain.ErrConflict) {
		return presenter.Conflict(c, err.Error())
	}
	return presenter.InternalError(c, err)
}

func requesterID(c echo.Context) int64 {
	id, _ := c.Request().Context().Value(domain.RequesterIDCtxKey).(int64)
	return id
}

func (h *Handler) handleSearch(c echo.Context) error {
	ctx := c.Request().Context()

	params := c.QueryParams()
	input := usecase.SearchInput{
		Facets: domain.FacetInput{
			Query:            c.QueryParam("query"),
			Image:            params["image"],
			Category:         params["category"],
			Maker:            params["maker"],
			Place:            params["place"],
			Facility:         params["facility"],
			CreationEarliest: c.QueryParam("creationEarliest"),
			CreationLatest:   c.QueryParam("creationLatest"),
		},
		Sort:       c.QueryParam("sort"),
		PageNumber: c.QueryParam("page[number]"),
		PageSize:   c.QueryParam("page[size]"),
	}

	result, err := h.search.Search(ctx, input)
	if err != nil {
		return fail(c, err)
	}

	return presenter.OK(c, presenter.SearchDocument(result.Items, result.Total))
}

func (h *Handler) handleItem(c echo.Context) error {
	ctx := c.Request().Context()

	item, related, err := h.item.Get(ctx, c.Param("itemId"))
	if err != nil {
		return fail(c, err)
	}

	return presenter.OK(c, presenter.ItemDocument(item, related))
}

func (h *Handler) handlePerson(c echo.Context) error {
	ctx := c.Request().Context()

	person, related, err := h.person.Get(ctx, c.Param("personId"))
	if err != nil {
		return fail(c, err)
	}

	return presenter.OK(c, presenter.PersonDocument(person, related))
}

func serveImage(c echo.Context, data []byte, contentType string) error {
	etag := fmt.Sprintf(`"%x"`, xxh3.Hash(data))
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	c.Response().Header().Set("ETag", etag)
	return c.Blob(http.StatusOK, contentType, data)
}

func (h *Handler) handleThumbnail(c echo.Context) error {
	ctx := c.Request().Context()

	data, contentType, err := h.image.Thumbnail(ctx, c.Param("itemId"))
	if err != nil {
		return fail(c, err)
	}

	return serveImage(c, data, contentType)
}

func (h *Handler) handleImage(c echo.Context) error {
	ctx := c.Request().Context()

	index, err := strconv.Atoi(c.Param("imageIndex"))
	if err != nil || index < 0 {
		return presenter.BadRequestParam(c, "imageIndex", "must be a non-negative integer")
	}

	data, contentType, err := h.image.ByIndex(ctx, c.Param("itemId"), index)
	if err != nil {
		return fail(c, err)
	}

	return serveImage(c, data, contentType)
}

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) handleSignup(c echo.Context) error {
	ctx := c.Request().Context()

	var req signupRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, "malformed request body")
	}

	if req.Email == "" {
		return presenter.BadRequestParam(c, "email", "email is required")
	}
	if req.Password == "" {
		return presenter.BadRequestParam(c, "password", "password is required")
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	user, err := h.user.Register(ctx, domain.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return fail(c, err)
	}

	token, err := h.auth.IssueToken(ctx, user)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	h.setSessionCookie(c, token)

	return presenter.OK(c, presenter.UserDocument(user))
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, "malformed request body")
	}

	user, err := h.user.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return presenter.Unauthorized(c, "email", "Account Not Found", "no account exists for this email")
		}
		return presenter.InternalError(c, err)
	}

	if !h.auth.VerifyPassword(user.PasswordHash, req.Password) {
		return presenter.Unauthorized(c, "password", "Incorrect Password", "the password does not match")
	}

	token, err := h.auth.IssueToken(ctx, user)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	h.setSessionCookie(c, token)

	return presenter.OK(c, presenter.UserDocument(user))
}

func (h *Handler) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()

	tokenID, _ := ctx.Value(domain.SessionTokenCtxKey).(string)
	if tokenID != "" {
		err := h.auth.Revoke(ctx, tokenID)
		if err != nil {
			return presenter.InternalError(c, err)
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleUser(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.user.GetByID(ctx, requesterID(c))
	if err != nil {
		return fail(c, err)
	}

	return presenter.OK(c, presenter.UserDocument(user))
}

func (h *Handler) handleListItemFavourites(c echo.Context) error {
	ctx := c.Request().Context()

	favourites, err := h.favourite.ListItemFavourites(ctx, requesterID(c), c.QueryParam("itemId"))
	if err != nil {
		return fail(c, err)
	}
	if len(favourites) == 0 {
		return presenter.NotFound(c, "no favourite items")
	}

	return presenter.OK(c, presenter.ItemFavouriteListDocument(favourites))
}

func (h *Handler) handleFavouriteItem(c echo.Context) error {
	ctx := c.Request().Context()

	favourite, err := h.favourite.FavouriteItem(ctx, requesterID(c), c.Param("itemId"))
	if err != nil {
		return fail(c, err)
	}

	return presenter.OK(c, presenter.ItemFavouriteDocument(favourite))
}

func (h *Handler) handleUnfavouriteItem(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.favourite.UnfavouriteItem(ctx, requesterID(c), c.Param("itemId"))
	if err != nil {
		return fail(c, err)
	}

	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleListPersonFavourites(c echo.Context) error {
	ctx := c.Request().Context()

	favourites, err := h.favourite.ListPersonFavourites(ctx, requesterID(c), c.QueryParam("personId"))
	if err != nil {
		return fail(c, err)
	}
	if len(favourites) == 0 {
		return presenter.NotFound(c, "no favourite people")
	}

	return presenter.OK(c, presenter.PersonFavouriteListDocument(favourites))
}

func (h *Handler) handleFavouritePerson(c echo.Context) error {
	ctx := c.Request().Context()

	favourite, err := h.favourite.FavouritePerson(ctx, requesterID(c), c.Param("personId"))
	if err != nil {
		return fail(c, err)
	}

	return presenter.OK(c, presenter.PersonFavouriteDocument(favourite))
}

func (h *Handler) handleUnfavouritePerson(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.favourite.UnfavouritePerson(ctx, requesterID(c), c.Param("personId"))
	if err != nil {
		return fail(c, err)
	}

	return presenter.OK(c, echo.Map{"status": "ok"})
}
