package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openmuseum/collections/internal/domain"
	"github.com/openmuseum/collections/internal/present/rest/middleware"
	"github.com/openmuseum/collections/internal/present/rest/presenter"
	"github.com/openmuseum/collections/internal/service"
	"github.com/openmuseum/collections/internal/usecase"
)

// --- mocks ---

type mockCatalog struct {
	searchFilter domain.Filter
	searchOrder  []domain.OrderKey
	searchPage   domain.Page
}

func (m *mockCatalog) Search(ctx context.Context, filter domain.Filter, order []domain.OrderKey, page domain.Page) ([]domain.ItemSummary, int64, error) {
	m.searchFilter = filter
	m.searchOrder = order
	m.searchPage = page
	return []domain.ItemSummary{
		{ID: "i1", Name: "kete", Category: domain.Category{ID: 3, Name: "textiles"}},
		{ID: "i2", Name: "poi", Category: domain.Category{ID: 5, Name: "taonga puoro"}},
	}, 41, nil
}

func (m *mockCatalog) FindOverlap(ctx context.Context, overlap domain.Overlap, excludeID string, limit int) ([]domain.ItemSummary, error) {
	return nil, nil
}

func (m *mockCatalog) GetItem(ctx context.Context, id string) (domain.Item, error) {
	if id != "i1" {
		return domain.Item{}, domain.NotFoundError{Resource: "item"}
	}
	return domain.Item{ID: "i1", Name: "kete", Category: domain.Category{ID: 3, Name: "textiles"}}, nil
}

func (m *mockCatalog) GetPerson(ctx context.Context, id string) (domain.Person, error) {
	if id != "p1" {
		return domain.Person{}, domain.NotFoundError{Resource: "person"}
	}
	return domain.Person{ID: "p1"}, nil
}

func (m *mockCatalog) GetThumbnail(ctx context.Context, itemID string) (domain.Image, error) {
	if itemID != "i1" {
		return domain.Image{}, domain.NotFoundError{Resource: "image"}
	}
	return domain.Image{ItemID: itemID, PublicPath: "/t.jpg", IsThumb: true}, nil
}

func (m *mockCatalog) GetImageByIndex(ctx context.Context, itemID string, index int) (domain.Image, error) {
	if itemID != "i1" || index > 1 {
		return domain.Image{}, domain.NotFoundError{Resource: "image"}
	}
	return domain.Image{ItemID: itemID, PublicPath: fmt.Sprintf("/%d.jpg", index)}, nil
}

type mockImageGateway struct{}

func (m *mockImageGateway) Fetch(ctx context.Context, publicPath string) ([]byte, string, error) {
	return []byte("image-bytes:" + publicPath), "image/jpeg", nil
}

type mockFavourites struct {
	items []domain.ItemFavourite
}

func (m *mockFavourites) CreateItemFavourite(ctx context.Context, userID int64, itemID string) (domain.ItemFavourite, error) {
	for _, f := range m.items {
		if f.UserID == userID && f.ItemID == itemID {
			return domain.ItemFavourite{}, domain.ConflictError{Resource: "favourite"}
		}
	}
	favourite := domain.ItemFavourite{UserID: userID, ItemID: itemID, ItemName: "kete"}
	m.items = append(m.items, favourite)
	return favourite, nil
}

func (m *mockFavourites) ListItemFavourites(ctx context.Context, userID int64, itemID string) ([]domain.ItemFavourite, error) {
	return m.items, nil
}

func (m *mockFavourites) DeleteItemFavourite(ctx context.Context, userID int64, itemID string) error {
	for i, f := range m.items {
		if f.UserID == userID && f.ItemID == itemID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "favourite"}
}

func (m *mockFavourites) CreatePersonFavourite(ctx context.Context, userID int64, personID string) (domain.PersonFavourite, error) {
	return domain.PersonFavourite{UserID: userID, PersonID: personID}, nil
}

func (m *mockFavourites) ListPersonFavourites(ctx context.Context, userID int64, personID string) ([]domain.PersonFavourite, error) {
	return nil, nil
}

func (m *mockFavourites) DeletePersonFavourite(ctx context.Context, userID int64, personID string) error {
	return nil
}

type mockUsers struct {
	byEmail map[string]domain.User
}

func (m *mockUsers) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if _, exists := m.byEmail[user.Email]; exists {
		return domain.User{}, domain.ConflictError{Resource: "account"}
	}
	user.ID = 1
	return user, nil
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "account"}
	}
	return user, nil
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (domain.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "account"}
}

// --- helpers ---

func newTestServer(catalog *mockCatalog, favourites *mockFavourites, users *mockUsers) *echo.Echo {
	auth := service.NewAuthService("test-secret", time.Hour, nil)
	authMW := middleware.NewAuthMiddleware(auth)

	h := NewHandler(
		usecase.NewSearchUsecase(catalog),
		usecase.NewItemUsecase(catalog),
		usecase.NewPersonUsecase(catalog),
		usecase.NewImageUsecase(catalog, &mockImageGateway{}),
		usecase.NewFavouriteUsecase(favourites),
		usecase.NewUserUsecase(users),
		auth,
		time.Hour,
	)

	e := echo.New()
	h.RegisterRoutes(e, authMW)
	return e
}

// asUser stamps the requester identity the way IdentifyIdentity would.
func asUser(id int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := context.WithValue(c.Request().Context(), domain.RequesterIDCtxKey, id)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func doJSON(e *echo.Echo, method, target string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)
	return res
}

// --- tests ---

func TestHandleSearchPlumbing(t *testing.T) {
	catalog := &mockCatalog{}
	e := newTestServer(catalog, &mockFavourites{}, &mockUsers{})

	res := doJSON(e, http.MethodGet, "/search?category=3&category=5&sort=1&page%5Bsize%5D=2&page%5Bnumber%5D=0", nil)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	if catalog.searchPage.Size != 2 || catalog.searchPage.Number != 0 {
		t.Fatalf("page window not forwarded: %+v", catalog.searchPage)
	}
	if len(catalog.searchOrder) != 1 || catalog.searchOrder[0].Column != domain.ColName {
		t.Fatalf("sort code 1 must resolve to name ascending: %+v", catalog.searchOrder)
	}
	if len(catalog.searchFilter.Groups) != 1 || len(catalog.searchFilter.Groups[0].Conditions) != 2 {
		t.Fatalf("two category values must form one OR group: %+v", catalog.searchFilter.Groups)
	}

	var doc presenter.Document
	if err := json.Unmarshal(res.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid document: %v", err)
	}
	if doc.Meta["count"] != float64(41) {
		t.Fatalf("meta.count must carry the total, got %v", doc.Meta["count"])
	}
}

func TestHandleSearchRejectsMalformedFacet(t *testing.T) {
	e := newTestServer(&mockCatalog{}, &mockFavourites{}, &mockUsers{})

	res := doJSON(e, http.MethodGet, "/search?category=not-a-number", nil)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}

	var doc presenter.ErrorDocument
	json.Unmarshal(res.Body.Bytes(), &doc)
	if len(doc.Errors) != 1 || doc.Errors[0].Source == nil || doc.Errors[0].Source.Parameter != "category" {
		t.Fatalf("error must point at the category parameter: %+v", doc.Errors)
	}
}

func TestHandleItemNotFound(t *testing.T) {
	e := newTestServer(&mockCatalog{}, &mockFavourites{}, &mockUsers{})

	res := doJSON(e, http.MethodGet, "/item/does-not-exist", nil)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestHandleItemDocumentShape(t *testing.T) {
	e := newTestServer(&mockCatalog{}, &mockFavourites{}, &mockUsers{})

	res := doJSON(e, http.MethodGet, "/item/i1", nil)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var doc struct {
		Data struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		} `json:"data"`
		Meta struct {
			RelatedObjects json.RawMessage `json:"relatedObjects"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid document: %v", err)
	}
	if doc.Data.Type != "item" || doc.Data.ID != "i1" {
		t.Fatalf("unexpected primary resource: %+v", doc.Data)
	}
	if len(doc.Meta.RelatedObjects) == 0 {
		t.Fatalf("detail responses must carry meta.relatedObjects")
	}
}

func TestHandleImageServesBytesWithETag(t *testing.T) {
	e := newTestServer(&mockCatalog{}, &mockFavourites{}, &mockUsers{})

	res := doJSON(e, http.MethodGet, "/image/i1/0", nil)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if ct := res.Header().Get(echo.HeaderContentType); ct != "image/jpeg" {
		t.Fatalf("upstream content type must pass through, got %s", ct)
	}
	etag := res.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("response must carry an ETag")
	}
	if res.Body.String() != "image-bytes:/0.jpg" {
		t.Fatalf("unexpected body: %s", res.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/image/i1/0", nil)
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Fatalf("matching etag must yield 304, got %d", rec.Code)
	}
}

func TestHandleImageRejectsBadIndex(t *testing.T) {
	e := newTestServer(&mockCatalog{}, &mockFavourites{}, &mockUsers{})

	res := doJSON(e, http.MethodGet, "/image/i1/banana", nil)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestHandleLoginUnknownEmail(t *testing.T) {
	e := newTestServer(&mockCatalog{}, &mockFavourites{}, &mockUsers{byEmail: map[string]domain.User{}})

	res := doJSON(e, http.MethodPost, "/login", loginRequest{Email: "nobody@example.com", Password: "pw"})

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	var doc presenter.ErrorDocument
	json.Unmarshal(res.Body.Bytes(), &doc)
	if len(doc.Errors) != 1 || doc.Errors[0].Source == nil || doc.Errors[0].Source.Parameter != "email" {
		t.Fatalf("error must point at the email parameter: %+v", doc.Errors)
	}
}

func TestHandleLoginWrongPassword(t *testing.T) {
	auth := service.NewAuthService("test-secret", time.Hour, nil)
	hash, err := auth.HashPassword("correct")
	if err != nil {
		t.Fatal(err)
	}

	users := &mockUsers{byEmail: map[string]domain.User{
		"user@example.com": {ID: 1, Email: "user@example.com", PasswordHash: hash},
	}}
	e := newTestServer(&mockCatalog{}, &mockFavourites{}, users)

	res := doJSON(e, http.MethodPost, "/login", loginRequest{Email: "user@example.com", Password: "wrong"})

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	var doc presenter.ErrorDocument
	json.Unmarshal(res.Body.Bytes(), &doc)
	if len(doc.Errors) != 1 || doc.Errors[0].Source == nil || doc.Errors[0].Source.Parameter != "password" {
		t.Fatalf("error must point at the password parameter: %+v", doc.Errors)
	}
}

func TestFavouritesRequireIdentity(t *testing.T) {
	e := newTestServer(&mockCatalog{}, &mockFavourites{}, &mockUsers{})

	res := doJSON(e, http.MethodGet, "/favourite/item", nil)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}

func TestFavouriteItemLifecycle(t *testing.T) {
	favourites := &mockFavourites{}
	e := newTestServer(&mockCatalog{}, favourites, &mockUsers{})
	e.Use(asUser(7))

	// empty list is not-found
	res := doJSON(e, http.MethodGet, "/favourite/item", nil)
	if res.Code != http.StatusNotFound {
		t.Fatalf("empty favourites must yield 404, got %d", res.Code)
	}

	res = doJSON(e, http.MethodPost, "/favourite/item/i1", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	// second create of the same pair conflicts
	res = doJSON(e, http.MethodPost, "/favourite/item/i1", nil)
	if res.Code != http.StatusConflict {
		t.Fatalf("duplicate favourite must yield 409, got %d", res.Code)
	}

	res = doJSON(e, http.MethodGet, "/favourite/item", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	res = doJSON(e, http.MethodDelete, "/favourite/item/i1", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	res = doJSON(e, http.MethodDelete, "/favourite/item/i1", nil)
	if res.Code != http.StatusNotFound {
		t.Fatalf("deleting a missing favourite must yield 404, got %d", res.Code)
	}
}
