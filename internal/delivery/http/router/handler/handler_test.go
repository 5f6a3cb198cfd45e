package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dezapego/internal/delivery/http/middleware"
	"dezapego/internal/delivery/http/validator"
	"dezapego/internal/domain/entity"
	"dezapego/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFeedUsecase struct {
	mock.Mock
}

func (m *mockFeedUsecase) GetFeed(ctx context.Context, input *usecase.FeedInput) (*usecase.FeedOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.FeedOutput), args.Error(1)
}

func (m *mockFeedUsecase) GetListing(ctx context.Context, listingID uuid.UUID, viewerID *uuid.UUID) (*usecase.FeedItem, error) {
	args := m.Called(ctx, listingID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.FeedItem), args.Error(1)
}

type mockEngagementUsecase struct {
	mock.Mock
}

func (m *mockEngagementUsecase) TrackEvent(ctx context.Context, input *usecase.TrackEventInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *mockEngagementUsecase) ToggleLike(ctx context.Context, userID, listingID uuid.UUID) (*usecase.ToggleLikeOutput, error) {
	args := m.Called(ctx, userID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.ToggleLikeOutput), args.Error(1)
}

func (m *mockEngagementUsecase) GetListingStats(ctx context.Context, listingID uuid.UUID) (*usecase.ListingStats, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.ListingStats), args.Error(1)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestFeedHandler_GetFeed_ParsesFilters(t *testing.T) {
	uc := new(mockFeedUsecase)
	handler := &FeedHandler{uc: uc, logger: slog.Default()}

	c, rec := newTestContext(t, http.MethodGet, "/api/listings?category=moveis&city=Campinas&limit=10&offset=20", "")

	uc.On("GetFeed", mock.Anything, mock.MatchedBy(func(input *usecase.FeedInput) bool {
		return input.Category != nil && *input.Category == entity.CategoryMoveis &&
			input.City == "Campinas" &&
			input.Limit == 10 &&
			input.Offset == 20 &&
			input.ViewerID == nil
	})).Return(&usecase.FeedOutput{Items: []*usecase.FeedItem{}}, nil)

	require.NoError(t, handler.GetFeed(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestFeedHandler_GetFeed_RejectsUnknownCategory(t *testing.T) {
	uc := new(mockFeedUsecase)
	handler := &FeedHandler{uc: uc, logger: slog.Default()}

	c, rec := newTestContext(t, http.MethodGet, "/api/listings?category=teleporters", "")

	require.NoError(t, handler.GetFeed(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "GetFeed", mock.Anything, mock.Anything)
}

func TestEngagementHandler_TrackEvent_AttributesViewer(t *testing.T) {
	uc := new(mockEngagementUsecase)
	handler := &EngagementHandler{uc: uc, logger: slog.Default()}

	listingID := uuid.New()
	viewer := uuid.New()

	c, rec := newTestContext(t, http.MethodPost, "/api/analytics",
		`{"listingId":"`+listingID.String()+`","action":"whatsapp_click"}`)
	c.Set(middleware.ContextKeyUserID, viewer)

	uc.On("TrackEvent", mock.Anything, mock.MatchedBy(func(input *usecase.TrackEventInput) bool {
		return input.ListingID == listingID &&
			input.EventType == entity.EventTypeWhatsAppClick &&
			input.UserID != nil && *input.UserID == viewer
	})).Return(nil)

	require.NoError(t, handler.TrackEvent(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true}`, rec.Body.String())
	uc.AssertExpectations(t)
}

func TestEngagementHandler_TrackEvent_RejectsMalformedID(t *testing.T) {
	uc := new(mockEngagementUsecase)
	handler := &EngagementHandler{uc: uc, logger: slog.Default()}

	c, rec := newTestContext(t, http.MethodPost, "/api/analytics",
		`{"listingId":"not-a-uuid","action":"view"}`)

	require.NoError(t, handler.TrackEvent(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "TrackEvent", mock.Anything, mock.Anything)
}

func TestListingHandler_CreateListing_RequiresAuth(t *testing.T) {
	handler := &ListingHandler{logger: slog.Default()}

	c, rec := newTestContext(t, http.MethodPost, "/api/listings", "")

	require.NoError(t, handler.CreateListing(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListingHandler_CreateListing_RejectsZeroPrice(t *testing.T) {
	handler := &ListingHandler{logger: slog.Default()}

	c, rec := newTestContext(t, http.MethodPost, "/api/listings", "title=Mesa+de+jantar&price=0&category=moveis")
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c.Set(middleware.ContextKeyUserID, uuid.New())

	require.NoError(t, handler.CreateListing(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
