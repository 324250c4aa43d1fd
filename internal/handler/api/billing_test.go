//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"travel-kernel/internal/domain/billing"
	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/handler/api"
	"travel-kernel/internal/handler/httperr"
	resdto "travel-kernel/internal/handler/dto/response"
	"travel-kernel/internal/usecase/queries"
	"travel-kernel/tests/common/builder"
	"travel-kernel/tests/common/helper"
	"travel-kernel/tests/common/httptest"
	queriesmock "travel-kernel/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BillingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockBillingQueries
}

func (s *BillingHandlerTestSuite) SetupTest() {
	s.router = newTestRouter()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockBillingQueries(s.mockCtrl)

	h := api.NewBillingHandler(s.mockQueries)
	s.router.GET("/billing/search", fakeAuth, h.Search)
	s.router.GET("/billing/user/:userId", fakeAuth, h.ListByUser)
	s.router.GET("/billing/:billingId", fakeAuth, h.Get)
}

func (s *BillingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBillingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BillingHandlerTestSuite))
}

func sampleBillView() *queries.BillView {
	return &queries.BillView{
		BillingID:       "bill-1",
		UserID:          "user-1",
		CheckoutID:      "co-1",
		PaymentMethod:   "credit_card",
		Status:          billing.StatusCompleted.String(),
		TransactionDate: time.Date(2024, 11, 20, 10, 5, 0, 0, time.UTC),
		TotalCents:      60000,
		Lines: []queries.BillLineView{
			{Variant: "hotel", ListingID: "hotel-1", BookingIDs: []string{"b-1", "b-2"}, AmountCents: 60000},
		},
		Items: []queries.BillItemView{
			{BookingID: "b-1", Variant: "hotel", AmountCents: 30000, Status: "Completed", Invoice: billing.InvoiceDetails{
				CardHolder: "Ada Lovelace", MaskedCard: "****-****-****-1111", ListingID: "hotel-1", Variant: listing.VariantHotel,
			}},
			{BookingID: "b-2", Variant: "hotel", AmountCents: 30000, Status: "Completed", Invoice: billing.InvoiceDetails{
				CardHolder: "Ada Lovelace", MaskedCard: "****-****-****-1111", ListingID: "hotel-1", Variant: listing.VariantHotel,
			}},
		},
	}
}

func (s *BillingHandlerTestSuite) TestGet() {
	s.Run("success: returns the bill with grouped lines", func() {
		s.mockQueries.EXPECT().ByBillingID(gomock.Any(), user.Actor{UserID: "user-1", Role: user.RoleUser}, "bill-1").
			Return(sampleBillView(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/billing/bill-1", nil, "user-1")

		var body resdto.BillResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("bill-1", body.BillingID)
		s.Equal(int64(60000), body.TotalCents)
		s.Require().Len(body.Lines, 1)
		s.Equal([]string{"b-1", "b-2"}, body.Lines[0].BookingIDs)
		s.Require().Len(body.Items, 2)
		s.Equal("****-****-****-1111", body.Items[0].Invoice.MaskedCard)
	})

	s.Run("error: unknown bill is 404", func() {
		s.mockQueries.EXPECT().ByBillingID(gomock.Any(), gomock.Any(), "bill-x").Return(nil, billing.ErrNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/billing/bill-x", nil, "user-1")
		helper.AssertEnvelope(s.T(), rec, http.StatusNotFound, httperr.CodeNotFound)
	})
}

func (s *BillingHandlerTestSuite) TestListByUser() {
	s.Run("success", func() {
		s.mockQueries.EXPECT().ByUser(gomock.Any(), gomock.Any(), "user-1").Return([]*queries.BillView{sampleBillView()}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/billing/user/user-1", nil, "user-1")

		var body []resdto.BillResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("error: another user's bills are 403", func() {
		s.mockQueries.EXPECT().ByUser(gomock.Any(), gomock.Any(), "user-2").Return(nil, queries.ErrAccessDenied)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/billing/user/user-2", nil, "user-1")
		helper.AssertEnvelope(s.T(), rec, http.StatusForbidden, httperr.CodeForbidden)
	})
}

func (s *BillingHandlerTestSuite) TestSearch() {
	s.Run("success: date range filter", func() {
		start := builder.Day(2024, 11, 1)
		end := builder.Day(2024, 11, 30)
		s.mockQueries.EXPECT().
			Search(gomock.Any(), user.Actor{UserID: "ops", Role: user.RoleAdmin}, billing.SearchFilter{
				Start:  &start,
				End:    &end,
				Status: billing.StatusCompleted,
			}).
			Return([]*queries.BillView{sampleBillView()}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/billing/search?start=2024-11-01&end=2024-11-30&status=Completed", nil, "ops:admin")
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("success: month filter", func() {
		s.mockQueries.EXPECT().
			Search(gomock.Any(), gomock.Any(), billing.SearchFilter{Month: 11, Year: 2024}).
			Return([]*queries.BillView{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/billing/search?month=11&year=2024", nil, "user-1")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("error: malformed date is 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/billing/search?start=11-01-2024", nil, "user-1")
		helper.AssertEnvelope(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation)
	})

	s.Run("error: incomplete range is 400 with field", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, billing.ErrSearchRange)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/billing/search?start=2024-11-01", nil, "user-1")
		env := helper.AssertEnvelope(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation)
		s.Equal("start", env.Error.Field)
	})
}
