//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/handler/api"
	"travel-kernel/internal/handler/httperr"
	resdto "travel-kernel/internal/handler/dto/response"
	"travel-kernel/internal/usecase/commands"
	"travel-kernel/internal/usecase/queries"
	"travel-kernel/internal/usecase/shared"
	"travel-kernel/tests/common/builder"
	"travel-kernel/tests/common/helper"
	"travel-kernel/tests/common/httptest"
	commandsmock "travel-kernel/tests/mock/commands"
	queriesmock "travel-kernel/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
}

func (s *BookingHandlerTestSuite) SetupTest() {
	s.router = newTestRouter()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)

	h := api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.router.POST("/bookings/fail", fakeAuth, h.Fail)
	s.router.POST("/bookings/expire", fakeAuth, h.Expire)
	s.router.GET("/bookings/user/:userId", fakeAuth, h.ListByUser)
	s.router.GET("/bookings/:bookingId", fakeAuth, h.Get)
	s.router.DELETE("/bookings/:bookingId", fakeAuth, h.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestGet() {
	b := builder.NewBookingBuilder().Build()
	actor := user.Actor{UserID: "user-1", Role: user.RoleUser}

	s.Run("success: returns the booking", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), actor, b.ID()).Return(queries.NewBookingView(b), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+b.ID(), nil, "user-1")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.ID(), body.ID)
		s.Equal("hotel", body.Variant)
		s.Equal(b.TotalAmount().Cents(), body.TotalAmountCents)
		s.Require().NotNil(body.CheckIn)
		s.True(builder.Day(2024, 12, 1).Equal(*body.CheckIn))
	})

	s.Run("error: maps query errors", func() {
		testCases := []struct {
			name   string
			err    error
			status int
			code   string
		}{
			{name: "missing booking", err: booking.ErrNotFound, status: http.StatusNotFound, code: httperr.CodeNotFound},
			{name: "foreign booking", err: queries.ErrAccessDenied, status: http.StatusForbidden, code: httperr.CodeForbidden},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().Get(gomock.Any(), gomock.Any(), "b-x").Return(nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/b-x", nil, "user-1")
				helper.AssertEnvelope(s.T(), rec, tc.status, tc.code)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	cancelled := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).Build()

	s.Run("success: lists every cancelled booking", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), cancelled.ID()).
			Return([]*booking.Booking{cancelled}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/"+cancelled.ID(), nil, "user-1")

		var body resdto.CancelResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Cancelled, 1)
		s.Equal("cancelled", body.Cancelled[0].Status)
	})

	s.Run("error: terminal booking is 409", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), "b-1").Return(nil, booking.ErrAlreadyTerminal)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/b-1", nil, "user-1")
		helper.AssertEnvelope(s.T(), rec, http.StatusConflict, httperr.CodeConflict)
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/b-1", nil, "")
		helper.AssertEnvelope(s.T(), rec, http.StatusUnauthorized, httperr.CodeUnauthorized)
	})
}

func (s *BookingHandlerTestSuite) TestListByUser() {
	s.Run("success: forwards the filter", func() {
		b := builder.NewBookingBuilder().WithBilling("bill-1").WithStatus(booking.StatusConfirmed).Build()
		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), gomock.Any(), "user-1", shared.BookingFilter{Status: booking.StatusConfirmed, BillingID: "bill-1"}).
			Return(queries.NewBookingViews([]*booking.Booking{b}), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/user/user-1?status=confirmed&billingId=bill-1", nil, "user-1")

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal("bill-1", body[0].BillingID)
	})

	s.Run("success: empty list is an empty array", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), gomock.Any(), "user-1", shared.BookingFilter{}).
			Return([]*queries.BookingView{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/user/user-1", nil, "user-1")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("error: invalid status is 400", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), gomock.Any(), "user-1", gomock.Any()).
			Return(nil, booking.ErrInvalidStatus)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/user/user-1?status=lost", nil, "user-1")
		env := helper.AssertEnvelope(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation)
		s.Equal("status", env.Error.Field)
	})
}

func (s *BookingHandlerTestSuite) TestFail() {
	s.Run("success: reports the modified count", func() {
		s.mockCommands.EXPECT().FailMany(gomock.Any(), []string{"b-1", "b-2"}).Return(int64(1), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/fail",
			map[string]any{"bookingIds": []string{"b-1", "b-2"}}, "ops:admin")

		var body resdto.FailBookingsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(1), body.ModifiedCount)
	})

	s.Run("error: empty id list is 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/fail",
			map[string]any{"bookingIds": []string{}}, "ops:admin")
		helper.AssertEnvelope(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation)
	})

	s.Run("error: blank ids are rejected by the usecase", func() {
		s.mockCommands.EXPECT().FailMany(gomock.Any(), []string{""}).Return(int64(0), commands.ErrNoBookings)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/fail",
			map[string]any{"bookingIds": []string{""}}, "ops:admin")
		env := helper.AssertEnvelope(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation)
		s.Equal("bookingIds", env.Error.Field)
	})
}

func (s *BookingHandlerTestSuite) TestExpire() {
	s.Run("success: no body uses the configured horizon", func() {
		s.mockCommands.EXPECT().ExpireStale(gomock.Any(), time.Duration(0)).Return([]string{"b-1"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/expire", nil, "ops:admin")

		var body resdto.ExpireBookingsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]string{"b-1"}, body.ExpiredIDs)
	})

	s.Run("success: minutes override the horizon", func() {
		s.mockCommands.EXPECT().ExpireStale(gomock.Any(), 30*time.Minute).Return([]string{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/expire",
			map[string]any{"minutes": 30}, "ops:admin")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: non-positive minutes are 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/expire",
			map[string]any{"minutes": 0}, "ops:admin")
		helper.AssertEnvelope(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation)
	})
}
