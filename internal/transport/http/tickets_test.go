package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/openvenue/mintgate/internal/app"
	"github.com/openvenue/mintgate/internal/domain"
)

func TestHandleIssueTicket(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	ticket := domain.Ticket{
		ID:           "ticket-1",
		CollectionID: "collection-1",
		Owner:        "buyer-1",
		Name:         "Launch Party #2",
		URI:          "https://example.com/ticket.json",
		Attributes: []domain.Attribute{
			{Key: domain.AttrTicketNumber, Value: "2"},
			{Key: domain.AttrPrice, Value: "500"},
			{Key: domain.AttrRow, Value: "A"},
		},
		Delegates: []domain.Delegate{
			{Kind: domain.DelegateFreeze, Frozen: false},
			{Kind: domain.DelegateBurn},
			{Kind: domain.DelegateTransfer},
		},
		AppData: []domain.AppDataRegistration{
			{DataAuthority: "venue-1", Schema: domain.AppDataSchemaBinary},
		},
		CreatedAt: now,
	}

	const validBody = `{
		"collection_id": "collection-1",
		"marketplace": "main-stage",
		"organizer_id": "organizer-1",
		"buyer_id": "buyer-1",
		"name": "Launch Party #2",
		"uri": "https://example.com/ticket.json",
		"price": 500,
		"venue_authority": "venue-1",
		"row": "A"
	}`

	tests := []struct {
		name           string
		method         string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "created",
			method:         http.MethodPost,
			body:           validBody,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"key":"Ticket Number","value":"2"`,
		},
		{
			name:           "method not allowed",
			method:         http.MethodGet,
			body:           validBody,
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "invalid body",
			method:         http.MethodPost,
			body:           `{"unknown_field": true}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing name",
			method:         http.MethodPost,
			body:           `{"collection_id":"c","marketplace":"m","organizer_id":"o","buyer_id":"b","uri":"u","venue_authority":"v"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `"code":"name_required"`,
		},
		{
			name:           "sold out",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     domain.ErrMaximumTicketsReached,
			expectedStatus: http.StatusConflict,
			expectedSubstr: `"code":"maximum_tickets_reached"`,
		},
		{
			name:           "insufficient funds",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     domain.ErrInsufficientFunds,
			expectedStatus: http.StatusPaymentRequired,
			expectedSubstr: `"code":"insufficient_funds"`,
		},
		{
			name:           "missing capacity attribute",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     domain.ErrMissingCapacityAttribute,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedSubstr: `"code":"missing_capacity_attribute"`,
		},
		{
			name:           "unknown collection",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     domain.ErrCollectionNotFound,
			expectedStatus: http.StatusNotFound,
			expectedSubstr: `"code":"collection_not_found"`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &stubIssuer{ticket: ticket, err: tc.serviceErr}
			handler := HandleIssueTicket(svc)

			req := httptest.NewRequest(tc.method, "/tickets", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
			if tc.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tc.expectedSubstr) {
				t.Fatalf("expected body to contain %q, got %s", tc.expectedSubstr, rec.Body.String())
			}
		})
	}

	t.Run("response carries frozen flag and app data", func(t *testing.T) {
		t.Parallel()

		frozen := ticket
		frozen.Delegates = []domain.Delegate{
			{Kind: domain.DelegateFreeze, Frozen: true},
			{Kind: domain.DelegateBurn},
			{Kind: domain.DelegateTransfer},
		}
		handler := HandleIssueTicket(&stubIssuer{ticket: frozen})

		req := httptest.NewRequest(http.MethodPost, "/tickets", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		body := rec.Body.String()
		if !strings.Contains(body, `"frozen":true`) {
			t.Fatalf("expected frozen flag in response, got %s", body)
		}
		if !strings.Contains(body, `"data_authority":"venue-1"`) {
			t.Fatalf("expected app data registration in response, got %s", body)
		}
	})
}

func TestHandleGetTicket(t *testing.T) {
	t.Parallel()

	ticket := domain.Ticket{
		ID:           "ticket-1",
		CollectionID: "collection-1",
		Owner:        "buyer-1",
		Name:         "Launch Party #2",
	}

	t.Run("found", func(t *testing.T) {
		handler := HandleGetTicket(&stubGetter{ticket: ticket})

		req := httptest.NewRequest(http.MethodGet, "/tickets/ticket-1", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"id":"ticket-1"`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("not found", func(t *testing.T) {
		handler := HandleGetTicket(&stubGetter{err: domain.ErrTicketNotFound})

		req := httptest.NewRequest(http.MethodGet, "/tickets/missing", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("bad path", func(t *testing.T) {
		handler := HandleGetTicket(&stubGetter{ticket: ticket})

		req := httptest.NewRequest(http.MethodGet, "/tickets/a/b", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}

type stubIssuer struct {
	ticket domain.Ticket
	err    error
}

func (s *stubIssuer) IssueTicket(_ context.Context, _ app.IssueTicketInput) (domain.Ticket, error) {
	if s.err != nil {
		return domain.Ticket{}, s.err
	}
	return s.ticket, nil
}

type stubGetter struct {
	ticket domain.Ticket
	err    error
}

func (s *stubGetter) GetTicket(_ context.Context, _ string) (domain.Ticket, error) {
	if s.err != nil {
		return domain.Ticket{}, s.err
	}
	return s.ticket, nil
}
