package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/admin-console/internal/core/domain"
)

func TestReferenceHandler_States(t *testing.T) {
	e := newEcho()
	h := NewReferenceHandler(&stubReferenceService{states: sampleStates})

	rec := httptest.NewRecorder()
	if err := h.States(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/states", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var got []domain.State
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || len(got) != 2 {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestReferenceHandler_Cities(t *testing.T) {
	e := newEcho()
	h := NewReferenceHandler(&stubReferenceService{cities: sampleCities})

	rec := httptest.NewRecorder()
	if err := h.Cities(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/cities?state_id=2", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var got []domain.City
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0].City != "Kochi" {
		t.Fatalf("unexpected cities: %+v", got)
	}
}

func TestReferenceHandler_Cities_BadStateID(t *testing.T) {
	e := newEcho()
	h := NewReferenceHandler(&stubReferenceService{})

	err := h.Cities(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/cities?state_id=abc", nil), httptest.NewRecorder()))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestReferenceHandler_PropagatesRemoteFailure(t *testing.T) {
	e := newEcho()
	h := NewReferenceHandler(&stubReferenceService{err: domain.ErrTransport})

	err := h.States(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/states", nil), httptest.NewRecorder()))
	if status, _, _ := ErrorStatus(err); status != http.StatusBadGateway {
		t.Fatalf("expected 502 mapping, got %v", err)
	}
}
