package service

import (
	"context"
	"errors"
	"testing"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
	"github.com/99minutos/admin-console/internal/core/store"
	"github.com/99minutos/admin-console/internal/core/validation"
)

func bobRecord() domain.User {
	return domain.User{
		UserID: 2, Name: "Bob", Email: "b@x.com", Mobile: "2222222222", Password: "hidden",
		RoleID: domain.RoleUser, Status: domain.StatusInactive, StateID: 1, CityID: 10,
	}
}

func bobEdit() domain.UserEdit {
	return domain.UserEdit{
		Name: "Bob", Email: "b@x.com", Mobile: "2222222222",
		RoleID: domain.RoleUser, Status: domain.StatusActive, StateID: 1, CityID: 10,
	}
}

func newUserService(t *testing.T, api *stubAPI, audit ports.AuditSink) (*UserService, *store.UserStore) {
	t.Helper()
	st := store.New(api, discardLogger)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("initial load: %v", err)
	}
	return NewUserService(st, audit, validation.New(), discardLogger), st
}

func TestUserService_Edit_MergesOverFetchedRecord(t *testing.T) {
	var sent domain.User
	api := &stubAPI{
		listFn: func(context.Context) ([]domain.User, error) { return []domain.User{bobRecord()}, nil },
		editFn: func(_ context.Context, u domain.User) (*domain.User, error) {
			sent = u
			return &u, nil
		},
	}
	audit := &stubAudit{}
	svc, _ := newUserService(t, api, audit)

	got, err := svc.Edit(context.Background(), "root", 2, bobEdit())
	if err != nil {
		t.Fatalf("Edit returned error: %v", err)
	}
	if sent.UserID != 2 || sent.Password != "hidden" || sent.Status != domain.StatusActive {
		t.Fatalf("merged record wrong: %+v", sent)
	}
	if got.Status != domain.StatusActive {
		t.Fatalf("unexpected result: %+v", got)
	}
	if api.calls["list"] != 2 {
		t.Fatalf("expected reload after edit, list calls = %d", api.calls["list"])
	}
	if len(audit.entries) != 1 || audit.entries[0].Outcome != "ok" || audit.entries[0].Operator != "root" {
		t.Fatalf("unexpected audit: %+v", audit.entries)
	}
	if audit.entries[0].Before.Status != domain.StatusInactive || audit.entries[0].After.Status != domain.StatusActive {
		t.Fatalf("audit before/after wrong: %+v", audit.entries[0])
	}
}

func TestUserService_Edit_UnknownUser(t *testing.T) {
	api := &stubAPI{}
	svc, _ := newUserService(t, api, &stubAudit{})

	_, err := svc.Edit(context.Background(), "root", 77, bobEdit())
	if !errors.Is(err, domain.ErrNoTargetSelected) {
		t.Fatalf("expected ErrNoTargetSelected, got %v", err)
	}
	if api.calls["edit"] != 0 {
		t.Fatalf("remote must not be called")
	}
}

func TestUserService_Edit_InvalidFormNeverReachesStore(t *testing.T) {
	api := &stubAPI{listFn: func(context.Context) ([]domain.User, error) { return []domain.User{bobRecord()}, nil }}
	audit := &stubAudit{}
	svc, _ := newUserService(t, api, audit)

	edit := bobEdit()
	edit.Mobile = "12345"
	_, err := svc.Edit(context.Background(), "root", 2, edit)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if api.calls["edit"] != 0 || len(audit.entries) != 0 {
		t.Fatalf("validation failure must not reach the store")
	}
}

func TestUserService_Edit_RemoteFailureKeepsRecords(t *testing.T) {
	api := &stubAPI{
		listFn: func(context.Context) ([]domain.User, error) { return []domain.User{bobRecord()}, nil },
		editFn: func(context.Context, domain.User) (*domain.User, error) {
			return nil, &domain.APIError{StatusCode: 422, Message: "invalid city"}
		},
	}
	audit := &stubAudit{}
	svc, st := newUserService(t, api, audit)

	_, err := svc.Edit(context.Background(), "root", 2, bobEdit())
	if err == nil || err.Error() != "invalid city" {
		t.Fatalf("expected server message, got %v", err)
	}
	if st.Snapshot().Users[0] != bobRecord() {
		t.Fatalf("record set must be unchanged")
	}
	if api.calls["list"] != 1 {
		t.Fatalf("no reload expected after failed edit")
	}
	if len(audit.entries) != 1 || audit.entries[0].Outcome != "error" || audit.entries[0].Message != "invalid city" {
		t.Fatalf("unexpected audit: %+v", audit.entries)
	}
}

func TestUserService_Edit_ReloadFailureStillSucceeds(t *testing.T) {
	loads := 0
	api := &stubAPI{
		listFn: func(context.Context) ([]domain.User, error) {
			loads++
			if loads > 1 {
				return nil, errBoom
			}
			return []domain.User{bobRecord()}, nil
		},
		editFn: func(_ context.Context, u domain.User) (*domain.User, error) { return &u, nil },
	}
	svc, st := newUserService(t, api, nil)

	if _, err := svc.Edit(context.Background(), "", 2, bobEdit()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Snapshot().Users[0].Status != domain.StatusActive {
		t.Fatalf("update must be applied even if reload fails")
	}
}
