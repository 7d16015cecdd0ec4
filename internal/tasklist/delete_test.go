package tasklist_test

import (
	"errors"
	"testing"

	"taskboard/internal/service"
	"taskboard/internal/tasklist"
	"taskboard/internal/testutil"
)

func TestDeleteSession_ConfirmWithoutCandidate(t *testing.T) {
	svc := testutil.NewFakeService()
	s := tasklist.NewDeleteSession(svc, tasklist.NewList(svc))

	if s.Confirm() != nil {
		t.Error("expected no delete without a candidate")
	}
	if svc.RemoveCalls != 0 {
		t.Errorf("expected no remove calls, got %d", svc.RemoveCalls)
	}
}

func TestDeleteSession_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc, 2)
	list := loadedList(t, svc)
	s := tasklist.NewDeleteSession(svc, list)
	listCalls := svc.ListCalls

	s.Open(list.Result().Items[0])
	if c, ok := s.Candidate(); !ok || c.ID != "t02" {
		t.Fatalf("unexpected candidate %+v", c)
	}

	cmd := s.Confirm()
	if !s.IsDeleting() {
		t.Error("expected deleting while the remove is in flight")
	}
	refetch, handled := s.Update(run(t, cmd))
	if !handled {
		t.Fatal("expected DeletedMsg to be handled")
	}
	if s.IsOpen() || s.IsDeleting() {
		t.Error("expected session closed and idle")
	}
	if _, ok := s.Candidate(); ok {
		t.Error("expected candidate cleared")
	}
	list.Update(run(t, refetch))

	if got := svc.ListCalls - listCalls; got != 1 {
		t.Errorf("expected exactly one refetch, got %d", got)
	}
	if !sameIDs(list.Result().Items, "t01") {
		t.Errorf("unexpected items after delete %v", ids(list.Result().Items))
	}
}

func TestDeleteSession_FailureRaisesNotice(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc, 1)
	list := loadedList(t, svc)
	s := tasklist.NewDeleteSession(svc, list)
	listCalls := svc.ListCalls
	svc.RemoveErr = &service.TransportError{Method: "DELETE", Path: "/tasks/t01", Err: errors.New("timeout")}

	s.Open(list.Result().Items[0])
	cmd, _ := s.Update(run(t, s.Confirm()))

	if cmd != nil {
		t.Error("a failed delete must not refetch")
	}
	if got := s.Notice(); got != tasklist.DeleteFailedNotice {
		t.Errorf("expected notice %q, got %q", tasklist.DeleteFailedNotice, got)
	}
	if !s.IsOpen() {
		t.Error("expected session to stay open")
	}
	if _, ok := s.Candidate(); !ok {
		t.Error("expected candidate kept for a retry")
	}
	if svc.ListCalls != listCalls {
		t.Errorf("unexpected list calls %d", svc.ListCalls-listCalls)
	}

	s.DismissNotice()
	if s.Notice() != "" {
		t.Error("expected notice dismissed")
	}
}

func TestDeleteSession_ConfirmIgnoredWhileDeleting(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("a1", "Walk dog", service.StatusPending)
	s := tasklist.NewDeleteSession(svc, tasklist.NewList(svc))

	s.Open(task)
	if s.Confirm() == nil {
		t.Fatal("expected first confirm to run")
	}
	if s.Confirm() != nil {
		t.Error("expected second confirm to be ignored")
	}
}

func TestDeleteSession_Cancel(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("a1", "Walk dog", service.StatusPending)
	s := tasklist.NewDeleteSession(svc, tasklist.NewList(svc))

	s.Open(task)
	s.Close()

	if s.IsOpen() || s.Confirm() != nil {
		t.Error("expected nothing to delete after cancel")
	}
	if len(svc.Tasks()) != 1 {
		t.Error("cancel must not delete")
	}
}
