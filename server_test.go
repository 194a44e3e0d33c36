package main

import (
	"errors"
	"net/http"
	"testing"

	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"auth", utils.NewAuthError("unauthenticated"), http.StatusUnauthorized},
		{"validation", utils.NewValidationError("name is required"), http.StatusBadRequest},
		{"not found", utils.NewNotFoundError("record not found"), http.StatusNotFound},
		{"remote", utils.NewRemoteError("redis", errors.New("dial timeout")), http.StatusBadGateway},
		{"shared sentinel", utils.ErrorRecordNotFound, http.StatusNotFound},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusForError(tc.err); got != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" https://a.example , ,https://b.example ")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("splitAndTrim = %v", got)
	}
	if splitAndTrim("  ") != nil {
		t.Errorf("blank input should yield nil")
	}
}
