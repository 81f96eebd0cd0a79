package keeper

import (
	"errors"
	"net/http"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
		code int
	}{
		{
			"not found",
			&NotFoundError{Kind: "task", ID: 3},
			"task 3 not found",
			http.StatusNotFound,
		},
		{
			"validation with field",
			&ValidationError{Kind: "grocery", Field: "quantity", Message: "quantity must be positive"},
			`validation failed for field "quantity": quantity must be positive`,
			http.StatusBadRequest,
		},
		{
			"already done",
			&AlreadyDoneError{Kind: "task", ID: 1, Verb: "completed"},
			"task 1 is already completed",
			http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			sc, ok := tt.err.(StatusCodeError)
			if !ok {
				t.Fatal("error does not implement StatusCodeError")
			}
			if sc.StatusCode() != tt.code {
				t.Errorf("StatusCode() = %d, want %d", sc.StatusCode(), tt.code)
			}
			if _, ok := tt.err.(HintError); !ok {
				t.Error("error does not implement HintError")
			}
		})
	}
}

func TestToErrorResponse(t *testing.T) {
	resp := ToErrorResponse(&NotFoundError{Kind: "card", ID: 9})
	if resp.Code != "not_found" || resp.ID != 9 || resp.StatusCode != http.StatusNotFound {
		t.Errorf("response = %+v", resp)
	}

	resp = ToErrorResponse(&ValidationError{Kind: "task", Field: "title", Message: "title is required"})
	if resp.Code != "validation_failed" || resp.Field != "title" {
		t.Errorf("response = %+v", resp)
	}

	resp = ToErrorResponse(&AlreadyDoneError{Kind: "task", ID: 2, Verb: "completed"})
	if resp.Code != "already_done" || resp.StatusCode != http.StatusConflict {
		t.Errorf("response = %+v", resp)
	}

	resp = ToErrorResponse(errors.New("boom"))
	if resp.Code != "internal" || resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("response = %+v", resp)
	}
}

func TestErrorsAs(t *testing.T) {
	var err error = &AlreadyDoneError{Kind: "task", ID: 1, Verb: "completed"}
	var target *AlreadyDoneError
	if !errors.As(err, &target) {
		t.Fatal("errors.As failed for AlreadyDoneError")
	}
}
