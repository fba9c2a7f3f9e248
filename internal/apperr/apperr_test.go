package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("name is required"), http.StatusBadRequest},
		{"not found", NotFound("account not found"), http.StatusNotFound},
		{"external", External("api down", errors.New("timeout")), http.StatusBadGateway},
		{"persistence", Persistence("write failed", errors.New("disk")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("handler: %w", NotFound("goal not found")), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("HTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", Validation("bad input"))
	if !IsKind(err, KindValidation) {
		t.Fatal("wrapped validation error not detected")
	}
	if IsKind(err, KindNotFound) {
		t.Fatal("wrong kind matched")
	}
	if IsKind(errors.New("plain"), KindValidation) {
		t.Fatal("plain error must not match any kind")
	}
}

func TestErrorMessage(t *testing.T) {
	e := External("brokerage API error", errors.New("status 500"))
	if e.Error() != "brokerage API error: status 500" {
		t.Fatalf("unexpected message %q", e.Error())
	}
	if Validation("amount must be positive").Error() != "amount must be positive" {
		t.Fatal("bare message must render as-is")
	}
}
