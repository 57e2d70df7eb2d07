package core

import (
	"net/http"
	"testing"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		code codes.Code
		want int
	}{
		{codes.InvalidArgument, http.StatusBadRequest},
		{codes.FailedPrecondition, http.StatusBadRequest},
		{codes.Unauthenticated, http.StatusUnauthorized},
		{codes.PermissionDenied, http.StatusForbidden},
		{codes.NotFound, http.StatusNotFound},
		{codes.ResourceExhausted, http.StatusTooManyRequests},
		{codes.Unavailable, http.StatusServiceUnavailable},
		{codes.DeadlineExceeded, http.StatusGatewayTimeout},
		{codes.Internal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			apiErr, ok := apierror.ParseError(status.Error(tt.code, "falhou"), false)
			if !ok {
				t.Fatalf("ParseError(%s) not recognised", tt.code)
			}
			if got := statusOf(apiErr); got != tt.want {
				t.Errorf("statusOf(%s) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestStatusOfHTTP(t *testing.T) {
	apiErr, ok := apierror.ParseError(&googleapi.Error{Code: http.StatusTooManyRequests, Message: "quota"}, false)
	if !ok {
		t.Fatal("ParseError(googleapi.Error) not recognised")
	}
	if got := statusOf(apiErr); got != http.StatusTooManyRequests {
		t.Errorf("statusOf() = %d, want 429", got)
	}
}
