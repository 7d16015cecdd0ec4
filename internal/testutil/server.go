package testutil

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"taskboard/internal/mockapi"
)

// TestToken is pre-issued by NewServer.
const TestToken = "test-token"

// NewServer starts a mock task API that accepts TestToken. It is closed
// when the test ends.
func NewServer(t *testing.T, opts ...mockapi.Option) (*mockapi.Server, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	opts = append([]mockapi.Option{mockapi.WithToken(TestToken, "tester")}, opts...)
	api := mockapi.New(opts...)
	ts := httptest.NewServer(api.Handler())
	t.Cleanup(ts.Close)
	return api, ts
}
