package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestOkJson_KeepsOperators(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OkJson(c, map[string]string{"condition": "a < b && c > d"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"condition":"a < b && c > d"`)

	var resp Response[map[string]string]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, CodeOK, resp.Code)
	assert.True(t, resp.Success)
}

func TestError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
	}{
		{
			name:     "coded",
			err:      NewError("code-analyzer.syntax_error", "bad input"),
			wantCode: "code-analyzer.syntax_error",
			wantMsg:  "bad input",
		},
		{
			name:     "wrapped coded",
			err:      fmt.Errorf("resolve: %w", NewError("code-analyzer.bad_request", "missing code")),
			wantCode: "code-analyzer.bad_request",
			wantMsg:  "missing code",
		},
		{
			name:     "plain",
			err:      errors.New("boom"),
			wantCode: CodeError,
			wantMsg:  "boom",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			Error(c, http.StatusBadRequest, tt.err)

			var resp Response[any]
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMsg, resp.Message)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, CodeOf(tt.err))
		})
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(NewError("code-analyzer.syntax_error", "syntax error"), "line 2: unexpected ')'")
	assert.Equal(t, "code-analyzer.syntax_error", CodeOf(err))
	assert.Contains(t, err.Error(), "line 2")

	assert.Equal(t, CodeError, CodeOf(WithMessage(errors.New("x"), "y")))
}
