package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/documind-ai/documind/pkg/errors"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/chat/doc/ask", nil)
	NewResponse()(c)
	return c, w
}

// the two 409s (not indexed vs in-flight question) must stay
// distinguishable without parsing the message
func TestAPIErrorCarriesKind(t *testing.T) {
	c, w := newTestContext(t)

	APIError(c, errors.New("ChatLogic.retrieve.Query", "document is not indexed yet", nil).
		Code(http.StatusConflict).Kind(errors.KIND_NOT_INDEXED))

	require.Equal(t, http.StatusConflict, w.Code)

	var res Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, errors.KIND_NOT_INDEXED, res.Meta.Kind)
	assert.Equal(t, "document is not indexed yet", res.Meta.Message)
	assert.NotEmpty(t, res.Meta.RequestID)
}

func TestAPIErrorPlainErrorHasNoKind(t *testing.T) {
	c, w := newTestContext(t)

	APIError(c, fmt.Errorf("boom"))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var res Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Empty(t, res.Meta.Kind)
}
