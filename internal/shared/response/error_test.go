package response

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"heightmap-generator/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStatusCodes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		err  error
		want int
	}{
		{errors.NotFoundf("missing"), http.StatusNotFound},
		{errors.Validation("bad name"), http.StatusBadRequest},
		{errors.InvalidConfigurationf("grid size 0"), http.StatusBadRequest},
		{errors.MethodNotAllowed(http.MethodPost), http.StatusMethodNotAllowed},
		{errors.DegenerateFieldf("constant"), http.StatusUnprocessableEntity},
		{errors.WrapExternal("disk", fmt.Errorf("io")), http.StatusServiceUnavailable},
		{errors.SamplerFailuref("overflow"), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), logger, tt.err)

		require.Equal(t, tt.want, rec.Code, tt.err.Error())

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, string(errors.GetType(tt.err)), body.Error)
		assert.Equal(t, tt.want, body.Code)
	}
}

func TestErrorWithMessageHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ErrorWithMessage(rec, httptest.NewRequest(http.MethodGet, "/", nil), logger,
		errors.WrapExternal("open /srv/hmaps/x.png", fmt.Errorf("permission denied")), "height map is unavailable")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "height map is unavailable", body.Message)
}
