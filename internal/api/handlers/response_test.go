package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_Statuses(t *testing.T) {
	tests := []struct {
		name        string
		respond     func(w http.ResponseWriter)
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "bad request",
			respond:     func(w http.ResponseWriter) { RespondBadRequest(w, "дата обязательна") },
			wantStatus:  http.StatusBadRequest,
			wantMessage: "дата обязательна",
		},
		{
			name:        "conflict",
			respond:     func(w http.ResponseWriter) { RespondConflict(w, "вытеснен") },
			wantStatus:  http.StatusConflict,
			wantMessage: "вытеснен",
		},
		{
			name:        "internal",
			respond:     RespondInternalError,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: msgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.respond(rec)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Error)
		})
	}
}

func TestRespondJSON_NilPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
