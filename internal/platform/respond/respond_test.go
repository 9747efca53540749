// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/pkg/pagination"
)

func TestError_Envelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not_found", apperr.NotFound("Chapter"), http.StatusNotFound, apperr.CodeNotFound},
		{"ordinal_conflict", apperr.OrdinalConflict("Chapter", nil), http.StatusConflict, apperr.CodeOrdinalConflict},
		{"partial_cascade", apperr.PartialCascadeFailure(3, true, errors.New("disk full")), http.StatusInternalServerError, apperr.CodePartialCascadeFailure},
		{"plain_error", errors.New("boom"), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantCode, envelope.Code)
			assert.NotContains(t, envelope.Error, "boom")
			assert.NotContains(t, envelope.Error, "disk full")
		})
	}
}

func TestError_ValidationDetails(t *testing.T) {
	recorder := httptest.NewRecorder()
	err := apperr.ValidationError("Invalid input", apperr.FieldError{Field: "title", Message: "This field is required"})
	respond.Error(recorder, httptest.NewRequest(http.MethodPost, "/", nil), err)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t,
		`{"error":"Invalid input","code":"VALIDATION_ERROR","details":[{"field":"title","message":"This field is required"}]}`,
		recorder.Body.String(),
	)
}

func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []string{"a"}, pagination.NewMeta(1, 1, 3))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"data":["a"]`)
	assert.Contains(t, recorder.Body.String(), `"total":3`)
}

func TestError_RequestID(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithRequestID(request.Context(), "req-42"))

	recorder := httptest.NewRecorder()
	respond.Error(recorder, request, apperr.NotFound("Paragraph"))

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "req-42", envelope.RequestID)
	assert.Equal(t, "Paragraph not found", envelope.Error)
}
