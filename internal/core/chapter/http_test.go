// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/chapter"
)

func newRouter(f *fixture) http.Handler {
	router := chi.NewRouter()
	chapter.NewHandler(f.service).RegisterRoutes(router)
	return router
}

func serve(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

type chapterEnvelope struct {
	Data chapter.Chapter `json:"data"`
}

/*
TestHandler_CreateChapterNumber verifies chapter_number accepts numbers,
numeric strings and junk, falling back to auto-assignment for junk.
*/
func TestHandler_CreateChapterNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   int
	}{
		{name: "omitted", number: "", want: 1},
		{name: "null", number: `, "chapter_number": null`, want: 1},
		{name: "integer", number: `, "chapter_number": 5`, want: 5},
		{name: "numeric string", number: `, "chapter_number": "6"`, want: 6},
		{name: "junk string", number: `, "chapter_number": "abc"`, want: 1},
		{name: "fraction", number: `, "chapter_number": 2.5`, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(newFixture())

			body := `{"title": "Opening", "content": "One. Two."` + tt.number + `}`
			recorder := serve(t, router, http.MethodPost, "/books/"+bookID+"/chapters", body)
			require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

			var envelope chapterEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.want, envelope.Data.Number)
			assert.Len(t, envelope.Data.Paragraphs, 1)
		})
	}
}

func TestHandler_Lifecycle(t *testing.T) {
	router := newRouter(newFixture())

	recorder := serve(t, router, http.MethodPost, "/books/"+bookID+"/chapters", `{"title": "Opening", "content": "A. B."}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created chapterEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	path := "/chapters/" + created.Data.ID

	recorder = serve(t, router, http.MethodPut, path, `{"title": "Renamed"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	var updated chapterEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	assert.Equal(t, created.Data.ID, updated.Data.ID)
	assert.Equal(t, "Renamed", updated.Data.Title)

	recorder = serve(t, router, http.MethodGet, path+"/tree", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"sentences"`)

	recorder = serve(t, router, http.MethodGet, "/books/"+bookID+"/chapters?limit=10", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":1`)

	recorder = serve(t, router, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = serve(t, router, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"code":"NOT_FOUND"`)
}

func TestHandler_BadRequests(t *testing.T) {
	router := newRouter(newFixture())

	recorder := serve(t, router, http.MethodPost, "/books/"+bookID+"/chapters", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = serve(t, router, http.MethodPost, "/books/"+bookID+"/chapters", `{"title": ""}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"code":"VALIDATION_ERROR"`)
}
