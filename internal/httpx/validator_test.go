package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleReq struct {
	Title  string  `json:"title" validate:"required,max=10"`
	ISBN   string  `json:"isbn" validate:"required,isbn"`
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, ValidateStruct(sampleReq{Title: "Dune", ISBN: "978-0-441-17271-9", Rating: 4.5}))
		assert.Empty(t, ValidateStruct(sampleReq{Title: "Dune", ISBN: "044117271X"}))
	})

	t.Run("invalid", func(t *testing.T) {
		details := ValidateStruct(sampleReq{ISBN: "123", Rating: 7})

		fields := map[string]string{}
		for _, d := range details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "title is required", fields["title"])
		assert.Contains(t, fields["isbn"], "valid ISBN")
		assert.Equal(t, "rating is out of range", fields["rating"])
	})
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("bad json", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
		var req sampleReq

		assert.False(t, DecodeAndValidate(w, r, &req))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "BAD_REQUEST")
	})

	t.Run("validation error", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Dune"}`))
		var req sampleReq

		assert.False(t, DecodeAndValidate(w, r, &req))
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("ok", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Dune","isbn":"9780441172719","rating":3}`))
		var req sampleReq

		assert.True(t, DecodeAndValidate(w, r, &req))
		assert.Equal(t, "Dune", req.Title)
	})
}
