package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/clinic-api/internal/model"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

func testContext(target string, params gin.Params) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = params
	return c
}

func TestParseID(t *testing.T) {
	tests := []struct {
		value string
		want  int64
		ok    bool
	}{
		{"42", 42, true},
		{"abc", 0, false},
		{"0", 0, false},
		{"-3", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		c := testContext("/", gin.Params{{Key: "id", Value: tt.value}})
		id, err := ParseID(c, "id", "doctor")
		if tt.ok {
			assert.NoError(t, err, tt.value)
			assert.Equal(t, tt.want, id)
			continue
		}
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), tt.value)
		assert.EqualError(t, err, "Invalid doctor ID")
	}
}

func TestPageFromQuery(t *testing.T) {
	assert.Equal(t, model.Page{Page: 1, Limit: 10}, PageFromQuery(testContext("/", nil)))
	assert.Equal(t, model.Page{Page: 3, Limit: 25}, PageFromQuery(testContext("/?page=3&limit=25", nil)))
	assert.Equal(t, model.Page{Page: 1, Limit: 100}, PageFromQuery(testContext("/?page=x&limit=500", nil)))
}
