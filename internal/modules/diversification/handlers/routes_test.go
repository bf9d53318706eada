package handlers

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	testingpkg "github.com/aristath/diversifier/internal/testing"
)

func TestRegisterRoutes(t *testing.T) {
	handler := NewHandler(failingEngine{}, 10, testingpkg.NewTestLogger())
	router := chi.NewRouter()

	assert.NotPanics(t, func() {
		handler.RegisterRoutes(router)
	}, "RegisterRoutes should not panic")

	routes := map[string]bool{}
	_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})

	for _, expected := range []string{
		"POST /diversification/score",
		"POST /diversification/look-through",
		"GET /diversification/classify/{identifier}",
		"GET /diversification/compositions/{identifier}",
	} {
		assert.True(t, routes[expected], expected)
	}
}
