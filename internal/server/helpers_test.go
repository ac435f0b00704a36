package server

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 10, 0},
		{"explicit page and limit", "page=3&limit=20", 20, 40},
		{"first page", "page=1&limit=5", 5, 0},
		{"zero page falls back", "page=0&limit=5", 5, 0},
		{"negative page falls back", "page=-2&limit=5", 5, 0},
		{"zero limit falls back", "page=2&limit=0", 10, 10},
		{"limit capped at 100", "limit=500", 100, 0},
		{"non-numeric values fall back", "page=abc&limit=xyz", 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := fiber.New()
			var got Pagination
			app.Get("/", func(c *fiber.Ctx) error {
				got = parsePagination(c, 10)
				return c.SendStatus(fiber.StatusOK)
			})

			_, err := app.Test(httptest.NewRequest("GET", "/?"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}
