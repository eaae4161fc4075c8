package server_test

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/virada/rolelist/internal/broadcast"
	"github.com/virada/rolelist/internal/database"
	"github.com/virada/rolelist/internal/server"
)

func TestRequestVersion(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/version").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func TestRequestHealth(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/health").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v struct {
			Status    string  `json:"status"`
			Timestamp string  `json:"timestamp"`
			Uptime    float64 `json:"uptime"`
		}
		err := json.Unmarshal(r.Body.Bytes(), &v)
		assert.NoError(t, err)
		assert.Equal(t, "ok", v.Status)
		assert.NotEmpty(t, v.Timestamp)
		assert.GreaterOrEqual(t, v.Uptime, 0.0)
	})
}

func setup() (engine *echo.Echo, ctrl server.Controller, r *gofight.RequestConfig, cleanup func()) {
	tmpfile, err := os.CreateTemp("", "rolelist.*.db")
	if err != nil {
		panic(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err := database.StormOpen(filename)
	if err != nil {
		panic(err)
	}

	ctrl = server.Controller{
		Version:  "test",
		Database: db,
		Hub:      broadcast.NewHub(),
	}
	engine = server.EchoEngine(ctrl)

	return engine, ctrl, gofight.New(), func() {
		db.Close()
		os.RemoveAll(filename)
	}
}
