package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/transfer-calculator/internal/calculator"
	"github.com/anyulbade/transfer-calculator/internal/handoff"
	"github.com/anyulbade/transfer-calculator/internal/middleware"
	"github.com/anyulbade/transfer-calculator/internal/repository"
	"github.com/anyulbade/transfer-calculator/internal/service"
	"github.com/anyulbade/transfer-calculator/internal/session"
)

type testEnv struct {
	router     *gin.Engine
	sessions   *session.Registry
	contentDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	currencies := service.NewCurrencyService(repository.NewStaticCatalogRepository())
	require.NoError(t, currencies.Reload(context.Background()))
	discounts := service.NewDiscountService(currencies)
	fees := service.NewFeeService(currencies, discounts)
	errs := service.NewErrorService(currencies).WithWaitingHours(func() int { return 3 })

	sessions := session.NewRegistry(calculator.Deps{
		Currencies: currencies,
		Fees:       fees,
		Errors:     errs,
	})
	t.Cleanup(sessions.CloseAll)

	handoffSvc := handoff.NewService(handoff.NewMemoryStore(), time.Hour)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fees.md"), []byte("# Fees\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "guides"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guides", "large.md"), []byte("# Large transfers\n"), 0o644))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	RegisterRoutes(router, Handlers{
		Health:     NewHealthHandler("static", nil),
		Currency:   NewCurrencyHandler(currencies),
		Fee:        NewFeeHandler(fees, discounts, errs),
		Calculator: NewCalculatorHandler(sessions, handoffSvc),
		Handoff:    NewHandoffHandler(handoffSvc),
		Markdown:   NewMarkdownHandler(dir),
	})

	return &testEnv{router: router, sessions: sessions, contentDir: dir}
}

func (e *testEnv) do(t *testing.T, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	switch b := body.(type) {
	case nil:
		buf = &bytes.Buffer{}
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		buf = bytes.NewBuffer(raw)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, buf)
	req.Header.Set("Content-Type", "application/json")
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
