package lookup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AbdulBotz/nagi-osint-bot/internal/apperr"
	"github.com/AbdulBotz/nagi-osint-bot/pkg/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dispatcherFor(t *testing.T, baseURL string) *HTTPDispatcher {
	t.Helper()

	cfg := config.LookupConfig{
		MobileAPI:  baseURL + "/mobile/",
		GSTAPI:     baseURL + "/gst/",
		IFSCAPI:    baseURL + "/ifsc/",
		PincodeAPI: baseURL + "/pincode/",
		VehicleAPI: baseURL + "/vehicle/",
		IMEIAPI:    baseURL + "/imei/",
		Timeout:    2 * time.Second,
	}

	return NewHTTPDispatcher(cfg, testLogger())
}

func TestDispatch_Success(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"test","circle":"Delhi"}`))
	}))
	defer server.Close()

	d := dispatcherFor(t, server.URL)

	payload, err := d.Dispatch(context.Background(), TypeMobile, "9876543210")
	assert.NoError(t, err)
	assert.JSONEq(t, `{"name":"test","circle":"Delhi"}`, string(payload))
	assert.Equal(t, "/mobile/9876543210", requestedPath)
}

func TestDispatch_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	d := dispatcherFor(t, server.URL)

	_, err := d.Dispatch(context.Background(), TypeGST, "09AAYFK4129N1ZF")
	assert.Error(t, err)

	var appErr *apperr.Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindAPI, appErr.Kind)
	assert.Equal(t, http.StatusForbidden, appErr.Status)
	assert.False(t, appErr.Transient)
}

func TestDispatch_InvalidJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	d := dispatcherFor(t, server.URL)

	_, err := d.Dispatch(context.Background(), TypePincode, "110001")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindAPI, apperr.KindOf(err))
}

func TestDispatch_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	d := dispatcherFor(t, server.URL)

	_, err := d.Dispatch(context.Background(), TypeIMEI, "123456789012345")
	assert.Error(t, err)

	var appErr *apperr.Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindAPI, appErr.Kind)
	assert.True(t, appErr.Transient)
}
