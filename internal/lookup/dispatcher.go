package lookup

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/AbdulBotz/nagi-osint-bot/internal/apperr"
	"github.com/AbdulBotz/nagi-osint-bot/pkg/config"
	"github.com/AbdulBotz/nagi-osint-bot/pkg/metrics"
)

const defaultTimeout = 15 * time.Second

// Dispatcher validates input and issues lookup API calls.
type Dispatcher interface {
	Validate(t Type, raw string) (string, error)
	// Dispatch issues exactly one GET for the normalized input and returns
	// the raw JSON payload or a typed API failure. No retries, no backoff.
	Dispatch(ctx context.Context, t Type, normalized string) (json.RawMessage, error)
}

// HTTPDispatcher maps each lookup type to its configured base endpoint and
// appends the validated input verbatim.
type HTTPDispatcher struct {
	client *http.Client
	bases  map[Type]string
	log    *slog.Logger
}

// NewHTTPDispatcher constructs a dispatcher from the lookup configuration.
func NewHTTPDispatcher(cfg config.LookupConfig, log *slog.Logger) *HTTPDispatcher {
	if log == nil {
		log = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPDispatcher{
		client: &http.Client{Timeout: timeout},
		bases: map[Type]string{
			TypeMobile:  cfg.MobileAPI,
			TypeGST:     cfg.GSTAPI,
			TypeIFSC:    cfg.IFSCAPI,
			TypePincode: cfg.PincodeAPI,
			TypeVehicle: cfg.VehicleAPI,
			TypeIMEI:    cfg.IMEIAPI,
		},
		log: log,
	}
}

// Validate delegates to the package-level pattern check.
func (d *HTTPDispatcher) Validate(t Type, raw string) (string, error) {
	return Validate(t, raw)
}

// Dispatch issues the GET and classifies the outcome: 200 with valid JSON is
// a payload, any other status or transport failure is an API error.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, t Type, normalized string) (json.RawMessage, error) {
	start := time.Now()

	payload, err := d.call(ctx, t, normalized)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordLookup(string(t), status, time.Since(start))

	return payload, err
}

func (d *HTTPDispatcher) call(ctx context.Context, t Type, normalized string) (json.RawMessage, error) {
	url := d.bases[t] + normalized

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.APITransient(err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Warn("lookup API call failed",
			slog.String("type", string(t)),
			slog.Any("error", err),
		)
		return nil, apperr.APITransient(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.APIStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.APITransient(err)
	}

	if !json.Valid(body) {
		return nil, apperr.APIParse(errInvalidJSON)
	}

	return json.RawMessage(body), nil
}

type invalidJSONError struct{}

func (invalidJSONError) Error() string { return "response body is not valid JSON" }

var errInvalidJSON = invalidJSONError{}
