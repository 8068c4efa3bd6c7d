package export

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/restoboard/restoboard/internal/config"
	"github.com/restoboard/restoboard/internal/kpi"
	"github.com/restoboard/restoboard/internal/models"
	"github.com/restoboard/restoboard/internal/service"
	"github.com/restoboard/restoboard/internal/utils"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// Digest pushes the weekly cross-store comparison to the configured delivery
// sink (the mail layer lives behind it). The payload is signed with
// HMAC-SHA256 so the sink can verify origin.
type Digest struct {
	c   HTTPClient
	svc *service.Dashboard
	cfg config.Config
	log *slog.Logger
}

func NewDigest(c HTTPClient, svc *service.Dashboard, cfg config.Config, log *slog.Logger) *Digest {
	return &Digest{c: c, svc: svc, cfg: cfg, log: log}
}

type digestPayload struct {
	WeekStart string                      `json:"week_start"`
	WeekEnd   string                      `json:"week_end"`
	Stores    []models.StoreComparisonRow `json:"stores"`
}

// SendWeekly builds and posts the digest for the week around anchor. Returns
// the number of stores included.
func (d *Digest) SendWeekly(ctx context.Context, anchor time.Time) (int, error) {
	if d.cfg.SinkURL == "" || d.cfg.SinkSecret == "" {
		return 0, errors.New("digest sink not configured")
	}
	rows, err := d.svc.CompareWeek(ctx, anchor)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	payload := digestPayload{
		WeekStart: kpi.WeekStart(anchor).Format(kpi.DateFormat),
		WeekEnd:   kpi.WeekEnd(anchor).Format(kpi.DateFormat),
		Stores:    rows,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	sig := Sign(d.cfg.SinkSecret, b)

	err = utils.NewBackoff(200*time.Millisecond, 2).Do(ctx, func(i int) error {
		if i > 0 {
			d.log.Warn("digest retry", slog.Int("attempt", i))
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.SinkURL, strings.NewReader(string(b)))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Signature", sig)
		resp, err := d.c.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return errors.New("digest sink non-2xx: " + resp.Status)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	d.log.Info("digest sent", slog.Int("stores", len(rows)))
	return len(rows), nil
}

// Sign computes the hex HMAC-SHA256 the sink checks on X-Signature.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
