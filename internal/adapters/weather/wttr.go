package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// condensed one-line format: condition, temperature, wind
const conditionsFormat = "%C %t %w"

// Wttr fetches a short plain-text weather summary from a wttr.in-style
// endpoint. The location is passed through verbatim; interpreting it is
// entirely the provider's business.
type Wttr struct {
	baseURL string
}

func NewWttr(baseURL string) *Wttr {
	return &Wttr{baseURL: strings.TrimRight(baseURL, "/")}
}

func (w *Wttr) CurrentConditions(ctx context.Context, location string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s?format=%s",
		w.baseURL, url.PathEscape(location), url.QueryEscape(conditionsFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		err = fmt.Errorf("error creating weather request: %w", err)
		log.Error().Err(err).Str("location", location).Send()
		return "", err
	}

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing weather request: %w", err)
		log.Error().Err(err).Str("location", location).Send()
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status code from weather provider: %d", res.StatusCode)
		log.Error().Err(err).Str("location", location).Send()
		return "", err
	}

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		err = fmt.Errorf("error reading weather response: %w", err)
		log.Error().Err(err).Str("location", location).Send()
		return "", err
	}

	return strings.TrimSpace(string(buf)), nil
}
