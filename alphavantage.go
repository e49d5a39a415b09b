package cgt

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
)

// This file implements the price-quote collaborator on top of the
// AlphaVantage API. Quotes only feed the unrealized-position estimates: a
// provider failure is fatal for the estimate request but never touches the
// realized records.

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// get from disk
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Info().Str("method", resp.Request.Method).Str("host", resp.Request.URL.Host).Str("status", resp.Status).Msg("quote request")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		log.Warn().Err(err).Msg("cache write failed (ignored)")
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// daily returns a client with a disk cache that expires every day.
func daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// AlphaVantage quotes assets in GBP through the alphavantage.co API.
type AlphaVantage struct {
	apiKey string
	client *http.Client
}

// NewAlphaVantage returns a quoter caching its responses for a day.
func NewAlphaVantage(apiKey string) *AlphaVantage {
	return &AlphaVantage{apiKey: apiKey, client: daily()}
}

var _ Quoter = (*AlphaVantage)(nil)

// GetPrice returns the current unit price of the asset in GBP.
// Equities are quoted on the US market and converted with the current
// USD/GBP rate; crypto assets are quoted directly against GBP.
func (av *AlphaVantage) GetPrice(asset Asset) (Money, error) {
	switch asset.Kind {
	case Equity:
		usd, err := av.latestClose(asset.Symbol)
		if err != nil {
			return Money{}, err
		}
		rate, err := av.exchangeRate("USD", GBP)
		if err != nil {
			return Money{}, err
		}
		return M(usd.Mul(rate), GBP), nil
	case Crypto:
		rate, err := av.exchangeRate(asset.Symbol, GBP)
		if err != nil {
			return Money{}, err
		}
		return M(rate, GBP), nil
	default:
		return Money{}, fmt.Errorf("no quote source for asset kind %q", asset.Kind)
	}
}

// latestClose returns the most recent daily close of a US-listed symbol, in USD.
func (av *AlphaVantage) latestClose(symbol string) (decimal.Decimal, error) {
	addr := fmt.Sprintf(
		"https://www.alphavantage.co/query?function=TIME_SERIES_DAILY&symbol=%s&apikey=%s&outputsize=compact",
		url.QueryEscape(symbol), av.apiKey)

	var jobj any
	if err := jwget(av.client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("quoting %s: %w", symbol, err)
	}
	price, err := latestDailyClose(jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("quoting %s: %w", symbol, err)
	}
	return price, nil
}

// exchangeRate returns the current conversion rate between two currencies or
// from a crypto symbol to a currency.
func (av *AlphaVantage) exchangeRate(from, to string) (decimal.Decimal, error) {
	addr := fmt.Sprintf(
		"https://www.alphavantage.co/query?function=CURRENCY_EXCHANGE_RATE&from_currency=%s&to_currency=%s&apikey=%s",
		url.QueryEscape(from), url.QueryEscape(to), av.apiKey)

	var jobj any
	if err := jwget(av.client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("rate %s/%s: %w", from, to, err)
	}
	rate, err := realtimeExchangeRate(jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate %s/%s: %w", from, to, err)
	}
	return rate, nil
}

// latestDailyClose extracts the close of the most recent day from a
// TIME_SERIES_DAILY payload.
func latestDailyClose(jobj any) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(`$["Time Series (Daily)"]`, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("no daily time series in response: %w", err)
	}
	series, ok := jval.(map[string]any)
	if !ok || len(series) == 0 {
		return decimal.Zero, fmt.Errorf("daily time series is empty")
	}

	// The most recent day is the greatest date key.
	var latest string
	for day := range series {
		if day > latest {
			latest = day
		}
	}

	entry, ok := series[latest].(map[string]any)
	if !ok {
		return decimal.Zero, fmt.Errorf("malformed entry for %s", latest)
	}
	return parseJSONDecimal(entry["4. close"])
}

// realtimeExchangeRate extracts the rate from a CURRENCY_EXCHANGE_RATE payload.
func realtimeExchangeRate(jobj any) (decimal.Decimal, error) {
	path := `$["Realtime Currency Exchange Rate"]["5. Exchange Rate"]`
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("no exchange rate in response: %w", err)
	}
	return parseJSONDecimal(jval)
}

// parseJSONDecimal reads a decimal that AlphaVantage serializes as a string.
func parseJSONDecimal(jval any) (decimal.Decimal, error) {
	str, ok := jval.(string)
	if !ok {
		return decimal.Zero, fmt.Errorf("want a decimal string, got %T", jval)
	}
	return decimal.NewFromString(str)
}
