package pricefeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"tradeview"
)

// QuoteFeed fetches current prices from a JSON quote endpoint, one request
// per symbol. The price is extracted with a jsonpath expression so the feed
// adapts to different providers by configuration.
type QuoteFeed struct {
	// Client used for requests; http.DefaultClient when nil.
	Client *http.Client
	// URL is the quote endpoint with a %s placeholder for the symbol.
	URL string
	// Path is the jsonpath of the price inside the response document,
	// e.g. "$.data.price".
	Path string
}

func (q *QuoteFeed) Quote(ctx context.Context, symbol string) (tradeview.Money, bool) {
	price, err := q.fetch(ctx, symbol)
	if err != nil {
		// a feed miss degrades the dashboard, it never fails it
		log.Printf("quote feed: %v", err)
		return tradeview.Money{}, false
	}
	return price, true
}

func (q *QuoteFeed) fetch(ctx context.Context, symbol string) (tradeview.Money, error) {
	var jobj any
	if err := jwget(ctx, q.client(), fmt.Sprintf(q.URL, symbol), &jobj); err != nil {
		return tradeview.Money{}, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}

	jval, err := jsonpath.Get(q.Path, jobj)
	if err != nil {
		return tradeview.Money{}, fmt.Errorf("error parsing %q: %q %w", symbol, q.Path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer or
	// a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		// some quote APIs return the value as a string
		sval, ok := jval.(string)
		if !ok {
			return tradeview.Money{}, fmt.Errorf("cannot read value for %q: neither a float nor a string", symbol)
		}
		sval = strings.ReplaceAll(sval, ",", "")
		sval = strings.ReplaceAll(sval, " ", "")
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return tradeview.Money{}, fmt.Errorf("cannot read value for %q: invalid string %q: %w", symbol, sval, err)
		}
	}
	if val <= 0 {
		return tradeview.Money{}, fmt.Errorf("empty quote for %q", symbol)
	}
	return tradeview.CNY(val), nil
}

func (q *QuoteFeed) client() *http.Client {
	if q.Client != nil {
		return q.Client
	}
	return http.DefaultClient
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
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
