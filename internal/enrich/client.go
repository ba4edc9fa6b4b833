// Package enrich talks to the two remote word services: the synonym
// service ({base}/{word}/relatedWords) and the frequency service
// ({base}?sp={word}&md=f). Lookup failures degrade the affected word, never
// the batch.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/michellelius/word-visualisation/pkg/config"
	apperrors "github.com/michellelius/word-visualisation/pkg/errors"
	"github.com/michellelius/word-visualisation/pkg/metrics"
	"github.com/michellelius/word-visualisation/pkg/resilience"
)

const (
	serviceSynonyms  = "synonyms"
	serviceFrequency = "frequency"

	relationshipSynonym = "synonym"

	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 1 << 20
)

// SynonymSet is the flattened expansion of a word list. Duplicates are
// kept: a synonym reachable from several source words appears once per
// source, which weights it in the rendered cloud.
type SynonymSet []string

// FrequencyIndex maps each looked-up word to its corpus frequency score.
// Words the service could not score carry zero.
type FrequencyIndex map[string]float64

// Client issues lookups against both word services.
type Client struct {
	synBase     string
	synKey      string
	synTimeout  time.Duration
	freqBase    string
	freqTimeout time.Duration
	httpClient  *http.Client
	logger      *slog.Logger
	metrics     *metrics.Metrics
	flight      singleflight.Group
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics wires lookup counters and latency histograms.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New builds a Client from the two service configs.
func New(syn config.SynonymsConfig, freq config.FrequencyConfig, opts ...Option) *Client {
	c := &Client{
		synBase:     strings.TrimRight(syn.BaseURL, "/"),
		synKey:      syn.APIKey,
		synTimeout:  syn.Timeout,
		freqBase:    strings.TrimRight(freq.BaseURL, "/"),
		freqTimeout: freq.Timeout,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      slog.Default().With("component", "enrich-client"),
	}
	if c.synTimeout <= 0 {
		c.synTimeout = defaultTimeout
	}
	if c.freqTimeout <= 0 {
		c.freqTimeout = defaultTimeout
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type relatedWordGroup struct {
	RelationshipType string   `json:"relationshipType"`
	Words            []string `json:"words"`
}

type frequencyMatch struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Synonyms expands every word through the synonym service, strictly one
// request at a time. Only groups tagged as synonyms contribute; other
// relationship types (antonyms, hypernyms, rhymes) are ignored. A word
// whose lookup fails is logged and skipped.
func (c *Client) Synonyms(ctx context.Context, wordList []string) (SynonymSet, error) {
	out := make(SynonymSet, 0, len(wordList)*4)
	for _, word := range wordList {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		groups, err := c.relatedWords(ctx, word)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("synonym lookup skipped", "word", word, "error", err)
			c.countSkipped(serviceSynonyms, err)
			continue
		}
		for _, group := range groups {
			if group.RelationshipType != relationshipSynonym {
				continue
			}
			out = append(out, group.Words...)
		}
	}
	return out, nil
}

// Frequencies scores every word through the frequency service, all lookups
// in flight at once. Each input word yields exactly one entry; a failed or
// unknown word scores zero. Only cancellation of ctx fails the batch.
func (c *Client) Frequencies(ctx context.Context, wordList []string) (FrequencyIndex, error) {
	index := make(FrequencyIndex, len(wordList))
	if len(wordList) == 0 {
		return index, nil
	}

	type result struct {
		word  string
		score float64
		err   error
	}
	results := make([]result, len(wordList))
	var wg sync.WaitGroup
	for i, word := range wordList {
		wg.Add(1)
		go func(idx int, w string) {
			defer wg.Done()
			score, err := c.frequency(ctx, w)
			results[idx] = result{word: w, score: score, err: err}
		}(i, word)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.err != nil {
			c.logger.Warn("frequency lookup failed, scoring zero", "word", r.word, "error", r.err)
			c.countSkipped(serviceFrequency, r.err)
			index[r.word] = 0
			continue
		}
		index[r.word] = r.score
	}
	return index, nil
}

func (c *Client) relatedWords(ctx context.Context, word string) ([]relatedWordGroup, error) {
	rawURL := fmt.Sprintf("%s/%s/relatedWords?useCanonical=true&api_key=%s",
		c.synBase, url.PathEscape(word), url.QueryEscape(c.synKey))
	var groups []relatedWordGroup
	if err := c.getJSON(ctx, serviceSynonyms, c.synTimeout, rawURL, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// frequency coalesces concurrent lookups of the same word; duplicates in
// one batch and across serve-mode requests share a single upstream call.
func (c *Client) frequency(ctx context.Context, word string) (float64, error) {
	v, err, _ := c.flight.Do(word, func() (interface{}, error) {
		return c.lookupFrequency(ctx, word)
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

func (c *Client) lookupFrequency(ctx context.Context, word string) (float64, error) {
	rawURL := fmt.Sprintf("%s?sp=%s&md=f", c.freqBase, url.QueryEscape(word))
	var matches []frequencyMatch
	if err := c.getJSON(ctx, serviceFrequency, c.freqTimeout, rawURL, &matches); err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, nil
	}
	return matches[0].Score, nil
}

func (c *Client) getJSON(ctx context.Context, service string, timeout time.Duration, rawURL string, v any) error {
	start := time.Now()
	err := resilience.WithTimeout(ctx, timeout, service, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("%w: building request: %v", apperrors.ErrTransport, err)
		}
		req.Header.Set("Accept", "application/json")
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return err
			}
			return fmt.Errorf("%w: %v", apperrors.ErrTransport, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			return fmt.Errorf("%w: %s returned %s", apperrors.ErrServiceUnavailable, service, resp.Status)
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(v); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err)
		}
		return nil
	})
	c.observe(service, start, err)
	return err
}

func (c *Client) observe(service string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.LookupsTotal.WithLabelValues(service, apperrors.Classify(err)).Inc()
	c.metrics.LookupDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
}

func (c *Client) countSkipped(service string, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.WordsSkippedTotal.WithLabelValues(service, apperrors.Classify(err)).Inc()
}
