package fetch

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"espritjobs-engine/internal/scan"
)

type Config struct {
	BaseURL           string
	Email             string
	Password          string
	RequestsPerSecond float64
	Burst             int
	RetryCount        int
	Timeout           time.Duration
}

// Client is an authenticated session against the portal. It satisfies
// scan.PageFetcher.
type Client struct {
	cfg     Config
	base    *url.URL
	http    *resty.Client
	limiter *rate.Limiter
}

func New(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetCookieJar(jar)
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("User-Agent", "espritjobs/1.0 (+feed mirror)")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(base.Hostname()))
	// Bounded retry for transient network failures; anything that survives
	// the retries is unrecoverable for the run.
	client.SetRetryCount(cfg.RetryCount)
	client.SetRetryWaitTime(2 * time.Second)
	client.SetRetryMaxWaitTime(15 * time.Second)

	return &Client{
		cfg:     cfg,
		base:    base,
		http:    client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}, nil
}

// Login fetches the sign-in page, carries over its hidden form fields and
// posts the credentials. A response that lands back on the sign-in page
// means the credentials were rejected.
func (c *Client) Login(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	res, err := c.http.R().SetContext(ctx).Get("/signin")
	if err != nil {
		return fmt.Errorf("fetch sign-in page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return fmt.Errorf("parse sign-in page: %w", err)
	}

	form := doc.Find("form").First()
	action := strings.TrimSpace(form.AttrOr("action", "/signin"))

	fields := map[string]string{}
	form.Find("input[type=hidden]").Each(func(_ int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		if name != "" {
			fields[name] = s.AttrOr("value", "")
		}
	})
	fields["email"] = c.cfg.Email
	fields["password"] = c.cfg.Password

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	res, err = c.http.R().SetContext(ctx).SetFormData(fields).Post(action)
	if err != nil {
		return fmt.Errorf("submit sign-in form: %w", err)
	}
	if isSignInURL(finalURL(res)) {
		return fmt.Errorf("sign-in rejected for %s: %w", c.cfg.Email, scan.ErrAuthExpired)
	}

	log.Printf("[fetch] signed in as %s", c.cfg.Email)
	return nil
}

// FetchJob requests /jobs/<id> and classifies the final resolved location.
// The portal answers a nonexistent id with a redirect to a generic landing
// page rather than a 404, so existence is a URL-pattern check.
func (c *Client) FetchJob(ctx context.Context, id int) (scan.FetchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return scan.FetchResult{}, err
	}

	res, err := c.http.R().SetContext(ctx).Get(fmt.Sprintf("/jobs/%d", id))
	if err != nil {
		return scan.FetchResult{}, fmt.Errorf("get job %d: %w", id, err)
	}

	final := finalURL(res)
	if isSignInURL(final) {
		return scan.FetchResult{}, scan.ErrAuthExpired
	}
	if !isJobURL(final, id) {
		return scan.FetchResult{Exists: false}, nil
	}
	if res.StatusCode() >= 400 {
		return scan.FetchResult{}, fmt.Errorf("job %d: status %d", id, res.StatusCode())
	}

	return scan.FetchResult{
		Exists: true,
		URL:    final.String(),
		HTML:   string(res.Body()),
	}, nil
}

func finalURL(res *resty.Response) *url.URL {
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		return res.RawResponse.Request.URL
	}
	return res.Request.RawRequest.URL
}

func isSignInURL(u *url.URL) bool {
	p := strings.TrimSuffix(u.Path, "/")
	return p == "/signin" || p == "/login" || strings.HasPrefix(p, "/auth")
}

// isJobURL reports whether the response actually resolved to the per-job
// page. Redirects land on "/", "/feed" or the bare "/jobs" listing.
func isJobURL(u *url.URL, id int) bool {
	p := strings.TrimSuffix(u.Path, "/")
	return p == fmt.Sprintf("/jobs/%d", id)
}
