package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"signalist/internal/auth/models"
)

// client calls the gateway's /api/auth endpoints and keeps the session
// cookies between invocations in a file.
type client struct {
	BaseURL    string
	CookieFile string
	HTTP       *http.Client
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// call posts body to path and returns the decoded result with the HTTP status.
func (c *client) call(ctx context.Context, path string, body any) (*models.Result, int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/api/auth" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	jar, err := c.loadCookies()
	if err != nil {
		return nil, 0, err
	}
	for _, sc := range jar {
		req.AddCookie(&http.Cookie{Name: sc.Name, Value: sc.Value})
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if err := c.saveCookies(mergeCookies(jar, resp.Cookies())); err != nil {
		return nil, resp.StatusCode, err
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	var result models.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	return &result, resp.StatusCode, nil
}

func (c *client) loadCookies() ([]storedCookie, error) {
	if c.CookieFile == "" {
		return nil, nil
	}
	b, err := os.ReadFile(c.CookieFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cookie file: %w", err)
	}
	var jar []storedCookie
	if err := json.Unmarshal(b, &jar); err != nil {
		return nil, fmt.Errorf("parse cookie file: %w", err)
	}
	return jar, nil
}

func (c *client) saveCookies(jar []storedCookie) error {
	if c.CookieFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.CookieFile), 0o700); err != nil {
		return fmt.Errorf("create cookie dir: %w", err)
	}
	b, err := json.MarshalIndent(jar, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.CookieFile, b, 0o600); err != nil {
		return fmt.Errorf("write cookie file: %w", err)
	}
	return nil
}

// mergeCookies applies Set-Cookie results to the stored jar. Expired or
// emptied cookies are removed.
func mergeCookies(jar []storedCookie, set []*http.Cookie) []storedCookie {
	byName := make(map[string]int, len(jar))
	out := make([]storedCookie, 0, len(jar)+len(set))
	for _, sc := range jar {
		byName[sc.Name] = len(out)
		out = append(out, sc)
	}
	for _, ck := range set {
		remove := ck.MaxAge < 0 || ck.Value == ""
		if i, ok := byName[ck.Name]; ok {
			if remove {
				out[i].Value = ""
			} else {
				out[i].Value = ck.Value
			}
			continue
		}
		if !remove {
			byName[ck.Name] = len(out)
			out = append(out, storedCookie{Name: ck.Name, Value: ck.Value})
		}
	}

	kept := out[:0]
	for _, sc := range out {
		if sc.Value != "" {
			kept = append(kept, sc)
		}
	}
	return kept
}
