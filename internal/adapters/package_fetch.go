package adapters

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	rpm "github.com/cavaliercoder/go-rpm"
	"github.com/rs/zerolog/log"

	"yyoom/internal/shared"
	"yyoom/internal/types"
)

const defaultHTTPTimeout = 60 * time.Second
const defaultHTTPRetries = 3
const defaultHTTPRetryDelay = 200 * time.Millisecond
const maxHTTPRetryDelay = 2 * time.Second

type httpRetryConfig struct {
	timeout   time.Duration
	retries   int
	baseDelay time.Duration
}

func normalizeHTTPConfig(timeoutSec int, retries int, delayMs int) httpRetryConfig {
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	retryCount := retries
	if retryCount <= 0 {
		retryCount = defaultHTTPRetries
	}
	baseDelay := time.Duration(delayMs) * time.Millisecond
	if baseDelay <= 0 {
		baseDelay = defaultHTTPRetryDelay
	}
	return httpRetryConfig{
		timeout:   timeout,
		retries:   retryCount,
		baseDelay: baseDelay,
	}
}

// PackageFetchAdapter downloads package files from their repository into
// the package cache and verifies them against the repository checksum.
type PackageFetchAdapter struct {
	cfg httpRetryConfig
	// VerifyHeader additionally parses the downloaded file as an RPM and
	// checks its name and version.
	VerifyHeader bool
}

func NewPackageFetchAdapter(timeoutSec int, retries int, delayMs int) PackageFetchAdapter {
	return PackageFetchAdapter{
		cfg:          normalizeHTTPConfig(timeoutSec, retries, delayMs),
		VerifyHeader: true,
	}
}

// Fetch returns the local path of pkg's file under dir, downloading it from
// baseURL unless a copy with a matching checksum is already cached.
func (a PackageFetchAdapter) Fetch(ctx context.Context, baseURL string, pkg types.Package, dir string) (string, error) {
	if strings.TrimSpace(pkg.Location) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package %s has no repository location", pkg))
	}
	if strings.TrimSpace(baseURL) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("repository %s has no base url", pkg.Repo))
	}
	dest := filepath.Join(dir, filepath.Base(pkg.Location))
	if ok, _ := verifyChecksum(dest, pkg.ChecksumType, pkg.Checksum); ok {
		log.Ctx(ctx).Debug().Str("package", pkg.String()).Msg("using cached package file")
		return dest, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", shared.EngineError("Fetch", []string{pkg.String()}, err)
	}

	url := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(pkg.Location, "/")
	tmp := dest + ".part"
	if err := a.download(ctx, url, tmp); err != nil {
		_ = os.Remove(tmp)
		return "", shared.EngineError("Fetch", []string{pkg.String()}, err)
	}
	ok, err := verifyChecksum(tmp, pkg.ChecksumType, pkg.Checksum)
	if err != nil || !ok {
		_ = os.Remove(tmp)
		if err == nil {
			err = fmt.Errorf("%s checksum mismatch for %s", pkg.ChecksumType, url)
		}
		return "", shared.EngineError("Fetch", []string{pkg.String()}, err)
	}
	if a.VerifyHeader {
		if err := verifyHeader(tmp, pkg); err != nil {
			_ = os.Remove(tmp)
			return "", shared.EngineError("Fetch", []string{pkg.String()}, err)
		}
	}
	if err := os.Rename(tmp, dest); err != nil {
		return "", shared.EngineError("Fetch", []string{pkg.String()}, err)
	}
	log.Ctx(ctx).Info().Str("package", pkg.String()).Str("url", url).Msg("package downloaded")
	return dest, nil
}

func (a PackageFetchAdapter) download(ctx context.Context, url string, dest string) error {
	if path, ok := strings.CutPrefix(url, "file://"); ok {
		return copyFile(path, dest)
	}
	resp, err := doRequest(ctx, url, a.cfg)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return shared.HTTPStatusError(resp.StatusCode, url)
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyFile(src string, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func doRequest(ctx context.Context, url string, cfg httpRetryConfig) (*http.Response, error) {
	client := &http.Client{Timeout: cfg.timeout}
	var lastErr error
	for attempt := 0; attempt < cfg.retries; attempt++ {
		if ctx.Err() != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeCanceled).
				WithMsg("request canceled").
				WithCause(ctx.Err())
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create request").
				WithCause(err)
		}
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeCanceled).
					WithMsg("request canceled").
					WithCause(ctx.Err())
			}
			lastErr = err
			if attempt < cfg.retries-1 {
				time.Sleep(httpRetryDelay(attempt, cfg))
				continue
			}
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeUnavailable).
				WithMsg("request failed").
				WithCause(err)
		}
		if (resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests) && attempt < cfg.retries-1 {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			time.Sleep(httpRetryDelay(attempt, cfg))
			continue
		}
		return resp, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("request failed")
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg("request failed").
		WithCause(lastErr)
}

func httpRetryDelay(attempt int, cfg httpRetryConfig) time.Duration {
	delay := cfg.baseDelay * time.Duration(1<<attempt)
	if delay > maxHTTPRetryDelay {
		delay = maxHTTPRetryDelay
	}
	jitter := time.Duration(time.Now().UnixNano() % int64(delay/2+1))
	return delay + jitter
}

func newChecksumHash(checksumType string) (hash.Hash, error) {
	switch strings.ToLower(strings.TrimSpace(checksumType)) {
	case "sha256":
		return sha256.New(), nil
	case "sha", "sha1":
		return sha1.New(), nil
	case "sha512":
		return sha512.New(), nil
	case "md5":
		return md5.New(), nil
	default:
		return nil, fmt.Errorf("unsupported checksum type %q", checksumType)
	}
}

// verifyChecksum reports whether the file at path has the expected digest.
// A missing file is not an error.
func verifyChecksum(path string, checksumType string, expected string) (bool, error) {
	if strings.TrimSpace(expected) == "" {
		return false, fmt.Errorf("no checksum recorded for %s", filepath.Base(path))
	}
	h, err := newChecksumHash(checksumType)
	if err != nil {
		return false, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer file.Close()
	if _, err := io.Copy(h, file); err != nil {
		return false, err
	}
	return strings.EqualFold(hex.EncodeToString(h.Sum(nil)), expected), nil
}

func verifyHeader(path string, pkg types.Package) error {
	file, err := rpm.OpenPackageFile(path)
	if err != nil {
		return fmt.Errorf("reading rpm header: %w", err)
	}
	if file.Name() != pkg.Name || file.Version() != pkg.Version || file.Release() != pkg.Release {
		return fmt.Errorf("downloaded %s-%s-%s, expected %s", file.Name(), file.Version(), file.Release(), pkg.Spec())
	}
	return nil
}
