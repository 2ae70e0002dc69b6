package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/logger"
)

// URLOptions configures IngestFromURL.
type URLOptions struct {
	Fetch *fetch.Options
	// Render, when set, re-renders pages whose plain fetch yields too little
	// text. Use fetch.BrowserRenderer for headless Chrome.
	Render fetch.Renderer
}

// IngestFromURL fetches a job posting and returns its cleaned text with metadata.
// Platform-specific selectors are used for known job boards.
func IngestFromURL(ctx context.Context, urlStr string, opts *URLOptions) (string, *Metadata, error) {
	if opts == nil {
		opts = &URLOptions{}
	}
	log := logger.C(ctx).With().Str("component", "ingestion").Str("url", urlStr).Logger()

	if err := fetch.ValidateURL(urlStr); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	platform := fetch.DetectPlatform(urlStr)
	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	log.Debug().Str("platform", string(platform)).Int("bytes", len(result.HTML)).Msg("fetched job posting")

	html := result.HTML
	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	rendered := false
	if opts.Render != nil && fetch.ShouldUseBrowser(text) {
		log.Debug().Int("chars", len(text)).Msg("content too short, rendering with browser")
		browserHTML, err := opts.Render(ctx, urlStr)
		if err != nil {
			// keep the plain HTTP content
			log.Warn().Err(err).Msg("browser rendering failed")
		} else if browserText, err := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); err == nil {
			html, text, rendered = browserHTML, browserText, true
		}
	}

	cleaned := NormalizeText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, errors.New("page has no text"))
	}

	meta := NewMetadata(cleaned, urlStr)
	meta.Format = FormatHTML
	meta.Platform = string(platform)
	meta.Title = fetch.Title(html)
	meta.Rendered = rendered
	return cleaned, meta, nil
}
