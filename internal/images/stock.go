package images

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	stockBaseURL   = "https://picsum.photos"
	stockTimeout   = 60 * time.Second
	stockSeedSpace = 10000
	stockImageSize = 1024
)

// StockProvider fetches a deterministic stock photo for a prompt. The same
// prompt always maps to the same seed, so re-runs reuse identical imagery.
type StockProvider struct {
	httpClient *http.Client
	baseURL    string
}

func NewStockProvider() *StockProvider {
	return &StockProvider{
		httpClient: &http.Client{
			Timeout: stockTimeout,
		},
		baseURL: stockBaseURL,
	}
}

func (p *StockProvider) Generate(ctx context.Context, prompt string) ([]byte, error) {
	url := fmt.Sprintf("%s/seed/%d/%d/%d", p.baseURL, promptSeed(prompt), stockImageSize, stockImageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stock image fetch failed: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil, fmt.Errorf("stock response is not an image")
	}

	return data, nil
}

func promptSeed(prompt string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	return h.Sum32() % stockSeedSpace
}
