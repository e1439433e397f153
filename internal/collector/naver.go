package collector

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

// Default Naver Finance mobile endpoints.
const (
	DefaultDomesticGoldURL      = "https://m.stock.naver.com/marketindex/metals/M04020000"
	DefaultInternationalGoldURL = "https://m.stock.naver.com/marketindex/metals/GCcv1"
	DefaultUSDKRWURL            = "https://m.stock.naver.com/marketindex/exchange/FX_USDKRW"
)

// The quote sits in a <strong class="DetailInfo_price__..."> tag; the class
// suffix is a build hash that changes between deployments, so only the
// stable prefix is matched.
var (
	priceTagRe   = regexp.MustCompile(`<strong[^>]*class="[^"]*DetailInfo_price[^"]*"[^>]*>([^<]+)</strong>`)
	priceValueRe = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)
)

// NaverFetcher implements Fetcher by scraping Naver Finance mobile pages.
type NaverFetcher struct {
	DomesticURL      string
	InternationalURL string
	ExchangeURL      string
	UserAgent        string
	Client           *http.Client
}

// NewNaverFetcher creates a fetcher with optional proxy support.
func NewNaverFetcher(proxyURL string) *NaverFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &NaverFetcher{
		DomesticURL:      DefaultDomesticGoldURL,
		InternationalURL: DefaultInternationalGoldURL,
		ExchangeURL:      DefaultUSDKRWURL,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

func (f *NaverFetcher) Name() string { return "naver" }

func (f *NaverFetcher) DomesticGold() (float64, error) {
	return f.fetchPrice(f.DomesticURL, "domestic gold price not found")
}

func (f *NaverFetcher) InternationalGold() (float64, error) {
	return f.fetchPrice(f.InternationalURL, "international gold price not found")
}

func (f *NaverFetcher) USDKRW() (float64, error) {
	return f.fetchPrice(f.ExchangeURL, "USD/KRW rate not found")
}

// fetchPrice downloads one page and extracts the quoted number.
func (f *NaverFetcher) fetchPrice(pageURL, notFoundMsg string) (float64, error) {
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Referer", "https://m.stock.naver.com/")

	resp, err := f.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("naver fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("naver read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("naver: status %d for %s", resp.StatusCode, pageURL)
	}

	return ExtractPrice(string(body), notFoundMsg)
}

// ExtractPrice pulls the first DetailInfo_price number out of a page body.
func ExtractPrice(body, notFoundMsg string) (float64, error) {
	tag := priceTagRe.FindStringSubmatch(body)
	if tag == nil {
		return 0, fmt.Errorf("naver: %s", notFoundMsg)
	}
	num := priceValueRe.FindString(tag[1])
	if num == "" {
		return 0, fmt.Errorf("naver: %s", notFoundMsg)
	}
	return parsePrice(num)
}
