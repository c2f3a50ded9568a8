package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/lzx-sdu/stock-picker-auto/internal/logging"
	"github.com/lzx-sdu/stock-picker-auto/internal/model"
)

const (
	defaultListURL  = "https://82.push2.eastmoney.com/api/qt/clist/get"
	defaultKlineURL = "https://push2his.eastmoney.com/api/qt/stock/kline/get"

	// list fields: f12 code, f14 name, f20 market cap
	listFields   = "f12,f14,f20"
	listPageSize = 500
	maxKlines    = 1000

	httpTimeout = 10 * time.Second
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	referer     = "https://quote.eastmoney.com/"
)

// EastMoneyProvider fetches the A-share universe and forward-adjusted daily
// klines from the eastmoney quote API. It implements both SeriesProvider and
// UniverseProvider.
type EastMoneyProvider struct {
	ListURL      string
	KlineURL     string
	MinMarketCap float64
	Client       *http.Client
	Log          logging.Logger
}

// NewEastMoneyProvider creates a provider with the given endpoints. Empty
// URLs fall back to the public eastmoney endpoints.
func NewEastMoneyProvider(listURL, klineURL string, minMarketCap float64, log logging.Logger) *EastMoneyProvider {
	if listURL == "" {
		listURL = defaultListURL
	}
	if klineURL == "" {
		klineURL = defaultKlineURL
	}
	return &EastMoneyProvider{
		ListURL:      listURL,
		KlineURL:     klineURL,
		MinMarketCap: minMarketCap,
		Client:       &http.Client{Timeout: httpTimeout},
		Log:          log,
	}
}

func (p *EastMoneyProvider) Name() string { return "eastmoney" }

// secID maps a bare A-share code to the eastmoney market-prefixed id:
// 1.X for Shanghai boards, 0.X for Shenzhen.
func secID(code string) string {
	if strings.HasPrefix(code, "600") || strings.HasPrefix(code, "601") ||
		strings.HasPrefix(code, "603") || strings.HasPrefix(code, "688") {
		return "1." + code
	}
	return "0." + code
}

func (p *EastMoneyProvider) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", referer)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eastmoney fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("eastmoney read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eastmoney: status %d", resp.StatusCode)
	}
	return body, nil
}

// FetchUniverse pages through the main-board stock list, dropping ST /
// delisting names and instruments below the configured market-cap floor.
func (p *EastMoneyProvider) FetchUniverse(ctx context.Context) ([]model.Instrument, error) {
	var out []model.Instrument
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s?pn=%d&pz=%d&fs=m:1+t:2,m:0+t:6&fields=%s",
			p.ListURL, page, listPageSize, listFields)
		body, err := p.get(ctx, url)
		if err != nil {
			return nil, err
		}

		diff := gjson.GetBytes(body, "data.diff")
		if !diff.Exists() {
			break
		}
		count := 0
		diff.ForEach(func(_, v gjson.Result) bool {
			count++
			code := v.Get("f12").String()
			name := v.Get("f14").String()
			if code == "" || name == "" {
				return true
			}
			if strings.Contains(name, "ST") || strings.Contains(name, "退") {
				return true
			}
			if p.MinMarketCap > 0 && v.Get("f20").Float() < p.MinMarketCap {
				return true
			}
			out = append(out, model.Instrument{Code: code, Name: name})
			return true
		})

		total := int(gjson.GetBytes(body, "data.total").Int())
		if count == 0 || count < listPageSize || (total > 0 && len(out) >= total) {
			break
		}
	}
	p.Log.Infof("eastmoney universe: %d instruments", len(out))
	return out, nil
}

// FetchSeries pulls up to days forward-adjusted daily bars for one code.
// Klines arrive as comma-joined "date,open,close,high,low,volume" strings.
func (p *EastMoneyProvider) FetchSeries(ctx context.Context, code string, days int) (*model.PriceSeries, error) {
	if code == "" || days <= 0 {
		return nil, fmt.Errorf("eastmoney: invalid code or days")
	}
	if days > maxKlines {
		days = maxKlines
	}
	url := fmt.Sprintf("%s?secid=%s&fields1=f1,f2,f3&fields2=f51,f52,f53,f54,f55,f56&klt=101&fqt=1&lmt=%d",
		p.KlineURL, secID(code), days)
	body, err := p.get(ctx, url)
	if err != nil {
		return nil, err
	}

	klines := gjson.GetBytes(body, "data.klines")
	if !klines.Exists() || !klines.IsArray() {
		// No kline payload means no data for this code, not a protocol error.
		return &model.PriceSeries{Code: code, FetchedAt: time.Now()}, nil
	}

	series := &model.PriceSeries{
		Code:      code,
		Name:      gjson.GetBytes(body, "data.name").String(),
		FetchedAt: time.Now(),
	}
	var lastDate string
	for _, v := range klines.Array() {
		parts := strings.Split(strings.TrimSpace(v.String()), ",")
		if len(parts) < 6 {
			continue
		}
		if parts[0] == lastDate {
			continue // duplicate date, keep the first
		}
		date, err := time.Parse("2006-01-02", parts[0])
		if err != nil {
			continue
		}
		open, _ := strconv.ParseFloat(parts[1], 64)
		closeVal, _ := strconv.ParseFloat(parts[2], 64)
		high, _ := strconv.ParseFloat(parts[3], 64)
		low, _ := strconv.ParseFloat(parts[4], 64)
		volume, _ := strconv.ParseFloat(parts[5], 64)
		series.Points = append(series.Points, model.PricePoint{
			Date:   date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closeVal,
			Volume: volume,
		})
		lastDate = parts[0]
	}
	return series, nil
}
