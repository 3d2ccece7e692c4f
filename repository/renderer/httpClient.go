package rendererrepo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"carrental/util/httpx"
)

type httpRepo struct {
	apiURL string
	apiKey string
	client *http.Client
}

func NewHTTP(apiURL, apiKey string) Repo {
	return &httpRepo{apiURL: apiURL, apiKey: apiKey, client: httpx.Client()}
}

func (r *httpRepo) RenderLease(req RenderReq) (string, error) {
	if r.apiURL == "" {
		return "", errors.New("renderer: RENDERER_URL not configured")
	}

	body := map[string]any{
		"template":       "lease",
		"contract_id":    req.ContractID,
		"terms":          req.Terms,
		"rental_days":    req.RentalDays,
		"daily_price":    req.DailyPrice,
		"total_amount":   req.TotalAmount,
		"deposit_amount": req.DepositAmount,
	}
	b, _ := json.Marshal(body)

	httpReq, _ := http.NewRequest("POST", r.apiURL, bytes.NewReader(b))
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("renderer failed: %s", resp.Status)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", errors.New("renderer: empty document url")
	}
	return out.URL, nil
}
