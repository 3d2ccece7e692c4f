package mailerrepo

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"carrental/util/httpx"
)

type httpRepo struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
}

func NewHTTP(apiURL, apiKey, from string) Repo {
	return &httpRepo{apiURL: apiURL, apiKey: apiKey, from: from, client: httpx.Client()}
}

func (r *httpRepo) Send(msg Message) error {
	if r.apiURL == "" {
		return errors.New("mailer: MAIL_API_URL not configured")
	}

	body := map[string]any{
		"from":    r.from,
		"to":      msg.To,
		"subject": msg.Subject,
		"html":    msg.HTML,
	}
	if msg.Attachment != nil {
		body["attachments"] = []map[string]string{{
			"filename": msg.Attachment.Filename,
			"content":  base64.StdEncoding.EncodeToString(msg.Attachment.Content),
		}}
	}
	b, _ := json.Marshal(body)

	httpReq, _ := http.NewRequest("POST", r.apiURL, bytes.NewReader(b))
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mailer send failed: %s", resp.Status)
	}
	return nil
}
