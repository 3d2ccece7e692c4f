package cloudinaryrepo

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"carrental/util/httpx"
)

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

type httpRepo struct {
	cfg    Config
	client *http.Client
}

func NewHTTP(cfg Config) Repo { return &httpRepo{cfg: cfg, client: httpx.Client()} }

func (r *httpRepo) Upload(req UploadReq) (*UploadResp, error) {
	if len(req.Data) == 0 {
		return nil, errors.New("cloudinary: empty image payload")
	}
	if r.cfg.CloudName == "" || r.cfg.APIKey == "" || r.cfg.APISecret == "" {
		return nil, errors.New("cloudinary: missing credentials")
	}

	publicID := req.PublicID
	if req.Folder != "" {
		publicID = req.Folder + "/" + publicID
	}
	ts := fmt.Sprintf("%d", time.Now().Unix())

	// Signed upload: sha1 over the sorted params plus the API secret.
	toSign := "public_id=" + publicID + "&timestamp=" + ts + r.cfg.APISecret
	sig := fmt.Sprintf("%x", sha1.Sum([]byte(toSign)))

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(req.Data))
	form.Add("api_key", r.cfg.APIKey)
	form.Add("public_id", publicID)
	form.Add("timestamp", ts)
	form.Add("signature", sig)

	endpoint := "https://api.cloudinary.com/v1_1/" + r.cfg.CloudName + "/image/upload"
	resp, err := r.client.Post(endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cloudinary upload failed: %s", resp.Status)
	}

	var out struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.SecureURL == "" {
		return nil, errors.New("cloudinary: empty secure_url in response")
	}
	return &UploadResp{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

func (r *httpRepo) Delete(publicID string) error {
	if publicID == "" {
		return nil
	}
	ts := fmt.Sprintf("%d", time.Now().Unix())
	toSign := "public_id=" + publicID + "&timestamp=" + ts + r.cfg.APISecret
	sig := fmt.Sprintf("%x", sha1.Sum([]byte(toSign)))

	form := url.Values{}
	form.Add("public_id", publicID)
	form.Add("api_key", r.cfg.APIKey)
	form.Add("timestamp", ts)
	form.Add("signature", sig)

	endpoint := "https://api.cloudinary.com/v1_1/" + r.cfg.CloudName + "/image/destroy"
	resp, err := r.client.Post(endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("cloudinary destroy failed: %s", resp.Status)
	}
	return nil
}
