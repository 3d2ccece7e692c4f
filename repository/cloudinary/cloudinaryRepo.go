package cloudinaryrepo

type UploadReq struct {
	// Data is the raw image payload (decoded, not base64).
	Data     []byte
	Folder   string
	PublicID string
}

type UploadResp struct {
	URL      string
	PublicID string
}

type Repo interface {
	Upload(req UploadReq) (*UploadResp, error)
	Delete(publicID string) error
}
