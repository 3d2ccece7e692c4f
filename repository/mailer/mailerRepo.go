package mailerrepo

type Attachment struct {
	Filename string
	Content  []byte
}

type Message struct {
	To         string
	Subject    string
	HTML       string
	Attachment *Attachment
}

// Repo is the transactional mail relay. Callers treat sends as
// fire-and-forget: a failure is logged, never propagated into the primary
// write's result.
type Repo interface {
	Send(msg Message) error
}
