package notifysvc

import (
	"fmt"
	"html"
	"log/slog"

	mailerrepo "carrental/repository/mailer"
)

type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Service relays contact-form messages to the business inbox. Sends are
// fire-and-forget: delivery failures are logged, the caller always gets a
// success once the input validates.
type Service interface {
	Contact(msg ContactMessage)
}

type service struct {
	mail  mailerrepo.Repo
	inbox string
	log   *slog.Logger
}

func New(mail mailerrepo.Repo, inbox string, log *slog.Logger) Service {
	return &service{mail: mail, inbox: inbox, log: log}
}

func (s *service) Contact(msg ContactMessage) {
	go func() {
		err := s.mail.Send(mailerrepo.Message{
			To:      s.inbox,
			Subject: "[contact] " + msg.Subject,
			HTML: fmt.Sprintf("<p>From: %s &lt;%s&gt;</p><p>%s</p>",
				html.EscapeString(msg.Name), html.EscapeString(msg.Email), html.EscapeString(msg.Body)),
		})
		if err != nil {
			s.log.Error("contact mail failed", "from", msg.Email, "err", err)
		}
	}()
}
