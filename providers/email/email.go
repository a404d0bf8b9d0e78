// Package email sends collaborator invitation emails over SMTP.
package email

import (
	"net/url"

	"github.com/skifte/skifte-server/config"
	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/utils-go"
	mail "github.com/xhit/go-simple-mail/v2"
)

const inviteSubject = "Invitasjon til arveoppgjør"

const inviteTemplate = `<p>Hei,</p>
<p>{{inviter}} har invitert deg som {{role}} i arveoppgjøret «{{estate}}».</p>
<p><a href="{{link}}">Klikk her for å godta invitasjonen</a>.</p>
<p>Med vennlig hilsen<br>Skifte</p>`

type Mailer struct {
	client  *mail.SMTPClient
	from    string
	baseUrl string
}

func NewMailer(client *mail.SMTPClient, config *config.Config) *Mailer {
	return &Mailer{
		client:  client,
		from:    config.EmailConfig.SmtpUser,
		baseUrl: config.InviteBaseUrl,
	}
}

// SendInvitation mails the invitee a link that accepts the pending role.
func (m *Mailer) SendInvitation(estate *models.Estate, role models.Role) error {
	link := m.baseUrl + "/accept-invite/" + url.PathEscape(role.EstateId) +
		"?email=" + url.QueryEscape(role.Email)

	body := utils.Format(inviteTemplate, map[string]string{
		"{{inviter}}": role.InvitedBy,
		"{{role}}":    role.Role,
		"{{estate}}":  estate.EstateName,
		"{{link}}":    link,
	})

	msg := mail.NewMSG()
	msg.SetFrom(m.from).AddTo(role.Email).SetSubject(inviteSubject).SetBody(mail.TextHTML, body)

	if msg.Error != nil {
		return msg.Error
	}

	return msg.Send(m.client)
}
