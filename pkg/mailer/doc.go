// Package mailer sends transactional email written in markdown.
//
// Bodies are authored as GitHub-flavored markdown and rendered to a
// minimal HTML layout; the markdown source doubles as the plain-text
// part.
//
//	sender, err := mailer.NewResendSender(cfg.Mail)
//	if err != nil {
//		sender = mailer.Noop{}
//	}
//	m := mailer.New(sender)
//	err = m.Send(ctx, mailer.Email{
//		To:           "owner@acme.com",
//		Subject:      "Your domain is live",
//		BodyMarkdown: body,
//	})
package mailer
