package notification

import "webcraft/models"

// Policy decides who receives what. It is configuration, not code: the
// service never adds recipients of its own.
type Policy struct {
	From            string
	AdminRecipients []string
	AlwaysBCC       []string
}

// adminEmail addresses an operator notification. When no admin recipients
// are configured the always-BCC list becomes the visible recipient list.
// ok is false when nobody would receive it.
func (p Policy) adminEmail(subject, html, text, replyTo string) (models.Email, bool) {
	to, bcc := p.AdminRecipients, p.AlwaysBCC
	if len(to) == 0 {
		to, bcc = bcc, nil
	}
	if len(to) == 0 {
		return models.Email{}, false
	}
	return models.Email{
		From:    p.From,
		To:      append([]string{}, to...),
		BCC:     dedupe(bcc, to),
		ReplyTo: replyTo,
		Subject: subject,
		HTML:    html,
		Text:    text,
	}, true
}

// clientEmail addresses a confirmation to the person who filled the form.
func (p Policy) clientEmail(to, subject, html, text string) models.Email {
	return models.Email{
		From:    p.From,
		To:      []string{to},
		BCC:     dedupe(p.AlwaysBCC, []string{to}),
		Subject: subject,
		HTML:    html,
		Text:    text,
	}
}

// dedupe drops entries of list that also appear in exclude.
func dedupe(list, exclude []string) []string {
	var out []string
	for _, v := range list {
		skip := false
		for _, x := range exclude {
			if x == v {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, v)
		}
	}
	return out
}
