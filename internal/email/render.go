package email

import (
	"errors"
	"fmt"
	"strings"
)

// RenderEmail собирает письмо из пары шаблонов prefix.html / prefix.txt.
//
// Если есть txt-версия, она становится телом, а html прикладывается как
// альтернатива. Без txt письмо отправляется только в html.
func RenderEmail(r TemplateRenderer, subject, prefix, to string, data TemplateData, from string) (*Email, error) {
	htmlBody, htmlErr := r.RenderHTML(prefix, data)
	if htmlErr != nil && !errors.Is(htmlErr, ErrTemplateDoesNotExist) {
		return nil, htmlErr
	}
	textBody, textErr := r.RenderText(prefix, data)
	if textErr != nil && !errors.Is(textErr, ErrTemplateDoesNotExist) {
		return nil, textErr
	}
	if htmlErr != nil && textErr != nil {
		return nil, fmt.Errorf("%w: a template with the prefix %s does not exist", ErrTemplateDoesNotExist, prefix)
	}

	msg := &Email{
		From:    from,
		To:      []string{to},
		Subject: subject,
	}
	if textErr == nil {
		msg.Body = strings.TrimSpace(textBody)
	}
	if htmlErr == nil {
		msg.HTMLBody = strings.TrimSpace(htmlBody)
	}
	return msg, nil
}
