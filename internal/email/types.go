package email

// Email представляет структуру email сообщения.
// Body - текстовая версия; HTMLBody - html-альтернатива или единственное тело.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// IsHTMLOnly - письмо без текстовой версии
func (e *Email) IsHTMLOnly() bool {
	return e.Body == "" && e.HTMLBody != ""
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}
