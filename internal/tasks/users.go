package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"website_backend/internal/auth"
	"website_backend/internal/email"
	"website_backend/internal/repositories"
	"website_backend/internal/utils"

	"gorm.io/gorm"
)

const (
	newPasswordTemplate = "users/emails/new_user_password"
	noAccountTemplate   = "users/emails/no_account"
)

// SendPasswordEmailArgs - аргументы send_password_email
type SendPasswordEmailArgs struct {
	Email string `json:"email"`
}

// UserTasks - задачи, связанные с пользователями
type UserTasks struct {
	Users     repositories.UserRepository
	Signer    *auth.OneTimeTokenSigner
	Mailer    email.Provider
	Templates email.TemplateRenderer
	// SiteDomain - схема и хост сайта для ссылок в письмах
	SiteDomain string
	FromEmail  string
	Language   string
}

// Register добавляет задачи в реестр
func (t *UserTasks) Register(r *Registry) {
	r.Register(TaskGetUsersCount, t.GetUsersCount)
	r.Register(TaskSendPasswordEmail, t.SendPasswordEmail)
}

// GetUsersCount возвращает число пользователей
func (t *UserTasks) GetUsersCount(ctx context.Context, db *gorm.DB, _ json.RawMessage) (any, error) {
	return t.Users.Count(db)
}

// SendPasswordEmail отправляет ссылку для входа по одноразовому токену,
// либо письмо о том, что аккаунта с таким адресом нет.
func (t *UserTasks) SendPasswordEmail(ctx context.Context, db *gorm.DB, raw json.RawMessage) (any, error) {
	var args SendPasswordEmailArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("decode args: %w", err)
	}
	addr := strings.TrimSpace(args.Email)
	if addr == "" {
		return nil, errors.New("email is required")
	}

	subject := email.Subject(t.Language, email.SubjectNoAccount)
	prefix := noAccountTemplate
	data := email.TemplateData{}

	user, err := t.Users.FindByEmail(db, addr)
	switch {
	case err == nil && user.IsActive:
		key, err := t.Signer.Key(user.ID)
		if err != nil {
			return nil, fmt.Errorf("one-time token: %w", err)
		}
		data["url"] = utils.FullURL(t.SiteDomain, "/password/", utils.Param{Key: "token", Value: key})
		subject = email.Subject(t.Language, email.SubjectNewPassword)
		prefix = newPasswordTemplate
	case err != nil && !errors.Is(err, repositories.ErrUserNotFound):
		return nil, err
	}

	msg, err := email.RenderEmail(t.Templates, subject, prefix, addr, data, t.FromEmail)
	if err != nil {
		return nil, err
	}
	if err := t.Mailer.Send(ctx, msg); err != nil {
		return nil, err
	}
	return prefix, nil
}
