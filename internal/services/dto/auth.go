package dto

// LoginRequest - пустые поля проверяет сервис, чтобы вернуть non_field_errors
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse - ответ /login/ и /profiles/password_token/
type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// JWTResponse - ответ мутаций tokenAuth и refreshToken
type JWTResponse struct {
	Token            string                 `json:"token"`
	Payload          map[string]interface{} `json:"payload"`
	RefreshExpiresIn int64                  `json:"refreshExpiresIn"`
}
