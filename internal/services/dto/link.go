package dto

type CreateLinkRequest struct {
	URL         string `json:"url" validate:"required,url,max=200"`
	Description string `json:"description"`
}
