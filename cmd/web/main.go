// @title           website API
// @version         1.0
// @description     API пользователей сайта: профили, JWT, вход по ссылке из письма и GraphQL.
// @contact.name    website team
// @contact.email   webmaster@localhost
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Формат: "JWT <token>" или "Bearer <token>"

package main

import (
	_ "website_backend/docs"
	"website_backend/internal/app"
)

func main() {
	app.Run()
}
