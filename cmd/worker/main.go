package main

import "website_backend/internal/app"

func main() {
	app.RunWorker()
}
