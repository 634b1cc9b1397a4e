package main

import "recipe-backend/internal/app"

func main() {
	app.Run()
}
