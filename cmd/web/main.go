package main

import "daycare_backend/internal/app"

func main() {
	app.Run()
}
