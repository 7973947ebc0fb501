package main

import (
	"github.com/sandy-the-earth/nfc-backend/internal/app"
)

func main() {
	app.Main()
}
