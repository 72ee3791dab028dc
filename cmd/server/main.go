package main

import (
	"os"

	"github.com/Babyaovo/Yaouo-sub000/internal/app"
)

// @title        Phone Chat API
// @version      1.0
// @description  Conversation engine for the phone chat UI: staged drafts, multi-bubble replies, quotes, regenerate and rolling memory.
// @BasePath     /api
func main() {
	os.Exit(app.Run())
}
