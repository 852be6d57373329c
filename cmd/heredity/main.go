// cmd/heredity/main.go
package main

import (
	"heredity/internal/app"
	"heredity/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
