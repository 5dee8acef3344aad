// cmd/coursecms/main.go
package main

import (
	"context"

	"github.com/dalemusser/coursecms/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	app.Run(context.Background(), bootstrap.Hooks)
}
