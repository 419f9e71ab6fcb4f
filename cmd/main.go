// cmd/main.go
package main

import (
	"securebank/app"
)

func main() {
	app.Run()
}
