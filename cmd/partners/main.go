package main

import "github.com/fpawel/partners/internal/app"

func main() {
	app.Main()
}
