package main

import "photochat/cmd/app"

func main() {
	app.GetApp().LetsGo()
}
