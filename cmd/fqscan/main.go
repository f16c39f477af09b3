// cmd/fqscan/main.go
package main

import (
	"fqscan/internal/app"
	"fqscan/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
