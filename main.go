package main

import "github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/cmd"

func main() {
	cmd.Execute()
}
