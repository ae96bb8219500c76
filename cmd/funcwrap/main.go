// Command funcwrap runs the decorator scenarios end to end.
//
//	funcwrap demo [--log-level info] [--tracing none] [--metrics none]
//	funcwrap text "some text: to, transform"
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	app := newApp(os.Stdout)
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
