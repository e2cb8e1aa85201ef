// Command greet is the smallest possible funcli program: two plain functions
// with doc comments become a two-command CLI, flags and help included.
package main

import (
	"fmt"
	"os"

	"github.com/scbrown/funcli"
	"github.com/scbrown/funcli/bind"
)

// hello says hello.
//
// Arguments:
//   - user: name of the user
//   - times: how many greetings to print
func hello(user string, times *int) {
	n := 1
	if times != nil {
		n = *times
	}
	for i := 0; i < n; i++ {
		fmt.Printf("Hello %s\n", user)
	}
}

// bye says goodbye.
//
// Arguments:
//   - user: name of the user
//   - seeYou: days until we meet again
func bye(user string, seeYou *float64) {
	days := 1.0
	if seeYou != nil {
		days = *seeYou
	}
	fmt.Printf("Goodbye %s, see you in %.1f days\n", user, days)
}

func main() {
	err := bind.Run([]any{hello, bye}, "greet", os.Args[1:], funcli.Config{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
