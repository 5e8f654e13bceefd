package main

import (
	"flag"
	"fmt"
	"os"

	"study-shell/internal/quiz"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: bank-lint <mcq-data.json>")
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer f.Close()

	bank, issues, err := quiz.DecodeBank(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Printf("pages: %d\nquestions: %d\n", bank.Len(), bank.QuestionCount())
	for _, key := range bank.PageKeys() {
		set, _ := bank.Lookup(key)
		fmt.Printf("  %s: %d\n", key, len(set))
	}
	if len(issues) == 0 {
		return
	}

	fmt.Printf("issues: %d\n", len(issues))
	for _, issue := range issues {
		fmt.Println("  " + issue.String())
	}
	os.Exit(1)
}
