// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command heroctl is the terminal client for the Heroes API.
//
// # Views
//
//   - list: paginated, searchable table (5 heroes per page).
//   - get: detail view of one hero.
//   - create / edit: form submission with image uploads.
//   - delete: hard delete.
//   - draft: inspect or discard the saved create form.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
