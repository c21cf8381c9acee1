package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// addListFlags registers the client-side filter and pagination flags
// shared by every list command. The backend returns full collections;
// filtering and paging happen locally.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("filter", "", "case-insensitive substring filter")
	cmd.Flags().Int("page", 1, "page number (1-based)")
	cmd.Flags().Int("page-size", 0, "entries per page (0 shows all)")
}

func listWindowFromFlags(cmd *cobra.Command) (string, int, int, error) {
	filter, _ := cmd.Flags().GetString("filter")
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")

	if page < 1 {
		return "", 0, 0, fmt.Errorf("--page must be at least 1")
	}
	if pageSize < 0 {
		return "", 0, 0, fmt.Errorf("--page-size must be non-negative")
	}

	return filter, page, pageSize, nil
}

// filterPage narrows items to those matching the query and returns the
// requested page. haystack renders the searchable text of one item.
func filterPage[T any](items []T, query string, page, pageSize int, haystack func(T) string) []T {
	if query != "" {
		query = strings.ToLower(query)
		var matched []T
		for _, item := range items {
			if strings.Contains(strings.ToLower(haystack(item)), query) {
				matched = append(matched, item)
			}
		}
		items = matched
	}

	if pageSize <= 0 {
		return items
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
