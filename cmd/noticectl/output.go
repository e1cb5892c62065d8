package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
)

func printResult(v interface{}) {
	if output == "json" {
		json.NewEncoder(os.Stdout).Encode(v)
		return
	}
	printTable(v)
}

func printTable(v interface{}) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	switch data := v.(type) {
	case []NoticeRow:
		if len(data) == 0 {
			fmt.Println("No notices found.")
			return
		}
		fmt.Fprintln(w, "ID\tUSER\tSTART\tEND\tREASON\tREVIEWED\tAPPROVED")
		for _, n := range data {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\t%t\n", n.ID[:8], n.UserID, n.StartTime, n.EndTime, truncate(n.Reason, 40), n.Reviewed, n.Approved)
		}
	case NoticeRow:
		fmt.Fprintf(w, "ID:\t%s\n", data.ID)
		fmt.Fprintf(w, "Workspace:\t%s\n", data.WorkspaceID)
		fmt.Fprintf(w, "User:\t%s\n", data.UserID)
		fmt.Fprintf(w, "Start:\t%s\n", data.StartTime)
		fmt.Fprintf(w, "End:\t%s\n", data.EndTime)
		fmt.Fprintf(w, "Reason:\t%s\n", data.Reason)
		fmt.Fprintf(w, "Reviewed:\t%t\n", data.Reviewed)
		fmt.Fprintf(w, "Approved:\t%t\n", data.Approved)
		if data.ReviewComment != nil {
			fmt.Fprintf(w, "Comment:\t%s\n", *data.ReviewComment)
		}
		fmt.Fprintf(w, "Created:\t%s\n", data.CreatedAt)
	default:
		json.NewEncoder(os.Stdout).Encode(v)
	}
	w.Flush()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
